package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ROBOTICS-BOOK_BACK-END/internal/auth"
	"ROBOTICS-BOOK_BACK-END/internal/config"
	"ROBOTICS-BOOK_BACK-END/internal/dto"
	"ROBOTICS-BOOK_BACK-END/internal/handlers"
	"ROBOTICS-BOOK_BACK-END/internal/routes"
	"ROBOTICS-BOOK_BACK-END/internal/service"
	"ROBOTICS-BOOK_BACK-END/internal/store"
)

// newTestServer wires the real routes over an in-memory store
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		JWT:  config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour},
		Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Chatbot: config.ChatbotConfig{
			Endpoint: "http://localhost:0",
			Timeout:  time.Second,
		},
	}

	users := store.NewMemoryUserStore()
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	svc := service.NewAuthService(users, hasher, &cfg.JWT)

	authHandler := handlers.NewAuthHandler(svc, &cfg.JWT, cfg.Auth.CookieSecure)
	healthHandler := handlers.NewHealthHandler(pingOK{})
	googleAuthHandler := handlers.NewGoogleAuthHandler(users, cfg)
	chatHandler := handlers.NewChatHandler(&cfg.Chatbot)

	mux := http.NewServeMux()
	routes.SetupRoutes(mux, authHandler, healthHandler, googleAuthHandler, chatHandler, &cfg.JWT)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type pingOK struct{}

func (pingOK) Ping(ctx context.Context) error { return nil }

func signupRequest() dto.SignupRequest {
	return dto.SignupRequest{
		Name:               "Ada",
		Email:              "Ada@X.com",
		Password:           "longenough1",
		SoftwareBackground: "Intermediate",
		Interests:          []string{"ROS 2"},
	}
}

func TestClient_SignupCachesIdentity(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, ok := c.CurrentUser()
	assert.False(t, ok, "fresh client should be signed out")

	resp, err := c.Signup(context.Background(), signupRequest())
	require.NoError(t, err)
	assert.Equal(t, "ada@x.com", resp.User.Email)
	assert.Equal(t, 50, resp.User.BonusPointsEarned)

	user, ok := c.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Ada", user.Name)
}

func TestClient_LoadRefreshesFromCookie(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	// Drop the cache, keep the cookie jar: Load must repopulate from /me
	c.setUser(nil)
	c.Load(context.Background())

	user, ok := c.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "ada@x.com", user.Email)
}

func TestClient_LoadWithoutSessionLeavesSignedOut(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	c, err := New(srv.URL)
	require.NoError(t, err)

	c.Load(context.Background())
	_, ok := c.CurrentUser()
	assert.False(t, ok)
}

func TestClient_LoadNetworkErrorLeavesSignedOut(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	c.Load(context.Background())
	_, ok := c.CurrentUser()
	assert.False(t, ok)
}

func TestClient_SigninAfterSignup_CaseInsensitiveEmail(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Signup(context.Background(), signupRequest())
	require.NoError(t, err)
	require.NoError(t, c.Signout(context.Background()))

	resp, err := c.Signin(context.Background(), "ADA@x.com", "longenough1")
	require.NoError(t, err)
	assert.Equal(t, "ada@x.com", resp.User.Email)

	user, ok := c.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "ada@x.com", user.Email)
}

func TestClient_SignoutClearsCacheUnconditionally(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	// Server gone: the call fails but the cache still clears
	srv.Close()
	err = c.Signout(context.Background())
	assert.Error(t, err)

	_, ok := c.CurrentUser()
	assert.False(t, ok)
}

func TestClient_UpdateProfileReplacesCache(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	interests := []string{"Simulation"}
	user, err := c.UpdateProfile(context.Background(), dto.ProfileUpdateRequest{Interests: &interests})
	require.NoError(t, err)
	assert.Equal(t, []string{"Simulation"}, user.Interests)
	assert.Equal(t, "Intermediate", user.SoftwareBackground)

	cached, ok := c.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, []string{"Simulation"}, cached.Interests)
}

func TestClient_SignupErrorSurfacesMessage(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	_, err = c.Signup(context.Background(), signupRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email already registered")
}
