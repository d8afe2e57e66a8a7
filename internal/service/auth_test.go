package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ROBOTICS-BOOK_BACK-END/internal/auth"
	"ROBOTICS-BOOK_BACK-END/internal/config"
	"ROBOTICS-BOOK_BACK-END/internal/dto"
	"ROBOTICS-BOOK_BACK-END/internal/models"
	"ROBOTICS-BOOK_BACK-END/internal/store"
)

func newTestService() (*AuthService, *store.MemoryUserStore) {
	users := store.NewMemoryUserStore()
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	jwtCfg := &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}
	return NewAuthService(users, hasher, jwtCfg), users
}

func validSignup() SignupParams {
	return SignupParams{
		Name:               "Ada",
		Email:              "Ada@X.com",
		Password:           "longenough1",
		SoftwareBackground: "Intermediate",
		HardwareBackground: "Beginner",
		Experience:         "Student",
		Interests:          []string{"ROS 2", "Simulation"},
	}
}

func TestSignup_AwardsBonusAndTimestamp(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()

	before := time.Now().UTC()
	user, token, err := svc.Signup(context.Background(), validSignup())
	after := time.Now().UTC()

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)

	assert.Equal(t, SignupBonusPoints, user.BonusPointsEarned)
	assert.False(t, user.JoinedAt.Before(before), "joinedAt before signup started")
	assert.False(t, user.JoinedAt.After(after), "joinedAt after signup finished")

	// Email is stored normalized, password never in the clear
	assert.Equal(t, "ada@x.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "longenough1", user.PasswordHash)
}

func TestSignup_MissingFields(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()

	for _, params := range []SignupParams{
		{Email: "a@b.com", Password: "secret123"},
		{Name: "Ada", Password: "secret123"},
		{Name: "Ada", Email: "a@b.com"},
		{Name: "   ", Email: "a@b.com", Password: "secret123"},
	} {
		_, _, err := svc.Signup(context.Background(), params)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
}

func TestSignup_DuplicateEmailCaseInsensitive(t *testing.T) {
	t.Parallel()

	svc, users := newTestService()

	_, _, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	second := validSignup()
	second.Email = "ADA@x.COM"
	_, _, err = svc.Signup(context.Background(), second)
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Exactly one record exists for the address
	_, err = users.FindByEmail(context.Background(), "ada@x.com")
	require.NoError(t, err)
}

func TestSignin_Success(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()

	created, _, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	// Different casing than the signup email
	user, token, err := svc.Signin(context.Background(), "ADA@x.com", "longenough1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestSignin_InvalidCredentialsIndistinguishable(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()

	_, _, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	_, _, wrongPassword := svc.Signin(context.Background(), "ada@x.com", "not-the-password")
	_, _, unknownEmail := svc.Signin(context.Background(), "nobody@x.com", "longenough1")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestSignin_PasswordlessAccount(t *testing.T) {
	t.Parallel()

	svc, users := newTestService()

	// Accounts created through OAuth have no password hash
	require.NoError(t, users.Insert(context.Background(), &models.User{
		ID:        uuid.New(),
		Name:      "Google Reader",
		Email:     "google@x.com",
		Interests: []string{},
		JoinedAt:  time.Now().UTC(),
	}))

	_, _, err := svc.Signin(context.Background(), "google@x.com", "")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, _, err = svc.Signin(context.Background(), "google@x.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()

	created, _, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	user, err := svc.Me(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, user.Email)

	_, err = svc.Me(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile_SparsePatch(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()

	created, _, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	interests := []string{"Simulation"}
	user, err := svc.UpdateProfile(context.Background(), created.ID, dto.ProfileUpdateRequest{
		Interests: &interests,
	})
	require.NoError(t, err)

	// Only interests replaced, everything else untouched
	assert.Equal(t, []string{"Simulation"}, user.Interests)
	assert.Equal(t, "Intermediate", user.SoftwareBackground)
	assert.Equal(t, "Beginner", user.HardwareBackground)
	assert.Equal(t, "Student", user.Experience)
}

func TestUpdateProfile_EmptyStringsIgnored(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()

	created, _, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	empty := ""
	experience := "Professional"
	user, err := svc.UpdateProfile(context.Background(), created.ID, dto.ProfileUpdateRequest{
		SoftwareBackground: &empty,
		Experience:         &experience,
	})
	require.NoError(t, err)

	assert.Equal(t, "Intermediate", user.SoftwareBackground)
	assert.Equal(t, "Professional", user.Experience)
}

func TestUpdateProfile_EmptyInterestsReplaces(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()

	created, _, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	none := []string{}
	user, err := svc.UpdateProfile(context.Background(), created.ID, dto.ProfileUpdateRequest{
		Interests: &none,
	})
	require.NoError(t, err)
	assert.Empty(t, user.Interests)
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()

	experience := "Professional"
	_, err := svc.UpdateProfile(context.Background(), uuid.New(), dto.ProfileUpdateRequest{
		Experience: &experience,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
