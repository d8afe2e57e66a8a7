package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"ROBOTICS-BOOK_BACK-END/internal/config"
	"ROBOTICS-BOOK_BACK-END/internal/dto"
	"ROBOTICS-BOOK_BACK-END/internal/middleware"
	"ROBOTICS-BOOK_BACK-END/internal/models"
	"ROBOTICS-BOOK_BACK-END/internal/service"
	"ROBOTICS-BOOK_BACK-END/internal/store"
	"ROBOTICS-BOOK_BACK-END/internal/utils"
)

// GoogleAuthHandler handles Google OAuth authentication
type GoogleAuthHandler struct {
	users        store.UserStore
	oauth2Config *oauth2.Config
	jwtCfg       *config.JWTConfig
	frontendURL  string
	cookieSecure bool
}

// NewGoogleAuthHandler creates a new GoogleAuthHandler instance
func NewGoogleAuthHandler(users store.UserStore, cfg *config.Config) *GoogleAuthHandler {
	oauth2Config := &oauth2.Config{
		ClientID:     cfg.GoogleOAuth.ClientID,
		ClientSecret: cfg.GoogleOAuth.ClientSecret,
		RedirectURL:  cfg.GoogleOAuth.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &GoogleAuthHandler{
		users:        users,
		oauth2Config: oauth2Config,
		jwtCfg:       &cfg.JWT,
		frontendURL:  cfg.GoogleOAuth.FrontendURL,
		cookieSecure: cfg.Auth.CookieSecure,
	}
}

// GoogleLogin initiates Google OAuth login
// @Summary Google OAuth login
// @Description Initiate Google OAuth login flow
// @Tags authentication
// @Produce json
// @Success 200 {object} map[string]string "Google OAuth URL"
// @Router /api/auth/google/login [get]
func (h *GoogleAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// State parameter for CSRF protection
	state := uuid.New().String()
	authURL := h.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{
		"auth_url": authURL,
		"state":    state,
	})
}

// GoogleCallback handles Google OAuth callback
// @Summary Google OAuth callback
// @Description Exchange the authorization code, sign the reader in and redirect to the site
// @Tags authentication
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string false "State parameter for CSRF protection"
// @Success 302 "Redirect to the site with a session established"
// @Failure 400 {object} dto.ErrorResponse "Missing authorization code"
// @Failure 401 {object} dto.ErrorResponse "Invalid authorization code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/google/callback [get]
func (h *GoogleAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing authorization code", "Authorization code is required")
		return
	}

	token, err := h.oauth2Config.Exchange(r.Context(), code)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid authorization code", "Code exchange failed")
		return
	}

	userInfo, err := h.getGoogleUserInfo(r.Context(), token.AccessToken)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", "Failed to get user info")
		return
	}

	user, err := h.findOrCreateUser(r.Context(), userInfo)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", "Failed to sign in")
		return
	}

	jwtToken, err := middleware.GenerateToken(user.ID, user.Email, h.jwtCfg)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", "Failed to generate token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    jwtToken,
		Path:     "/",
		MaxAge:   int(h.jwtCfg.AccessTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})

	redirectURL := fmt.Sprintf("%s?token=%s&email=%s",
		h.frontendURL, url.QueryEscape(jwtToken), url.QueryEscape(user.Email))
	http.Redirect(w, r, redirectURL, http.StatusFound)
}

// getGoogleUserInfo fetches user information from Google
func (h *GoogleAuthHandler) getGoogleUserInfo(ctx context.Context, accessToken string) (*dto.GoogleUserInfo, error) {
	service, err := googleOAuth2.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
	})))
	if err != nil {
		return nil, err
	}

	userInfo, err := service.Userinfo.Get().Do()
	if err != nil {
		return nil, err
	}

	verified := false
	if userInfo.VerifiedEmail != nil {
		verified = *userInfo.VerifiedEmail
	}

	return &dto.GoogleUserInfo{
		ID:       userInfo.Id,
		Email:    userInfo.Email,
		Name:     userInfo.Name,
		Picture:  userInfo.Picture,
		Verified: verified,
	}, nil
}

// findOrCreateUser looks the Google account up by normalized email and
// creates a record on first login. Google accounts carry no password hash;
// first login counts as signup and earns the signup bonus.
func (h *GoogleAuthHandler) findOrCreateUser(ctx context.Context, googleUser *dto.GoogleUserInfo) (*models.User, error) {
	email := service.NormalizeEmail(googleUser.Email)

	user, err := h.users.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	user = &models.User{
		ID:                uuid.New(),
		Name:              googleUser.Name,
		Email:             email,
		PasswordHash:      "",
		Interests:         []string{},
		BonusPointsEarned: service.SignupBonusPoints,
		JoinedAt:          time.Now().UTC(),
	}

	if err := h.users.Insert(ctx, user); err != nil {
		// A concurrent first login may have inserted the record already
		if errors.Is(err, store.ErrDuplicateEmail) {
			return h.users.FindByEmail(ctx, email)
		}
		return nil, err
	}

	return user, nil
}
