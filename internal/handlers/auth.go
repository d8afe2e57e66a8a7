package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ROBOTICS-BOOK_BACK-END/internal/config"
	"ROBOTICS-BOOK_BACK-END/internal/dto"
	"ROBOTICS-BOOK_BACK-END/internal/middleware"
	"ROBOTICS-BOOK_BACK-END/internal/models"
	"ROBOTICS-BOOK_BACK-END/internal/service"
	"ROBOTICS-BOOK_BACK-END/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	svc          *service.AuthService
	jwtCfg       *config.JWTConfig
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(svc *service.AuthService, jwtCfg *config.JWTConfig, cookieSecure bool) *AuthHandler {
	return &AuthHandler{svc: svc, jwtCfg: jwtCfg, cookieSecure: cookieSecure}
}

// Signup handles account creation
// @Summary Sign up a new reader
// @Description Create a new account with name, email, password and learning background
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup data"
// @Success 201 {object} dto.AuthResponse "Account created"
// @Failure 400 {object} dto.ErrorResponse "Missing required fields"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	user, token, err := h.svc.Signup(r.Context(), service.SignupParams{
		Name:               req.Name,
		Email:              req.Email,
		Password:           req.Password,
		SoftwareBackground: req.SoftwareBackground,
		HardwareBackground: req.HardwareBackground,
		Experience:         req.Experience,
		Interests:          req.Interests,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.setAuthCookie(w, token)
	utils.WriteJSONResponse(w, http.StatusCreated, dto.AuthResponse{
		User:  toUserResponse(user),
		Token: token,
	})
}

// Signin handles email/password login
// @Summary Sign in
// @Description Authenticate with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.SigninRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse "Signed in"
// @Failure 400 {object} dto.ErrorResponse "Missing required fields"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/signin [post]
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	user, token, err := h.svc.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.setAuthCookie(w, token)
	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		User:  toUserResponse(user),
		Token: token,
	})
}

// Signout clears the auth cookie. The token itself stays valid until its
// natural expiry; there is no server-side revocation list.
// @Summary Sign out
// @Description Clear the auth cookie
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.SignoutResponse "Signed out"
// @Router /api/auth/signout [post]
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.clearAuthCookie(w)
	utils.WriteJSONResponse(w, http.StatusOK, dto.SignoutResponse{Success: true})
}

// Me returns the current authenticated user
// @Summary Current user
// @Description Get the authenticated reader's record
// @Tags authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MeResponse "Current user"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	user, err := h.svc.Me(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MeResponse{User: toUserResponse(user)})
}

// UpdateProfile applies a partial update of the learning profile
// @Summary Update learning profile
// @Description Update any subset of software/hardware background, experience and interests
// @Tags authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProfileUpdateRequest true "Fields to update"
// @Success 200 {object} dto.MeResponse "Updated user"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	var req dto.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MeResponse{User: toUserResponse(user)})
}

// writeServiceError maps service errors to HTTP statuses. Internal failures
// get a deliberately generic message.
func (h *AuthHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Name, email, and password are required")
	case errors.Is(err, service.ErrEmailTaken):
		utils.WriteErrorResponse(w, http.StatusConflict, "Conflict", "Email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid credentials")
	case errors.Is(err, service.ErrUserNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "User not found")
	default:
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", "Something went wrong")
	}
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.jwtCfg.AccessTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func toUserResponse(user *models.User) dto.UserResponse {
	interests := user.Interests
	if interests == nil {
		interests = []string{}
	}
	return dto.UserResponse{
		ID:                 user.ID.String(),
		Name:               user.Name,
		Email:              user.Email,
		SoftwareBackground: user.SoftwareBackground,
		HardwareBackground: user.HardwareBackground,
		Experience:         user.Experience,
		Interests:          interests,
		BonusPointsEarned:  user.BonusPointsEarned,
		JoinedAt:           user.JoinedAt.Format(time.RFC3339),
	}
}
