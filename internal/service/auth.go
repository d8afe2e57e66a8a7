package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ROBOTICS-BOOK_BACK-END/internal/auth"
	"ROBOTICS-BOOK_BACK-END/internal/config"
	"ROBOTICS-BOOK_BACK-END/internal/dto"
	"ROBOTICS-BOOK_BACK-END/internal/middleware"
	"ROBOTICS-BOOK_BACK-END/internal/models"
	"ROBOTICS-BOOK_BACK-END/internal/store"
)

// SignupBonusPoints is awarded once when an account is created
const SignupBonusPoints = 50

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrEmailTaken    = errors.New("email already registered")
	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords so that responses do not reveal whether an account exists
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// SignupParams carries the fields accepted at account creation
type SignupParams struct {
	Name               string
	Email              string
	Password           string
	SoftwareBackground string
	HardwareBackground string
	Experience         string
	Interests          []string
}

// AuthService orchestrates signup, signin, identity lookup and profile
// updates over the user store, the password hasher and the token issuer
type AuthService struct {
	users  store.UserStore
	hasher *auth.PasswordHasher
	jwtCfg *config.JWTConfig
}

// NewAuthService creates an AuthService with all dependencies injected
func NewAuthService(users store.UserStore, hasher *auth.PasswordHasher, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{users: users, hasher: hasher, jwtCfg: jwtCfg}
}

// NormalizeEmail lowercases and trims an email so lookups are
// case-insensitive and a single record exists per address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates a new user, awards the signup bonus and issues a session token
func (s *AuthService) Signup(ctx context.Context, params SignupParams) (*models.User, string, error) {
	if strings.TrimSpace(params.Name) == "" || strings.TrimSpace(params.Email) == "" || params.Password == "" {
		return nil, "", ErrMissingFields
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	interests := params.Interests
	if interests == nil {
		interests = []string{}
	}

	user := &models.User{
		ID:                 uuid.New(),
		Name:               params.Name,
		Email:              NormalizeEmail(params.Email),
		PasswordHash:       hash,
		SoftwareBackground: params.SoftwareBackground,
		HardwareBackground: params.HardwareBackground,
		Experience:         params.Experience,
		Interests:          interests,
		BonusPointsEarned:  SignupBonusPoints,
		JoinedAt:           time.Now().UTC(),
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("insert user: %w", err)
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, s.jwtCfg)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// Signin verifies the credentials and issues a fresh session token
func (s *AuthService) Signin(ctx context.Context, email, password string) (*models.User, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	// Accounts created through Google OAuth carry no password hash and
	// cannot sign in with a password
	if user.PasswordHash == "" || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, s.jwtCfg)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// Me returns the persisted record for a verified identity. The record may
// have been deleted after the token was issued.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a sparse patch to the learning-profile fields.
// Absent and empty string fields are left unchanged; a present interests
// array (including an empty one) replaces the stored set.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.ProfileUpdateRequest) (*models.User, error) {
	patch := store.ProfilePatch{
		SoftwareBackground: nonEmpty(req.SoftwareBackground),
		HardwareBackground: nonEmpty(req.HardwareBackground),
		Experience:         nonEmpty(req.Experience),
		Interests:          req.Interests,
	}

	user, err := s.users.UpdateProfile(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
