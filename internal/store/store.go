package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"ROBOTICS-BOOK_BACK-END/internal/models"
)

var (
	// ErrDuplicateEmail is returned by Insert when the email is already registered
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNotFound is returned when no user matches the lookup
	ErrNotFound = errors.New("user not found")
)

// ProfilePatch is a sparse update of the mutable profile fields. Nil fields
// are left unchanged; a non-nil Interests replaces the stored set entirely.
type ProfilePatch struct {
	SoftwareBackground *string
	HardwareBackground *string
	Experience         *string
	Interests          *[]string
}

// UserStore persists user records. Emails are expected pre-normalized
// (lowercase, trimmed) by the caller.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*models.User, error)
}

// DB is the subset of pgxpool.Pool the Postgres store needs
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
