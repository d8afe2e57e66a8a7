package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"ROBOTICS-BOOK_BACK-END/internal/models"
)

const userColumns = `id, name, email, password_hash, software_background,
	 hardware_background, experience, interests, bonus_points_earned, joined_at`

// PostgresUserStore is a UserStore backed by the users table
type PostgresUserStore struct {
	db DB
}

// NewPostgresUserStore creates a PostgresUserStore bound to the given pool
func NewPostgresUserStore(db DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *PostgresUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// Insert persists a new user. The unique index on users.email makes the
// duplicate check and the insert a single atomic operation, so two
// concurrent signups with the same email cannot both succeed.
func (s *PostgresUserStore) Insert(ctx context.Context, user *models.User) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, software_background,
		 hardware_background, experience, interests, bonus_points_earned, joined_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.SoftwareBackground,
		user.HardwareBackground, user.Experience, user.Interests,
		user.BonusPointsEarned, user.JoinedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// UpdateProfile applies a sparse patch: nil fields keep the stored value
func (s *PostgresUserStore) UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*models.User, error) {
	var interests any
	if patch.Interests != nil {
		interests = *patch.Interests
	}

	row := s.db.QueryRow(ctx,
		`UPDATE users SET
		 software_background = COALESCE($2, software_background),
		 hardware_background = COALESCE($3, hardware_background),
		 experience = COALESCE($4, experience),
		 interests = COALESCE($5, interests)
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, patch.SoftwareBackground, patch.HardwareBackground, patch.Experience, interests)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.SoftwareBackground, &user.HardwareBackground, &user.Experience,
		&user.Interests, &user.BonusPointsEarned, &user.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &user, nil
}
