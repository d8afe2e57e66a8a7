package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ROBOTICS-BOOK_BACK-END/internal/models"
)

var userRowColumns = []string{
	"id", "name", "email", "password_hash", "software_background",
	"hardware_background", "experience", "interests", "bonus_points_earned", "joined_at",
}

func sampleUser() *models.User {
	return &models.User{
		ID:                 uuid.New(),
		Name:               "Ada",
		Email:              "ada@x.com",
		PasswordHash:       "digest",
		SoftwareBackground: "Intermediate",
		HardwareBackground: "Beginner",
		Experience:         "Student",
		Interests:          []string{"ROS 2"},
		BonusPointsEarned:  50,
		JoinedAt:           time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func addUserRow(rows *pgxmock.Rows, u *models.User) *pgxmock.Rows {
	return rows.AddRow(u.ID.String(), u.Name, u.Email, u.PasswordHash,
		u.SoftwareBackground, u.HardwareBackground, u.Experience,
		u.Interests, u.BonusPointsEarned, u.JoinedAt)
}

func TestPostgresUserStore_FindByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	want := sampleUser()
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email =`).
		WithArgs("ada@x.com").
		WillReturnRows(addUserRow(pgxmock.NewRows(userRowColumns), want))

	repo := NewPostgresUserStore(mock)
	got, err := repo.FindByEmail(context.Background(), "ada@x.com")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Email, got.Email)
	assert.Equal(t, want.Interests, got.Interests)
	assert.Equal(t, want.BonusPointsEarned, got.BonusPointsEarned)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_FindByEmail_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email =`).
		WithArgs("nobody@x.com").
		WillReturnError(pgx.ErrNoRows)

	repo := NewPostgresUserStore(mock)
	_, err = repo.FindByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_FindByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id =`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	repo := NewPostgresUserStore(mock)
	_, err = repo.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_Insert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	user := sampleUser()
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.Name, user.Email, user.PasswordHash,
			user.SoftwareBackground, user.HardwareBackground, user.Experience,
			user.Interests, user.BonusPointsEarned, user.JoinedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewPostgresUserStore(mock)
	require.NoError(t, repo.Insert(context.Background(), user))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_Insert_DuplicateEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	user := sampleUser()
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.Name, user.Email, user.PasswordHash,
			user.SoftwareBackground, user.HardwareBackground, user.Experience,
			user.Interests, user.BonusPointsEarned, user.JoinedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	repo := NewPostgresUserStore(mock)
	err = repo.Insert(context.Background(), user)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_Insert_OtherError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	user := sampleUser()
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.Name, user.Email, user.PasswordHash,
			user.SoftwareBackground, user.HardwareBackground, user.Experience,
			user.Interests, user.BonusPointsEarned, user.JoinedAt).
		WillReturnError(errors.New("connection refused"))

	repo := NewPostgresUserStore(mock)
	err = repo.Insert(context.Background(), user)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
	assert.Contains(t, err.Error(), "connection refused")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_UpdateProfile(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	user := sampleUser()
	updated := *user
	updated.Interests = []string{"Simulation"}

	interests := []string{"Simulation"}
	mock.ExpectQuery(`UPDATE users SET`).
		WithArgs(user.ID, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), interests).
		WillReturnRows(addUserRow(pgxmock.NewRows(userRowColumns), &updated))

	repo := NewPostgresUserStore(mock)
	got, err := repo.UpdateProfile(context.Background(), user.ID, ProfilePatch{Interests: &interests})
	require.NoError(t, err)
	assert.Equal(t, []string{"Simulation"}, got.Interests)
	assert.Equal(t, user.SoftwareBackground, got.SoftwareBackground)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_UpdateProfile_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	experience := "Professional"
	mock.ExpectQuery(`UPDATE users SET`).
		WithArgs(id, pgxmock.AnyArg(), pgxmock.AnyArg(), &experience, pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	repo := NewPostgresUserStore(mock)
	_, err = repo.UpdateProfile(context.Background(), id, ProfilePatch{Experience: &experience})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
