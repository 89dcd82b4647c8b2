package repository

import (
	"bizdash/internal/logger"
	"bizdash/internal/models"
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	m.Run()
}

func newUserRepoWithMock(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewUserRepository(mock), mock
}

func TestCreateUser(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "alice@example.com", "hash").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(1, now, now))

	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	err := repo.CreateUser(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "other@example.com", "hash").
		WillReturnError(&pgconn.PgError{
			Code:           pgerrcode.UniqueViolation,
			ConstraintName: "users_username_key",
		})

	user := &models.User{Username: "alice", Email: "other@example.com", PasswordHash: "hash"}
	err := repo.CreateUser(context.Background(), user)

	assert.ErrorIs(t, err, ErrUsernameExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("bob", "alice@example.com", "hash").
		WillReturnError(&pgconn.PgError{
			Code:           pgerrcode.UniqueViolation,
			ConstraintName: "users_email_key",
		})

	user := &models.User{Username: "bob", Email: "alice@example.com", PasswordHash: "hash"}
	err := repo.CreateUser(context.Background(), user)

	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUsername(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`FROM users WHERE username =`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "username", "email", "password_hash",
			"reset_token", "reset_token_expiry", "created_at", "updated_at",
		}).AddRow(1, "alice", "alice@example.com", "hash", nil, nil, now, now))

	user, err := repo.GetByUsername(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Nil(t, user.ResetToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUsernameNotFound(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	mock.ExpectQuery(`FROM users WHERE username =`).
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "nobody")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetResetToken(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)
	expiry := time.Now().Add(30 * time.Minute)

	mock.ExpectExec(`UPDATE users SET reset_token =`).
		WithArgs("tok", expiry, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.SetResetToken(context.Background(), 1, "tok", expiry)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePasswordAndClearReset(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	mock.ExpectExec(`UPDATE users SET password_hash =`).
		WithArgs("newhash", 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdatePasswordAndClearReset(context.Background(), 1, "newhash")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
