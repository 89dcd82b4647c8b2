package repository

import (
	"bizdash/internal/logger"
	"bizdash/internal/models"
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, reset_token, reset_token_expiry, created_at, updated_at`

// CreateUser вставляет пользователя. Уникальность username/email гарантирует
// констрейнт БД: нарушение маппится в ErrUsernameExists/ErrEmailExists, чтобы
// гонка двух одновременных регистраций завершалась детерминированно.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	logger.Log.Info("Создание пользователя (repo)", zap.String("username", user.Username), zap.String("email", user.Email))
	query := `
	INSERT INTO users (username, email, password_hash)
	VALUES ($1, $2, $3)
	RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case "users_username_key":
			return ErrUsernameExists
		case "users_email_key":
			return ErrEmailExists
		}
	}
	if err != nil {
		logger.Log.Error("Ошибка создания пользователя (repo)", zap.Error(err))
	}
	return err
}

func (r *UserRepository) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	logger.Log.Debug("Проверка username на уникальность (repo)", zap.String("username", username))
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, username).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки username (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *UserRepository) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	logger.Log.Debug("Проверка email на уникальность (repo)", zap.String("email", email))
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки email (repo)", zap.Error(err))
	}
	return exists, err
}

func (r *UserRepository) scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.ResetToken,
		&u.ResetTokenExpiry,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по username (repo)", zap.String("username", username))
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по email (repo)", zap.String("email", email))
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по ID (repo)", zap.Int("user_id", id))
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по reset-токену (repo)")
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, token))
}

// SetResetToken записывает токен сброса и срок его действия (оба поля вместе).
func (r *UserRepository) SetResetToken(ctx context.Context, userID int, token string, expiry time.Time) error {
	logger.Log.Debug("Сохранение reset-токена (repo)", zap.Int("user_id", userID))
	query := `UPDATE users SET reset_token = $1, reset_token_expiry = $2, updated_at = now() WHERE id = $3`
	_, err := r.db.Exec(ctx, query, token, expiry, userID)
	if err != nil {
		logger.Log.Error("Ошибка сохранения reset-токена (repo)", zap.Error(err))
	}
	return err
}

// UpdatePasswordAndClearReset ставит новый хеш пароля и очищает оба reset-поля
// одним запросом — токен одноразовый.
func (r *UserRepository) UpdatePasswordAndClearReset(ctx context.Context, userID int, passwordHash string) error {
	logger.Log.Debug("Обновление пароля и очистка reset-токена (repo)", zap.Int("user_id", userID))
	query := `UPDATE users SET password_hash = $1, reset_token = NULL, reset_token_expiry = NULL, updated_at = now() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, passwordHash, userID)
	if err != nil {
		logger.Log.Error("Ошибка обновления пароля (repo)", zap.Error(err))
	}
	return err
}

func (r *UserRepository) CountUsers(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total)
	return total, err
}
