package services

import (
	"bizdash/internal/config"
	"bizdash/internal/logger"
	"bizdash/internal/models"
	"bizdash/internal/repository"
	"bizdash/internal/utils"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

type AuthService struct {
	repo       UserRepo
	jwtSecret  string
	sessionTTL time.Duration
}

// NewAuthService получает конфиг при создании — секрет и TTL не читаются
// из окружения посреди запроса.
func NewAuthService(repo UserRepo, cfg *config.Config) *AuthService {
	return &AuthService{
		repo:       repo,
		jwtSecret:  cfg.JWTSecret,
		sessionTTL: cfg.SessionDuration(),
	}
}

type UserRepo interface {
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetByResetToken(ctx context.Context, token string) (*models.User, error)
	SetResetToken(ctx context.Context, userID int, token string, expiry time.Time) error
	UpdatePasswordAndClearReset(ctx context.Context, userID int, passwordHash string) error
}

func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Register создаёт пользователя и сразу выдаёт сессионный токен.
// Предварительные проверки username/email — оптимизация; решающее слово
// за уникальным констрейнтом БД (гонка регистраций).
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	logger.Log.Info("Регистрация пользователя (service)", zap.String("username", username), zap.String("email", email))

	if taken, err := s.repo.IsUsernameTaken(ctx, username); err != nil {
		logger.Log.Error("Ошибка проверки username (service)", zap.Error(err))
		return nil, "", err
	} else if taken {
		return nil, "", ErrUsernameTaken
	}
	if taken, err := s.repo.IsEmailTaken(ctx, email); err != nil {
		logger.Log.Error("Ошибка проверки email (service)", zap.Error(err))
		return nil, "", err
	} else if taken {
		return nil, "", ErrEmailTaken
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Ошибка хеширования пароля (service)", zap.Error(err))
		return nil, "", err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return nil, "", ErrUsernameTaken
		case errors.Is(err, repository.ErrEmailExists):
			return nil, "", ErrEmailTaken
		}
		logger.Log.Error("Ошибка создания пользователя (service)", zap.Error(err))
		return nil, "", err
	}

	token, err := utils.GenerateSessionToken(s.jwtSecret, user.ID, s.sessionTTL)
	if err != nil {
		logger.Log.Error("Ошибка генерации сессионного токена (service)", zap.Error(err))
		return nil, "", err
	}

	logger.Log.Info("Пользователь зарегистрирован (service)", zap.String("username", username), zap.Int("user_id", user.ID))
	return user, token, nil
}

// Login проверяет пару логин/пароль. «Нет такого пользователя» и «неверный
// пароль» снаружи неразличимы — обе ветки дают ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	logger.Log.Info("Попытка входа (service)", zap.String("username", username))

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Log.Error("Ошибка поиска пользователя (service)", zap.Error(err))
			return nil, "", err
		}
		logger.Log.Warn("Пользователь не найден (service)", zap.String("username", username))
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("Неверный пароль (service)", zap.String("username", username))
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateSessionToken(s.jwtSecret, user.ID, s.sessionTTL)
	if err != nil {
		logger.Log.Error("Ошибка генерации сессионного токена (service)", zap.Error(err))
		return nil, "", err
	}

	logger.Log.Info("Вход выполнен (service)", zap.String("username", username), zap.Int("user_id", user.ID))
	return user, token, nil
}

// ResolveUser — резолвер сессии: проверяет подпись и срок токена, затем ищет
// пользователя в базе. Любой сбой — ErrUnauthorized, наружу ничего не летит.
func (s *AuthService) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	userID, err := utils.ParseSessionToken(s.jwtSecret, token)
	if err != nil {
		logger.Log.Debug("Невалидный сессионный токен (service)", zap.Error(err))
		return nil, ErrUnauthorized
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		// Пользователь мог быть удалён после выдачи токена
		logger.Log.Debug("Пользователь из токена не найден (service)", zap.Int("user_id", userID), zap.Error(err))
		return nil, ErrUnauthorized
	}
	return user, nil
}
