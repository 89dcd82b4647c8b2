package services

import (
	"bizdash/internal/config"
	"bizdash/internal/logger"
	"bizdash/internal/models"
	"bizdash/internal/repository"
	"bizdash/internal/utils"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

type PasswordService struct {
	repo       UserRepo
	jwtSecret  string
	sessionTTL time.Duration
	tokenTTL   time.Duration
}

func NewPasswordService(repo UserRepo, cfg *config.Config) *PasswordService {
	return &PasswordService{
		repo:       repo,
		jwtSecret:  cfg.JWTSecret,
		sessionTTL: cfg.SessionDuration(),
		tokenTTL:   cfg.ResetTokenDuration(),
	}
}

func (s *PasswordService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// RequestReset генерирует одноразовый токен сброса (32 байта, hex).
// Email сверяется как есть — ровно так, как он был сохранён при регистрации.
// Для неизвестного email возвращает пустой токен и nil — наличие почты
// не раскрываем, хендлер отвечает одинаково в обоих случаях.
func (s *PasswordService) RequestReset(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	logger.Log.Info("Запрос на сброс пароля (service)")

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Log.Error("Ошибка поиска пользователя по email (service)", zap.Error(err))
		}
		// Логируем для себя, клиенту — ничего
		logger.Log.Warn("Сброс пароля для неизвестного email (service)")
		return "", nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		logger.Log.Error("Ошибка генерации reset-токена (service)", zap.Error(err), zap.Int("user_id", user.ID))
		return "", err
	}
	token := hex.EncodeToString(raw)

	expiry := time.Now().Add(s.tokenTTL)
	if err := s.repo.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		logger.Log.Error("Ошибка сохранения reset-токена (service)", zap.Int("user_id", user.ID), zap.Error(err))
		return "", err
	}

	logger.Log.Info("Reset-токен выдан (service)", zap.Int("user_id", user.ID), zap.Time("expires_at", expiry))
	return token, nil
}

// ResetPassword подтверждает токен, ставит новый пароль и сразу логинит
// пользователя: возвращает свежий сессионный токен.
func (s *PasswordService) ResetPassword(ctx context.Context, token, newPassword string) (*models.User, string, error) {
	logger.Log.Info("Попытка сброса пароля по токену (service)")

	user, err := s.repo.GetByResetToken(ctx, token)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Log.Error("Ошибка поиска по reset-токену (service)", zap.Error(err))
			return nil, "", err
		}
		logger.Log.Warn("Reset-токен не найден (service)")
		return nil, "", ErrResetTokenInvalid
	}

	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		logger.Log.Warn("Reset-токен просрочен (service)", zap.Int("user_id", user.ID))
		return nil, "", ErrResetTokenInvalid
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Log.Error("Ошибка хеширования нового пароля (service)", zap.Error(err), zap.Int("user_id", user.ID))
		return nil, "", err
	}

	// Токен одноразовый: пароль и очистка reset-полей — одним обновлением
	if err := s.repo.UpdatePasswordAndClearReset(ctx, user.ID, hashed); err != nil {
		logger.Log.Error("Ошибка обновления пароля (service)", zap.Int("user_id", user.ID), zap.Error(err))
		return nil, "", err
	}

	sessionToken, err := utils.GenerateSessionToken(s.jwtSecret, user.ID, s.sessionTTL)
	if err != nil {
		logger.Log.Error("Ошибка генерации сессионного токена (service)", zap.Error(err))
		return nil, "", err
	}

	logger.Log.Info("Пароль успешно сброшен (service)", zap.Int("user_id", user.ID))
	return user, sessionToken, nil
}
