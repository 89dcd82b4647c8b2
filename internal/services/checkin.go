package services

import (
	"bizdash/internal/logger"
	"bizdash/internal/models"
	"bizdash/internal/repository"
	"context"
	"errors"

	"go.uber.org/zap"
)

type CheckInService struct {
	repo CheckInRepo
}

func NewCheckInService(repo CheckInRepo) *CheckInService {
	return &CheckInService{repo: repo}
}

type CheckInRepo interface {
	Create(ctx context.Context, c *models.CheckIn) error
	ListAll(ctx context.Context) ([]*models.CheckIn, error)
	ListByUser(ctx context.Context, userID int) ([]*models.CheckIn, error)
	GetByID(ctx context.Context, id int) (*models.CheckIn, error)
	UpdateFields(ctx context.Context, id int, input *models.UpdateCheckInRequest) error
	Delete(ctx context.Context, id int) error
	SearchByTag(ctx context.Context, tag string) ([]*models.CheckIn, error)
}

func (s *CheckInService) Create(ctx context.Context, c *models.CheckIn) error {
	logger.Log.Info("Создание чек-ина (service)", zap.Int("user_id", c.UserID), zap.String("tag", c.Tag))
	return s.repo.Create(ctx, c)
}

// List: mine=true — только свои чек-ины, иначе общая лента.
func (s *CheckInService) List(ctx context.Context, userID int, mine bool) ([]*models.CheckIn, error) {
	if mine {
		return s.repo.ListByUser(ctx, userID)
	}
	return s.repo.ListAll(ctx)
}

// getOwned достаёт чек-ин и проверяет владельца.
func (s *CheckInService) getOwned(ctx context.Context, userID, id int) (*models.CheckIn, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if c.UserID != userID {
		logger.Log.Warn("Чужой чек-ин (service)", zap.Int("check_in_id", id), zap.Int("user_id", userID))
		return nil, ErrForbidden
	}
	return c, nil
}

func (s *CheckInService) Update(ctx context.Context, userID, id int, input *models.UpdateCheckInRequest) (*models.CheckIn, error) {
	logger.Log.Info("Обновление чек-ина (service)", zap.Int("check_in_id", id), zap.Int("user_id", userID))
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateFields(ctx, id, input); err != nil {
		logger.Log.Error("Ошибка обновления чек-ина (service)", zap.Error(err), zap.Int("check_in_id", id))
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *CheckInService) Delete(ctx context.Context, userID, id int) error {
	logger.Log.Info("Удаление чек-ина (service)", zap.Int("check_in_id", id), zap.Int("user_id", userID))
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
