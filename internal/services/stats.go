package services

import (
	"bizdash/internal/logger"
	"bizdash/internal/models"
	"context"

	"go.uber.org/zap"
)

type StatsService struct {
	repo StatsRepo
}

func NewStatsService(repo StatsRepo) *StatsService {
	return &StatsService{repo: repo}
}

type StatsRepo interface {
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
	HoursByTag(ctx context.Context) (*models.Distribution, error)
	DocumentsByStatus(ctx context.Context) (*models.Distribution, error)
}

// GetDashboard собирает показатели дашборда по базе.
func (s *StatsService) GetDashboard(ctx context.Context) (*models.DashboardResponse, error) {
	stats, err := s.repo.GetDashboardStats(ctx)
	if err != nil {
		logger.Log.Error("Ошибка получения показателей (service)", zap.Error(err))
		return nil, err
	}
	timeDist, err := s.repo.HoursByTag(ctx)
	if err != nil {
		logger.Log.Error("Ошибка распределения часов (service)", zap.Error(err))
		return nil, err
	}
	statusDist, err := s.repo.DocumentsByStatus(ctx)
	if err != nil {
		logger.Log.Error("Ошибка распределения статусов (service)", zap.Error(err))
		return nil, err
	}
	return &models.DashboardResponse{
		Stats:              *stats,
		TimeDistribution:   *timeDist,
		StatusDistribution: *statusDist,
	}, nil
}
