package repository

import (
	"bizdash/internal/logger"
	"bizdash/internal/models"
	"context"

	"go.uber.org/zap"
)

// StatsRepository считает показатели дашборда прямо по базе —
// единственному источнику данных.
type StatsRepository struct {
	db Querier
}

func NewStatsRepository(db Querier) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	logger.Log.Debug("Подсчёт показателей дашборда (repo)")
	query := `
	SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM check_ins),
		(SELECT COUNT(*) FROM documents),
		(SELECT COALESCE(SUM(hours), 0) FROM check_ins)`
	var s models.DashboardStats
	err := r.db.QueryRow(ctx, query).Scan(
		&s.TotalUsers,
		&s.TotalCheckIns,
		&s.TotalDocuments,
		&s.TotalHours,
	)
	if err != nil {
		logger.Log.Error("Ошибка подсчёта показателей (repo)", zap.Error(err))
		return nil, err
	}
	return &s, nil
}

// HoursByTag — распределение часов по тегам активности.
func (r *StatsRepository) HoursByTag(ctx context.Context) (*models.Distribution, error) {
	query := `
	SELECT tag, SUM(hours)
	FROM check_ins
	GROUP BY tag
	ORDER BY SUM(hours) DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		logger.Log.Error("Ошибка распределения часов по тегам (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	dist := &models.Distribution{}
	for rows.Next() {
		var label string
		var hours float64
		if err := rows.Scan(&label, &hours); err != nil {
			return nil, err
		}
		dist.Labels = append(dist.Labels, label)
		dist.Data = append(dist.Data, hours)
	}
	return dist, rows.Err()
}

// DocumentsByStatus — распределение документов по статусам согласования.
func (r *StatsRepository) DocumentsByStatus(ctx context.Context) (*models.Distribution, error) {
	query := `
	SELECT status, COUNT(*)
	FROM documents
	GROUP BY status
	ORDER BY COUNT(*) DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		logger.Log.Error("Ошибка распределения документов по статусам (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	dist := &models.Distribution{}
	for rows.Next() {
		var label string
		var count float64
		if err := rows.Scan(&label, &count); err != nil {
			return nil, err
		}
		dist.Labels = append(dist.Labels, label)
		dist.Data = append(dist.Data, count)
	}
	return dist, rows.Err()
}
