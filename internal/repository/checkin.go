package repository

import (
	"bizdash/internal/logger"
	"bizdash/internal/models"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CheckInRepository struct {
	db Querier
}

func NewCheckInRepository(db Querier) *CheckInRepository {
	return &CheckInRepository{db: db}
}

func (r *CheckInRepository) Create(ctx context.Context, c *models.CheckIn) error {
	logger.Log.Info("Создание чек-ина (repo)", zap.Int("user_id", c.UserID), zap.String("tag", c.Tag))
	query := `
	INSERT INTO check_ins (user_id, hours, tag, activities, date, department)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		c.UserID,
		c.Hours,
		c.Tag,
		c.Activities,
		c.Date,
		c.Department,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		logger.Log.Error("Ошибка создания чек-ина (repo)", zap.Error(err))
	}
	return err
}

const checkInColumns = `c.id, c.user_id, u.username, c.hours, c.tag, c.activities, c.date, c.department, c.created_at`

func (r *CheckInRepository) scanCheckIns(rows pgx.Rows) ([]*models.CheckIn, error) {
	defer rows.Close()
	var items []*models.CheckIn
	for rows.Next() {
		var c models.CheckIn
		err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Username,
			&c.Hours,
			&c.Tag,
			&c.Activities,
			&c.Date,
			&c.Department,
			&c.CreatedAt,
		)
		if err != nil {
			logger.Log.Error("Ошибка сканирования чек-ина (repo)", zap.Error(err))
			return nil, err
		}
		items = append(items, &c)
	}
	return items, rows.Err()
}

// ListAll — все чек-ины с именем автора, новые сверху.
func (r *CheckInRepository) ListAll(ctx context.Context) ([]*models.CheckIn, error) {
	query := `
	SELECT ` + checkInColumns + `
	FROM check_ins c
	JOIN users u ON u.id = c.user_id
	ORDER BY c.date DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		logger.Log.Error("Ошибка получения чек-инов (repo)", zap.Error(err))
		return nil, err
	}
	return r.scanCheckIns(rows)
}

func (r *CheckInRepository) ListByUser(ctx context.Context, userID int) ([]*models.CheckIn, error) {
	query := `
	SELECT ` + checkInColumns + `
	FROM check_ins c
	JOIN users u ON u.id = c.user_id
	WHERE c.user_id = $1
	ORDER BY c.date DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		logger.Log.Error("Ошибка получения чек-инов пользователя (repo)", zap.Error(err))
		return nil, err
	}
	return r.scanCheckIns(rows)
}

func (r *CheckInRepository) GetByID(ctx context.Context, id int) (*models.CheckIn, error) {
	query := `
	SELECT ` + checkInColumns + `
	FROM check_ins c
	JOIN users u ON u.id = c.user_id
	WHERE c.id = $1`
	var c models.CheckIn
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.UserID,
		&c.Username,
		&c.Hours,
		&c.Tag,
		&c.Activities,
		&c.Date,
		&c.Department,
		&c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка получения чек-ина по ID (repo)", zap.Error(err))
		return nil, err
	}
	return &c, nil
}

func (r *CheckInRepository) UpdateFields(ctx context.Context, id int, input *models.UpdateCheckInRequest) error {
	logger.Log.Info("Обновление чек-ина (repo)", zap.Int("check_in_id", id))
	query := `UPDATE check_ins SET`
	var args []interface{}
	argNum := 1

	if input.Hours != nil {
		query += fmt.Sprintf(" hours = $%d,", argNum)
		args = append(args, *input.Hours)
		argNum++
	}
	if input.Tag != nil {
		query += fmt.Sprintf(" tag = $%d,", argNum)
		args = append(args, *input.Tag)
		argNum++
	}
	if input.Activities != nil {
		query += fmt.Sprintf(" activities = $%d,", argNum)
		args = append(args, *input.Activities)
		argNum++
	}
	if input.Date != nil {
		query += fmt.Sprintf(" date = $%d,", argNum)
		args = append(args, *input.Date)
		argNum++
	}
	if input.Department != nil {
		query += fmt.Sprintf(" department = $%d,", argNum)
		args = append(args, *input.Department)
		argNum++
	}

	if len(args) == 0 {
		logger.Log.Warn("Нет полей для обновления чек-ина (repo)", zap.Int("check_in_id", id))
		return nil // нечего обновлять
	}

	query = strings.TrimSuffix(query, ",") + fmt.Sprintf(" WHERE id = $%d", argNum)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Log.Error("Ошибка обновления чек-ина (repo)", zap.Error(err))
	}
	return err
}

func (r *CheckInRepository) Delete(ctx context.Context, id int) error {
	logger.Log.Info("Удаление чек-ина (repo)", zap.Int("check_in_id", id))
	_, err := r.db.Exec(ctx, `DELETE FROM check_ins WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления чек-ина (repo)", zap.Error(err))
	}
	return err
}

// SearchByTag — чек-ины с заданным тегом (для NLS-поиска).
func (r *CheckInRepository) SearchByTag(ctx context.Context, tag string) ([]*models.CheckIn, error) {
	query := `
	SELECT ` + checkInColumns + `
	FROM check_ins c
	JOIN users u ON u.id = c.user_id
	WHERE c.tag = $1
	ORDER BY c.date DESC`
	rows, err := r.db.Query(ctx, query, tag)
	if err != nil {
		logger.Log.Error("Ошибка поиска чек-инов по тегу (repo)", zap.Error(err))
		return nil, err
	}
	return r.scanCheckIns(rows)
}
