package repository

import (
	"bizdash/internal/logger"
	"bizdash/internal/models"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type DocumentRepository struct {
	db Querier
}

func NewDocumentRepository(db Querier) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = `d.id, d.user_id, u.username, d.check_in_id, d.name, d.filepath, d.status, d.size_bytes, d.uploaded_at`

// SaveDocument сохраняет запись о загруженном документе.
func (r *DocumentRepository) SaveDocument(ctx context.Context, doc *models.Document) error {
	logger.Log.Info("Сохранение документа (repo)", zap.String("name", doc.Name), zap.Int("user_id", doc.UserID))
	query := `
	INSERT INTO documents (user_id, check_in_id, name, filepath, status, size_bytes)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, uploaded_at`
	err := r.db.QueryRow(ctx, query,
		doc.UserID,
		doc.CheckInID,
		doc.Name,
		doc.Filepath,
		doc.Status,
		doc.SizeBytes,
	).Scan(&doc.ID, &doc.UploadedAt)
	if err != nil {
		logger.Log.Error("Ошибка сохранения документа (repo)", zap.Error(err))
	}
	return err
}

func (r *DocumentRepository) scanDocuments(rows pgx.Rows) ([]*models.Document, error) {
	defer rows.Close()
	var docs []*models.Document
	for rows.Next() {
		var d models.Document
		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.Username,
			&d.CheckInID,
			&d.Name,
			&d.Filepath,
			&d.Status,
			&d.SizeBytes,
			&d.UploadedAt,
		)
		if err != nil {
			logger.Log.Error("Ошибка сканирования документа (repo)", zap.Error(err))
			return nil, err
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}

// List — документы с фильтрами по статусу и владельцу (оба опциональны).
func (r *DocumentRepository) List(ctx context.Context, status string, userID int) ([]*models.Document, error) {
	query := `
	SELECT ` + documentColumns + `
	FROM documents d
	JOIN users u ON u.id = d.user_id`
	var (
		conds []string
		args  []interface{}
	)
	if status != "" {
		args = append(args, status)
		conds = append(conds, fmt.Sprintf("d.status = $%d", len(args)))
	}
	if userID != 0 {
		args = append(args, userID)
		conds = append(conds, fmt.Sprintf("d.user_id = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY d.uploaded_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Log.Error("Ошибка получения документов (repo)", zap.Error(err))
		return nil, err
	}
	return r.scanDocuments(rows)
}

func (r *DocumentRepository) GetByID(ctx context.Context, id int) (*models.Document, error) {
	query := `
	SELECT ` + documentColumns + `
	FROM documents d
	JOIN users u ON u.id = d.user_id
	WHERE d.id = $1`
	var d models.Document
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID,
		&d.UserID,
		&d.Username,
		&d.CheckInID,
		&d.Name,
		&d.Filepath,
		&d.Status,
		&d.SizeBytes,
		&d.UploadedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.Error("Ошибка получения документа по ID (repo)", zap.Error(err))
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepository) UpdateFields(ctx context.Context, id int, input *models.UpdateDocumentRequest) error {
	logger.Log.Info("Обновление документа (repo)", zap.Int("doc_id", id))
	query := `UPDATE documents SET`
	var args []interface{}
	argNum := 1

	if input.Status != nil {
		query += fmt.Sprintf(" status = $%d,", argNum)
		args = append(args, *input.Status)
		argNum++
	}
	if input.CheckInID != nil {
		query += fmt.Sprintf(" check_in_id = $%d,", argNum)
		args = append(args, *input.CheckInID)
		argNum++
	}

	if len(args) == 0 {
		logger.Log.Warn("Нет полей для обновления документа (repo)", zap.Int("doc_id", id))
		return nil
	}

	query = strings.TrimSuffix(query, ",") + fmt.Sprintf(" WHERE id = $%d", argNum)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Log.Error("Ошибка обновления документа (repo)", zap.Error(err))
	}
	return err
}

func (r *DocumentRepository) Delete(ctx context.Context, id int) error {
	logger.Log.Info("Удаление документа (repo)", zap.Int("doc_id", id))
	_, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления документа (repo)", zap.Error(err))
	}
	return err
}

// SearchByStatusAndPeriod — документы для NLS-поиска: фильтр по статусу и
// границам даты загрузки (любой из параметров может быть нулевым).
func (r *DocumentRepository) SearchByStatusAndPeriod(ctx context.Context, status string, since, until *time.Time) ([]*models.Document, error) {
	query := `
	SELECT ` + documentColumns + `
	FROM documents d
	JOIN users u ON u.id = d.user_id`
	var (
		conds []string
		args  []interface{}
	)
	if status != "" {
		args = append(args, status)
		conds = append(conds, fmt.Sprintf("d.status = $%d", len(args)))
	}
	if since != nil {
		args = append(args, *since)
		conds = append(conds, fmt.Sprintf("d.uploaded_at >= $%d", len(args)))
	}
	if until != nil {
		args = append(args, *until)
		conds = append(conds, fmt.Sprintf("d.uploaded_at < $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY d.uploaded_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Log.Error("Ошибка NLS-поиска документов (repo)", zap.Error(err))
		return nil, err
	}
	return r.scanDocuments(rows)
}
