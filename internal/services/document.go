package services

import (
	"bizdash/internal/logger"
	"bizdash/internal/models"
	"bizdash/internal/repository"
	"context"
	"errors"

	"go.uber.org/zap"
)

type DocumentService struct {
	repo DocumentRepo
}

func NewDocumentService(repo DocumentRepo) *DocumentService {
	return &DocumentService{repo: repo}
}

type DocumentRepo interface {
	SaveDocument(ctx context.Context, doc *models.Document) error
	List(ctx context.Context, status string, userID int) ([]*models.Document, error)
	GetByID(ctx context.Context, id int) (*models.Document, error)
	UpdateFields(ctx context.Context, id int, input *models.UpdateDocumentRequest) error
	Delete(ctx context.Context, id int) error
}

func (s *DocumentService) Upload(ctx context.Context, doc *models.Document) error {
	logger.Log.Info("Сохранение документа (service)", zap.String("name", doc.Name), zap.Int("user_id", doc.UserID))
	if doc.Status == "" {
		doc.Status = models.DocumentStatusPending
	}
	return s.repo.SaveDocument(ctx, doc)
}

func (s *DocumentService) List(ctx context.Context, status string, userID int) ([]*models.Document, error) {
	return s.repo.List(ctx, status, userID)
}

func (s *DocumentService) GetByID(ctx context.Context, id int) (*models.Document, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return doc, err
}

func (s *DocumentService) getOwned(ctx context.Context, userID, id int) (*models.Document, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if doc.UserID != userID {
		logger.Log.Warn("Чужой документ (service)", zap.Int("doc_id", id), zap.Int("user_id", userID))
		return nil, ErrForbidden
	}
	return doc, nil
}

func (s *DocumentService) Update(ctx context.Context, userID, id int, input *models.UpdateDocumentRequest) (*models.Document, error) {
	logger.Log.Info("Обновление документа (service)", zap.Int("doc_id", id), zap.Int("user_id", userID))
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateFields(ctx, id, input); err != nil {
		logger.Log.Error("Ошибка обновления документа (service)", zap.Error(err), zap.Int("doc_id", id))
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete возвращает удалённую запись, чтобы хендлер мог убрать файл с диска.
func (s *DocumentService) Delete(ctx context.Context, userID, id int) (*models.Document, error) {
	logger.Log.Info("Удаление документа (service)", zap.Int("doc_id", id), zap.Int("user_id", userID))
	doc, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return doc, nil
}
