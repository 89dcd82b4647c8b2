package handlers

import (
	"bizdash/internal/config"
	"bizdash/internal/middleware"
	"bizdash/internal/models"
	"bizdash/internal/repository"
	"bizdash/internal/services"
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

type memDocumentRepo struct {
	saved *models.Document
}

func (m *memDocumentRepo) SaveDocument(_ context.Context, doc *models.Document) error {
	doc.ID = 1
	m.saved = doc
	return nil
}

func (m *memDocumentRepo) List(_ context.Context, _ string, _ int) ([]*models.Document, error) {
	return nil, nil
}

func (m *memDocumentRepo) GetByID(_ context.Context, id int) (*models.Document, error) {
	if m.saved == nil || m.saved.ID != id {
		return nil, repository.ErrNotFound
	}
	return m.saved, nil
}

func (m *memDocumentRepo) UpdateFields(_ context.Context, _ int, _ *models.UpdateDocumentRequest) error {
	return nil
}

func (m *memDocumentRepo) Delete(_ context.Context, _ int) error { return nil }

func newTestDocumentHandler(t *testing.T) (*DocumentHandler, *memDocumentRepo) {
	t.Helper()
	repo := &memDocumentRepo{}
	cfg := &config.Config{UploadDir: t.TempDir(), Env: "dev"}
	return NewDocumentHandler(services.NewDocumentService(repo), cfg), repo
}

func multipartUpload(t *testing.T, payload []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "invoice.pdf")
	if err != nil {
		t.Fatalf("ошибка сборки формы: %v", err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("ошибка записи файла в форму: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req.WithContext(context.WithValue(req.Context(), middleware.ContextUserID, 7))
}

func TestDocumentUpload(t *testing.T) {
	handler, repo := newTestDocumentHandler(t)

	rec := httptest.NewRecorder()
	handler.Upload(rec, multipartUpload(t, []byte("hello")))

	if rec.Code != http.StatusCreated {
		t.Fatalf("ожидался 201, получен %d (%s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data models.Document `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("невалидный JSON ответа: %v", err)
	}
	if resp.Data.Status != models.DocumentStatusPending {
		t.Fatalf("новый документ должен быть pending, получен %q", resp.Data.Status)
	}
	if resp.Data.UserID != 7 || resp.Data.Name != "invoice.pdf" {
		t.Fatalf("неожиданный документ: %+v", resp.Data)
	}

	// Файл действительно лежит на диске под сгенерированным именем
	if repo.saved == nil {
		t.Fatal("документ не сохранён в репозитории")
	}
	if _, err := os.Stat(repo.saved.Filepath); err != nil {
		t.Fatalf("файл документа не записан: %v", err)
	}
}

func TestDocumentUploadTooLarge(t *testing.T) {
	handler, repo := newTestDocumentHandler(t)

	rec := httptest.NewRecorder()
	handler.Upload(rec, multipartUpload(t, bytes.Repeat([]byte("a"), maxUploadSize+1)))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("ожидался 413, получен %d", rec.Code)
	}
	if repo.saved != nil {
		t.Fatal("слишком большой документ не должен сохраняться")
	}
}

func TestDocumentUpdateInvalidStatus(t *testing.T) {
	handler, repo := newTestDocumentHandler(t)
	repo.saved = &models.Document{ID: 1, UserID: 7, Status: models.DocumentStatusPending}

	req := httptest.NewRequest(http.MethodPatch, "/api/documents/1",
		bytes.NewReader([]byte(`{"status":"archived"}`)))
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextUserID, 7))

	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("неизвестный статус: ожидался 400, получен %d", rec.Code)
	}
}
