package handlers

import (
	"bizdash/internal/config"
	"bizdash/internal/logger"
	"bizdash/internal/middleware"
	"bizdash/internal/models"
	"bizdash/internal/services"
	helpers "bizdash/internal/utils/helpers"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const maxUploadSize = 10 << 20 // 10MB

type DocumentHandler struct {
	service   *services.DocumentService
	uploadDir string
}

func NewDocumentHandler(service *services.DocumentService, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{
		service:   service,
		uploadDir: cfg.UploadDir,
	}
}

// Upload godoc
// @Summary Загрузка документа
// @Description Новый документ получает статус pending.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл документа"
// @Param name formData string false "Отображаемое имя (по умолчанию — имя файла)"
// @Success 201 {object} models.Document
// @Failure 400 {object} helpers.Response
// @Failure 401 {object} helpers.Response
// @Failure 413 {object} helpers.Response
// @Router /api/documents [post]
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	userID, _ := middleware.UserIDFromContext(r.Context())

	// ParseMultipartForm ограничивает только буфер в памяти, остальное уходит
	// во временные файлы — лимит на размер тела держит MaxBytesReader
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			log.Warn("Превышен лимит размера загрузки", zap.Int64("limit", maxErr.Limit))
			helpers.Error(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		log.Warn("Ошибка разбора формы при загрузке документа", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Warn("Файл не найден при загрузке", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	if err := os.MkdirAll(h.uploadDir, os.ModePerm); err != nil {
		log.Error("Ошибка создания каталога загрузок", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	storedName := fmt.Sprintf("%s_%s", uuid.NewString(), header.Filename)
	fullPath := filepath.Join(h.uploadDir, storedName)

	dst, err := os.Create(fullPath)
	if err != nil {
		log.Error("Ошибка создания файла", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		log.Error("Ошибка записи файла", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	doc := &models.Document{
		UserID:    userID,
		Name:      name,
		Filepath:  fullPath,
		Status:    models.DocumentStatusPending,
		SizeBytes: size,
	}
	if err := h.service.Upload(r.Context(), doc); err != nil {
		log.Error("Ошибка сохранения документа в базе", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	log.Info("Документ загружен", zap.Int("doc_id", doc.ID), zap.String("name", doc.Name))
	helpers.JSON(w, http.StatusCreated, doc)
}

// List godoc
// @Summary Список документов
// @Tags documents
// @Produce json
// @Param status query string false "Фильтр по статусу"
// @Param user_id query int false "Фильтр по владельцу"
// @Success 200 {array} models.Document
// @Failure 401 {object} helpers.Response
// @Router /api/documents [get]
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	status := r.URL.Query().Get("status")
	if status == "all" {
		status = ""
	}
	ownerID := 0
	if v := r.URL.Query().Get("user_id"); v != "" && v != "all" {
		ownerID, _ = strconv.Atoi(v)
	}

	docs, err := h.service.List(r.Context(), status, ownerID)
	if err != nil {
		log.Error("Ошибка получения документов", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if docs == nil {
		docs = []*models.Document{}
	}
	helpers.JSON(w, http.StatusOK, docs)
}

// Download godoc
// @Summary Скачать документ
// @Tags documents
// @Produce octet-stream
// @Param id path int true "ID документа"
// @Success 200 {file} file
// @Failure 404 {object} helpers.Response
// @Router /api/documents/{id}/download [get]
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	doc, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		log.Warn("Документ не найден", zap.Int("doc_id", id))
		helpers.Error(w, http.StatusNotFound, "not found")
		return
	}

	f, err := os.Open(doc.Filepath)
	if err != nil {
		log.Warn("Файл документа отсутствует на диске", zap.Int("doc_id", id), zap.String("path", doc.Filepath))
		helpers.Error(w, http.StatusNotFound, "file not found")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	if _, err := io.Copy(w, f); err != nil {
		log.Error("Ошибка отдачи файла", zap.Int("doc_id", id), zap.Error(err))
	}
}

// Update godoc
// @Summary Изменить статус документа или привязку к чек-ину
// @Tags documents
// @Accept json
// @Produce json
// @Param id path int true "ID документа"
// @Param input body models.UpdateDocumentRequest true "Изменяемые поля"
// @Success 200 {object} models.Document
// @Failure 403 {object} helpers.Response
// @Failure 404 {object} helpers.Response
// @Router /api/documents/{id} [patch]
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в Update документа", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Status != nil && !models.ValidDocumentStatus(*req.Status) {
		log.Warn("Неизвестный статус документа", zap.String("status", *req.Status))
		helpers.Error(w, http.StatusBadRequest, "invalid status")
		return
	}

	doc, err := h.service.Update(r.Context(), userID, id, &req)
	if err != nil {
		writeOwnershipError(w, log, err, "doc_id", id)
		return
	}

	log.Info("Документ обновлён", zap.Int("doc_id", id))
	helpers.JSON(w, http.StatusOK, doc)
}

// Delete godoc
// @Summary Удалить свой документ
// @Tags documents
// @Produce json
// @Param id path int true "ID документа"
// @Success 200 {object} map[string]bool
// @Failure 403 {object} helpers.Response
// @Failure 404 {object} helpers.Response
// @Router /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	doc, err := h.service.Delete(r.Context(), userID, id)
	if err != nil {
		writeOwnershipError(w, log, err, "doc_id", id)
		return
	}

	// Файл убираем после записи в БД; ошибка здесь не критична
	if err := os.Remove(doc.Filepath); err != nil {
		log.Warn("Не удалось удалить файл документа", zap.Int("doc_id", id), zap.Error(err))
	}

	log.Info("Документ удалён", zap.Int("doc_id", id))
	helpers.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
