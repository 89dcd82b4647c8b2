package handlers

import (
	"bizdash/internal/logger"
	"bizdash/internal/services"
	helpers "bizdash/internal/utils/helpers"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// InsightHandler отдаёт мок AI-подсказки. Логика нарочно примитивная и
// детерминированная — настоящей модели за этими ручками нет.
type InsightHandler struct {
	service *services.InsightService
}

func NewInsightHandler(service *services.InsightService) *InsightHandler {
	return &InsightHandler{service: service}
}

type categorizeRequest struct {
	Description string `json:"description"`
}

type documentIDRequest struct {
	DocumentID int `json:"document_id"`
}

type nlsRequest struct {
	Query   string `json:"query"`
	Context string `json:"context"`
}

// Categorize godoc
// @Summary Подбор тега активности по описанию
// @Tags genai
// @Accept json
// @Produce json
// @Param input body categorizeRequest true "Описание активности"
// @Success 200 {object} map[string]string
// @Failure 400 {object} helpers.Response
// @Router /api/genai/categorize [post]
func (h *InsightHandler) Categorize(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req categorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в Categorize", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	tag := h.service.Categorize(req.Description)
	helpers.JSON(w, http.StatusOK, map[string]string{"tag": tag})
}

// AnalyzeDocument godoc
// @Summary Мок-извлечение данных из документа
// @Tags genai
// @Accept json
// @Produce json
// @Param input body documentIDRequest true "ID документа"
// @Success 200 {object} models.ExtractedInfo
// @Failure 400 {object} helpers.Response
// @Router /api/genai/analyze-document [post]
func (h *InsightHandler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req documentIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в AnalyzeDocument", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	helpers.JSON(w, http.StatusOK, map[string]interface{}{
		"extracted_info": h.service.AnalyzeDocument(req.DocumentID),
	})
}

// SuggestWorkflow godoc
// @Summary Подсказка следующего шага по документу
// @Tags genai
// @Accept json
// @Produce json
// @Param input body documentIDRequest true "ID документа"
// @Success 200 {object} map[string]string
// @Failure 400 {object} helpers.Response
// @Router /api/genai/suggest-workflow [post]
func (h *InsightHandler) SuggestWorkflow(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req documentIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в SuggestWorkflow", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	helpers.JSON(w, http.StatusOK, map[string]string{
		"suggestion": h.service.SuggestWorkflow(req.DocumentID),
	})
}

// Search godoc
// @Summary Поиск по запросу на естественном языке
// @Description context: documents | checkins. Ключевые слова запроса
// @Description транслируются в фильтры по базе.
// @Tags genai
// @Accept json
// @Produce json
// @Param input body nlsRequest true "Запрос и контекст поиска"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} helpers.Response
// @Router /api/genai/nls [post]
func (h *InsightHandler) Search(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req nlsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в Search", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	var (
		results interface{}
		err     error
	)
	switch req.Context {
	case "documents":
		results, err = h.service.SearchDocuments(r.Context(), req.Query)
	case "checkins":
		results, err = h.service.SearchCheckIns(r.Context(), req.Query)
	default:
		helpers.Error(w, http.StatusBadRequest, "unknown search context")
		return
	}
	if err != nil {
		log.Error("Ошибка NLS-поиска", zap.String("context", req.Context), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	helpers.JSON(w, http.StatusOK, map[string]interface{}{"results": results})
}
