package handlers

import (
	"bizdash/internal/logger"
	"bizdash/internal/middleware"
	"bizdash/internal/models"
	"bizdash/internal/services"
	helpers "bizdash/internal/utils/helpers"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type CheckInHandler struct {
	service *services.CheckInService
}

func NewCheckInHandler(service *services.CheckInService) *CheckInHandler {
	return &CheckInHandler{service: service}
}

type createCheckInRequest struct {
	Hours      float64   `json:"hours"`
	Tag        string    `json:"tag"`
	Activities string    `json:"activities"`
	Date       time.Time `json:"date"`
	Department string    `json:"department"`
}

// List godoc
// @Summary Список чек-инов
// @Description Общая лента; с ?mine=1 — только чек-ины текущего пользователя.
// @Tags checkins
// @Produce json
// @Param mine query string false "1 — только свои"
// @Success 200 {array} models.CheckIn
// @Failure 401 {object} helpers.Response
// @Router /api/checkins [get]
func (h *CheckInHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	userID, _ := middleware.UserIDFromContext(r.Context())

	mine := r.URL.Query().Get("mine") == "1"
	items, err := h.service.List(r.Context(), userID, mine)
	if err != nil {
		log.Error("Ошибка получения чек-инов", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if items == nil {
		items = []*models.CheckIn{}
	}
	helpers.JSON(w, http.StatusOK, items)
}

// Create godoc
// @Summary Создать чек-ин
// @Tags checkins
// @Accept json
// @Produce json
// @Param input body createCheckInRequest true "Данные чек-ина"
// @Success 201 {object} models.CheckIn
// @Failure 400 {object} helpers.Response
// @Failure 401 {object} helpers.Response
// @Router /api/checkins [post]
func (h *CheckInHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req createCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в Create чек-ина", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Hours == 0 || req.Tag == "" || req.Activities == "" || req.Date.IsZero() || req.Department == "" {
		log.Warn("Неполные данные чек-ина")
		helpers.Error(w, http.StatusBadRequest, "missing fields")
		return
	}

	checkIn := &models.CheckIn{
		UserID:     userID,
		Hours:      req.Hours,
		Tag:        req.Tag,
		Activities: req.Activities,
		Date:       req.Date,
		Department: req.Department,
	}
	if err := h.service.Create(r.Context(), checkIn); err != nil {
		log.Error("Ошибка создания чек-ина", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	log.Info("Чек-ин создан", zap.Int("check_in_id", checkIn.ID))
	helpers.JSON(w, http.StatusCreated, checkIn)
}

// Update godoc
// @Summary Обновить свой чек-ин
// @Tags checkins
// @Accept json
// @Produce json
// @Param id path int true "ID чек-ина"
// @Param input body models.UpdateCheckInRequest true "Изменяемые поля"
// @Success 200 {object} models.CheckIn
// @Failure 403 {object} helpers.Response
// @Failure 404 {object} helpers.Response
// @Router /api/checkins/{id} [put]
func (h *CheckInHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON в Update чек-ина", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	updated, err := h.service.Update(r.Context(), userID, id, &req)
	if err != nil {
		writeOwnershipError(w, log, err, "check_in_id", id)
		return
	}

	log.Info("Чек-ин обновлён", zap.Int("check_in_id", id))
	helpers.JSON(w, http.StatusOK, updated)
}

// Delete godoc
// @Summary Удалить свой чек-ин
// @Tags checkins
// @Produce json
// @Param id path int true "ID чек-ина"
// @Success 200 {object} map[string]bool
// @Failure 403 {object} helpers.Response
// @Failure 404 {object} helpers.Response
// @Router /api/checkins/{id} [delete]
func (h *CheckInHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeOwnershipError(w, log, err, "check_in_id", id)
		return
	}

	log.Info("Чек-ин удалён", zap.Int("check_in_id", id))
	helpers.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// writeOwnershipError маппит ошибки владения записью в HTTP-статусы.
func writeOwnershipError(w http.ResponseWriter, log *zap.Logger, err error, idField string, id int) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		log.Warn("Запись не найдена", zap.Int(idField, id))
		helpers.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrForbidden):
		log.Warn("Доступ к чужой записи", zap.Int(idField, id))
		helpers.Error(w, http.StatusForbidden, "forbidden")
	default:
		log.Error("Ошибка операции с записью", zap.Int(idField, id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
