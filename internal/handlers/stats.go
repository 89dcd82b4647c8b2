package handlers

import (
	"bizdash/internal/logger"
	"bizdash/internal/services"
	helpers "bizdash/internal/utils/helpers"
	"net/http"

	"go.uber.org/zap"
)

type StatsHandler struct {
	service *services.StatsService
}

func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Dashboard godoc
// @Summary Показатели дашборда
// @Description Итоги и распределения считаются по базе, без кэширования.
// @Tags stats
// @Produce json
// @Success 200 {object} models.DashboardResponse
// @Failure 401 {object} helpers.Response
// @Router /api/stats [get]
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	resp, err := h.service.GetDashboard(r.Context())
	if err != nil {
		log.Error("Ошибка получения показателей дашборда", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	helpers.JSON(w, http.StatusOK, resp)
}
