package adaptor

import (
	"net/http"

	"go.uber.org/zap"

	"cleaning-booking/internal/dto/request"
	"cleaning-booking/internal/usecase"
	"cleaning-booking/pkg/utils"
)

type StatsHandler struct {
	service usecase.StatsService
	log     *zap.Logger
}

func NewStatsHandler(service usecase.StatsService, log *zap.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		log:     log.With(zap.String("handler", "stats")),
	}
}

// Dashboard handles GET /api/admin/stats/dashboard (admin)
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "load dashboard")
		return
	}

	utils.ResponseSuccess(w, "success", dashboard)
}

// Revenue handles GET /api/admin/stats/revenue?date_from=...&date_to=... (admin)
func (h *StatsHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.StatsPeriodRequest{
		DateFrom: query.Get("date_from"),
		DateTo:   query.Get("date_to"),
	}

	revenue, err := h.service.RevenueByPeriod(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "load revenue")
		return
	}

	utils.ResponseSuccess(w, "success", revenue)
}

// TopServices handles GET /api/admin/stats/services?limit=N (admin)
func (h *StatsHandler) TopServices(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 10)

	services, err := h.service.TopServices(r.Context(), limit)
	if err != nil {
		handleServiceError(w, h.log, err, "load top services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}
