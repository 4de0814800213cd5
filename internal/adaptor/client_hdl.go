package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cleaning-booking/internal/dto/request"
	"cleaning-booking/internal/usecase"
	"cleaning-booking/pkg/utils"
)

type ClientHandler struct {
	service usecase.ClientService
	stats   usecase.StatsService
	log     *zap.Logger
}

func NewClientHandler(service usecase.ClientService, stats usecase.StatsService, log *zap.Logger) *ClientHandler {
	return &ClientHandler{
		service: service,
		stats:   stats,
		log:     log.With(zap.String("handler", "client")),
	}
}

// ListClients handles GET /api/admin/clients (admin)
func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	var query *string
	if search := r.URL.Query().Get("query"); search != "" {
		query = &search
	}

	clients, err := h.service.ListClients(r.Context(), paginationFromQuery(r), query)
	if err != nil {
		handleServiceError(w, h.log, err, "list clients")
		return
	}

	utils.ResponseSuccess(w, "success", clients)
}

// GetClient handles GET /api/admin/clients/{id} (admin)
func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id := utils.ParseInt64(chi.URLParam(r, "id"))
	if id < 1 {
		utils.ResponseBadRequest(w, "Invalid client id", nil)
		return
	}

	client, bookings, err := h.service.GetClient(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get client")
		return
	}

	utils.ResponseSuccess(w, "success", map[string]any{
		"client":   client,
		"bookings": bookings,
	})
}

// UpdateClient handles PUT /api/admin/clients/{id} (admin)
func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id := utils.ParseInt64(chi.URLParam(r, "id"))
	if id < 1 {
		utils.ResponseBadRequest(w, "Invalid client id", nil)
		return
	}

	var req request.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	client, err := h.service.UpdateClient(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update client")
		return
	}

	utils.ResponseSuccess(w, "success", client)
}
