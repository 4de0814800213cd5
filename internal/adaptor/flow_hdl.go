package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cleaning-booking/internal/dto/request"
	"cleaning-booking/internal/usecase"
	"cleaning-booking/pkg/utils"
)

type FlowHandler struct {
	service usecase.FlowService
	log     *zap.Logger
}

func NewFlowHandler(service usecase.FlowService, log *zap.Logger) *FlowHandler {
	return &FlowHandler{
		service: service,
		log:     log.With(zap.String("handler", "flow")),
	}
}

// Start handles POST /api/booking-flow (public)
func (h *FlowHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartFlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	var userID *uuid.UUID
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		userID = &id
	}

	flow, err := h.service.Start(r.Context(), &req, userID)
	if err != nil {
		handleServiceError(w, h.log, err, "start booking flow")
		return
	}

	utils.ResponseCreated(w, "success", flow)
}

// Get handles GET /api/booking-flow/{draftID} (public)
func (h *FlowHandler) Get(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")
	if _, err := utils.ParseUUID(draftID); err != nil {
		utils.ResponseBadRequest(w, "Invalid draft id", nil)
		return
	}

	flow, err := h.service.Get(r.Context(), draftID)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking flow")
		return
	}

	utils.ResponseSuccess(w, "success", flow)
}

// Dispatch handles POST /api/booking-flow/{draftID}/actions (public)
func (h *FlowHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")
	if _, err := utils.ParseUUID(draftID); err != nil {
		utils.ResponseBadRequest(w, "Invalid draft id", nil)
		return
	}

	var req request.FlowActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	flow, err := h.service.Dispatch(r.Context(), draftID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "dispatch booking flow action")
		return
	}

	utils.ResponseSuccess(w, "success", flow)
}
