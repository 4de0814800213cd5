package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cleaning-booking/internal/dto/request"
	"cleaning-booking/internal/usecase"
	"cleaning-booking/pkg/utils"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListServices handles GET /api/services (public)
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.ServiceListRequest{
		PaginatedRequest: paginationFromQuery(r),
	}
	if category := query.Get("category"); category != "" {
		req.Category = &category
	}
	if search := query.Get("query"); search != "" {
		req.Query = &search
	}

	services, err := h.service.ListServices(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// GetService handles GET /api/services/{id} (public)
func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id := utils.ParseInt64(chi.URLParam(r, "id"))
	if id < 1 {
		utils.ResponseBadRequest(w, "Invalid service id", nil)
		return
	}

	service, err := h.service.GetService(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// GetSlots handles GET /api/services/{id}/slots?date=YYYY-MM-DD (public).
// Without a date every slot comes back enabled.
func (h *CatalogHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	id := utils.ParseInt64(chi.URLParam(r, "id"))
	if id < 1 {
		utils.ResponseBadRequest(w, "Invalid service id", nil)
		return
	}

	var date *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid date, expected YYYY-MM-DD", nil)
			return
		}
		date = &parsed
	}

	slots, err := h.service.GetSlots(r.Context(), id, date)
	if err != nil {
		handleServiceError(w, h.log, err, "get slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// CreateService handles POST /api/admin/services (admin)
func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req request.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	service, err := h.service.CreateService(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create service")
		return
	}

	utils.ResponseCreated(w, "success", service)
}

// UpdateService handles PUT /api/admin/services/{id} (admin)
func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id := utils.ParseInt64(chi.URLParam(r, "id"))
	if id < 1 {
		utils.ResponseBadRequest(w, "Invalid service id", nil)
		return
	}

	var req request.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	service, err := h.service.UpdateService(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// DeleteService handles DELETE /api/admin/services/{id} (admin)
func (h *CatalogHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id := utils.ParseInt64(chi.URLParam(r, "id"))
	if id < 1 {
		utils.ResponseBadRequest(w, "Invalid service id", nil)
		return
	}

	if err := h.service.DeleteService(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete service")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ListReviews handles GET /api/services/{id}/reviews (public)
func (h *CatalogHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id := utils.ParseInt64(chi.URLParam(r, "id"))
	if id < 1 {
		utils.ResponseBadRequest(w, "Invalid service id", nil)
		return
	}

	reviews, err := h.service.ListReviews(r.Context(), id, paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// CreateReview handles POST /api/services/{id}/reviews (public)
func (h *CatalogHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	id := utils.ParseInt64(chi.URLParam(r, "id"))
	if id < 1 {
		utils.ResponseBadRequest(w, "Invalid service id", nil)
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	review, err := h.service.CreateReview(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "success", review)
}
