package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cleaning-booking/internal/adaptor"
	"cleaning-booking/internal/data/repository"
	"cleaning-booking/pkg/utils"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/services", func(r chi.Router) {
		r.Get("/", catalogHandler.ListServices)
		r.Get("/{id}", catalogHandler.GetService)
		r.Get("/{id}/slots", catalogHandler.GetSlots)
		r.Get("/{id}/reviews", catalogHandler.ListReviews)
		r.Post("/{id}/reviews", catalogHandler.CreateReview)
	})
}
