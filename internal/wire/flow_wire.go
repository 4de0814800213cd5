package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cleaning-booking/internal/adaptor"
	"cleaning-booking/internal/data/repository"
	"cleaning-booking/pkg/middleware"
	"cleaning-booking/pkg/utils"
)

func wireFlow(
	r chi.Router,
	flowHandler *adaptor.FlowHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// The step-by-step booking flow works for anonymous visitors too
	r.Route("/api/booking-flow", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(repo.Session, log))

		r.Post("/", flowHandler.Start)
		r.Get("/{draftID}", flowHandler.Get)
		r.Post("/{draftID}/actions", flowHandler.Dispatch)
	})
}
