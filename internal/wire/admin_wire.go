package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cleaning-booking/internal/adaptor"
	"cleaning-booking/internal/data/repository"
	"cleaning-booking/pkg/middleware"
	"cleaning-booking/pkg/utils"
)

func wireAdmin(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	// Everything under /api/admin requires authentication AND the admin role
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Route("/services", func(r chi.Router) {
			r.Post("/", handler.Catalog.CreateService)
			r.Put("/{id}", handler.Catalog.UpdateService)
			r.Delete("/{id}", handler.Catalog.DeleteService)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", handler.Booking.ListBookings)
			r.Get("/{id}", handler.Booking.GetBooking)
			r.Put("/{id}/status", handler.Booking.UpdateStatus)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", handler.Client.ListClients)
			r.Get("/{id}", handler.Client.GetClient)
			r.Put("/{id}", handler.Client.UpdateClient)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/dashboard", handler.Stats.Dashboard)
			r.Get("/revenue", handler.Stats.Revenue)
			r.Get("/services", handler.Stats.TopServices)
		})
	})
}
