package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cleaning-booking/internal/adaptor"
	"cleaning-booking/internal/data/repository"
	"cleaning-booking/pkg/middleware"
	"cleaning-booking/pkg/utils"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Anyone can book; a logged-in caller gets the booking on their account
	r.With(middleware.OptionalAuth(repo.Session, log)).
		Post("/api/bookings", bookingHandler.CreateBooking)
}
