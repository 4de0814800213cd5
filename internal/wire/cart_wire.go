package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cleaning-booking/internal/adaptor"
	"cleaning-booking/internal/data/repository"
	"cleaning-booking/pkg/middleware"
	"cleaning-booking/pkg/utils"
)

func wireCart(
	r chi.Router,
	cartHandler *adaptor.CartHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.Clear)
		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{id}", cartHandler.UpdateItem)
		r.Delete("/items/{id}", cartHandler.RemoveItem)
		r.Post("/promo", cartHandler.ApplyPromo)
		r.Post("/checkout", cartHandler.Checkout)
	})
}
