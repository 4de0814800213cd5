package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cleaning-booking/internal/adaptor"
	"cleaning-booking/internal/data/repository"
	"cleaning-booking/pkg/middleware"
	"cleaning-booking/pkg/utils"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(repo.Session, log)).Post("/api/logout", authHandler.Logout)
}
