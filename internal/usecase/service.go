package usecase

import (
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"cleaning-booking/internal/bookingflow"
	"cleaning-booking/internal/data/repository"
	"cleaning-booking/pkg/utils"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Catalog CatalogService
	Booking BookingService
	Flow    FlowService
	Cart    CartService
	Client  ClientService
	Stats   StatsService
}

func NewService(repo *repository.Repository, rdb *redis.Client, config *utils.Config, log *zap.Logger) *Service {
	booking := NewBookingService(repo, config, log)
	drafts := bookingflow.NewRedisDraftStore(rdb, config.DraftTTL())

	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo, log),
		Catalog: NewCatalogService(repo, rdb, config, log),
		Booking: booking,
		Flow:    NewFlowService(repo, drafts, booking, config, log),
		Cart:    NewCartService(repo, config, log),
		Client:  NewClientService(repo, log),
		Stats:   NewStatsService(repo, log),
	}
}
