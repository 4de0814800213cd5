package repository

import (
	"cleaning-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Service ServiceRepository
	Option  ServiceOptionRepository
	Booking BookingRepository
	Client  ClientRepository
	Cart    CartRepository
	Order   OrderRepository
	Review  ReviewRepository
	Stats   StatsRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Service: NewServiceRepository(db, log),
		Option:  NewServiceOptionRepository(db, log),
		Booking: NewBookingRepository(db, log),
		Client:  NewClientRepository(db, log),
		Cart:    NewCartRepository(db, log),
		Order:   NewOrderRepository(db, log),
		Review:  NewReviewRepository(db, log),
		Stats:   NewStatsRepository(db, log),
	}
}
