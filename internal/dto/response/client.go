package response

import (
	"time"

	"cleaning-booking/internal/data/entity"
	"cleaning-booking/internal/data/repository"
)

type ClientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ClientToResponse(c *entity.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}

type DashboardResponse struct {
	TotalBookings   int64             `json:"total_bookings"`
	PendingBookings int64             `json:"pending_bookings"`
	TotalClients    int64             `json:"total_clients"`
	TotalRevenue    float64           `json:"total_revenue"`
	RecentBookings  []BookingResponse `json:"recent_bookings,omitempty"`
}

type RevenuePointResponse struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type ServicePerformanceResponse struct {
	ServiceID int64   `json:"service_id"`
	Title     string  `json:"title"`
	Bookings  int64   `json:"bookings"`
	Revenue   float64 `json:"revenue"`
}

func RevenuePointToResponse(p repository.RevenuePoint) RevenuePointResponse {
	return RevenuePointResponse{
		Date:   p.Date.Format("2006-01-02"),
		Amount: p.Amount,
	}
}

func ServicePerformanceToResponse(p repository.ServicePerformance) ServicePerformanceResponse {
	return ServicePerformanceResponse{
		ServiceID: p.ServiceID,
		Title:     p.Title,
		Bookings:  p.Bookings,
		Revenue:   p.Revenue,
	}
}
