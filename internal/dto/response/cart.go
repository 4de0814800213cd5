package response

import (
	"time"

	"cleaning-booking/internal/data/entity"
)

type CartItemResponse struct {
	ID           int64                   `json:"id"`
	ServiceID    int64                   `json:"service_id"`
	ServiceTitle string                  `json:"service_title"`
	Price        float64                 `json:"price"`
	Quantity     int                     `json:"quantity"`
	Options      []ServiceOptionResponse `json:"options,omitempty"`
	LineTotal    float64                 `json:"line_total"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	Subtotal  float64            `json:"subtotal"`
	Discount  float64            `json:"discount"`
	Total     float64            `json:"total"`
	PromoCode *string            `json:"promo_code,omitempty"`
}

type OrderItemResponse struct {
	ServiceID int64                    `json:"service_id"`
	Title     string                   `json:"title"`
	Price     float64                  `json:"price"`
	Quantity  int                      `json:"quantity"`
	Options   []entity.OrderItemOption `json:"options,omitempty"`
}

type OrderResponse struct {
	ID        int64               `json:"id"`
	Reference string              `json:"reference"`
	Subtotal  float64             `json:"subtotal"`
	Discount  float64             `json:"discount"`
	Total     float64             `json:"total"`
	PromoCode *string             `json:"promo_code,omitempty"`
	Status    entity.OrderStatus  `json:"status"`
	Items     []OrderItemResponse `json:"items,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

func OrderToResponse(order *entity.Order, items []entity.OrderItem) OrderResponse {
	resp := OrderResponse{
		ID:        order.ID,
		Reference: order.Reference,
		Subtotal:  order.Subtotal,
		Discount:  order.Discount,
		Total:     order.Total,
		PromoCode: order.PromoCode,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}

	for _, item := range items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ServiceID: item.ServiceID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Options:   item.Options,
		})
	}

	return resp
}
