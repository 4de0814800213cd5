package request

type AddCartItemRequest struct {
	ServiceID int64   `json:"service_id" validate:"required,min=1"`
	Quantity  int     `json:"quantity" validate:"min=0"`
	OptionIDs []int64 `json:"option_ids,omitempty"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type ApplyPromoRequest struct {
	Code string `json:"code" validate:"required,max=50"`
}

type CheckoutRequest struct {
	PromoCode *string `json:"promo_code,omitempty" validate:"omitempty,max=50"`
}
