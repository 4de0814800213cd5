package request

type CreateReviewRequest struct {
	Author string `json:"author" validate:"required,max=100"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"required,max=2000"`
}
