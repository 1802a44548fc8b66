package dto

// CreateThoughtRequest: payload for posting a thought
type CreateThoughtRequest struct {
	Comment string `json:"comment" form:"comment" binding:"required"`
}
