package dto

// CreateReviewRequest: payload for posting a review on a book
type CreateReviewRequest struct {
	Title   string `json:"title" form:"title" binding:"required"`
	Comment string `json:"comment" form:"comment" binding:"required"`
	Stars   int    `json:"stars" form:"stars" binding:"required,min=1,max=5"`
}

// CreateReplyRequest: payload for replying to a review or a thought
type CreateReplyRequest struct {
	Content string `json:"content" form:"content" binding:"required"`
}
