package dto

// AddHaveReadRequest: payload for shelving a finished book
type AddHaveReadRequest struct {
	Stars    int    `json:"stars" form:"stars" binding:"omitempty,min=1,max=5"`
	DateRead string `json:"date_read" form:"date_read"`
}

// UpdateProgressRequest: payload for recording reading progress
type UpdateProgressRequest struct {
	CurrentPage *int `json:"current_page" form:"current_page" binding:"required"`
}

// ProgressResponse: response payload after a progress update
type ProgressResponse struct {
	Progress float64 `json:"progress"`
}
