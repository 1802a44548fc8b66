package dto

// AddTriggersRequest: payload for appending trigger warnings to a book,
// comma-separated.
type AddTriggersRequest struct {
	Triggers string `json:"triggers" form:"triggers" binding:"required"`
}
