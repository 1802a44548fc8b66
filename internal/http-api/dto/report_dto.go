package dto

// CreateReportRequest: payload for reporting a piece of content. BookID is
// required for review and review_reply reports, ThoughtID for thought_reply.
type CreateReportRequest struct {
	Type      string `json:"type" form:"type" binding:"required,oneof=review review_reply thought thought_reply"`
	ItemID    string `json:"item_id" form:"item_id" binding:"required"`
	BookID    string `json:"book_id" form:"book_id"`
	ThoughtID string `json:"thought_id" form:"thought_id"`
	Reason    string `json:"reason" form:"reason" binding:"required"`
}
