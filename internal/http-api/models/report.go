package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReportTypeReview       = "review"
	ReportTypeReviewReply  = "review_reply"
	ReportTypeThought      = "thought"
	ReportTypeThoughtReply = "thought_reply"
)

const ReportStatusPending = "pending"

// Report points at a piece of content via a type discriminator plus the ids
// needed to locate it. BookID is set for review kinds, ThoughtID for
// thought_reply; ItemID is always the reported entity itself.
type Report struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Type       string              `bson:"type" json:"type"`
	ItemID     primitive.ObjectID  `bson:"item_id" json:"item_id"`
	BookID     *primitive.ObjectID `bson:"book_id,omitempty" json:"book_id,omitempty"`
	ThoughtID  *primitive.ObjectID `bson:"thought_id,omitempty" json:"thought_id,omitempty"`
	Reporter   string              `bson:"reporter" json:"reporter"`
	Reason     string              `bson:"reason" json:"reason"`
	Status     string              `bson:"status" json:"status"`
	ReportedAt time.Time           `bson:"reported_at" json:"reported_at"`
}

// ValidReportType reports whether t is one of the recognised discriminators.
func ValidReportType(t string) bool {
	switch t {
	case ReportTypeReview, ReportTypeReviewReply, ReportTypeThought, ReportTypeThoughtReply:
		return true
	}
	return false
}
