package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is an in-app notification record, not an email.
type Message struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RecipientName string             `bson:"recipient_name" json:"recipient_name"`
	Content       string             `bson:"content" json:"content"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
	IsRead        bool               `bson:"is_read" json:"is_read"`
}
