package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Thought is a short top-level post, independent of any book.
type Thought struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username  string             `bson:"username" json:"username"`
	Comment   string             `bson:"comment" json:"comment"`
	Likes     int                `bson:"likes" json:"likes"`
	Dislikes  int                `bson:"dislikes" json:"dislikes"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	Replies   []Reply            `bson:"replies" json:"replies"`
}
