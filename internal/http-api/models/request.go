package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// BookRequest is a user's ask for a book to be added to the catalogue.
// Admins resolve it into a real Book or reject it; either way the request
// document is deleted afterwards.
type BookRequest struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title    string             `bson:"title" json:"title"`
	Series   string             `bson:"series" json:"series"`
	Author   []string           `bson:"author" json:"author"`
	Genres   []string           `bson:"genres" json:"genres"`
	Language string             `bson:"language" json:"language"`
	ISBN     int64              `bson:"isbn" json:"isbn"`
	Username string             `bson:"username" json:"username"`
}
