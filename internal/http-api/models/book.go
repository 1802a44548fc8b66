package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reply is embedded inside a Review's or a Thought's replies array.
type Reply struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Username  string             `bson:"username" json:"username"`
	Content   string             `bson:"content" json:"content"`
	Likes     int                `bson:"likes" json:"likes"`
	Dislikes  int                `bson:"dislikes" json:"dislikes"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Review is embedded inside a Book's user_reviews array.
type Review struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Username  string             `bson:"username" json:"username"`
	Title     string             `bson:"title" json:"title"`
	Comment   string             `bson:"comment" json:"comment"`
	Stars     int                `bson:"stars" json:"stars"`
	Likes     int                `bson:"likes" json:"likes"`
	Dislikes  int                `bson:"dislikes" json:"dislikes"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	Replies   []Reply            `bson:"replies" json:"replies"`
}

// Book carries its reviews as embedded documents. UserScore is derived from
// the embedded reviews and must be recomputed after any review mutation.
type Book struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title            string             `bson:"title" json:"title"`
	Series           string             `bson:"series" json:"series"`
	Author           []string           `bson:"author" json:"author"`
	UserScore        float64            `bson:"user_score" json:"user_score"`
	Description      string             `bson:"description" json:"description"`
	UserReviews      []Review           `bson:"user_reviews" json:"user_reviews"`
	Language         string             `bson:"language" json:"language"`
	ISBN             int64              `bson:"isbn" json:"isbn"`
	Genres           []string           `bson:"genres" json:"genres"`
	Characters       []string           `bson:"characters" json:"characters"`
	Triggers         []string           `bson:"triggers" json:"triggers"`
	BookFormat       string             `bson:"bookFormat" json:"bookFormat"`
	Edition          string             `bson:"edition" json:"edition"`
	Pages            int                `bson:"pages" json:"pages"`
	Publisher        string             `bson:"publisher" json:"publisher"`
	PublishDate      int                `bson:"publishDate" json:"publishDate"`
	FirstPublishDate int                `bson:"firstPublishDate" json:"firstPublishDate"`
	Awards           []string           `bson:"awards" json:"awards"`
	CoverImg         string             `bson:"coverImg" json:"coverImg"`
	Price            int                `bson:"price" json:"price"`
}
