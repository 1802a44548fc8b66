package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRef is the lightweight form a user appears in inside another user's
// followers/following arrays.
type UserRef struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Username string             `bson:"username" json:"username"`
}

// ShelfBook is an entry on the have_read or want_to_read shelf.
// DateRead is kept as the user-supplied date string; the feed normalizer
// parses it with layout fallbacks.
type ShelfBook struct {
	BookID   primitive.ObjectID `bson:"book_id" json:"book_id"`
	Title    string             `bson:"title" json:"title"`
	Author   []string           `bson:"author" json:"author"`
	Genres   []string           `bson:"genres" json:"genres"`
	Stars    int                `bson:"stars,omitempty" json:"stars,omitempty"`
	DateRead string             `bson:"date_read,omitempty" json:"date_read,omitempty"`
}

// CurrentlyReading tracks page progress through a single book.
// Progress is derived from CurrentPage/TotalPages and persisted back onto
// this entry after every page update.
type CurrentlyReading struct {
	BookID      primitive.ObjectID `bson:"book_id" json:"book_id"`
	Title       string             `bson:"title" json:"title"`
	TotalPages  int                `bson:"total_pages" json:"total_pages"`
	CurrentPage int                `bson:"current_page" json:"current_page"`
	Progress    float64            `bson:"progress" json:"progress"`
	ReadingTime time.Time          `bson:"reading_time" json:"reading_time"`
}

const (
	UserTypeReader = "reader"
	UserTypeAuthor = "author"
)

type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username          string             `bson:"username" json:"username"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Password          string             `bson:"password" json:"-"`
	FavouriteGenres   []string           `bson:"favourite_genres" json:"favourite_genres"`
	FavouriteAuthors  []string           `bson:"favourite_authors" json:"favourite_authors"`
	FavouriteBooks    []string           `bson:"favourite_books" json:"favourite_books"`
	Followers         []UserRef          `bson:"followers" json:"followers"`
	Following         []UserRef          `bson:"following" json:"following"`
	HaveRead          []ShelfBook        `bson:"have_read" json:"have_read"`
	WantToRead        []ShelfBook        `bson:"want_to_read" json:"want_to_read"`
	CurrentlyReading  []CurrentlyReading `bson:"currently_reading" json:"currently_reading"`
	Awards            []string           `bson:"awards" json:"awards"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	SuspensionEndDate *time.Time         `bson:"suspension_end_date,omitempty" json:"suspension_end_date,omitempty"`
	Admin             bool               `bson:"admin" json:"admin"`
	UserType          string             `bson:"user_type" json:"user_type"`
}

// IsFollowing reports whether the user already follows the given username.
// The following list is an array, not an indexed set, so membership is a
// linear scan; the expected list size is small.
func (u *User) IsFollowing(username string) bool {
	for _, ref := range u.Following {
		if ref.Username == username {
			return true
		}
	}
	return false
}

// ReadingEntry returns the currently_reading entry for the given book.
func (u *User) ReadingEntry(bookID primitive.ObjectID) (*CurrentlyReading, bool) {
	for i := range u.CurrentlyReading {
		if u.CurrentlyReading[i].BookID == bookID {
			return &u.CurrentlyReading[i], true
		}
	}
	return nil, false
}

// HasRead reports whether the book is already on the have_read shelf.
func (u *User) HasRead(bookID primitive.ObjectID) bool {
	for _, entry := range u.HaveRead {
		if entry.BookID == bookID {
			return true
		}
	}
	return false
}

// WantsToRead reports whether the book is already on the want_to_read shelf.
func (u *User) WantsToRead(bookID primitive.ObjectID) bool {
	for _, entry := range u.WantToRead {
		if entry.BookID == bookID {
			return true
		}
	}
	return false
}
