package service

import (
	"context"
	"errors"
	"strings"

	"comnibus/internal/http-api/models"
	"comnibus/internal/http-api/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrBookNotFound = errors.New("book not found")

// sameAuthorLimit caps how many related books ride along with a book lookup.
const sameAuthorLimit = 3

// BookRef is the shortened form a related book appears in alongside a full
// book document.
type BookRef struct {
	ID       primitive.ObjectID `json:"_id"`
	Title    string             `json:"title"`
	Author   []string           `json:"author"`
	CoverImg string             `json:"coverImg"`
}

// BookDetail pairs a book with a handful of other books by the same authors.
type BookDetail struct {
	Book            *models.Book `json:"book"`
	SameAuthorBooks []BookRef    `json:"same_author_books"`
}

type CatalogService interface {
	List(ctx context.Context, filter repository.BookFilter, page, pageSize int) ([]models.Book, error)
	Get(ctx context.Context, id primitive.ObjectID) (*BookDetail, error)
	Genres(ctx context.Context) ([]string, error)
	Authors(ctx context.Context) ([]string, error)
	Triggers(ctx context.Context) ([]string, error)
	AddTriggers(ctx context.Context, bookID primitive.ObjectID, triggers string) ([]string, error)
}

type catalogService struct {
	bookRepo repository.BookRepository
}

func NewCatalogService(bookRepo repository.BookRepository) CatalogService {
	return &catalogService{bookRepo: bookRepo}
}

func (s *catalogService) List(ctx context.Context, filter repository.BookFilter, page, pageSize int) ([]models.Book, error) {
	books, err := s.bookRepo.Find(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []models.Book{}
	}
	return books, nil
}

func (s *catalogService) Get(ctx context.Context, id primitive.ObjectID) (*BookDetail, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}

	related, err := s.bookRepo.FindSameAuthor(ctx, id, book.Author, sameAuthorLimit)
	if err != nil {
		return nil, err
	}
	refs := make([]BookRef, 0, len(related))
	for _, b := range related {
		refs = append(refs, BookRef{
			ID:       b.ID,
			Title:    b.Title,
			Author:   b.Author,
			CoverImg: b.CoverImg,
		})
	}

	return &BookDetail{Book: book, SameAuthorBooks: refs}, nil
}

func (s *catalogService) Genres(ctx context.Context) ([]string, error) {
	return s.bookRepo.Distinct(ctx, "genres")
}

func (s *catalogService) Authors(ctx context.Context) ([]string, error) {
	return s.bookRepo.Distinct(ctx, "author")
}

func (s *catalogService) Triggers(ctx context.Context) ([]string, error) {
	return s.bookRepo.Distinct(ctx, "triggers")
}

// AddTriggers appends comma-separated trigger warnings to a book.
func (s *catalogService) AddTriggers(ctx context.Context, bookID primitive.ObjectID, triggers string) ([]string, error) {
	var list []string
	for _, t := range strings.Split(triggers, ",") {
		if t = strings.TrimSpace(t); t != "" {
			list = append(list, t)
		}
	}
	if len(list) == 0 {
		return []string{}, nil
	}

	err := s.bookRepo.PushTriggers(ctx, bookID, list)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}
