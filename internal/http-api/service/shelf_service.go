package service

import (
	"context"
	"errors"
	"time"

	"comnibus/internal/http-api/models"
	"comnibus/internal/http-api/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrAlreadyRead    = errors.New("book is already on your have read shelf")
	ErrAlreadyWanted  = errors.New("book is already on your want to read shelf")
	ErrAlreadyReading = errors.New("you are already reading this book")
	ErrNotReading     = errors.New("book is not on your currently reading shelf")
	ErrInvalidPage    = errors.New("current page is out of range")
)

type ShelfService interface {
	AddHaveRead(ctx context.Context, userID, bookID primitive.ObjectID, stars int, dateRead string) (*models.ShelfBook, error)
	AddWantToRead(ctx context.Context, userID, bookID primitive.ObjectID) (*models.ShelfBook, error)
	StartReading(ctx context.Context, userID, bookID primitive.ObjectID) (*models.CurrentlyReading, error)
	UpdateProgress(ctx context.Context, userID, bookID primitive.ObjectID, currentPage int) (float64, error)
}

type shelfService struct {
	userRepo    repository.UserRepository
	bookRepo    repository.BookRepository
	aggregation AggregationService
	now         func() time.Time
}

func NewShelfService(userRepo repository.UserRepository, bookRepo repository.BookRepository, aggregation AggregationService) ShelfService {
	return &shelfService{
		userRepo:    userRepo,
		bookRepo:    bookRepo,
		aggregation: aggregation,
		now:         time.Now,
	}
}

func (s *shelfService) lookup(ctx context.Context, userID, bookID primitive.ObjectID) (*models.User, *models.Book, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, nil, ErrUserNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	book, err := s.bookRepo.FindByID(ctx, bookID)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, nil, ErrBookNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return user, book, nil
}

// AddHaveRead shelves a finished book. A matching currently_reading entry is
// cleared so a book never sits on both shelves.
func (s *shelfService) AddHaveRead(ctx context.Context, userID, bookID primitive.ObjectID, stars int, dateRead string) (*models.ShelfBook, error) {
	user, book, err := s.lookup(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if user.HasRead(bookID) {
		return nil, ErrAlreadyRead
	}

	if dateRead == "" {
		dateRead = s.now().UTC().Format(time.RFC3339)
	}
	entry := models.ShelfBook{
		BookID:   book.ID,
		Title:    book.Title,
		Author:   book.Author,
		Genres:   book.Genres,
		Stars:    stars,
		DateRead: dateRead,
	}
	if err := s.userRepo.AddHaveRead(ctx, userID, entry); err != nil {
		return nil, err
	}

	if _, reading := user.ReadingEntry(bookID); reading {
		if err := s.userRepo.RemoveCurrentlyReading(ctx, userID, bookID); err != nil {
			return nil, err
		}
	}
	return &entry, nil
}

func (s *shelfService) AddWantToRead(ctx context.Context, userID, bookID primitive.ObjectID) (*models.ShelfBook, error) {
	user, book, err := s.lookup(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if user.WantsToRead(bookID) {
		return nil, ErrAlreadyWanted
	}

	entry := models.ShelfBook{
		BookID: book.ID,
		Title:  book.Title,
		Author: book.Author,
		Genres: book.Genres,
	}
	if err := s.userRepo.AddWantToRead(ctx, userID, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// StartReading opens a progress entry at page zero, taking the page count
// from the book record.
func (s *shelfService) StartReading(ctx context.Context, userID, bookID primitive.ObjectID) (*models.CurrentlyReading, error) {
	user, book, err := s.lookup(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if _, reading := user.ReadingEntry(bookID); reading {
		return nil, ErrAlreadyReading
	}

	entry := models.CurrentlyReading{
		BookID:      book.ID,
		Title:       book.Title,
		TotalPages:  book.Pages,
		CurrentPage: 0,
		Progress:    0,
		ReadingTime: s.now().UTC(),
	}
	if err := s.userRepo.AddCurrentlyReading(ctx, userID, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateProgress validates the page number against the entry's page count and
// persists both the page and the derived percentage.
func (s *shelfService) UpdateProgress(ctx context.Context, userID, bookID primitive.ObjectID, currentPage int) (float64, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNoDocuments) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}

	entry, ok := user.ReadingEntry(bookID)
	if !ok {
		return 0, ErrNotReading
	}
	if currentPage < 0 || currentPage > entry.TotalPages {
		return 0, ErrInvalidPage
	}

	return s.aggregation.RecomputeProgress(ctx, userID, bookID, currentPage)
}
