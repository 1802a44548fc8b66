package service

import (
	"context"
	"math"

	"comnibus/internal/http-api/models"
	"comnibus/internal/http-api/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AggregationService computes the derived metrics: a book's user_score from
// its embedded reviews and a reader's page progress. Both are recomputed on
// demand from current state rather than maintained incrementally, so a stale
// value self-heals on the next write.
//
// Missing inputs yield the zero value instead of an error. Callers must not
// rely on aggregation failing loudly; primary-entity lookups do their own
// not-found handling.
type AggregationService interface {
	UserScore(ctx context.Context, bookID primitive.ObjectID) float64
	RecomputeUserScore(ctx context.Context, bookID primitive.ObjectID) float64
	Progress(currentPage, totalPages int) float64
	RecomputeProgress(ctx context.Context, userID, bookID primitive.ObjectID, currentPage int) (float64, error)
}

type aggregationService struct {
	bookRepo repository.BookRepository
	userRepo repository.UserRepository
}

func NewAggregationService(bookRepo repository.BookRepository, userRepo repository.UserRepository) AggregationService {
	return &aggregationService{bookRepo: bookRepo, userRepo: userRepo}
}

// ScoreFromReviews derives the 0-5 score from a review set: the share of
// reviews with 3 or more stars, scaled to 5 and rounded to one decimal.
func ScoreFromReviews(reviews []models.Review) float64 {
	total := len(reviews)
	if total == 0 {
		return 0
	}
	positive := 0
	for _, review := range reviews {
		if review.Stars >= 3 {
			positive++
		}
	}
	return math.Round(float64(positive)/float64(total)*5*10) / 10
}

// UserScore returns the derived score for a book, 0 when the book is missing
// or has no reviews.
func (s *aggregationService) UserScore(ctx context.Context, bookID primitive.ObjectID) float64 {
	reviews, err := s.bookRepo.Reviews(ctx, bookID)
	if err != nil {
		return 0
	}
	return ScoreFromReviews(reviews)
}

// RecomputeUserScore computes the score and persists it onto the book.
// The persisted value is never trusted to stay correct on its own; this must
// run after every review insert, delete, or report-triggered removal.
func (s *aggregationService) RecomputeUserScore(ctx context.Context, bookID primitive.ObjectID) float64 {
	score := s.UserScore(ctx, bookID)
	// Persistence failure is swallowed: the primary write already succeeded
	// and the score heals on the next recompute.
	_ = s.bookRepo.SetUserScore(ctx, bookID, score)
	return score
}

// Progress converts a page position into a percentage rounded to two
// decimals, 0 when the total is unknown.
func (s *aggregationService) Progress(currentPage, totalPages int) float64 {
	if totalPages == 0 {
		return 0
	}
	return math.Round(float64(currentPage)/float64(totalPages)*100*100) / 100
}

// RecomputeProgress computes and persists the progress for the matching
// currently_reading entry. The returned error only reflects the lookup of a
// missing entry; metric arithmetic itself cannot fail.
func (s *aggregationService) RecomputeProgress(ctx context.Context, userID, bookID primitive.ObjectID, currentPage int) (float64, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	entry, ok := user.ReadingEntry(bookID)
	if !ok {
		return 0, repository.ErrNoDocuments
	}
	progress := s.Progress(currentPage, entry.TotalPages)
	matched, err := s.userRepo.SetReadingProgress(ctx, userID, bookID, currentPage, progress)
	if err != nil {
		return 0, err
	}
	if !matched {
		return 0, repository.ErrNoDocuments
	}
	return progress, nil
}
