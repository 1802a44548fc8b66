package service

import (
	"context"
	"testing"
	"time"

	"comnibus/internal/http-api/models"
	"comnibus/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newReviewService(bookRepo repository.BookRepository, aggregation AggregationService, messages MessageService, maxPerWeek int, now time.Time) *reviewService {
	return &reviewService{
		bookRepo:    bookRepo,
		aggregation: aggregation,
		messages:    messages,
		maxPerWeek:  maxPerWeek,
		now:         func() time.Time { return now },
	}
}

func TestCreateReview(t *testing.T) {
	bookID := primitive.NewObjectID()
	// A Wednesday; the weekly window opened Monday 2024-06-10.
	now := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindByID", mock.Anything, bookID).Return(&models.Book{ID: bookID, Title: "Hyperion"}, nil)
	bookRepo.On("ReviewsBy", mock.Anything, "alice").Return([]repository.AuthoredReview{}, nil)
	bookRepo.On("HasReviewBy", mock.Anything, bookID, "alice").Return(false, nil)
	bookRepo.On("PushReview", mock.Anything, bookID, mock.AnythingOfType("models.Review")).Return(nil)

	aggregation := new(MockAggregationService)
	aggregation.On("RecomputeUserScore", mock.Anything, bookID).Return(5.0)

	svc := newReviewService(bookRepo, aggregation, new(MockMessageService), 3, now)
	review, err := svc.Create(context.Background(), bookID, "alice", ReviewInput{
		Title:   "Loved it",
		Comment: "A classic.",
		Stars:   5,
	})

	assert.NoError(t, err)
	assert.Equal(t, "alice", review.Username)
	assert.Equal(t, 5, review.Stars)
	assert.Equal(t, now, review.CreatedAt)
	assert.NotNil(t, review.Replies)
	bookRepo.AssertExpectations(t)
	aggregation.AssertExpectations(t)
}

func TestCreateReview_WeeklyLimit(t *testing.T) {
	bookID := primitive.NewObjectID()
	now := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

	// Three reviews already posted since Monday, across other books.
	authored := []repository.AuthoredReview{
		{Review: models.Review{CreatedAt: now.Add(-24 * time.Hour)}},
		{Review: models.Review{CreatedAt: now.Add(-36 * time.Hour)}},
		{Review: models.Review{CreatedAt: now.Add(-2 * time.Hour)}},
	}

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindByID", mock.Anything, bookID).Return(&models.Book{ID: bookID}, nil)
	bookRepo.On("ReviewsBy", mock.Anything, "alice").Return(authored, nil)

	svc := newReviewService(bookRepo, new(MockAggregationService), new(MockMessageService), 3, now)
	_, err := svc.Create(context.Background(), bookID, "alice", ReviewInput{Stars: 4})

	assert.ErrorIs(t, err, ErrWeeklyLimit)
	bookRepo.AssertNotCalled(t, "PushReview", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReview_LastWeekReviewsDontCount(t *testing.T) {
	bookID := primitive.NewObjectID()
	now := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

	// All three predate Monday 2024-06-10; the window is clear.
	authored := []repository.AuthoredReview{
		{Review: models.Review{CreatedAt: time.Date(2024, 6, 7, 10, 0, 0, 0, time.UTC)}},
		{Review: models.Review{CreatedAt: time.Date(2024, 6, 8, 10, 0, 0, 0, time.UTC)}},
		{Review: models.Review{CreatedAt: time.Date(2024, 6, 9, 10, 0, 0, 0, time.UTC)}},
	}

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindByID", mock.Anything, bookID).Return(&models.Book{ID: bookID}, nil)
	bookRepo.On("ReviewsBy", mock.Anything, "alice").Return(authored, nil)
	bookRepo.On("HasReviewBy", mock.Anything, bookID, "alice").Return(false, nil)
	bookRepo.On("PushReview", mock.Anything, bookID, mock.AnythingOfType("models.Review")).Return(nil)

	aggregation := new(MockAggregationService)
	aggregation.On("RecomputeUserScore", mock.Anything, bookID).Return(5.0)

	svc := newReviewService(bookRepo, aggregation, new(MockMessageService), 3, now)
	_, err := svc.Create(context.Background(), bookID, "alice", ReviewInput{Stars: 4})

	assert.NoError(t, err)
}

func TestCreateReview_AlreadyReviewed(t *testing.T) {
	bookID := primitive.NewObjectID()
	now := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindByID", mock.Anything, bookID).Return(&models.Book{ID: bookID}, nil)
	bookRepo.On("ReviewsBy", mock.Anything, "alice").Return([]repository.AuthoredReview{}, nil)
	bookRepo.On("HasReviewBy", mock.Anything, bookID, "alice").Return(true, nil)

	svc := newReviewService(bookRepo, new(MockAggregationService), new(MockMessageService), 3, now)
	_, err := svc.Create(context.Background(), bookID, "alice", ReviewInput{Stars: 4})

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreateReview_BookMissing(t *testing.T) {
	bookID := primitive.NewObjectID()

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindByID", mock.Anything, bookID).Return(nil, repository.ErrNoDocuments)

	svc := newReviewService(bookRepo, new(MockAggregationService), new(MockMessageService), 3, time.Now())
	_, err := svc.Create(context.Background(), bookID, "alice", ReviewInput{Stars: 4})

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestLikeReview_NotifiesAuthor(t *testing.T) {
	bookID := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindReview", mock.Anything, bookID, reviewID).Return(&models.Review{
		ID:       reviewID,
		Username: "bob",
	}, nil)
	bookRepo.On("IncReviewCounter", mock.Anything, bookID, reviewID, "likes").Return(true, nil)

	messages := new(MockMessageService)
	messages.On("Send", mock.Anything, "bob", "alice liked your review!").Return(nil)

	svc := newReviewService(bookRepo, new(MockAggregationService), messages, 3, time.Now())
	err := svc.Like(context.Background(), bookID, reviewID, "alice")

	assert.NoError(t, err)
	messages.AssertExpectations(t)
}

func TestLikeReview_SelfVote(t *testing.T) {
	bookID := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindReview", mock.Anything, bookID, reviewID).Return(&models.Review{
		ID:       reviewID,
		Username: "alice",
	}, nil)

	svc := newReviewService(bookRepo, new(MockAggregationService), new(MockMessageService), 3, time.Now())
	err := svc.Like(context.Background(), bookID, reviewID, "alice")

	assert.ErrorIs(t, err, ErrSelfVote)
	// Rejected before the counter moves.
	bookRepo.AssertNotCalled(t, "IncReviewCounter", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDislikeReview(t *testing.T) {
	bookID := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindReview", mock.Anything, bookID, reviewID).Return(&models.Review{
		ID:       reviewID,
		Username: "bob",
	}, nil)
	bookRepo.On("IncReviewCounter", mock.Anything, bookID, reviewID, "dislikes").Return(true, nil)

	messages := new(MockMessageService)
	messages.On("Send", mock.Anything, "bob", "alice disliked your review!").Return(nil)

	svc := newReviewService(bookRepo, new(MockAggregationService), messages, 3, time.Now())
	assert.NoError(t, svc.Dislike(context.Background(), bookID, reviewID, "alice"))
}

func TestDeleteReview_OwnerRecomputesScore(t *testing.T) {
	bookID := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindReview", mock.Anything, bookID, reviewID).Return(&models.Review{
		ID:       reviewID,
		Username: "alice",
	}, nil)
	bookRepo.On("PullReview", mock.Anything, bookID, reviewID).Return(int64(1), nil)

	aggregation := new(MockAggregationService)
	aggregation.On("RecomputeUserScore", mock.Anything, bookID).Return(0.0)

	svc := newReviewService(bookRepo, aggregation, new(MockMessageService), 3, time.Now())
	err := svc.Delete(context.Background(), bookID, reviewID, "alice", false)

	assert.NoError(t, err)
	aggregation.AssertExpectations(t)
}

func TestDeleteReview_NotOwner(t *testing.T) {
	bookID := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindReview", mock.Anything, bookID, reviewID).Return(&models.Review{
		ID:       reviewID,
		Username: "bob",
	}, nil)

	svc := newReviewService(bookRepo, new(MockAggregationService), new(MockMessageService), 3, time.Now())
	err := svc.Delete(context.Background(), bookID, reviewID, "alice", false)

	assert.ErrorIs(t, err, ErrNotOwner)
	bookRepo.AssertNotCalled(t, "PullReview", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteReview_AdminOverride(t *testing.T) {
	bookID := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindReview", mock.Anything, bookID, reviewID).Return(&models.Review{
		ID:       reviewID,
		Username: "bob",
	}, nil)
	bookRepo.On("PullReview", mock.Anything, bookID, reviewID).Return(int64(1), nil)

	aggregation := new(MockAggregationService)
	aggregation.On("RecomputeUserScore", mock.Anything, bookID).Return(0.0)

	svc := newReviewService(bookRepo, aggregation, new(MockMessageService), 3, time.Now())
	assert.NoError(t, svc.Delete(context.Background(), bookID, reviewID, "admin", true))
}

func TestCreateReviewReply(t *testing.T) {
	bookID := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()
	now := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

	bookRepo := new(MockBookRepository)
	bookRepo.On("PushReviewReply", mock.Anything, bookID, reviewID, mock.AnythingOfType("models.Reply")).Return(true, nil)

	svc := newReviewService(bookRepo, new(MockAggregationService), new(MockMessageService), 3, now)
	reply, err := svc.CreateReply(context.Background(), bookID, reviewID, "alice", "Agreed!")

	assert.NoError(t, err)
	assert.Equal(t, "alice", reply.Username)
	assert.Equal(t, "Agreed!", reply.Content)
	assert.Equal(t, now, reply.CreatedAt)
}

func TestCreateReviewReply_ReviewMissing(t *testing.T) {
	bookID := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()

	bookRepo := new(MockBookRepository)
	bookRepo.On("PushReviewReply", mock.Anything, bookID, reviewID, mock.AnythingOfType("models.Reply")).Return(false, nil)

	svc := newReviewService(bookRepo, new(MockAggregationService), new(MockMessageService), 3, time.Now())
	_, err := svc.CreateReply(context.Background(), bookID, reviewID, "alice", "Agreed!")

	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestLikeReviewReply_SelfVote(t *testing.T) {
	bookID := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()
	replyID := primitive.NewObjectID()

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindReviewReply", mock.Anything, bookID, reviewID, replyID).Return(&models.Reply{
		ID:       replyID,
		Username: "alice",
	}, nil)

	svc := newReviewService(bookRepo, new(MockAggregationService), new(MockMessageService), 3, time.Now())
	err := svc.LikeReply(context.Background(), bookID, reviewID, replyID, "alice")

	assert.ErrorIs(t, err, ErrSelfVote)
}
