package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"comnibus/internal/http-api/models"
	"comnibus/internal/http-api/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrReplyNotFound   = errors.New("reply not found")
	ErrSelfVote        = errors.New("cannot vote on your own content")
	ErrAlreadyReviewed = errors.New("you have already reviewed this book")
	ErrWeeklyLimit     = errors.New("weekly review limit reached")
	ErrNotOwner        = errors.New("not authorized to delete this content")
)

// ReviewInput is the validated payload for a new review.
type ReviewInput struct {
	Title   string
	Comment string
	Stars   int
}

type ReviewService interface {
	Create(ctx context.Context, bookID primitive.ObjectID, username string, input ReviewInput) (*models.Review, error)
	List(ctx context.Context, bookID primitive.ObjectID) ([]models.Review, error)
	GetAnyBook(ctx context.Context, reviewID primitive.ObjectID) (*repository.AuthoredReview, error)
	Like(ctx context.Context, bookID, reviewID primitive.ObjectID, voter string) error
	Dislike(ctx context.Context, bookID, reviewID primitive.ObjectID, voter string) error
	Delete(ctx context.Context, bookID, reviewID primitive.ObjectID, username string, admin bool) error

	CreateReply(ctx context.Context, bookID, reviewID primitive.ObjectID, username, content string) (*models.Reply, error)
	ListReplies(ctx context.Context, bookID, reviewID primitive.ObjectID) ([]models.Reply, error)
	GetReply(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID) (*models.Reply, error)
	LikeReply(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID, voter string) error
	DislikeReply(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID, voter string) error
	DeleteReply(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID, username string, admin bool) error
}

type reviewService struct {
	bookRepo    repository.BookRepository
	aggregation AggregationService
	messages    MessageService
	maxPerWeek  int
	now         func() time.Time
}

func NewReviewService(bookRepo repository.BookRepository, aggregation AggregationService, messages MessageService, maxPerWeek int) ReviewService {
	return &reviewService{
		bookRepo:    bookRepo,
		aggregation: aggregation,
		messages:    messages,
		maxPerWeek:  maxPerWeek,
		now:         time.Now,
	}
}

// Create inserts a review and recomputes the book's user_score. A user gets
// one review per book and a capped number per calendar week.
func (s *reviewService) Create(ctx context.Context, bookID primitive.ObjectID, username string, input ReviewInput) (*models.Review, error) {
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, repository.ErrNoDocuments) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	// Reviews posted since Monday of the current week, across all books.
	current := s.now().UTC()
	weekday := (int(current.Weekday()) + 6) % 7 // Monday = 0
	startOfWeek := current.AddDate(0, 0, -weekday)

	authored, err := s.bookRepo.ReviewsBy(ctx, username)
	if err != nil {
		return nil, err
	}
	thisWeek := 0
	for _, a := range authored {
		if !a.Review.CreatedAt.Before(startOfWeek) {
			thisWeek++
		}
	}
	if thisWeek >= s.maxPerWeek {
		return nil, fmt.Errorf("%w: you can only post %d reviews per week", ErrWeeklyLimit, s.maxPerWeek)
	}

	exists, err := s.bookRepo.HasReviewBy(ctx, bookID, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := models.Review{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Title:     input.Title,
		Comment:   input.Comment,
		Stars:     input.Stars,
		Likes:     0,
		Dislikes:  0,
		CreatedAt: current,
		UpdatedAt: current,
		Replies:   []models.Reply{},
	}

	if err := s.bookRepo.PushReview(ctx, bookID, review); err != nil {
		if errors.Is(err, repository.ErrNoDocuments) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	s.aggregation.RecomputeUserScore(ctx, bookID)
	return &review, nil
}

func (s *reviewService) List(ctx context.Context, bookID primitive.ObjectID) ([]models.Review, error) {
	reviews, err := s.bookRepo.Reviews(ctx, bookID)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

func (s *reviewService) GetAnyBook(ctx context.Context, reviewID primitive.ObjectID) (*repository.AuthoredReview, error) {
	authored, err := s.bookRepo.FindReviewAnyBook(ctx, reviewID)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, ErrReviewNotFound
	}
	return authored, err
}

func (s *reviewService) vote(ctx context.Context, bookID, reviewID primitive.ObjectID, voter, field, verb string) error {
	review, err := s.bookRepo.FindReview(ctx, bookID, reviewID)
	if errors.Is(err, repository.ErrNoDocuments) {
		return ErrReviewNotFound
	}
	if err != nil {
		return err
	}

	// Self-votes rejected before any mutation.
	if review.Username == voter {
		return ErrSelfVote
	}

	matched, err := s.bookRepo.IncReviewCounter(ctx, bookID, reviewID, field)
	if err != nil {
		return err
	}
	if !matched {
		return ErrReviewNotFound
	}

	if review.Username != "" {
		_ = s.messages.Send(ctx, review.Username, fmt.Sprintf("%s %s your review!", voter, verb))
	}
	return nil
}

func (s *reviewService) Like(ctx context.Context, bookID, reviewID primitive.ObjectID, voter string) error {
	return s.vote(ctx, bookID, reviewID, voter, "likes", "liked")
}

func (s *reviewService) Dislike(ctx context.Context, bookID, reviewID primitive.ObjectID, voter string) error {
	return s.vote(ctx, bookID, reviewID, voter, "dislikes", "disliked")
}

// Delete removes a review (owner or admin only) and recomputes the score.
func (s *reviewService) Delete(ctx context.Context, bookID, reviewID primitive.ObjectID, username string, admin bool) error {
	review, err := s.bookRepo.FindReview(ctx, bookID, reviewID)
	if errors.Is(err, repository.ErrNoDocuments) {
		return ErrReviewNotFound
	}
	if err != nil {
		return err
	}

	if !admin && review.Username != username {
		return ErrNotOwner
	}

	modified, err := s.bookRepo.PullReview(ctx, bookID, reviewID)
	if err != nil {
		return err
	}
	if modified == 0 {
		return ErrReviewNotFound
	}

	s.aggregation.RecomputeUserScore(ctx, bookID)
	return nil
}

func (s *reviewService) CreateReply(ctx context.Context, bookID, reviewID primitive.ObjectID, username, content string) (*models.Reply, error) {
	reply := models.Reply{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Content:   content,
		Likes:     0,
		Dislikes:  0,
		CreatedAt: s.now().UTC(),
	}

	matched, err := s.bookRepo.PushReviewReply(ctx, bookID, reviewID, reply)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrReviewNotFound
	}
	return &reply, nil
}

func (s *reviewService) ListReplies(ctx context.Context, bookID, reviewID primitive.ObjectID) ([]models.Reply, error) {
	review, err := s.bookRepo.FindReview(ctx, bookID, reviewID)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	if review.Replies == nil {
		return []models.Reply{}, nil
	}
	return review.Replies, nil
}

func (s *reviewService) GetReply(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID) (*models.Reply, error) {
	reply, err := s.bookRepo.FindReviewReply(ctx, bookID, reviewID, replyID)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, ErrReplyNotFound
	}
	return reply, err
}

func (s *reviewService) voteReply(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID, voter, field, verb string) error {
	reply, err := s.bookRepo.FindReviewReply(ctx, bookID, reviewID, replyID)
	if errors.Is(err, repository.ErrNoDocuments) {
		return ErrReplyNotFound
	}
	if err != nil {
		return err
	}

	if reply.Username == voter {
		return ErrSelfVote
	}

	matched, err := s.bookRepo.IncReviewReplyCounter(ctx, bookID, reviewID, replyID, field)
	if err != nil {
		return err
	}
	if !matched {
		return ErrReplyNotFound
	}

	if reply.Username != "" {
		_ = s.messages.Send(ctx, reply.Username, fmt.Sprintf("%s %s your reply!", voter, verb))
	}
	return nil
}

func (s *reviewService) LikeReply(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID, voter string) error {
	return s.voteReply(ctx, bookID, reviewID, replyID, voter, "likes", "liked")
}

func (s *reviewService) DislikeReply(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID, voter string) error {
	return s.voteReply(ctx, bookID, reviewID, replyID, voter, "dislikes", "disliked")
}

func (s *reviewService) DeleteReply(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID, username string, admin bool) error {
	reply, err := s.bookRepo.FindReviewReply(ctx, bookID, reviewID, replyID)
	if errors.Is(err, repository.ErrNoDocuments) {
		return ErrReplyNotFound
	}
	if err != nil {
		return err
	}

	if !admin && reply.Username != username {
		return ErrNotOwner
	}

	modified, err := s.bookRepo.PullReviewReply(ctx, bookID, reviewID, replyID)
	if err != nil {
		return err
	}
	if modified == 0 {
		return ErrReplyNotFound
	}
	return nil
}
