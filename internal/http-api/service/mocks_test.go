package service

import (
	"context"

	"comnibus/internal/http-api/models"
	"comnibus/internal/http-api/repository"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserRepository mocks the repository.UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsernames(ctx context.Context, usernames []string) ([]models.User, error) {
	args := m.Called(ctx, usernames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) All(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) PushFollowing(ctx context.Context, userID primitive.ObjectID, ref models.UserRef) error {
	args := m.Called(ctx, userID, ref)
	return args.Error(0)
}

func (m *MockUserRepository) PullFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error {
	args := m.Called(ctx, userID, targetID)
	return args.Error(0)
}

func (m *MockUserRepository) PushFollower(ctx context.Context, userID primitive.ObjectID, ref models.UserRef) error {
	args := m.Called(ctx, userID, ref)
	return args.Error(0)
}

func (m *MockUserRepository) PullFollower(ctx context.Context, userID, followerID primitive.ObjectID) error {
	args := m.Called(ctx, userID, followerID)
	return args.Error(0)
}

func (m *MockUserRepository) AddHaveRead(ctx context.Context, userID primitive.ObjectID, entry models.ShelfBook) error {
	args := m.Called(ctx, userID, entry)
	return args.Error(0)
}

func (m *MockUserRepository) AddWantToRead(ctx context.Context, userID primitive.ObjectID, entry models.ShelfBook) error {
	args := m.Called(ctx, userID, entry)
	return args.Error(0)
}

func (m *MockUserRepository) AddCurrentlyReading(ctx context.Context, userID primitive.ObjectID, entry models.CurrentlyReading) error {
	args := m.Called(ctx, userID, entry)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveCurrentlyReading(ctx context.Context, userID, bookID primitive.ObjectID) error {
	args := m.Called(ctx, userID, bookID)
	return args.Error(0)
}

func (m *MockUserRepository) SetReadingProgress(ctx context.Context, userID, bookID primitive.ObjectID, currentPage int, progress float64) (bool, error) {
	args := m.Called(ctx, userID, bookID, currentPage, progress)
	return args.Bool(0), args.Error(1)
}

// MockBookRepository mocks the repository.BookRepository interface
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Find(ctx context.Context, filter repository.BookFilter, page, pageSize int) ([]models.Book, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) FindSameAuthor(ctx context.Context, excludeID primitive.ObjectID, authors []string, limit int) ([]models.Book, error) {
	args := m.Called(ctx, excludeID, authors, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) Distinct(ctx context.Context, field string) ([]string, error) {
	args := m.Called(ctx, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookRepository) PushTriggers(ctx context.Context, id primitive.ObjectID, triggers []string) error {
	args := m.Called(ctx, id, triggers)
	return args.Error(0)
}

func (m *MockBookRepository) Reviews(ctx context.Context, bookID primitive.ObjectID) ([]models.Review, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockBookRepository) ReviewsBy(ctx context.Context, username string) ([]repository.AuthoredReview, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.AuthoredReview), args.Error(1)
}

func (m *MockBookRepository) HasReviewBy(ctx context.Context, bookID primitive.ObjectID, username string) (bool, error) {
	args := m.Called(ctx, bookID, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepository) PushReview(ctx context.Context, bookID primitive.ObjectID, review models.Review) error {
	args := m.Called(ctx, bookID, review)
	return args.Error(0)
}

func (m *MockBookRepository) PullReview(ctx context.Context, bookID, reviewID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, bookID, reviewID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookRepository) FindReview(ctx context.Context, bookID, reviewID primitive.ObjectID) (*models.Review, error) {
	args := m.Called(ctx, bookID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockBookRepository) FindReviewAnyBook(ctx context.Context, reviewID primitive.ObjectID) (*repository.AuthoredReview, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.AuthoredReview), args.Error(1)
}

func (m *MockBookRepository) IncReviewCounter(ctx context.Context, bookID, reviewID primitive.ObjectID, field string) (bool, error) {
	args := m.Called(ctx, bookID, reviewID, field)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepository) SetUserScore(ctx context.Context, bookID primitive.ObjectID, score float64) error {
	args := m.Called(ctx, bookID, score)
	return args.Error(0)
}

func (m *MockBookRepository) PushReviewReply(ctx context.Context, bookID, reviewID primitive.ObjectID, reply models.Reply) (bool, error) {
	args := m.Called(ctx, bookID, reviewID, reply)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepository) PullReviewReply(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, bookID, reviewID, replyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookRepository) FindReviewReply(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID) (*models.Reply, error) {
	args := m.Called(ctx, bookID, reviewID, replyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reply), args.Error(1)
}

func (m *MockBookRepository) FindReviewReplyParent(ctx context.Context, bookID, replyID primitive.ObjectID) (*models.Review, error) {
	args := m.Called(ctx, bookID, replyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockBookRepository) IncReviewReplyCounter(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID, field string) (bool, error) {
	args := m.Called(ctx, bookID, reviewID, replyID, field)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepository) FindWithReviewsBy(ctx context.Context, usernames []string) ([]models.Book, error) {
	args := m.Called(ctx, usernames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) FindWithReviewRepliesBy(ctx context.Context, usernames []string) ([]models.Book, error) {
	args := m.Called(ctx, usernames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

// MockThoughtRepository mocks the repository.ThoughtRepository interface
type MockThoughtRepository struct {
	mock.Mock
}

func (m *MockThoughtRepository) Insert(ctx context.Context, thought *models.Thought) error {
	args := m.Called(ctx, thought)
	return args.Error(0)
}

func (m *MockThoughtRepository) Find(ctx context.Context, page, pageSize int) ([]models.Thought, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Thought), args.Error(1)
}

func (m *MockThoughtRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Thought, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thought), args.Error(1)
}

func (m *MockThoughtRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockThoughtRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockThoughtRepository) IncCounter(ctx context.Context, id primitive.ObjectID, field string) (bool, error) {
	args := m.Called(ctx, id, field)
	return args.Bool(0), args.Error(1)
}

func (m *MockThoughtRepository) PushReply(ctx context.Context, thoughtID primitive.ObjectID, reply models.Reply) (bool, error) {
	args := m.Called(ctx, thoughtID, reply)
	return args.Bool(0), args.Error(1)
}

func (m *MockThoughtRepository) PullReply(ctx context.Context, thoughtID, replyID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, thoughtID, replyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockThoughtRepository) FindReply(ctx context.Context, thoughtID, replyID primitive.ObjectID) (*models.Reply, error) {
	args := m.Called(ctx, thoughtID, replyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reply), args.Error(1)
}

func (m *MockThoughtRepository) IncReplyCounter(ctx context.Context, thoughtID, replyID primitive.ObjectID, field string) (bool, error) {
	args := m.Called(ctx, thoughtID, replyID, field)
	return args.Bool(0), args.Error(1)
}

func (m *MockThoughtRepository) FindByUsernames(ctx context.Context, usernames []string) ([]models.Thought, error) {
	args := m.Called(ctx, usernames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Thought), args.Error(1)
}

func (m *MockThoughtRepository) FindWithRepliesBy(ctx context.Context, usernames []string) ([]models.Thought, error) {
	args := m.Called(ctx, usernames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Thought), args.Error(1)
}

// MockReportRepository mocks the repository.ReportRepository interface
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Insert(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) All(ctx context.Context) ([]models.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockReportRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockReportRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockMessageService mocks the MessageService interface
type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) Send(ctx context.Context, recipientName, content string) error {
	args := m.Called(ctx, recipientName, content)
	return args.Error(0)
}

func (m *MockMessageService) Inbox(ctx context.Context, username string) (*Inbox, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Inbox), args.Error(1)
}

func (m *MockMessageService) Get(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageService) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMessageService) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAggregationService mocks the AggregationService interface
type MockAggregationService struct {
	mock.Mock
}

func (m *MockAggregationService) UserScore(ctx context.Context, bookID primitive.ObjectID) float64 {
	args := m.Called(ctx, bookID)
	return args.Get(0).(float64)
}

func (m *MockAggregationService) RecomputeUserScore(ctx context.Context, bookID primitive.ObjectID) float64 {
	args := m.Called(ctx, bookID)
	return args.Get(0).(float64)
}

func (m *MockAggregationService) Progress(currentPage, totalPages int) float64 {
	args := m.Called(currentPage, totalPages)
	return args.Get(0).(float64)
}

func (m *MockAggregationService) RecomputeProgress(ctx context.Context, userID, bookID primitive.ObjectID, currentPage int) (float64, error) {
	args := m.Called(ctx, userID, bookID, currentPage)
	return args.Get(0).(float64), args.Error(1)
}
