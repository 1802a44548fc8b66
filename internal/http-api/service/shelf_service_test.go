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

func newShelfService(userRepo repository.UserRepository, bookRepo repository.BookRepository, aggregation AggregationService, now time.Time) *shelfService {
	return &shelfService{
		userRepo:    userRepo,
		bookRepo:    bookRepo,
		aggregation: aggregation,
		now:         func() time.Time { return now },
	}
}

func TestAddHaveRead(t *testing.T) {
	userID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()
	now := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, userID).Return(&models.User{ID: userID, Username: "alice"}, nil)
	userRepo.On("AddHaveRead", mock.Anything, userID, mock.AnythingOfType("models.ShelfBook")).Return(nil)

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindByID", mock.Anything, bookID).Return(&models.Book{
		ID:     bookID,
		Title:  "Hyperion",
		Author: []string{"Dan Simmons"},
		Genres: []string{"Science Fiction"},
	}, nil)

	svc := newShelfService(userRepo, bookRepo, new(MockAggregationService), now)
	entry, err := svc.AddHaveRead(context.Background(), userID, bookID, 5, "")

	assert.NoError(t, err)
	assert.Equal(t, "Hyperion", entry.Title)
	assert.Equal(t, 5, entry.Stars)
	// Absent date defaults to the current time.
	assert.Equal(t, now.Format(time.RFC3339), entry.DateRead)
	userRepo.AssertExpectations(t)
}

func TestAddHaveRead_ClearsCurrentlyReading(t *testing.T) {
	userID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, userID).Return(&models.User{
		ID: userID,
		CurrentlyReading: []models.CurrentlyReading{
			{BookID: bookID, Title: "Hyperion", TotalPages: 482, CurrentPage: 482},
		},
	}, nil)
	userRepo.On("AddHaveRead", mock.Anything, userID, mock.AnythingOfType("models.ShelfBook")).Return(nil)
	userRepo.On("RemoveCurrentlyReading", mock.Anything, userID, bookID).Return(nil)

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindByID", mock.Anything, bookID).Return(&models.Book{ID: bookID, Title: "Hyperion"}, nil)

	svc := newShelfService(userRepo, bookRepo, new(MockAggregationService), time.Now())
	_, err := svc.AddHaveRead(context.Background(), userID, bookID, 4, "2024-06-12")

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestAddHaveRead_AlreadyShelved(t *testing.T) {
	userID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, userID).Return(&models.User{
		ID:       userID,
		HaveRead: []models.ShelfBook{{BookID: bookID, Title: "Hyperion"}},
	}, nil)

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindByID", mock.Anything, bookID).Return(&models.Book{ID: bookID, Title: "Hyperion"}, nil)

	svc := newShelfService(userRepo, bookRepo, new(MockAggregationService), time.Now())
	_, err := svc.AddHaveRead(context.Background(), userID, bookID, 4, "")

	assert.ErrorIs(t, err, ErrAlreadyRead)
	userRepo.AssertNotCalled(t, "AddHaveRead", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddWantToRead_AlreadyShelved(t *testing.T) {
	userID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, userID).Return(&models.User{
		ID:         userID,
		WantToRead: []models.ShelfBook{{BookID: bookID}},
	}, nil)

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindByID", mock.Anything, bookID).Return(&models.Book{ID: bookID}, nil)

	svc := newShelfService(userRepo, bookRepo, new(MockAggregationService), time.Now())
	_, err := svc.AddWantToRead(context.Background(), userID, bookID)

	assert.ErrorIs(t, err, ErrAlreadyWanted)
}

func TestStartReading(t *testing.T) {
	userID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()
	now := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, userID).Return(&models.User{ID: userID}, nil)
	userRepo.On("AddCurrentlyReading", mock.Anything, userID, models.CurrentlyReading{
		BookID:      bookID,
		Title:       "Dune",
		TotalPages:  412,
		CurrentPage: 0,
		Progress:    0,
		ReadingTime: now,
	}).Return(nil)

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindByID", mock.Anything, bookID).Return(&models.Book{
		ID:    bookID,
		Title: "Dune",
		Pages: 412,
	}, nil)

	svc := newShelfService(userRepo, bookRepo, new(MockAggregationService), now)
	entry, err := svc.StartReading(context.Background(), userID, bookID)

	assert.NoError(t, err)
	assert.Equal(t, 412, entry.TotalPages)
	assert.Equal(t, 0, entry.CurrentPage)
	userRepo.AssertExpectations(t)
}

func TestStartReading_AlreadyReading(t *testing.T) {
	userID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, userID).Return(&models.User{
		ID:               userID,
		CurrentlyReading: []models.CurrentlyReading{{BookID: bookID}},
	}, nil)

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindByID", mock.Anything, bookID).Return(&models.Book{ID: bookID}, nil)

	svc := newShelfService(userRepo, bookRepo, new(MockAggregationService), time.Now())
	_, err := svc.StartReading(context.Background(), userID, bookID)

	assert.ErrorIs(t, err, ErrAlreadyReading)
}

func TestUpdateProgress(t *testing.T) {
	userID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, userID).Return(&models.User{
		ID: userID,
		CurrentlyReading: []models.CurrentlyReading{
			{BookID: bookID, TotalPages: 412, CurrentPage: 10},
		},
	}, nil)

	aggregation := new(MockAggregationService)
	aggregation.On("RecomputeProgress", mock.Anything, userID, bookID, 103).Return(25.0, nil)

	svc := newShelfService(userRepo, new(MockBookRepository), aggregation, time.Now())
	progress, err := svc.UpdateProgress(context.Background(), userID, bookID, 103)

	assert.NoError(t, err)
	assert.Equal(t, 25.0, progress)
	aggregation.AssertExpectations(t)
}

func TestUpdateProgress_PageOutOfRange(t *testing.T) {
	userID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, userID).Return(&models.User{
		ID: userID,
		CurrentlyReading: []models.CurrentlyReading{
			{BookID: bookID, TotalPages: 412},
		},
	}, nil)

	svc := newShelfService(userRepo, new(MockBookRepository), new(MockAggregationService), time.Now())

	_, err := svc.UpdateProgress(context.Background(), userID, bookID, 500)
	assert.ErrorIs(t, err, ErrInvalidPage)

	_, err = svc.UpdateProgress(context.Background(), userID, bookID, -1)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestUpdateProgress_NotReading(t *testing.T) {
	userID := primitive.NewObjectID()

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, userID).Return(&models.User{ID: userID}, nil)

	svc := newShelfService(userRepo, new(MockBookRepository), new(MockAggregationService), time.Now())
	_, err := svc.UpdateProgress(context.Background(), userID, primitive.NewObjectID(), 10)

	assert.ErrorIs(t, err, ErrNotReading)
}
