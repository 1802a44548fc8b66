package service

import (
	"context"
	"testing"

	"comnibus/internal/http-api/models"
	"comnibus/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateReport_InvalidType(t *testing.T) {
	svc := NewReportService(new(MockReportRepository), new(MockBookRepository), new(MockThoughtRepository), new(MockAggregationService), new(MockMessageService))

	_, err := svc.Create(context.Background(), ReportInput{Type: "comment", Reporter: "alice"})
	assert.ErrorIs(t, err, ErrInvalidReportType)
}

func TestCreateReport(t *testing.T) {
	reportRepo := new(MockReportRepository)
	reportRepo.On("Insert", mock.Anything, mock.AnythingOfType("*models.Report")).Return(nil)

	svc := NewReportService(reportRepo, new(MockBookRepository), new(MockThoughtRepository), new(MockAggregationService), new(MockMessageService))
	report, err := svc.Create(context.Background(), ReportInput{
		Type:     models.ReportTypeThought,
		ItemID:   primitive.NewObjectID(),
		Reporter: "alice",
		Reason:   "spam",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.False(t, report.ReportedAt.IsZero())
	reportRepo.AssertExpectations(t)
}

func TestApproveReport_Review(t *testing.T) {
	reportID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()

	reportRepo := new(MockReportRepository)
	reportRepo.On("FindByID", mock.Anything, reportID).Return(&models.Report{
		ID:       reportID,
		Type:     models.ReportTypeReview,
		ItemID:   reviewID,
		BookID:   &bookID,
		Reporter: "alice",
	}, nil)
	reportRepo.On("Delete", mock.Anything, reportID).Return(int64(1), nil)

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindReview", mock.Anything, bookID, reviewID).Return(&models.Review{
		ID:       reviewID,
		Username: "bob",
	}, nil)
	bookRepo.On("PullReview", mock.Anything, bookID, reviewID).Return(int64(1), nil)

	aggregation := new(MockAggregationService)
	aggregation.On("RecomputeUserScore", mock.Anything, bookID).Return(0.0)

	messages := new(MockMessageService)
	messages.On("Send", mock.Anything, "alice",
		"Thank you for your report! After reviewing it, we have determined that the review has indeed violated our community guidelines and we have removed it.").Return(nil)
	messages.On("Send", mock.Anything, "bob",
		"Your review has been removed because it violated our community guidelines.").Return(nil)

	svc := NewReportService(reportRepo, bookRepo, new(MockThoughtRepository), aggregation, messages)
	label, err := svc.Approve(context.Background(), reportID)

	assert.NoError(t, err)
	assert.Equal(t, "review", label)
	reportRepo.AssertExpectations(t)
	bookRepo.AssertExpectations(t)
	aggregation.AssertExpectations(t)
	messages.AssertExpectations(t)
}

func TestApproveReport_ContentAlreadyGone(t *testing.T) {
	reportID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()

	reportRepo := new(MockReportRepository)
	reportRepo.On("FindByID", mock.Anything, reportID).Return(&models.Report{
		ID:       reportID,
		Type:     models.ReportTypeReview,
		ItemID:   reviewID,
		BookID:   &bookID,
		Reporter: "alice",
	}, nil)

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindReview", mock.Anything, bookID, reviewID).Return(nil, repository.ErrNoDocuments)
	bookRepo.On("PullReview", mock.Anything, bookID, reviewID).Return(int64(0), nil)

	messages := new(MockMessageService)

	svc := NewReportService(reportRepo, bookRepo, new(MockThoughtRepository), new(MockAggregationService), messages)
	_, err := svc.Approve(context.Background(), reportID)

	assert.ErrorIs(t, err, ErrReportTargetGone)
	// The report survives and nobody is notified.
	reportRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	messages.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveReport_ReviewReply(t *testing.T) {
	reportID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()
	replyID := primitive.NewObjectID()

	reportRepo := new(MockReportRepository)
	reportRepo.On("FindByID", mock.Anything, reportID).Return(&models.Report{
		ID:       reportID,
		Type:     models.ReportTypeReviewReply,
		ItemID:   replyID,
		BookID:   &bookID,
		Reporter: "alice",
	}, nil)
	reportRepo.On("Delete", mock.Anything, reportID).Return(int64(1), nil)

	bookRepo := new(MockBookRepository)
	bookRepo.On("FindReviewReplyParent", mock.Anything, bookID, replyID).Return(&models.Review{
		ID: reviewID,
		Replies: []models.Reply{
			{ID: replyID, Username: "bob"},
		},
	}, nil)
	bookRepo.On("PullReviewReply", mock.Anything, bookID, reviewID, replyID).Return(int64(1), nil)

	messages := new(MockMessageService)
	messages.On("Send", mock.Anything, "alice",
		"Thank you for your report! After reviewing it, we have determined that the review reply has indeed violated our community guidelines and we have removed it.").Return(nil)
	messages.On("Send", mock.Anything, "bob",
		"Your reply to a review has been removed because it violated our community guidelines.").Return(nil)

	svc := NewReportService(reportRepo, bookRepo, new(MockThoughtRepository), new(MockAggregationService), messages)
	label, err := svc.Approve(context.Background(), reportID)

	assert.NoError(t, err)
	assert.Equal(t, "review reply", label)
	messages.AssertExpectations(t)
}

func TestApproveReport_Thought(t *testing.T) {
	reportID := primitive.NewObjectID()
	thoughtID := primitive.NewObjectID()

	reportRepo := new(MockReportRepository)
	reportRepo.On("FindByID", mock.Anything, reportID).Return(&models.Report{
		ID:       reportID,
		Type:     models.ReportTypeThought,
		ItemID:   thoughtID,
		Reporter: "alice",
	}, nil)
	reportRepo.On("Delete", mock.Anything, reportID).Return(int64(1), nil)

	thoughtRepo := new(MockThoughtRepository)
	thoughtRepo.On("FindByID", mock.Anything, thoughtID).Return(&models.Thought{
		ID:       thoughtID,
		Username: "bob",
	}, nil)
	thoughtRepo.On("Delete", mock.Anything, thoughtID).Return(int64(1), nil)

	messages := new(MockMessageService)
	messages.On("Send", mock.Anything, "alice", mock.AnythingOfType("string")).Return(nil)
	messages.On("Send", mock.Anything, "bob",
		"Your thought has been removed because it violated our community guidelines.").Return(nil)

	svc := NewReportService(reportRepo, new(MockBookRepository), thoughtRepo, new(MockAggregationService), messages)
	label, err := svc.Approve(context.Background(), reportID)

	assert.NoError(t, err)
	assert.Equal(t, "thought", label)
	thoughtRepo.AssertExpectations(t)
}

func TestRejectReport(t *testing.T) {
	reportID := primitive.NewObjectID()

	reportRepo := new(MockReportRepository)
	reportRepo.On("FindByID", mock.Anything, reportID).Return(&models.Report{
		ID:       reportID,
		Type:     models.ReportTypeThought,
		ItemID:   primitive.NewObjectID(),
		Reporter: "alice",
	}, nil)
	reportRepo.On("Delete", mock.Anything, reportID).Return(int64(1), nil)

	thoughtRepo := new(MockThoughtRepository)

	messages := new(MockMessageService)
	messages.On("Send", mock.Anything, "alice",
		"Thank you for your report! After reviewing it, we have determined that the thought does not violate our community guidelines and will not be removed.").Return(nil)

	svc := NewReportService(reportRepo, new(MockBookRepository), thoughtRepo, new(MockAggregationService), messages)
	err := svc.Reject(context.Background(), reportID)

	assert.NoError(t, err)
	// The reported content is never touched.
	thoughtRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	messages.AssertExpectations(t)
}

func TestDeleteReport_NotFound(t *testing.T) {
	reportID := primitive.NewObjectID()

	reportRepo := new(MockReportRepository)
	reportRepo.On("Delete", mock.Anything, reportID).Return(int64(0), nil)

	svc := NewReportService(reportRepo, new(MockBookRepository), new(MockThoughtRepository), new(MockAggregationService), new(MockMessageService))
	assert.ErrorIs(t, svc.Delete(context.Background(), reportID), ErrReportNotFound)
}
