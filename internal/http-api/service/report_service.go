package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"comnibus/internal/http-api/models"
	"comnibus/internal/http-api/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrReportNotFound    = errors.New("report not found")
	ErrInvalidReportType = errors.New("invalid report type")
	ErrReportTargetGone  = errors.New("reported content not found or already removed")
)

// ReportInput carries everything needed to file a report. BookID is required
// for review kinds, ThoughtID for thought replies.
type ReportInput struct {
	Type      string
	ItemID    primitive.ObjectID
	BookID    *primitive.ObjectID
	ThoughtID *primitive.ObjectID
	Reporter  string
	Reason    string
}

type ReportService interface {
	Create(ctx context.Context, input ReportInput) (*models.Report, error)
	List(ctx context.Context) ([]models.Report, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Report, error)
	Approve(ctx context.Context, id primitive.ObjectID) (string, error)
	Reject(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type reportService struct {
	reportRepo  repository.ReportRepository
	bookRepo    repository.BookRepository
	thoughtRepo repository.ThoughtRepository
	aggregation AggregationService
	messages    MessageService
	now         func() time.Time
}

func NewReportService(
	reportRepo repository.ReportRepository,
	bookRepo repository.BookRepository,
	thoughtRepo repository.ThoughtRepository,
	aggregation AggregationService,
	messages MessageService,
) ReportService {
	return &reportService{
		reportRepo:  reportRepo,
		bookRepo:    bookRepo,
		thoughtRepo: thoughtRepo,
		aggregation: aggregation,
		messages:    messages,
		now:         time.Now,
	}
}

func (s *reportService) Create(ctx context.Context, input ReportInput) (*models.Report, error) {
	if !models.ValidReportType(input.Type) {
		return nil, ErrInvalidReportType
	}

	report := &models.Report{
		Type:       input.Type,
		ItemID:     input.ItemID,
		BookID:     input.BookID,
		ThoughtID:  input.ThoughtID,
		Reporter:   input.Reporter,
		Reason:     input.Reason,
		Status:     models.ReportStatusPending,
		ReportedAt: s.now().UTC(),
	}
	if err := s.reportRepo.Insert(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) List(ctx context.Context) ([]models.Report, error) {
	reports, err := s.reportRepo.All(ctx)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []models.Report{}
	}
	return reports, nil
}

func (s *reportService) Get(ctx context.Context, id primitive.ObjectID) (*models.Report, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, ErrReportNotFound
	}
	return report, err
}

// typeLabel renders a report type discriminator for user-facing text.
func typeLabel(t string) string {
	return strings.ReplaceAll(t, "_", " ")
}

// Approve removes the reported content, notifies the reporter and the
// content's author, and deletes the report. If the content is already gone
// the report is kept and no notifications are sent, so a second approval of
// the same report is a clean failure rather than a duplicate takedown.
func (s *reportService) Approve(ctx context.Context, id primitive.ObjectID) (string, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNoDocuments) {
		return "", ErrReportNotFound
	}
	if err != nil {
		return "", err
	}

	var author string
	var removed int64

	switch report.Type {
	case models.ReportTypeReview:
		if report.BookID == nil {
			return "", ErrReportTargetGone
		}
		if review, err := s.bookRepo.FindReview(ctx, *report.BookID, report.ItemID); err == nil {
			author = review.Username
		}
		removed, err = s.bookRepo.PullReview(ctx, *report.BookID, report.ItemID)
		if err != nil {
			return "", err
		}
		if removed > 0 {
			s.aggregation.RecomputeUserScore(ctx, *report.BookID)
		}

	case models.ReportTypeReviewReply:
		if report.BookID == nil {
			return "", ErrReportTargetGone
		}
		parent, err := s.bookRepo.FindReviewReplyParent(ctx, *report.BookID, report.ItemID)
		if errors.Is(err, repository.ErrNoDocuments) {
			return "", ErrReportTargetGone
		}
		if err != nil {
			return "", err
		}
		for _, reply := range parent.Replies {
			if reply.ID == report.ItemID {
				author = reply.Username
				break
			}
		}
		removed, err = s.bookRepo.PullReviewReply(ctx, *report.BookID, parent.ID, report.ItemID)
		if err != nil {
			return "", err
		}

	case models.ReportTypeThought:
		thought, err := s.thoughtRepo.FindByID(ctx, report.ItemID)
		if errors.Is(err, repository.ErrNoDocuments) {
			return "", ErrReportTargetGone
		}
		if err != nil {
			return "", err
		}
		author = thought.Username
		removed, err = s.thoughtRepo.Delete(ctx, report.ItemID)
		if err != nil {
			return "", err
		}

	case models.ReportTypeThoughtReply:
		if report.ThoughtID == nil {
			return "", ErrReportTargetGone
		}
		if reply, err := s.thoughtRepo.FindReply(ctx, *report.ThoughtID, report.ItemID); err == nil {
			author = reply.Username
		}
		removed, err = s.thoughtRepo.PullReply(ctx, *report.ThoughtID, report.ItemID)
		if err != nil {
			return "", err
		}

	default:
		return "", ErrInvalidReportType
	}

	if removed == 0 {
		return "", ErrReportTargetGone
	}

	label := typeLabel(report.Type)
	_ = s.messages.Send(ctx, report.Reporter, fmt.Sprintf(
		"Thank you for your report! After reviewing it, we have determined that the %s has indeed violated our community guidelines and we have removed it.", label))

	if author != "" {
		var note string
		switch report.Type {
		case models.ReportTypeReview:
			note = "Your review has been removed because it violated our community guidelines."
		case models.ReportTypeReviewReply:
			note = "Your reply to a review has been removed because it violated our community guidelines."
		case models.ReportTypeThought:
			note = "Your thought has been removed because it violated our community guidelines."
		case models.ReportTypeThoughtReply:
			note = "Your reply to a thought has been removed because it violated our community guidelines."
		}
		_ = s.messages.Send(ctx, author, note)
	}

	if _, err := s.reportRepo.Delete(ctx, id); err != nil {
		return "", err
	}
	return label, nil
}

// Reject notifies the reporter that the content stays up and deletes the
// report. The reported content is never touched.
func (s *reportService) Reject(ctx context.Context, id primitive.ObjectID) error {
	report, err := s.reportRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNoDocuments) {
		return ErrReportNotFound
	}
	if err != nil {
		return err
	}

	_ = s.messages.Send(ctx, report.Reporter, fmt.Sprintf(
		"Thank you for your report! After reviewing it, we have determined that the %s does not violate our community guidelines and will not be removed.", typeLabel(report.Type)))

	_, err = s.reportRepo.Delete(ctx, id)
	return err
}

func (s *reportService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.reportRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrReportNotFound
	}
	return nil
}
