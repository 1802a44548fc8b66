package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"comnibus/internal/http-api/models"
	"comnibus/internal/http-api/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrRequestNotFound = errors.New("book request not found")

// RequestInput is a user's submission. Author and Genres arrive as
// comma-separated strings and are split before storage.
type RequestInput struct {
	Title    string
	Series   string
	Author   string
	Genres   string
	Language string
	ISBN     int64
	Username string
}

// ApproveInput carries the catalogue fields an admin fills in when turning a
// request into a real book. Comma-separated list fields are split the same
// way as on submission.
type ApproveInput struct {
	Description      string
	Genres           string
	Characters       string
	Triggers         string
	Awards           string
	BookFormat       string
	Edition          string
	Pages            int
	Publisher        string
	PublishDate      string
	FirstPublishDate string
	CoverImg         string
	Price            int
	ISBN             int64
}

type RequestService interface {
	Create(ctx context.Context, input RequestInput) (*models.BookRequest, error)
	List(ctx context.Context, page, pageSize int) ([]models.BookRequest, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.BookRequest, error)
	Approve(ctx context.Context, id primitive.ObjectID, input ApproveInput) (*models.Book, error)
	Reject(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type requestService struct {
	requestRepo repository.RequestRepository
	bookRepo    repository.BookRepository
	messages    MessageService
}

func NewRequestService(requestRepo repository.RequestRepository, bookRepo repository.BookRepository, messages MessageService) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		bookRepo:    bookRepo,
		messages:    messages,
	}
}

func splitCommaList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// yearOf pulls the leading four-digit year out of a date string, zero if the
// string has no parseable year.
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func (s *requestService) Create(ctx context.Context, input RequestInput) (*models.BookRequest, error) {
	request := &models.BookRequest{
		Title:    input.Title,
		Series:   input.Series,
		Author:   splitCommaList(input.Author),
		Genres:   splitCommaList(input.Genres),
		Language: input.Language,
		ISBN:     input.ISBN,
		Username: input.Username,
	}
	if err := s.requestRepo.Insert(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *requestService) List(ctx context.Context, page, pageSize int) ([]models.BookRequest, error) {
	requests, err := s.requestRepo.Find(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []models.BookRequest{}
	}
	return requests, nil
}

func (s *requestService) Get(ctx context.Context, id primitive.ObjectID) (*models.BookRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, ErrRequestNotFound
	}
	return request, err
}

// Approve builds a catalogue book from the request plus the admin's
// enrichment fields, notifies the requester, and deletes the request. The
// request's own title, author, language, series and ISBN always win; the
// admin's ISBN is only used when the request came in without one.
func (s *requestService) Approve(ctx context.Context, id primitive.ObjectID, input ApproveInput) (*models.Book, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}

	isbn := request.ISBN
	if isbn == 0 && input.ISBN != 0 {
		isbn = input.ISBN
	}

	genres := request.Genres
	if input.Genres != "" {
		genres = splitCommaList(input.Genres)
	}

	book := &models.Book{
		Title:            request.Title,
		Series:           request.Series,
		Author:           request.Author,
		UserScore:        0,
		Description:      input.Description,
		UserReviews:      []models.Review{},
		Language:         request.Language,
		ISBN:             isbn,
		Genres:           genres,
		Characters:       splitCommaList(input.Characters),
		Triggers:         splitCommaList(input.Triggers),
		BookFormat:       input.BookFormat,
		Edition:          input.Edition,
		Pages:            input.Pages,
		Publisher:        input.Publisher,
		PublishDate:      yearOf(input.PublishDate),
		FirstPublishDate: yearOf(input.FirstPublishDate),
		Awards:           splitCommaList(input.Awards),
		CoverImg:         input.CoverImg,
		Price:            input.Price,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	_ = s.messages.Send(ctx, request.Username, fmt.Sprintf(
		"Dear '%s', your request for '%s' has been approved and added to our system. Thank you.",
		request.Username, request.Title))

	if _, err := s.requestRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *requestService) Reject(ctx context.Context, id primitive.ObjectID) error {
	request, err := s.requestRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNoDocuments) {
		return ErrRequestNotFound
	}
	if err != nil {
		return err
	}

	_ = s.messages.Send(ctx, request.Username, fmt.Sprintf(
		"Dear '%s', we regret to inform you that your request for '%s' has been rejected and will not be added to our system. Thank you.",
		request.Username, request.Title))

	_, err = s.requestRepo.Delete(ctx, id)
	return err
}

func (s *requestService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.requestRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrRequestNotFound
	}
	return nil
}
