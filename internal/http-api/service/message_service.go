package service

import (
	"context"
	"errors"
	"time"

	"comnibus/internal/http-api/models"
	"comnibus/internal/http-api/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrMessageNotFound = errors.New("message not found")

// Inbox is a user's notification messages plus an unread flag for badging.
type Inbox struct {
	Messages          []models.Message `json:"messages"`
	HasUnreadMessages bool             `json:"hasUnreadMessages"`
}

type MessageService interface {
	Send(ctx context.Context, recipientName, content string) error
	Inbox(ctx context.Context, username string) (*Inbox, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Message, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type messageService struct {
	repo repository.MessageRepository
}

func NewMessageService(repo repository.MessageRepository) MessageService {
	return &messageService{repo: repo}
}

// Send records a notification message for the recipient. Used by likes,
// replies, report resolution, request resolution and follows.
func (s *messageService) Send(ctx context.Context, recipientName, content string) error {
	message := &models.Message{
		RecipientName: recipientName,
		Content:       content,
		Timestamp:     time.Now().UTC(),
		IsRead:        false,
	}
	return s.repo.Insert(ctx, message)
}

func (s *messageService) Inbox(ctx context.Context, username string) (*Inbox, error) {
	messages, err := s.repo.FindByRecipient(ctx, username)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.Message{}
	}
	hasUnread := false
	for _, m := range messages {
		if !m.IsRead {
			hasUnread = true
			break
		}
	}
	return &Inbox{Messages: messages, HasUnreadMessages: hasUnread}, nil
}

func (s *messageService) Get(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	message, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, ErrMessageNotFound
	}
	return message, err
}

func (s *messageService) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *messageService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrMessageNotFound
	}
	return nil
}
