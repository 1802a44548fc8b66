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

var ErrThoughtNotFound = errors.New("thought not found")

type ThoughtService interface {
	Create(ctx context.Context, username, comment string) (*models.Thought, error)
	List(ctx context.Context, page, pageSize int) ([]models.Thought, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Thought, error)
	Like(ctx context.Context, id primitive.ObjectID, voter string) error
	Dislike(ctx context.Context, id primitive.ObjectID, voter string) error
	Delete(ctx context.Context, id primitive.ObjectID, username string, admin bool) error
	DeleteAll(ctx context.Context) (int64, error)

	CreateReply(ctx context.Context, thoughtID primitive.ObjectID, username, content string) (*models.Reply, error)
	ListReplies(ctx context.Context, thoughtID primitive.ObjectID) ([]models.Reply, error)
	GetReply(ctx context.Context, thoughtID, replyID primitive.ObjectID) (*models.Reply, error)
	LikeReply(ctx context.Context, thoughtID, replyID primitive.ObjectID, voter string) error
	DislikeReply(ctx context.Context, thoughtID, replyID primitive.ObjectID, voter string) error
	DeleteReply(ctx context.Context, thoughtID, replyID primitive.ObjectID, username string, admin bool) error
}

type thoughtService struct {
	thoughtRepo repository.ThoughtRepository
	messages    MessageService
	now         func() time.Time
}

func NewThoughtService(thoughtRepo repository.ThoughtRepository, messages MessageService) ThoughtService {
	return &thoughtService{
		thoughtRepo: thoughtRepo,
		messages:    messages,
		now:         time.Now,
	}
}

func (s *thoughtService) Create(ctx context.Context, username, comment string) (*models.Thought, error) {
	thought := &models.Thought{
		Username:  username,
		Comment:   comment,
		Likes:     0,
		Dislikes:  0,
		CreatedAt: s.now().UTC(),
		Replies:   []models.Reply{},
	}
	if err := s.thoughtRepo.Insert(ctx, thought); err != nil {
		return nil, err
	}
	return thought, nil
}

func (s *thoughtService) List(ctx context.Context, page, pageSize int) ([]models.Thought, error) {
	thoughts, err := s.thoughtRepo.Find(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	if thoughts == nil {
		thoughts = []models.Thought{}
	}
	return thoughts, nil
}

func (s *thoughtService) Get(ctx context.Context, id primitive.ObjectID) (*models.Thought, error) {
	thought, err := s.thoughtRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, ErrThoughtNotFound
	}
	return thought, err
}

func (s *thoughtService) vote(ctx context.Context, id primitive.ObjectID, voter, field, verb string) error {
	thought, err := s.thoughtRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNoDocuments) {
		return ErrThoughtNotFound
	}
	if err != nil {
		return err
	}

	if thought.Username == voter {
		return ErrSelfVote
	}

	matched, err := s.thoughtRepo.IncCounter(ctx, id, field)
	if err != nil {
		return err
	}
	if !matched {
		return ErrThoughtNotFound
	}

	if thought.Username != "" {
		_ = s.messages.Send(ctx, thought.Username, fmt.Sprintf("%s %s your thought!", voter, verb))
	}
	return nil
}

func (s *thoughtService) Like(ctx context.Context, id primitive.ObjectID, voter string) error {
	return s.vote(ctx, id, voter, "likes", "liked")
}

func (s *thoughtService) Dislike(ctx context.Context, id primitive.ObjectID, voter string) error {
	return s.vote(ctx, id, voter, "dislikes", "disliked")
}

func (s *thoughtService) Delete(ctx context.Context, id primitive.ObjectID, username string, admin bool) error {
	thought, err := s.thoughtRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNoDocuments) {
		return ErrThoughtNotFound
	}
	if err != nil {
		return err
	}

	if !admin && thought.Username != username {
		return ErrNotOwner
	}

	deleted, err := s.thoughtRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrThoughtNotFound
	}
	return nil
}

// DeleteAll wipes the whole collection. Admin only, enforced at the route.
func (s *thoughtService) DeleteAll(ctx context.Context) (int64, error) {
	return s.thoughtRepo.DeleteAll(ctx)
}

func (s *thoughtService) CreateReply(ctx context.Context, thoughtID primitive.ObjectID, username, content string) (*models.Reply, error) {
	reply := models.Reply{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Content:   content,
		Likes:     0,
		Dislikes:  0,
		CreatedAt: s.now().UTC(),
	}

	matched, err := s.thoughtRepo.PushReply(ctx, thoughtID, reply)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrThoughtNotFound
	}
	return &reply, nil
}

func (s *thoughtService) ListReplies(ctx context.Context, thoughtID primitive.ObjectID) ([]models.Reply, error) {
	thought, err := s.thoughtRepo.FindByID(ctx, thoughtID)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, ErrThoughtNotFound
	}
	if err != nil {
		return nil, err
	}
	if thought.Replies == nil {
		return []models.Reply{}, nil
	}
	return thought.Replies, nil
}

func (s *thoughtService) GetReply(ctx context.Context, thoughtID, replyID primitive.ObjectID) (*models.Reply, error) {
	reply, err := s.thoughtRepo.FindReply(ctx, thoughtID, replyID)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, ErrReplyNotFound
	}
	return reply, err
}

func (s *thoughtService) voteReply(ctx context.Context, thoughtID, replyID primitive.ObjectID, voter, field, verb string) error {
	reply, err := s.thoughtRepo.FindReply(ctx, thoughtID, replyID)
	if errors.Is(err, repository.ErrNoDocuments) {
		return ErrReplyNotFound
	}
	if err != nil {
		return err
	}

	if reply.Username == voter {
		return ErrSelfVote
	}

	matched, err := s.thoughtRepo.IncReplyCounter(ctx, thoughtID, replyID, field)
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

func (s *thoughtService) LikeReply(ctx context.Context, thoughtID, replyID primitive.ObjectID, voter string) error {
	return s.voteReply(ctx, thoughtID, replyID, voter, "likes", "liked")
}

func (s *thoughtService) DislikeReply(ctx context.Context, thoughtID, replyID primitive.ObjectID, voter string) error {
	return s.voteReply(ctx, thoughtID, replyID, voter, "dislikes", "disliked")
}

func (s *thoughtService) DeleteReply(ctx context.Context, thoughtID, replyID primitive.ObjectID, username string, admin bool) error {
	reply, err := s.thoughtRepo.FindReply(ctx, thoughtID, replyID)
	if errors.Is(err, repository.ErrNoDocuments) {
		return ErrReplyNotFound
	}
	if err != nil {
		return err
	}

	if !admin && reply.Username != username {
		return ErrNotOwner
	}

	removed, err := s.thoughtRepo.PullReply(ctx, thoughtID, replyID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrReplyNotFound
	}
	return nil
}
