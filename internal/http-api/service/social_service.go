package service

import (
	"context"
	"errors"
	"fmt"

	"comnibus/internal/http-api/models"
	"comnibus/internal/http-api/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
)

// SocialService maintains the mirrored follow relationship: every follow
// edge lives in the follower's following list and the target's followers
// list. The two sides are written as separate single-document updates with
// no cross-document transaction; a crash between them leaves the pair
// asymmetric until repaired.
type SocialService interface {
	Follow(ctx context.Context, followerUsername string, targetID primitive.ObjectID) error
	Unfollow(ctx context.Context, followerUsername string, targetID primitive.ObjectID) error
	FollowingIDs(ctx context.Context, username string) ([]primitive.ObjectID, error)
}

type socialService struct {
	userRepo repository.UserRepository
	messages MessageService
}

func NewSocialService(userRepo repository.UserRepository, messages MessageService) SocialService {
	return &socialService{userRepo: userRepo, messages: messages}
}

func (s *socialService) Follow(ctx context.Context, followerUsername string, targetID primitive.ObjectID) error {
	follower, err := s.userRepo.FindByUsername(ctx, followerUsername)
	if errors.Is(err, repository.ErrNoDocuments) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	target, err := s.userRepo.FindByID(ctx, targetID)
	if errors.Is(err, repository.ErrNoDocuments) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	if follower.ID == target.ID {
		return ErrSelfFollow
	}
	if follower.IsFollowing(target.Username) {
		return ErrAlreadyFollowing
	}

	if err := s.userRepo.PushFollowing(ctx, follower.ID, models.UserRef{ID: target.ID, Username: target.Username}); err != nil {
		return err
	}
	if err := s.userRepo.PushFollower(ctx, target.ID, models.UserRef{ID: follower.ID, Username: follower.Username}); err != nil {
		return err
	}

	// Notification failure never undoes the follow.
	_ = s.messages.Send(ctx, target.Username, fmt.Sprintf("%s started following you!", follower.Username))
	return nil
}

func (s *socialService) Unfollow(ctx context.Context, followerUsername string, targetID primitive.ObjectID) error {
	follower, err := s.userRepo.FindByUsername(ctx, followerUsername)
	if errors.Is(err, repository.ErrNoDocuments) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	target, err := s.userRepo.FindByID(ctx, targetID)
	if errors.Is(err, repository.ErrNoDocuments) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	if follower.ID == target.ID {
		return ErrSelfFollow
	}
	if !follower.IsFollowing(target.Username) {
		return ErrNotFollowing
	}

	if err := s.userRepo.PullFollowing(ctx, follower.ID, target.ID); err != nil {
		return err
	}
	return s.userRepo.PullFollower(ctx, target.ID, follower.ID)
}

// FollowingIDs returns the ordered fan-out set for the feed builder.
func (s *socialService) FollowingIDs(ctx context.Context, username string) ([]primitive.ObjectID, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(user.Following))
	for _, ref := range user.Following {
		ids = append(ids, ref.ID)
	}
	return ids, nil
}
