package repository

import (
	"context"
	"errors"
	"fmt"

	"comnibus/internal/http-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNoDocuments is the store-agnostic "not found" the services test against.
var ErrNoDocuments = errors.New("document not found")

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsernames(ctx context.Context, usernames []string) ([]models.User, error)
	All(ctx context.Context) ([]models.User, error)

	PushFollowing(ctx context.Context, userID primitive.ObjectID, ref models.UserRef) error
	PullFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error
	PushFollower(ctx context.Context, userID primitive.ObjectID, ref models.UserRef) error
	PullFollower(ctx context.Context, userID, followerID primitive.ObjectID) error

	AddHaveRead(ctx context.Context, userID primitive.ObjectID, entry models.ShelfBook) error
	AddWantToRead(ctx context.Context, userID primitive.ObjectID, entry models.ShelfBook) error
	AddCurrentlyReading(ctx context.Context, userID primitive.ObjectID, entry models.CurrentlyReading) error
	RemoveCurrentlyReading(ctx context.Context, userID, bookID primitive.ObjectID) error
	SetReadingProgress(ctx context.Context, userID, bookID primitive.ObjectID, currentPage int, progress float64) (bool, error)
}

type userRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(coll *mongo.Collection) UserRepository {
	return &userRepository{coll: coll}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocuments
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) FindByUsernames(ctx context.Context, usernames []string) ([]models.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"username": bson.M{"$in": usernames}})
	if err != nil {
		return nil, fmt.Errorf("find users by usernames: %w", err)
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// All returns every user with the password hash projected away.
func (r *userRepository) All(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetProjection(bson.M{"password": 0})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *userRepository) push(ctx context.Context, userID primitive.ObjectID, field string, value any) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$push": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("push %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return ErrNoDocuments
	}
	return nil
}

func (r *userRepository) pullByID(ctx context.Context, userID primitive.ObjectID, field string, id primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{field: bson.M{"_id": id}}})
	if err != nil {
		return fmt.Errorf("pull %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return ErrNoDocuments
	}
	return nil
}

func (r *userRepository) PushFollowing(ctx context.Context, userID primitive.ObjectID, ref models.UserRef) error {
	return r.push(ctx, userID, "following", ref)
}

func (r *userRepository) PullFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error {
	return r.pullByID(ctx, userID, "following", targetID)
}

func (r *userRepository) PushFollower(ctx context.Context, userID primitive.ObjectID, ref models.UserRef) error {
	return r.push(ctx, userID, "followers", ref)
}

func (r *userRepository) PullFollower(ctx context.Context, userID, followerID primitive.ObjectID) error {
	return r.pullByID(ctx, userID, "followers", followerID)
}

func (r *userRepository) AddHaveRead(ctx context.Context, userID primitive.ObjectID, entry models.ShelfBook) error {
	return r.push(ctx, userID, "have_read", entry)
}

func (r *userRepository) AddWantToRead(ctx context.Context, userID primitive.ObjectID, entry models.ShelfBook) error {
	return r.push(ctx, userID, "want_to_read", entry)
}

func (r *userRepository) AddCurrentlyReading(ctx context.Context, userID primitive.ObjectID, entry models.CurrentlyReading) error {
	return r.push(ctx, userID, "currently_reading", entry)
}

func (r *userRepository) RemoveCurrentlyReading(ctx context.Context, userID, bookID primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"currently_reading": bson.M{"book_id": bookID}}})
	if err != nil {
		return fmt.Errorf("pull currently_reading: %w", err)
	}
	return nil
}

// SetReadingProgress writes current_page and the recomputed progress onto the
// matching currently_reading entry. Returns false when no entry matched.
func (r *userRepository) SetReadingProgress(ctx context.Context, userID, bookID primitive.ObjectID, currentPage int, progress float64) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID, "currently_reading.book_id": bookID},
		bson.M{"$set": bson.M{
			"currently_reading.$.current_page": currentPage,
			"currently_reading.$.progress":     progress,
		}})
	if err != nil {
		return false, fmt.Errorf("set reading progress: %w", err)
	}
	return res.MatchedCount > 0, nil
}
