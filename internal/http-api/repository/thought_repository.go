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

type ThoughtRepository interface {
	Insert(ctx context.Context, thought *models.Thought) error
	Find(ctx context.Context, page, pageSize int) ([]models.Thought, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Thought, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	IncCounter(ctx context.Context, id primitive.ObjectID, field string) (bool, error)

	PushReply(ctx context.Context, thoughtID primitive.ObjectID, reply models.Reply) (bool, error)
	PullReply(ctx context.Context, thoughtID, replyID primitive.ObjectID) (int64, error)
	FindReply(ctx context.Context, thoughtID, replyID primitive.ObjectID) (*models.Reply, error)
	IncReplyCounter(ctx context.Context, thoughtID, replyID primitive.ObjectID, field string) (bool, error)

	FindByUsernames(ctx context.Context, usernames []string) ([]models.Thought, error)
	FindWithRepliesBy(ctx context.Context, usernames []string) ([]models.Thought, error)
}

type thoughtRepository struct {
	coll *mongo.Collection
}

func NewThoughtRepository(coll *mongo.Collection) ThoughtRepository {
	return &thoughtRepository{coll: coll}
}

func (r *thoughtRepository) Insert(ctx context.Context, thought *models.Thought) error {
	res, err := r.coll.InsertOne(ctx, thought)
	if err != nil {
		return fmt.Errorf("insert thought: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		thought.ID = oid
	}
	return nil
}

func (r *thoughtRepository) Find(ctx context.Context, page, pageSize int) ([]models.Thought, error) {
	opts := options.Find().
		SetSkip(int64(pageSize * (page - 1))).
		SetLimit(int64(pageSize))
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find thoughts: %w", err)
	}
	var thoughts []models.Thought
	if err := cursor.All(ctx, &thoughts); err != nil {
		return nil, fmt.Errorf("decode thoughts: %w", err)
	}
	return thoughts, nil
}

func (r *thoughtRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Thought, error) {
	var thought models.Thought
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&thought)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocuments
	}
	if err != nil {
		return nil, fmt.Errorf("find thought: %w", err)
	}
	return &thought, nil
}

func (r *thoughtRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete thought: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *thoughtRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete all thoughts: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *thoughtRepository) IncCounter(ctx context.Context, id primitive.ObjectID, field string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		return false, fmt.Errorf("inc thought %s: %w", field, err)
	}
	return res.MatchedCount > 0, nil
}

func (r *thoughtRepository) PushReply(ctx context.Context, thoughtID primitive.ObjectID, reply models.Reply) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": thoughtID},
		bson.M{"$push": bson.M{"replies": reply}})
	if err != nil {
		return false, fmt.Errorf("push thought reply: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *thoughtRepository) PullReply(ctx context.Context, thoughtID, replyID primitive.ObjectID) (int64, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": thoughtID},
		bson.M{"$pull": bson.M{"replies": bson.M{"_id": replyID}}})
	if err != nil {
		return 0, fmt.Errorf("pull thought reply: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *thoughtRepository) FindReply(ctx context.Context, thoughtID, replyID primitive.ObjectID) (*models.Reply, error) {
	var thought models.Thought
	opts := options.FindOne().SetProjection(bson.M{"replies.$": 1})
	err := r.coll.FindOne(ctx,
		bson.M{"_id": thoughtID, "replies._id": replyID}, opts).Decode(&thought)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocuments
	}
	if err != nil {
		return nil, fmt.Errorf("find thought reply: %w", err)
	}
	if len(thought.Replies) == 0 {
		return nil, ErrNoDocuments
	}
	return &thought.Replies[0], nil
}

func (r *thoughtRepository) IncReplyCounter(ctx context.Context, thoughtID, replyID primitive.ObjectID, field string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": thoughtID, "replies._id": replyID},
		bson.M{"$inc": bson.M{"replies.$." + field: 1}})
	if err != nil {
		return false, fmt.Errorf("inc thought reply %s: %w", field, err)
	}
	return res.MatchedCount > 0, nil
}

func (r *thoughtRepository) FindByUsernames(ctx context.Context, usernames []string) ([]models.Thought, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"username": bson.M{"$in": usernames}})
	if err != nil {
		return nil, fmt.Errorf("find thoughts by users: %w", err)
	}
	var thoughts []models.Thought
	if err := cursor.All(ctx, &thoughts); err != nil {
		return nil, fmt.Errorf("decode thoughts: %w", err)
	}
	return thoughts, nil
}

func (r *thoughtRepository) FindWithRepliesBy(ctx context.Context, usernames []string) ([]models.Thought, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"replies.username": bson.M{"$in": usernames}})
	if err != nil {
		return nil, fmt.Errorf("find thoughts with replies by users: %w", err)
	}
	var thoughts []models.Thought
	if err := cursor.All(ctx, &thoughts); err != nil {
		return nil, fmt.Errorf("decode thoughts: %w", err)
	}
	return thoughts, nil
}
