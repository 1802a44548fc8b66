package repository

import (
	"context"
	"errors"
	"fmt"

	"comnibus/internal/http-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MessageRepository interface {
	Insert(ctx context.Context, message *models.Message) error
	FindByRecipient(ctx context.Context, username string) ([]models.Message, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type messageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(coll *mongo.Collection) MessageRepository {
	return &messageRepository{coll: coll}
}

func (r *messageRepository) Insert(ctx context.Context, message *models.Message) error {
	res, err := r.coll.InsertOne(ctx, message)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		message.ID = oid
	}
	return nil
}

func (r *messageRepository) FindByRecipient(ctx context.Context, username string) ([]models.Message, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"recipient_name": username})
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return messages, nil
}

func (r *messageRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	var message models.Message
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&message)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocuments
	}
	if err != nil {
		return nil, fmt.Errorf("find message: %w", err)
	}
	return &message, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	return nil
}

func (r *messageRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete message: %w", err)
	}
	return res.DeletedCount, nil
}
