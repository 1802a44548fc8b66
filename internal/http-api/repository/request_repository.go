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

type RequestRepository interface {
	Insert(ctx context.Context, request *models.BookRequest) error
	Find(ctx context.Context, page, pageSize int) ([]models.BookRequest, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.BookRequest, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type requestRepository struct {
	coll *mongo.Collection
}

func NewRequestRepository(coll *mongo.Collection) RequestRepository {
	return &requestRepository{coll: coll}
}

func (r *requestRepository) Insert(ctx context.Context, request *models.BookRequest) error {
	res, err := r.coll.InsertOne(ctx, request)
	if err != nil {
		return fmt.Errorf("insert book request: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		request.ID = oid
	}
	return nil
}

func (r *requestRepository) Find(ctx context.Context, page, pageSize int) ([]models.BookRequest, error) {
	opts := options.Find().
		SetSkip(int64(pageSize * (page - 1))).
		SetLimit(int64(pageSize))
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find book requests: %w", err)
	}
	var requests []models.BookRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("decode book requests: %w", err)
	}
	return requests, nil
}

func (r *requestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.BookRequest, error) {
	var request models.BookRequest
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocuments
	}
	if err != nil {
		return nil, fmt.Errorf("find book request: %w", err)
	}
	return &request, nil
}

func (r *requestRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete book request: %w", err)
	}
	return res.DeletedCount, nil
}
