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

type ReportRepository interface {
	Insert(ctx context.Context, report *models.Report) error
	All(ctx context.Context) ([]models.Report, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type reportRepository struct {
	coll *mongo.Collection
}

func NewReportRepository(coll *mongo.Collection) ReportRepository {
	return &reportRepository{coll: coll}
}

func (r *reportRepository) Insert(ctx context.Context, report *models.Report) error {
	res, err := r.coll.InsertOne(ctx, report)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid
	}
	return nil
}

func (r *reportRepository) All(ctx context.Context) ([]models.Report, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find reports: %w", err)
	}
	var reports []models.Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}
	return reports, nil
}

func (r *reportRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error) {
	var report models.Report
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocuments
	}
	if err != nil {
		return nil, fmt.Errorf("find report: %w", err)
	}
	return &report, nil
}

func (r *reportRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete report: %w", err)
	}
	return res.DeletedCount, nil
}
