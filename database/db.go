package database

import (
	"context"
	"fmt"
	"log/slog" // use slog for structured logging

	"comnibus/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collections groups the typed collection handles the repositories are built
// on. Handles are dependency-injected rather than held as package globals.
type Collections struct {
	Users    *mongo.Collection
	Books    *mongo.Collection
	Thoughts *mongo.Collection
	Reports  *mongo.Collection
	Messages *mongo.Collection
	Requests *mongo.Collection
}

func ConnectDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*mongo.Client, *Collections, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open mongo connection: %w", err)
	}

	// Verify the connection
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		// disconnect the client if ping fails to avoid resource leak
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	colls := &Collections{
		Users:    db.Collection("users"),
		Books:    db.Collection("books"),
		Thoughts: db.Collection("thoughts"),
		Reports:  db.Collection("reports"),
		Messages: db.Collection("messages"),
		Requests: db.Collection("requests"),
	}

	logger.Info("Connected to the database successfully", "database", cfg.MongoDatabase)
	return client, colls, nil
}
