package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"exam-tasks-api/internal/config"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	TasksCollection        = "tasks"
	ExaminationsCollection = "examinations"
)

// MongoDBClient wraps the MongoDB client and the application database
type MongoDBClient struct {
	client   *mongo.Client
	database *mongo.Database
}

// BuildURI returns the connection URI and a variant safe for logging
func BuildURI(cfg config.MongoDBConfig) (uri, logURI string) {
	if cfg.URI != "" {
		return cfg.URI, "(from MONGODB_URI)"
	}

	if cfg.Username != "" && cfg.Password != "" {
		userInfo := url.UserPassword(cfg.Username, cfg.Password)
		uri = fmt.Sprintf("mongodb://%s@%s:%s/%s?authSource=%s",
			userInfo.String(),
			cfg.Host,
			cfg.Port,
			cfg.Database,
			url.QueryEscape(cfg.AuthSource),
		)
		logURI = fmt.Sprintf("mongodb://%s:***@%s:%s/%s?authSource=%s",
			url.User(cfg.Username).String(), cfg.Host, cfg.Port, cfg.Database, url.QueryEscape(cfg.AuthSource))
		return uri, logURI
	}

	uri = fmt.Sprintf("mongodb://%s:%s/%s", cfg.Host, cfg.Port, cfg.Database)
	return uri, uri
}

// NewMongoDBClient connects to MongoDB and ensures the task indexes exist
func NewMongoDBClient(cfg config.MongoDBConfig, log *logrus.Logger) (*MongoDBClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uri, logURI := BuildURI(cfg)
	log.WithField("uri", logURI).Info("connecting to MongoDB")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB at %s: %w", logURI, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB at %s: %w", logURI, err)
	}

	database := client.Database(cfg.Database)

	// Listing filters on owner and status, completeness on owner only
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}},
	}
	if _, err := database.Collection(TasksCollection).Indexes().CreateOne(ctx, indexModel); err != nil {
		// Index might already exist with other options, that's okay
		log.WithError(err).Warn("task index creation")
	}

	return &MongoDBClient{
		client:   client,
		database: database,
	}, nil
}

// Database returns the application database
func (c *MongoDBClient) Database() *mongo.Database {
	return c.database
}

// Close closes the MongoDB client connection
func (c *MongoDBClient) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}
