package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/akukesepian/backend/internal/config"
)

// Client wraps the process-wide mongo connection and exposes the
// collections the repositories work on.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewClient(ctx context.Context, cfg config.MongoConfig) (*Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

func (c *Client) Users() *mongo.Collection        { return c.db.Collection("users") }
func (c *Client) ResetTokens() *mongo.Collection  { return c.db.Collection("reset_tokens") }
func (c *Client) Characters() *mongo.Collection   { return c.db.Collection("characters") }
func (c *Client) ChatSessions() *mongo.Collection { return c.db.Collection("chat_sessions") }
func (c *Client) Messages() *mongo.Collection     { return c.db.Collection("messages") }

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique and query indexes. The expires_at TTL
// index removes stale reset tokens as best-effort cleanup; token validity
// is still checked at query time.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := c.Users().Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	tokenIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}
	if _, err := c.ResetTokens().Indexes().CreateMany(ctx, tokenIndexes); err != nil {
		return fmt.Errorf("create token indexes: %w", err)
	}

	sessionIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	}
	if _, err := c.ChatSessions().Indexes().CreateOne(ctx, sessionIndex); err != nil {
		return fmt.Errorf("create session index: %w", err)
	}

	messageIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "chat_session_id", Value: 1}, {Key: "timestamp", Value: 1}},
	}
	if _, err := c.Messages().Indexes().CreateOne(ctx, messageIndex); err != nil {
		return fmt.Errorf("create message index: %w", err)
	}

	characterIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := c.Characters().Indexes().CreateOne(ctx, characterIndex); err != nil {
		return fmt.Errorf("create character index: %w", err)
	}

	return nil
}
