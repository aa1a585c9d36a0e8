package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/akukesepian/backend/internal/models"
)

var ErrTokenNotFound = errors.New("token not found")

type TokenRepository struct {
	coll *mongo.Collection
}

func NewTokenRepository(coll *mongo.Collection) *TokenRepository {
	return &TokenRepository{coll: coll}
}

func (r *TokenRepository) Create(ctx context.Context, token models.ResetToken) error {
	token.CreatedAt = time.Now().UTC()
	_, err := r.coll.InsertOne(ctx, token)
	return err
}

// FindValid returns the token only while it is unused and unexpired.
// Expiry is compared here rather than left to the TTL index.
func (r *TokenRepository) FindValid(ctx context.Context, token string) (models.ResetToken, error) {
	filter := bson.M{
		"token":      token,
		"used":       false,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}

	var doc models.ResetToken
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ResetToken{}, ErrTokenNotFound
		}
		return models.ResetToken{}, err
	}
	return doc, nil
}

func (r *TokenRepository) MarkUsed(ctx context.Context, token string) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"token": token},
		bson.M{"$set": bson.M{"used": true}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// PurgeStale removes expired and already-used tokens. The TTL index covers
// expiry on its own schedule; this sweep keeps used tokens from piling up.
func (r *TokenRepository) PurgeStale(ctx context.Context) (int64, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"expires_at": bson.M{"$lte": time.Now().UTC()}},
		bson.M{"used": true},
	}}

	result, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
