package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/akukesepian/backend/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{coll: coll}
}

// Create inserts the user with a lowercased e-mail. Returns ErrDuplicateKey
// when the unique email or username index rejects the document.
func (r *UserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now().UTC()

	result, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDuplicateKey
		}
		return models.User{}, err
	}

	user.ID = result.InsertedID.(bson.ObjectID)
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id models.UserID) (models.User, error) {
	oid, err := id.ObjectID()
	if err != nil {
		return models.User{}, ErrUserNotFound
	}

	var user models.User
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) SetVerified(ctx context.Context, id models.UserID) error {
	return r.setFields(ctx, id, bson.M{"is_verified": true})
}

func (r *UserRepository) SetPasswordHash(ctx context.Context, id models.UserID, hash string) error {
	return r.setFields(ctx, id, bson.M{"password_hash": hash})
}

func (r *UserRepository) SetLastLogin(ctx context.Context, id models.UserID, at time.Time) error {
	return r.setFields(ctx, id, bson.M{"last_login": at})
}

func (r *UserRepository) SetAdmin(ctx context.Context, id models.UserID, isAdmin bool) error {
	return r.setFields(ctx, id, bson.M{"is_admin": isAdmin})
}

func (r *UserRepository) SetFullName(ctx context.Context, id models.UserID, fullName string) error {
	return r.setFields(ctx, id, bson.M{"full_name": fullName})
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id models.UserID, profile models.Profile) error {
	return r.setFields(ctx, id, bson.M{"profile": profile})
}

func (r *UserRepository) SetAvatar(ctx context.Context, id models.UserID, url string) error {
	return r.setFields(ctx, id, bson.M{"profile.avatar": url})
}

func (r *UserRepository) setFields(ctx context.Context, id models.UserID, fields bson.M) error {
	oid, err := id.ObjectID()
	if err != nil {
		return ErrUserNotFound
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// List returns every user, newest first. Admin-only path, password hashes
// are stripped at the handler boundary via the json:"-" tag.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Delete(ctx context.Context, id models.UserID) error {
	oid, err := id.ObjectID()
	if err != nil {
		return ErrUserNotFound
	}

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *UserRepository) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"last_login": bson.M{"$gte": since}})
}
