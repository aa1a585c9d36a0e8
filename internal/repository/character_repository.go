package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/akukesepian/backend/internal/models"
)

var ErrCharacterNotFound = errors.New("character not found")

type CharacterRepository struct {
	coll *mongo.Collection
}

func NewCharacterRepository(coll *mongo.Collection) *CharacterRepository {
	return &CharacterRepository{coll: coll}
}

func (r *CharacterRepository) ListActive(ctx context.Context) ([]models.Character, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}

	var characters []models.Character
	if err := cursor.All(ctx, &characters); err != nil {
		return nil, err
	}
	return characters, nil
}

func (r *CharacterRepository) GetByID(ctx context.Context, id models.CharacterID) (models.Character, error) {
	oid, err := id.ObjectID()
	if err != nil {
		return models.Character{}, ErrCharacterNotFound
	}

	var character models.Character
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&character); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Character{}, ErrCharacterNotFound
		}
		return models.Character{}, err
	}
	return character, nil
}

func (r *CharacterRepository) FindByName(ctx context.Context, name string) (models.Character, error) {
	var character models.Character
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&character); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Character{}, ErrCharacterNotFound
		}
		return models.Character{}, err
	}
	return character, nil
}

func (r *CharacterRepository) Insert(ctx context.Context, character models.Character) (models.Character, error) {
	character.CreatedAt = time.Now().UTC()

	result, err := r.coll.InsertOne(ctx, character)
	if err != nil {
		return models.Character{}, err
	}

	character.ID = result.InsertedID.(bson.ObjectID)
	return character, nil
}
