package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type CharacterID string

func (id CharacterID) ObjectID() (bson.ObjectID, error) {
	return bson.ObjectIDFromHex(string(id))
}

func (id CharacterID) String() string { return string(id) }

// Character is a predefined AI persona. The catalog is seeded once at
// startup and read-only through the API.
type Character struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string        `bson:"name" json:"name"`
	Description     string        `bson:"description" json:"description"`
	Personality     string        `bson:"personality" json:"-"`
	Avatar          string        `bson:"avatar" json:"avatar"`
	Greeting        string        `bson:"greeting" json:"greeting"`
	SampleResponses []string      `bson:"sample_responses" json:"sample_responses"`
	IsActive        bool          `bson:"is_active" json:"-"`
	CreatedAt       time.Time     `bson:"created_at" json:"-"`
}

func (c Character) CharacterID() CharacterID { return CharacterID(c.ID.Hex()) }
