package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ResetToken is a single-use, time-boxed credential. The same document
// backs e-mail verification and password reset; expiry is checked at query
// time, the TTL index on expires_at is only best-effort cleanup.
type ResetToken struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    bson.ObjectID `bson:"user_id"`
	Token     string        `bson:"token"`
	ExpiresAt time.Time     `bson:"expires_at"`
	Used      bool          `bson:"used"`
	CreatedAt time.Time     `bson:"created_at"`
}

func (t ResetToken) OwnerID() UserID { return UserID(t.UserID.Hex()) }
