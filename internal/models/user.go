package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserID is the hex form of a user document id. Each entity gets its own
// id type so a session id can never be passed where a user id is expected.
type UserID string

func (id UserID) ObjectID() (bson.ObjectID, error) {
	return bson.ObjectIDFromHex(string(id))
}

func (id UserID) String() string { return string(id) }

type Profile struct {
	Bio                string   `bson:"bio" json:"bio"`
	Avatar             string   `bson:"avatar" json:"avatar"`
	FavoriteCharacters []string `bson:"favorite_characters" json:"favorite_characters"`
}

type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string        `bson:"email" json:"email"`
	Username     string        `bson:"username" json:"username"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	FullName     string        `bson:"full_name" json:"full_name"`
	IsVerified   bool          `bson:"is_verified" json:"is_verified"`
	IsAdmin      bool          `bson:"is_admin" json:"is_admin"`
	IsActive     bool          `bson:"is_active" json:"is_active"`
	Profile      Profile       `bson:"profile" json:"profile"`
	LastLogin    *time.Time    `bson:"last_login" json:"last_login"`
	CreatedAt    time.Time     `bson:"created_at" json:"created_at"`
}

func (u User) UserID() UserID { return UserID(u.ID.Hex()) }
