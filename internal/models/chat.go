package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type SessionID string

func (id SessionID) ObjectID() (bson.ObjectID, error) {
	return bson.ObjectIDFromHex(string(id))
}

func (id SessionID) String() string { return string(id) }

type MessageID string

func (id MessageID) String() string { return string(id) }

type SenderType string

const (
	SenderUser  SenderType = "user"
	SenderAI    SenderType = "ai"
	SenderAdmin SenderType = "admin"
)

// ChatSession is a conversation thread between one user and one persona.
// Deleting it through the API only flips IsActive; messages stay behind
// until an admin hard-deletes the session or the owning user.
type ChatSession struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      bson.ObjectID `bson:"user_id" json:"user_id"`
	CharacterID bson.ObjectID `bson:"character_id" json:"character_id"`
	Title       string        `bson:"title" json:"title"`
	IsActive    bool          `bson:"is_active" json:"-"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updated_at"`
}

func (s ChatSession) SessionID() SessionID { return SessionID(s.ID.Hex()) }

// Message is immutable once written. CharacterID is set on ai messages only.
type Message struct {
	ID            bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	ChatSessionID bson.ObjectID  `bson:"chat_session_id" json:"-"`
	SenderType    SenderType     `bson:"sender_type" json:"sender_type"`
	Content       string         `bson:"content" json:"content"`
	CharacterID   *bson.ObjectID `bson:"character_id,omitempty" json:"-"`
	Timestamp     time.Time      `bson:"timestamp" json:"timestamp"`
}

func (m Message) MessageID() MessageID { return MessageID(m.ID.Hex()) }
