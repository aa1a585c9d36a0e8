package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/akukesepian/backend/internal/models"
)

var ErrSessionNotFound = errors.New("chat session not found")

// ChatRepository owns both the chat_sessions and the messages collection;
// appending a message always bumps the owning session's updated_at.
type ChatRepository struct {
	sessions *mongo.Collection
	messages *mongo.Collection
}

func NewChatRepository(sessions, messages *mongo.Collection) *ChatRepository {
	return &ChatRepository{sessions: sessions, messages: messages}
}

func (r *ChatRepository) CreateSession(ctx context.Context, userID models.UserID, characterID models.CharacterID, title string) (models.ChatSession, error) {
	userOID, err := userID.ObjectID()
	if err != nil {
		return models.ChatSession{}, ErrUserNotFound
	}
	charOID, err := characterID.ObjectID()
	if err != nil {
		return models.ChatSession{}, ErrCharacterNotFound
	}

	now := time.Now().UTC()
	session := models.ChatSession{
		UserID:      userOID,
		CharacterID: charOID,
		Title:       title,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := r.sessions.InsertOne(ctx, session)
	if err != nil {
		return models.ChatSession{}, err
	}

	session.ID = result.InsertedID.(bson.ObjectID)
	return session, nil
}

// ListSessions returns the user's active sessions, most recently updated
// first.
func (r *ChatRepository) ListSessions(ctx context.Context, userID models.UserID) ([]models.ChatSession, error) {
	oid, err := userID.ObjectID()
	if err != nil {
		return nil, ErrUserNotFound
	}

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.sessions.Find(ctx, bson.M{"user_id": oid, "is_active": true}, opts)
	if err != nil {
		return nil, err
	}

	var sessions []models.ChatSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession is owner-scoped: a session belonging to someone else is
// indistinguishable from a missing one.
func (r *ChatRepository) GetSession(ctx context.Context, sessionID models.SessionID, userID models.UserID) (models.ChatSession, error) {
	sessionOID, err := sessionID.ObjectID()
	if err != nil {
		return models.ChatSession{}, ErrSessionNotFound
	}
	userOID, err := userID.ObjectID()
	if err != nil {
		return models.ChatSession{}, ErrSessionNotFound
	}

	var session models.ChatSession
	err = r.sessions.FindOne(ctx, bson.M{"_id": sessionOID, "user_id": userOID}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ChatSession{}, ErrSessionNotFound
		}
		return models.ChatSession{}, err
	}
	return session, nil
}

// GetSessionAny skips the ownership check. Admin surface only.
func (r *ChatRepository) GetSessionAny(ctx context.Context, sessionID models.SessionID) (models.ChatSession, error) {
	oid, err := sessionID.ObjectID()
	if err != nil {
		return models.ChatSession{}, ErrSessionNotFound
	}

	var session models.ChatSession
	err = r.sessions.FindOne(ctx, bson.M{"_id": oid}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ChatSession{}, ErrSessionNotFound
		}
		return models.ChatSession{}, err
	}
	return session, nil
}

func (r *ChatRepository) ListAllSessions(ctx context.Context, limit int64) ([]models.ChatSession, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.sessions.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, err
	}

	var sessions []models.ChatSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *ChatRepository) SetTitle(ctx context.Context, sessionID models.SessionID, title string) error {
	oid, err := sessionID.ObjectID()
	if err != nil {
		return ErrSessionNotFound
	}

	_, err = r.sessions.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"title": title}},
	)
	return err
}

// Deactivate soft-deletes a session. Its messages stay queryable through
// the admin surface until a hard delete.
func (r *ChatRepository) Deactivate(ctx context.Context, sessionID models.SessionID) error {
	oid, err := sessionID.ObjectID()
	if err != nil {
		return ErrSessionNotFound
	}

	result, err := r.sessions.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *ChatRepository) AddMessage(ctx context.Context, message models.Message) (models.Message, error) {
	message.Timestamp = time.Now().UTC()

	result, err := r.messages.InsertOne(ctx, message)
	if err != nil {
		return models.Message{}, err
	}
	message.ID = result.InsertedID.(bson.ObjectID)

	_, err = r.sessions.UpdateOne(ctx,
		bson.M{"_id": message.ChatSessionID},
		bson.M{"$set": bson.M{"updated_at": message.Timestamp}},
	)
	if err != nil {
		return models.Message{}, err
	}

	return message, nil
}

// ListMessages returns the session's messages oldest first, capped at limit.
func (r *ChatRepository) ListMessages(ctx context.Context, sessionID models.SessionID, limit int64) ([]models.Message, error) {
	oid, err := sessionID.ObjectID()
	if err != nil {
		return nil, ErrSessionNotFound
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.messages.Find(ctx, bson.M{"chat_session_id": oid}, opts)
	if err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *ChatRepository) LastMessage(ctx context.Context, sessionID models.SessionID) (models.Message, error) {
	oid, err := sessionID.ObjectID()
	if err != nil {
		return models.Message{}, ErrSessionNotFound
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	var message models.Message
	err = r.messages.FindOne(ctx, bson.M{"chat_session_id": oid}, opts).Decode(&message)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Message{}, ErrSessionNotFound
		}
		return models.Message{}, err
	}
	return message, nil
}

func (r *ChatRepository) CountMessages(ctx context.Context, sessionID models.SessionID) (int64, error) {
	oid, err := sessionID.ObjectID()
	if err != nil {
		return 0, ErrSessionNotFound
	}
	return r.messages.CountDocuments(ctx, bson.M{"chat_session_id": oid})
}

func (r *ChatRepository) CountSessionsByUser(ctx context.Context, userID models.UserID) (int64, error) {
	oid, err := userID.ObjectID()
	if err != nil {
		return 0, ErrUserNotFound
	}
	return r.sessions.CountDocuments(ctx, bson.M{"user_id": oid, "is_active": true})
}

func (r *ChatRepository) CountMessagesByUser(ctx context.Context, userID models.UserID) (int64, error) {
	ids, err := r.sessionIDsByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return r.messages.CountDocuments(ctx, bson.M{"chat_session_id": bson.M{"$in": ids}})
}

func (r *ChatRepository) CountActiveSessions(ctx context.Context) (int64, error) {
	return r.sessions.CountDocuments(ctx, bson.M{"is_active": true})
}

func (r *ChatRepository) CountAllMessages(ctx context.Context) (int64, error) {
	return r.messages.CountDocuments(ctx, bson.M{})
}

// DeleteSessionHard removes the session and every message in it.
func (r *ChatRepository) DeleteSessionHard(ctx context.Context, sessionID models.SessionID) error {
	oid, err := sessionID.ObjectID()
	if err != nil {
		return ErrSessionNotFound
	}

	if _, err := r.messages.DeleteMany(ctx, bson.M{"chat_session_id": oid}); err != nil {
		return err
	}

	result, err := r.sessions.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteUserData removes every session of the user, soft-deleted ones
// included, together with their messages. Runs before the user document
// itself is deleted.
func (r *ChatRepository) DeleteUserData(ctx context.Context, userID models.UserID) error {
	ids, err := r.sessionIDsByUser(ctx, userID)
	if err != nil {
		return err
	}

	if len(ids) > 0 {
		if _, err := r.messages.DeleteMany(ctx, bson.M{"chat_session_id": bson.M{"$in": ids}}); err != nil {
			return err
		}
	}

	oid, err := userID.ObjectID()
	if err != nil {
		return ErrUserNotFound
	}
	_, err = r.sessions.DeleteMany(ctx, bson.M{"user_id": oid})
	return err
}

func (r *ChatRepository) sessionIDsByUser(ctx context.Context, userID models.UserID) ([]bson.ObjectID, error) {
	oid, err := userID.ObjectID()
	if err != nil {
		return nil, ErrUserNotFound
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.sessions.Find(ctx, bson.M{"user_id": oid}, opts)
	if err != nil {
		return nil, err
	}

	var docs []struct {
		ID bson.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]bson.ObjectID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}
