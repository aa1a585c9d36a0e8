// Package service holds the domain logic between the HTTP handlers and
// the repositories. Services depend on the narrow store interfaces below
// so tests can swap in fakes; the mongo-backed repositories satisfy them.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/akukesepian/backend/internal/models"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrWeakPassword       = errors.New("password too short")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("account not verified")
	ErrUserInactive       = errors.New("account deactivated")
	ErrTokenInvalid       = errors.New("token invalid or expired")
	ErrMailFailed         = errors.New("mail delivery failed")
	ErrUnsupportedAvatar  = errors.New("unsupported avatar upload")
	ErrSelfAction         = errors.New("action not allowed on own account")
	ErrPrimaryAdmin       = errors.New("primary admin account is protected")
	ErrEmptyMessage       = errors.New("message must not be empty")
)

type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	GetByID(ctx context.Context, id models.UserID) (models.User, error)
	SetVerified(ctx context.Context, id models.UserID) error
	SetPasswordHash(ctx context.Context, id models.UserID, hash string) error
	SetLastLogin(ctx context.Context, id models.UserID, at time.Time) error
	SetAdmin(ctx context.Context, id models.UserID, isAdmin bool) error
	SetFullName(ctx context.Context, id models.UserID, fullName string) error
	UpdateProfile(ctx context.Context, id models.UserID, profile models.Profile) error
	SetAvatar(ctx context.Context, id models.UserID, url string) error
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id models.UserID) error
	Count(ctx context.Context) (int64, error)
	CountActiveSince(ctx context.Context, since time.Time) (int64, error)
}

type TokenStore interface {
	Create(ctx context.Context, token models.ResetToken) error
	FindValid(ctx context.Context, token string) (models.ResetToken, error)
	MarkUsed(ctx context.Context, token string) error
}

type CharacterStore interface {
	ListActive(ctx context.Context) ([]models.Character, error)
	GetByID(ctx context.Context, id models.CharacterID) (models.Character, error)
}

type ChatStore interface {
	CreateSession(ctx context.Context, userID models.UserID, characterID models.CharacterID, title string) (models.ChatSession, error)
	ListSessions(ctx context.Context, userID models.UserID) ([]models.ChatSession, error)
	GetSession(ctx context.Context, sessionID models.SessionID, userID models.UserID) (models.ChatSession, error)
	GetSessionAny(ctx context.Context, sessionID models.SessionID) (models.ChatSession, error)
	ListAllSessions(ctx context.Context, limit int64) ([]models.ChatSession, error)
	SetTitle(ctx context.Context, sessionID models.SessionID, title string) error
	Deactivate(ctx context.Context, sessionID models.SessionID) error
	AddMessage(ctx context.Context, message models.Message) (models.Message, error)
	ListMessages(ctx context.Context, sessionID models.SessionID, limit int64) ([]models.Message, error)
	LastMessage(ctx context.Context, sessionID models.SessionID) (models.Message, error)
	CountMessages(ctx context.Context, sessionID models.SessionID) (int64, error)
	CountSessionsByUser(ctx context.Context, userID models.UserID) (int64, error)
	CountMessagesByUser(ctx context.Context, userID models.UserID) (int64, error)
	CountActiveSessions(ctx context.Context) (int64, error)
	CountAllMessages(ctx context.Context) (int64, error)
	DeleteSessionHard(ctx context.Context, sessionID models.SessionID) error
	DeleteUserData(ctx context.Context, userID models.UserID) error
}

// Mailer reports success as a boolean and never errors past its boundary.
type Mailer interface {
	SendVerification(ctx context.Context, to, username, token string) bool
	SendPasswordReset(ctx context.Context, to, username, token string) bool
}

// Responder never errors; failures surface as fallback replies.
type Responder interface {
	Reply(ctx context.Context, userMessage, personality string, history []models.Message, personaName string) string
	Title(ctx context.Context, firstMessage, personaName string) string
}

type CatalogCache interface {
	Get(ctx context.Context) ([]models.Character, bool)
	Set(ctx context.Context, characters []models.Character)
}

type AvatarStore interface {
	PutAvatar(ctx context.Context, userID models.UserID, contentType string, data []byte) (string, error)
}
