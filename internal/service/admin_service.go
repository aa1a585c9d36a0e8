package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/akukesepian/backend/internal/config"
	"github.com/akukesepian/backend/internal/models"
)

// adminSessionLimit caps the admin session listing.
const adminSessionLimit = 100

// AdminService backs the moderation surface. Every method assumes the
// caller was already vetted by the admin middleware.
type AdminService struct {
	users UserStore
	chats ChatStore
	admin config.AdminConfig
	log   zerolog.Logger
}

func NewAdminService(users UserStore, chats ChatStore, admin config.AdminConfig, log zerolog.Logger) *AdminService {
	return &AdminService{
		users: users,
		chats: chats,
		admin: admin,
		log:   log.With().Str("component", "admin").Logger(),
	}
}

// UserSummary is a user row for the admin listing. It never carries the
// password hash.
type UserSummary struct {
	User         models.User
	SessionCount int64
	MessageCount int64
}

func (s *AdminService) ListUsers(ctx context.Context) ([]UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, user := range users {
		id := user.UserID()
		sessions, err := s.chats.CountSessionsByUser(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("count sessions for %s: %w", id, err)
		}
		messages, err := s.chats.CountMessagesByUser(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("count messages for %s: %w", id, err)
		}
		summaries = append(summaries, UserSummary{User: user, SessionCount: sessions, MessageCount: messages})
	}
	return summaries, nil
}

// DeleteUser removes the user and all their chat data. Admins cannot
// delete themselves or the primary admin account.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, targetID models.UserID) error {
	if actorID == targetID {
		return ErrSelfAction
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if s.isPrimaryAdmin(target) {
		return ErrPrimaryAdmin
	}

	if err := s.chats.DeleteUserData(ctx, targetID); err != nil {
		return fmt.Errorf("delete chat data: %w", err)
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info().
		Str("actor_id", string(actorID)).
		Str("target_id", string(targetID)).
		Msg("user deleted")
	return nil
}

// ToggleAdmin flips the admin flag. Self-demotion and touching the
// primary admin are both refused.
func (s *AdminService) ToggleAdmin(ctx context.Context, actorID, targetID models.UserID) (bool, error) {
	if actorID == targetID {
		return false, ErrSelfAction
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return false, err
	}
	if s.isPrimaryAdmin(target) {
		return false, ErrPrimaryAdmin
	}

	next := !target.IsAdmin
	if err := s.users.SetAdmin(ctx, targetID, next); err != nil {
		return false, fmt.Errorf("set admin flag: %w", err)
	}
	s.log.Info().
		Str("actor_id", string(actorID)).
		Str("target_id", string(targetID)).
		Bool("is_admin", next).
		Msg("admin flag toggled")
	return next, nil
}

// AdminSessionView is a session row for the admin listing.
type AdminSessionView struct {
	Session      models.ChatSession
	Username     string
	Email        string
	MessageCount int64
	LastMessage  string
}

func (s *AdminService) ListSessions(ctx context.Context) ([]AdminSessionView, error) {
	sessions, err := s.chats.ListAllSessions(ctx, adminSessionLimit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	views := make([]AdminSessionView, 0, len(sessions))
	for _, session := range sessions {
		view := AdminSessionView{Session: session}

		owner, err := s.users.GetByID(ctx, models.UserID(session.UserID.Hex()))
		if err == nil {
			view.Username = owner.Username
			view.Email = owner.Email
		}

		id := session.SessionID()
		count, err := s.chats.CountMessages(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("count messages: %w", err)
		}
		view.MessageCount = count

		if last, err := s.chats.LastMessage(ctx, id); err == nil {
			view.LastMessage = previewOf(last.Content)
		}
		views = append(views, view)
	}
	return views, nil
}

// SessionMessages returns the full history of any session, soft-deleted
// ones included.
func (s *AdminService) SessionMessages(ctx context.Context, sessionID models.SessionID) ([]models.Message, error) {
	if _, err := s.chats.GetSessionAny(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.chats.ListMessages(ctx, sessionID, 0)
}

// Takeover injects an admin-authored message into any session.
func (s *AdminService) Takeover(ctx context.Context, actorID models.UserID, sessionID models.SessionID, content string) (models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Message{}, ErrEmptyMessage
	}
	session, err := s.chats.GetSessionAny(ctx, sessionID)
	if err != nil {
		return models.Message{}, err
	}

	message := models.Message{
		ChatSessionID: session.ID,
		SenderType:    models.SenderAdmin,
		Content:       content,
	}
	saved, err := s.chats.AddMessage(ctx, message)
	if err != nil {
		return models.Message{}, fmt.Errorf("store admin message: %w", err)
	}
	s.log.Info().
		Str("actor_id", string(actorID)).
		Str("session_id", sessionID.String()).
		Msg("admin takeover message")
	return saved, nil
}

func (s *AdminService) DeleteSession(ctx context.Context, sessionID models.SessionID) error {
	return s.chats.DeleteSessionHard(ctx, sessionID)
}

// Stats is the admin dashboard snapshot. TotalSessions counts active
// sessions only; soft-deleted ones drop out.
type Stats struct {
	TotalUsers       int64 `json:"total_users"`
	TotalSessions    int64 `json:"total_sessions"`
	TotalMessages    int64 `json:"total_messages"`
	ActiveUsersToday int64 `json:"active_users_today"`
}

// Stats counts a user as active when their last login falls on the
// current day.
func (s *AdminService) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count users: %w", err)
	}
	if stats.TotalSessions, err = s.chats.CountActiveSessions(ctx); err != nil {
		return Stats{}, fmt.Errorf("count sessions: %w", err)
	}
	if stats.TotalMessages, err = s.chats.CountAllMessages(ctx); err != nil {
		return Stats{}, fmt.Errorf("count messages: %w", err)
	}
	now := time.Now()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if stats.ActiveUsersToday, err = s.users.CountActiveSince(ctx, since); err != nil {
		return Stats{}, fmt.Errorf("count active users: %w", err)
	}
	return stats, nil
}

func (s *AdminService) isPrimaryAdmin(user models.User) bool {
	return strings.EqualFold(user.Email, s.admin.PrimaryEmail)
}

func previewOf(content string) string {
	const max = 80
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "..."
}
