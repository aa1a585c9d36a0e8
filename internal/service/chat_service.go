package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/akukesepian/backend/internal/models"
)

// messagePageLimit caps a single message page for the user-facing API.
const messagePageLimit = 50

// ChatService drives the conversation loop: sessions, message history
// and persona replies.
type ChatService struct {
	chats      ChatStore
	characters CharacterStore
	responder  Responder
	catalog    CatalogCache
	maxHistory int
	log        zerolog.Logger
}

func NewChatService(chats ChatStore, characters CharacterStore, responder Responder, catalog CatalogCache, maxHistory int, log zerolog.Logger) *ChatService {
	if maxHistory <= 0 {
		maxHistory = 10
	}
	return &ChatService{
		chats:      chats,
		characters: characters,
		responder:  responder,
		catalog:    catalog,
		maxHistory: maxHistory,
		log:        log.With().Str("component", "chat").Logger(),
	}
}

// Characters serves the persona catalog through the read-through cache.
// A cold or unreachable cache falls back to the database.
func (s *ChatService) Characters(ctx context.Context) ([]models.Character, error) {
	if cached, ok := s.catalog.Get(ctx); ok {
		return cached, nil
	}
	characters, err := s.characters.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	s.catalog.Set(ctx, characters)
	return characters, nil
}

// SessionView decorates a session with its persona for list responses.
type SessionView struct {
	Session         models.ChatSession
	CharacterName   string
	CharacterAvatar string
}

func (s *ChatService) CreateSession(ctx context.Context, userID models.UserID, characterID models.CharacterID) (SessionView, models.Message, error) {
	character, err := s.characters.GetByID(ctx, characterID)
	if err != nil {
		return SessionView{}, models.Message{}, err
	}

	title := "Chat dengan " + character.Name
	session, err := s.chats.CreateSession(ctx, userID, characterID, title)
	if err != nil {
		return SessionView{}, models.Message{}, fmt.Errorf("create session: %w", err)
	}

	greeting := models.Message{
		ChatSessionID: session.ID,
		SenderType:    models.SenderAI,
		Content:       character.Greeting,
		CharacterID:   &character.ID,
	}
	saved, err := s.chats.AddMessage(ctx, greeting)
	if err != nil {
		return SessionView{}, models.Message{}, fmt.Errorf("store greeting: %w", err)
	}

	s.log.Info().
		Str("session_id", session.SessionID().String()).
		Str("character", character.Name).
		Msg("session created")

	view := SessionView{Session: session, CharacterName: character.Name, CharacterAvatar: character.Avatar}
	return view, saved, nil
}

func (s *ChatService) ListSessions(ctx context.Context, userID models.UserID) ([]SessionView, error) {
	sessions, err := s.chats.ListSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	personas, err := s.personaIndex(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]SessionView, 0, len(sessions))
	for _, session := range sessions {
		view := SessionView{Session: session}
		if persona, ok := personas[session.CharacterID]; ok {
			view.CharacterName = persona.Name
			view.CharacterAvatar = persona.Avatar
		}
		views = append(views, view)
	}
	return views, nil
}

// Messages returns the session history oldest first, owner-scoped.
func (s *ChatService) Messages(ctx context.Context, userID models.UserID, sessionID models.SessionID) ([]models.Message, error) {
	if _, err := s.chats.GetSession(ctx, sessionID, userID); err != nil {
		return nil, err
	}
	return s.chats.ListMessages(ctx, sessionID, messagePageLimit)
}

// Exchange is one round trip: the stored user message and the persona's
// reply.
type Exchange struct {
	UserMessage models.Message
	AIMessage   models.Message
	Title       string
}

func (s *ChatService) SendMessage(ctx context.Context, userID models.UserID, sessionID models.SessionID, content string) (Exchange, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Exchange{}, ErrEmptyMessage
	}

	session, err := s.chats.GetSession(ctx, sessionID, userID)
	if err != nil {
		return Exchange{}, err
	}
	character, err := s.characters.GetByID(ctx, models.CharacterID(session.CharacterID.Hex()))
	if err != nil {
		return Exchange{}, fmt.Errorf("load character: %w", err)
	}

	// Count before inserting: a session fresh off creation holds only
	// the greeting, so the first user message re-titles it.
	priorCount, err := s.chats.CountMessages(ctx, sessionID)
	if err != nil {
		return Exchange{}, fmt.Errorf("count messages: %w", err)
	}
	firstUserMessage := priorCount <= 1

	history, err := s.chats.ListMessages(ctx, sessionID, messagePageLimit)
	if err != nil {
		return Exchange{}, fmt.Errorf("load history: %w", err)
	}
	if len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}

	userMsg := models.Message{
		ChatSessionID: session.ID,
		SenderType:    models.SenderUser,
		Content:       content,
	}
	userMsg, err = s.chats.AddMessage(ctx, userMsg)
	if err != nil {
		return Exchange{}, fmt.Errorf("store user message: %w", err)
	}

	reply := s.responder.Reply(ctx, content, character.Personality, history, character.Name)
	aiMsg := models.Message{
		ChatSessionID: session.ID,
		SenderType:    models.SenderAI,
		Content:       reply,
		CharacterID:   &character.ID,
	}
	aiMsg, err = s.chats.AddMessage(ctx, aiMsg)
	if err != nil {
		return Exchange{}, fmt.Errorf("store reply: %w", err)
	}

	exchange := Exchange{UserMessage: userMsg, AIMessage: aiMsg, Title: session.Title}
	if firstUserMessage {
		title := s.responder.Title(ctx, content, character.Name)
		if err := s.chats.SetTitle(ctx, sessionID, title); err != nil {
			s.log.Warn().Err(err).Str("session_id", sessionID.String()).Msg("retitle session")
		} else {
			exchange.Title = title
		}
	}
	return exchange, nil
}

// DeleteSession soft-deletes an owned session.
func (s *ChatService) DeleteSession(ctx context.Context, userID models.UserID, sessionID models.SessionID) error {
	if _, err := s.chats.GetSession(ctx, sessionID, userID); err != nil {
		return err
	}
	return s.chats.Deactivate(ctx, sessionID)
}

func (s *ChatService) personaIndex(ctx context.Context) (map[bson.ObjectID]models.Character, error) {
	characters, err := s.Characters(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[bson.ObjectID]models.Character, len(characters))
	for _, character := range characters {
		index[character.ID] = character
	}
	return index, nil
}
