package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/akukesepian/backend/internal/models"
	"github.com/akukesepian/backend/internal/repository"
)

// In-memory store fakes. They mirror the sentinel errors of the mongo
// repositories so the services behave identically under test.

type fakeUserStore struct {
	users     map[string]models.User
	createErr error
	// createHook runs right before the insert, to model writes that land
	// between a service's pre-checks and its Create call.
	createHook func()
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user models.User) (models.User, error) {
	if f.createHook != nil {
		f.createHook()
	}
	if f.createErr != nil {
		return models.User{}, f.createErr
	}
	user.Email = strings.ToLower(user.Email)
	for _, existing := range f.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return models.User{}, repository.ErrDuplicateKey
		}
	}
	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now()
	f.users[user.ID.Hex()] = user
	return user, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	email = strings.ToLower(email)
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id models.UserID) (models.User, error) {
	user, ok := f.users[id.String()]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) mutate(id models.UserID, fn func(*models.User)) error {
	user, ok := f.users[id.String()]
	if !ok {
		return repository.ErrUserNotFound
	}
	fn(&user)
	f.users[id.String()] = user
	return nil
}

func (f *fakeUserStore) SetVerified(_ context.Context, id models.UserID) error {
	return f.mutate(id, func(u *models.User) { u.IsVerified = true })
}

func (f *fakeUserStore) SetPasswordHash(_ context.Context, id models.UserID, hash string) error {
	return f.mutate(id, func(u *models.User) { u.PasswordHash = hash })
}

func (f *fakeUserStore) SetLastLogin(_ context.Context, id models.UserID, at time.Time) error {
	return f.mutate(id, func(u *models.User) { u.LastLogin = &at })
}

func (f *fakeUserStore) SetAdmin(_ context.Context, id models.UserID, isAdmin bool) error {
	return f.mutate(id, func(u *models.User) { u.IsAdmin = isAdmin })
}

func (f *fakeUserStore) SetFullName(_ context.Context, id models.UserID, fullName string) error {
	return f.mutate(id, func(u *models.User) { u.FullName = fullName })
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id models.UserID, profile models.Profile) error {
	return f.mutate(id, func(u *models.User) { u.Profile = profile })
}

func (f *fakeUserStore) SetAvatar(_ context.Context, id models.UserID, url string) error {
	return f.mutate(id, func(u *models.User) { u.Profile.Avatar = url })
}

func (f *fakeUserStore) List(_ context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserStore) Delete(_ context.Context, id models.UserID) error {
	if _, ok := f.users[id.String()]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id.String())
	return nil
}

func (f *fakeUserStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserStore) CountActiveSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, user := range f.users {
		if user.LastLogin != nil && !user.LastLogin.Before(since) {
			n++
		}
	}
	return n, nil
}

type fakeTokenStore struct {
	tokens map[string]models.ResetToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]models.ResetToken)}
}

func (f *fakeTokenStore) Create(_ context.Context, token models.ResetToken) error {
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeTokenStore) FindValid(_ context.Context, token string) (models.ResetToken, error) {
	doc, ok := f.tokens[token]
	if !ok || doc.Used || !doc.ExpiresAt.After(time.Now()) {
		return models.ResetToken{}, repository.ErrTokenNotFound
	}
	return doc, nil
}

func (f *fakeTokenStore) MarkUsed(_ context.Context, token string) error {
	doc, ok := f.tokens[token]
	if !ok {
		return repository.ErrTokenNotFound
	}
	doc.Used = true
	f.tokens[token] = doc
	return nil
}

func (f *fakeTokenStore) lastToken() string {
	var latest models.ResetToken
	var key string
	for k, doc := range f.tokens {
		if key == "" || doc.CreatedAt.After(latest.CreatedAt) {
			latest = doc
			key = k
		}
	}
	return key
}

type fakeMailer struct {
	verifications int
	resets        int
	lastTo        string
	fail          bool
}

func (f *fakeMailer) SendVerification(context.Context, string, string, string) bool {
	f.verifications++
	return !f.fail
}

func (f *fakeMailer) SendPasswordReset(_ context.Context, to, _, _ string) bool {
	f.resets++
	f.lastTo = to
	return !f.fail
}

type fakeAvatarStore struct {
	lastContentType string
	err             error
}

func (f *fakeAvatarStore) PutAvatar(_ context.Context, userID models.UserID, contentType string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.lastContentType = contentType
	return "https://cdn.example.com/avatars/" + userID.String() + ".png", nil
}

type fakeCharacterStore struct {
	characters map[string]models.Character
}

func newFakeCharacterStore(characters ...models.Character) *fakeCharacterStore {
	store := &fakeCharacterStore{characters: make(map[string]models.Character)}
	for _, character := range characters {
		if character.ID.IsZero() {
			character.ID = bson.NewObjectID()
		}
		store.characters[character.ID.Hex()] = character
	}
	return store
}

func (f *fakeCharacterStore) ListActive(_ context.Context) ([]models.Character, error) {
	out := make([]models.Character, 0, len(f.characters))
	for _, character := range f.characters {
		if character.IsActive {
			out = append(out, character)
		}
	}
	return out, nil
}

func (f *fakeCharacterStore) GetByID(_ context.Context, id models.CharacterID) (models.Character, error) {
	character, ok := f.characters[id.String()]
	if !ok {
		return models.Character{}, repository.ErrCharacterNotFound
	}
	return character, nil
}

type fakeChatStore struct {
	sessions map[string]models.ChatSession
	messages map[string][]models.Message
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{
		sessions: make(map[string]models.ChatSession),
		messages: make(map[string][]models.Message),
	}
}

func (f *fakeChatStore) CreateSession(_ context.Context, userID models.UserID, characterID models.CharacterID, title string) (models.ChatSession, error) {
	userOID, err := userID.ObjectID()
	if err != nil {
		return models.ChatSession{}, repository.ErrUserNotFound
	}
	charOID, err := characterID.ObjectID()
	if err != nil {
		return models.ChatSession{}, repository.ErrCharacterNotFound
	}
	now := time.Now()
	session := models.ChatSession{
		ID:          bson.NewObjectID(),
		UserID:      userOID,
		CharacterID: charOID,
		Title:       title,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.sessions[session.ID.Hex()] = session
	return session, nil
}

func (f *fakeChatStore) ListSessions(_ context.Context, userID models.UserID) ([]models.ChatSession, error) {
	oid, err := userID.ObjectID()
	if err != nil {
		return nil, repository.ErrUserNotFound
	}
	var out []models.ChatSession
	for _, session := range f.sessions {
		if session.UserID == oid && session.IsActive {
			out = append(out, session)
		}
	}
	return out, nil
}

func (f *fakeChatStore) GetSession(_ context.Context, sessionID models.SessionID, userID models.UserID) (models.ChatSession, error) {
	session, ok := f.sessions[sessionID.String()]
	if !ok || session.UserID.Hex() != userID.String() {
		return models.ChatSession{}, repository.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeChatStore) GetSessionAny(_ context.Context, sessionID models.SessionID) (models.ChatSession, error) {
	session, ok := f.sessions[sessionID.String()]
	if !ok {
		return models.ChatSession{}, repository.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeChatStore) ListAllSessions(_ context.Context, limit int64) ([]models.ChatSession, error) {
	var out []models.ChatSession
	for _, session := range f.sessions {
		if !session.IsActive {
			continue
		}
		out = append(out, session)
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeChatStore) SetTitle(_ context.Context, sessionID models.SessionID, title string) error {
	session, ok := f.sessions[sessionID.String()]
	if !ok {
		return repository.ErrSessionNotFound
	}
	session.Title = title
	f.sessions[sessionID.String()] = session
	return nil
}

func (f *fakeChatStore) Deactivate(_ context.Context, sessionID models.SessionID) error {
	session, ok := f.sessions[sessionID.String()]
	if !ok {
		return repository.ErrSessionNotFound
	}
	session.IsActive = false
	f.sessions[sessionID.String()] = session
	return nil
}

func (f *fakeChatStore) AddMessage(_ context.Context, message models.Message) (models.Message, error) {
	message.ID = bson.NewObjectID()
	message.Timestamp = time.Now()

	key := message.ChatSessionID.Hex()
	f.messages[key] = append(f.messages[key], message)

	if session, ok := f.sessions[key]; ok {
		session.UpdatedAt = message.Timestamp
		f.sessions[key] = session
	}
	return message, nil
}

func (f *fakeChatStore) ListMessages(_ context.Context, sessionID models.SessionID, limit int64) ([]models.Message, error) {
	messages := f.messages[sessionID.String()]
	if limit > 0 && int64(len(messages)) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

func (f *fakeChatStore) LastMessage(_ context.Context, sessionID models.SessionID) (models.Message, error) {
	messages := f.messages[sessionID.String()]
	if len(messages) == 0 {
		return models.Message{}, repository.ErrSessionNotFound
	}
	return messages[len(messages)-1], nil
}

func (f *fakeChatStore) CountMessages(_ context.Context, sessionID models.SessionID) (int64, error) {
	return int64(len(f.messages[sessionID.String()])), nil
}

func (f *fakeChatStore) CountSessionsByUser(_ context.Context, userID models.UserID) (int64, error) {
	var n int64
	for _, session := range f.sessions {
		if session.UserID.Hex() == userID.String() && session.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeChatStore) CountMessagesByUser(_ context.Context, userID models.UserID) (int64, error) {
	var n int64
	for _, session := range f.sessions {
		if session.UserID.Hex() == userID.String() {
			n += int64(len(f.messages[session.ID.Hex()]))
		}
	}
	return n, nil
}

func (f *fakeChatStore) CountActiveSessions(_ context.Context) (int64, error) {
	var n int64
	for _, session := range f.sessions {
		if session.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeChatStore) CountAllMessages(_ context.Context) (int64, error) {
	var n int64
	for _, messages := range f.messages {
		n += int64(len(messages))
	}
	return n, nil
}

func (f *fakeChatStore) DeleteSessionHard(_ context.Context, sessionID models.SessionID) error {
	if _, ok := f.sessions[sessionID.String()]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(f.sessions, sessionID.String())
	delete(f.messages, sessionID.String())
	return nil
}

func (f *fakeChatStore) DeleteUserData(_ context.Context, userID models.UserID) error {
	for key, session := range f.sessions {
		if session.UserID.Hex() == userID.String() {
			delete(f.sessions, key)
			delete(f.messages, key)
		}
	}
	return nil
}

type fakeResponder struct {
	reply string
	title string
}

func (f *fakeResponder) Reply(_ context.Context, userMessage, _ string, _ []models.Message, _ string) string {
	if f.reply != "" {
		return f.reply
	}
	return "echo: " + userMessage
}

func (f *fakeResponder) Title(_ context.Context, firstMessage, _ string) string {
	if f.title != "" {
		return f.title
	}
	return firstMessage
}

type fakeCatalogCache struct {
	cached []models.Character
	hits   int
	sets   int
}

func (f *fakeCatalogCache) Get(context.Context) ([]models.Character, bool) {
	if f.cached == nil {
		return nil, false
	}
	f.hits++
	return f.cached, true
}

func (f *fakeCatalogCache) Set(_ context.Context, characters []models.Character) {
	f.sets++
	f.cached = characters
}
