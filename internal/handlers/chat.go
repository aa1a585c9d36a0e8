package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akukesepian/backend/internal/middleware"
	"github.com/akukesepian/backend/internal/models"
	"github.com/akukesepian/backend/internal/service"
)

func (h HandlerSet) ListCharacters(c *gin.Context) {
	characters, err := h.chatService.Characters(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"characters": characters})
}

type sessionResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	CharacterID     string    `json:"character_id"`
	CharacterName   string    `json:"character_name"`
	CharacterAvatar string    `json:"character_avatar"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toSessionResponse(view service.SessionView) sessionResponse {
	return sessionResponse{
		ID:              view.Session.ID.Hex(),
		Title:           view.Session.Title,
		CharacterID:     view.Session.CharacterID.Hex(),
		CharacterName:   view.CharacterName,
		CharacterAvatar: view.CharacterAvatar,
		CreatedAt:       view.Session.CreatedAt,
		UpdatedAt:       view.Session.UpdatedAt,
	}
}

type createSessionRequest struct {
	CharacterID string `json:"character_id" binding:"required"`
}

func (h HandlerSet) CreateSession(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Token tidak valid")
		return
	}

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Karakter wajib dipilih")
		return
	}

	view, greeting, err := h.chatService.CreateSession(c.Request.Context(), user.UserID(), models.CharacterID(req.CharacterID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"session":  toSessionResponse(view),
		"greeting": toMessageResponse(greeting),
	})
}

func (h HandlerSet) ListSessions(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Token tidak valid")
		return
	}

	views, err := h.chatService.ListSessions(c.Request.Context(), user.UserID())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	sessions := make([]sessionResponse, 0, len(views))
	for _, view := range views {
		sessions = append(sessions, toSessionResponse(view))
	}

	respondData(c, http.StatusOK, gin.H{"sessions": sessions})
}

type messageResponse struct {
	ID         string    `json:"id"`
	SenderType string    `json:"sender_type"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

func toMessageResponse(message models.Message) messageResponse {
	return messageResponse{
		ID:         message.ID.Hex(),
		SenderType: string(message.SenderType),
		Content:    message.Content,
		Timestamp:  message.Timestamp,
	}
}

func toMessageResponses(messages []models.Message) []messageResponse {
	out := make([]messageResponse, 0, len(messages))
	for _, message := range messages {
		out = append(out, toMessageResponse(message))
	}
	return out
}

func (h HandlerSet) SessionMessages(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Token tidak valid")
		return
	}

	sessionID := models.SessionID(c.Param("id"))
	messages, err := h.chatService.Messages(c.Request.Context(), user.UserID(), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"messages": toMessageResponses(messages)})
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h HandlerSet) SendMessage(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Token tidak valid")
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Pesan tidak boleh kosong")
		return
	}

	sessionID := models.SessionID(c.Param("id"))
	exchange, err := h.chatService.SendMessage(c.Request.Context(), user.UserID(), sessionID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"user_message": toMessageResponse(exchange.UserMessage),
		"ai_message":   toMessageResponse(exchange.AIMessage),
		"title":        exchange.Title,
	})
}

func (h HandlerSet) DeleteSession(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Token tidak valid")
		return
	}

	sessionID := models.SessionID(c.Param("id"))
	if err := h.chatService.DeleteSession(c.Request.Context(), user.UserID(), sessionID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Sesi chat berhasil dihapus")
}
