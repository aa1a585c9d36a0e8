package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akukesepian/backend/internal/middleware"
	"github.com/akukesepian/backend/internal/models"
)

// AdminCheck reports whether the caller holds the admin flag. It sits
// behind Auth only so the frontend can probe it for any logged-in user.
func (h HandlerSet) AdminCheck(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Token tidak valid")
		return
	}

	respondData(c, http.StatusOK, gin.H{"is_admin": user.IsAdmin})
}

type adminUserResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	FullName     string     `json:"full_name"`
	IsVerified   bool       `json:"is_verified"`
	IsAdmin      bool       `json:"is_admin"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	SessionCount int64      `json:"total_sessions"`
	MessageCount int64      `json:"total_messages"`
}

func (h HandlerSet) AdminListUsers(c *gin.Context) {
	summaries, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	users := make([]adminUserResponse, 0, len(summaries))
	for _, summary := range summaries {
		users = append(users, adminUserResponse{
			ID:           summary.User.ID.Hex(),
			Email:        summary.User.Email,
			Username:     summary.User.Username,
			FullName:     summary.User.FullName,
			IsVerified:   summary.User.IsVerified,
			IsAdmin:      summary.User.IsAdmin,
			IsActive:     summary.User.IsActive,
			LastLogin:    summary.User.LastLogin,
			CreatedAt:    summary.User.CreatedAt,
			SessionCount: summary.SessionCount,
			MessageCount: summary.MessageCount,
		})
	}

	respondData(c, http.StatusOK, gin.H{"users": users})
}

func (h HandlerSet) AdminDeleteUser(c *gin.Context) {
	actor, ok := middleware.UserFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Token tidak valid")
		return
	}

	targetID := models.UserID(c.Param("id"))
	if err := h.adminService.DeleteUser(c.Request.Context(), actor.UserID(), targetID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Pengguna dan seluruh datanya berhasil dihapus")
}

func (h HandlerSet) AdminToggleAdmin(c *gin.Context) {
	actor, ok := middleware.UserFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Token tidak valid")
		return
	}

	targetID := models.UserID(c.Param("id"))
	isAdmin, err := h.adminService.ToggleAdmin(c.Request.Context(), actor.UserID(), targetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Hak admin dicabut"
	if isAdmin {
		message = "Hak admin diberikan"
	}
	respondMessageData(c, http.StatusOK, message, gin.H{"is_admin": isAdmin})
}

type adminSessionResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	CharacterID  string    `json:"character_id"`
	MessageCount int64     `json:"message_count"`
	LastMessage  string    `json:"last_message"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (h HandlerSet) AdminListSessions(c *gin.Context) {
	views, err := h.adminService.ListSessions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	sessions := make([]adminSessionResponse, 0, len(views))
	for _, view := range views {
		sessions = append(sessions, adminSessionResponse{
			ID:           view.Session.ID.Hex(),
			Title:        view.Session.Title,
			Username:     view.Username,
			Email:        view.Email,
			CharacterID:  view.Session.CharacterID.Hex(),
			MessageCount: view.MessageCount,
			LastMessage:  view.LastMessage,
			CreatedAt:    view.Session.CreatedAt,
			UpdatedAt:    view.Session.UpdatedAt,
		})
	}

	respondData(c, http.StatusOK, gin.H{"sessions": sessions})
}

func (h HandlerSet) AdminSessionMessages(c *gin.Context) {
	sessionID := models.SessionID(c.Param("id"))
	messages, err := h.adminService.SessionMessages(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"messages": toMessageResponses(messages)})
}

type takeoverRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h HandlerSet) AdminTakeover(c *gin.Context) {
	actor, ok := middleware.UserFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Token tidak valid")
		return
	}

	var req takeoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Pesan tidak boleh kosong")
		return
	}

	sessionID := models.SessionID(c.Param("id"))
	message, err := h.adminService.Takeover(c.Request.Context(), actor.UserID(), sessionID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"message": toMessageResponse(message)})
}

func (h HandlerSet) AdminDeleteSession(c *gin.Context) {
	sessionID := models.SessionID(c.Param("id"))
	if err := h.adminService.DeleteSession(c.Request.Context(), sessionID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Sesi chat berhasil dihapus permanen")
}

func (h HandlerSet) AdminStats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, stats)
}
