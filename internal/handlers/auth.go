package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akukesepian/backend/internal/middleware"
	"github.com/akukesepian/backend/internal/service"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Data registrasi tidak lengkap")
		return
	}

	err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, "Registrasi berhasil. Silakan cek email untuk verifikasi akun")
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Email dan password wajib diisi")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"access_token": result.Token,
		"token_type":   "bearer",
		"user":         result.User,
	})
}

type tokenRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h HandlerSet) VerifyEmail(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Token wajib diisi")
		return
	}

	if err := h.authService.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Email berhasil diverifikasi. Silakan login")
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h HandlerSet) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Email wajib diisi")
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Jika email terdaftar, link reset password sudah dikirim")
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h HandlerSet) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Token dan password baru wajib diisi")
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Password berhasil direset. Silakan login dengan password baru")
}

func (h HandlerSet) Me(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Token tidak valid")
		return
	}

	respondData(c, http.StatusOK, gin.H{"user": user})
}

type updateProfileRequest struct {
	FullName           *string  `json:"full_name"`
	Bio                *string  `json:"bio"`
	FavoriteCharacters []string `json:"favorite_characters"`
}

func (h HandlerSet) UpdateProfile(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Token tidak valid")
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Data profil tidak valid")
		return
	}

	updated, err := h.authService.UpdateProfile(c.Request.Context(), user.UserID(), service.ProfileUpdate{
		FullName:           req.FullName,
		Bio:                req.Bio,
		FavoriteCharacters: req.FavoriteCharacters,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessageData(c, http.StatusOK, "Profil berhasil diperbarui", gin.H{"user": updated})
}

func (h HandlerSet) UploadAvatar(c *gin.Context) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Token tidak valid")
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		respondError(c, http.StatusBadRequest, "File avatar wajib diunggah")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "File avatar tidak dapat dibaca")
		return
	}
	defer file.Close()

	// Read one byte past the limit so the service can reject oversized
	// uploads without the handler buffering the whole thing.
	data, err := io.ReadAll(io.LimitReader(file, 2<<20+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, "File avatar tidak dapat dibaca")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.authService.UploadAvatar(c.Request.Context(), user.UserID(), contentType, data)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessageData(c, http.StatusOK, "Avatar berhasil diperbarui", gin.H{"avatar": url})
}
