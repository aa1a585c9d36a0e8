package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akukesepian/backend/internal/repository"
	"github.com/akukesepian/backend/internal/service"
)

// envelope is the uniform response shape of the whole API.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: true, Message: message})
}

func respondMessageData(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Message: message})
}

// respondServiceError maps a service error onto a status code and an
// Indonesian user-facing message.
func respondServiceError(c *gin.Context, err error) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			respondError(c, m.status, m.message)
			return
		}
	}
	respondError(c, http.StatusInternalServerError, "Terjadi kesalahan pada server")
}

var errorTable = []struct {
	err     error
	status  int
	message string
}{
	{service.ErrInvalidEmail, http.StatusBadRequest, "Format email tidak valid"},
	{service.ErrInvalidUsername, http.StatusBadRequest, "Username harus 3-20 karakter, hanya huruf, angka dan underscore"},
	{service.ErrWeakPassword, http.StatusBadRequest, "Password minimal 6 karakter"},
	{service.ErrEmailTaken, http.StatusBadRequest, "Email sudah terdaftar"},
	{service.ErrUsernameTaken, http.StatusBadRequest, "Username sudah digunakan"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Email atau password salah"},
	{service.ErrNotVerified, http.StatusUnauthorized, "Akun belum diverifikasi. Silakan cek email Anda"},
	{service.ErrUserInactive, http.StatusUnauthorized, "Akun telah dinonaktifkan"},
	{service.ErrTokenInvalid, http.StatusBadRequest, "Token tidak valid atau sudah kadaluarsa"},
	{service.ErrMailFailed, http.StatusInternalServerError, "Gagal mengirim email. Silakan coba lagi"},
	{service.ErrUnsupportedAvatar, http.StatusBadRequest, "File avatar harus PNG, JPEG atau WebP, maksimal 2MB"},
	{service.ErrEmptyMessage, http.StatusBadRequest, "Pesan tidak boleh kosong"},
	{service.ErrSelfAction, http.StatusBadRequest, "Tidak dapat melakukan aksi pada akun sendiri"},
	{service.ErrPrimaryAdmin, http.StatusForbidden, "Akun admin utama tidak dapat diubah"},
	{repository.ErrUserNotFound, http.StatusNotFound, "Pengguna tidak ditemukan"},
	{repository.ErrCharacterNotFound, http.StatusNotFound, "Karakter tidak ditemukan"},
	{repository.ErrSessionNotFound, http.StatusNotFound, "Sesi chat tidak ditemukan"},
}
