package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akukesepian/backend/internal/repository"
	"github.com/akukesepian/backend/internal/service"
)

func recordServiceError(t *testing.T, err error) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	respondServiceError(c, err)

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{service.ErrInvalidCredentials, http.StatusUnauthorized, "Email atau password salah"},
		{service.ErrNotVerified, http.StatusUnauthorized, "Akun belum diverifikasi. Silakan cek email Anda"},
		{service.ErrEmailTaken, http.StatusBadRequest, "Email sudah terdaftar"},
		{service.ErrTokenInvalid, http.StatusBadRequest, "Token tidak valid atau sudah kadaluarsa"},
		{service.ErrPrimaryAdmin, http.StatusForbidden, "Akun admin utama tidak dapat diubah"},
		{repository.ErrSessionNotFound, http.StatusNotFound, "Sesi chat tidak ditemukan"},
		{repository.ErrUserNotFound, http.StatusNotFound, "Pengguna tidak ditemukan"},
	}

	for _, tt := range tests {
		t.Run(tt.wantMsg, func(t *testing.T) {
			rec, body := recordServiceError(t, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestRespondServiceErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("load user: %w", repository.ErrUserNotFound)
	rec, body := recordServiceError(t, wrapped)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Pengguna tidak ditemukan", body.Message)
}

func TestRespondServiceErrorUnknown(t *testing.T) {
	rec, body := recordServiceError(t, errors.New("mongo timeout"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, body.Success)
	// internals never leak into the response
	assert.NotContains(t, body.Message, "mongo")
}

func TestEnvelopeShape(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	respondData(c, http.StatusOK, gin.H{"hello": "dunia"})

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Contains(t, raw, "success")
	assert.Contains(t, raw, "data")
	assert.NotContains(t, raw, "message")
}
