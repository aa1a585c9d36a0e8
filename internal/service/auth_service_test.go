package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akukesepian/backend/internal/config"
	"github.com/akukesepian/backend/internal/models"
)

type authFixture struct {
	svc     *AuthService
	users   *fakeUserStore
	tokens  *fakeTokenStore
	mailer  *fakeMailer
	avatars *fakeAvatarStore
}

func newAuthFixture() *authFixture {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	mailer := &fakeMailer{}
	avatars := &fakeAvatarStore{}

	svc := NewAuthService(users, tokens, mailer, avatars,
		config.SecurityConfig{
			JWTSecret:     "test-secret",
			JWTTTL:        time.Hour,
			ResetTokenTTL: time.Hour,
		},
		config.AdminConfig{PrimaryEmail: "admin@akukesepian.id"},
		zerolog.Nop(),
	)
	return &authFixture{svc: svc, users: users, tokens: tokens, mailer: mailer, avatars: avatars}
}

func (f *authFixture) register(t *testing.T, email, username string) models.User {
	t.Helper()
	err := f.svc.Register(context.Background(), RegisterInput{
		Email:    email,
		Username: username,
		Password: "password123",
		FullName: "Test User",
	})
	require.NoError(t, err)

	user, err := f.users.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	return user
}

func (f *authFixture) verify(t *testing.T, user models.User) {
	t.Helper()
	require.NoError(t, f.users.SetVerified(context.Background(), user.UserID()))
}

func TestRegister(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "budi@example.com", "budi_123")

	assert.False(t, user.IsVerified)
	assert.False(t, user.IsAdmin)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.Equal(t, 1, f.mailer.verifications)
	assert.NotEmpty(t, f.tokens.lastToken())
}

func TestRegisterVerificationTokenExpiry(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "budi@example.com", "budi_123")

	// the verification token shares the reset-token TTL (1h in the fixture)
	stored := f.tokens.tokens[f.tokens.lastToken()]
	assert.Equal(t, user.ID, stored.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), stored.ExpiresAt, time.Minute)
}

func TestRegisterPrimaryAdminEmail(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "Admin@AkuKesepian.id", "admin_utama")
	assert.True(t, user.IsAdmin)
}

func TestRegisterValidation(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{
			name:    "invalid email",
			input:   RegisterInput{Email: "bukan-email", Username: "valid_user", Password: "password123"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "username too short",
			input:   RegisterInput{Email: "a@example.com", Username: "ab", Password: "password123"},
			wantErr: ErrInvalidUsername,
		},
		{
			name:    "username with spaces",
			input:   RegisterInput{Email: "a@example.com", Username: "bad name", Password: "password123"},
			wantErr: ErrInvalidUsername,
		},
		{
			name:    "password too short",
			input:   RegisterInput{Email: "a@example.com", Username: "valid_user", Password: "12345"},
			wantErr: ErrWeakPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.svc.Register(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "budi@example.com", "budi_123")

	err := f.svc.Register(context.Background(), RegisterInput{
		Email:    "BUDI@Example.COM",
		Username: "budi_lain",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "budi@example.com", "budi_123")

	err := f.svc.Register(context.Background(), RegisterInput{
		Email:    "lain@example.com",
		Username: "budi_123",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterDuplicateRace(t *testing.T) {
	// A conflicting user lands between the pre-checks and the insert;
	// the duplicate-key error must name the field that actually collided.
	tests := []struct {
		name    string
		rival   models.User
		wantErr error
	}{
		{
			name:    "username index fires",
			rival:   models.User{Email: "lain@example.com", Username: "budi_123"},
			wantErr: ErrUsernameTaken,
		},
		{
			name:    "email index fires",
			rival:   models.User{Email: "budi@example.com", Username: "budi_lain"},
			wantErr: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			f.users.createHook = func() {
				f.users.createHook = nil
				_, err := f.users.Create(context.Background(), tt.rival)
				require.NoError(t, err)
			}

			err := f.svc.Register(context.Background(), RegisterInput{
				Email:    "budi@example.com",
				Username: "budi_123",
				Password: "password123",
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterMailFailure(t *testing.T) {
	f := newAuthFixture()
	f.mailer.fail = true

	err := f.svc.Register(context.Background(), RegisterInput{
		Email:    "budi@example.com",
		Username: "budi_123",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrMailFailed)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "budi@example.com", "budi_123")
	f.verify(t, user)

	result, err := f.svc.Login(context.Background(), "budi@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)
	assert.NotNil(t, result.User.LastLogin)
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "budi@example.com", "budi_123")
	f.verify(t, user)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, "tidak-ada@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, "budi@example.com", "password-salah")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnverified(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "budi@example.com", "budi_123")

	_, err := f.svc.Login(context.Background(), "budi@example.com", "password123")
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestLoginInactive(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "budi@example.com", "budi_123")
	f.verify(t, user)
	require.NoError(t, f.users.mutate(user.UserID(), func(u *models.User) { u.IsActive = false }))

	_, err := f.svc.Login(context.Background(), "budi@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestVerifyEmail(t *testing.T) {
	f := newAuthFixture()
	f.register(t, "budi@example.com", "budi_123")
	token := f.tokens.lastToken()
	ctx := context.Background()

	require.NoError(t, f.svc.VerifyEmail(ctx, token))

	user, err := f.users.FindByEmail(ctx, "budi@example.com")
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	// single use
	assert.ErrorIs(t, f.svc.VerifyEmail(ctx, token), ErrTokenInvalid)
}

func TestVerifyEmailUnknownToken(t *testing.T) {
	f := newAuthFixture()
	err := f.svc.VerifyEmail(context.Background(), "token-ngawur")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	f := newAuthFixture()

	err := f.svc.ForgotPassword(context.Background(), "tidak-ada@example.com")
	assert.NoError(t, err)
	assert.Zero(t, f.mailer.resets)
}

func TestForgotAndResetPassword(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "budi@example.com", "budi_123")
	f.verify(t, user)
	ctx := context.Background()

	require.NoError(t, f.svc.ForgotPassword(ctx, "budi@example.com"))
	assert.Equal(t, 1, f.mailer.resets)

	token := f.tokens.lastToken()
	require.NoError(t, f.svc.ResetPassword(ctx, token, "password-baru"))

	_, err := f.svc.Login(ctx, "budi@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	result, err := f.svc.Login(ctx, "budi@example.com", "password-baru")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	// token is single use
	assert.ErrorIs(t, f.svc.ResetPassword(ctx, token, "lagi-lagi-baru"), ErrTokenInvalid)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "budi@example.com", "budi_123")
	ctx := context.Background()

	expired := models.ResetToken{
		UserID:    user.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	require.NoError(t, f.tokens.Create(ctx, expired))

	err := f.svc.ResetPassword(ctx, "expired-token", "password-baru")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestUpdateProfile(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "budi@example.com", "budi_123")
	ctx := context.Background()

	name := "Budi Santoso"
	bio := "Suka ngobrol"
	updated, err := f.svc.UpdateProfile(ctx, user.UserID(), ProfileUpdate{
		FullName:           &name,
		Bio:                &bio,
		FavoriteCharacters: []string{"Sahabat Setia"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", updated.FullName)
	assert.Equal(t, "Suka ngobrol", updated.Profile.Bio)

	stored, err := f.users.GetByID(ctx, user.UserID())
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", stored.FullName)
	assert.Equal(t, []string{"Sahabat Setia"}, stored.Profile.FavoriteCharacters)
}

func TestUploadAvatar(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "budi@example.com", "budi_123")
	ctx := context.Background()

	url, err := f.svc.UploadAvatar(ctx, user.UserID(), "image/png", []byte{0x89, 0x50, 0x4e, 0x47})
	require.NoError(t, err)
	assert.NotEmpty(t, url)

	stored, err := f.users.GetByID(ctx, user.UserID())
	require.NoError(t, err)
	assert.Equal(t, url, stored.Profile.Avatar)
}

func TestUploadAvatarRejected(t *testing.T) {
	f := newAuthFixture()
	user := f.register(t, "budi@example.com", "budi_123")
	ctx := context.Background()

	_, err := f.svc.UploadAvatar(ctx, user.UserID(), "image/gif", []byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrUnsupportedAvatar)

	_, err = f.svc.UploadAvatar(ctx, user.UserID(), "image/png", nil)
	assert.ErrorIs(t, err, ErrUnsupportedAvatar)

	oversized := make([]byte, maxAvatarBytes+1)
	_, err = f.svc.UploadAvatar(ctx, user.UserID(), "image/png", oversized)
	assert.ErrorIs(t, err, ErrUnsupportedAvatar)
}
