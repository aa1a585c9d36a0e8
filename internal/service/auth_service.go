package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/akukesepian/backend/internal/config"
	"github.com/akukesepian/backend/internal/models"
	"github.com/akukesepian/backend/internal/repository"
	"github.com/akukesepian/backend/internal/security"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

const minPasswordLength = 6

// AuthService covers registration, login, email verification, password
// recovery and the profile surface of the authenticated user.
type AuthService struct {
	users   UserStore
	tokens  TokenStore
	mailer  Mailer
	avatars AvatarStore
	cfg     config.SecurityConfig
	admin   config.AdminConfig
	log     zerolog.Logger
}

func NewAuthService(users UserStore, tokens TokenStore, mailer Mailer, avatars AvatarStore, cfg config.SecurityConfig, admin config.AdminConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		mailer:  mailer,
		avatars: avatars,
		cfg:     cfg,
		admin:   admin,
		log:     log.With().Str("component", "auth").Logger(),
	}
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
	FullName string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	if !usernamePattern.MatchString(in.Username) {
		return ErrInvalidUsername
	}
	if len(in.Password) < minPasswordLength {
		return ErrWeakPassword
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("check email: %w", err)
	}
	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("check username: %w", err)
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		Username:     in.Username,
		FullName:     in.FullName,
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      email == strings.ToLower(s.admin.PrimaryEmail),
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// Either unique index can fire in the window between the
			// pre-checks and the insert; re-check to name the right field.
			if _, uerr := s.users.FindByUsername(ctx, in.Username); uerr == nil {
				return ErrUsernameTaken
			}
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	token, err := security.NewOneTimeToken()
	if err != nil {
		return fmt.Errorf("issue verification token: %w", err)
	}
	rt := models.ResetToken{
		UserID:    created.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.cfg.ResetTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := s.tokens.Create(ctx, rt); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}

	if !s.mailer.SendVerification(ctx, email, created.Username, token) {
		s.log.Error().Str("email", email).Msg("verification email failed")
		return ErrMailFailed
	}
	s.log.Info().Str("user_id", created.ID.Hex()).Msg("user registered")
	return nil
}

type LoginResult struct {
	Token string
	User  models.User
}

// Login returns ErrInvalidCredentials for both an unknown email and a
// wrong password so the response never reveals which one it was.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("find user: %w", err)
	}
	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return LoginResult{}, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return LoginResult{}, ErrNotVerified
	}
	if !user.IsActive {
		return LoginResult{}, ErrUserInactive
	}

	token, err := security.GenerateAccessToken(s.cfg.JWTSecret, user.UserID(), user.IsAdmin, s.cfg.JWTTTL)
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign token: %w", err)
	}
	now := time.Now()
	if err := s.users.SetLastLogin(ctx, user.UserID(), now); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("update last login")
	}
	user.LastLogin = &now
	return LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	rt, err := s.tokens.FindValid(ctx, token)
	if err != nil {
		return ErrTokenInvalid
	}
	if err := s.users.SetVerified(ctx, rt.OwnerID()); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	if err := s.tokens.MarkUsed(ctx, token); err != nil {
		return fmt.Errorf("consume token: %w", err)
	}
	s.log.Info().Str("user_id", rt.OwnerID().String()).Msg("email verified")
	return nil
}

// ForgotPassword succeeds for unknown emails so the endpoint cannot be
// used to probe which addresses are registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	token, err := security.NewOneTimeToken()
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}
	rt := models.ResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.cfg.ResetTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := s.tokens.Create(ctx, rt); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	if !s.mailer.SendPasswordReset(ctx, email, user.Username, token) {
		s.log.Error().Str("email", email).Msg("reset email failed")
		return ErrMailFailed
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}
	rt, err := s.tokens.FindValid(ctx, token)
	if err != nil {
		return ErrTokenInvalid
	}
	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.SetPasswordHash(ctx, rt.OwnerID(), hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := s.tokens.MarkUsed(ctx, token); err != nil {
		return fmt.Errorf("consume token: %w", err)
	}
	s.log.Info().Str("user_id", rt.OwnerID().String()).Msg("password reset")
	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context, id models.UserID) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

type ProfileUpdate struct {
	FullName           *string
	Bio                *string
	FavoriteCharacters []string
}

func (s *AuthService) UpdateProfile(ctx context.Context, id models.UserID, upd ProfileUpdate) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	if upd.FullName != nil {
		user.FullName = strings.TrimSpace(*upd.FullName)
		if err := s.users.SetFullName(ctx, id, user.FullName); err != nil {
			return models.User{}, fmt.Errorf("update full name: %w", err)
		}
	}
	if upd.Bio != nil {
		user.Profile.Bio = strings.TrimSpace(*upd.Bio)
	}
	if upd.FavoriteCharacters != nil {
		user.Profile.FavoriteCharacters = upd.FavoriteCharacters
	}
	if err := s.users.UpdateProfile(ctx, id, user.Profile); err != nil {
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

const maxAvatarBytes = 2 << 20

var allowedAvatarTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

func (s *AuthService) UploadAvatar(ctx context.Context, id models.UserID, contentType string, data []byte) (string, error) {
	if len(data) == 0 || len(data) > maxAvatarBytes || !allowedAvatarTypes[contentType] {
		return "", ErrUnsupportedAvatar
	}
	url, err := s.avatars.PutAvatar(ctx, id, contentType, data)
	if err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}
	if err := s.users.SetAvatar(ctx, id, url); err != nil {
		return "", fmt.Errorf("save avatar url: %w", err)
	}
	return url, nil
}
