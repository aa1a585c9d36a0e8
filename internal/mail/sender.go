// Package mail sends the transactional e-mails over SMTP. Send failures
// are logged and reported as a boolean; they never propagate as errors.
package mail

import (
	"context"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"

	"github.com/akukesepian/backend/internal/config"
)

type Sender struct {
	cfg config.MailConfig
	// frontendURL is embedded into the verification and reset links.
	frontendURL string
	log         zerolog.Logger
}

func NewSender(cfg config.MailConfig, frontendURL string, log zerolog.Logger) *Sender {
	return &Sender{cfg: cfg, frontendURL: frontendURL, log: log}
}

func (s *Sender) SendVerification(ctx context.Context, to, username, token string) bool {
	return s.send(ctx, to, BuildVerificationEmail(username, s.frontendURL, token))
}

func (s *Sender) SendPasswordReset(ctx context.Context, to, username, token string) bool {
	return s.send(ctx, to, BuildPasswordResetEmail(username, s.frontendURL, token))
}

func (s *Sender) send(ctx context.Context, to string, email Email) bool {
	if s.cfg.Host == "" {
		s.log.Warn().Str("to", to).Msg("smtp not configured, mail dropped")
		return false
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.Sender); err != nil {
		s.log.Error().Err(err).Msg("invalid mail sender address")
		return false
	}
	if err := msg.To(to); err != nil {
		s.log.Error().Err(err).Str("to", to).Msg("invalid mail recipient")
		return false
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, email.Text)
	msg.AddAlternativeString(gomail.TypeTextHTML, email.HTML)

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		s.log.Error().Err(err).Msg("smtp client init failed")
		return false
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("to", to).Msg("mail send failed")
		return false
	}

	s.log.Info().Str("to", to).Str("subject", email.Subject).Msg("mail sent")
	return true
}
