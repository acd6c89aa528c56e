package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/platform/logger"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

var ErrIncompleteConfig = errors.New("SMTP configuration is incomplete")

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer delivers mail through an authenticated SMTP relay.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	dialer dialer
	logger *logger.Logger
}

func NewSMTPMailer(cfg config.SMTPConfig, log *logger.Logger) (*SMTPMailer, error) {
	if !cfg.IsComplete() {
		return nil, ErrIncompleteConfig
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	if cfg.Port == 465 {
		d.SSL = true
	}
	return &SMTPMailer{cfg: cfg, dialer: d, logger: log.Named("SMTPMailer")}, nil
}

func (s *SMTPMailer) SendAccountConfirmation(ctx context.Context, toEmail, toName, confirmationURL string) error {
	html, text := confirmationBodies(toName, confirmationURL)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.SenderEmail, s.cfg.SenderName)
	m.SetAddressHeader("To", toEmail, toName)
	m.SetHeader("Subject", confirmationSubject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		s.logger.Warn("Confirmation email cancelled or timed out", zap.String("toEmail", toEmail), zap.Error(ctx.Err()))
		return fmt.Errorf("email sending cancelled or timed out: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			s.logger.Error("Failed to send confirmation email", zap.String("toEmail", toEmail), zap.Error(err))
			return fmt.Errorf("failed to send email: %w", err)
		}
	}

	s.logger.Info("Confirmation email sent", zap.String("toEmail", toEmail))
	return nil
}
