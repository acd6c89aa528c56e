package mailer

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/platform/logger"
	"go.uber.org/zap"
)

// LogMailer writes the confirmation link to the log instead of sending it.
// Used when no SMTP account is configured.
type LogMailer struct {
	logger *logger.Logger
}

func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{logger: log.Named("LogMailer")}
}

func (l *LogMailer) SendAccountConfirmation(_ context.Context, toEmail, toName, confirmationURL string) error {
	l.logger.Info("SMTP not configured, confirmation link logged instead of sent",
		zap.String("toEmail", toEmail),
		zap.String("toName", toName),
		zap.String("confirmationURL", confirmationURL),
	)
	return nil
}
