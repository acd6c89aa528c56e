package usecase

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(accountID string, kind entity.AccountKind) (string, error)
}

// Mailer delivers the confirmation link to a new account.
type Mailer interface {
	SendAccountConfirmation(ctx context.Context, toEmail, toName, confirmationURL string) error
}

// EventPublisher broadcasts account events. Publishing is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data any) error
}

// TeacherCache holds public teacher profiles by id.
type TeacherCache interface {
	Get(ctx context.Context, id string) (*entity.TeacherProfile, error)
	Set(ctx context.Context, profile *entity.TeacherProfile) error
	Delete(ctx context.Context, id string) error
}

// Metrics receives workflow outcomes.
type Metrics interface {
	RegistrationSucceeded(kind string)
	LoginAttempted(kind string, ok bool)
	ConfirmationAttempted(ok bool)
	EmailAttempted(ok bool)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, any) error { return nil }

type nopMetrics struct{}

func (nopMetrics) RegistrationSucceeded(string) {}
func (nopMetrics) LoginAttempted(string, bool) {}
func (nopMetrics) ConfirmationAttempted(bool) {}
func (nopMetrics) EmailAttempted(bool) {}
