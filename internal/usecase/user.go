package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/crypto"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("tutoring-service/usecase")

const defaultEmailTimeout = 30 * time.Second

type RegisterUserInput struct {
	FullName    string      `json:"full_name" validate:"max=100"`
	Email       string      `json:"email" validate:"required,email"`
	PhoneNumber string      `json:"phone_number" validate:"max=30"`
	Password    string      `json:"password" validate:"required,max=72"`
	Role        entity.Role `json:"role" validate:"required,oneof=learner parent"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ResendConfirmationInput struct {
	Email string `json:"email" validate:"required,email"`
}

type UserAuthResult struct {
	User  *entity.UserProfile `json:"user"`
	Token string              `json:"token"`
}

// UserOptions configures the learner/parent workflows.
type UserOptions struct {
	// BaseURL prefixes confirmation links, e.g. "https://tutor.example.com".
	BaseURL      string
	EmailTimeout time.Duration
}

type UserUsecase struct {
	repo    repository.UserRepository
	tokens  TokenIssuer
	mailer  Mailer
	events  EventPublisher
	metrics Metrics
	opts    UserOptions
	logger  *logger.Logger

	emails sync.WaitGroup
}

// NewUserUsecase wires the learner/parent workflows. events and metrics may be nil.
func NewUserUsecase(
	repo repository.UserRepository,
	tokens TokenIssuer,
	mailer Mailer,
	events EventPublisher,
	metrics Metrics,
	opts UserOptions,
	log *logger.Logger,
) *UserUsecase {
	if events == nil {
		events = nopPublisher{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if opts.EmailTimeout <= 0 {
		opts.EmailTimeout = defaultEmailTimeout
	}
	return &UserUsecase{
		repo:    repo,
		tokens:  tokens,
		mailer:  mailer,
		events:  events,
		metrics: metrics,
		opts:    opts,
		logger:  log.Named("UserUsecase"),
	}
}

// Register creates a pending learner/parent account and emails its confirmation link.
func (u *UserUsecase) Register(ctx context.Context, in RegisterUserInput) (*entity.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "UserUsecase.Register")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	email := in.Email

	if _, err := u.repo.GetByEmail(ctx, email); err == nil {
		return nil, entity.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	secret, fingerprint, err := crypto.NewConfirmationToken()
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FullName:              strings.TrimSpace(in.FullName),
		Email:                 email,
		PhoneNumber:           strings.TrimSpace(in.PhoneNumber),
		Password:              hash,
		Role:                  in.Role,
		Confirmed:             false,
		ConfirmationTokenHash: fingerprint,
	}
	if err := u.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, entity.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	span.SetAttributes(attribute.String("account.id", user.ID.Hex()))

	u.logger.Info("User registered, confirmation pending", zap.String("userID", user.ID.Hex()), zap.String("role", string(user.Role)))
	u.metrics.RegistrationSucceeded(string(entity.KindUser))
	u.sendConfirmation(ctx, user, secret)
	u.publish(ctx, SubjectAccountRegistered, AccountEvent{
		AccountID: user.ID.Hex(),
		Kind:      string(entity.KindUser),
		Email:     user.Email,
		Role:      string(user.Role),
	})

	return user.Profile(), nil
}

// Confirm consumes a confirmation secret. It never issues a session token.
func (u *UserUsecase) Confirm(ctx context.Context, secret string) error {
	ctx, span := tracer.Start(ctx, "UserUsecase.Confirm")
	defer span.End()

	if secret == "" {
		u.metrics.ConfirmationAttempted(false)
		return entity.ErrInvalidOrExpiredToken
	}
	fingerprint := crypto.HashToken(secret)

	user, err := u.repo.GetPendingByTokenHash(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			u.metrics.ConfirmationAttempted(false)
			return entity.ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("lookup pending user: %w", err)
	}
	if !crypto.TokenMatches(secret, user.ConfirmationTokenHash) {
		u.metrics.ConfirmationAttempted(false)
		return entity.ErrInvalidOrExpiredToken
	}

	if err := u.repo.Confirm(ctx, user.ID, fingerprint); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Consumed concurrently.
			u.metrics.ConfirmationAttempted(false)
			return entity.ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("confirm user: %w", err)
	}

	u.logger.Info("User confirmed", zap.String("userID", user.ID.Hex()))
	u.metrics.ConfirmationAttempted(true)
	u.publish(ctx, SubjectAccountConfirmed, AccountEvent{
		AccountID: user.ID.Hex(),
		Kind:      string(entity.KindUser),
		Email:     user.Email,
		Role:      string(user.Role),
	})
	return nil
}

// Login verifies credentials of a confirmed learner/parent and issues a session token.
func (u *UserUsecase) Login(ctx context.Context, in LoginInput) (*UserAuthResult, error) {
	ctx, span := tracer.Start(ctx, "UserUsecase.Login")
	defer span.End()

	if err := validateStruct(in); err != nil {
		return nil, err
	}

	user, err := u.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = crypto.CheckPasswordForUnknownAccount(in.Password)
			u.metrics.LoginAttempted(string(entity.KindUser), false)
			return nil, entity.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}
	if err := crypto.CheckPassword(user.Password, in.Password); err != nil {
		if !errors.Is(err, crypto.ErrPasswordMismatch) {
			u.logger.Error("Stored password hash is unusable", zap.String("userID", user.ID.Hex()), zap.Error(err))
		}
		u.metrics.LoginAttempted(string(entity.KindUser), false)
		return nil, entity.ErrInvalidCredentials
	}
	if !user.Confirmed {
		u.metrics.LoginAttempted(string(entity.KindUser), false)
		return nil, entity.ErrAccountNotConfirmed
	}

	token, err := u.tokens.Issue(user.ID.Hex(), entity.KindUser)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	u.metrics.LoginAttempted(string(entity.KindUser), true)
	return &UserAuthResult{User: user.Profile(), Token: token}, nil
}

// ResendConfirmation replaces the confirmation token of a pending account and mails it again.
// Unknown and already confirmed addresses are accepted silently.
func (u *UserUsecase) ResendConfirmation(ctx context.Context, in ResendConfirmationInput) error {
	ctx, span := tracer.Start(ctx, "UserUsecase.ResendConfirmation")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return err
	}

	user, err := u.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("lookup user by email: %w", err)
	}
	if !user.IsPending() {
		return nil
	}

	secret, fingerprint, err := crypto.NewConfirmationToken()
	if err != nil {
		return err
	}
	if err := u.repo.SetConfirmationToken(ctx, user.ID, fingerprint); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("replace confirmation token: %w", err)
	}
	u.sendConfirmation(ctx, user, secret)
	return nil
}

// GetProfile returns the public fields of a learner/parent account.
func (u *UserUsecase) GetProfile(ctx context.Context, id string) (*entity.UserProfile, error) {
	user, err := u.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

func (u *UserUsecase) getUser(ctx context.Context, id string) (*entity.User, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, entity.ErrAccountNotFound
	}
	user, err := u.repo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.ErrAccountNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

// ConfirmationURL builds the link mailed to a pending account.
func (u *UserUsecase) ConfirmationURL(secret string) string {
	return strings.TrimRight(u.opts.BaseURL, "/") + "/api/users/confirm/" + url.PathEscape(secret)
}

// WaitForEmails blocks until every confirmation email started so far has finished.
func (u *UserUsecase) WaitForEmails() {
	u.emails.Wait()
}

// sendConfirmation mails the link in the background. Failures are logged and counted
// but never reach the caller.
func (u *UserUsecase) sendConfirmation(ctx context.Context, user *entity.User, secret string) {
	link := u.ConfirmationURL(secret)
	to, name, userID := user.Email, user.FullName, user.ID.Hex()
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.opts.EmailTimeout)

	u.emails.Add(1)
	go func() {
		defer u.emails.Done()
		defer cancel()

		err := u.mailer.SendAccountConfirmation(sendCtx, to, name, link)
		u.metrics.EmailAttempted(err == nil)
		if err != nil {
			u.logger.Error("Failed to send confirmation email", zap.String("userID", userID), zap.Error(err))
			return
		}
		u.logger.Debug("Confirmation email dispatched", zap.String("userID", userID))
	}()
}

func (u *UserUsecase) publish(ctx context.Context, subject string, ev AccountEvent) {
	ev.OccurredAt = time.Now().UTC()
	if err := u.events.Publish(ctx, subject, ev); err != nil {
		u.logger.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
