package repository

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository persists learner/parent accounts.
type UserRepository interface {
	// Create inserts u and assigns its ID. Returns ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetPendingByTokenHash finds the unconfirmed account holding this fingerprint.
	GetPendingByTokenHash(ctx context.Context, tokenHash string) (*entity.User, error)
	// Confirm flips the account to confirmed only if it is still pending with tokenHash.
	// Returns ErrNotFound when that condition no longer holds.
	Confirm(ctx context.Context, id primitive.ObjectID, tokenHash string) error
	// SetConfirmationToken replaces the fingerprint of a pending account.
	SetConfirmationToken(ctx context.Context, id primitive.ObjectID, tokenHash string) error
}

// TeacherRepository persists teacher accounts.
type TeacherRepository interface {
	Create(ctx context.Context, t *entity.Teacher) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Teacher, error)
	GetByEmail(ctx context.Context, email string) (*entity.Teacher, error)
	List(ctx context.Context) ([]*entity.Teacher, error)
	// Update writes only the non-nil fields of upd and returns the stored teacher.
	Update(ctx context.Context, id primitive.ObjectID, upd entity.TeacherUpdate) (*entity.Teacher, error)
	AddReview(ctx context.Context, id primitive.ObjectID, review entity.Review) (*entity.Teacher, error)
}

// Pinger is implemented by stores that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}
