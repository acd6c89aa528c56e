package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository keeps users in process memory. All access goes through mu, and the
// byEmail map gives the same single-winner guarantee as a unique index.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[primitive.ObjectID]*entity.User
	byEmail map[string]primitive.ObjectID
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[primitive.ObjectID]*entity.User),
		byEmail: make(map[string]primitive.ObjectID),
	}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	email := entity.NormalizeEmail(u.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[email]; taken {
		return repository.ErrDuplicateEmail
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	u.Email = email
	u.CreatedAt = now
	u.UpdatedAt = now

	stored := *u
	r.byID[u.ID] = &stored
	r.byEmail[email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[entity.NormalizeEmail(email)]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) GetPendingByTokenHash(_ context.Context, tokenHash string) (*entity.User, error) {
	if tokenHash == "" {
		return nil, repository.ErrNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if !u.Confirmed && u.ConfirmationTokenHash == tokenHash {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Confirm(_ context.Context, id primitive.ObjectID, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok || u.Confirmed || tokenHash == "" || u.ConfirmationTokenHash != tokenHash {
		return repository.ErrNotFound
	}
	u.Confirmed = true
	u.ConfirmationTokenHash = ""
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) SetConfirmationToken(_ context.Context, id primitive.ObjectID, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok || u.Confirmed {
		return repository.ErrNotFound
	}
	u.ConfirmationTokenHash = tokenHash
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// Count returns the number of stored users.
func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
