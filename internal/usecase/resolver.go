package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/repository"
)

// AccountResolver turns the (kind, id) pair carried by a session token into an account.
type AccountResolver struct {
	users    repository.UserRepository
	teachers repository.TeacherRepository
}

func NewAccountResolver(users repository.UserRepository, teachers repository.TeacherRepository) *AccountResolver {
	return &AccountResolver{users: users, teachers: teachers}
}

// ResolveAccount returns entity.ErrAccountNotFound when the account no longer exists.
func (r *AccountResolver) ResolveAccount(ctx context.Context, kind entity.AccountKind, id string) (*entity.Account, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, entity.ErrAccountNotFound
	}

	switch kind {
	case entity.KindUser:
		u, err := r.users.GetByID(ctx, oid)
		if err != nil {
			return nil, notFoundOr(err)
		}
		return &entity.Account{
			ID:        u.ID.Hex(),
			Kind:      entity.KindUser,
			Email:     u.Email,
			FullName:  u.FullName,
			Role:      u.Role,
			Confirmed: u.Confirmed,
		}, nil
	case entity.KindTeacher:
		t, err := r.teachers.GetByID(ctx, oid)
		if err != nil {
			return nil, notFoundOr(err)
		}
		return &entity.Account{
			ID:        t.ID.Hex(),
			Kind:      entity.KindTeacher,
			Email:     t.Email,
			FullName:  t.FullName,
			Confirmed: true,
		}, nil
	default:
		return nil, entity.ErrAccountNotFound
	}
}

func notFoundOr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return entity.ErrAccountNotFound
	}
	return fmt.Errorf("resolve account: %w", err)
}
