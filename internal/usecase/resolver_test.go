package usecase

import (
	"context"
	"testing"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAccountResolver(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	teachers := memory.NewTeacherRepository()
	r := NewAccountResolver(users, teachers)

	u := &entity.User{Email: "u@x.com", Password: "hash", Role: entity.RoleParent, Confirmed: true}
	require.NoError(t, users.Create(ctx, u))
	tch := &entity.Teacher{Email: "t@x.com", Password: "hash", FullName: "Tom"}
	require.NoError(t, teachers.Create(ctx, tch))

	acc, err := r.ResolveAccount(ctx, entity.KindUser, u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, entity.RoleParent, acc.Role)
	assert.True(t, acc.Confirmed)

	acc, err = r.ResolveAccount(ctx, entity.KindTeacher, tch.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Tom", acc.FullName)
	assert.Equal(t, entity.KindTeacher, acc.Kind)

	// A user id does not resolve in the teacher collection.
	_, err = r.ResolveAccount(ctx, entity.KindTeacher, u.ID.Hex())
	assert.ErrorIs(t, err, entity.ErrAccountNotFound)

	_, err = r.ResolveAccount(ctx, entity.KindUser, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, entity.ErrAccountNotFound)
	_, err = r.ResolveAccount(ctx, "admin", u.ID.Hex())
	assert.ErrorIs(t, err, entity.ErrAccountNotFound)
}
