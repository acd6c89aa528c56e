package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserRepository_CreateNormalizesAndRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u := &entity.User{Email: "  Ann@X.com", Role: entity.RoleLearner}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, "ann@x.com", u.Email)
	assert.False(t, u.ID.IsZero())

	err := repo.Create(ctx, &entity.User{Email: "ANN@x.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.Equal(t, 1, repo.Count())
}

func TestUserRepository_ConfirmIsConditional(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	u := &entity.User{Email: "a@x.com", ConfirmationTokenHash: "fp"}
	require.NoError(t, repo.Create(ctx, u))

	assert.ErrorIs(t, repo.Confirm(ctx, u.ID, "nope"), repository.ErrNotFound)

	got, err := repo.GetPendingByTokenHash(ctx, "fp")
	require.NoError(t, err)
	require.NoError(t, repo.Confirm(ctx, got.ID, "fp"))

	assert.ErrorIs(t, repo.Confirm(ctx, u.ID, "fp"), repository.ErrNotFound)
	_, err = repo.GetPendingByTokenHash(ctx, "fp")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	stored, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, stored.Confirmed)
	assert.Empty(t, stored.ConfirmationTokenHash)

	assert.ErrorIs(t, repo.SetConfirmationToken(ctx, u.ID, "new"), repository.ErrNotFound)
}

func TestUserRepository_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(ctx, &entity.User{Email: "race@x.com"})
		}()
	}
	wg.Wait()
	close(errs)

	var ok int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, repo.Count())
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	u := &entity.User{Email: "a@x.com", FullName: "Ann"}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.FullName = "changed"

	again, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", again.FullName)
}

func TestTeacherRepository_UpdateAndReview(t *testing.T) {
	ctx := context.Background()
	repo := NewTeacherRepository()
	teacher := &entity.Teacher{
		Email:       "t@x.com",
		Password:    "hash",
		Subjects:    []string{"Physics"},
		ServiceArea: "North",
		HourlyCost:  25,
	}
	require.NoError(t, repo.Create(ctx, teacher))

	subjects := []string{"Math"}
	updated, err := repo.Update(ctx, teacher.ID, entity.TeacherUpdate{Subjects: &subjects})
	require.NoError(t, err)
	assert.Equal(t, []string{"Math"}, updated.Subjects)
	assert.Equal(t, "North", updated.ServiceArea)
	assert.Equal(t, 25.0, updated.HourlyCost)
	assert.Equal(t, "hash", updated.Password)

	subjects[0] = "mutated"
	stored, err := repo.GetByID(ctx, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Math"}, stored.Subjects)

	reviewed, err := repo.AddReview(ctx, teacher.ID, entity.Review{ReviewerID: primitive.NewObjectID(), Rating: 5})
	require.NoError(t, err)
	assert.Len(t, reviewed.Reviews, 1)

	_, err = repo.AddReview(ctx, primitive.NewObjectID(), entity.Review{Rating: 5})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTeacherRepository_ListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewTeacherRepository()
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		require.NoError(t, repo.Create(ctx, &entity.Teacher{Email: email}))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.Before(list[i-1].CreatedAt))
	}
}
