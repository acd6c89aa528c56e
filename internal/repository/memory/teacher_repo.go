package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TeacherRepository struct {
	mu      sync.RWMutex
	byID    map[primitive.ObjectID]*entity.Teacher
	byEmail map[string]primitive.ObjectID
}

var _ repository.TeacherRepository = (*TeacherRepository)(nil)

func NewTeacherRepository() *TeacherRepository {
	return &TeacherRepository{
		byID:    make(map[primitive.ObjectID]*entity.Teacher),
		byEmail: make(map[string]primitive.ObjectID),
	}
}

func (r *TeacherRepository) Create(_ context.Context, t *entity.Teacher) error {
	email := entity.NormalizeEmail(t.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[email]; taken {
		return repository.ErrDuplicateEmail
	}
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	t.Email = email
	t.CreatedAt = now
	t.UpdatedAt = now

	r.byID[t.ID] = cloneTeacher(t)
	r.byEmail[email] = t.ID
	return nil
}

func (r *TeacherRepository) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneTeacher(t), nil
}

func (r *TeacherRepository) GetByEmail(ctx context.Context, email string) (*entity.Teacher, error) {
	r.mu.RLock()
	id, ok := r.byEmail[entity.NormalizeEmail(email)]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *TeacherRepository) List(_ context.Context) ([]*entity.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teachers := make([]*entity.Teacher, 0, len(r.byID))
	for _, t := range r.byID {
		teachers = append(teachers, cloneTeacher(t))
	}
	sort.Slice(teachers, func(i, j int) bool {
		if teachers[i].CreatedAt.Equal(teachers[j].CreatedAt) {
			return teachers[i].ID.Hex() < teachers[j].ID.Hex()
		}
		return teachers[i].CreatedAt.Before(teachers[j].CreatedAt)
	})
	return teachers, nil
}

func (r *TeacherRepository) Update(_ context.Context, id primitive.ObjectID, upd entity.TeacherUpdate) (*entity.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !upd.IsEmpty() {
		upd.Apply(t)
		t.UpdatedAt = time.Now().UTC()
	}
	return cloneTeacher(t), nil
}

func (r *TeacherRepository) AddReview(_ context.Context, id primitive.ObjectID, review entity.Review) (*entity.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t.Reviews = append(t.Reviews, review)
	t.UpdatedAt = time.Now().UTC()
	return cloneTeacher(t), nil
}

func cloneTeacher(t *entity.Teacher) *entity.Teacher {
	cp := *t
	cp.Subjects = append([]string(nil), t.Subjects...)
	cp.Availability = append([]string(nil), t.Availability...)
	cp.Qualifications = append([]string(nil), t.Qualifications...)
	cp.Reviews = append([]entity.Review(nil), t.Reviews...)
	return &cp
}
