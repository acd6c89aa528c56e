package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/crypto"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/repository"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/repository/cache"
	"go.uber.org/zap"
)

type RegisterTeacherInput struct {
	FullName       string   `json:"full_name" validate:"required,max=100"`
	Email          string   `json:"email" validate:"required,email"`
	PhoneNumber    string   `json:"phone_number" validate:"max=30"`
	Password       string   `json:"password" validate:"required,max=72"`
	Subjects       []string `json:"subjects" validate:"dive,required"`
	ServiceArea    string   `json:"service_area" validate:"max=200"`
	Availability   []string `json:"availability" validate:"dive,required"`
	HourlyCost     float64  `json:"hourly_cost" validate:"gte=0"`
	Qualifications []string `json:"qualifications" validate:"dive,required"`
}

// UpdateTeacherInput carries a selective update; absent JSON fields stay nil.
type UpdateTeacherInput struct {
	FullName       *string   `json:"full_name" validate:"omitnil,min=1,max=100"`
	PhoneNumber    *string   `json:"phone_number" validate:"omitnil,max=30"`
	Password       *string   `json:"password" validate:"omitnil,min=1,max=72"`
	Subjects       *[]string `json:"subjects" validate:"omitnil,dive,required"`
	ServiceArea    *string   `json:"service_area" validate:"omitnil,max=200"`
	Availability   *[]string `json:"availability" validate:"omitnil,dive,required"`
	HourlyCost     *float64  `json:"hourly_cost" validate:"omitnil,gte=0"`
	Qualifications *[]string `json:"qualifications" validate:"omitnil,dive,required"`
}

type AddReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

type TeacherAuthResult struct {
	Teacher *entity.TeacherProfile `json:"teacher"`
	Token   string                 `json:"token"`
}

type TeacherUsecase struct {
	repo    repository.TeacherRepository
	tokens  TokenIssuer
	cache   TeacherCache
	events  EventPublisher
	metrics Metrics
	logger  *logger.Logger
}

// NewTeacherUsecase wires the teacher workflows. cache, events and metrics may be nil.
func NewTeacherUsecase(
	repo repository.TeacherRepository,
	tokens TokenIssuer,
	cache TeacherCache,
	events EventPublisher,
	metrics Metrics,
	log *logger.Logger,
) *TeacherUsecase {
	if events == nil {
		events = nopPublisher{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &TeacherUsecase{
		repo:    repo,
		tokens:  tokens,
		cache:   cache,
		events:  events,
		metrics: metrics,
		logger:  log.Named("TeacherUsecase"),
	}
}

// Register creates an active teacher account and signs it in.
func (t *TeacherUsecase) Register(ctx context.Context, in RegisterTeacherInput) (*TeacherAuthResult, error) {
	ctx, span := tracer.Start(ctx, "TeacherUsecase.Register")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	email := in.Email

	if _, err := t.repo.GetByEmail(ctx, email); err == nil {
		return nil, entity.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup teacher by email: %w", err)
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	teacher := &entity.Teacher{
		FullName:       strings.TrimSpace(in.FullName),
		Email:          email,
		PhoneNumber:    strings.TrimSpace(in.PhoneNumber),
		Password:       hash,
		Subjects:       in.Subjects,
		ServiceArea:    in.ServiceArea,
		Availability:   in.Availability,
		HourlyCost:     in.HourlyCost,
		Qualifications: in.Qualifications,
	}
	if err := t.repo.Create(ctx, teacher); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, entity.ErrEmailTaken
		}
		return nil, fmt.Errorf("create teacher: %w", err)
	}

	token, err := t.tokens.Issue(teacher.ID.Hex(), entity.KindTeacher)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	t.logger.Info("Teacher registered", zap.String("teacherID", teacher.ID.Hex()))
	t.metrics.RegistrationSucceeded(string(entity.KindTeacher))
	t.publish(ctx, SubjectAccountRegistered, AccountEvent{
		AccountID: teacher.ID.Hex(),
		Kind:      string(entity.KindTeacher),
		Email:     teacher.Email,
	})
	return &TeacherAuthResult{Teacher: teacher.Profile(), Token: token}, nil
}

// Login authenticates a teacher. Teachers have no confirmation step.
func (t *TeacherUsecase) Login(ctx context.Context, in LoginInput) (*TeacherAuthResult, error) {
	ctx, span := tracer.Start(ctx, "TeacherUsecase.Login")
	defer span.End()

	if err := validateStruct(in); err != nil {
		return nil, err
	}

	teacher, err := t.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = crypto.CheckPasswordForUnknownAccount(in.Password)
			t.metrics.LoginAttempted(string(entity.KindTeacher), false)
			return nil, entity.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup teacher by email: %w", err)
	}
	if err := crypto.CheckPassword(teacher.Password, in.Password); err != nil {
		if !errors.Is(err, crypto.ErrPasswordMismatch) {
			t.logger.Error("Stored password hash is unusable", zap.String("teacherID", teacher.ID.Hex()), zap.Error(err))
		}
		t.metrics.LoginAttempted(string(entity.KindTeacher), false)
		return nil, entity.ErrInvalidCredentials
	}

	token, err := t.tokens.Issue(teacher.ID.Hex(), entity.KindTeacher)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	t.metrics.LoginAttempted(string(entity.KindTeacher), true)
	return &TeacherAuthResult{Teacher: teacher.Profile(), Token: token}, nil
}

func (t *TeacherUsecase) List(ctx context.Context) ([]*entity.TeacherProfile, error) {
	teachers, err := t.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	profiles := make([]*entity.TeacherProfile, 0, len(teachers))
	for _, teacher := range teachers {
		profiles = append(profiles, teacher.Profile())
	}
	return profiles, nil
}

// Get returns one teacher, reading through the cache when one is configured.
func (t *TeacherUsecase) Get(ctx context.Context, id string) (*entity.TeacherProfile, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, entity.ErrAccountNotFound
	}

	if t.cache != nil {
		profile, err := t.cache.Get(ctx, oid.Hex())
		if err == nil {
			return profile, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			t.logger.Warn("Teacher cache read failed", zap.String("teacherID", id), zap.Error(err))
		}
	}

	teacher, err := t.repo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.ErrAccountNotFound
		}
		return nil, fmt.Errorf("lookup teacher: %w", err)
	}
	profile := teacher.Profile()

	if t.cache != nil {
		if err := t.cache.Set(ctx, profile); err != nil {
			t.logger.Warn("Teacher cache write failed", zap.String("teacherID", id), zap.Error(err))
		}
	}
	return profile, nil
}

// Update applies a selective update to the caller's own teacher account.
// The password is re-hashed only when a new one is supplied.
func (t *TeacherUsecase) Update(ctx context.Context, caller *entity.Account, id string, in UpdateTeacherInput) (*entity.TeacherProfile, error) {
	ctx, span := tracer.Start(ctx, "TeacherUsecase.Update")
	defer span.End()

	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, entity.ErrAccountNotFound
	}
	if caller == nil || caller.Kind != entity.KindTeacher || caller.ID != oid.Hex() {
		return nil, entity.ErrForbidden
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	upd := entity.TeacherUpdate{
		FullName:       in.FullName,
		PhoneNumber:    in.PhoneNumber,
		Subjects:       in.Subjects,
		ServiceArea:    in.ServiceArea,
		Availability:   in.Availability,
		HourlyCost:     in.HourlyCost,
		Qualifications: in.Qualifications,
	}
	if in.Password != nil {
		hash, err := crypto.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		upd.Password = &hash
	}

	teacher, err := t.repo.Update(ctx, oid, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.ErrAccountNotFound
		}
		return nil, fmt.Errorf("update teacher: %w", err)
	}

	t.invalidate(ctx, oid.Hex())
	if !upd.IsEmpty() {
		t.publish(ctx, SubjectTeacherUpdated, AccountEvent{
			AccountID: oid.Hex(),
			Kind:      string(entity.KindTeacher),
			ActorID:   caller.ID,
		})
	}
	return teacher.Profile(), nil
}

// AddReview records a rating from a confirmed learner or parent.
func (t *TeacherUsecase) AddReview(ctx context.Context, caller *entity.Account, teacherID string, in AddReviewInput) (*entity.TeacherProfile, error) {
	ctx, span := tracer.Start(ctx, "TeacherUsecase.AddReview")
	defer span.End()

	oid, err := repository.ParseID(teacherID)
	if err != nil {
		return nil, entity.ErrAccountNotFound
	}
	if caller == nil || caller.Kind != entity.KindUser {
		return nil, entity.ErrForbidden
	}
	if !caller.Confirmed {
		return nil, entity.ErrAccountNotConfirmed
	}
	reviewerID, err := repository.ParseID(caller.ID)
	if err != nil {
		return nil, entity.ErrUnauthorized
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	teacher, err := t.repo.AddReview(ctx, oid, entity.Review{
		ReviewerID: reviewerID,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.ErrAccountNotFound
		}
		return nil, fmt.Errorf("add review: %w", err)
	}

	t.invalidate(ctx, oid.Hex())
	t.publish(ctx, SubjectTeacherReviewed, AccountEvent{
		AccountID: oid.Hex(),
		Kind:      string(entity.KindTeacher),
		ActorID:   caller.ID,
		Rating:    in.Rating,
	})
	return teacher.Profile(), nil
}

func (t *TeacherUsecase) invalidate(ctx context.Context, id string) {
	if t.cache == nil {
		return
	}
	if err := t.cache.Delete(ctx, id); err != nil {
		t.logger.Warn("Teacher cache invalidation failed", zap.String("teacherID", id), zap.Error(err))
	}
}

func (t *TeacherUsecase) publish(ctx context.Context, subject string, ev AccountEvent) {
	ev.OccurredAt = time.Now().UTC()
	if err := t.events.Publish(ctx, subject, ev); err != nil {
		t.logger.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
