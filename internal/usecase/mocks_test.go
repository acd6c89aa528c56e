package usecase

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/auth"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"github.com/stretchr/testify/mock"
)

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendAccountConfirmation(ctx context.Context, toEmail, toName, confirmationURL string) error {
	args := m.Called(ctx, toEmail, toName, confirmationURL)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, subject string, data any) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockTeacherCache struct{ mock.Mock }

func (m *MockTeacherCache) Get(ctx context.Context, id string) (*entity.TeacherProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TeacherProfile), args.Error(1)
}

func (m *MockTeacherCache) Set(ctx context.Context, profile *entity.TeacherProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockTeacherCache) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const testBaseURL = "http://localhost:5000"

func newTestJWT() *auth.JWTManager {
	return auth.NewJWTManager("test-secret", "tutoring-test", time.Hour)
}
