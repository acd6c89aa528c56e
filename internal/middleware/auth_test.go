package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/auth"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockResolver struct{ mock.Mock }

func (m *MockResolver) ResolveAccount(ctx context.Context, kind entity.AccountKind, id string) (*entity.Account, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

const testAccountID = "507f1f77bcf86cd799439011"

func setupGuard(t *testing.T, resolver AccountResolver) (http.Handler, *auth.JWTManager, *bool) {
	t.Helper()
	jwt := auth.NewJWTManager("secret", "test", time.Hour)
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		acc, ok := AccountFromContext(r.Context())
		require.True(t, ok)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": acc.ID, "kind": string(acc.Kind)})
	})
	return JWTAuth(jwt, resolver, logger.NewNop())(next), jwt, &reached
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["message"]
}

func TestJWTAuth_MissingToken(t *testing.T) {
	handler, _, reached := setupGuard(t, new(MockResolver))

	for _, header := range []string{"", "Basic abc", "Bearer", "Bearer   "} {
		req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Equal(t, MsgNoToken, decodeMessage(t, rec), header)
	}
	assert.False(t, *reached, "guard must stop the request")
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	handler, _, reached := setupGuard(t, new(MockResolver))
	other := auth.NewJWTManager("other-secret", "test", time.Hour)
	forged, err := other.Issue(testAccountID, entity.KindUser)
	require.NoError(t, err)

	for _, token := range []string{"garbage", forged} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, MsgTokenFailed, decodeMessage(t, rec))
	}
	assert.False(t, *reached)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ResolveAccount", mock.Anything, entity.KindTeacher, testAccountID).
		Return(&entity.Account{ID: testAccountID, Kind: entity.KindTeacher}, nil)
	handler, jwt, reached := setupGuard(t, resolver)

	token, err := jwt.Issue(testAccountID, entity.KindTeacher)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *reached)
	assert.JSONEq(t, `{"id":"`+testAccountID+`","kind":"teacher"}`, rec.Body.String())
	resolver.AssertExpectations(t)
}

func TestJWTAuth_AccountGone(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ResolveAccount", mock.Anything, entity.KindUser, testAccountID).Return(nil, entity.ErrAccountNotFound)
	handler, jwt, reached := setupGuard(t, resolver)

	token, err := jwt.Issue(testAccountID, entity.KindUser)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, MsgAccountNotFound, decodeMessage(t, rec))
	assert.False(t, *reached)
}

func TestJWTAuth_ResolverFailure(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ResolveAccount", mock.Anything, entity.KindUser, testAccountID).Return(nil, errors.New("db down"))
	handler, jwt, reached := setupGuard(t, resolver)

	token, err := jwt.Issue(testAccountID, entity.KindUser)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, *reached)
}
