package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/auth"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/platform/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	MsgNoToken         = "not authorized, no token"
	MsgTokenFailed     = "not authorized, token failed"
	MsgAccountNotFound = "not authorized, account not found"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type AccountResolver interface {
	ResolveAccount(ctx context.Context, kind entity.AccountKind, id string) (*entity.Account, error)
}

// JWTAuth validates the bearer token and attaches the resolved account to the request.
// Every rejection ends the request.
func JWTAuth(tokens TokenParser, resolver AccountResolver, log *logger.Logger) func(http.Handler) http.Handler {
	log = log.Named("JWTAuth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeMessage(w, http.StatusUnauthorized, MsgNoToken)
				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				log.Debug("Rejected session token", zap.String("request_id", chimw.GetReqID(r.Context())), zap.Error(err))
				writeMessage(w, http.StatusUnauthorized, MsgTokenFailed)
				return
			}

			acc, err := resolver.ResolveAccount(r.Context(), claims.Kind, claims.AccountID)
			if err != nil {
				if errors.Is(err, entity.ErrAccountNotFound) {
					writeMessage(w, http.StatusUnauthorized, MsgAccountNotFound)
					return
				}
				log.Error("Failed to resolve account", zap.String("accountID", claims.AccountID), zap.Error(err))
				writeMessage(w, http.StatusInternalServerError, "internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), acc)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
