package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/platform/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type messageResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// decodeJSON reads a single JSON object from the body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return entity.NewValidationError("body", "is required")
		}
		return &entity.ValidationError{Fields: map[string]string{"body": fmt.Sprintf("is not valid JSON: %v", err)}}
	}
	return nil
}

// writeError maps workflow errors onto HTTP statuses. Unknown errors become a
// generic 500 and are logged with the request id.
func writeError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, entity.ErrEmailTaken):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, entity.ErrInvalidInput), errors.Is(err, entity.ErrInvalidOrExpiredToken):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrInvalidCredentials), errors.Is(err, entity.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, entity.ErrAccountNotConfirmed), errors.Is(err, entity.ErrForbidden):
		writeMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, entity.ErrAccountNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	default:
		log.Error("Unhandled error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", chimw.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
