package handler

import (
	"context"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/entity"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/usecase"
	"github.com/go-chi/chi/v5"
)

const (
	MsgConfirmationSent   = "confirmation sent"
	MsgAccountConfirmed   = "account confirmed"
	MsgConfirmationResent = "if a pending account exists for this email, a new confirmation link has been sent"
)

type UserService interface {
	Register(ctx context.Context, in usecase.RegisterUserInput) (*entity.UserProfile, error)
	Confirm(ctx context.Context, secret string) error
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.UserAuthResult, error)
	ResendConfirmation(ctx context.Context, in usecase.ResendConfirmationInput) error
	GetProfile(ctx context.Context, id string) (*entity.UserProfile, error)
}

// TeacherProfiles serves /api/users/profile for callers signed in as a teacher.
type TeacherProfiles interface {
	Get(ctx context.Context, id string) (*entity.TeacherProfile, error)
}

type UserHandler struct {
	users    UserService
	teachers TeacherProfiles
	logger   *logger.Logger
}

func NewUserHandler(users UserService, teachers TeacherProfiles, log *logger.Logger) *UserHandler {
	return &UserHandler{users: users, teachers: teachers, logger: log.Named("UserHandler")}
}

type registerUserResponse struct {
	User    *entity.UserProfile `json:"user"`
	Message string              `json:"message"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in usecase.RegisterUserInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	profile, err := h.users.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, registerUserResponse{User: profile, Message: MsgConfirmationSent})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in usecase.LoginInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	res, err := h.users.Login(r.Context(), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *UserHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Confirm(r.Context(), chi.URLParam(r, "token")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, MsgAccountConfirmed)
}

func (h *UserHandler) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	var in usecase.ResendConfirmationInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.users.ResendConfirmation(r.Context(), in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusAccepted, MsgConfirmationResent)
}

// Profile returns the caller's own public fields.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	acc, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, entity.ErrUnauthorized)
		return
	}

	var (
		profile any
		err     error
	)
	if acc.Kind == entity.KindTeacher {
		profile, err = h.teachers.Get(r.Context(), acc.ID)
	} else {
		profile, err = h.users.GetProfile(r.Context(), acc.ID)
	}
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
