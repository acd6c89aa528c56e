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

type TeacherService interface {
	Register(ctx context.Context, in usecase.RegisterTeacherInput) (*usecase.TeacherAuthResult, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.TeacherAuthResult, error)
	List(ctx context.Context) ([]*entity.TeacherProfile, error)
	Get(ctx context.Context, id string) (*entity.TeacherProfile, error)
	Update(ctx context.Context, caller *entity.Account, id string, in usecase.UpdateTeacherInput) (*entity.TeacherProfile, error)
	AddReview(ctx context.Context, caller *entity.Account, teacherID string, in usecase.AddReviewInput) (*entity.TeacherProfile, error)
}

type TeacherHandler struct {
	teachers TeacherService
	logger   *logger.Logger
}

func NewTeacherHandler(teachers TeacherService, log *logger.Logger) *TeacherHandler {
	return &TeacherHandler{teachers: teachers, logger: log.Named("TeacherHandler")}
}

func (h *TeacherHandler) List(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.teachers.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, teachers)
}

func (h *TeacherHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in usecase.RegisterTeacherInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	res, err := h.teachers.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *TeacherHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in usecase.LoginInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	res, err := h.teachers.Login(r.Context(), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *TeacherHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.teachers.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *TeacherHandler) Update(w http.ResponseWriter, r *http.Request) {
	acc, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, entity.ErrUnauthorized)
		return
	}
	var in usecase.UpdateTeacherInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	profile, err := h.teachers.Update(r.Context(), acc, chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *TeacherHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	acc, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, entity.ErrUnauthorized)
		return
	}
	var in usecase.AddReviewInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	profile, err := h.teachers.AddReview(r.Context(), acc, chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}
