package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mozafut/revista/internal/apperror"
	"github.com/mozafut/revista/internal/model"
	"github.com/mozafut/revista/internal/service"
)

// AuthService is what AuthHandler needs from the service layer.
type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, patch model.ProfilePatch) error
}

var _ AuthService = (*service.AuthService)(nil)

// AuthHandler serves /auth. No cookie or token is issued: login answers
// with the account and the client keeps it.
type AuthHandler struct {
	svc    AuthService
	logger *slog.Logger
}

func NewAuthHandler(svc AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// loginResponse carries the account without its password (model.User
// never serialises it).
type loginResponse struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user"`
}

// HandleLogin checks email and password.
//
// HTTP: POST /auth/login
// BODY: {"email": "...", "password": "..."}
// RESPONSE: 200 {"success": true, "user": {...}} or 401
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	email, err := p.str("email")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	password, err := p.str("password")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.svc.Authenticate(r.Context(), deref(email), deref(password))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Success: true, User: user})
}

// HandleRegister creates an account with the "user" role.
//
// HTTP: POST /auth/register
// BODY: {"email": "...", "password": "...", "name": "...", "phone": "..."}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var in service.RegisterInput
	fields := []struct {
		key  string
		dest *string
	}{
		{"email", &in.Email},
		{"password", &in.Password},
		{"name", &in.Name},
	}
	for _, f := range fields {
		v, err := p.str(f.key)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		*f.dest = deref(v)
	}
	if in.Phone, err = p.str("phone"); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if _, err := h.svc.Register(r.Context(), in); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "user registered"})
}

// HandleProfile edits name, email and phone of the account named by "id".
//
// HTTP: PUT /auth/profile
// BODY: {"id": 3, "name": "...", "email": "...", "phone": "..."}
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	id, err := p.integer("id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if id == nil {
		writeError(w, r, h.logger, apperror.ValidationFailed("id", "user id is required"))
		return
	}

	var patch model.ProfilePatch
	fields := []struct {
		key  string
		dest **string
	}{
		{"name", &patch.Name},
		{"email", &patch.Email},
		{"phone", &patch.Phone},
	}
	for _, f := range fields {
		if *f.dest, err = p.str(f.key); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
	}

	if err := h.svc.UpdateProfile(r.Context(), int64(*id), patch); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "profile updated"})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
