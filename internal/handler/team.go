package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mozafut/revista/internal/model"
	"github.com/mozafut/revista/internal/service"
)

// TeamService is what TeamHandler needs from the service layer.
type TeamService interface {
	List(ctx context.Context) ([]model.Team, error)
	Get(ctx context.Context, id int64) (*model.Team, error)
	Create(ctx context.Context, team model.Team) (*model.Team, error)
	Update(ctx context.Context, id int64, team model.Team) (*model.Team, error)
	Delete(ctx context.Context, id int64) error
}

var _ TeamService = (*service.TeamService)(nil)

// TeamHandler serves /teams.
type TeamHandler struct {
	svc    TeamService
	logger *slog.Logger
}

func NewTeamHandler(svc TeamService, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{svc: svc, logger: logger}
}

// HandleList returns the standings ordered by position.
//
// HTTP: GET /teams
func (h *TeamHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	teams, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// HTTP: GET /teams/{id}
func (h *TeamHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "team")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	team, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// HandleCreate adds a standings row. goal_difference and points in the
// body are ignored and recomputed.
//
// HTTP: POST /teams
// RESPONSE: 201 {"message": "team created", "id": 15}
func (h *TeamHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	team, err := decodeTeam(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	created, err := h.svc.Create(r.Context(), team)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "team created", ID: created.ID})
}

// HandleUpdate overwrites a standings row. The body needs the same fields
// as create.
//
// HTTP: PUT /teams/{id}
func (h *TeamHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "team")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	team, err := decodeTeam(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if _, err := h.svc.Update(r.Context(), id, team); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "team updated"})
}

// HTTP: DELETE /teams/{id}
func (h *TeamHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "team")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "team deleted"})
}

func decodeTeam(w http.ResponseWriter, r *http.Request) (model.Team, error) {
	var t model.Team

	p, err := decodePayload(w, r)
	if err != nil {
		return t, err
	}
	if t.Name, err = p.requireStr("name"); err != nil {
		return t, err
	}

	counters := []struct {
		key  string
		dest *int
	}{
		{"position", &t.Position},
		{"played", &t.Played},
		{"won", &t.Won},
		{"drawn", &t.Drawn},
		{"lost", &t.Lost},
		{"goals_for", &t.GoalsFor},
		{"goals_against", &t.GoalsAgainst},
	}
	for _, c := range counters {
		if *c.dest, err = p.requireInt(c.key); err != nil {
			return t, err
		}
	}

	if t.LogoURL, err = p.str("logo_url"); err != nil {
		return t, err
	}
	return t, nil
}
