package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mozafut/revista/internal/model"
	"github.com/mozafut/revista/internal/service"
)

// ResultService is what ResultHandler needs from the service layer.
type ResultService interface {
	List(ctx context.Context) ([]model.MatchResult, error)
	Get(ctx context.Context, id int64) (*model.MatchResult, error)
	Create(ctx context.Context, in model.ResultPatch) (*model.MatchResult, error)
	Update(ctx context.Context, id int64, patch model.ResultPatch) error
	Delete(ctx context.Context, id int64) error
}

var _ ResultService = (*service.ResultService)(nil)

// ResultHandler serves /results.
type ResultHandler struct {
	svc    ResultService
	logger *slog.Logger
}

func NewResultHandler(svc ResultService, logger *slog.Logger) *ResultHandler {
	return &ResultHandler{svc: svc, logger: logger}
}

// HandleList returns results, latest round and date first.
//
// HTTP: GET /results
func (h *ResultHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// HTTP: GET /results/{id}
func (h *ResultHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "result")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	result, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HTTP: POST /results
// RESPONSE: 201 {"message": "result created", "id": 7}
func (h *ResultHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, err := decodeResultPatch(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	created, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "result created", ID: created.ID})
}

// HandleUpdate applies a partial payload. What happens to fields left out
// depends on the configured update mode.
//
// HTTP: PUT /results/{id}
func (h *ResultHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "result")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	patch, err := decodeResultPatch(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.svc.Update(r.Context(), id, patch); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "result updated"})
}

// HandleDelete removes a result. It succeeds whether or not the id exists.
//
// HTTP: DELETE /results/{id}
func (h *ResultHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "result")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "result deleted"})
}

// decodeResultPatch reads every result field the body carries. Required
// fields are enforced by the service, which knows create from update.
func decodeResultPatch(w http.ResponseWriter, r *http.Request) (model.ResultPatch, error) {
	var patch model.ResultPatch

	p, err := decodePayload(w, r)
	if err != nil {
		return patch, err
	}

	ints := []struct {
		key  string
		dest **int
	}{
		{"round", &patch.Round},
		{"home_goals", &patch.HomeGoals},
		{"away_goals", &patch.AwayGoals},
	}
	for _, f := range ints {
		if *f.dest, err = p.integer(f.key); err != nil {
			return patch, err
		}
	}

	strs := []struct {
		key  string
		dest **string
	}{
		{"home_team", &patch.HomeTeam},
		{"away_team", &patch.AwayTeam},
		{"match_date", &patch.MatchDate},
		{"home_logo", &patch.HomeLogo},
		{"away_logo", &patch.AwayLogo},
	}
	for _, f := range strs {
		if *f.dest, err = p.str(f.key); err != nil {
			return patch, err
		}
	}
	return patch, nil
}
