package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/mozafut/revista/internal/apperror"
	"github.com/mozafut/revista/internal/model"
	"github.com/mozafut/revista/internal/repository"
)

// TeamService maintains the standings table.
//
// Every write recomputes goal difference and points from the counters, so
// whatever the client sent for those two fields is ignored. Position is
// taken as given; other teams are not re-ranked.
type TeamService struct {
	repo   repository.TeamRepository
	logger *slog.Logger
}

func NewTeamService(repo repository.TeamRepository, logger *slog.Logger) *TeamService {
	return &TeamService{repo: repo, logger: logger}
}

func (s *TeamService) List(ctx context.Context) ([]model.Team, error) {
	teams, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list teams", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	return teams, nil
}

func (s *TeamService) Get(ctx context.Context, id int64) (*model.Team, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the counters, derives the computed columns and stores
// the row. The returned team carries the new ID.
func (s *TeamService) Create(ctx context.Context, team model.Team) (*model.Team, error) {
	if err := prepareTeam(&team); err != nil {
		return nil, err
	}
	team.ID = 0

	if err := s.repo.Create(ctx, &team); err != nil {
		s.logger.Error("failed to create team", slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating team: %w", err)
	}

	s.logger.Info("team created",
		slog.Int64("id", team.ID),
		slog.String("name", team.Name),
		slog.Int("points", team.Points),
	)
	return &team, nil
}

// Update overwrites every field of the row, position and logo included.
func (s *TeamService) Update(ctx context.Context, id int64, team model.Team) (*model.Team, error) {
	if err := prepareTeam(&team); err != nil {
		return nil, err
	}
	team.ID = id

	if err := s.repo.Update(ctx, &team); err != nil {
		return nil, err
	}

	s.logger.Info("team updated",
		slog.Int64("id", id),
		slog.Int("points", team.Points),
	)
	return &team, nil
}

func (s *TeamService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("team deleted", slog.Int64("id", id))
	return nil
}

// maxCounter bounds every standings counter so that won*3 + drawn always
// fits in an int.
const maxCounter = math.MaxInt32

// prepareTeam trims the name, rejects counters outside [0, maxCounter] and
// recomputes the derived fields.
func prepareTeam(t *model.Team) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return apperror.ValidationFailed("name", "name is required")
	}

	counters := []struct {
		field string
		value int
	}{
		{"position", t.Position},
		{"played", t.Played},
		{"won", t.Won},
		{"drawn", t.Drawn},
		{"lost", t.Lost},
		{"goals_for", t.GoalsFor},
		{"goals_against", t.GoalsAgainst},
	}
	for _, c := range counters {
		if c.value < 0 {
			return apperror.ValidationFailed(c.field, c.field+" must not be negative")
		}
		if c.value > maxCounter {
			return apperror.ValidationFailed(c.field, fmt.Sprintf("%s must be at most %d", c.field, maxCounter))
		}
	}

	t.Derive()
	return nil
}
