package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mozafut/revista/internal/apperror"
	"github.com/mozafut/revista/internal/model"
	"github.com/mozafut/revista/internal/repository"
)

// ResultOptions tunes ResultService.
type ResultOptions struct {
	// Mode decides what Update does with fields absent from the patch.
	Mode UpdateMode
	// CheckTeams rejects results naming a team that is not in the
	// standings. Off by default: seeded results reference clubs outside
	// the table.
	CheckTeams bool
}

// ResultService records match results.
//
// Team names are a string convention, not a reference: nothing ties a
// result to a standings row unless CheckTeams is on.
type ResultService struct {
	results repository.ResultRepository
	teams   repository.TeamRepository
	opts    ResultOptions
	logger  *slog.Logger
}

// NewResultService creates a ResultService. teams is only consulted when
// opts.CheckTeams is set and may be nil otherwise.
func NewResultService(
	results repository.ResultRepository,
	teams repository.TeamRepository,
	opts ResultOptions,
	logger *slog.Logger,
) *ResultService {
	if opts.Mode == "" {
		opts.Mode = UpdateOverwrite
	}
	return &ResultService{results: results, teams: teams, opts: opts, logger: logger}
}

func (s *ResultService) List(ctx context.Context) ([]model.MatchResult, error) {
	results, err := s.results.List(ctx)
	if err != nil {
		s.logger.Error("failed to list results", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing results: %w", err)
	}
	return results, nil
}

func (s *ResultService) Get(ctx context.Context, id int64) (*model.MatchResult, error) {
	return s.results.GetByID(ctx, id)
}

// Create requires round, both team names, both scores and the date.
// Logos are optional.
func (s *ResultService) Create(ctx context.Context, in model.ResultPatch) (*model.MatchResult, error) {
	required := []struct {
		field   string
		present bool
	}{
		{"round", in.Round != nil},
		{"home_team", in.HomeTeam != nil},
		{"away_team", in.AwayTeam != nil},
		{"home_goals", in.HomeGoals != nil},
		{"away_goals", in.AwayGoals != nil},
		{"match_date", in.MatchDate != nil},
	}
	for _, r := range required {
		if !r.present {
			return nil, apperror.ValidationFailed(r.field, r.field+" is required")
		}
	}

	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	result := in.Overwrite(0)
	if err := s.results.Create(ctx, &result); err != nil {
		s.logger.Error("failed to create result", slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating result: %w", err)
	}

	s.logger.Info("result created",
		slog.Int64("id", result.ID),
		slog.String("home", *result.HomeTeam),
		slog.String("away", *result.AwayTeam),
	)
	return &result, nil
}

// Update applies a partial payload according to the configured mode.
//
// UpdateOverwrite: absent fields are stored as NULL, and a missing row is
// not an error.
// UpdateMerge: the stored row is loaded (NotFound if absent) and only the
// present fields change.
//
// An empty patch is rejected in both modes.
func (s *ResultService) Update(ctx context.Context, id int64, patch model.ResultPatch) error {
	if patch.Empty() {
		return apperror.ValidationFailed("body", "no fields provided")
	}
	if err := s.validate(ctx, &patch); err != nil {
		return err
	}

	var row model.MatchResult
	switch s.opts.Mode {
	case UpdateMerge:
		existing, err := s.results.GetByID(ctx, id)
		if err != nil {
			return err
		}
		row = patch.Merge(*existing)
	default:
		row = patch.Overwrite(id)
	}

	matched, err := s.results.Update(ctx, &row)
	if err != nil {
		s.logger.Error("failed to update result", slog.Int64("id", id), slog.String("error", err.Error()))
		return fmt.Errorf("updating result: %w", err)
	}
	if !matched {
		if s.opts.Mode == UpdateMerge {
			// deleted between the read and the write
			return apperror.NotFound("result", id)
		}
		s.logger.Debug("result update matched no row", slog.Int64("id", id))
		return nil
	}

	s.logger.Info("result updated", slog.Int64("id", id), slog.String("mode", string(s.opts.Mode)))
	return nil
}

// Delete removes a result without checking that it exists first. Deleting
// an unknown id succeeds.
func (s *ResultService) Delete(ctx context.Context, id int64) error {
	matched, err := s.results.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete result", slog.Int64("id", id), slog.String("error", err.Error()))
		return fmt.Errorf("deleting result: %w", err)
	}
	s.logger.Info("result deleted", slog.Int64("id", id), slog.Bool("matched", matched))
	return nil
}

// validate checks the fields present in p. Team names are trimmed in place.
func (s *ResultService) validate(ctx context.Context, p *model.ResultPatch) error {
	if p.Round != nil && *p.Round < 1 {
		return apperror.ValidationFailed("round", "round must be 1 or greater")
	}
	if p.HomeGoals != nil && *p.HomeGoals < 0 {
		return apperror.ValidationFailed("home_goals", "home_goals must not be negative")
	}
	if p.AwayGoals != nil && *p.AwayGoals < 0 {
		return apperror.ValidationFailed("away_goals", "away_goals must not be negative")
	}
	if p.MatchDate != nil {
		if _, err := time.Parse(model.MatchDateLayout, *p.MatchDate); err != nil {
			return apperror.ValidationFailed("match_date", "match_date must be a date in YYYY-MM-DD form")
		}
	}

	names := []struct {
		field string
		value *string
	}{
		{"home_team", p.HomeTeam},
		{"away_team", p.AwayTeam},
	}
	for _, n := range names {
		if n.value == nil {
			continue
		}
		trimmed := strings.TrimSpace(*n.value)
		if trimmed == "" {
			return apperror.ValidationFailed(n.field, n.field+" must not be empty")
		}
		*n.value = trimmed

		if s.opts.CheckTeams {
			ok, err := s.teams.ExistsByName(ctx, trimmed)
			if err != nil {
				return fmt.Errorf("checking team %q: %w", trimmed, err)
			}
			if !ok {
				return apperror.ValidationFailed(n.field, fmt.Sprintf("team %q is not in the standings", trimmed))
			}
		}
	}
	return nil
}
