package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mozafut/revista/internal/apperror"
	"github.com/mozafut/revista/internal/model"
	"github.com/mozafut/revista/internal/repository"
)

var _ repository.ResultRepository = (*ResultStore)(nil)

// ResultStore persists match results. Every column but id is nullable.
type ResultStore struct {
	db *DB
}

const resultColumns = `id, round, home_team, away_team, home_goals, away_goals,
	match_date, home_logo, away_logo`

func scanResult(scan func(dest ...any) error) (model.MatchResult, error) {
	var (
		r                     model.MatchResult
		round, hGoals, aGoals sql.NullInt64
		home, away, date      sql.NullString
		hLogo, aLogo          sql.NullString
	)
	if err := scan(&r.ID, &round, &home, &away, &hGoals, &aGoals, &date, &hLogo, &aLogo); err != nil {
		return model.MatchResult{}, err
	}
	r.Round = intPtr(round)
	r.HomeTeam = stringPtr(home)
	r.AwayTeam = stringPtr(away)
	r.HomeGoals = intPtr(hGoals)
	r.AwayGoals = intPtr(aGoals)
	r.MatchDate = stringPtr(date)
	r.HomeLogo = stringPtr(hLogo)
	r.AwayLogo = stringPtr(aLogo)
	return r, nil
}

func resultArgs(r *model.MatchResult) []any {
	return []any{
		nullInt(r.Round),
		nullString(r.HomeTeam),
		nullString(r.AwayTeam),
		nullInt(r.HomeGoals),
		nullInt(r.AwayGoals),
		nullString(r.MatchDate),
		nullString(r.HomeLogo),
		nullString(r.AwayLogo),
	}
}

// List returns results with the most recent round first and, within a
// round, the most recent date first.
func (s *ResultStore) List(ctx context.Context) ([]model.MatchResult, error) {
	results := []model.MatchResult{}
	err := s.db.query(ctx,
		`SELECT `+resultColumns+`
		 FROM results
		 ORDER BY round DESC, match_date DESC, id DESC`,
		nil,
		func(rows *sql.Rows) error {
			r, err := scanResult(rows.Scan)
			if err != nil {
				return err
			}
			results = append(results, r)
			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing results: %w", err)
	}
	return results, nil
}

func (s *ResultStore) GetByID(ctx context.Context, id int64) (*model.MatchResult, error) {
	var r model.MatchResult
	err := s.db.scope(ctx, func(q querier) error {
		var err error
		r, err = scanResult(q.QueryRowContext(ctx,
			`SELECT `+resultColumns+` FROM results WHERE id = ?`, id,
		).Scan)
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("result", id)
		}
		return nil, fmt.Errorf("sqlite: getting result %d: %w", id, err)
	}
	return &r, nil
}

func (s *ResultStore) Create(ctx context.Context, result *model.MatchResult) error {
	res, err := s.db.exec(ctx,
		`INSERT INTO results (round, home_team, away_team, home_goals, away_goals,
			match_date, home_logo, away_logo)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		resultArgs(result)...,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating result: %w", err)
	}
	result.ID = res.lastID
	return nil
}

// Update writes all eight columns. A nil field is stored as NULL; merging
// with the existing row, if wanted, happens before this call.
func (s *ResultStore) Update(ctx context.Context, result *model.MatchResult) (bool, error) {
	args := append(resultArgs(result), result.ID)
	res, err := s.db.exec(ctx,
		`UPDATE results
		 SET round = ?, home_team = ?, away_team = ?, home_goals = ?, away_goals = ?,
		     match_date = ?, home_logo = ?, away_logo = ?
		 WHERE id = ?`,
		args...,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: updating result %d: %w", result.ID, err)
	}
	return res.affected > 0, nil
}

// Delete removes the row without checking for it first.
func (s *ResultStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.exec(ctx, `DELETE FROM results WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting result %d: %w", id, err)
	}
	return res.affected > 0, nil
}
