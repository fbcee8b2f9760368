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

var _ repository.TeamRepository = (*TeamStore)(nil)

// TeamStore persists the standings table. It stores the derived columns
// exactly as given; TeamService computes them.
type TeamStore struct {
	db *DB
}

const teamColumns = `id, name, position, played, won, drawn, lost,
	goals_for, goals_against, goal_difference, points, logo_url`

func scanTeam(scan func(dest ...any) error) (model.Team, error) {
	var (
		t    model.Team
		logo sql.NullString
	)
	err := scan(
		&t.ID, &t.Name, &t.Position, &t.Played, &t.Won, &t.Drawn, &t.Lost,
		&t.GoalsFor, &t.GoalsAgainst, &t.GoalDifference, &t.Points, &logo,
	)
	if err != nil {
		return model.Team{}, err
	}
	t.LogoURL = stringPtr(logo)
	return t, nil
}

// List returns the standings ordered by the stored position.
func (s *TeamStore) List(ctx context.Context) ([]model.Team, error) {
	teams := []model.Team{}
	err := s.db.query(ctx,
		`SELECT `+teamColumns+` FROM teams ORDER BY position ASC, id ASC`,
		nil,
		func(rows *sql.Rows) error {
			t, err := scanTeam(rows.Scan)
			if err != nil {
				return err
			}
			teams = append(teams, t)
			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing teams: %w", err)
	}
	return teams, nil
}

func (s *TeamStore) GetByID(ctx context.Context, id int64) (*model.Team, error) {
	var t model.Team
	err := s.db.scope(ctx, func(q querier) error {
		var err error
		t, err = scanTeam(q.QueryRowContext(ctx,
			`SELECT `+teamColumns+` FROM teams WHERE id = ?`, id,
		).Scan)
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("team", id)
		}
		return nil, fmt.Errorf("sqlite: getting team %d: %w", id, err)
	}
	return &t, nil
}

func (s *TeamStore) Create(ctx context.Context, team *model.Team) error {
	res, err := s.db.exec(ctx,
		`INSERT INTO teams (name, position, played, won, drawn, lost,
			goals_for, goals_against, goal_difference, points, logo_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		team.Name, team.Position, team.Played, team.Won, team.Drawn, team.Lost,
		team.GoalsFor, team.GoalsAgainst, team.GoalDifference, team.Points,
		nullString(team.LogoURL),
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating team: %w", err)
	}
	team.ID = res.lastID
	return nil
}

// Update overwrites every column of the row, position and logo included.
func (s *TeamStore) Update(ctx context.Context, team *model.Team) error {
	res, err := s.db.exec(ctx,
		`UPDATE teams
		 SET name = ?, position = ?, played = ?, won = ?, drawn = ?, lost = ?,
		     goals_for = ?, goals_against = ?, goal_difference = ?, points = ?, logo_url = ?
		 WHERE id = ?`,
		team.Name, team.Position, team.Played, team.Won, team.Drawn, team.Lost,
		team.GoalsFor, team.GoalsAgainst, team.GoalDifference, team.Points,
		nullString(team.LogoURL),
		team.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating team %d: %w", team.ID, err)
	}
	if res.affected == 0 {
		return apperror.NotFound("team", team.ID)
	}
	return nil
}

func (s *TeamStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.exec(ctx, `DELETE FROM teams WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting team %d: %w", id, err)
	}
	if res.affected == 0 {
		return apperror.NotFound("team", id)
	}
	return nil
}

// ExistsByName matches the name exactly, the same convention results use to
// refer to teams.
func (s *TeamStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int
	err := s.db.queryRow(ctx,
		`SELECT COUNT(*) FROM teams WHERE name = ?`, []any{name}, &count)
	if err != nil {
		return false, fmt.Errorf("sqlite: looking up team %q: %w", name, err)
	}
	return count > 0, nil
}
