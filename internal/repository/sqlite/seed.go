package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mozafut/revista/internal/seed"
)

// SeedReport says how many rows Seed inserted per table. A zero means the
// table already had data and was left alone.
type SeedReport struct {
	Teams   int
	Results int
	Users   int
}

// Seed fills each empty table with the matching slice of data. Tables that
// already hold rows are skipped, so it is safe to call on every start.
// User passwords are stored as given; hash them before calling.
func (db *DB) Seed(ctx context.Context, data seed.Data) (SeedReport, error) {
	var report SeedReport

	err := db.withTx(ctx, func(q querier) error {
		var err error
		if report.Teams, err = seedTable(ctx, q, "teams", len(data.Teams), func(i int) (string, []any) {
			t := data.Teams[i]
			return `INSERT INTO teams (name, position, played, won, drawn, lost,
					goals_for, goals_against, goal_difference, points, logo_url)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				[]any{t.Name, t.Position, t.Played, t.Won, t.Drawn, t.Lost,
					t.GoalsFor, t.GoalsAgainst, t.GoalDifference, t.Points, nullString(t.LogoURL)}
		}); err != nil {
			return err
		}

		if report.Results, err = seedTable(ctx, q, "results", len(data.Results), func(i int) (string, []any) {
			return `INSERT INTO results (round, home_team, away_team, home_goals, away_goals,
					match_date, home_logo, away_logo)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				resultArgs(&data.Results[i])
		}); err != nil {
			return err
		}

		now := db.clock.Now().UTC()
		report.Users, err = seedTable(ctx, q, "users", len(data.Users), func(i int) (string, []any) {
			u := data.Users[i]
			return `INSERT INTO users (email, password, name, phone, role, created_at)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				[]any{u.Email, u.Password, u.Name, nullString(u.Phone), u.Role, now}
		})
		return err
	})
	if err != nil {
		return SeedReport{}, fmt.Errorf("sqlite: seeding: %w", err)
	}
	return report, nil
}

// seedTable inserts n rows into table when it is empty and returns how many
// rows were written.
func seedTable(ctx context.Context, q querier, table string, n int, row func(i int) (string, []any)) (int, error) {
	if n == 0 {
		return 0, nil
	}

	var count int
	// table is one of a fixed set of names, never user input
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	if count > 0 {
		return 0, nil
	}

	for i := 0; i < n; i++ {
		stmt, args := row(i)
		if _, err := q.ExecContext(ctx, stmt, args...); err != nil {
			return 0, fmt.Errorf("inserting into %s: %w", table, err)
		}
	}
	return n, nil
}

// withTx runs fn inside a transaction on a single scoped connection. The
// transaction is committed when fn returns nil and rolled back otherwise.
func (db *DB) withTx(ctx context.Context, fn func(q querier) error) error {
	conn, err := db.conn.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil && err != sql.ErrTxDone {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}
