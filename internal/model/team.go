package model

// Points awarded per result in the standings table.
const (
	PointsPerWin  = 3
	PointsPerDraw = 1
)

// Team is one row of the league standings table.
//
// DERIVED FIELDS:
// GoalDifference and Points are never taken from the client. Derive()
// recomputes them from the other counters, and every write path calls it
// before touching storage, so a stored row is always internally consistent.
//
// Position is client-supplied. It is NOT re-ranked from points, and moving
// one team does not move any other.
type Team struct {
	ID             int64   `json:"id"              db:"id"`
	Name           string  `json:"name"            db:"name"`
	Position       int     `json:"position"        db:"position"`
	Played         int     `json:"played"          db:"played"`
	Won            int     `json:"won"             db:"won"`
	Drawn          int     `json:"drawn"           db:"drawn"`
	Lost           int     `json:"lost"            db:"lost"`
	GoalsFor       int     `json:"goals_for"       db:"goals_for"`
	GoalsAgainst   int     `json:"goals_against"   db:"goals_against"`
	GoalDifference int     `json:"goal_difference" db:"goal_difference"`
	Points         int     `json:"points"          db:"points"`
	LogoURL        *string `json:"logo_url"        db:"logo_url"`
}

// Derive recomputes GoalDifference and Points in place.
func (t *Team) Derive() {
	t.GoalDifference = t.GoalsFor - t.GoalsAgainst
	t.Points = t.Won*PointsPerWin + t.Drawn*PointsPerDraw
}
