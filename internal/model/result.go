package model

// MatchDateLayout is the calendar-date format match dates are written in.
const MatchDateLayout = "2006-01-02"

// MatchResult is a played fixture.
//
// Team names are free text. They are matched against Team.Name by
// convention only; no foreign key exists and unknown names are accepted.
//
// Every field except ID is a pointer because the legacy update path can
// overwrite any column with NULL (see ResultPatch).
type MatchResult struct {
	ID        int64   `json:"id"         db:"id"`
	Round     *int    `json:"round"      db:"round"`
	HomeTeam  *string `json:"home_team"  db:"home_team"`
	AwayTeam  *string `json:"away_team"  db:"away_team"`
	HomeGoals *int    `json:"home_goals" db:"home_goals"`
	AwayGoals *int    `json:"away_goals" db:"away_goals"`
	MatchDate *string `json:"match_date" db:"match_date"` // YYYY-MM-DD
	HomeLogo  *string `json:"home_logo"  db:"home_logo"`
	AwayLogo  *string `json:"away_logo"  db:"away_logo"`
}

// ResultPatch carries the fields present in an update payload. A nil field
// was absent (or null) in the request.
type ResultPatch struct {
	Round     *int
	HomeTeam  *string
	AwayTeam  *string
	HomeGoals *int
	AwayGoals *int
	MatchDate *string
	HomeLogo  *string
	AwayLogo  *string
}

// Empty reports whether the patch carries no field at all.
func (p ResultPatch) Empty() bool {
	return p.Round == nil && p.HomeTeam == nil && p.AwayTeam == nil &&
		p.HomeGoals == nil && p.AwayGoals == nil && p.MatchDate == nil &&
		p.HomeLogo == nil && p.AwayLogo == nil
}

// Overwrite returns the row the legacy update writes: every absent field
// becomes NULL.
func (p ResultPatch) Overwrite(id int64) MatchResult {
	return MatchResult{
		ID:        id,
		Round:     p.Round,
		HomeTeam:  p.HomeTeam,
		AwayTeam:  p.AwayTeam,
		HomeGoals: p.HomeGoals,
		AwayGoals: p.AwayGoals,
		MatchDate: p.MatchDate,
		HomeLogo:  p.HomeLogo,
		AwayLogo:  p.AwayLogo,
	}
}

// Merge returns existing with the present fields of p applied on top.
func (p ResultPatch) Merge(existing MatchResult) MatchResult {
	merged := existing
	if p.Round != nil {
		merged.Round = p.Round
	}
	if p.HomeTeam != nil {
		merged.HomeTeam = p.HomeTeam
	}
	if p.AwayTeam != nil {
		merged.AwayTeam = p.AwayTeam
	}
	if p.HomeGoals != nil {
		merged.HomeGoals = p.HomeGoals
	}
	if p.AwayGoals != nil {
		merged.AwayGoals = p.AwayGoals
	}
	if p.MatchDate != nil {
		merged.MatchDate = p.MatchDate
	}
	if p.HomeLogo != nil {
		merged.HomeLogo = p.HomeLogo
	}
	if p.AwayLogo != nil {
		merged.AwayLogo = p.AwayLogo
	}
	return merged
}
