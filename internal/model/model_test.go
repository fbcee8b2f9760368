package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestTeamDerive(t *testing.T) {
	tests := []struct {
		name       string
		team       Team
		wantGD     int
		wantPoints int
	}{
		{
			name:       "winning record",
			team:       Team{Won: 6, Drawn: 2, Lost: 2, GoalsFor: 20, GoalsAgainst: 10},
			wantGD:     10,
			wantPoints: 20,
		},
		{
			name:       "negative goal difference",
			team:       Team{Won: 2, Drawn: 5, Lost: 9, GoalsFor: 11, GoalsAgainst: 25},
			wantGD:     -14,
			wantPoints: 11,
		},
		{
			name:       "client supplied derived values are replaced",
			team:       Team{Won: 1, GoalsFor: 1, GoalDifference: 99, Points: 99},
			wantGD:     1,
			wantPoints: 3,
		},
		{
			name:       "no games",
			team:       Team{},
			wantGD:     0,
			wantPoints: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.team.Derive()
			assert.Equal(t, tt.wantGD, tt.team.GoalDifference)
			assert.Equal(t, tt.wantPoints, tt.team.Points)
		})
	}
}

func TestResultPatch_Overwrite(t *testing.T) {
	p := ResultPatch{HomeGoals: intPtr(3)}

	got := p.Overwrite(9)

	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, intPtr(3), got.HomeGoals)
	assert.Nil(t, got.HomeTeam)
	assert.Nil(t, got.AwayTeam)
	assert.Nil(t, got.AwayGoals)
	assert.Nil(t, got.MatchDate)
	assert.Nil(t, got.Round)
}

func TestResultPatch_Merge(t *testing.T) {
	existing := MatchResult{
		ID:        4,
		Round:     intPtr(18),
		HomeTeam:  strPtr("Nacala"),
		AwayTeam:  strPtr("Chibuto"),
		HomeGoals: intPtr(0),
		AwayGoals: intPtr(0),
		MatchDate: strPtr("2024-10-24"),
	}

	got := ResultPatch{HomeGoals: intPtr(2), HomeLogo: strPtr("http://x/logo.png")}.Merge(existing)

	assert.Equal(t, intPtr(2), got.HomeGoals)
	assert.Equal(t, strPtr("Nacala"), got.HomeTeam)
	assert.Equal(t, strPtr("Chibuto"), got.AwayTeam)
	assert.Equal(t, intPtr(0), got.AwayGoals)
	assert.Equal(t, strPtr("2024-10-24"), got.MatchDate)
	assert.Equal(t, strPtr("http://x/logo.png"), got.HomeLogo)
	assert.Nil(t, got.AwayLogo)
	// existing is not modified
	assert.Equal(t, intPtr(0), existing.HomeGoals)
}

func TestResultPatch_Empty(t *testing.T) {
	assert.True(t, ResultPatch{}.Empty())
	assert.False(t, ResultPatch{AwayLogo: strPtr("")}.Empty())
}
