// Package seed holds the reference standings, results and accounts a fresh
// database starts with. The data lives in seed.yaml, embedded at build time.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mozafut/revista/internal/model"
)

//go:embed seed.yaml
var defaultYAML []byte

// Data is the decoded reference data. Team derived fields are already
// computed; user passwords are still plaintext and must be passed through
// the configured credential verifier before they are stored.
type Data struct {
	Teams   []model.Team
	Results []model.MatchResult
	Users   []model.User
}

type fileTeam struct {
	Position     int    `yaml:"position"`
	Name         string `yaml:"name"`
	Played       int    `yaml:"played"`
	Won          int    `yaml:"won"`
	Drawn        int    `yaml:"drawn"`
	Lost         int    `yaml:"lost"`
	GoalsFor     int    `yaml:"goals_for"`
	GoalsAgainst int    `yaml:"goals_against"`
}

type fileResult struct {
	Round     int    `yaml:"round"`
	HomeTeam  string `yaml:"home_team"`
	AwayTeam  string `yaml:"away_team"`
	HomeGoals int    `yaml:"home_goals"`
	AwayGoals int    `yaml:"away_goals"`
	MatchDate string `yaml:"match_date"`
}

type fileUser struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Phone    string `yaml:"phone"`
	Role     string `yaml:"role"`
}

type file struct {
	Teams   []fileTeam   `yaml:"teams"`
	Results []fileResult `yaml:"results"`
	Users   []fileUser   `yaml:"users"`
}

// Default returns the embedded reference data.
func Default() (Data, error) {
	return Parse(defaultYAML)
}

// Parse decodes reference data in the seed.yaml format.
func Parse(raw []byte) (Data, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Data{}, fmt.Errorf("seed: decoding: %w", err)
	}

	var d Data
	for _, t := range f.Teams {
		team := model.Team{
			Name:         t.Name,
			Position:     t.Position,
			Played:       t.Played,
			Won:          t.Won,
			Drawn:        t.Drawn,
			Lost:         t.Lost,
			GoalsFor:     t.GoalsFor,
			GoalsAgainst: t.GoalsAgainst,
		}
		team.Derive()
		d.Teams = append(d.Teams, team)
	}

	for _, r := range f.Results {
		r := r
		d.Results = append(d.Results, model.MatchResult{
			Round:     &r.Round,
			HomeTeam:  &r.HomeTeam,
			AwayTeam:  &r.AwayTeam,
			HomeGoals: &r.HomeGoals,
			AwayGoals: &r.AwayGoals,
			MatchDate: &r.MatchDate,
		})
	}

	for _, u := range f.Users {
		user := model.User{
			Email:    u.Email,
			Password: u.Password,
			Name:     u.Name,
			Role:     u.Role,
		}
		if u.Phone != "" {
			phone := u.Phone
			user.Phone = &phone
		}
		if user.Role == "" {
			user.Role = model.RoleUser
		}
		d.Users = append(d.Users, user)
	}

	return d, nil
}
