package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/mozafut/revista/internal/apperror"
	"github.com/mozafut/revista/internal/model"
)

func newTeam(name string, position int) *model.Team {
	t := &model.Team{
		Name: name, Position: position,
		Played: 10, Won: 6, Drawn: 2, Lost: 2,
		GoalsFor: 20, GoalsAgainst: 10,
	}
	t.Derive()
	return t
}

func createTestTeam(t *testing.T, s *TeamStore, name string, position int) *model.Team {
	t.Helper()
	team := newTeam(name, position)
	if err := s.Create(context.Background(), team); err != nil {
		t.Fatalf("failed to create test team: %v", err)
	}
	return team
}

func TestTeamCreate_RoundTrip(t *testing.T) {
	db, _ := newTestDB(t)
	s := db.Teams()

	team := newTeam("Black Bulls", 3)
	team.LogoURL = ptr("http://h/uploads/bb.png")
	if err := s.Create(context.Background(), team); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.GetByID(context.Background(), team.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.GoalDifference != 10 || got.Points != 20 {
		t.Errorf("derived columns = (%d, %d), want (10, 20)", got.GoalDifference, got.Points)
	}
	if got.LogoURL == nil || *got.LogoURL != "http://h/uploads/bb.png" {
		t.Errorf("LogoURL = %v", got.LogoURL)
	}
}

func TestTeamList_ByPosition(t *testing.T) {
	db, _ := newTestDB(t)
	s := db.Teams()

	third := createTestTeam(t, s, "C", 3)
	first := createTestTeam(t, s, "A", 1)
	second := createTestTeam(t, s, "B", 2)

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []int64{first.ID, second.ID, third.ID}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("List()[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestTeamUpdate(t *testing.T) {
	db, _ := newTestDB(t)
	s := db.Teams()
	team := createTestTeam(t, s, "Costa do Sol", 6)

	team.Won = 7
	team.Position = 5
	team.LogoURL = nil
	team.Derive()
	if err := s.Update(context.Background(), team); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := s.GetByID(context.Background(), team.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Won != 7 || got.Position != 5 || got.Points != 23 {
		t.Errorf("Update() stored %+v", got)
	}
}

func TestTeamUpdate_NotFound(t *testing.T) {
	db, _ := newTestDB(t)

	err := db.Teams().Update(context.Background(), &model.Team{ID: 77, Name: "ghost"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestTeamDelete(t *testing.T) {
	db, _ := newTestDB(t)
	s := db.Teams()
	team := createTestTeam(t, s, "Nacala", 14)

	if err := s.Delete(context.Background(), team.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(context.Background(), team.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestTeamExistsByName(t *testing.T) {
	db, _ := newTestDB(t)
	s := db.Teams()
	createTestTeam(t, s, "Maxaquene", 10)

	tests := []struct {
		name string
		want bool
	}{
		{"Maxaquene", true},
		{"maxaquene", false},
		{"Chibuto", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ExistsByName(context.Background(), tt.name)
			if err != nil {
				t.Fatalf("ExistsByName() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExistsByName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
