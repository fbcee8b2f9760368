package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/mozafut/revista/internal/apperror"
	"github.com/mozafut/revista/internal/model"
)

func newResult(round int, home, away string, hg, ag int, date string) *model.MatchResult {
	return &model.MatchResult{
		Round:     ptr(round),
		HomeTeam:  ptr(home),
		AwayTeam:  ptr(away),
		HomeGoals: ptr(hg),
		AwayGoals: ptr(ag),
		MatchDate: ptr(date),
	}
}

func createTestResult(t *testing.T, s *ResultStore, r *model.MatchResult) *model.MatchResult {
	t.Helper()
	if err := s.Create(context.Background(), r); err != nil {
		t.Fatalf("failed to create test result: %v", err)
	}
	return r
}

func TestResultCreate_RoundTrip(t *testing.T) {
	db, _ := newTestDB(t)
	s := db.Results()

	r := newResult(18, "Costa do Sol", "Desportivo Matola", 2, 1, "2024-10-25")
	r.HomeLogo = ptr("http://h/uploads/cds.png")
	createTestResult(t, s, r)

	got, err := s.GetByID(context.Background(), r.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if *got.Round != 18 || *got.HomeTeam != "Costa do Sol" || *got.HomeGoals != 2 || *got.AwayGoals != 1 {
		t.Errorf("GetByID() = %+v", got)
	}
	if *got.MatchDate != "2024-10-25" {
		t.Errorf("MatchDate = %q, want %q", *got.MatchDate, "2024-10-25")
	}
	if got.HomeLogo == nil || got.AwayLogo != nil {
		t.Errorf("logos = (%v, %v), want (set, nil)", got.HomeLogo, got.AwayLogo)
	}
}

func TestResultGetByID_NotFound(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.Results().GetByID(context.Background(), 5)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestResultList_Order(t *testing.T) {
	db, _ := newTestDB(t)
	s := db.Results()

	r9 := createTestResult(t, s, newResult(9, "A", "B", 1, 0, "2024-10-28"))
	r18early := createTestResult(t, s, newResult(18, "C", "D", 2, 2, "2024-10-24"))
	r19 := createTestResult(t, s, newResult(19, "E", "F", 0, 4, "2024-10-28"))
	r18late := createTestResult(t, s, newResult(18, "G", "H", 2, 1, "2024-10-26"))

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []int64{r19.ID, r18late.ID, r18early.ID, r9.ID}
	if len(got) != len(want) {
		t.Fatalf("List() returned %d rows, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("List()[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestResultUpdate_WritesNulls(t *testing.T) {
	db, _ := newTestDB(t)
	s := db.Results()
	r := createTestResult(t, s, newResult(18, "Nacala", "Lichinga", 2, 2, "2024-10-24"))

	matched, err := s.Update(context.Background(), &model.MatchResult{ID: r.ID, HomeGoals: ptr(3)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !matched {
		t.Error("Update() matched = false, want true")
	}

	got, err := s.GetByID(context.Background(), r.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.HomeGoals == nil || *got.HomeGoals != 3 {
		t.Errorf("HomeGoals = %v, want 3", got.HomeGoals)
	}
	if got.Round != nil || got.HomeTeam != nil || got.AwayTeam != nil || got.AwayGoals != nil || got.MatchDate != nil {
		t.Errorf("fields missing from the update should be NULL, got %+v", got)
	}
}

func TestResultUpdate_Missing(t *testing.T) {
	db, _ := newTestDB(t)

	matched, err := db.Results().Update(context.Background(), &model.MatchResult{ID: 99, Round: ptr(1)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if matched {
		t.Error("Update() on missing row matched = true, want false")
	}
}

func TestResultDelete_Unconditional(t *testing.T) {
	db, _ := newTestDB(t)
	s := db.Results()
	r := createTestResult(t, s, newResult(1, "A", "B", 0, 0, "2024-01-01"))

	matched, err := s.Delete(context.Background(), r.ID)
	if err != nil || !matched {
		t.Fatalf("Delete() = (%v, %v), want (true, nil)", matched, err)
	}

	matched, err = s.Delete(context.Background(), r.ID)
	if err != nil {
		t.Fatalf("Delete() on missing row error = %v, want nil", err)
	}
	if matched {
		t.Error("Delete() on missing row matched = true, want false")
	}
}
