package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/mozafut/revista/internal/apperror"
	"github.com/mozafut/revista/internal/model"
	"github.com/mozafut/revista/internal/repository"
)

// =========================================================================
// IN-MEMORY REPOSITORIES
// =========================================================================
//
// Each fake implements one repository interface with a map and hands out
// copies, so a test cannot reach into the store through a returned
// pointer. errNext makes the next call fail, to simulate a storage fault.

var errStorage = errors.New("disk I/O error")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeArticles struct {
	mu      sync.Mutex
	rows    map[int64]model.Article
	nextID  int64
	errNext error
}

var _ repository.ArticleRepository = (*fakeArticles)(nil)

func newFakeArticles() *fakeArticles {
	return &fakeArticles{rows: map[int64]model.Article{}}
}

func (f *fakeArticles) fail() error {
	err := f.errNext
	f.errNext = nil
	return err
}

func (f *fakeArticles) List(context.Context) ([]model.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return nil, err
	}
	out := []model.Article{}
	for _, a := range f.rows {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeArticles) GetByID(_ context.Context, id int64) (*model.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("article", id)
	}
	return &a, nil
}

func (f *fakeArticles) Create(_ context.Context, a *model.Article) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return err
	}
	f.nextID++
	a.ID = f.nextID
	f.rows[a.ID] = *a
	return nil
}

func (f *fakeArticles) Update(_ context.Context, a *model.Article) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[a.ID]
	if !ok {
		return apperror.NotFound("article", a.ID)
	}
	row.Title, row.Body, row.Author = a.Title, a.Body, a.Author
	f.rows[a.ID] = row
	return nil
}

func (f *fakeArticles) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return apperror.NotFound("article", id)
	}
	delete(f.rows, id)
	return nil
}

type fakeTeams struct {
	mu     sync.Mutex
	rows   map[int64]model.Team
	nextID int64
}

var _ repository.TeamRepository = (*fakeTeams)(nil)

func newFakeTeams() *fakeTeams {
	return &fakeTeams{rows: map[int64]model.Team{}}
}

func (f *fakeTeams) List(context.Context) ([]model.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Team{}
	for _, t := range f.rows {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeTeams) GetByID(_ context.Context, id int64) (*model.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("team", id)
	}
	return &t, nil
}

func (f *fakeTeams) Create(_ context.Context, t *model.Team) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t.ID = f.nextID
	f.rows[t.ID] = *t
	return nil
}

func (f *fakeTeams) Update(_ context.Context, t *model.Team) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[t.ID]; !ok {
		return apperror.NotFound("team", t.ID)
	}
	f.rows[t.ID] = *t
	return nil
}

func (f *fakeTeams) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return apperror.NotFound("team", id)
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeTeams) ExistsByName(_ context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.rows {
		if t.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type fakeResults struct {
	mu      sync.Mutex
	rows    map[int64]model.MatchResult
	nextID  int64
	errNext error
}

var _ repository.ResultRepository = (*fakeResults)(nil)

func newFakeResults() *fakeResults {
	return &fakeResults{rows: map[int64]model.MatchResult{}}
}

func (f *fakeResults) List(context.Context) ([]model.MatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.MatchResult{}
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeResults) GetByID(_ context.Context, id int64) (*model.MatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("result", id)
	}
	return &r, nil
}

func (f *fakeResults) Create(_ context.Context, r *model.MatchResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	r.ID = f.nextID
	f.rows[r.ID] = *r
	return nil
}

func (f *fakeResults) Update(_ context.Context, r *model.MatchResult) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errNext; err != nil {
		f.errNext = nil
		return false, err
	}
	if _, ok := f.rows[r.ID]; !ok {
		return false, nil
	}
	f.rows[r.ID] = *r
	return true, nil
}

func (f *fakeResults) Delete(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[id]
	delete(f.rows, id)
	return ok, nil
}

type fakeUsers struct {
	mu     sync.Mutex
	rows   map[int64]model.User
	nextID int64
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func newFakeUsers() *fakeUsers {
	return &fakeUsers{rows: map[int64]model.User{}}
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	return &u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.rows {
		if existing.Email == u.Email {
			return apperror.Conflict("user", "email", u.Email)
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id int64, p model.ProfilePatch) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return false, nil
	}
	u.Name, u.Email, u.Phone = deref(p.Name), deref(p.Email), p.Phone
	f.rows[id] = u
	return true, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ptr[T any](v T) *T { return &v }
