package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/mozafut/revista/internal/handler"
	"github.com/mozafut/revista/internal/model"
	"github.com/mozafut/revista/internal/service"
)

var testTime = time.Date(2024, 10, 28, 12, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

// MockArticles records the last input and returns canned values.
type MockArticles struct {
	CapturedID    int64
	CapturedInput service.ArticleInput
	ReturnArticle *model.Article
	ReturnList    []model.Article
	ReturnErr     error
}

func (m *MockArticles) List(ctx context.Context) ([]model.Article, error) {
	return m.ReturnList, m.ReturnErr
}

func (m *MockArticles) Get(ctx context.Context, id int64) (*model.Article, error) {
	m.CapturedID = id
	return m.ReturnArticle, m.ReturnErr
}

func (m *MockArticles) Create(ctx context.Context, in service.ArticleInput) (*model.Article, error) {
	m.CapturedInput = in
	return m.ReturnArticle, m.ReturnErr
}

func (m *MockArticles) Update(ctx context.Context, id int64, in service.ArticleInput) (*model.Article, error) {
	m.CapturedID = id
	m.CapturedInput = in
	return m.ReturnArticle, m.ReturnErr
}

func (m *MockArticles) Delete(ctx context.Context, id int64) error {
	m.CapturedID = id
	return m.ReturnErr
}

type MockTeams struct {
	CapturedID   int64
	CapturedTeam model.Team
	ReturnTeam   *model.Team
	ReturnList   []model.Team
	ReturnErr    error
}

func (m *MockTeams) List(ctx context.Context) ([]model.Team, error) {
	return m.ReturnList, m.ReturnErr
}

func (m *MockTeams) Get(ctx context.Context, id int64) (*model.Team, error) {
	m.CapturedID = id
	return m.ReturnTeam, m.ReturnErr
}

func (m *MockTeams) Create(ctx context.Context, team model.Team) (*model.Team, error) {
	m.CapturedTeam = team
	return m.ReturnTeam, m.ReturnErr
}

func (m *MockTeams) Update(ctx context.Context, id int64, team model.Team) (*model.Team, error) {
	m.CapturedID = id
	m.CapturedTeam = team
	return m.ReturnTeam, m.ReturnErr
}

func (m *MockTeams) Delete(ctx context.Context, id int64) error {
	m.CapturedID = id
	return m.ReturnErr
}

type MockResults struct {
	CapturedID    int64
	CapturedPatch model.ResultPatch
	ReturnResult  *model.MatchResult
	ReturnList    []model.MatchResult
	ReturnErr     error
}

func (m *MockResults) List(ctx context.Context) ([]model.MatchResult, error) {
	return m.ReturnList, m.ReturnErr
}

func (m *MockResults) Get(ctx context.Context, id int64) (*model.MatchResult, error) {
	m.CapturedID = id
	return m.ReturnResult, m.ReturnErr
}

func (m *MockResults) Create(ctx context.Context, in model.ResultPatch) (*model.MatchResult, error) {
	m.CapturedPatch = in
	return m.ReturnResult, m.ReturnErr
}

func (m *MockResults) Update(ctx context.Context, id int64, patch model.ResultPatch) error {
	m.CapturedID = id
	m.CapturedPatch = patch
	return m.ReturnErr
}

func (m *MockResults) Delete(ctx context.Context, id int64) error {
	m.CapturedID = id
	return m.ReturnErr
}

type MockAuth struct {
	CapturedRegister service.RegisterInput
	CapturedEmail    string
	CapturedPassword string
	CapturedID       int64
	CapturedPatch    model.ProfilePatch
	ReturnUser       *model.User
	ReturnErr        error
}

func (m *MockAuth) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	m.CapturedRegister = in
	return m.ReturnUser, m.ReturnErr
}

func (m *MockAuth) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	m.CapturedEmail = email
	m.CapturedPassword = password
	return m.ReturnUser, m.ReturnErr
}

func (m *MockAuth) UpdateProfile(ctx context.Context, id int64, patch model.ProfilePatch) error {
	m.CapturedID = id
	m.CapturedPatch = patch
	return m.ReturnErr
}

// routeREST mounts the five CRUD handlers under prefix so {id} resolves the
// same way it does in the server.
func routeREST(prefix string, list, get, create, update, del http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Route(prefix, func(r chi.Router) {
		r.Get("/", list)
		r.Post("/", create)
		r.Get("/{id}", get)
		r.Put("/{id}", update)
		r.Delete("/{id}", del)
	})
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}

// compile-time interface checks
var _ handler.ArticleService = (*MockArticles)(nil)
var _ handler.TeamService = (*MockTeams)(nil)
var _ handler.ResultService = (*MockResults)(nil)
var _ handler.AuthService = (*MockAuth)(nil)
