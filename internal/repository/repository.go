// Package repository declares the storage contracts the services depend on.
// internal/repository/sqlite implements them; service tests use in-memory
// fakes.
package repository

import (
	"context"

	"github.com/mozafut/revista/internal/model"
)

// ArticleRepository stores articles.
type ArticleRepository interface {
	// List returns every article, newest created_at first.
	List(ctx context.Context) ([]model.Article, error)
	GetByID(ctx context.Context, id int64) (*model.Article, error)
	// Create sets ID and CreatedAt on the given article.
	Create(ctx context.Context, article *model.Article) error
	// Update overwrites title, body and author only.
	Update(ctx context.Context, article *model.Article) error
	Delete(ctx context.Context, id int64) error
}

// TeamRepository stores standings rows. It persists whatever derived
// values it is given; computing them is the service's job.
type TeamRepository interface {
	// List returns every team ordered by position ascending.
	List(ctx context.Context) ([]model.Team, error)
	GetByID(ctx context.Context, id int64) (*model.Team, error)
	Create(ctx context.Context, team *model.Team) error
	Update(ctx context.Context, team *model.Team) error
	Delete(ctx context.Context, id int64) error
	// ExistsByName reports whether a team with exactly this name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// ResultRepository stores match results.
type ResultRepository interface {
	// List returns every result, latest round first, then latest date.
	List(ctx context.Context) ([]model.MatchResult, error)
	GetByID(ctx context.Context, id int64) (*model.MatchResult, error)
	Create(ctx context.Context, result *model.MatchResult) error
	// Update writes every column of result, NULLs included. It reports
	// whether a row matched.
	Update(ctx context.Context, result *model.MatchResult) (bool, error)
	// Delete removes the row if present and reports whether one matched.
	Delete(ctx context.Context, id int64) (bool, error)
}

// UserRepository stores accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Create inserts the user. A duplicate email yields apperror.ErrConflict.
	Create(ctx context.Context, user *model.User) error
	// UpdateProfile writes name, email and phone (NULL for nil) and
	// reports whether a row matched.
	UpdateProfile(ctx context.Context, id int64, patch model.ProfilePatch) (bool, error)
}
