// Package service holds the business rules between the HTTP handlers and
// the repositories.
//
//	Handler (HTTP)  → parses requests, writes responses
//	Service         → validates, derives, orchestrates
//	Repository      → reads and writes rows
//
// Services take plain Go values, never *http.Request, and return
// apperror values the handler maps to status codes. They depend on the
// repository interfaces, so tests pass in-memory fakes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mozafut/revista/internal/apperror"
	"github.com/mozafut/revista/internal/model"
	"github.com/mozafut/revista/internal/repository"
)

// ArticleInput is the client-editable part of an article.
type ArticleInput struct {
	Title    string
	Body     string
	Author   string
	ImageURL *string // only honoured on create
}

// validate trims the text fields in place and requires all three.
func (in *ArticleInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	in.Author = strings.TrimSpace(in.Author)

	switch {
	case in.Title == "":
		return apperror.ValidationFailed("title", "title is required")
	case in.Body == "":
		return apperror.ValidationFailed("body", "body is required")
	case in.Author == "":
		return apperror.ValidationFailed("author", "author is required")
	}
	return nil
}

// ArticleService handles articles.
type ArticleService struct {
	repo   repository.ArticleRepository
	logger *slog.Logger
}

func NewArticleService(repo repository.ArticleRepository, logger *slog.Logger) *ArticleService {
	return &ArticleService{repo: repo, logger: logger}
}

// List returns every article, newest first.
func (s *ArticleService) List(ctx context.Context) ([]model.Article, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list articles", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	return articles, nil
}

// Get returns one article or apperror.ErrNotFound.
func (s *ArticleService) Get(ctx context.Context, id int64) (*model.Article, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and stores a new article, then reads it back so the
// caller gets exactly what was persisted.
func (s *ArticleService) Create(ctx context.Context, in ArticleInput) (*model.Article, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	article := &model.Article{
		Title:    in.Title,
		Body:     in.Body,
		Author:   in.Author,
		ImageURL: in.ImageURL,
	}
	if err := s.repo.Create(ctx, article); err != nil {
		s.logger.Error("failed to create article", slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating article: %w", err)
	}

	s.logger.Info("article created",
		slog.Int64("id", article.ID),
		slog.String("title", article.Title),
	)

	return s.repo.GetByID(ctx, article.ID)
}

// Update replaces title, body and author. The image and creation date are
// never changed here. Validation runs before the existence check.
func (s *ArticleService) Update(ctx context.Context, id int64, in ArticleInput) (*model.Article, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	article := &model.Article{ID: id, Title: in.Title, Body: in.Body, Author: in.Author}
	if err := s.repo.Update(ctx, article); err != nil {
		return nil, err
	}

	s.logger.Info("article updated", slog.Int64("id", id))

	return s.repo.GetByID(ctx, id)
}

// Delete removes an article. A second delete of the same id is NotFound.
func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("article deleted", slog.Int64("id", id))
	return nil
}
