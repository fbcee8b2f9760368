package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mozafut/revista/internal/apperror"
	"github.com/mozafut/revista/internal/model"
	"github.com/mozafut/revista/internal/repository"
)

// compile-time check that *ArticleStore implements repository.ArticleRepository
var _ repository.ArticleRepository = (*ArticleStore)(nil)

// ArticleStore persists articles.
type ArticleStore struct {
	db *DB
}

const articleColumns = `id, title, body, author, image_url, created_at`

func scanArticle(scan func(dest ...any) error) (model.Article, error) {
	var (
		a        model.Article
		imageURL sql.NullString
	)
	if err := scan(&a.ID, &a.Title, &a.Body, &a.Author, &imageURL, &a.CreatedAt); err != nil {
		return model.Article{}, err
	}
	a.ImageURL = stringPtr(imageURL)
	return a, nil
}

// List returns every article, newest first. Articles created within the
// same clock tick fall back to insertion order (newest id first).
func (s *ArticleStore) List(ctx context.Context) ([]model.Article, error) {
	articles := []model.Article{}
	err := s.db.query(ctx,
		`SELECT `+articleColumns+`
		 FROM articles
		 ORDER BY created_at DESC, id DESC`,
		nil,
		func(rows *sql.Rows) error {
			a, err := scanArticle(rows.Scan)
			if err != nil {
				return err
			}
			articles = append(articles, a)
			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing articles: %w", err)
	}
	return articles, nil
}

// GetByID retrieves one article. sql.ErrNoRows becomes apperror.ErrNotFound.
func (s *ArticleStore) GetByID(ctx context.Context, id int64) (*model.Article, error) {
	var a model.Article
	err := s.db.scope(ctx, func(q querier) error {
		var err error
		a, err = scanArticle(q.QueryRowContext(ctx,
			`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id,
		).Scan)
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("article", id)
		}
		return nil, fmt.Errorf("sqlite: getting article %d: %w", id, err)
	}
	return &a, nil
}

// Create inserts the article and stamps CreatedAt from the store's clock.
// The caller's struct receives the generated ID.
func (s *ArticleStore) Create(ctx context.Context, article *model.Article) error {
	article.CreatedAt = s.db.clock.Now().UTC()

	res, err := s.db.exec(ctx,
		`INSERT INTO articles (title, body, author, image_url, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		article.Title,
		article.Body,
		article.Author,
		nullString(article.ImageURL),
		article.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating article: %w", err)
	}

	article.ID = res.lastID
	return nil
}

// Update overwrites title, body and author. image_url and created_at are
// left alone.
func (s *ArticleStore) Update(ctx context.Context, article *model.Article) error {
	res, err := s.db.exec(ctx,
		`UPDATE articles SET title = ?, body = ?, author = ? WHERE id = ?`,
		article.Title,
		article.Body,
		article.Author,
		article.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating article %d: %w", article.ID, err)
	}
	if res.affected == 0 {
		return apperror.NotFound("article", article.ID)
	}
	return nil
}

// Delete removes the article, or returns NotFound if there is none.
func (s *ArticleStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.exec(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting article %d: %w", id, err)
	}
	if res.affected == 0 {
		return apperror.NotFound("article", id)
	}
	return nil
}
