package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mozafut/revista/internal/model"
	"github.com/mozafut/revista/internal/service"
)

// ArticleService is what ArticleHandler needs from the service layer.
type ArticleService interface {
	List(ctx context.Context) ([]model.Article, error)
	Get(ctx context.Context, id int64) (*model.Article, error)
	Create(ctx context.Context, in service.ArticleInput) (*model.Article, error)
	Update(ctx context.Context, id int64, in service.ArticleInput) (*model.Article, error)
	Delete(ctx context.Context, id int64) error
}

var _ ArticleService = (*service.ArticleService)(nil)

// ArticleHandler serves /articles.
type ArticleHandler struct {
	svc    ArticleService
	logger *slog.Logger
}

func NewArticleHandler(svc ArticleService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{svc: svc, logger: logger}
}

// articleUpdateResponse is the body of a successful update. It has no
// image_url: the update path never touches the image, and clients have
// always received this shape.
type articleUpdateResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// HandleList returns every article, newest first.
//
// HTTP: GET /articles
func (h *ArticleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	articles, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, articles)
}

// HandleGet returns one article.
//
// HTTP: GET /articles/{id}
func (h *ArticleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	article, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// HandleCreate stores a new article and returns it with 201.
//
// HTTP: POST /articles
// BODY: {"title": "...", "body": "...", "author": "...", "image_url": "..."}
func (h *ArticleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, err := h.decodeInput(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	article, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, article)
}

// HandleUpdate replaces title, body and author.
//
// HTTP: PUT /articles/{id}
func (h *ArticleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	in, err := h.decodeInput(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	in.ImageURL = nil

	article, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, articleUpdateResponse{
		ID:        article.ID,
		Title:     article.Title,
		Body:      article.Body,
		Author:    article.Author,
		CreatedAt: article.CreatedAt,
	})
}

// HandleDelete removes an article.
//
// HTTP: DELETE /articles/{id}
func (h *ArticleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "article")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "article deleted"})
}

func (h *ArticleHandler) decodeInput(w http.ResponseWriter, r *http.Request) (service.ArticleInput, error) {
	var in service.ArticleInput

	p, err := decodePayload(w, r)
	if err != nil {
		return in, err
	}
	if in.Title, err = p.requireStr("title"); err != nil {
		return in, err
	}
	if in.Body, err = p.requireStr("body"); err != nil {
		return in, err
	}
	if in.Author, err = p.requireStr("author"); err != nil {
		return in, err
	}
	if in.ImageURL, err = p.str("image_url"); err != nil {
		return in, err
	}
	return in, nil
}
