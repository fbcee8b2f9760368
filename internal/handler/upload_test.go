package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mozafut/revista/internal/handler"
	"github.com/mozafut/revista/internal/upload"
)

func newUploadRouter(t *testing.T, maxBytes int64) (http.Handler, string) {
	t.Helper()
	dir := t.TempDir()
	m, err := upload.New(upload.Config{Dir: dir, MaxBytes: maxBytes}, quietLogger())
	require.NoError(t, err)

	h := handler.NewUploadHandler(m, quietLogger())
	r := chi.NewRouter()
	r.Post("/upload", h.HandleUpload)
	r.Get("/uploads/{filename}", h.HandleServe)
	return r, dir
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadHandler_Upload(t *testing.T) {
	t.Run("stores the file and the url serves it", func(t *testing.T) {
		router, dir := newUploadRouter(t, 1024)
		content := []byte("\x89PNG fake image bytes")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, multipartRequest(t, "file", "logo songo.png", content))

		require.Equal(t, http.StatusOK, rr.Code)
		res := decode[upload.Result](t, rr)
		assert.True(t, strings.HasPrefix(res.URL, "http://example.com/uploads/"))
		assert.True(t, strings.HasSuffix(res.Filename, "_logo_songo.png"))

		stored, err := os.ReadFile(filepath.Join(dir, res.Filename))
		require.NoError(t, err)
		assert.Equal(t, content, stored)

		get := httptest.NewRecorder()
		router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/uploads/"+res.Filename, nil))
		assert.Equal(t, http.StatusOK, get.Code)
		assert.Equal(t, "image/png", get.Header().Get("Content-Type"))
		assert.Equal(t, content, get.Body.Bytes())
	})

	t.Run("disallowed extension", func(t *testing.T) {
		router, _ := newUploadRouter(t, 1024)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, multipartRequest(t, "file", "script.exe", []byte("MZ")))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "unsupported_type", decode[handler.ErrorResponse](t, rr).Error)
	})

	t.Run("wrong field name", func(t *testing.T) {
		router, _ := newUploadRouter(t, 1024)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, multipartRequest(t, "image", "a.png", []byte("x")))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "file", decode[handler.ErrorResponse](t, rr).Field)
	})

	t.Run("empty filename", func(t *testing.T) {
		router, _ := newUploadRouter(t, 1024)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, multipartRequest(t, "file", "", []byte("x")))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		router, _ := newUploadRouter(t, 1024)

		rr := do(t, router, http.MethodPost, "/upload", `{"file":"a.png"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("too large", func(t *testing.T) {
		router, dir := newUploadRouter(t, 16)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, multipartRequest(t, "file", "big.jpg", bytes.Repeat([]byte("a"), 64)))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestUploadHandler_Serve(t *testing.T) {
	router, _ := newUploadRouter(t, 1024)

	for _, name := range []string{"missing.png", "..", "%2e%2e%2fetc%2fpasswd"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/"+name, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code, name)
	}
}
