package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mozafut/revista/internal/apperror"
	"github.com/mozafut/revista/internal/upload"
)

// multipartOverhead is the allowance for multipart boundaries and headers
// on top of the file size limit.
const multipartOverhead = 1 << 20

// UploadHandler accepts image uploads and serves stored files.
type UploadHandler struct {
	uploads *upload.Manager
	logger  *slog.Logger
}

func NewUploadHandler(uploads *upload.Manager, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{uploads: uploads, logger: logger}
}

// HandleUpload stores the multipart field "file".
//
// HTTP: POST /upload
// RESPONSE: 200 {"image_url": "http://host/uploads/<uuid>_<name>.png", ...}
//
// The returned URL is then set on an article or team through the normal
// create or update calls.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploads.MaxBytes()+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, h.logger, h.formError(err))
		return
	}
	defer file.Close()
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	res, err := h.uploads.Save(r.Context(), file, header.Filename, upload.Origin(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *UploadHandler) formError(err error) error {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return apperror.PayloadTooLarge(h.uploads.MaxBytes())
	case errors.Is(err, http.ErrMissingFile):
		return apperror.ValidationFailed("file", "no file sent")
	default:
		return apperror.ValidationFailed("file", "request must be multipart/form-data with a file field")
	}
}

// HandleServe returns a stored file by exact name.
//
// HTTP: GET /uploads/{filename}
func (h *UploadHandler) HandleServe(w http.ResponseWriter, r *http.Request) {
	f, info, err := h.uploads.Open(chi.URLParam(r, "filename"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	defer f.Close()

	// ServeContent sets Content-Type from the extension and handles
	// Range and If-Modified-Since.
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
