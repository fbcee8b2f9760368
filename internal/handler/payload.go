package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mozafut/revista/internal/apperror"
)

// maxJSONBytes bounds every JSON request body.
const maxJSONBytes = 1 << 20

// payload is a decoded JSON object kept as raw fields, so handlers can
// tell a missing key from a zero value and a null from a value.
type payload map[string]json.RawMessage

// decodePayload reads the request body as a single JSON object.
func decodePayload(w http.ResponseWriter, r *http.Request) (payload, error) {
	body := http.MaxBytesReader(w, r.Body, maxJSONBytes)

	var p payload
	if err := json.NewDecoder(body).Decode(&p); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return nil, apperror.PayloadTooLarge(maxJSONBytes)
		case errors.Is(err, io.EOF):
			return nil, apperror.ValidationFailed("body", "request body is required")
		default:
			return nil, apperror.ValidationFailed("body", "request body must be a JSON object")
		}
	}
	if p == nil {
		// the body was the literal null
		return nil, apperror.ValidationFailed("body", "request body must be a JSON object")
	}
	return p, nil
}

// raw returns the field's JSON text, or nil when it is absent or null.
func (p payload) raw(key string) json.RawMessage {
	v, ok := p[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil
	}
	return v
}

// str returns the field as a string, or nil when absent or null.
func (p payload) str(key string) (*string, error) {
	v := p.raw(key)
	if v == nil {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil, apperror.ValidationFailed(key, key+" must be a string")
	}
	return &s, nil
}

// integer returns the field as an int, or nil when absent or null. Whole
// JSON numbers and strings holding a whole number are both accepted, since
// HTML forms submit numbers as text.
func (p payload) integer(key string) (*int, error) {
	v := p.raw(key)
	if v == nil {
		return nil, nil
	}
	n, err := parseInt(v)
	if err != nil {
		return nil, apperror.ValidationFailed(key, key+" must be a whole number")
	}
	i := int(n)
	return &i, nil
}

func parseInt(v json.RawMessage) (int64, error) {
	var num json.Number
	if err := json.Unmarshal(v, &num); err != nil {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return 0, err
		}
		num = json.Number(strings.TrimSpace(s))
	}
	if n, err := num.Int64(); err == nil {
		return n, nil
	}
	// 3.0 is fine, 3.5 is not
	f, err := num.Float64()
	if err != nil || f != float64(int64(f)) {
		return 0, errors.New("not a whole number")
	}
	return int64(f), nil
}

// requireStr returns the field or a validation error naming it.
func (p payload) requireStr(key string) (string, error) {
	s, err := p.str(key)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", apperror.ValidationFailed(key, key+" is required")
	}
	return *s, nil
}

// requireInt returns the field or a validation error naming it.
func (p payload) requireInt(key string) (int, error) {
	n, err := p.integer(key)
	if err != nil {
		return 0, err
	}
	if n == nil {
		return 0, apperror.ValidationFailed(key, key+" is required")
	}
	return *n, nil
}

// pathID parses the {id} route parameter. Ids are positive integers; any
// other value cannot name a row, so it is reported as NotFound.
func pathID(r *http.Request, resource string) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NotFound(resource, raw)
	}
	return id, nil
}
