// Package upload stores images sent by clients and serves them back.
//
// Every stored file lives in one flat directory under a name of the form
//
//	<uuid>_<sanitized stem>.<lowercase extension>
//
// so two uploads of "logo.png" never collide, and nothing a client sends
// can point outside the directory.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mozafut/revista/internal/apperror"
)

// DefaultMaxBytes is the upload size limit when none is configured.
const DefaultMaxBytes int64 = 16 << 20

// PathPrefix is where stored files are served from.
const PathPrefix = "/uploads/"

// allowedExtensions is matched against the lowercased text after the last '.'.
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

// Config configures a Manager.
type Config struct {
	// Dir is the upload directory. It is created if missing.
	Dir string
	// BaseURL, when set, prefixes every returned URL instead of the
	// request's own scheme and host. e.g. "https://api.example.com"
	BaseURL string
	// MaxBytes is the largest accepted file. Zero means DefaultMaxBytes.
	MaxBytes int64
}

// Result describes a stored upload.
type Result struct {
	Filename string `json:"filename"`
	URL      string `json:"image_url"`
	Size     int64  `json:"size"`
}

// Manager validates, names, persists and locates uploaded files.
type Manager struct {
	dir      string
	baseURL  string
	maxBytes int64
	logger   *slog.Logger

	// newToken returns the collision-avoiding prefix. Swapped in tests.
	newToken func() string
}

// New creates the upload directory if needed and returns a Manager.
func New(cfg Config, logger *slog.Logger) (*Manager, error) {
	if cfg.Dir == "" {
		return nil, errors.New("upload: directory is required")
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: creating directory: %w", err)
	}

	return &Manager{
		dir:      cfg.Dir,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		maxBytes: cfg.MaxBytes,
		logger:   logger,
		newToken: uuid.NewString,
	}, nil
}

// MaxBytes returns the configured size limit.
func (m *Manager) MaxBytes() int64 {
	return m.maxBytes
}

// Save stores the bytes read from src under a fresh unique name derived
// from filename, and returns the URL the file can be fetched from.
//
// origin is the scheme and host the request arrived on (see Origin); it
// is only used when no BaseURL is configured.
//
// Errors:
//   - ErrValidation when filename is empty
//   - ErrUnsupportedType when the extension is not an allowed image type
//   - ErrPayloadTooLarge when src holds more than MaxBytes; nothing is kept
func (m *Manager) Save(ctx context.Context, src io.Reader, filename, origin string) (*Result, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, apperror.ValidationFailed("file", "no file selected")
	}

	ext, ok := Extension(filename)
	if !ok {
		return nil, apperror.UnsupportedType(ext)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stem := SanitizeFilename(filename[:strings.LastIndex(filename, ".")])
	if stem == "" {
		stem = "upload"
	}
	name := m.newToken() + "_" + stem + "." + ext
	path := filepath.Join(m.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("upload: creating %s: %w", name, err)
	}

	// Read one byte past the limit so an oversized file is detectable
	// without buffering it.
	n, err := io.Copy(f, io.LimitReader(src, m.maxBytes+1))
	closeErr := f.Close()

	if err == nil && n > m.maxBytes {
		err = apperror.PayloadTooLarge(m.maxBytes)
	}
	if err == nil && closeErr != nil {
		err = fmt.Errorf("upload: closing %s: %w", name, closeErr)
	}
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			m.logger.Warn("removing partial upload",
				slog.String("filename", name),
				slog.String("error", rmErr.Error()),
			)
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, apperror.PayloadTooLarge(m.maxBytes)
		}
		if errors.Is(err, apperror.ErrPayloadTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("upload: writing %s: %w", name, err)
	}

	res := &Result{
		Filename: name,
		URL:      m.URL(origin, name),
		Size:     n,
	}
	m.logger.Info("image uploaded",
		slog.String("filename", name),
		slog.Int64("bytes", n),
	)
	return res, nil
}

// URL returns the public address of a stored file.
func (m *Manager) URL(origin, name string) string {
	base := m.baseURL
	if base == "" {
		base = strings.TrimRight(origin, "/")
	}
	return base + PathPrefix + name
}

// Open returns the stored file with exactly this name. Anything that is
// not a plain file directly inside the upload directory is NotFound.
// The caller closes the file.
func (m *Manager) Open(name string) (*os.File, fs.FileInfo, error) {
	if !validStoredName(name) {
		return nil, nil, apperror.NotFound("upload", name)
	}

	f, err := os.Open(filepath.Join(m.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, apperror.NotFound("upload", name)
		}
		return nil, nil, fmt.Errorf("upload: opening %s: %w", name, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("upload: stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, apperror.NotFound("upload", name)
	}
	return f, info, nil
}

func validStoredName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return !strings.ContainsRune(name, 0)
}

// Extension returns the lowercased text after the last '.' of filename
// and whether it is an allowed image type. A name without a '.' has no
// extension.
func Extension(filename string) (string, bool) {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return "", false
	}
	ext := strings.ToLower(filename[i+1:])
	return ext, allowedExtensions[ext]
}

// stripMarks decomposes accented letters and drops the combining marks,
// so "Usuário" becomes "Usuario".
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SanitizeFilename reduces name to ASCII letters, digits, '_', '.' and '-'.
// Path separators and whitespace become '_', everything else outside the
// set is dropped, and leading or trailing '.' and '_' are trimmed. The
// result may be empty.
func SanitizeFilename(name string) string {
	if folded, _, err := transform.String(stripMarks, name); err == nil {
		name = folded
	}
	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r > unicode.MaxASCII:
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_' || r == '.' || r == '-':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "._")
}

// Origin returns "scheme://host" for the request. The scheme is https when
// the connection is TLS, otherwise X-Forwarded-Proto if a proxy set it to
// http or https, otherwise http.
func Origin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	} else if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		switch p := strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0])); p {
		case "http", "https":
			scheme = p
		}
	}
	return scheme + "://" + r.Host
}
