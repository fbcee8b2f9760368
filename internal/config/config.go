// Package config loads server settings from the environment.
//
// An optional .env file is read first; variables already set in the
// process environment take precedence over it. Settings are then parsed
// into Config and validated once. Components receive the values they need
// through their constructors and never read the environment themselves.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Accepted values of UPDATE_MODE and CREDENTIAL_SCHEME. The server maps
// them onto its update strategy and password verifier.
var (
	updateModes       = []string{"overwrite", "merge"}
	credentialSchemes = []string{"plaintext", "bcrypt"}
)

// Config is every setting the server reads.
type Config struct {
	Port    int    `env:"PORT"     envDefault:"8000"`
	BaseURL string `env:"BASE_URL"`
	Debug   bool   `env:"DEBUG"`
	Env     string `env:"APP_ENV"  envDefault:"production"`

	DBPath         string `env:"DB_PATH"          envDefault:"data/revista.db"`
	UploadDir      string `env:"UPLOAD_DIR"       envDefault:"uploads"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"16777216"`

	UpdateMode       string `env:"UPDATE_MODE"       envDefault:"overwrite"`
	CredentialScheme string `env:"CREDENTIAL_SCHEME" envDefault:"plaintext"`
	ResultTeamCheck  bool   `env:"RESULT_TEAM_CHECK"`
	SeedData         bool   `env:"SEED_DATA"         envDefault:"true"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads the given .env files (".env" when none are named), then the
// process environment, and validates the result. Missing .env files are
// not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: loading %s: %w", f, err)
		}
	}
	return parse(env.Options{})
}

// FromMap parses settings from vars instead of the process environment.
func FromMap(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.CORSAllowedOrigins = trimAll(cfg.CORSAllowedOrigins)
	cfg.UpdateMode = strings.ToLower(strings.TrimSpace(cfg.UpdateMode))
	cfg.CredentialScheme = strings.ToLower(strings.TrimSpace(cfg.CredentialScheme))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config: PORT %d out of range", c.Port)
	}
	if c.DBPath == "" {
		return errors.New("config: DB_PATH must not be empty")
	}
	if c.UploadDir == "" {
		return errors.New("config: UPLOAD_DIR must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("config: MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: BASE_URL %q must be an absolute URL", c.BaseURL)
		}
	}
	if err := oneOf("UPDATE_MODE", c.UpdateMode, updateModes); err != nil {
		return err
	}
	if err := oneOf("CREDENTIAL_SCHEME", c.CredentialScheme, credentialSchemes); err != nil {
		return err
	}
	return nil
}

// oneOf accepts value when it is empty (the server default applies) or
// matches an allowed entry ignoring case.
func oneOf(key, value string, allowed []string) error {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" || slices.Contains(allowed, v) {
		return nil
	}
	return fmt.Errorf("config: %s %q must be one of %s", key, value, strings.Join(allowed, ", "))
}

// DebugEnabled reports whether verbose logging is wanted: DEBUG=true or
// APP_ENV=development.
func (c Config) DebugEnabled() bool {
	return c.Debug || strings.EqualFold(c.Env, "development")
}

// Addr is the listen address for the configured port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
