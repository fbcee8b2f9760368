package service

import (
	"fmt"
	"strings"
)

// UpdateMode selects how partial updates (match results and user profiles)
// treat fields missing from the payload.
type UpdateMode string

const (
	// UpdateOverwrite writes NULL over every absent field, and an update
	// of a row that does not exist still reports success. This is the
	// historical behaviour and the default.
	UpdateOverwrite UpdateMode = "overwrite"
	// UpdateMerge keeps the stored value of every absent field and
	// reports NotFound for a missing row.
	UpdateMerge UpdateMode = "merge"
)

// ParseUpdateMode accepts "overwrite" or "merge", case-insensitively. The
// empty string selects UpdateOverwrite.
func ParseUpdateMode(s string) (UpdateMode, error) {
	switch UpdateMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", UpdateOverwrite:
		return UpdateOverwrite, nil
	case UpdateMerge:
		return UpdateMerge, nil
	default:
		return "", fmt.Errorf("unknown update mode %q (want %q or %q)", s, UpdateOverwrite, UpdateMerge)
	}
}
