// Package validate provides shared validation functions.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hay-kot/criterio"
)

// MaxTrackNameLength bounds track names so they fit table output and the
// kv key space.
const MaxTrackNameLength = 128

// TrackName validates a track name: non-empty after trimming whitespace,
// no path separators or control characters, at most MaxTrackNameLength runes.
func TrackName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	if n := utf8.RuneCountInString(name); n > MaxTrackNameLength {
		return fmt.Errorf("name is %d characters, max %d", n, MaxTrackNameLength)
	}
	if strings.ContainsAny(name, `/\`) {
		return errors.New("name must not contain path separators")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return errors.New("name must not contain control characters")
		}
	}
	return nil
}

// TrackNameField returns a criterio validator for track names.
func TrackNameField(field, name string) error {
	return criterio.Run(field, name, TrackName)
}
