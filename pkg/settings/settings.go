// Package settings reads the application's key-value settings file (the
// .env-style file the deployed service is configured from). The file is a
// read-only collaborator: greenlight looks values up by key and never
// writes to it.
package settings

import (
	"fmt"
	"os"
	"strings"
)

// Settings is a parsed settings file.
type Settings struct {
	values map[string]string
}

// Source is the lookup surface checks depend on.
type Source interface {
	Lookup(key string) (string, bool)
}

// Load reads and parses an env-style KEY=VALUE file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // intentional: reading the operator's settings file
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse parses settings file content. Blank lines and '#' comments are
// ignored; values may be wrapped in single or double quotes. Later keys
// override earlier ones, matching how the deployed service reads the file.
func Parse(content string) *Settings {
	s := &Settings{values: make(map[string]string)}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		s.values[key] = unquote(strings.TrimSpace(value))
	}

	return s
}

// Lookup returns the value for key and whether it was present.
func (s *Settings) Lookup(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Len returns the number of keys parsed.
func (s *Settings) Len() int {
	return len(s.values)
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
