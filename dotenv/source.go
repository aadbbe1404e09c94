// Package dotenv provides a smartscrape.CredentialSource backed by the
// process environment and .env files.
package dotenv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fwojciec/smartscrape"
	"github.com/joho/godotenv"
)

// DefaultPath is the .env file read when no path is given.
const DefaultPath = ".env"

// Ensure Source implements smartscrape.CredentialSource at compile time.
var _ smartscrape.CredentialSource = (*Source)(nil)

// Source is an immutable snapshot of environment variables taken at
// start-up. It never modifies the process environment.
type Source struct {
	vars map[string]string
}

// NewSource creates a Source from a map of variables.
func NewSource(vars map[string]string) *Source {
	s := &Source{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		s.vars[k] = v
	}
	return s
}

// Load builds a Source from environ overlaid on the given .env files.
// With no paths, DefaultPath is read if it exists. Explicit paths must exist.
func Load(environ []string, paths ...string) (*Source, error) {
	if len(paths) == 0 {
		s, err := FromEnviron(environ, DefaultPath)
		if errors.Is(err, fs.ErrNotExist) {
			return FromEnviron(environ)
		}
		return s, err
	}
	return FromEnviron(environ, paths...)
}

// FromEnviron builds a Source from environ ("KEY=value" entries) and the
// given .env files. Earlier files win over later ones, and environ wins
// over every file, matching godotenv.Load.
func FromEnviron(environ []string, paths ...string) (*Source, error) {
	vars := make(map[string]string)

	for i := len(paths) - 1; i >= 0; i-- {
		values, err := godotenv.Read(paths[i])
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", paths[i], err)
		}
		for k, v := range values {
			vars[k] = v
		}
	}

	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = v
	}

	return &Source{vars: vars}, nil
}

// Lookup returns the value of the variable named key.
func (s *Source) Lookup(_ context.Context, key string) (string, error) {
	v, ok := s.vars[key]
	if !ok {
		return "", smartscrape.Errorf(smartscrape.ENOTFOUND, "environment variable %q not set", key)
	}
	return v, nil
}
