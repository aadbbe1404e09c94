// Package keyring provides a smartscrape.CredentialSource backed by the
// operating system's secrets store (macOS Keychain, Secret Service,
// Windows Credential Manager).
package keyring

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/smartscrape"
	gokeyring "github.com/zalando/go-keyring"
)

// DefaultService is the keyring service name credentials are stored under.
const DefaultService = "smartscrape"

// Ensure Source implements smartscrape.CredentialSource at compile time.
var _ smartscrape.CredentialSource = (*Source)(nil)

// Source looks up credentials stored in the OS keyring. Each credential key
// is a keyring entry (user) under the service name.
type Source struct {
	service string
}

// NewSource creates a Source for the given service name.
// An empty service uses DefaultService.
func NewSource(service string) *Source {
	if service == "" {
		service = DefaultService
	}
	return &Source{service: service}
}

// Service returns the keyring service name.
func (s *Source) Service() string {
	return s.service
}

// Lookup returns the secret stored under key.
func (s *Source) Lookup(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, err := gokeyring.Get(s.service, key)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return "", smartscrape.Errorf(smartscrape.ENOTFOUND, "secret %q not found in keyring %q", key, s.service)
	} else if err != nil {
		return "", fmt.Errorf("reading keyring: %w", err)
	}
	return v, nil
}

// Set stores value under key, replacing any previous value.
func (s *Source) Set(key, value string) error {
	if key == "" {
		return smartscrape.Errorf(smartscrape.EINVALID, "secret key required")
	}
	if err := gokeyring.Set(s.service, key, value); err != nil {
		return fmt.Errorf("writing keyring: %w", err)
	}
	return nil
}

// Delete removes the secret stored under key.
// Returns ENOTFOUND if no secret is stored under key.
func (s *Source) Delete(key string) error {
	err := gokeyring.Delete(s.service, key)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return smartscrape.Errorf(smartscrape.ENOTFOUND, "secret %q not found in keyring %q", key, s.service)
	} else if err != nil {
		return fmt.Errorf("deleting from keyring: %w", err)
	}
	return nil
}
