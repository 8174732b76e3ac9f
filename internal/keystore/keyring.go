package keystore

import (
	"fmt"
	"path/filepath"

	"github.com/99designs/keyring"
	"github.com/adrg/xdg"
)

// keyringStore implements the Store interface using the OS keyring.
type keyringStore struct {
	ring keyring.Keyring
}

// openKeyring opens the OS keyring for the given service name.
// WSL and headless Linux can't reach a Secret Service daemon reliably,
// so there the allowed backends are restricted to the library's
// password-protected file backend.
func openKeyring(service string) (Store, error) {
	cfg := keyring.Config{
		ServiceName:              service,
		KeychainTrustApplication: true, // macOS: don't prompt every access
		FileDir:                  filepath.Join(xdg.DataHome, "bslice", "keyring"),
		FilePasswordFunc:         keyring.TerminalPrompt,
	}

	if IsWSL() || IsHeadless() {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}

	return &keyringStore{ring: ring}, nil
}

// Get retrieves the secret stored under account.
func (s *keyringStore) Get(account string) (string, error) {
	item, err := s.ring.Get(account)
	if err != nil {
		if err == keyring.ErrKeyNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("keyring get failed: %w", err)
	}
	return string(item.Data), nil
}

// Set stores a secret under account, overwriting any prior value.
func (s *keyringStore) Set(account, value string) error {
	item := keyring.Item{
		Key:  account,
		Data: []byte(value),
	}
	if err := s.ring.Set(item); err != nil {
		return fmt.Errorf("keyring set failed: %w", err)
	}
	return nil
}

// Delete removes the secret stored under account.
func (s *keyringStore) Delete(account string) error {
	if err := s.ring.Remove(account); err != nil {
		if err == keyring.ErrKeyNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("keyring delete failed: %w", err)
	}
	return nil
}
