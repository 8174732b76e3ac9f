package keystore

import "errors"

// Store is the contract against a secure-storage backend: secrets keyed
// by account name within a service opened ahead of time.
// Implementations return ErrNotFound when the account has no entry.
type Store interface {
	Get(account string) (string, error)
	Set(account, value string) error
	Delete(account string) error
}

// ErrNotFound is returned when the requested secret does not exist.
var ErrNotFound = errors.New("API key not found")

// Identity is the fixed (service, account) pair that keys the stored
// secret in the OS store. It never changes after construction.
type Identity struct {
	Service string
	Account string
}

// DefaultIdentity is the compiled-in identity for the BananaSlice API key.
var DefaultIdentity = Identity{
	Service: "BananaSlice-API",
	Account: "Gemini-Key",
}
