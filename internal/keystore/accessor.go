package keystore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// StorageAccessError reports that the OS secure-storage subsystem could
// not be reached or refused a write. It is surfaced unchanged and never
// retried.
type StorageAccessError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *StorageAccessError) Error() string {
	return fmt.Sprintf("failed to access system keychain: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying backend failure.
func (e *StorageAccessError) Unwrap() error {
	return e.Err
}

// Opener acquires a fresh backend handle for a service. The accessor
// opens a handle per operation and never caches it across calls.
type Opener func(service string) (Store, error)

// VerifyFunc receives the outcome of the read-back check that follows a
// successful Store. A nil error means the value read back intact. The
// outcome never changes the result of Store itself.
type VerifyFunc func(err error)

// Accessor maps one fixed Identity to a single secret held in the OS
// secure-storage subsystem. Every operation is synchronous and
// stateless; concurrent calls go straight to the backend, which is the
// only arbiter unless WithLock is used.
type Accessor struct {
	id     Identity
	open   Opener
	verify VerifyFunc
	lock   *flock.Flock
	logf   func(format string, args ...any)
}

// Option configures an Accessor.
type Option func(*Accessor)

// WithOpener replaces the backend opener. Tests use this to substitute
// an in-memory store for the OS keyring.
func WithOpener(open Opener) Option {
	return func(a *Accessor) { a.open = open }
}

// WithVerify replaces the handler for the post-store read-back check.
func WithVerify(v VerifyFunc) Option {
	return func(a *Accessor) { a.verify = v }
}

// WithLock serializes operations through an advisory file lock at path.
// The OS store already arbitrates concurrent access on its own terms;
// this layers a named lock above it for callers that want strict
// cross-process ordering.
func WithLock(path string) Option {
	return func(a *Accessor) { a.lock = flock.New(path) }
}

// WithLogf replaces the diagnostic sink. Diagnostics never include the
// secret value.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(a *Accessor) { a.logf = logf }
}

// New returns an accessor for the given identity. With no options it
// talks to the OS keyring and logs diagnostics to stderr.
func New(id Identity, opts ...Option) *Accessor {
	a := &Accessor{
		id:   id,
		open: openKeyring,
	}
	a.logf = func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
	a.verify = func(err error) {
		if err != nil {
			a.logf("API key saved but verification failed: %v", err)
		}
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Identity returns the fixed identity this accessor operates on.
func (a *Accessor) Identity() Identity {
	return a.id
}

// Store writes secret to the entry for the fixed identity, overwriting
// any prior value, then reads it back as a best-effort check whose
// outcome goes to the verify hook only. Returns *StorageAccessError
// when the backend cannot be opened or refuses the write.
func (a *Accessor) Store(secret string) error {
	unlock, err := a.acquire()
	if err != nil {
		return &StorageAccessError{Op: "lock", Err: err}
	}
	defer unlock()

	st, err := a.open(a.id.Service)
	if err != nil {
		return &StorageAccessError{Op: "open", Err: err}
	}
	if err := st.Set(a.id.Account, secret); err != nil {
		return &StorageAccessError{Op: "set", Err: err}
	}

	got, err := st.Get(a.id.Account)
	switch {
	case err != nil:
		a.verify(fmt.Errorf("read-back failed: %w", err))
	case got != secret:
		// Report the mismatch, never the values.
		a.verify(errors.New("read-back returned a different value"))
	default:
		a.verify(nil)
	}

	return nil
}

// Retrieve reads the entry for the fixed identity and trims surrounding
// whitespace. Every failure mode collapses into ErrNotFound: true
// absence, backend read errors, and values that are empty after
// trimming. Backend errors still reach the diagnostic sink.
func (a *Accessor) Retrieve() (string, error) {
	unlock, err := a.acquire()
	if err != nil {
		a.logf("keychain check: %v", err)
		return "", ErrNotFound
	}
	defer unlock()

	st, err := a.open(a.id.Service)
	if err != nil {
		a.logf("keychain check: %v", err)
		return "", ErrNotFound
	}

	val, err := st.Get(a.id.Account)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			a.logf("keychain check: %v", err)
		}
		return "", ErrNotFound
	}

	val = strings.TrimSpace(val)
	if val == "" {
		return "", ErrNotFound
	}
	return val, nil
}

// Delete removes the entry for the fixed identity. A backend that
// cannot be opened at all is a *StorageAccessError; once a handle
// exists the delete result is ignored, so an absent entry (or the OS
// failing to remove one) still reports success.
func (a *Accessor) Delete() error {
	unlock, err := a.acquire()
	if err != nil {
		return &StorageAccessError{Op: "lock", Err: err}
	}
	defer unlock()

	st, err := a.open(a.id.Service)
	if err != nil {
		return &StorageAccessError{Op: "open", Err: err}
	}

	if err := st.Delete(a.id.Account); err != nil && !errors.Is(err, ErrNotFound) {
		a.logf("keychain delete: %v", err)
	}
	return nil
}

// Exists reports whether Retrieve would succeed, by calling it and
// discarding the value.
func (a *Accessor) Exists() bool {
	_, err := a.Retrieve()
	return err == nil
}

// acquire takes the advisory lock when one is configured. The returned
// func releases it.
func (a *Accessor) acquire() (func(), error) {
	if a.lock == nil {
		return func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	locked, err := a.lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to acquire lock: timeout")
	}
	return func() { _ = a.lock.Unlock() }, nil
}
