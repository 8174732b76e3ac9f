package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCLIError(t *testing.T) {
	err := NewCLIError(ExitStorage, "keychain unavailable")
	assert.Equal(t, ExitStorage, err.ExitCode)
	assert.Equal(t, "keychain unavailable", err.Message)
	assert.Empty(t, err.Hint)
}

func TestCLIErrorError(t *testing.T) {
	err := &CLIError{Message: "something broke"}
	assert.Equal(t, "something broke", err.Error())
}

func TestCLIErrorWithHint(t *testing.T) {
	err := NewCLIError(ExitNotFound, "API key not found")
	result := err.WithHint("Run: bslice key set")

	// Fluent builder returns same pointer
	assert.Same(t, err, result)
	assert.Equal(t, "Run: bslice key set", err.Hint)
}

func TestCLIErrorImplementsError(t *testing.T) {
	var err error = NewCLIError(ExitGeneral, "test")
	assert.Equal(t, "test", err.Error())
}

func TestExitWithErrorPrintsHint(t *testing.T) {
	var out, errOut bytes.Buffer
	f := newFormatter("plain", &out, &errOut)

	code := ExitWithError(f, NewCLIError(ExitNotFound, "API key not found").WithHint("Run: bslice key set"))

	assert.Equal(t, ExitNotFound, code)
	assert.Contains(t, errOut.String(), "error: API key not found")
	assert.Contains(t, errOut.String(), "hint: Run: bslice key set")
}

func TestExitWithErrorUnknownError(t *testing.T) {
	var out, errOut bytes.Buffer
	f := newFormatter("plain", &out, &errOut)

	code := ExitWithError(f, assert.AnError)

	assert.Equal(t, ExitGeneral, code)
	assert.Equal(t, "error: "+assert.AnError.Error()+"\n", errOut.String())
}
