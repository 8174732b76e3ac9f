package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/bananaslice/bslice/internal/output"
)

func TestMaskKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"long key", "AIzaSyD-1234567890abcdef", "AIza****************cdef"},
		{"boundary length", "abcdefgh", "********"},
		{"short key", "abc", "***"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskKey(tt.key))
		})
	}
}

func TestMaskKeyNeverRevealsMiddle(t *testing.T) {
	masked := maskKey("sk-secret-middle-part-abcd")
	assert.NotContains(t, masked, "middle")
}

func TestReadKeyFromPipe(t *testing.T) {
	stdin := pipeWith(t, "  abc123\n")
	key, err := readKey(true, false, stdin)
	require.NoError(t, err)
	assert.Equal(t, "abc123", key)
}

func TestReadKeyEmptyPipeFailsUsage(t *testing.T) {
	stdin := pipeWith(t, "   \n")
	_, err := readKey(true, false, stdin)

	cliErr, ok := err.(*output.CLIError)
	require.True(t, ok)
	assert.Equal(t, output.ExitUsage, cliErr.ExitCode)
}

func TestReadKeyNonTTYFallsBackToStdin(t *testing.T) {
	// A pipe is not a terminal, so even without --stdin the key is read
	// from it rather than prompted for.
	stdin := pipeWith(t, "piped-key\n")
	key, err := readKey(false, false, stdin)
	require.NoError(t, err)
	assert.Equal(t, "piped-key", key)
}

func TestResolvedOutputExplicitModes(t *testing.T) {
	for _, mode := range []string{"json", "plain", "rich"} {
		g := &Globals{Output: mode}
		assert.Equal(t, mode, g.ResolvedOutput())
	}
}

func TestResolvedOutputAutoWithoutTTY(t *testing.T) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		t.Skip("stdout is a terminal")
	}
	g := &Globals{Output: "auto"}
	assert.Equal(t, "plain", g.ResolvedOutput())
}

// pipeWith returns the read end of a pipe pre-filled with content.
func pipeWith(t *testing.T, content string) *os.File {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })

	_, err = w.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return r
}
