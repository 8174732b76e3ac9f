package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/bananaslice/bslice/internal/config"
	"github.com/bananaslice/bslice/internal/keystore"
	"github.com/bananaslice/bslice/internal/output"
)

// newAccessor builds the keychain accessor for CLI commands.
func newAccessor(globals *Globals) *keystore.Accessor {
	opts := []keystore.Option{}
	if globals.Serialize {
		opts = append(opts, keystore.WithLock(filepath.Join(config.DataDir(), "keystore.lock")))
	}
	if !globals.Verbose {
		// Keychain diagnostics are noise unless asked for
		opts = append(opts, keystore.WithLogf(func(string, ...any) {}))
	}
	return keystore.New(keystore.DefaultIdentity, opts...)
}

// KeySetCmd implements the key set command
type KeySetCmd struct {
	Stdin bool `help:"Read the API key from stdin instead of prompting" short:"s"`
}

// Run executes the set command
func (cmd *KeySetCmd) Run(fp *FormatterProvider, globals *Globals, cfg *config.Config) error {
	key, err := readKey(cmd.Stdin, globals.NoInput, os.Stdin)
	if err != nil {
		return err
	}

	acc := newAccessor(globals)
	if err := acc.Store(key); err != nil {
		return storageError(err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(os.Stderr, "✓ API key saved to system keychain")
	}
	return nil
}

// readKey obtains the API key from stdin or an interactive no-echo prompt.
func readKey(fromStdin, noInput bool, stdin *os.File) (string, error) {
	interactive := term.IsTerminal(int(stdin.Fd()))

	if fromStdin || !interactive {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", output.NewCLIError(output.ExitGeneral, fmt.Sprintf("Failed to read API key from stdin: %v", err))
		}
		key := strings.TrimSpace(string(data))
		if key == "" {
			return "", output.NewCLIError(output.ExitUsage, "No API key provided on stdin")
		}
		return key, nil
	}

	if noInput {
		return "", output.NewCLIError(output.ExitUsage, "Interactive prompt disabled").
			WithHint("Pipe the key in: echo $KEY | bslice key set --stdin")
	}

	fmt.Fprint(os.Stderr, "API key: ")
	data, err := term.ReadPassword(int(stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", output.NewCLIError(output.ExitGeneral, fmt.Sprintf("Failed to read API key: %v", err))
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", output.NewCLIError(output.ExitUsage, "No API key provided")
	}
	return key, nil
}

// KeyGetCmd implements the key get command
type KeyGetCmd struct {
	Show bool `help:"Print the key in full instead of masked"`
}

// Run executes the get command
func (cmd *KeyGetCmd) Run(fp *FormatterProvider, globals *Globals) error {
	acc := newAccessor(globals)

	key, err := acc.Retrieve()
	if err != nil {
		return output.NewCLIError(output.ExitNotFound, "API key not found").
			WithHint("Run: bslice key set")
	}

	if !cmd.Show {
		key = maskKey(key)
	}
	return fp.Formatter.Print(key)
}

// maskKey keeps the first and last four characters visible.
// Short keys are masked entirely.
func maskKey(key string) string {
	const visible = 4
	if len(key) <= visible*2 {
		return strings.Repeat("*", len(key))
	}
	return key[:visible] + strings.Repeat("*", len(key)-visible*2) + key[len(key)-visible:]
}

// KeyDeleteCmd implements the key delete command
type KeyDeleteCmd struct{}

// Run executes the delete command. Deleting an absent key succeeds.
func (cmd *KeyDeleteCmd) Run(fp *FormatterProvider, globals *Globals, cfg *config.Config) error {
	acc := newAccessor(globals)
	if err := acc.Delete(); err != nil {
		return storageError(err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(os.Stderr, "✓ API key removed from system keychain")
	}
	return nil
}

// KeyStatusCmd implements the key status command
type KeyStatusCmd struct{}

// keyStatus is the status view printed by key status
type keyStatus struct {
	Service string
	Account string
	Present bool
}

// Run executes the status command
func (cmd *KeyStatusCmd) Run(fp *FormatterProvider, globals *Globals) error {
	acc := newAccessor(globals)
	id := acc.Identity()

	return fp.Formatter.Print(keyStatus{
		Service: id.Service,
		Account: id.Account,
		Present: acc.Exists(),
	})
}

// storageError maps accessor failures onto CLI exit codes.
func storageError(err error) error {
	var sae *keystore.StorageAccessError
	if errors.As(err, &sae) {
		return output.NewCLIError(output.ExitStorage, err.Error()).
			WithHint("Check that your OS keychain or secret service is available")
	}
	return output.NewCLIError(output.ExitGeneral, err.Error())
}
