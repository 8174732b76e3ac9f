package cli

import (
	"os"

	"golang.org/x/term"
)

// Globals holds global flags available to all commands
type Globals struct {
	Output    string `help:"Output format" default:"auto" enum:"json,plain,rich,auto" short:"o" env:"BSLICE_OUTPUT"`
	Verbose   bool   `help:"Verbose output" short:"v" env:"BSLICE_VERBOSE"`
	NoInput   bool   `help:"Disable interactive prompts (fail instead)" env:"BSLICE_NO_INPUT"`
	Serialize bool   `help:"Serialize keychain access through a lock file" env:"BSLICE_SERIALIZE"`
}

// ResolvedOutput returns the effective output mode
// "auto" detects TTY: if stdout is TTY -> rich, else -> plain
func (g *Globals) ResolvedOutput() string {
	if g.Output != "auto" {
		return g.Output
	}

	// Detect if stdout is a TTY
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "rich"
	}

	return "plain"
}
