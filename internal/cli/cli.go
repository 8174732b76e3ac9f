package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/willabides/kongplete"

	"github.com/bananaslice/bslice/internal/config"
	"github.com/bananaslice/bslice/internal/output"
)

// FormatterProvider wraps the formatter interface for Kong binding
type FormatterProvider struct {
	Formatter output.Formatter
}

// CLI is the root command structure
type CLI struct {
	Globals

	Key                KeyCmd                       `cmd:"" help:"Manage the stored API key"`
	Version            VersionCmd                   `cmd:"" help:"Show version information"`
	InstallCompletions kongplete.InstallCompletions `cmd:"" help:"Install shell completions"`
}

// loadConfig loads the preferences file, mapping failures onto the
// config-error exit code.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, output.NewCLIError(output.ExitConfigError, err.Error()).
			WithHint("Check " + config.ConfigPath())
	}
	return cfg, nil
}

// BeforeApply hook runs before any command execution
// It loads config, resolves the output mode, creates the formatter, and
// binds dependencies
func (c *CLI) BeforeApply(ctx *kong.Context) error {
	// Load config from XDG path (returns defaults if missing)
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Resolve output mode: CLI flag > config > auto
	if c.Output == "auto" && cfg.DefaultOutput != "" {
		c.Output = cfg.DefaultOutput
	}

	formatter := &FormatterProvider{
		Formatter: output.New(c.ResolvedOutput()),
	}

	// Bind dependencies to kong context
	ctx.Bind(cfg)
	ctx.Bind(formatter)
	ctx.Bind(&c.Globals)

	return nil
}

// KeyCmd holds API key subcommands
type KeyCmd struct {
	Set    KeySetCmd    `cmd:"" help:"Store the API key in the system keychain"`
	Get    KeyGetCmd    `cmd:"" help:"Print the stored API key"`
	Delete KeyDeleteCmd `cmd:"" help:"Remove the API key from the system keychain"`
	Status KeyStatusCmd `cmd:"" help:"Show whether an API key is stored"`
}

// VersionCmd shows version information
type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *kong.Context) error {
	version := ctx.Model.Vars()["version"]
	fmt.Println("bslice version " + version)
	return nil
}
