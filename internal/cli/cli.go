// Package cli implements the sheetlink command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log. All
// commands support --verbose (-v) for debug-level logging and --config to
// point at an alternative TOML configuration file.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/SheetLink/internal/model"
	"github.com/piwi3910/SheetLink/internal/project"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		ConfigPath: project.DefaultConfigPath(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "sheetlink",
		Short: "SheetLink places continuation cutlines across multi-sheet drawings",
		Long: `SheetLink reads an ordered sheet set of DXF drawings and adds cutlines
marking where each sheet continues onto its neighbours, annotated with the
sheet to consult next.`,
		Version:      Version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&c.ConfigPath, "config", c.ConfigPath, "path to the TOML configuration file")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.configCommand())

	return root
}

// loadConfig reads the configuration file, falling back to defaults.
// A configured log level is applied unless verbose logging is already on.
func (c *CLI) loadConfig() (model.AppConfig, error) {
	cfg, err := project.LoadAppConfig(c.ConfigPath)
	if err != nil {
		return model.AppConfig{}, err
	}
	if c.Logger.GetLevel() != log.DebugLevel && cfg.LogLevel != "" {
		if level, err := log.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil {
			c.Logger.SetLevel(level)
		} else {
			c.Logger.Warn("Ignoring unknown log level", "level", cfg.LogLevel)
		}
	}
	return cfg, nil
}
