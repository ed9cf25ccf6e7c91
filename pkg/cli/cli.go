// Package cli provides the command-line interface for flutter-driver.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/flutter-driver/pkg/config"
	"github.com/devicelab-dev/flutter-driver/pkg/logger"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to config.yaml (default: ./config.yaml, then $FLUTTER_DRIVER_HOME)",
		EnvVars: []string{"FLUTTER_DRIVER_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "log-file",
		Usage:   "Write logs to this file",
		EnvVars: []string{"FLUTTER_DRIVER_LOG_FILE"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable verbose logging",
		EnvVars: []string{"FLUTTER_DRIVER_VERBOSE"},
	},
	&cli.BoolFlag{
		Name:    "pretty",
		Usage:   "Indent JSON output",
		EnvVars: []string{"FLUTTER_DRIVER_PRETTY"},
	},
	&cli.IntFlag{
		Name:    "timeout",
		Usage:   "Default command timeout in ms for commands without one (0 = none)",
		EnvVars: []string{"FLUTTER_DRIVER_TIMEOUT"},
	},
}

const settingsKey = "settings"

// settings is the effective configuration after merging config file and flags.
type settings struct {
	timeout time.Duration
	pretty  bool
}

// NewApp builds the CLI application writing to out and errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:    "flutter-driver",
		Usage:   "Encode and decode Flutter driver commands",
		Version: Version,
		Description: `flutter-driver converts YAML command scripts into Flutter driver
wire maps and decodes wire maps back into readable commands.

Examples:
  flutter-driver encode login.yaml
  flutter-driver validate scripts/
  flutter-driver --timeout 5000 --pretty encode flows/*.yaml
  echo '{"kind":"tap","finderType":"ByText","text":"OK"}' | flutter-driver decode
  flutter-driver result --kind get_text response.json`,
		Flags:     GlobalFlags,
		Writer:    out,
		ErrWriter: errOut,
		Before:    setup,
		After: func(c *cli.Context) error {
			logger.Close()
			return nil
		},
		Commands: []*cli.Command{
			encodeCommand,
			validateCommand,
			decodeCommand,
			resultCommand,
			findersCommand,
		},
	}
}

// Execute runs the CLI.
func Execute() {
	app := NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the config file, applies flag overrides and starts the logger.
func setup(c *cli.Context) error {
	cfg, err := config.Resolve(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if c.IsSet("timeout") {
		cfg.DefaultTimeoutMs = c.Int("timeout")
	}
	if c.IsSet("pretty") {
		cfg.Pretty = c.Bool("pretty")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
	if c.IsSet("verbose") {
		cfg.Verbose = c.Bool("verbose")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.LogFile != "" {
		if err := logger.Init(cfg.LogFile); err != nil {
			return err
		}
	}
	logger.SetVerbose(cfg.Verbose)
	logger.Info("flutter-driver %s", Version)

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[settingsKey] = &settings{
		timeout: cfg.DefaultTimeout(),
		pretty:  cfg.Pretty,
	}
	return nil
}

func getSettings(c *cli.Context) *settings {
	if s, ok := c.App.Metadata[settingsKey].(*settings); ok {
		return s
	}
	return &settings{}
}
