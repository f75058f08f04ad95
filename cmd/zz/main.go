package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/zugzug/internal"
	"github.com/starford/zugzug/internal/apperr"
	pkgconfig "github.com/starford/zugzug/pkg/config"
)

var version = "0.1.0"

// openApp loads configuration from the global flags and opens the registry.
func openApp(cmd *cli.Command) (*internal.App, error) {
	cfg := internal.NewDefaultConfig()

	if path := cmd.String("config"); path != "" {
		if err := pkgconfig.Load(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if _, err := pkgconfig.LoadOptional(internal.DefaultConfigPath(), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if store := cmd.String("store"); store != "" {
		cfg.Store.Path = store
	}
	if level := cmd.String("log-level"); level != "" {
		if err := cfg.App.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}

	root := cmd.Root()
	return internal.New(
		internal.WithConfig(cfg),
		internal.WithOutput(root.Writer, root.ErrWriter),
	)
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "zz",
		Usage:   "Manage temporary working directories",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "$XDG_CONFIG_HOME/zz/config.yaml if present",
				Sources:     cli.EnvVars("ZZ_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:        "store",
				Aliases:     []string{"s"},
				Usage:       "Path to the bucket registry file",
				DefaultText: "~/" + internal.StoreFileName,
				Sources:     cli.EnvVars("ZZ_STORE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("ZZ_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			bucketCommand(),
			lsCommand(),
			mkdirCommand(),
			watchCommand(),
		},
	}
}

func main() {
	cmd := newCommand()

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Debug("command failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "zz: %v\n", err)
		os.Exit(apperr.ExitCode(err))
	}
}
