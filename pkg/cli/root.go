// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/nataliastanko/recipes-api/pkg/config"
	"github.com/nataliastanko/recipes-api/pkg/logging"
	"github.com/nataliastanko/recipes-api/pkg/serializer"
)

const (
	name           = "recipes"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Flags are built per command so that parsed values never leak between trees.
func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported values: %v)", serializer.SupportedFormats()),
	}
}

type configKey struct{}

// Execute runs the CLI with the process arguments and exits non-zero on error.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Command().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// Command returns the root command with every subcommand attached.
func Command() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		Usage:                 "Recipes service and CSV store administration",
		EnableShellCompletion: true,
		ShellComplete:         commandLister,
		Description: `recipes manages the recipe catalogue stored in a CSV file and runs the
HTTP service in front of it.

The storage file is selected from the environment (dev, test, prod):
<storage-dir>/data_<env>.csv, unless --storage names a file directly.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Value: config.DefaultEnvFile,
				Usage: "Path to a dotenv file, ignored when missing",
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: fmt.Sprintf("Environment (supported values: %v)", config.Environments()),
			},
			&cli.StringFlag{
				Name:    "storage",
				Aliases: []string{"s"},
				Usage:   "Path to the CSV storage file, overrides the environment default",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Before: loadConfig,
		Commands: []*cli.Command{
			serveCmd(),
			initCmd(),
			listCmd(),
			getCmd(),
			createCmd(),
			updateCmd(),
			deleteCmd(),
			voteCmd(),
			exportCmd(),
			importCmd(),
			fieldsCmd(),
		},
	}
}

// loadConfig resolves the configuration once for the whole command tree and
// installs the default logger.
func loadConfig(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("config"), cmd.String("env-file"))
	if err != nil {
		return ctx, err
	}

	if v := cmd.String("env"); v != "" {
		cfg.Env = v
	}
	if v := cmd.String("storage"); v != "" {
		cfg.StoragePath = v
	}
	if v := cmd.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return ctx, err
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.EffectiveLogLevel())
	slog.Debug("configuration loaded",
		"env", cfg.Env,
		"storage", cfg.StorageFile(),
		"logLevel", cfg.EffectiveLogLevel())

	return context.WithValue(ctx, configKey{}, cfg), nil
}

func configFrom(ctx context.Context) (*config.Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok || cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	return cfg, nil
}

// commandLister prints the visible subcommands, one per line, for shell completion.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	for _, c := range cmd.Commands {
		if c.Hidden {
			continue
		}
		fmt.Fprintln(os.Stdout, c.Name)
	}
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %v", f, serializer.SupportedFormats())
	}
	return f, nil
}

// write serializes data according to the --format and --output flags.
func write(ctx context.Context, cmd *cli.Command, data any, opts ...serializer.WriterOption) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	var ser serializer.Serializer = serializer.NewFileWriterOrStdout(format, cmd.String("output"), opts...)
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	return ser.Serialize(ctx, data)
}
