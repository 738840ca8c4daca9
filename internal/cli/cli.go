// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/relaxflow/internal/app"
	"github.com/specialistvlad/relaxflow/internal/hclconfig"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments and loads the configuration they
// point at. It returns the validated app.Config, a boolean indicating if
// the program should exit cleanly, or an error. Invalid usage is reported
// as an *ExitError with code 2.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("relaxflow", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
relaxflow - Submit VASP structure optimizations to a FireWorks launchpad.

Usage:
  relaxflow [options] [CONFIG_PATH]

Arguments:
  CONFIG_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the submission config file or directory.")
	cFlag := flagSet.String("c", "", "Path to the submission config file or directory (shorthand).")
	launchpadFlag := flagSet.String("launchpad", "", "Launchpad file. Defaults to the one FW_CONFIG_FILE points at.")
	apiKeyFlag := flagSet.String("api-key", "", "Materials Project API key. Defaults to MP_API_KEY.")
	fworkerFlag := flagSet.String("fworker", "", "FireWorker file used to resolve placeholders when rendering.")
	renderDirFlag := flagSet.String("render-dir", "", "Write the VASP inputs to this directory instead of submitting.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *configFlag != "" {
		path = *configFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Config path determined.", "path", path)

	if path == "" {
		slog.Debug("No config path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	settings, err := hclconfig.Load(context.Background(), path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg := fromSettings(settings)
	cfg.LogFormat = logFormat
	cfg.LogLevel = logLevel

	// Only flags given explicitly override the file.
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "launchpad":
			cfg.LaunchpadFilePath = *launchpadFlag
		case "api-key":
			cfg.APIKey = *apiKeyFlag
		case "fworker":
			cfg.FWorkerFilePath = *fworkerFlag
		case "render-dir":
			cfg.RenderDir = *renderDirFlag
		}
	})

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config_path", path)
	return config, false, nil
}

func fromSettings(s *hclconfig.Settings) app.Config {
	var cfg app.Config
	if s.UseAPIInterface != nil {
		cfg.UseAPIInterface = *s.UseAPIInterface
	}
	if s.MPStructureID != nil {
		cfg.MPStructureID = *s.MPStructureID
	}
	if s.POSCARPath != nil {
		cfg.POSCARPath = *s.POSCARPath
	}
	if s.IsConductor != nil {
		cfg.IsConductor = *s.IsConductor
	}
	if s.LaunchpadFile != nil {
		cfg.LaunchpadFilePath = *s.LaunchpadFile
	}
	if s.APIKey != nil {
		cfg.APIKey = *s.APIKey
	}
	if s.FWorkerFile != nil {
		cfg.FWorkerFilePath = *s.FWorkerFile
	}
	if s.RenderDir != nil {
		cfg.RenderDir = *s.RenderDir
	}
	cfg.CustomIncarSettings = s.CustomIncarSettings
	return cfg
}
