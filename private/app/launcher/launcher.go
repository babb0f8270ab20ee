// Copyright 2024 The babeld Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package launcher sets up the process harness of a daemon: command line,
// configuration loading, logging, signal handling. It then hands control to
// the application's Main function.
package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/babelrouting/babeld/pkg/log"
	"github.com/babelrouting/babeld/pkg/metrics"
	"github.com/babelrouting/babeld/pkg/private/serrors"
	"github.com/babelrouting/babeld/private/app/command"
	libconfig "github.com/babelrouting/babeld/private/config"
	"github.com/babelrouting/babeld/private/env"
)

// Configuration keys read by the launcher itself.
const (
	cfgConfigFile                = "config"
	cfgGeneralID                 = "general.id"
	cfgLogConsoleLevel           = "log.console.level"
	cfgLogConsoleFormat          = "log.console.format"
	cfgLogConsoleStacktraceLevel = "log.console.stacktrace_level"
	cfgLogConsoleDisableCaller   = "log.console.disable_caller"
)

// EnvPrefix is the prefix of environment variables that override launcher
// configuration keys, e.g. BABELD_LOG_CONSOLE_LEVEL.
const EnvPrefix = "BABELD"

// Application models a daemon application.
type Application struct {
	// TOMLConfig holds the Go data structure for the application-specific
	// TOML configuration.
	TOMLConfig libconfig.Config

	// ShortName is the short name of the application. If empty, the executable
	// name is used.
	ShortName string

	// Main is the custom logic of the application. If nil, no custom logic is
	// executed (and only the setup/teardown harness runs). If Main returns an
	// error, the Run method will return a non-zero exit code.
	Main func(ctx context.Context) error

	// ErrorWriter specifies where error output should be printed. If nil,
	// os.Stderr is used.
	ErrorWriter io.Writer

	// Registerer registers the log entry counters. If nil, the default
	// prometheus registerer is used.
	Registerer prometheus.Registerer

	// config contains the Viper configuration KV store.
	config *viper.Viper
}

// Run sets up the common daemon harness, and then passes control to the Main
// function (if one exists).
//
// Run uses the following globals:
//
//	os.Args
//
// Run will exit the application if it encounters a fatal error.
func (a *Application) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := a.run(ctx, os.Args); err != nil {
		fmt.Fprintf(a.getErrorWriter(), "fatal error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func (a *Application) run(ctx context.Context, args []string) error {
	executable := filepath.Base(args[0])
	shortName := a.getShortName(executable)

	cmd := newCommandTemplate(executable, shortName, a.TOMLConfig)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.executeCommand(cmd.Context(), shortName)
	}
	cmd.SetArgs(args[1:])
	cmd.SetErr(a.getErrorWriter())

	a.config = viper.New()
	a.config.SetDefault(cfgLogConsoleLevel, log.DefaultConsoleLevel)
	a.config.SetDefault(cfgLogConsoleFormat, "human")
	a.config.SetDefault(cfgLogConsoleStacktraceLevel, log.DefaultStacktraceLevel)
	a.config.SetDefault(cfgLogConsoleDisableCaller, false)
	a.config.SetDefault(cfgGeneralID, executable)
	a.config.SetEnvPrefix(EnvPrefix)
	a.config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.config.AutomaticEnv()
	// The configuration file location is specified through command-line flags.
	// Once the comand-line flags are parsed, we register the location of the
	// config file with the viper config.
	if err := a.config.BindPFlag(cfgConfigFile, cmd.Flags().Lookup(cfgConfigFile)); err != nil {
		return err
	}
	return cmd.ExecuteContext(ctx)
}

func (a *Application) getShortName(executable string) string {
	if a.ShortName != "" {
		return a.ShortName
	}
	return executable
}

func (a *Application) executeCommand(ctx context.Context, shortName string) error {
	os.Setenv("TZ", "UTC")

	// Load launcher configurations from the same config file as the custom
	// application configuration.
	file := a.config.GetString(cfgConfigFile)
	a.config.SetConfigType("toml")
	a.config.SetConfigFile(file)
	if err := a.config.ReadInConfig(); err != nil {
		return serrors.Wrap("loading generic server config from file", err, "file", file)
	}
	if err := libconfig.LoadFile(file, a.TOMLConfig); err != nil {
		return serrors.Wrap("loading config from file", err, "file", file)
	}
	a.TOMLConfig.InitDefaults()

	logEntriesTotal := metrics.NewPromCounter(metrics.Factory{Registerer: a.Registerer}.
		NewCounterVec(
			prometheus.CounterOpts{
				Name: "lib_log_emitted_entries_total",
				Help: "Total number of log entries emitted.",
			},
			[]string{"level"},
		))
	opt := log.WithEntriesCounter(log.EntriesCounter{
		Debug: logEntriesTotal.With("level", "debug"),
		Info:  logEntriesTotal.With("level", "info"),
		Error: logEntriesTotal.With("level", "error"),
	})
	if err := log.Setup(a.getLogging(), opt); err != nil {
		return serrors.Wrap("initialize logging", err)
	}
	defer log.Flush()

	id := a.config.GetString(cfgGeneralID)
	env.LogAppStarted(shortName, id)
	defer env.LogAppStopped(shortName, id)
	defer log.HandlePanic()

	if err := a.TOMLConfig.Validate(); err != nil {
		return serrors.Wrap("validate config", err)
	}
	if a.Main == nil {
		return nil
	}
	return a.Main(ctx)
}

func (a *Application) getLogging() log.Config {
	return log.Config{
		Console: log.ConsoleConfig{
			Level:           a.config.GetString(cfgLogConsoleLevel),
			Format:          a.config.GetString(cfgLogConsoleFormat),
			StacktraceLevel: a.config.GetString(cfgLogConsoleStacktraceLevel),
			DisableCaller:   a.config.GetBool(cfgLogConsoleDisableCaller),
		},
	}
}

func (a *Application) getErrorWriter() io.Writer {
	if a.ErrorWriter != nil {
		return a.ErrorWriter
	}
	return os.Stderr
}

func newCommandTemplate(executable, shortName string, config libconfig.Sampler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   executable + " --config <config.toml>",
		Short: shortName,
		Example: fmt.Sprintf("  %[1]s --config babeld.toml\n"+
			"  %[1]s sample > babeld.toml", executable),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().String(cfgConfigFile, "", "Configuration file (required)")
	cmd.MarkFlagRequired(cfgConfigFile)
	cmd.AddCommand(
		command.NewSample(cmd, config, executable),
		command.NewGendocs(cmd),
	)
	return cmd
}
