// Package cmd implements the copyguard command line.
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/Iron-Ham/copyguard/internal/config"
	"github.com/Iron-Ham/copyguard/internal/logging"
	"github.com/Iron-Ham/copyguard/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "copyguard",
	Short: "Check code snippets with the CopyGuard detection service",
	Long: `CopyGuard sends a code snippet to a remote detection service and shows
the verdict, its confidence and the raw diagnostic output.

Without a subcommand it opens the interactive form.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runStart,
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initViper)

	// Global flags
	rootCmd.PersistentFlags().String("settings", "", "settings file injected at launch (YAML, JSON or TOML)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-dir", "", "directory for the log file (default is <config dir>/logs)")
	_ = viper.BindPFlag("settings", rootCmd.PersistentFlags().Lookup("settings"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
}

func initViper() {
	viper.SetEnvPrefix("COPYGUARD")
	// e.g., COPYGUARD_LOG_DIR for log_dir
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// newLogger opens the log file. When it cannot be opened, logging is
// disabled rather than failing the command.
func newLogger(cmd *cobra.Command) *logging.Logger {
	level := logging.LevelInfo
	if viper.GetBool("debug") {
		level = logging.LevelDebug
	}

	dir := viper.GetString("log_dir")
	if dir == "" {
		dir = config.LogDir()
	}

	logger, err := logging.NewLogger(dir, level)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", err)
		return logging.NopLogger()
	}
	return logger
}

// openStore opens the persistent store. A corrupt store is reported and
// skipped so the other sources still apply.
func openStore(cmd *cobra.Command, logger *logging.Logger) *store.Store {
	st, err := store.Open(config.StorePath())
	if err != nil {
		logger.Warn("persistent store unreadable", "path", config.StorePath(), "error", err.Error())
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: ignoring %v\n", err)
		return nil
	}
	return st
}

// settingsPath returns the injected settings file, from --settings or
// COPYGUARD_SETTINGS.
func settingsPath() string {
	return viper.GetString("settings")
}

// loadConfig resolves the configuration from every source.
func loadConfig(cmd *cobra.Command, logger *logging.Logger) (*config.Config, error) {
	sources := []config.Source{config.NewEnvSource()}

	if path := settingsPath(); path != "" {
		settings, err := config.NewSettingsSource(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, settings)
	}

	if st := openStore(cmd, logger); st != nil {
		sources = append(sources, config.NewStoreSource(st))
	}

	return config.NewResolver(sources...).WithLogger(logger).Resolve(), nil
}

// exitError carries a process exit code without an extra message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if e, ok := err.(*exitError); ok {
		return e.code
	}
	return 1
}

// IsSilent reports whether err has already been reported to the user.
func IsSilent(err error) bool {
	_, ok := err.(*exitError)
	return ok
}
