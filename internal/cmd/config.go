package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Iron-Ham/copyguard/internal/config"
	"github.com/Iron-Ham/copyguard/internal/logging"
	"github.com/Iron-Ham/copyguard/internal/store"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify CopyGuard configuration",
	Long: `View or modify CopyGuard configuration.

Each setting is taken from the first of these that has a value:
  1. the environment (DETECTOR_URL, DETECTOR_KEY, ...)
  2. the settings file given with --settings or COPYGUARD_SETTINGS
  3. the persistent store (see "copyguard config set")
  4. built-in defaults

Without arguments, displays the current configuration.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Save a setting in the persistent store",
	Long: `Save a setting in the persistent store. Environment variables and the
settings file still take precedence over stored values.

Examples:
  copyguard config set DETECTOR_KEY abc123
  copyguard config set request_timeout 10000

Valid keys:
  ` + strings.Join(config.Keys(), "\n  "),
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a setting from the persistent store",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the store, settings and log file paths",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	logger := logging.NopLogger()
	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, cfg.Summary())
	if err := cfg.Ready(); err != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Requests cannot be sent until the problems above are fixed.")
	}
	return nil
}

// normalizeKey accepts setting names in any case, with or without the store namespace.
func normalizeKey(name string) (string, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	key = strings.TrimPrefix(key, store.Namespace)
	if !config.IsKnownKey(key) {
		if matches := fuzzy.Find(key, config.Keys()); len(matches) > 0 {
			return "", fmt.Errorf("unknown setting %q (did you mean %s?)", name, matches[0].Str)
		}
		return "", fmt.Errorf("unknown setting %q (valid: %s)", name, strings.Join(config.Keys(), ", "))
	}
	return key, nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, err := normalizeKey(args[0])
	if err != nil {
		return err
	}

	st, err := store.Open(config.StorePath())
	if err != nil {
		return err
	}
	st.Set(key, args[1])
	if err := st.Save(); err != nil {
		return err
	}

	shown := args[1]
	if key == config.KeyDetectorKey {
		shown = "***hidden***"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", store.Key(key), shown, st.Path())
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	key, err := normalizeKey(args[0])
	if err != nil {
		return err
	}

	st, err := store.Open(config.StorePath())
	if err != nil {
		return err
	}
	if !st.Delete(key) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is not set in %s\n", store.Key(key), st.Path())
		return nil
	}
	if err := st.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", store.Key(key), st.Path())
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Store:    %s\n", config.StorePath())

	settings := settingsPath()
	if settings == "" {
		settings = "(none)"
	}
	fmt.Fprintf(out, "Settings: %s\n", settings)
	fmt.Fprintf(out, "Log file: %s\n", filepath.Join(config.LogDir(), logging.LogFileName))
	return nil
}
