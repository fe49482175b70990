package cmd

import (
	"github.com/Iron-Ham/copyguard/internal/detector"
	"github.com/Iron-Ham/copyguard/internal/errors"
	"github.com/Iron-Ham/copyguard/internal/tui"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Open the interactive form",
	Long: `Open the interactive form. Paste or type code, then press alt+enter or
ctrl+s (or focus the button with tab and press enter) to analyze it.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, _ []string) error {
	logger := newLogger(cmd)
	defer func() { _ = logger.Close() }()

	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return err
	}

	client := detector.NewHTTPClient(cfg.EndpointURL, cfg.APIKey, detector.WithLogger(logger))

	// Launch TUI
	app := tui.New(cfg, client, logger)
	if err := app.Run(cmd.Context()); err != nil {
		return errors.Wrap(err, "TUI error")
	}
	return nil
}
