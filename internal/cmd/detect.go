package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Iron-Ham/copyguard/internal/analyze"
	"github.com/Iron-Ham/copyguard/internal/console"
	"github.com/Iron-Ham/copyguard/internal/detector"
	"github.com/Iron-Ham/copyguard/internal/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var detectCmd = &cobra.Command{
	Use:   "detect [file|-]",
	Short: "Analyze a file or stdin once and print the verdict",
	Long: `Analyze a single snippet without the interactive form.

The code is read from the named file, or from stdin when the argument is "-"
or omitted and stdin is not a terminal. The exit status is 1 when the
analysis fails.

Examples:
  copyguard detect main.go
  cat snippet.py | copyguard detect
  copyguard detect --json - < snippet.js`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

var detectJSON bool

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "print the outcome as JSON")
}

// detectOutput is the --json representation of an outcome
type detectOutput struct {
	State      string          `json:"state"`
	Label      string          `json:"label,omitempty"`
	Confidence float64         `json:"confidence"`
	Raw        json.RawMessage `json:"raw,omitempty"`
	Error      string          `json:"error,omitempty"`
	Kind       string          `json:"kind,omitempty"`
	RequestID  string          `json:"request_id,omitempty"`
	DurationMs int64           `json:"duration_ms"`
}

func newDetectOutput(o analyze.Outcome) detectOutput {
	out := detectOutput{
		State:      o.State.String(),
		Confidence: o.Confidence,
		RequestID:  o.RequestID,
		DurationMs: o.Duration.Milliseconds(),
	}
	if o.Result != nil {
		out.Label = o.Result.Label
		out.Raw = o.Result.Raw
	}
	if o.State == analyze.StateError {
		out.Error = o.Message
		out.Kind = o.Kind.String()
	}
	return out
}

// readInput returns the code to analyze.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", errors.Wrapf(err, "failed to read %s", args[0])
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && len(args) == 0 && term.IsTerminal(int(f.Fd())) {
		return "", errors.New("no input: pass a file, or pipe code on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", errors.Wrap(err, "failed to read stdin")
	}
	return string(data), nil
}

func runDetect(cmd *cobra.Command, args []string) error {
	code, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	defer func() { _ = logger.Close() }()

	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return err
	}
	if cfg.Debug {
		fmt.Fprint(cmd.ErrOrStderr(), cfg.Summary())
	}

	out := cmd.OutOrStdout()
	port := console.NewPort(out)
	client := detector.NewHTTPClient(cfg.EndpointURL, cfg.APIKey, detector.WithLogger(logger))
	ctrl := analyze.NewController(cfg, client, port, console.NewNotifier(cmd.ErrOrStderr()),
		analyze.WithLogger(logger),
		analyze.WithScheduler(analyze.ImmediateScheduler{}),
	)

	state := ctrl.Submit(cmd.Context(), code)

	if detectJSON {
		// Preconditions that stop the run leave no outcome to print.
		if state == analyze.StateSuccess || state == analyze.StateError {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(newDetectOutput(ctrl.Last())); err != nil {
				return err
			}
		}
	} else if err := port.Flush(); err != nil {
		return err
	}

	if state != analyze.StateSuccess {
		return &exitError{code: 1}
	}
	return nil
}
