// Package tui is the interactive CopyGuard form, built on Bubble Tea.
package tui

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Iron-Ham/copyguard/internal/analyze"
	"github.com/Iron-Ham/copyguard/internal/config"
	"github.com/Iron-Ham/copyguard/internal/detector"
	"github.com/Iron-Ham/copyguard/internal/errors"
	"github.com/Iron-Ham/copyguard/internal/logging"
	"github.com/Iron-Ham/copyguard/internal/notify"
	tea "github.com/charmbracelet/bubbletea"
)

// App wraps the Bubbletea program
type App struct {
	program   *tea.Program
	cfg       *config.Config
	client    detector.Client
	logger    *logging.Logger
	presenter *notify.Presenter
	ctrl      *analyze.Controller
}

// New creates a new TUI application
func New(cfg *config.Config, client detector.Client, logger *logging.Logger) *App {
	if logger == nil {
		logger = logging.NopLogger()
	}
	a := &App{
		cfg:    cfg,
		client: client,
		logger: logger,
	}

	// Phase changes come from timer goroutines and from Update itself, so the
	// refresh is sent asynchronously to avoid blocking the event loop.
	a.presenter = notify.NewPresenter(notify.NewStack(), notify.TimingsFromConfig(cfg),
		notify.WithLogger(logger),
		notify.WithOnChange(func() {
			go a.send(notificationsChangedMsg{})
		}),
	)
	a.ctrl = analyze.NewController(cfg, client, &programPort{send: a.send}, a.presenter,
		analyze.WithLogger(logger),
		analyze.WithScheduler(analyze.TimerScheduler{}),
	)
	return a
}

// send delivers msg to the running program. It is a no-op before Run and
// after the program exits.
func (a *App) send(msg tea.Msg) {
	if a.program != nil {
		a.program.Send(msg)
	}
}

// Run starts the TUI application and blocks until the user quits
func (a *App) Run(ctx context.Context) error {
	model := NewModel(ctx, a.cfg, a.ctrl, a.presenter, systemClipboard(osc52Clipboard(os.Stderr)))

	a.program = tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		if _, ok := <-sigChan; ok {
			a.program.Send(tea.Quit())
		}
	}()

	a.logger.Info("tui started", "endpoint", a.cfg.EndpointURL, "config_valid", a.cfg.Valid())
	_, err := a.program.Run()

	// Clean up signal handler
	signal.Stop(sigChan)
	close(sigChan)

	a.logger.Info("tui stopped")
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
