// Package analyze runs a single detection request through its lifecycle:
// input checks, loading state, the call itself, rendering the verdict or
// the error, and the closing notification.
package analyze

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/Iron-Ham/copyguard/internal/config"
	"github.com/Iron-Ham/copyguard/internal/detector"
	"github.com/Iron-Ham/copyguard/internal/errors"
	"github.com/Iron-Ham/copyguard/internal/logging"
	"github.com/Iron-Ham/copyguard/internal/notify"
	"github.com/google/uuid"
)

// User-visible strings.
const (
	TriggerLabel        = "🔍 Analyze Code"
	TriggerLabelLoading = "Analyzing..."

	MsgEmptyInput    = "Please enter some code to analyze!"
	MsgConfigMissing = "Configuration missing! Please check your configuration."
	MsgSuccess       = "Analysis completed successfully!"
	MsgCopied        = "Results copied to clipboard!"
	MsgCopyFailed    = "Failed to copy results"
	MsgNothingToCopy = "No results to copy yet"

	errorLabel = "Error"

	// localTimeLayout renders timestamps in the user's local time.
	localTimeLayout = "1/2/2006, 3:04:05 PM"
)

// BarDelay is how long after the confidence text the bar is updated.
const BarDelay = 100 * time.Millisecond

// Controller owns the request lifecycle of the form.
type Controller struct {
	cfg       *config.Config
	client    detector.Client
	ui        Port
	notifier  Notifier
	scheduler Scheduler
	now       func() time.Time
	newID     func() string
	logger    *logging.Logger

	inFlight atomic.Bool
	// generation counts started requests; delayed rendering from an older
	// request is dropped once a newer one has started.
	generation atomic.Uint64

	mu   sync.RWMutex
	last Outcome
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithScheduler sets the scheduler used for delayed rendering.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithClock sets the clock.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator sets the request ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(c *Controller) {
		if newID != nil {
			c.newID = newID
		}
	}
}

// NewController creates a controller. cfg is not modified.
func NewController(cfg *config.Config, client detector.Client, ui Port, notifier Notifier, opts ...Option) *Controller {
	c := &Controller{
		cfg:       cfg,
		client:    client,
		ui:        ui,
		notifier:  notifier,
		scheduler: TimerScheduler{},
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent("analyze")
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	if c.inFlight.Load() {
		return StateLoading
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last.State
}

// Last returns the outcome of the most recent completed request.
func (c *Controller) Last() Outcome {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

// Submit analyzes input and returns the resulting state. It blocks until
// the request completes. Preconditions that fail (empty input, unusable
// configuration, input too long) notify the user and leave the state
// unchanged. A Submit while another request is in flight is ignored.
func (c *Controller) Submit(ctx context.Context, input string) (state State) {
	code := strings.TrimSpace(input)

	if code == "" {
		err := errors.NewValidationError("nothing to analyze").WithField("code").WithCause(errors.ErrEmptyInput)
		c.logger.Debug("submission rejected", "reason", err.Error())
		c.notifier.Notify(MsgEmptyInput, notify.Warning)
		return c.State()
	}

	if err := c.cfg.Ready(); err != nil {
		c.logger.Warn("submission rejected", "reason", err.Error())
		c.notifier.Notify(MsgConfigMissing, notify.Error)
		return c.State()
	}

	if limit := c.cfg.MaxInputLength; limit > 0 {
		if n := utf8.RuneCountInString(code); n > limit {
			err := errors.NewValidationError("input exceeds maximum length").
				WithField("code").WithValue(n).WithCause(errors.ErrInputTooLong)
			c.logger.Debug("submission rejected", "reason", err.Error(), "limit", limit)
			c.notifier.Notify(fmt.Sprintf("Code exceeds the maximum length of %d characters", limit), notify.Warning)
			return c.State()
		}
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		c.logger.Debug("submission ignored, request already in flight")
		return StateLoading
	}

	gen := c.generation.Add(1)
	id := c.newID()
	log := c.logger.WithRequest(id)
	start := c.now()
	outcome := Outcome{State: StateError, RequestID: id}

	c.enterLoading()
	log.Info("analysis started", "code_length", len(code))

	defer func() {
		if r := recover(); r != nil {
			log.Error("analysis panicked", "panic", fmt.Sprint(r))
			outcome = c.renderError(Outcome{RequestID: id}, fmt.Errorf("panic: %v", r), errors.MessageUnexpected)
		}
		outcome.Duration = c.now().Sub(start)
		state = c.finish(outcome, log)
	}()

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout())
	defer cancel()

	result, err := c.client.Detect(reqCtx, detector.NewRequest(id, code, start))
	if err != nil {
		outcome = c.renderError(outcome, err, errors.UserMessage(err))
		return outcome.State
	}
	if result == nil {
		err := errors.NewProtocolError("Invalid response format from server")
		outcome = c.renderError(outcome, err, errors.UserMessage(err))
		return outcome.State
	}
	outcome = c.renderSuccess(outcome, result, gen)
	return outcome.State
}

func (c *Controller) enterLoading() {
	c.ui.SetTriggerEnabled(false)
	c.ui.SetTriggerLabel(TriggerLabelLoading)
	c.ui.SetResultVisible(false)
}

// finish runs on every exit path of a started request.
func (c *Controller) finish(outcome Outcome, log *logging.Logger) State {
	outcome.CompletedAt = c.now()

	c.mu.Lock()
	c.last = outcome
	c.mu.Unlock()

	c.ui.SetTriggerEnabled(true)
	c.ui.SetTriggerLabel(TriggerLabel)
	c.inFlight.Store(false)

	switch outcome.State {
	case StateSuccess:
		log.Info("analysis completed",
			"label", outcome.Result.Label,
			"confidence", outcome.Confidence,
			"duration_ms", outcome.Duration.Milliseconds())
		c.notifier.Notify(MsgSuccess, notify.Success)
	default:
		log.Warn("analysis failed",
			"kind", outcome.Kind.String(),
			"severity", errors.GetSeverity(outcome.Err).String(),
			"error", errString(outcome.Err),
			"duration_ms", outcome.Duration.Milliseconds())
		c.notifier.Notify("Error: "+outcome.Message, notify.Error)
	}
	return outcome.State
}

func (c *Controller) renderSuccess(outcome Outcome, result *detector.Result, gen uint64) Outcome {
	label := result.Label
	if strings.TrimSpace(label) == "" {
		label = detector.UnknownLabel
	}
	icon := Icon(label)
	confidence := ClampConfidence(result.Confidence)
	confText := FormatConfidence(confidence)
	raw := result.RawText()

	c.ui.SetLabel(icon, label)
	c.ui.SetConfidence(confText)
	c.ui.SetBarWidth(0)
	c.scheduler.AfterFunc(BarDelay, func() {
		if c.generation.Load() == gen {
			c.ui.SetBarWidth(confidence)
		}
	})
	c.ui.SetRawOutput(raw)
	c.ui.SetResultVisible(true)

	outcome.State = StateSuccess
	outcome.Result = result
	outcome.LabelText = icon + " " + label
	outcome.ConfidenceText = confText
	outcome.Confidence = confidence
	outcome.RawText = raw
	return outcome
}

func (c *Controller) renderError(outcome Outcome, err error, message string) Outcome {
	raw := fmt.Sprintf("Error Details:\n%s\n\nTimestamp: %s", message, c.now().Local().Format(localTimeLayout))

	c.ui.SetLabel("", errorLabel)
	c.ui.SetConfidence("0%")
	c.ui.SetBarWidth(0)
	c.ui.SetRawOutput(raw)
	c.ui.SetResultVisible(true)

	outcome.State = StateError
	outcome.Result = nil
	outcome.Err = err
	outcome.Kind = errors.Classify(err)
	outcome.Message = message
	outcome.LabelText = errorLabel
	outcome.ConfidenceText = "0%"
	outcome.Confidence = 0
	outcome.RawText = raw
	return outcome
}

// Report returns the plain-text summary of the last outcome for copying.
// ok is false when nothing has completed yet.
func (c *Controller) Report() (report string, ok bool) {
	last := c.Last()
	if last.State != StateSuccess && last.State != StateError {
		return "", false
	}
	return fmt.Sprintf("%s Analysis Results:\nLabel: %s\nConfidence: %s\nRaw Output: %s\nGenerated: %s",
		config.AppName,
		last.LabelText,
		last.ConfidenceText,
		last.RawText,
		c.now().Local().Format(localTimeLayout),
	), true
}

// ClampConfidence limits a confidence score to [0, 100].
func ClampConfidence(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(0, min(100, v))
}

// FormatConfidence renders a confidence score as "<n>%".
func FormatConfidence(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
