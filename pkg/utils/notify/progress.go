package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/chuistack/certstack/pkg/utils/timer"
	fcolor "github.com/fatih/color"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// ProgressLabels are the status words shown next to each task.
type ProgressLabels struct {
	Pending   string
	Running   string
	Completed string
}

// DefaultLabels returns pending / running / completed.
func DefaultLabels() ProgressLabels {
	return ProgressLabels{Pending: "pending", Running: "running", Completed: "completed"}
}

// CheckingLabels returns labels for preflight checks.
func CheckingLabels() ProgressLabels {
	return ProgressLabels{Pending: "pending", Running: "checking", Completed: "ok"}
}

// ProgressTask is a named unit of work run by a ProgressGroup.
type ProgressTask struct {
	Name string
	Fn   func(ctx context.Context) error
}

// ProgressGroup runs tasks concurrently under a title and reports each task's
// state. On a terminal the task lines are redrawn in place with a spinner:
//
//	🩺 Verify prerequisites...
//	⠦ crd-manifest checking
//	✔ cloudflare-credentials ok
//
// Elsewhere only state changes are printed:
//
//	🩺 Verify prerequisites...
//	► crd-manifest checking
//	► cloudflare-credentials checking
//	✔ cloudflare-credentials ok
//	✔ crd-manifest ok
type ProgressGroup struct {
	title  string
	emoji  string
	labels ProgressLabels
	writer io.Writer
	timer  timer.Timer
	isTTY  bool

	mu         sync.Mutex
	status     map[string]taskState
	order      []string
	startOrder []string
	spinnerIdx int
	linesDrawn int
}

type taskState int

const (
	taskPending taskState = iota
	taskRunning
	taskComplete
	taskFailed
)

const spinnerTickInterval = 100 * time.Millisecond

func spinnerFrames() []string {
	return []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
}

// ProgressOption configures a ProgressGroup.
type ProgressOption func(*ProgressGroup)

// WithLabels sets the status words.
func WithLabels(labels ProgressLabels) ProgressOption {
	return func(pg *ProgressGroup) {
		pg.labels = labels
	}
}

// WithTimer starts a new timer stage on Run and prints its timing on success.
func WithTimer(tmr timer.Timer) ProgressOption {
	return func(pg *ProgressGroup) {
		pg.timer = tmr
	}
}

// NewProgressGroup creates a ProgressGroup writing to writer (os.Stdout when nil).
func NewProgressGroup(title, emoji string, writer io.Writer, opts ...ProgressOption) *ProgressGroup {
	if writer == nil {
		writer = os.Stdout
	}

	pg := &ProgressGroup{
		title:  title,
		emoji:  emoji,
		labels: DefaultLabels(),
		writer: writer,
		isTTY:  IsTerminal(writer),
		status: make(map[string]taskState),
	}

	for _, opt := range opts {
		opt(pg)
	}

	return pg
}

// IsTerminal reports whether writer, or the writer it wraps, is a terminal.
func IsTerminal(writer io.Writer) bool {
	for {
		switch w := writer.(type) {
		case *os.File:
			return term.IsTerminal(int(w.Fd()))
		case interface{ Unwrap() io.Writer }:
			writer = w.Unwrap()
		default:
			return false
		}
	}
}

// Run executes the tasks concurrently and returns the first failure, prefixed
// with the task name. Remaining tasks see a cancelled context.
func (pg *ProgressGroup) Run(ctx context.Context, tasks ...ProgressTask) error {
	if len(tasks) == 0 {
		return nil
	}

	for _, task := range tasks {
		pg.status[task.Name] = taskPending
		pg.order = append(pg.order, task.Name)
	}

	if pg.timer != nil {
		pg.timer.NewStage()
	}

	Titlef(pg.writer, pg.emoji, "%s...", pg.title)

	var err error

	if pg.isTTY {
		err = pg.runInteractive(ctx, tasks)
	} else {
		err = pg.runPlain(ctx, tasks)
	}

	if err != nil {
		return err
	}

	if pg.timer != nil {
		total, stage := pg.timer.GetTiming()
		successColor := fcolor.New(fcolor.FgGreen)
		_, _ = successColor.Fprintf(pg.writer, "⏲ current: %s\n  total:  %s\n", stage, total)
	}

	return nil
}

func (pg *ProgressGroup) runInteractive(ctx context.Context, tasks []ProgressTask) error {
	pg.mu.Lock()
	for _, name := range pg.order {
		_, _ = fmt.Fprintln(pg.writer, pg.formatLine(name))
	}

	pg.linesDrawn = len(pg.order)
	pg.mu.Unlock()

	stop := make(chan struct{})
	done := make(chan struct{})

	go pg.spin(stop, done)

	err := pg.runAll(ctx, tasks, func(string, taskState) {})

	close(stop)
	<-done

	pg.redraw()

	return err
}

func (pg *ProgressGroup) runPlain(ctx context.Context, tasks []ProgressTask) error {
	return pg.runAll(ctx, tasks, func(name string, state taskState) {
		switch state {
		case taskRunning:
			_, _ = fmt.Fprintf(pg.writer, "► %s %s\n", name, pg.labels.Running)
		case taskPending, taskComplete, taskFailed:
			_, _ = fmt.Fprintln(pg.writer, pg.formatLine(name))
		}
	})
}

// runAll runs every task in an errgroup. report is called with the mutex held
// after each state change.
func (pg *ProgressGroup) runAll(
	ctx context.Context,
	tasks []ProgressTask,
	report func(name string, state taskState),
) error {
	group, groupCtx := errgroup.WithContext(ctx)

	for _, task := range tasks {
		group.Go(func() error {
			pg.setState(task.Name, taskRunning, report)

			err := task.Fn(groupCtx)
			if err != nil {
				pg.setState(task.Name, taskFailed, report)

				return fmt.Errorf("%s: %w", task.Name, err)
			}

			pg.setState(task.Name, taskComplete, report)

			return nil
		})
	}

	return group.Wait() //nolint:wrapcheck // tasks wrap their own errors
}

func (pg *ProgressGroup) setState(name string, state taskState, report func(string, taskState)) {
	pg.mu.Lock()
	defer pg.mu.Unlock()

	if state == taskRunning && pg.status[name] == taskPending {
		pg.startOrder = append(pg.startOrder, name)
	}

	pg.status[name] = state
	report(name, state)
}

func (pg *ProgressGroup) spin(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(spinnerTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			pg.mu.Lock()
			pg.spinnerIdx = (pg.spinnerIdx + 1) % len(spinnerFrames())
			pg.mu.Unlock()
			pg.redraw()
		}
	}
}

// redraw moves the cursor back over the task lines and rewrites them with
// started tasks first.
func (pg *ProgressGroup) redraw() {
	pg.mu.Lock()
	defer pg.mu.Unlock()

	if pg.linesDrawn == 0 {
		return
	}

	_, _ = fmt.Fprintf(pg.writer, "\033[%dA", pg.linesDrawn)

	started := make(map[string]bool, len(pg.startOrder))
	for _, name := range pg.startOrder {
		started[name] = true
	}

	display := append([]string{}, pg.startOrder...)

	for _, name := range pg.order {
		if !started[name] {
			display = append(display, name)
		}
	}

	for _, name := range display {
		_, _ = fmt.Fprint(pg.writer, "\033[K")
		_, _ = fmt.Fprintln(pg.writer, pg.formatLine(name))
	}
}

// formatLine must be called with the mutex held.
func (pg *ProgressGroup) formatLine(name string) string {
	switch pg.status[name] {
	case taskPending:
		return fcolor.New(fcolor.FgHiBlack).Sprintf("○ %s %s", name, pg.labels.Pending)
	case taskRunning:
		return fcolor.New(fcolor.FgCyan).Sprintf("%s %s %s", spinnerFrames()[pg.spinnerIdx], name, pg.labels.Running)
	case taskComplete:
		return fcolor.New(fcolor.FgGreen).Sprintf("✔ %s %s", name, pg.labels.Completed)
	case taskFailed:
		return fcolor.New(fcolor.FgRed).Sprintf("✗ %s failed", name)
	default:
		return "? " + name
	}
}
