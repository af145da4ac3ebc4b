package plan

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/imamik/diskplan/internal/runner"
)

// Status tracks one invocation through its lifecycle. A failed step is
// terminal for the run; re-invoking after a fix is safe because every step
// is individually idempotent.
type Status string

const (
	// StatusPlanned means the plan was built and printed.
	StatusPlanned Status = "PLANNED"
	// StatusDryRunDone means the plan was printed without executing.
	StatusDryRunDone Status = "DRY_RUN_DONE"
	// StatusExecuting means steps are being dispatched.
	StatusExecuting Status = "EXECUTING"
	// StatusCompleted means every step succeeded.
	StatusCompleted Status = "COMPLETED"
	// StatusFailed means a step returned non-zero and the rest were skipped.
	StatusFailed Status = "FAILED"
)

// Result reports how far an invocation got.
type Result struct {
	Status Status
	// FailedStep is the 1-based index of the failing step when Status is
	// StatusFailed.
	FailedStep int
}

// StepError reports a step that exited non-zero or could not be dispatched.
// Output carries the step's combined output verbatim.
type StepError struct {
	Index    int // 1-based position in the plan
	Step     Step
	ExitCode int
	Output   string
	Err      error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("step %d (%s): %v", e.Index, e.Step.Description(), e.Err)
	}
	return fmt.Sprintf("step %d (%s) exited %d:\n%s", e.Index, e.Step.Description(), e.ExitCode, e.Output)
}

// Unwrap exposes the transport error, if any.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Logger is the minimal progress logger the executor needs.
type Logger interface {
	Printf(format string, v ...any)
}

// stdLogger routes executor progress through the standard log package.
type stdLogger struct{}

func (stdLogger) Printf(format string, v ...any) { log.Printf(format, v...) }

// Executor prints a plan and, only under apply, runs it step by step.
type Executor struct {
	Runner runner.Runner

	// Out receives the printed plan; defaults to os.Stdout.
	Out io.Writer

	// Render formats the plan for printing. When nil a plain numbered
	// list is used.
	Render func(*Plan, bool) string

	// Log receives step progress; defaults to the standard logger.
	Log Logger
}

// Execute always prints every step in order. With apply=false it returns
// immediately after printing. With apply=true it runs the steps
// sequentially through the Runner and aborts on the first non-zero exit,
// with no rollback.
func (e *Executor) Execute(ctx context.Context, p *Plan, apply bool) (*Result, error) {
	out := e.Out
	if out == nil {
		out = os.Stdout
	}
	logger := e.Log
	if logger == nil {
		logger = stdLogger{}
	}

	render := e.Render
	if render == nil {
		render = renderPlain
	}
	fmt.Fprint(out, render(p, apply))

	if !apply {
		return &Result{Status: StatusDryRunDone}, nil
	}

	start := time.Now()
	logger.Printf("applying %d steps to %s", len(p.Steps), p.Device)

	for i, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			return &Result{Status: StatusFailed, FailedStep: i + 1},
				&StepError{Index: i + 1, Step: step, Err: err}
		}

		logger.Printf("[%d/%d] %s", i+1, len(p.Steps), step.Description())

		output, code, err := e.Runner.Run(ctx, step.Command())
		if err != nil {
			logger.Printf("[%d/%d] failed: %v", i+1, len(p.Steps), err)
			return &Result{Status: StatusFailed, FailedStep: i + 1},
				&StepError{Index: i + 1, Step: step, Output: output, Err: err}
		}
		if code != 0 {
			logger.Printf("[%d/%d] exited %d", i+1, len(p.Steps), code)
			return &Result{Status: StatusFailed, FailedStep: i + 1},
				&StepError{Index: i + 1, Step: step, ExitCode: code, Output: output}
		}
	}

	logger.Printf("completed %d steps in %v", len(p.Steps), time.Since(start).Round(time.Millisecond))
	return &Result{Status: StatusCompleted}, nil
}

// renderPlain is the unstyled fallback plan rendering.
func renderPlain(p *Plan, apply bool) string {
	s := fmt.Sprintf("Plan for %s (%d steps):\n", p.Device, len(p.Steps))
	for i, step := range p.Steps {
		s += fmt.Sprintf("  %d. %s\n", i+1, step.Description())
	}
	if !apply {
		s += "\nDry-run: no commands were executed. Re-run with --apply to provision.\n"
	}
	return s
}
