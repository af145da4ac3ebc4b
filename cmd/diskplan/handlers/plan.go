package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/diskplan/internal/config"
	"github.com/imamik/diskplan/internal/plan"
	"github.com/imamik/diskplan/internal/runner"
	"github.com/imamik/diskplan/internal/ui"
)

// Factory function variables for plan - can be replaced in tests.
var (
	// newVGLister creates the live volume-group reader used by the builder.
	newVGLister = func(r runner.Runner) plan.VolumeGroupLister {
		return plan.VGQuery{Runner: r}
	}

	// planStdout is where plans are printed.
	planStdout = func() *os.File { return os.Stdout }
)

// Plan handles the plan command: resolve the configuration, build the step
// plan (one read-only volume-group query), print it, and execute it only
// under --apply.
func Plan(ctx context.Context, opts PlanOptions) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	r, closeRunner, err := newRunner(cfg)
	if err != nil {
		return err
	}
	defer closeRunner()

	p, err := plan.Build(ctx, cfg, newVGLister(r))
	if err != nil {
		return err
	}

	if opts.JSON {
		return printPlanJSON(ctx, p, cfg, r)
	}

	out := planStdout()
	renderer := ui.NewRenderer(isatty.IsTerminal(out.Fd()))
	executor := &plan.Executor{
		Runner: r,
		Out:    out,
		Render: renderer.Plan,
	}

	result, err := executor.Execute(ctx, p, cfg.Apply)
	if err != nil {
		return fmt.Errorf("provisioning %s failed: %w", cfg.Device, err)
	}

	if result.Status == plan.StatusCompleted {
		log.Printf("%s provisioned and mounted at %s", cfg.Device, cfg.MountPoint)
	}
	return nil
}

// printPlanJSON emits the plan machine-readably and still honors the apply
// gate.
func printPlanJSON(ctx context.Context, p *plan.Plan, cfg *config.Config, r runner.Runner) error {
	out := planStdout()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return err
	}

	if !cfg.Apply {
		return nil
	}

	executor := &plan.Executor{
		Runner: r,
		Out:    io.Discard, // the JSON document above is the printed plan
	}
	_, err := executor.Execute(ctx, p, true)
	return err
}
