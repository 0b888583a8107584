// Package engine sequences one acquisition: plan, dry-run short circuit,
// target-collision guard, execution, pattern pruning, structure analysis,
// and history recording.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/repograb/repograb/internal/analyze"
	"github.com/repograb/repograb/internal/locator"
	"github.com/repograb/repograb/internal/store"
	"github.com/repograb/repograb/internal/strategy"
)

// Executor runs acquisition requests against the strategy registry.
type Executor struct {
	strategies *strategy.Registry
	store      *store.Store // nil disables history recording
	logger     *slog.Logger
}

// New creates an Executor. st may be nil when history is disabled.
func New(strategies *strategy.Registry, st *store.Store, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		strategies: strategies,
		store:      st,
		logger:     logger,
	}
}

// RunReport is the outcome of one acquisition invocation.
type RunReport struct {
	Plan     *strategy.Plan
	Result   *strategy.Result // nil under dry-run
	Analysis *analyze.Report  // nil unless a working directory was analyzed
	DryRun   bool
	Duration time.Duration
}

// Run executes one acquisition request. Under dry-run it stops after
// planning: no filesystem writes, no network operations, no history row.
func (e *Executor) Run(ctx context.Context, ref locator.Ref, req *strategy.Request, analyzeAfter bool) (*RunReport, error) {
	start := time.Now()

	strat, ok := e.strategies.Get(req.Strategy)
	if !ok {
		return nil, &strategy.UnknownStrategyError{Name: req.Strategy}
	}

	plan, err := strat.Plan(ref, req)
	if err != nil {
		return nil, err
	}

	if req.DryRun {
		e.logger.Info("dry run: not executing", "strategy", req.Strategy, "repo", ref.String())
		return &RunReport{Plan: plan, DryRun: true, Duration: time.Since(start)}, nil
	}

	if plan.Target != "" {
		if _, err := os.Stat(plan.Target); err == nil {
			return nil, &strategy.TargetExistsError{Path: plan.Target}
		}
		if parent := filepath.Dir(plan.Target); parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, fmt.Errorf("creating parent directory: %w", err)
			}
		}
	}

	run := e.recordStart(ref, req, plan)

	e.logger.Info("executing strategy", "strategy", req.Strategy, "repo", ref.String(), "target", plan.Target)

	result, err := strat.Execute(ctx, ref, req)
	if err != nil {
		e.recordFinish(run, "failed", err.Error(), nil)
		return nil, err
	}

	if len(req.IncludePatterns) > 0 || len(req.ExcludePatterns) > 0 {
		if result.Kind == strategy.KindWorkingDirectory {
			if err := strategy.ApplyPatterns(result.Path, req.IncludePatterns, req.ExcludePatterns); err != nil {
				e.recordFinish(run, "failed", err.Error(), nil)
				return nil, fmt.Errorf("applying include/exclude patterns: %w", err)
			}
		} else {
			e.logger.Warn("include/exclude patterns only apply to working-directory results, ignoring",
				"strategy", req.Strategy, "result", string(result.Kind))
		}
	}

	report := &RunReport{
		Plan:   plan,
		Result: result,
	}

	if analyzeAfter && result.Kind == strategy.KindWorkingDirectory {
		analysis, err := analyze.Analyze(result.Path)
		if err != nil {
			// The acquisition itself succeeded; a failed report is not fatal.
			e.logger.Warn("structure analysis failed", "dir", result.Path, "error", err)
		} else {
			report.Analysis = analysis
		}
	}

	e.recordFinish(run, "success", "", report.Analysis)

	report.Duration = time.Since(start)
	e.logger.Info("acquisition completed",
		"strategy", req.Strategy,
		"repo", ref.String(),
		"result", string(result.Kind),
		"duration", report.Duration,
	)

	return report, nil
}

// recordStart inserts a running history row. Recording is best effort:
// failures are logged, never fatal.
func (e *Executor) recordStart(ref locator.Ref, req *strategy.Request, plan *strategy.Plan) *store.AcquisitionRun {
	if e.store == nil {
		return nil
	}

	run := &store.AcquisitionRun{
		Owner:     ref.Owner,
		Name:      ref.Name,
		Strategy:  req.Strategy,
		Target:    plan.Target,
		Status:    "running",
		StartTime: time.Now(),
	}
	if err := e.store.CreateAcquisitionRun(run); err != nil {
		e.logger.Warn("failed to record acquisition run", "error", err)
		return nil
	}
	return run
}

func (e *Executor) recordFinish(run *store.AcquisitionRun, status, errMsg string, analysis *analyze.Report) {
	if e.store == nil || run == nil {
		return
	}

	run.Status = status
	run.ErrorMessage = errMsg
	run.EndTime = time.Now()
	if analysis != nil {
		run.DirCount = analysis.DirCount
		run.FileCount = analysis.FileCount
		run.TotalSize = analysis.TotalSize
	}
	if err := e.store.UpdateAcquisitionRun(run); err != nil {
		e.logger.Warn("failed to update acquisition run", "error", err)
	}
}
