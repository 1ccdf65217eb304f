package main

import (
	"context"
	"os"
	"time"

	"cronlint/internal/history"
	"cronlint/internal/jobfile"
	"cronlint/internal/lint"
	"cronlint/internal/report"
	"cronlint/internal/runbook"
	"cronlint/internal/schedule"
	logx "cronlint/pkg/logx"
)

// runner holds the resolved CLI options for one or more lint runs.
type runner struct {
	inPath      string
	tzName      string
	loc         *time.Location
	horizon     time.Duration
	fixedNow    time.Time // zero means "use the wall clock per run"
	runbookPath string
	hist        *history.Store
	log         logx.Logger
}

// runOnce loads the job document, lints and simulates every job, prints the
// report and returns the process exit code (2 on any ERROR finding).
func (r *runner) runOnce(ctx context.Context) int {
	doc, err := jobfile.Load(r.inPath)
	if err != nil {
		r.log.Error("job document load failed", logx.Err(err))
		return 1
	}

	now := r.fixedNow
	if now.IsZero() {
		now = time.Now().In(r.loc)
	}

	p := report.New(os.Stdout)
	p.Header(now, r.tzName, r.horizon)

	var all []lint.Finding
	next := make([][]time.Time, 0, len(doc.Jobs))
	for _, job := range doc.Jobs {
		res := report.Result{Job: job, Findings: lint.Check(job)}
		all = append(all, res.Findings...)

		if job.IsEnabled() {
			res.Times, res.SimError = schedule.Simulate(job.Schedule, now, r.horizon, r.loc)
		}
		next = append(next, res.Times)
		p.Job(res)
	}
	p.Summary(all)

	if r.runbookPath != "" {
		md := runbook.Generate(doc, next, runbook.Options{Now: now})
		if err := os.WriteFile(r.runbookPath, []byte(md), 0o644); err != nil {
			r.log.Error("runbook write failed", logx.String("path", r.runbookPath), logx.Err(err))
		} else {
			r.log.Info("runbook written", logx.String("path", r.runbookPath))
		}
	}

	if r.hist != nil {
		errs, warns, infos := lint.Tally(all)
		rec := history.Run{
			At:     now,
			Source: r.inPath,
			Jobs:   len(doc.Jobs),
			Errors: errs,
			Warns:  warns,
			Infos:  infos,
		}
		if err := r.hist.AppendRun(ctx, rec); err != nil {
			r.log.Warn("history append failed", logx.Err(err))
		}
	}

	return report.ExitCode(all)
}
