package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cronlint/internal/history"
	"cronlint/internal/schedule"
	"cronlint/internal/watch"
	logx "cronlint/pkg/logx"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		inPath      = flag.String("in", "", "path to job document (JSON or YAML)")
		tzName      = flag.String("tz", "Asia/Tokyo", "default timezone for simulation")
		horizon     = flag.Duration("horizon", 24*time.Hour, "how far ahead to simulate")
		nowStr      = flag.String("now", "", "override now (RFC3339)")
		watchMode   = flag.Bool("watch", false, "keep running and re-lint when the job file changes")
		runbookPath = flag.String("runbook", "", "also write a markdown runbook to this path")
		historyPath = flag.String("history", "", "record run summaries in this sqlite file")
		logLevel    = flag.String("log-level", "info", "log level (trace|debug|info|warn|error)")
		logFile     = flag.String("log-file", "", "also write JSON-structured logs to this file")
	)
	flag.Parse()

	var log logx.Logger
	if *logFile != "" {
		svc, l := logx.New(logx.Config{
			Level:   *logLevel,
			Console: true,
			File:    logx.FileConfig{Enabled: true, Path: *logFile},
		})
		defer svc.Close()
		log = l
	} else {
		log = logx.NewConsole(*logLevel)
	}

	if strings.TrimSpace(*inPath) == "" {
		fmt.Fprintln(os.Stderr, "usage: cronlint -in jobs.json [flags]")
		flag.PrintDefaults()
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loc := schedule.Resolve(*tzName)
	if want := strings.TrimSpace(*tzName); want != "" && loc.String() != want {
		log.Warn("timezone not resolved; using host-local rules",
			logx.String("tz", want), logx.String("using", loc.String()))
	}

	var fixedNow time.Time
	if *nowStr != "" {
		t, err := time.Parse(time.RFC3339, *nowStr)
		if err != nil {
			log.Error("invalid -now value", logx.String("now", *nowStr), logx.Err(err))
			return 1
		}
		fixedNow = t.In(loc)
	}

	hist, err := history.Open(history.Config{Path: *historyPath}, log)
	if err != nil {
		log.Error("history open failed", logx.String("path", *historyPath), logx.Err(err))
		return 1
	}
	defer hist.Close()

	r := &runner{
		inPath:      *inPath,
		tzName:      *tzName,
		loc:         loc,
		horizon:     *horizon,
		fixedNow:    fixedNow,
		runbookPath: *runbookPath,
		hist:        hist,
		log:         log,
	}

	if !*watchMode {
		return r.runOnce(ctx)
	}

	// Watch mode: one run up front so the output never starts empty, then
	// re-run on changes until interrupted.
	r.runOnce(ctx)
	w := watch.New(watch.Config{Path: *inPath}, log, func(ctx context.Context) {
		r.runOnce(ctx)
	})
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("watch failed", logx.Err(err))
		return 1
	}
	return 0
}
