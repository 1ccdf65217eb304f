// Package lint statically checks job definitions for operational risk.
//
// Checks are pure and advisory: a malformed job yields findings, never an
// error or a panic, so linting a batch can always run to completion. Rules
// fire in declaration order; an unknown schedule kind suppresses the
// schedule-shape rules but payload rules still run.
package lint

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cronlint/internal/jobfile"
	"cronlint/internal/schedule"
)

type Severity string

const (
	SeverityError Severity = "ERROR"
	SeverityWarn  Severity = "WARN"
	SeverityInfo  Severity = "INFO"
)

// Finding is a single lint observation. Any ERROR finding should make the
// host report a non-zero outcome.
type Finding struct {
	Severity Severity
	JobID    string
	JobName  string
	Message  string
}

// Footgun patterns based on incidents we have actually hit with agent cron
// jobs running under zsh.
var (
	reZsh        = regexp.MustCompile(`\bzsh\b`)
	reStatus     = regexp.MustCompile(`\bstatus\b`)
	rePipefail   = regexp.MustCompile(`\bset -euo pipefail\b`)
	reQuietHours = regexp.MustCompile(`(?i)quiet hours`)
)

// Check lints one job definition and returns its findings in rule order.
func Check(j jobfile.Job) []Finding {
	id := j.EffectiveID()
	name := j.DisplayName()

	var out []Finding
	add := func(sev Severity, msg string) {
		out = append(out, Finding{Severity: sev, JobID: id, JobName: name, Message: msg})
	}

	kindKnown := j.Schedule.KnownKind()
	if !kindKnown {
		add(SeverityError, fmt.Sprintf("unknown schedule.kind=%q", j.Schedule.Kind))
	}

	if !j.IsEnabled() {
		add(SeverityInfo, "job is disabled")
	}

	if !j.Payload.KnownKind() {
		add(SeverityWarn, fmt.Sprintf("unknown payload.kind=%q", j.Payload.Kind))
	}

	msg := j.Payload.Body()
	if reZsh.MatchString(msg) {
		add(SeverityWarn, "message references zsh; prefer /bin/bash -lc for cron jobs")
	}
	if reStatus.MatchString(msg) && strings.Contains(msg, "read-only variable: status") {
		add(SeverityInfo, "mentions zsh status variable footgun")
	}
	if rePipefail.MatchString(msg) && !strings.Contains(msg, "bash") {
		add(SeverityWarn, "uses 'set -euo pipefail' but doesn't specify bash; zsh behaves differently")
	}
	if reQuietHours.MatchString(msg) && !strings.Contains(msg, "TZ=") {
		add(SeverityWarn, "mentions quiet hours but does not specify TZ=...; time drift risk")
	}

	checkTimeout(j.Payload.TimeoutSeconds, add)

	// Schedule-shape checks; skipped entirely when the kind is unknown.
	if kindKnown {
		switch j.Schedule.Kind {
		case jobfile.KindInterval:
			if j.Schedule.EveryMs == nil {
				add(SeverityError, "everyMs missing")
			} else if *j.Schedule.EveryMs < 60_000 {
				add(SeverityWarn, fmt.Sprintf("interval is very frequent (%dms)", *j.Schedule.EveryMs))
			}
		case jobfile.KindCron:
			expr := strings.TrimSpace(j.Schedule.Expr)
			if expr == "" {
				add(SeverityError, "cron expr missing")
			} else if _, err := schedule.ParseExpr(expr); err != nil {
				add(SeverityError, "cron expr parse error: "+err.Error())
			}
		}
	}

	return out
}

// checkTimeout applies the timeoutSeconds rules to the raw JSON value so
// that non-integer values produce a finding instead of a decode failure.
func checkTimeout(raw json.RawMessage, add func(Severity, string)) {
	tok := strings.TrimSpace(string(raw))
	if tok == "" || tok == "null" {
		add(SeverityWarn, "payload.timeoutSeconds not set (risk: hung job)")
		return
	}
	if u, err := strconv.Unquote(tok); err == nil {
		// quoted number, e.g. "900"
		tok = strings.TrimSpace(u)
	}
	t, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		add(SeverityWarn, fmt.Sprintf("timeoutSeconds not an int: %s", tok))
		return
	}
	switch {
	case t <= 0:
		add(SeverityWarn, "timeoutSeconds <= 0")
	case t > 1800:
		add(SeverityInfo, fmt.Sprintf("timeoutSeconds is large (%d)", t))
	}
}

// Tally counts findings per severity.
func Tally(findings []Finding) (errors, warns, infos int) {
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			errors++
		case SeverityWarn:
			warns++
		case SeverityInfo:
			infos++
		}
	}
	return errors, warns, infos
}
