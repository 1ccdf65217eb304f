package lint

import (
	"encoding/json"
	"strings"
	"testing"

	"cronlint/internal/jobfile"
)

func boolp(v bool) *bool    { return &v }
func int64p(v int64) *int64 { return &v }

func baseJob() jobfile.Job {
	return jobfile.Job{
		ID:   "job-1",
		Name: "demo",
		Schedule: jobfile.Schedule{
			Kind:    jobfile.KindInterval,
			EveryMs: int64p(900_000),
		},
		Payload: jobfile.Payload{
			Kind:           jobfile.PayloadAgentTurn,
			Message:        "hello",
			TimeoutSeconds: json.RawMessage("600"),
		},
	}
}

func countSeverity(fs []Finding, sev Severity) int {
	n := 0
	for _, f := range fs {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

func hasFinding(fs []Finding, sev Severity, frag string) bool {
	for _, f := range fs {
		if f.Severity == sev && strings.Contains(f.Message, frag) {
			return true
		}
	}
	return false
}

func TestCheckCleanJob(t *testing.T) {
	t.Parallel()
	if fs := Check(baseJob()); len(fs) != 0 {
		t.Fatalf("clean job produced findings: %+v", fs)
	}
}

func TestCheckUnknownScheduleKindKeepsPayloadChecks(t *testing.T) {
	t.Parallel()
	j := baseJob()
	j.Schedule = jobfile.Schedule{Kind: "hourly"}
	j.Payload.TimeoutSeconds = nil

	fs := Check(j)
	if countSeverity(fs, SeverityError) != 1 {
		t.Fatalf("want exactly one ERROR, got %+v", fs)
	}
	if !hasFinding(fs, SeverityError, "unknown schedule.kind") {
		t.Fatalf("missing unknown-kind error: %+v", fs)
	}
	// payload checks still run after the unknown kind
	if !hasFinding(fs, SeverityWarn, "timeoutSeconds") {
		t.Fatalf("payload checks should still run: %+v", fs)
	}
	// schedule-shape checks must not run (no everyMs/expr findings)
	if hasFinding(fs, SeverityError, "everyMs") || hasFinding(fs, SeverityError, "cron expr") {
		t.Fatalf("schedule-shape checks should be skipped: %+v", fs)
	}
}

func TestCheckDisabledJob(t *testing.T) {
	t.Parallel()
	j := baseJob()
	j.Enabled = boolp(false)
	fs := Check(j)
	if !hasFinding(fs, SeverityInfo, "disabled") {
		t.Fatalf("missing disabled INFO: %+v", fs)
	}
}

func TestCheckUnknownPayloadKind(t *testing.T) {
	t.Parallel()
	j := baseJob()
	j.Payload.Kind = "shellCommand"
	fs := Check(j)
	if !hasFinding(fs, SeverityWarn, "unknown payload.kind") {
		t.Fatalf("missing payload kind WARN: %+v", fs)
	}
}

func TestCheckMessageFootguns(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		msg  string
		sev  Severity
		frag string
	}{
		{name: "zsh word", msg: "run under zsh please", sev: SeverityWarn, frag: "zsh"},
		{name: "status footgun", msg: "watch for status: read-only variable: status", sev: SeverityInfo, frag: "status variable footgun"},
		{name: "pipefail without bash", msg: "set -euo pipefail; do things", sev: SeverityWarn, frag: "pipefail"},
		{name: "quiet hours without tz", msg: "respect Quiet Hours 22:00-07:00", sev: SeverityWarn, frag: "quiet hours"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			j := baseJob()
			j.Payload.Message = tt.msg
			fs := Check(j)
			if !hasFinding(fs, tt.sev, tt.frag) {
				t.Fatalf("message %q: missing %s finding about %q: %+v", tt.msg, tt.sev, tt.frag, fs)
			}
		})
	}
}

func TestCheckMessageFootgunsNegative(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		msg  string
		frag string
	}{
		{name: "zsh inside word", msg: "zshell is fine", frag: "references zsh"},
		{name: "pipefail with bash", msg: "bash -c 'set -euo pipefail; x'", frag: "pipefail"},
		{name: "quiet hours with tz", msg: "Quiet hours 22:00-07:00 TZ=Asia/Tokyo", frag: "quiet hours"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			j := baseJob()
			j.Payload.Message = tt.msg
			fs := Check(j)
			for _, f := range fs {
				if strings.Contains(f.Message, tt.frag) {
					t.Fatalf("message %q should not produce finding %q", tt.msg, f.Message)
				}
			}
		})
	}
}

func TestCheckTimeoutRules(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  string // empty string means absent
		sev  Severity
		frag string
	}{
		{name: "absent", raw: "", sev: SeverityWarn, frag: "not set"},
		{name: "null", raw: "null", sev: SeverityWarn, frag: "not set"},
		{name: "float", raw: "900.5", sev: SeverityWarn, frag: "not an int"},
		{name: "string garbage", raw: `"soon"`, sev: SeverityWarn, frag: "not an int"},
		{name: "zero", raw: "0", sev: SeverityWarn, frag: "<= 0"},
		{name: "negative", raw: "-5", sev: SeverityWarn, frag: "<= 0"},
		{name: "very large", raw: "3600", sev: SeverityInfo, frag: "large"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			j := baseJob()
			if tt.raw == "" {
				j.Payload.TimeoutSeconds = nil
			} else {
				j.Payload.TimeoutSeconds = json.RawMessage(tt.raw)
			}
			fs := Check(j)
			if !hasFinding(fs, tt.sev, tt.frag) {
				t.Fatalf("timeout %q: missing %s finding about %q: %+v", tt.raw, tt.sev, tt.frag, fs)
			}
		})
	}

	// quoted integers are accepted
	j := baseJob()
	j.Payload.TimeoutSeconds = json.RawMessage(`"600"`)
	if fs := Check(j); len(fs) != 0 {
		t.Fatalf("quoted int timeout produced findings: %+v", fs)
	}
}

func TestCheckIntervalShape(t *testing.T) {
	t.Parallel()
	j := baseJob()
	j.Schedule.EveryMs = nil
	fs := Check(j)
	if !hasFinding(fs, SeverityError, "everyMs missing") {
		t.Fatalf("missing everyMs ERROR: %+v", fs)
	}

	j = baseJob()
	j.Schedule.EveryMs = int64p(5_000)
	fs = Check(j)
	if !hasFinding(fs, SeverityWarn, "very frequent") {
		t.Fatalf("missing frequent-interval WARN: %+v", fs)
	}
}

func TestCheckCronShape(t *testing.T) {
	t.Parallel()
	j := baseJob()
	j.Schedule = jobfile.Schedule{Kind: jobfile.KindCron}
	fs := Check(j)
	if !hasFinding(fs, SeverityError, "cron expr missing") {
		t.Fatalf("missing expr ERROR: %+v", fs)
	}

	j.Schedule.Expr = "61 * * * *"
	fs = Check(j)
	if !hasFinding(fs, SeverityError, "cron expr parse error") {
		t.Fatalf("missing parse ERROR: %+v", fs)
	}
	// the parser's own text is carried along
	if !hasFinding(fs, SeverityError, "out of range") {
		t.Fatalf("parser error text not carried: %+v", fs)
	}
}

func TestCheckFindingOrder(t *testing.T) {
	t.Parallel()
	j := baseJob()
	j.Enabled = boolp(false)
	j.Payload.Kind = "weird"
	j.Payload.Message = "zsh"
	j.Payload.TimeoutSeconds = nil
	j.Schedule.EveryMs = int64p(1_000)

	fs := Check(j)
	wantOrder := []string{"disabled", "payload.kind", "zsh", "timeoutSeconds", "very frequent"}
	if len(fs) != len(wantOrder) {
		t.Fatalf("got %d findings, want %d: %+v", len(fs), len(wantOrder), fs)
	}
	for i, frag := range wantOrder {
		if !strings.Contains(fs[i].Message, frag) {
			t.Fatalf("finding[%d] = %q, want mention of %q", i, fs[i].Message, frag)
		}
	}
}

func TestCheckNeverPanicsOnEmptyJob(t *testing.T) {
	t.Parallel()
	fs := Check(jobfile.Job{})
	if countSeverity(fs, SeverityError) == 0 {
		t.Fatalf("empty job should have an unknown-kind ERROR: %+v", fs)
	}
	for _, f := range fs {
		if f.JobID != "?" || f.JobName != "(unnamed)" {
			t.Fatalf("fallback id/name not applied: %+v", f)
		}
	}
}

func TestTally(t *testing.T) {
	t.Parallel()
	fs := []Finding{
		{Severity: SeverityError}, {Severity: SeverityWarn}, {Severity: SeverityWarn}, {Severity: SeverityInfo},
	}
	e, w, i := Tally(fs)
	if e != 1 || w != 2 || i != 1 {
		t.Fatalf("Tally = %d/%d/%d", e, w, i)
	}
}
