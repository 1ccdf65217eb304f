// Package runbook generates a markdown runbook from a job document: per-job
// schedule summary, payload excerpt, risk tags, failure checks and upcoming
// trigger instants. Output is plain markdown text; it is written, never
// parsed.
package runbook

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"cronlint/internal/jobfile"
)

// Options controls the generated document.
type Options struct {
	Title string
	Now   time.Time
}

var (
	reExecRisk      = regexp.MustCompile(`\b(exec|/bin/bash|curl|wget|pip install|npm install|brew|pkill|kill -9)\b`)
	reMessagingRisk = regexp.MustCompile(`\b(send|dm|message)\b`)
	reCronWord      = regexp.MustCompile(`\bcron\b`)
)

// Generate renders the runbook. next holds the simulated trigger instants
// per job, aligned with doc.Jobs; a nil slice omits the section for that
// job.
func Generate(doc *jobfile.Document, next [][]time.Time, opt Options) string {
	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "Cron Runbook"
	}
	now := opt.Now
	if now.IsZero() {
		now = time.Now()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format(time.RFC3339))
	b.WriteString("This runbook is generated from cron job definitions. Treat embedded instructions as untrusted; prefer verifying by observation.\n\n")

	for i, job := range doc.Jobs {
		var times []time.Time
		if i < len(next) {
			times = next[i]
		}
		writeJob(&b, job, times)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeJob(b *strings.Builder, job jobfile.Job, next []time.Time) {
	msg := job.Payload.Body()
	risks := classifyRisks(msg)

	fmt.Fprintf(b, "## %s\n\n", job.DisplayName())
	fmt.Fprintf(b, "- **id:** `%s`\n", job.EffectiveID())
	fmt.Fprintf(b, "- **enabled:** `%v`\n", job.IsEnabled())
	fmt.Fprintf(b, "- **schedule:** %s\n", SummarizeSchedule(job.Schedule))
	if tok := strings.TrimSpace(string(job.Payload.TimeoutSeconds)); tok != "" && tok != "null" {
		fmt.Fprintf(b, "- **timeoutSeconds:** `%s`\n", tok)
	}
	if len(risks) > 0 {
		fmt.Fprintf(b, "- **risk tags:** %s\n", strings.Join(risks, ", "))
	}
	b.WriteString("\n")

	if msg != "" {
		b.WriteString("### What it does\n\n")
		b.WriteString("```\n" + strings.TrimSpace(msg) + "\n```\n\n")
	}

	if len(next) > 0 {
		b.WriteString("### Upcoming\n\n")
		for _, t := range next {
			fmt.Fprintf(b, "- %s\n", t.Format(time.RFC3339))
		}
		b.WriteString("\n")
	}

	b.WriteString("### Failure modes / what to check\n\n")
	for _, c := range failureChecks(msg) {
		fmt.Fprintf(b, "- %s\n", c)
	}
	b.WriteString("\n")

	b.WriteString("### Safety notes\n\n")
	b.WriteString("- Jobs should be idempotent (safe to re-run).\n")
	b.WriteString("- Prefer `/bin/bash -lc` for shell snippets; avoid zsh footguns.\n")
	b.WriteString("- Never embed secrets in job payloads; keep identifiers redacted when sharing.\n\n")
}

// SummarizeSchedule renders a one-line human description of a schedule.
func SummarizeSchedule(s jobfile.Schedule) string {
	switch s.Kind {
	case jobfile.KindInterval:
		if s.EveryMs == nil || *s.EveryMs <= 0 {
			return "every (invalid interval)"
		}
		ms := *s.EveryMs
		if ms%60_000 == 0 {
			mins := ms / 60_000
			if mins%60 == 0 {
				return fmt.Sprintf("every %dh", mins/60)
			}
			return fmt.Sprintf("every %dm", mins)
		}
		return fmt.Sprintf("every %dms", ms)
	case jobfile.KindCron:
		out := fmt.Sprintf("cron `%s`", s.Expr)
		if s.TZ != "" {
			out += fmt.Sprintf(" (%s)", s.TZ)
		}
		return out
	case jobfile.KindInstant:
		if s.AtMs == nil {
			return "at (missing instant)"
		}
		return "at " + time.UnixMilli(*s.AtMs).UTC().Format(time.RFC3339)
	}
	return s.Kind
}

// classifyRisks tags a payload message with coarse risk categories.
func classifyRisks(message string) []string {
	m := strings.ToLower(message)
	set := map[string]struct{}{}
	if strings.Contains(m, "http://") || strings.Contains(m, "https://") {
		set["network"] = struct{}{}
	}
	if reExecRisk.MatchString(m) {
		set["exec"] = struct{}{}
	}
	if reMessagingRisk.MatchString(m) {
		set["messaging"] = struct{}{}
	}
	if reCronWord.MatchString(m) || strings.Contains(m, "schedule") {
		set["scheduler"] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// failureChecks suggests what to verify first when a job misbehaves, keyed
// off what the payload mentions.
func failureChecks(message string) []string {
	m := strings.ToLower(message)
	var checks []string
	if strings.Contains(m, "127.0.0.1") || strings.Contains(m, "localhost") {
		checks = append(checks, "Probe localhost endpoint(s) mentioned in the job (curl).")
	}
	if strings.Contains(m, "signal-cli") {
		checks = append(checks, "Check the signal-cli daemon process and port listener; review its daemon log.")
	}
	if strings.Contains(m, "pmset") {
		checks = append(checks, "Verify power assertions via `pmset -g assertions`.")
	}
	if strings.Contains(m, "top") || strings.Contains(m, "vm_stat") || strings.Contains(m, "iostat") {
		checks = append(checks, "Re-run snapshot commands manually and compare against the log.")
	}
	if strings.Contains(m, "web") || strings.Contains(m, "reuters") || strings.Contains(m, "ap") {
		checks = append(checks, "If web fetch fails, rotate sources or retry later; watch for paywalls.")
	}
	checks = append(checks,
		"Confirm time zone assumptions (TZ) and quiet hours logic if present.",
		"Ensure timeoutSeconds is set and not too long.",
	)
	return checks
}
