// Package report renders lint findings and simulated trigger instants for
// humans on the console. It is presentation glue only: the engine stays
// unaware of formatting, and the printer never mutates what it is given.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"cronlint/internal/jobfile"
	"cronlint/internal/lint"
)

// previewTriggers is how many upcoming instants are shown per job.
const previewTriggers = 10

var (
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	warnLabel  = color.New(color.FgYellow).SprintFunc()
	infoLabel  = color.New(color.FgCyan).SprintFunc()
)

// Result is everything the printer needs for one job.
type Result struct {
	Job      jobfile.Job
	Findings []lint.Finding

	// Times is the simulated trigger sequence; SimError is set instead when
	// simulation failed (disabled jobs have neither).
	Times    []time.Time
	SimError error
}

// Printer writes the report. Zero value is unusable; set Out.
type Printer struct {
	Out io.Writer
}

func New(out io.Writer) *Printer { return &Printer{Out: out} }

// Header prints the resolution context shared by all jobs.
func (p *Printer) Header(now time.Time, tzName string, horizon time.Duration) {
	fmt.Fprintf(p.Out, "Now: %s (%s)\n", now.Format(time.RFC3339), tzName)
	fmt.Fprintf(p.Out, "Horizon: %s\n", horizon)
	fmt.Fprintln(p.Out, "-")
}

// Job prints one job block: status line, findings, upcoming instants.
func (p *Printer) Job(r Result) {
	state := "ENABLED"
	if !r.Job.IsEnabled() {
		state = "DISABLED"
	}
	fmt.Fprintf(p.Out, "Job: %s [%s] %s\n", r.Job.DisplayName(), r.Job.EffectiveID(), state)

	for _, f := range r.Findings {
		fmt.Fprintf(p.Out, "  %s: %s\n", severityLabel(f.Severity), f.Message)
	}

	if r.Job.IsEnabled() {
		switch {
		case r.SimError != nil:
			fmt.Fprintf(p.Out, "  %s: simulation failed: %v\n", severityLabel(lint.SeverityError), r.SimError)
			fmt.Fprintln(p.Out, "  Next: (none within horizon)")
		case len(r.Times) == 0:
			fmt.Fprintln(p.Out, "  Next: (none within horizon)")
		default:
			fmt.Fprintf(p.Out, "  Next: %s\n", formatTimes(r.Times))
		}
	}

	fmt.Fprintln(p.Out)
}

// Summary prints severity counts over all findings.
func (p *Printer) Summary(findings []lint.Finding) {
	errors, warns, infos := lint.Tally(findings)
	fmt.Fprintln(p.Out, "Summary:")
	fmt.Fprintf(p.Out, "  ERROR: %d\n", errors)
	fmt.Fprintf(p.Out, "  WARN : %d\n", warns)
	fmt.Fprintf(p.Out, "  INFO : %d\n", infos)
}

// ExitCode maps aggregated findings to the process outcome: 2 when any
// ERROR finding exists, 0 otherwise.
func ExitCode(findings []lint.Finding) int {
	errors, _, _ := lint.Tally(findings)
	if errors > 0 {
		return 2
	}
	return 0
}

func formatTimes(times []time.Time) string {
	var b strings.Builder
	n := len(times)
	shown := n
	if shown > previewTriggers {
		shown = previewTriggers
	}
	for i := 0; i < shown; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(times[i].Format("2006-01-02T15:04-07:00"))
	}
	if n > shown {
		fmt.Fprintf(&b, " (+%d more)", n-shown)
	}
	return b.String()
}

func severityLabel(sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return errorLabel(string(sev))
	case lint.SeverityWarn:
		return warnLabel(string(sev))
	case lint.SeverityInfo:
		return infoLabel(string(sev))
	default:
		return string(sev)
	}
}
