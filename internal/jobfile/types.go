package jobfile

import (
	"encoding/json"
	"strings"
)

// Schedule kinds as they appear on the wire.
const (
	KindInstant  = "at"
	KindInterval = "every"
	KindCron     = "cron"
)

// Payload kinds the agent runtime understands. Other kinds are allowed to
// exist in a document but get flagged by the linter.
const (
	PayloadAgentTurn   = "agentTurn"
	PayloadSystemEvent = "systemEvent"
)

// Document is a job-list document, the unit the loader returns.
type Document struct {
	Jobs []Job `json:"jobs"`
}

// Job is one job definition. Fields mirror the wire format; helpers below
// apply the same defaults the rest of the agent tooling applies.
type Job struct {
	ID    string `json:"id,omitempty"`
	JobID string `json:"jobId,omitempty"` // alternate key used by some exports

	Name     string   `json:"name,omitempty"`
	Enabled  *bool    `json:"enabled,omitempty"` // nil means enabled
	Schedule Schedule `json:"schedule"`
	Payload  Payload  `json:"payload"`
}

// EffectiveID returns id, falling back to jobId, then "?".
func (j Job) EffectiveID() string {
	if j.ID != "" {
		return j.ID
	}
	if j.JobID != "" {
		return j.JobID
	}
	return "?"
}

// DisplayName returns the job name or "(unnamed)".
func (j Job) DisplayName() string {
	if strings.TrimSpace(j.Name) == "" {
		return "(unnamed)"
	}
	return j.Name
}

// IsEnabled treats an absent enabled flag as true.
func (j Job) IsEnabled() bool {
	return j.Enabled == nil || *j.Enabled
}

// Schedule is the tagged variant over the three schedule kinds. Pointer
// fields distinguish "absent" from zero so shape checks can report missing
// parameters.
type Schedule struct {
	Kind string `json:"kind,omitempty"`

	// kind "at"
	AtMs *int64 `json:"atMs,omitempty"`

	// kind "every"
	EveryMs  *int64 `json:"everyMs,omitempty"`
	AnchorMs *int64 `json:"anchorMs,omitempty"`

	// kind "cron"
	Expr string `json:"expr,omitempty"`
	TZ   string `json:"tz,omitempty"`
}

// KnownKind reports whether Kind is one of the three supported kinds.
func (s Schedule) KnownKind() bool {
	switch s.Kind {
	case KindInstant, KindInterval, KindCron:
		return true
	}
	return false
}

// Payload is the job payload. TimeoutSeconds stays raw so the linter can
// flag non-integer values instead of failing the whole document decode.
type Payload struct {
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
	Text    string `json:"text,omitempty"`

	TimeoutSeconds json.RawMessage `json:"timeoutSeconds,omitempty"`
}

// Body returns the payload message, falling back to the legacy text field.
func (p Payload) Body() string {
	if p.Message != "" {
		return p.Message
	}
	return p.Text
}

// KnownKind reports whether the payload kind is one the runtime executes.
func (p Payload) KnownKind() bool {
	switch p.Kind {
	case PayloadAgentTurn, PayloadSystemEvent:
		return true
	}
	return false
}
