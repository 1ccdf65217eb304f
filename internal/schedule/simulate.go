package schedule

import (
	"fmt"
	"strings"
	"time"

	"cronlint/internal/jobfile"
)

const (
	// MaxTriggers caps the emitted sequence so unbounded periodic/cron
	// schedules stay bounded.
	MaxTriggers = 200

	// maxWalkMinutes bounds the cron minute-walk independently of the
	// horizon. One year of minutes; the walk is meant for horizons of
	// hours or days.
	maxWalkMinutes = 366 * 24 * 60
)

// Simulate enumerates the future trigger instants of a schedule up to
// now+horizon, ordered and capped at MaxTriggers. Periodic and cron
// triggers start strictly after now; an instant at exactly now still fires. Cron schedules are
// projected into their own timezone when set, otherwise into def. The
// result is fully determined by the arguments.
func Simulate(s jobfile.Schedule, now time.Time, horizon time.Duration, def *time.Location) ([]time.Time, error) {
	loc := def
	if strings.TrimSpace(s.TZ) != "" {
		loc = Resolve(s.TZ)
	}
	if loc == nil {
		loc = time.Local
	}

	switch s.Kind {
	case jobfile.KindInstant:
		return simulateInstant(s, now, horizon, loc)
	case jobfile.KindInterval:
		return simulateInterval(s, now, horizon, loc)
	case jobfile.KindCron:
		return simulateCron(s, now, horizon, loc)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidSchedule, s.Kind)
	}
}

// simulateInstant fires at most once. Instants before now never trigger.
func simulateInstant(s jobfile.Schedule, now time.Time, horizon time.Duration, loc *time.Location) ([]time.Time, error) {
	if s.AtMs == nil {
		return nil, fmt.Errorf("%w: atMs missing", ErrInvalidSchedule)
	}
	at := time.UnixMilli(*s.AtMs).In(loc)
	if at.Before(now) || at.After(now.Add(horizon)) {
		return nil, nil
	}
	return []time.Time{at}, nil
}

// simulateInterval emits anchor + k*period for the smallest k >= 1 with
// anchor + k*period > now, then every period until the horizon or cap. When
// no anchor is set, now is the anchor. The anchor itself never fires.
func simulateInterval(s jobfile.Schedule, now time.Time, horizon time.Duration, loc *time.Location) ([]time.Time, error) {
	if s.EveryMs == nil {
		return nil, fmt.Errorf("%w: everyMs missing", ErrInvalidSchedule)
	}
	period := *s.EveryMs
	if period <= 0 {
		return nil, fmt.Errorf("%w: everyMs must be positive, got %d", ErrInvalidSchedule, period)
	}

	nowMs := now.UnixMilli()
	anchorMs := nowMs
	if s.AnchorMs != nil {
		anchorMs = *s.AnchorMs
	}

	// Integer division truncates toward zero; for a future anchor that can
	// yield k <= 0, which the clamp below corrects.
	k := (nowMs-anchorMs)/period + 1
	if k < 1 {
		k = 1
	}

	endMs := now.Add(horizon).UnixMilli()
	var out []time.Time
	for t := anchorMs + k*period; t <= endMs && len(out) < MaxTriggers; t += period {
		out = append(out, time.UnixMilli(t).In(loc))
	}
	return out, nil
}

// simulateCron walks minute-by-minute from the minute immediately after now
// through the horizon, re-projecting each instant into loc so DST
// transitions are handled correctly.
func simulateCron(s jobfile.Schedule, now time.Time, horizon time.Duration, loc *time.Location) ([]time.Time, error) {
	expr := strings.TrimSpace(s.Expr)
	if expr == "" {
		return nil, fmt.Errorf("%w: cron expr missing", ErrInvalidSchedule)
	}
	ce, err := ParseExpr(expr)
	if err != nil {
		return nil, err
	}

	end := now.Add(horizon)
	t := now.Truncate(time.Minute).Add(time.Minute)

	var out []time.Time
	for steps := 0; !t.After(end) && len(out) < MaxTriggers && steps < maxWalkMinutes; steps++ {
		if local := t.In(loc); ce.Matches(local) {
			out = append(out, local)
		}
		t = t.Add(time.Minute)
	}
	return out, nil
}
