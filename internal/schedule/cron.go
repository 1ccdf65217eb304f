package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FieldSet is the set of integer values one cron field matches after
// expanding "*", "*/n" and comma lists.
type FieldSet map[int]struct{}

func (s FieldSet) Has(v int) bool {
	_, ok := s[v]
	return ok
}

// Expr is a parsed 5-field cron expression. Every set is non-empty after a
// successful parse.
type Expr struct {
	Minute FieldSet // 0..59
	Hour   FieldSet // 0..23
	Dom    FieldSet // 1..31
	Month  FieldSet // 1..12
	Dow    FieldSet // 0=Sun..6=Sat
}

// ParseExpr parses a cron expression with exactly five whitespace-separated
// fields (minute, hour, day-of-month, month, day-of-week). Parsing is pure
// and idempotent; no cross-field semantics are applied here.
func ParseExpr(expr string) (Expr, error) {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return Expr{}, fmt.Errorf("%w: want 5 fields, got %d: %q", ErrMalformedExpression, len(fields), strings.TrimSpace(expr))
	}

	minute, err := parseField("minute", fields[0], 0, 59, false)
	if err != nil {
		return Expr{}, err
	}
	hour, err := parseField("hour", fields[1], 0, 23, false)
	if err != nil {
		return Expr{}, err
	}
	dom, err := parseField("day-of-month", fields[2], 1, 31, false)
	if err != nil {
		return Expr{}, err
	}
	month, err := parseField("month", fields[3], 1, 12, false)
	if err != nil {
		return Expr{}, err
	}
	dow, err := parseField("day-of-week", fields[4], 0, 6, true)
	if err != nil {
		return Expr{}, err
	}

	return Expr{Minute: minute, Hour: hour, Dom: dom, Month: month, Dow: dow}, nil
}

// parseField expands one field within [min,max]. In dowMode the value 7 is
// normalized to 0 before the range check.
func parseField(name, field string, min, max int, dowMode bool) (FieldSet, error) {
	field = strings.TrimSpace(field)
	if field == "*" {
		out := make(FieldSet, max-min+1)
		for v := min; v <= max; v++ {
			out[v] = struct{}{}
		}
		return out, nil
	}

	out := FieldSet{}
	for _, part := range strings.Split(field, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if step, ok := strings.CutPrefix(part, "*/"); ok {
			n, err := strconv.Atoi(step)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: invalid step %q", ErrMalformedExpression, name, part)
			}
			if n <= 0 {
				return nil, fmt.Errorf("%w: %s: step must be positive: %q", ErrMalformedExpression, name, part)
			}
			for v := min; v <= max; v += n {
				out[v] = struct{}{}
			}
			continue
		}

		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: not a number: %q", ErrMalformedExpression, name, part)
		}
		if dowMode && v == 7 {
			v = 0
		}
		if v < min || v > max {
			return nil, fmt.Errorf("%w: %s: value out of range: %d not in [%d,%d]", ErrMalformedExpression, name, v, min, max)
		}
		out[v] = struct{}{}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s: field is empty", ErrMalformedExpression, name)
	}
	return out, nil
}

// Matches reports whether the wall-clock fields of t are in all five sets.
// Day-of-month and day-of-week are AND-combined (see package doc). The
// caller must pass t already projected into the schedule's timezone.
func (e Expr) Matches(t time.Time) bool {
	return e.Minute.Has(t.Minute()) &&
		e.Hour.Has(t.Hour()) &&
		e.Dom.Has(t.Day()) &&
		e.Month.Has(int(t.Month())) &&
		e.Dow.Has(CronWeekday(t.Weekday()))
}
