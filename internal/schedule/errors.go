package schedule

import "errors"

var (
	// ErrMalformedExpression marks cron parse failures: wrong field count,
	// invalid step, out-of-range or non-numeric values. The wrapped message
	// always names the offending field or token.
	ErrMalformedExpression = errors.New("malformed cron expression")

	// ErrInvalidSchedule marks schedule parameter failures: unknown kind,
	// missing required parameter, non-positive interval period.
	ErrInvalidSchedule = errors.New("invalid schedule")
)
