// Package schedule is the pure scheduling engine: it parses 5-field cron
// expressions, resolves timezones, and enumerates upcoming trigger instants
// for the three schedule kinds (at/every/cron).
//
// # Cron dialect
//
// Field syntax is "*", "*/n", comma lists, and bare integers. Day-of-week
// accepts 7 as an alias for Sunday (0). Day-of-month and day-of-week must
// BOTH match for an instant to fire; this dialect deliberately does not
// apply the POSIX rule where either field matching is enough when both are
// restricted. Existing schedules depend on the AND behavior, so it must not
// be "fixed".
//
// # Simulation
//
// The cron simulator advances one minute at a time and re-projects every
// instant into the schedule's timezone, which keeps it correct across DST
// transitions. The walk is O(horizon) and intended for horizons of hours or
// days; both the emission count and the walk length are capped.
//
// Everything here is pure: no I/O, no ambient clock reads, no shared state.
// For fixed inputs the output is exactly reproducible, and independent jobs
// can be simulated concurrently by the caller without locking.
package schedule
