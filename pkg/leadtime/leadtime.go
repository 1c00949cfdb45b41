package leadtime

import (
	"time"

	"github.com/pitstop/pitstop/pkg/calendar"
	"github.com/pitstop/pitstop/pkg/order"
)

// Breakdown is the aggregated lead time of one service order. All durations
// are calendar-clipped business time, not raw wall-clock time.
type Breakdown struct {
	// Ready is false while work start or work end is missing; the other
	// fields are zero in that case. A pending order is not an error.
	Ready bool
	// Gross is the clipped duration of the whole work window.
	Gross time.Duration
	// Blocked is the sum of every closed blocking interval, each clipped
	// through the calendar. Categories are summed independently, so
	// overlapping intervals can push Blocked past Gross.
	Blocked time.Duration
	// Net is Gross minus Blocked, clamped at zero.
	Net time.Duration
	// ByCategory holds each closed category's clipped contribution.
	ByCategory map[order.Category]time.Duration
	// Overnight reports whether the work window crosses a local calendar
	// date boundary.
	Overnight bool
}

// Compute aggregates the order's work window against its blocking intervals.
// Open intervals (started, not finished) contribute zero; they are counted
// only by the progress estimator.
func Compute(cp order.Checkpoints, cal *calendar.Calendar) Breakdown {
	if cp.WorkStart == nil || cp.WorkEnd == nil {
		return Breakdown{}
	}

	byCategory := make(map[order.Category]time.Duration, len(order.Categories))
	blocked := time.Duration(0)
	for _, interval := range cp.Intervals() {
		if !interval.Closed() {
			continue
		}
		contribution := cal.EffectiveDuration(*interval.Start, *interval.End)
		byCategory[interval.Category] = contribution
		blocked += contribution
	}

	gross := cal.EffectiveDuration(*cp.WorkStart, *cp.WorkEnd)
	net := gross - blocked
	if net < 0 {
		net = 0
	}

	return Breakdown{
		Ready:      true,
		Gross:      gross,
		Blocked:    blocked,
		Net:        net,
		ByCategory: byCategory,
		Overnight:  !cal.SameLocalDay(*cp.WorkStart, *cp.WorkEnd),
	}
}

// BlockedSoFar sums every blocking interval using now as the end bound for
// intervals that are still open. Used by the progress estimator, which wants
// in-flight waits counted.
func BlockedSoFar(cp order.Checkpoints, cal *calendar.Calendar, now time.Time) time.Duration {
	blocked := time.Duration(0)
	for _, interval := range cp.Intervals() {
		if interval.Start == nil {
			continue
		}
		end := now
		if interval.End != nil {
			end = *interval.End
		}
		blocked += cal.EffectiveDuration(*interval.Start, end)
	}
	return blocked
}
