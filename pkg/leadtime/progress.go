package leadtime

import (
	"time"

	"github.com/pitstop/pitstop/pkg/calendar"
	"github.com/pitstop/pitstop/pkg/order"
)

const (
	stepWeight = 0.7
	timeWeight = 0.3
	// incompleteCap keeps progress visually short of 100 until the order
	// is truly finished.
	incompleteCap = 99.99
)

// coreFields are the checkpoints every order is expected to pass through.
var coreFields = []order.CheckpointField{
	order.FieldArrival,
	order.FieldReceptionStart,
	order.FieldPaperworkPrinted,
	order.FieldEstimateStart,
	order.FieldEstimateEnd,
	order.FieldWorkStart,
	order.FieldWorkEnd,
	order.FieldHandback,
}

// EstimateProgress combines checkpoint completion and active elapsed time into
// a 0-100 figure. It returns exactly 100 only when the order is fully
// completed: handback recorded and every opened blocking interval closed.
func EstimateProgress(o order.ServiceOrder, cal *calendar.Calendar, now time.Time) float64 {
	cp := o.Checkpoints

	if cp.Handback != nil && allOpenedIntervalsClosed(cp) {
		return 100
	}

	// Step ratio: opened blocking categories add their start/end pair to
	// the expected set; a category never opened does not count against the
	// denominator.
	completed := 0
	expected := len(coreFields)
	for _, f := range coreFields {
		if cp.IsSet(f) {
			completed++
		}
	}
	for _, cat := range cp.OpenedCategories() {
		expected += 2
		completed++ // the start is set by definition of "opened"
		if cp.Interval(cat).Closed() {
			completed++
		}
	}
	stepRatio := float64(completed) / float64(expected)

	// The elapsed bound stays at "now" until the order is fully completed.
	// Bounding at work end would shrink the window the moment that
	// checkpoint lands and let progress move backwards.
	timeRatio := 0.0
	if cp.Arrival != nil {
		totalElapsed := cal.EffectiveDuration(*cp.Arrival, now)
		if totalElapsed > 0 {
			activeElapsed := totalElapsed - BlockedSoFar(cp, cal, now)
			if activeElapsed < 0 {
				activeElapsed = 0
			}
			timeRatio = float64(activeElapsed) / float64(totalElapsed)
		}
	}

	progress := (stepRatio*stepWeight + timeRatio*timeWeight) * 100
	if progress < 0 {
		progress = 0
	}
	if progress > incompleteCap {
		progress = incompleteCap
	}
	return progress
}

func allOpenedIntervalsClosed(cp order.Checkpoints) bool {
	for _, interval := range cp.Intervals() {
		if interval.Open() {
			return false
		}
	}
	return true
}
