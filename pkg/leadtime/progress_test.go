package leadtime

import (
	"testing"
	"time"

	"github.com/pitstop/pitstop/pkg/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateProgress(t *testing.T) {
	cal := workshopCalendar(t)

	t.Run("empty order has zero progress", func(t *testing.T) {
		now := *at(t, 3, 9, 0)
		progress := EstimateProgress(order.ServiceOrder{}, cal, now)
		assert.Equal(t, 0.0, progress)
	})

	t.Run("fully completed order is exactly 100", func(t *testing.T) {
		o := order.ServiceOrder{ServiceCategory: "maintenance", Checkpoints: order.Checkpoints{
			Arrival: at(t, 3, 8, 0), ReceptionStart: at(t, 3, 8, 15), PaperworkPrinted: at(t, 3, 8, 30),
			EstimateStart: at(t, 3, 8, 45), EstimateEnd: at(t, 3, 9, 0), WorkStart: at(t, 3, 9, 15),
			WorkEnd: at(t, 3, 15, 0), Handback: at(t, 3, 16, 0),
		}}
		progress := EstimateProgress(o, cal, *at(t, 3, 16, 30))
		assert.Equal(t, 100.0, progress)
	})

	t.Run("handback with an open interval is not 100", func(t *testing.T) {
		o := order.ServiceOrder{ServiceCategory: "maintenance", Checkpoints: order.Checkpoints{
			Arrival: at(t, 3, 8, 0), ReceptionStart: at(t, 3, 8, 15), PaperworkPrinted: at(t, 3, 8, 30),
			EstimateStart: at(t, 3, 8, 45), EstimateEnd: at(t, 3, 9, 0), WorkStart: at(t, 3, 9, 15),
			WorkEnd: at(t, 3, 15, 0), Handback: at(t, 3, 16, 0),
			OtherStopStart: at(t, 3, 10, 0),
		}}
		progress := EstimateProgress(o, cal, *at(t, 3, 16, 30))
		assert.Less(t, progress, 100.0)
	})

	t.Run("incomplete order never reaches 100", func(t *testing.T) {
		// Everything but handback, no time blocked at all: the step ratio
		// is 7/8 and the time ratio is 1.0.
		o := order.ServiceOrder{ServiceCategory: "maintenance", Checkpoints: order.Checkpoints{
			Arrival: at(t, 3, 8, 0), ReceptionStart: at(t, 3, 8, 15), PaperworkPrinted: at(t, 3, 8, 30),
			EstimateStart: at(t, 3, 8, 45), EstimateEnd: at(t, 3, 9, 0), WorkStart: at(t, 3, 9, 15),
			WorkEnd: at(t, 3, 15, 0),
		}}
		progress := EstimateProgress(o, cal, *at(t, 3, 15, 30))
		assert.Less(t, progress, 100.0)
		assert.Greater(t, progress, 80.0)
	})

	t.Run("unopened categories do not weigh the denominator", func(t *testing.T) {
		base := order.ServiceOrder{ServiceCategory: "maintenance", Checkpoints: order.Checkpoints{
			Arrival: at(t, 3, 8, 0), ReceptionStart: at(t, 3, 8, 15),
		}}
		withWait := base
		withWait.Checkpoints.PartsWait1Start = at(t, 3, 9, 0)
		withWait.Checkpoints.PartsWait1End = at(t, 3, 9, 30)

		now := *at(t, 3, 10, 0)
		// Opening and closing a wait adds two steps and completes both,
		// so the step ratio moves from 2/8 to 4/10.
		assert.Greater(t, EstimateProgress(withWait, cal, now), EstimateProgress(base, cal, now))
	})

	t.Run("monotonically non-decreasing as checkpoints accumulate", func(t *testing.T) {
		fields := []order.CheckpointField{
			order.FieldArrival, order.FieldReceptionStart, order.FieldPaperworkPrinted,
			order.FieldEstimateStart, order.FieldEstimateEnd,
			order.FieldWorkStart, order.FieldWorkEnd, order.FieldHandback,
		}
		instants := []*time.Time{
			at(t, 3, 8, 0), at(t, 3, 8, 15), at(t, 3, 8, 30),
			at(t, 3, 8, 45), at(t, 3, 9, 0),
			at(t, 3, 9, 15), at(t, 3, 15, 0), at(t, 3, 16, 0),
		}
		now := *at(t, 3, 16, 30)

		o := order.ServiceOrder{ServiceCategory: "maintenance"}
		previous := EstimateProgress(o, cal, now)
		slots := []**time.Time{
			&o.Checkpoints.Arrival, &o.Checkpoints.ReceptionStart, &o.Checkpoints.PaperworkPrinted,
			&o.Checkpoints.EstimateStart, &o.Checkpoints.EstimateEnd,
			&o.Checkpoints.WorkStart, &o.Checkpoints.WorkEnd, &o.Checkpoints.Handback,
		}
		for i := range fields {
			*slots[i] = instants[i]
			current := EstimateProgress(o, cal, now)
			require.GreaterOrEqual(t, current, previous, "after %s", fields[i])
			previous = current
		}
		assert.Equal(t, 100.0, previous)
	})

	t.Run("recording work end does not move progress backwards", func(t *testing.T) {
		// With a closed wait on the order, bounding elapsed time at work
		// end would shrink the window and drop the time ratio by more
		// than the extra step gains.
		o := order.ServiceOrder{ServiceCategory: "maintenance", Checkpoints: order.Checkpoints{
			Arrival: at(t, 3, 8, 0), ReceptionStart: at(t, 3, 8, 15), PaperworkPrinted: at(t, 3, 8, 30),
			EstimateStart: at(t, 3, 8, 45), EstimateEnd: at(t, 3, 9, 0), WorkStart: at(t, 3, 9, 0),
			ConfirmationWaitStart: at(t, 3, 9, 0), ConfirmationWaitEnd: at(t, 3, 12, 0),
		}}
		now := *at(t, 3, 16, 0)

		before := EstimateProgress(o, cal, now)
		o.Checkpoints.WorkEnd = at(t, 3, 13, 0)
		after := EstimateProgress(o, cal, now)

		assert.GreaterOrEqual(t, after, before)
	})

	t.Run("blocked time lowers the time ratio", func(t *testing.T) {
		active := order.ServiceOrder{ServiceCategory: "maintenance", Checkpoints: order.Checkpoints{
			Arrival: at(t, 3, 8, 0), ReceptionStart: at(t, 3, 8, 15), PaperworkPrinted: at(t, 3, 8, 30),
			EstimateStart: at(t, 3, 8, 45), EstimateEnd: at(t, 3, 9, 0), WorkStart: at(t, 3, 9, 15),
		}}
		blocked := active
		blocked.Checkpoints.ConfirmationWaitStart = at(t, 3, 9, 30)
		blocked.Checkpoints.ConfirmationWaitEnd = at(t, 3, 11, 30)

		now := *at(t, 3, 11, 30)
		activeProgress := EstimateProgress(active, cal, now)
		blockedProgress := EstimateProgress(blocked, cal, now)

		// The blocked order gained two steps but lost most of its time
		// ratio; the time component alone must have shrunk.
		assert.Less(t, blockedProgress-activeProgress, float64(timeWeight*100))
	})
}
