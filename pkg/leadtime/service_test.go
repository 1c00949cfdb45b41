package leadtime

import (
	"context"
	"testing"
	"time"

	"github.com/pitstop/pitstop/internal/utils"
	"github.com/pitstop/pitstop/pkg/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLeadTimeService(t *testing.T) (*ServiceImpl, *order.StubRepository, *utils.MockClock) {
	t.Helper()
	repo := &order.StubRepository{}
	clock := &utils.MockClock{FixedNow: *at(t, 3, 10, 0)}
	service := NewService(repo, workshopCalendar(t))
	service.clock = clock
	t.Cleanup(repo.Cleanup)
	return service, repo, clock
}

func storeOrder(t *testing.T, repo *order.StubRepository, o order.ServiceOrder) int {
	t.Helper()
	id, err := repo.Store(context.Background(), o)
	require.NoError(t, err)
	return id
}

func completedOrder(t *testing.T) order.ServiceOrder {
	t.Helper()
	return order.ServiceOrder{
		OrderNumber:     "WSO/2025/0001",
		CustomerName:    "Pak Hendra",
		ServiceCategory: "maintenance",
		Checkpoints: order.Checkpoints{
			Arrival: at(t, 3, 8, 0), ReceptionStart: at(t, 3, 8, 15), PaperworkPrinted: at(t, 3, 8, 30),
			EstimateStart: at(t, 3, 8, 45), EstimateEnd: at(t, 3, 9, 0), WorkStart: at(t, 3, 9, 0),
			ConfirmationWaitStart: at(t, 3, 10, 0), ConfirmationWaitEnd: at(t, 3, 11, 0),
			WorkEnd: at(t, 3, 15, 0), Handback: at(t, 3, 15, 30),
		},
	}
}

func TestGetOrderLeadTime(t *testing.T) {
	t.Run("derives breakdown, stage and progress together", func(t *testing.T) {
		service, repo, _ := setupLeadTimeService(t)
		id := storeOrder(t, repo, completedOrder(t))

		result, err := service.GetOrderLeadTime(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, "WSO/2025/0001", result.Order.OrderNumber)
		assert.True(t, result.Breakdown.Ready)
		assert.Equal(t, 5*time.Hour, result.Breakdown.Gross)
		assert.Equal(t, time.Hour, result.Breakdown.Blocked)
		assert.Equal(t, 4*time.Hour, result.Breakdown.Net)
		assert.Equal(t, StageCompleted, result.Stage)
		assert.Equal(t, 100.0, result.Progress)
	})

	t.Run("in-progress order reports a pending breakdown", func(t *testing.T) {
		service, repo, clock := setupLeadTimeService(t)
		id := storeOrder(t, repo, order.ServiceOrder{ServiceCategory: "maintenance", Checkpoints: order.Checkpoints{
			Arrival: at(t, 3, 8, 0), ReceptionStart: at(t, 3, 8, 15), PaperworkPrinted: at(t, 3, 8, 30),
			EstimateStart: at(t, 3, 8, 45), EstimateEnd: at(t, 3, 9, 0), WorkStart: at(t, 3, 9, 0),
		}})
		clock.SetNow(*at(t, 3, 11, 0))

		result, err := service.GetOrderLeadTime(context.Background(), id)

		require.NoError(t, err)
		assert.False(t, result.Breakdown.Ready)
		assert.Equal(t, StageInService, result.Stage)
		assert.Greater(t, result.Progress, 0.0)
		assert.Less(t, result.Progress, 100.0)
	})

	t.Run("unknown order propagates not found", func(t *testing.T) {
		service, _, _ := setupLeadTimeService(t)

		_, err := service.GetOrderLeadTime(context.Background(), 42)

		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

func TestListOrderLeadTimes(t *testing.T) {
	t.Run("derives every matched order", func(t *testing.T) {
		service, repo, _ := setupLeadTimeService(t)
		storeOrder(t, repo, completedOrder(t))
		storeOrder(t, repo, order.ServiceOrder{OrderNumber: "WSO/2025/0002", ServiceCategory: "repair", Checkpoints: order.Checkpoints{
			Arrival: at(t, 3, 9, 0),
		}})

		result, total, err := service.ListOrderLeadTimes(context.Background(), order.ListFilter{})

		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, result, 2)
		assert.Equal(t, StageCompleted, result[0].Stage)
		assert.Equal(t, StageCheckedIn, result[1].Stage)
	})

	t.Run("open-only filter hides handed-back orders", func(t *testing.T) {
		service, repo, _ := setupLeadTimeService(t)
		storeOrder(t, repo, completedOrder(t))
		storeOrder(t, repo, order.ServiceOrder{OrderNumber: "WSO/2025/0002"})

		result, total, err := service.ListOrderLeadTimes(context.Background(), order.ListFilter{OpenOnly: true})

		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, result, 1)
		assert.Equal(t, "WSO/2025/0002", result[0].Order.OrderNumber)
	})
}

func TestGetTimeline(t *testing.T) {
	t.Run("entries are chronological and totals match the breakdown", func(t *testing.T) {
		service, repo, _ := setupLeadTimeService(t)
		id := storeOrder(t, repo, completedOrder(t))

		view, err := service.GetTimeline(context.Background(), id)

		require.NoError(t, err)
		assert.True(t, view.Ready)
		assert.Equal(t, 5*time.Hour, view.Total)
		assert.Equal(t, time.Hour, view.Blocked)
		assert.Equal(t, 4*time.Hour, view.Active)
		require.NotEmpty(t, view.Entries)
		assert.Equal(t, "check_in", view.Entries[0].Type)
		assert.Equal(t, "check_out", view.Entries[len(view.Entries)-1].Type)
		for i := 1; i < len(view.Entries); i++ {
			assert.False(t, view.Entries[i].Time.Before(view.Entries[i-1].Time))
		}
	})

	t.Run("unknown order propagates not found", func(t *testing.T) {
		service, _, _ := setupLeadTimeService(t)

		_, err := service.GetTimeline(context.Background(), 42)

		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

func TestGetStatistics(t *testing.T) {
	t.Run("counts stages and averages net over completed orders", func(t *testing.T) {
		service, repo, _ := setupLeadTimeService(t)
		storeOrder(t, repo, completedOrder(t))

		second := completedOrder(t)
		second.OrderNumber = "WSO/2025/0002"
		second.Checkpoints.ConfirmationWaitStart = nil
		second.Checkpoints.ConfirmationWaitEnd = nil
		storeOrder(t, repo, second)

		storeOrder(t, repo, order.ServiceOrder{OrderNumber: "WSO/2025/0003", ServiceCategory: "repair", Checkpoints: order.Checkpoints{
			Arrival: at(t, 3, 9, 30),
		}})

		stats, err := service.GetStatistics(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalOrders)
		assert.Equal(t, 2, stats.ByStage[StageCompleted])
		assert.Equal(t, 1, stats.ByStage[StageCheckedIn])
		assert.Equal(t, 2, stats.CompletedCount)
		// (4h + 5h) / 2 completed orders.
		assert.Equal(t, 4*time.Hour+30*time.Minute, stats.AverageNet)
	})

	t.Run("empty floor yields zero statistics", func(t *testing.T) {
		service, _, _ := setupLeadTimeService(t)

		stats, err := service.GetStatistics(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalOrders)
		assert.Equal(t, 0, stats.CompletedCount)
		assert.Equal(t, time.Duration(0), stats.AverageNet)
	})
}
