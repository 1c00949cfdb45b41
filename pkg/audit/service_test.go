package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitstop/pitstop/internal/event_bus"
	"github.com/pitstop/pitstop/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuditService(t *testing.T) (*ServiceImpl, *StubRepository, *event_bus.EventBus) {
	t.Helper()
	repo := &StubRepository{}
	bus := event_bus.NewEventBus()
	service := NewService(repo, bus)
	service.clock = &utils.MockClock{FixedNow: time.Date(2025, time.March, 3, 4, 0, 0, 0, time.UTC)}
	t.Cleanup(repo.Cleanup)
	return service, repo, bus
}

func TestCheckpointEventRecording(t *testing.T) {
	t.Run("checkpoint event appends an entry", func(t *testing.T) {
		_, repo, bus := setupAuditService(t)
		recordedAt := time.Date(2025, time.March, 3, 2, 15, 0, 0, time.UTC)

		err := bus.Publish(event_bus.NewEvent(context.Background(), event_bus.CheckpointRecordedEvent,
			event_bus.CheckpointRecorded{
				OrderId:    7,
				Field:      "work_start",
				RecordedAt: recordedAt,
				ActorName:  "Budi",
				ActorRole:  "controller",
			}))

		require.NoError(t, err)
		require.Len(t, repo.Entries, 1)
		entry := repo.Entries[0]
		assert.Equal(t, 7, entry.OrderId)
		assert.Equal(t, "work_start", entry.Field)
		assert.Equal(t, recordedAt, entry.RecordedAt)
		assert.Equal(t, "Budi", entry.ActorName)
		assert.Equal(t, "controller", entry.ActorRole)
		assert.Equal(t, time.Date(2025, time.March, 3, 4, 0, 0, 0, time.UTC), entry.LoggedAt)
	})

	t.Run("store failure surfaces through publish", func(t *testing.T) {
		_, repo, bus := setupAuditService(t)
		repo.StoreErr = errors.New("disk full")

		err := bus.Publish(event_bus.NewEvent(context.Background(), event_bus.CheckpointRecordedEvent,
			event_bus.CheckpointRecorded{OrderId: 7, Field: "work_start"}))

		assert.Error(t, err)
		assert.Empty(t, repo.Entries)
	})

	t.Run("unrelated events are ignored", func(t *testing.T) {
		_, repo, bus := setupAuditService(t)

		err := bus.Publish(event_bus.NewEvent(context.Background(), event_bus.OrderCreatedEvent,
			event_bus.OrderCreated{OrderId: 1, OrderNumber: "WSO/2025/0001"}))

		require.NoError(t, err)
		assert.Empty(t, repo.Entries)
	})
}

func TestGetActivity(t *testing.T) {
	t.Run("entries come back oldest first", func(t *testing.T) {
		service, repo, _ := setupAuditService(t)
		later := Entry{OrderId: 7, Field: "work_end", RecordedAt: time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)}
		earlier := Entry{OrderId: 7, Field: "work_start", RecordedAt: time.Date(2025, time.March, 3, 2, 0, 0, 0, time.UTC)}
		other := Entry{OrderId: 9, Field: "arrival", RecordedAt: time.Date(2025, time.March, 3, 1, 0, 0, 0, time.UTC)}
		for _, entry := range []Entry{later, earlier, other} {
			_, err := repo.Store(context.Background(), entry)
			require.NoError(t, err)
		}

		entries, err := service.GetActivity(context.Background(), 7)

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "work_start", entries[0].Field)
		assert.Equal(t, "work_end", entries[1].Field)
	})
}
