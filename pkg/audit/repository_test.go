package audit

import (
	"context"
	"testing"
	"time"

	"github.com/pitstop/pitstop/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) (*RepositoryImpl, context.Context, int) {
	db := test_utils.SetupTestDB(t)

	// activity rows reference an order, so seed one
	result, err := db.Exec(`INSERT INTO service_order (uid, order_number) VALUES ('uid-1', 'WSO/2025/0001')`)
	require.NoError(t, err)
	orderId, err := result.LastInsertId()
	require.NoError(t, err)

	return NewRepository(db), context.Background(), int(orderId)
}

func TestRepositoryImpl_StoreAndGetByOrderId(t *testing.T) {
	// given
	repo, ctx, orderId := setupTestRepository(t)
	loggedAt := time.Date(2025, time.March, 3, 2, 0, 1, 0, time.UTC)

	first := Entry{
		OrderId:    orderId,
		Field:      "arrival",
		RecordedAt: time.Date(2025, time.March, 3, 1, 0, 0, 0, time.UTC),
		ActorName:  "Sari",
		ActorRole:  "service_advisor",
		LoggedAt:   loggedAt,
	}
	second := Entry{
		OrderId:    orderId,
		Field:      "work_start",
		RecordedAt: time.Date(2025, time.March, 3, 2, 0, 0, 0, time.UTC),
		ActorName:  "Budi",
		ActorRole:  "controller",
		LoggedAt:   loggedAt,
	}

	// when, stored out of order on purpose
	_, err := repo.Store(ctx, second)
	require.NoError(t, err)
	_, err = repo.Store(ctx, first)
	require.NoError(t, err)

	// then
	entries, err := repo.GetByOrderId(ctx, orderId)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "arrival", entries[0].Field)
	assert.Equal(t, "Sari", entries[0].ActorName)
	assert.Equal(t, first.RecordedAt, entries[0].RecordedAt)
	assert.Equal(t, loggedAt, entries[0].LoggedAt)
	assert.Equal(t, "work_start", entries[1].Field)
}

func TestRepositoryImpl_GetByOrderId_Empty(t *testing.T) {
	repo, ctx, orderId := setupTestRepository(t)

	entries, err := repo.GetByOrderId(ctx, orderId)

	require.NoError(t, err)
	assert.Empty(t, entries)
}
