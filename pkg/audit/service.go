package audit

import (
	"context"

	"github.com/pitstop/pitstop/internal/event_bus"
	"github.com/pitstop/pitstop/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetActivity(ctx context.Context, orderId int) ([]Entry, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

// NewService builds the activity log service and subscribes it to checkpoint
// events. Recording is best effort: a failed write is logged and never fails
// the checkpoint that triggered it.
func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	service := &ServiceImpl{repo: repo, clock: &utils.SystemClock{}}
	event_bus.SubscribeTyped[event_bus.CheckpointRecorded](
		eventBus,
		event_bus.CheckpointRecordedEvent,
		func(e event_bus.EventT[event_bus.CheckpointRecorded]) error {
			log.Debugf("received checkpoint recorded event: %v", e.Data)
			if err := service.record(e.Context(), e.Data); err != nil {
				log.Errorf("failed to record activity for order %d: %v", e.Data.OrderId, err)
				return err
			}
			return nil
		},
	)
	return service
}

func (s *ServiceImpl) record(ctx context.Context, data event_bus.CheckpointRecorded) error {
	_, err := s.repo.Store(ctx, Entry{
		OrderId:    data.OrderId,
		Field:      data.Field,
		RecordedAt: data.RecordedAt,
		ActorName:  data.ActorName,
		ActorRole:  data.ActorRole,
		LoggedAt:   s.clock.Now().UTC(),
	})
	return err
}

func (s *ServiceImpl) GetActivity(ctx context.Context, orderId int) ([]Entry, error) {
	return s.repo.GetByOrderId(ctx, orderId)
}
