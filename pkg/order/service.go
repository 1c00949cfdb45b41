package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pitstop/pitstop/internal/event_bus"
	"github.com/pitstop/pitstop/internal/utils"
	"github.com/pitstop/pitstop/pkg/actor"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	CreateOrder(ctx context.Context, o ServiceOrder) (ServiceOrder, error)
	GetOrder(ctx context.Context, id int) (ServiceOrder, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]ServiceOrder, int, error)
	// RecordCheckpoint performs a guarded checkpoint write. A nil instant
	// means "now". The actor is taken from the context.
	RecordCheckpoint(ctx context.Context, orderId int, field CheckpointField, at *time.Time) (ServiceOrder, error)
	UpdateNotes(ctx context.Context, orderId int, notes string) (ServiceOrder, error)
}

type ServiceImpl struct {
	repo  Repository
	guard *Guard
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewService(repo Repository, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, guard: NewGuard(), bus: bus, clock: &utils.SystemClock{}}
}

func (s *ServiceImpl) CreateOrder(ctx context.Context, o ServiceOrder) (ServiceOrder, error) {
	if o.OrderNumber == "" {
		return ServiceOrder{}, fmt.Errorf("order number is required")
	}
	if o.Uid == "" {
		o.Uid = uuid.NewString()
	}
	id, err := s.repo.Store(ctx, o)
	if err != nil {
		return ServiceOrder{}, err
	}
	o.Id = id

	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.OrderCreatedEvent, event_bus.OrderCreated{
		OrderId:     o.Id,
		OrderNumber: o.OrderNumber,
	})); err != nil {
		log.Warnf("order created event delivery failed: %v", err)
	}
	return o, nil
}

func (s *ServiceImpl) GetOrder(ctx context.Context, id int) (ServiceOrder, error) {
	return s.repo.GetById(ctx, id)
}

func (s *ServiceImpl) ListOrders(ctx context.Context, filter ListFilter) ([]ServiceOrder, int, error) {
	return s.repo.GetAll(ctx, filter)
}

func (s *ServiceImpl) RecordCheckpoint(ctx context.Context, orderId int, field CheckpointField, at *time.Time) (ServiceOrder, error) {
	a, err := actor.Current(ctx)
	if err != nil {
		return ServiceOrder{}, fmt.Errorf("failed to get current actor: %w", err)
	}

	o, err := s.repo.GetById(ctx, orderId)
	if err != nil {
		return ServiceOrder{}, err
	}

	instant := s.clock.Now()
	if at != nil {
		instant = *at
	}

	recorded, err := s.guard.Apply(&o, field, a, instant)
	if err != nil {
		return ServiceOrder{}, err
	}
	if !recorded {
		log.Debugf("checkpoint %s already set on order %d, accepted as no-op", field, orderId)
		return o, nil
	}

	ok, err := s.repo.Update(ctx, o)
	if err != nil {
		return ServiceOrder{}, err
	}
	if !ok {
		return ServiceOrder{}, ErrOrderNotFound
	}

	// The audit trail is written by a bus subscriber; a failing sink must
	// never roll back the checkpoint write.
	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.CheckpointRecordedEvent, event_bus.CheckpointRecorded{
		OrderId:    o.Id,
		Field:      string(field),
		RecordedAt: instant,
		ActorName:  a.Name,
		ActorRole:  string(a.Role),
	})); err != nil {
		log.Warnf("checkpoint event delivery failed for order %d: %v", o.Id, err)
	}

	return o, nil
}

func (s *ServiceImpl) UpdateNotes(ctx context.Context, orderId int, notes string) (ServiceOrder, error) {
	o, err := s.repo.GetById(ctx, orderId)
	if err != nil {
		return ServiceOrder{}, err
	}
	o.Notes = notes
	ok, err := s.repo.Update(ctx, o)
	if err != nil {
		return ServiceOrder{}, err
	}
	if !ok {
		return ServiceOrder{}, ErrOrderNotFound
	}
	return o, nil
}
