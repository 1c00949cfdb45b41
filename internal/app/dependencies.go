package app

import (
	"database/sql"

	"github.com/pitstop/pitstop/internal/event_bus"
	"github.com/pitstop/pitstop/internal/utils"
	"github.com/pitstop/pitstop/pkg/actor"
	"github.com/pitstop/pitstop/pkg/audit"
	"github.com/pitstop/pitstop/pkg/calendar"
	"github.com/pitstop/pitstop/pkg/leadtime"
	"github.com/pitstop/pitstop/pkg/order"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	ActorRepo    actor.ActorRepo
	ActorService actor.Service
	ActorHandler *actor.Handler

	OrderRepo    order.Repository
	OrderService order.Service
	OrderHandler *order.Handler

	LeadTimeService leadtime.Service
	LeadTimeHandler *leadtime.Handler

	AuditRepo    audit.Repository
	AuditService audit.Service
	AuditHandler *audit.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, workshopCalendar *calendar.Calendar) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.ActorRepo = actor.NewActorRepo(db)
	deps.ActorService = actor.NewActorService(deps.ActorRepo)
	deps.ActorHandler = actor.NewHandler(deps.ActorService)

	deps.OrderRepo = order.NewRepository(db)
	deps.OrderService = order.NewService(deps.OrderRepo, deps.EventBus)
	deps.OrderHandler = order.NewHandler(deps.OrderService)

	deps.LeadTimeService = leadtime.NewService(deps.OrderRepo, workshopCalendar)
	deps.LeadTimeHandler = leadtime.NewHandler(deps.LeadTimeService)

	// Audit subscribes itself to checkpoint events on construction.
	deps.AuditRepo = audit.NewRepository(db)
	deps.AuditService = audit.NewService(deps.AuditRepo, deps.EventBus)
	deps.AuditHandler = audit.NewHandler(deps.AuditService)

	return deps
}
