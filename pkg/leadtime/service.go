package leadtime

import (
	"context"
	"time"

	"github.com/pitstop/pitstop/internal/utils"
	"github.com/pitstop/pitstop/pkg/calendar"
	"github.com/pitstop/pitstop/pkg/order"
	log "github.com/sirupsen/logrus"
)

// OrderLeadTime is one order together with all of its derived values.
type OrderLeadTime struct {
	Order     order.ServiceOrder
	Breakdown Breakdown
	Stage     Stage
	Progress  float64
}

// TimelineView is the chronological history of one order plus its totals.
type TimelineView struct {
	Entries []TimelineEntry
	Total   time.Duration
	Active  time.Duration
	Blocked time.Duration
	Ready   bool
}

// Statistics is a small floor-level summary over the current order list.
type Statistics struct {
	TotalOrders    int
	ByStage        map[Stage]int
	CompletedCount int
	AverageNet     time.Duration
}

type Service interface {
	GetOrderLeadTime(ctx context.Context, orderId int) (OrderLeadTime, error)
	ListOrderLeadTimes(ctx context.Context, filter order.ListFilter) ([]OrderLeadTime, int, error)
	GetTimeline(ctx context.Context, orderId int) (TimelineView, error)
	GetStatistics(ctx context.Context) (Statistics, error)
}

type ServiceImpl struct {
	repo  order.Repository
	cal   *calendar.Calendar
	clock utils.Clock
}

func NewService(repo order.Repository, cal *calendar.Calendar) *ServiceImpl {
	return &ServiceImpl{repo: repo, cal: cal, clock: &utils.SystemClock{}}
}

// derive recomputes every output value from the order snapshot. "now" is read
// once per call so the step and time ratios agree with each other.
func (s *ServiceImpl) derive(o order.ServiceOrder, now time.Time) OrderLeadTime {
	return OrderLeadTime{
		Order:     o,
		Breakdown: Compute(o.Checkpoints, s.cal),
		Stage:     ResolveStage(o),
		Progress:  EstimateProgress(o, s.cal, now),
	}
}

func (s *ServiceImpl) GetOrderLeadTime(ctx context.Context, orderId int) (OrderLeadTime, error) {
	o, err := s.repo.GetById(ctx, orderId)
	if err != nil {
		return OrderLeadTime{}, err
	}
	return s.derive(o, s.clock.Now()), nil
}

func (s *ServiceImpl) ListOrderLeadTimes(ctx context.Context, filter order.ListFilter) ([]OrderLeadTime, int, error) {
	orders, total, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	now := s.clock.Now()
	result := make([]OrderLeadTime, 0, len(orders))
	for _, o := range orders {
		result = append(result, s.derive(o, now))
	}
	return result, total, nil
}

func (s *ServiceImpl) GetTimeline(ctx context.Context, orderId int) (TimelineView, error) {
	o, err := s.repo.GetById(ctx, orderId)
	if err != nil {
		return TimelineView{}, err
	}

	breakdown := Compute(o.Checkpoints, s.cal)
	return TimelineView{
		Entries: BuildTimeline(o, s.cal),
		Total:   breakdown.Gross,
		Active:  breakdown.Net,
		Blocked: breakdown.Blocked,
		Ready:   breakdown.Ready,
	}, nil
}

func (s *ServiceImpl) GetStatistics(ctx context.Context) (Statistics, error) {
	// The floor holds tens of open orders at a time; paging is not worth it here.
	orders, total, err := s.repo.GetAll(ctx, order.ListFilter{Limit: 1000})
	if err != nil {
		return Statistics{}, err
	}
	log.Tracef("computing statistics over %d orders", len(orders))

	now := s.clock.Now()
	stats := Statistics{TotalOrders: total, ByStage: make(map[Stage]int)}
	netSum := time.Duration(0)
	for _, o := range orders {
		derived := s.derive(o, now)
		stats.ByStage[derived.Stage]++
		if derived.Stage == StageCompleted && derived.Breakdown.Ready {
			stats.CompletedCount++
			netSum += derived.Breakdown.Net
		}
	}
	if stats.CompletedCount > 0 {
		stats.AverageNet = netSum / time.Duration(stats.CompletedCount)
	}
	return stats, nil
}
