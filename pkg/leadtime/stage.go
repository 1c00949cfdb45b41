package leadtime

import (
	"github.com/pitstop/pitstop/pkg/order"
)

// Stage is the discrete milestone an order is currently in. It is derived
// from the checkpoint set on every read; there is no transition log.
type Stage string

const (
	StageNotStarted          Stage = "not_started"
	StageCategorySelected    Stage = "category_selected"
	StageCheckedIn           Stage = "checked_in"
	StageInReception         Stage = "in_reception"
	StagePaperworkPrinted    Stage = "paperwork_printed"
	StageEstimating          Stage = "estimating"
	StageWaitingConfirmation Stage = "waiting_confirmation"
	StageWaitingParts        Stage = "waiting_parts"
	StageInService           Stage = "in_service"
	StageServiceDone         Stage = "service_done"
	StageCompleted           Stage = "completed"
	StageAwaitingPickup      Stage = "awaiting_pickup"
)

// stageRule pairs a predicate with the stage it yields. Rules are evaluated
// top to bottom and the first match wins; this is a priority chain over a
// recomputed snapshot, not a state machine.
type stageRule struct {
	matches func(o order.ServiceOrder) bool
	stage   Stage
}

var stageRules = []stageRule{
	// Completion is checked before anything else: a handed-back order is
	// completed no matter what the rest of the record looks like.
	{func(o order.ServiceOrder) bool {
		return o.Checkpoints.Handback != nil
	}, StageCompleted},
	{func(o order.ServiceOrder) bool {
		return o.ServiceCategory == ""
	}, StageNotStarted},
	{func(o order.ServiceOrder) bool {
		return o.Checkpoints.Arrival == nil
	}, StageCategorySelected},
	{func(o order.ServiceOrder) bool {
		return o.Checkpoints.ReceptionStart == nil
	}, StageCheckedIn},
	{func(o order.ServiceOrder) bool {
		return o.Checkpoints.PaperworkPrinted == nil
	}, StageInReception},
	{func(o order.ServiceOrder) bool {
		return o.Checkpoints.EstimateStart == nil
	}, StagePaperworkPrinted},
	{func(o order.ServiceOrder) bool {
		return o.Checkpoints.EstimateEnd == nil
	}, StageEstimating},
	{func(o order.ServiceOrder) bool {
		return o.Checkpoints.Interval(order.ConfirmationWait).Open()
	}, StageWaitingConfirmation},
	{func(o order.ServiceOrder) bool {
		return o.Checkpoints.Interval(order.PartsWait1).Open() || o.Checkpoints.Interval(order.PartsWait2).Open()
	}, StageWaitingParts},
	{func(o order.ServiceOrder) bool {
		return o.Checkpoints.WorkStart != nil && o.Checkpoints.WorkEnd == nil
	}, StageInService},
	{func(o order.ServiceOrder) bool {
		return o.Checkpoints.WorkEnd != nil
	}, StageServiceDone},
}

// ResolveStage maps the order's populated checkpoints to its current stage.
// Total: every checkpoint combination yields exactly one stage, falling back
// to StageAwaitingPickup when no rule matches.
func ResolveStage(o order.ServiceOrder) Stage {
	for _, rule := range stageRules {
		if rule.matches(o) {
			return rule.stage
		}
	}
	return StageAwaitingPickup
}
