package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/pitstop/pitstop/pkg/actor"
)

var (
	// ErrPreconditionNotMet is returned when a required predecessor
	// checkpoint is still unset.
	ErrPreconditionNotMet = errors.New("precondition not met")
	// ErrAlreadySet is returned when writing a checkpoint that already
	// holds an instant. Checkpoints are write-once in normal flow.
	ErrAlreadySet = errors.New("checkpoint already set")
	// ErrUnauthorized is returned when the actor's role may not write the
	// checkpoint.
	ErrUnauthorized = errors.New("role not allowed to write checkpoint")
	// ErrInvalidInterval is returned when an end instant precedes the
	// start it pairs with.
	ErrInvalidInterval = errors.New("interval end precedes start")
	// ErrUnknownCheckpoint is returned for a field name the guard does not
	// know.
	ErrUnknownCheckpoint = errors.New("unknown checkpoint")
)

// guardRule gates one checkpoint: which role may write it, which checkpoints
// must already be set, and which earlier checkpoint the new instant must not
// precede.
type guardRule struct {
	role      actor.Role
	requires  []CheckpointField
	notBefore CheckpointField
}

func guardRules() map[CheckpointField]guardRule {
	rules := map[CheckpointField]guardRule{
		FieldArrival:          {role: actor.RoleServiceAdvisor},
		FieldReceptionStart:   {role: actor.RoleServiceAdvisor, requires: []CheckpointField{FieldArrival}},
		FieldPaperworkPrinted: {role: actor.RoleServiceAdvisor, requires: []CheckpointField{FieldReceptionStart}},
		FieldEstimateStart:    {role: actor.RoleServiceAdvisor, requires: []CheckpointField{FieldPaperworkPrinted}},
		FieldEstimateEnd:      {role: actor.RoleServiceAdvisor, requires: []CheckpointField{FieldEstimateStart}, notBefore: FieldEstimateStart},
		FieldWorkStart:        {role: actor.RoleController, requires: []CheckpointField{FieldReceptionStart, FieldPaperworkPrinted}},
		FieldWorkEnd:          {role: actor.RoleController, requires: []CheckpointField{FieldWorkStart}, notBefore: FieldWorkStart},
		FieldHandback:         {role: actor.RoleFrontOffice, requires: []CheckpointField{FieldWorkEnd}, notBefore: FieldWorkEnd},
	}
	for _, cat := range Categories {
		rules[cat.StartField()] = guardRule{role: actor.RoleController, requires: []CheckpointField{FieldWorkStart}}
		rules[cat.EndField()] = guardRule{role: actor.RoleController, requires: []CheckpointField{cat.StartField()}, notBefore: cat.StartField()}
	}
	return rules
}

// Guard enforces the checkpoint progression rules. It is stateless; every
// decision is a function of the order snapshot, the field, the actor, and the
// instant being written.
type Guard struct {
	rules map[CheckpointField]guardRule
}

func NewGuard() *Guard {
	return &Guard{rules: guardRules()}
}

// Check validates a prospective checkpoint write without performing it.
func (g *Guard) Check(o *ServiceOrder, field CheckpointField, a actor.Actor, at time.Time) error {
	rule, ok := g.rules[field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCheckpoint, field)
	}
	if a.Role != rule.role {
		return fmt.Errorf("%w: %s requires role %s, actor %s has role %s",
			ErrUnauthorized, field, rule.role, a.Name, a.Role)
	}
	if o.Checkpoints.IsSet(field) {
		return fmt.Errorf("%w: %s", ErrAlreadySet, field)
	}
	for _, required := range rule.requires {
		if !o.Checkpoints.IsSet(required) {
			return fmt.Errorf("%w: %s requires %s", ErrPreconditionNotMet, field, required)
		}
	}
	if rule.notBefore != "" {
		if earlier := o.Checkpoints.Get(rule.notBefore); earlier != nil && at.Before(*earlier) {
			return fmt.Errorf("%w: %s at %s precedes %s", ErrInvalidInterval, field, at.UTC().Format(time.RFC3339), rule.notBefore)
		}
	}
	return nil
}

// Apply validates and performs a checkpoint write on the order snapshot. The
// returned bool reports whether a timestamp was actually recorded: re-printing
// paperwork is accepted as a no-op without re-stamping.
func (g *Guard) Apply(o *ServiceOrder, field CheckpointField, a actor.Actor, at time.Time) (bool, error) {
	err := g.Check(o, field, a, at)
	if err != nil {
		if field == FieldPaperworkPrinted && errors.Is(err, ErrAlreadySet) {
			return false, nil
		}
		return false, err
	}
	o.Checkpoints.set(field, at)
	return true, nil
}
