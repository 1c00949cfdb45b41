package order

import (
	"time"
)

// Category names one kind of work-blocking wait. Exactly one interval per
// category exists on an order.
type Category string

const (
	ConfirmationWait Category = "confirmation_wait"
	PartsWait1       Category = "parts_wait_1"
	PartsWait2       Category = "parts_wait_2"
	SubletWait       Category = "sublet_wait"
	RestBreak        Category = "rest_break"
	OtherStop        Category = "other_stop"
)

// Categories lists every blocking category in a fixed order.
var Categories = []Category{ConfirmationWait, PartsWait1, PartsWait2, SubletWait, RestBreak, OtherStop}

func (c Category) Valid() bool {
	switch c {
	case ConfirmationWait, PartsWait1, PartsWait2, SubletWait, RestBreak, OtherStop:
		return true
	}
	return false
}

// CheckpointField names a single write-once timestamp on an order.
type CheckpointField string

const (
	FieldArrival          CheckpointField = "arrival"
	FieldReceptionStart   CheckpointField = "reception_start"
	FieldPaperworkPrinted CheckpointField = "paperwork_printed"
	FieldEstimateStart    CheckpointField = "estimate_start"
	FieldEstimateEnd      CheckpointField = "estimate_end"
	FieldWorkStart        CheckpointField = "work_start"
	FieldWorkEnd          CheckpointField = "work_end"
	FieldHandback         CheckpointField = "handback"
)

// StartField returns the checkpoint holding the category's opening instant.
func (c Category) StartField() CheckpointField {
	return CheckpointField(string(c) + "_start")
}

// EndField returns the checkpoint holding the category's closing instant.
func (c Category) EndField() CheckpointField {
	return CheckpointField(string(c) + "_end")
}

// Checkpoints holds every timestamp an order can accumulate. All instants are
// stored in UTC; a nil field means the checkpoint has not been reached.
type Checkpoints struct {
	Arrival          *time.Time
	ReceptionStart   *time.Time
	PaperworkPrinted *time.Time
	EstimateStart    *time.Time
	EstimateEnd      *time.Time
	WorkStart        *time.Time
	WorkEnd          *time.Time
	Handback         *time.Time

	ConfirmationWaitStart *time.Time
	ConfirmationWaitEnd   *time.Time
	PartsWait1Start       *time.Time
	PartsWait1End         *time.Time
	PartsWait2Start       *time.Time
	PartsWait2End         *time.Time
	SubletWaitStart       *time.Time
	SubletWaitEnd         *time.Time
	RestBreakStart        *time.Time
	RestBreakEnd          *time.Time
	OtherStopStart        *time.Time
	OtherStopEnd          *time.Time
}

// field returns a pointer to the struct slot for the named checkpoint, or nil
// for an unknown field.
func (c *Checkpoints) field(f CheckpointField) **time.Time {
	switch f {
	case FieldArrival:
		return &c.Arrival
	case FieldReceptionStart:
		return &c.ReceptionStart
	case FieldPaperworkPrinted:
		return &c.PaperworkPrinted
	case FieldEstimateStart:
		return &c.EstimateStart
	case FieldEstimateEnd:
		return &c.EstimateEnd
	case FieldWorkStart:
		return &c.WorkStart
	case FieldWorkEnd:
		return &c.WorkEnd
	case FieldHandback:
		return &c.Handback
	case ConfirmationWait.StartField():
		return &c.ConfirmationWaitStart
	case ConfirmationWait.EndField():
		return &c.ConfirmationWaitEnd
	case PartsWait1.StartField():
		return &c.PartsWait1Start
	case PartsWait1.EndField():
		return &c.PartsWait1End
	case PartsWait2.StartField():
		return &c.PartsWait2Start
	case PartsWait2.EndField():
		return &c.PartsWait2End
	case SubletWait.StartField():
		return &c.SubletWaitStart
	case SubletWait.EndField():
		return &c.SubletWaitEnd
	case RestBreak.StartField():
		return &c.RestBreakStart
	case RestBreak.EndField():
		return &c.RestBreakEnd
	case OtherStop.StartField():
		return &c.OtherStopStart
	case OtherStop.EndField():
		return &c.OtherStopEnd
	}
	return nil
}

// Get returns the checkpoint's instant, or nil when it is not set or unknown.
func (c *Checkpoints) Get(f CheckpointField) *time.Time {
	slot := c.field(f)
	if slot == nil {
		return nil
	}
	return *slot
}

// IsSet reports whether the checkpoint holds an instant.
func (c *Checkpoints) IsSet(f CheckpointField) bool {
	return c.Get(f) != nil
}

// set stores the instant (normalized to UTC) in the checkpoint slot. Callers
// go through the Guard; set performs no validation of its own.
func (c *Checkpoints) set(f CheckpointField, at time.Time) {
	slot := c.field(f)
	if slot == nil {
		return
	}
	utc := at.UTC()
	*slot = &utc
}

// Interval is a typed view over one blocking category's start/end pair.
type Interval struct {
	Category Category
	Start    *time.Time
	End      *time.Time
}

// Open reports whether the interval has started but not finished yet.
func (i Interval) Open() bool {
	return i.Start != nil && i.End == nil
}

// Closed reports whether both ends of the interval are set.
func (i Interval) Closed() bool {
	return i.Start != nil && i.End != nil
}

// Interval returns the category's interval view.
func (c *Checkpoints) Interval(cat Category) Interval {
	return Interval{
		Category: cat,
		Start:    c.Get(cat.StartField()),
		End:      c.Get(cat.EndField()),
	}
}

// Intervals returns every category's interval in the fixed category order.
func (c *Checkpoints) Intervals() []Interval {
	intervals := make([]Interval, 0, len(Categories))
	for _, cat := range Categories {
		intervals = append(intervals, c.Interval(cat))
	}
	return intervals
}

// OpenedCategories returns the categories whose interval has been started,
// open or closed.
func (c *Checkpoints) OpenedCategories() []Category {
	opened := make([]Category, 0, len(Categories))
	for _, cat := range Categories {
		if c.Interval(cat).Start != nil {
			opened = append(opened, cat)
		}
	}
	return opened
}

// ServiceOrder is one vehicle-service order being tracked through the
// workshop. Derived values (durations, stage, progress) are recomputed from
// Checkpoints on every read, never stored.
type ServiceOrder struct {
	Id              int
	Uid             string
	OrderNumber     string
	CustomerName    string
	VehiclePlate    string
	ServiceCategory string
	Notes           string
	Checkpoints     Checkpoints
}
