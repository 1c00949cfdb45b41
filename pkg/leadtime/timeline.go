package leadtime

import (
	"sort"
	"time"

	"github.com/pitstop/pitstop/pkg/calendar"
	"github.com/pitstop/pitstop/pkg/order"
)

// TimelineEntry is one chronological event in an order's history, formatted
// in the calendar's local timezone.
type TimelineEntry struct {
	Time        time.Time
	LocalTime   string
	Type        string
	Description string
}

type timelineField struct {
	field       order.CheckpointField
	eventType   string
	description string
}

func timelineFields() []timelineField {
	fields := []timelineField{
		{order.FieldArrival, "check_in", "Vehicle checked in"},
		{order.FieldReceptionStart, "reception_start", "Reception started"},
		{order.FieldPaperworkPrinted, "paperwork_printed", "Work order printed"},
		{order.FieldEstimateStart, "estimate_start", "Estimation started"},
		{order.FieldEstimateEnd, "estimate_end", "Estimation finished"},
		{order.FieldWorkStart, "service_start", "Service started"},
	}
	descriptions := map[order.Category]string{
		order.ConfirmationWait: "confirmation wait",
		order.PartsWait1:       "parts wait",
		order.PartsWait2:       "second parts wait",
		order.SubletWait:       "sublet wait",
		order.RestBreak:        "rest break",
		order.OtherStop:        "stop",
	}
	for _, cat := range order.Categories {
		fields = append(fields,
			timelineField{cat.StartField(), "job_stop_start", "Started " + descriptions[cat]},
			timelineField{cat.EndField(), "job_stop_end", "Finished " + descriptions[cat]},
		)
	}
	fields = append(fields,
		timelineField{order.FieldWorkEnd, "service_end", "Service finished"},
		timelineField{order.FieldHandback, "check_out", "Vehicle handed back"},
	)
	return fields
}

// BuildTimeline returns every populated checkpoint as a chronological event
// list with local HH:MM formatting.
func BuildTimeline(o order.ServiceOrder, cal *calendar.Calendar) []TimelineEntry {
	entries := make([]TimelineEntry, 0)
	for _, f := range timelineFields() {
		instant := o.Checkpoints.Get(f.field)
		if instant == nil {
			continue
		}
		entries = append(entries, TimelineEntry{
			Time:        *instant,
			LocalTime:   instant.In(cal.Location()).Format("15:04"),
			Type:        f.eventType,
			Description: f.description,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Time.Before(entries[j].Time)
	})
	return entries
}
