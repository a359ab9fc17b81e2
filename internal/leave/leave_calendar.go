package leave

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// BuildCalendar renders approved leave in the window as an iCalendar feed.
// Events are all-day; DTEND is exclusive per RFC 5545, so one day past the
// stored inclusive end date.
func (s *service) BuildCalendar(ctx context.Context, from, to time.Time) (string, error) {
	items, err := s.repo.FindApprovedBetween(ctx, from, to)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//leavedesk//leave-calendar//EN")
	cal.SetName("Approved Leave")

	for _, item := range items {
		event := cal.AddEvent(fmt.Sprintf("leave-%s@leavedesk", item.ID))
		event.SetSummary(item.LeaveTypeName)
		event.SetAllDayStartAt(item.StartDate)
		event.SetAllDayEndAt(item.EndDate.AddDate(0, 0, 1))
		event.SetDtStampTime(time.Now().UTC())
		if item.Reason != "" {
			event.SetDescription(item.Reason)
		}
	}

	return cal.Serialize(), nil
}
