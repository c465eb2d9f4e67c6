// Package ics exports an event's scheduled tasks as an iCalendar invitation
// for the assigned crew.
package ics

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/alexanderramin/eventboard/internal/domain"
)

const productID = "-//eventboard//task export//EN"

type Options struct {
	// Organizer is the studio address placed in ORGANIZER. Empty omits it.
	Organizer string
	// Crew resolves CrewMemberID to an attendee. Tasks whose crew member is
	// missing are exported without one.
	Crew map[string]*domain.CrewMember
	// Now stamps DTSTAMP. Zero means time.Now.
	Now time.Time
}

// Export renders one all-day VEVENT per task. DTEND is the day after the
// task's last day because iCalendar end dates are exclusive.
func Export(ev *domain.Event, tasks []*domain.Task, opts Options) string {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ical.MethodRequest)
	cal.SetXWRCalName(ev.Name)

	for _, t := range tasks {
		start, end := t.Span()
		vev := cal.AddEvent(t.ID + "@eventboard")
		vev.SetDtStampTime(now)
		vev.SetModifiedAt(t.UpdatedAt.UTC())
		vev.SetSummary(t.Name)
		vev.SetDescription(ev.Name + " (" + ev.DisplayID() + ")")
		vev.SetAllDayStartAt(start.In(time.UTC))
		vev.SetAllDayEndAt(end.AddDays(1).In(time.UTC))
		if t.IsCompleted() {
			vev.SetStatus(ical.ObjectStatusConfirmed)
		} else {
			vev.SetStatus(ical.ObjectStatusTentative)
		}
		if opts.Organizer != "" {
			vev.SetOrganizer(opts.Organizer)
		}
		if t.CrewMemberID == nil {
			continue
		}
		m, ok := opts.Crew[*t.CrewMemberID]
		if !ok || m.Email == "" {
			continue
		}
		params := []ical.PropertyParameter{ical.WithCN(m.Name), partStat(t.InvitationStatus)}
		if t.InvitationStatus == domain.InvitationPending || t.InvitationStatus == domain.InvitationNone {
			params = append(params, ical.WithRSVP(true))
		}
		vev.AddAttendee(m.Email, params...)
	}
	return cal.Serialize()
}

func partStat(s domain.InvitationStatus) ical.ParticipationStatus {
	switch s {
	case domain.InvitationAccepted:
		return ical.ParticipationStatusAccepted
	case domain.InvitationDeclined:
		return ical.ParticipationStatusDeclined
	default:
		return ical.ParticipationStatusNeedsAction
	}
}
