package announcement

import (
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// uidNamespace scopes the deterministic iCal UIDs of calendar events.
var uidNamespace = uuid.MustParse("4f0a7e62-1c39-4d0b-9a57-2f3f0c8e7d11")

// WriteICS writes `events` to `w` as an iCalendar feed of all-day events.
func WriteICS(w io.Writer, events []CalendarEvent, prodID string, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)

	for _, ev := range events {
		vevent := ical.NewEvent()
		vevent.Props.SetText(ical.PropUID, eventUID(ev))
		vevent.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		vevent.Props.SetText(ical.PropSummary, ev.Title)
		vevent.Props.SetText(ical.PropCategories, ev.Category)
		// DTEND of an all-day event is exclusive
		vevent.Props.SetDate(ical.PropDateTimeStart, ev.Start)
		vevent.Props.SetDate(ical.PropDateTimeEnd, ev.End.AddDate(0, 0, 1))
		if ev.RegistrationURL != "" {
			vevent.Props.SetText(ical.PropURL, ev.RegistrationURL)
		}
		cal.Children = append(cal.Children, vevent.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return errors.Wrap(err, "encoding calendar")
	}
	return nil
}

// eventUID is stable for a given announcement & event span.
func eventUID(ev CalendarEvent) string {
	name := ev.AnnouncementID + "/" + ev.Start.Format("20060102") + "/" + ev.End.Format("20060102")
	return uuid.NewSHA1(uidNamespace, []byte(name)).String()
}
