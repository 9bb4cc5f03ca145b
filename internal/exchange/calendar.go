package exchange

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-addressbook/internal/book"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// CalendarBuilder renders upcoming birthdays as an iCalendar feed, one
// all-day event per congratulation date.
type CalendarBuilder struct {
	Clock book.Clock

	// ReminderTrigger is an ISO8601 duration (e.g. "-P1D"); empty disables alarms.
	ReminderTrigger string

	// FormatSummary lets the caller inject localized event titles.
	FormatSummary func(name string) string
}

// Build encodes entries. An empty list yields a minimal valid VCALENDAR so
// subscribed clients never see a broken feed.
func (c *CalendarBuilder) Build(entries []book.UpcomingBirthday) ([]byte, error) {
	if len(entries) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	stamp := ical.NewProp(config.PropDTStamp)
	stamp.SetDateTime(c.Clock.Now().UTC())

	for _, e := range entries {
		event := c.newEvent(e)
		event.Props.Set(stamp)
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgFeedUpdated,
		config.LogKeyComponent, config.CompExchange,
		config.LogKeyCount, len(entries),
		config.LogKeySizeBytes, buf.Len())
	return buf.Bytes(), nil
}

func (c *CalendarBuilder) newEvent(e book.UpcomingBirthday) *ical.Event {
	event := ical.NewEvent()

	day := e.Congratulation.Format(config.DateFormatICalDate)
	uid := uuid.NewSHA1(uidNamespace, []byte(e.Name.String()+"|"+day))
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uid, day, config.ICalDomain))

	summary := fmt.Sprintf(config.FallbackSummary, e.Name)
	if c.FormatSummary != nil {
		summary = c.FormatSummary(e.Name.String())
	}
	event.Props.SetText(config.PropSummary, summary)

	start := ical.NewProp(config.PropDTStart)
	start.SetDate(e.Congratulation)
	event.Props.Set(start)

	if c.ReminderTrigger != "" {
		addAlarm(event, c.ReminderTrigger, summary)
	}
	return event
}

// addAlarm appends a DISPLAY alarm to event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set the raw value to avoid a VALUE=TEXT parameter on TRIGGER.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
