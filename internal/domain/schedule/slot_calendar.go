package schedule

import (
	"errors"
	"time"
)

// ErrInvalidFecha signals an unparsable calendar date. Callers must reject the
// request rather than treat it as an empty day.
var ErrInvalidFecha = errors.New("invalid fecha")

// SlotMinutes is the fixed grid granularity.
const SlotMinutes = 30

// Window is an operating window within one day, in minutes since midnight.
// Both endpoints are bookable when they fall on the 30-minute grid.
type Window struct {
	Open  int
	Close int
}

// Calendar produces the ordered slot labels for one barbero's weekly schedule.
//
// Slots are recomputed fresh on every call. The zero map value for a weekday
// means the barbería does not operate that day.
type Calendar struct {
	Weekly map[time.Weekday]Window
	Loc    *time.Location

	// Now is the clock used for same-day filtering. Overridable in tests.
	Now func() time.Time
}

// DefaultWeekly is the barbería's operating schedule: closed Mondays, a short
// Sunday morning, full days the rest of the week.
func DefaultWeekly() map[time.Weekday]Window {
	full := Window{Open: 9 * 60, Close: 17 * 60}
	return map[time.Weekday]Window{
		time.Tuesday:   full,
		time.Wednesday: full,
		time.Thursday:  full,
		time.Friday:    full,
		time.Saturday:  full,
		time.Sunday:    {Open: 9 * 60, Close: 13 * 60},
	}
}

// NewCalendar builds a calendar over the given location.
func NewCalendar(loc *time.Location) *Calendar {
	return &Calendar{
		Weekly: DefaultWeekly(),
		Loc:    loc,
		Now:    time.Now,
	}
}

// Slots returns the ordered, strictly increasing slot labels for fecha
// (YYYY-MM-DD), e.g. "9:00am", "9:30am", ... "5:00pm".
//
// When fecha is today in the calendar's location, slots starting at or before
// the current local time are excluded: the calendar never offers a time that
// has already elapsed.
func (c *Calendar) Slots(fecha string) ([]string, error) {
	day, err := time.ParseInLocation("2006-01-02", fecha, c.Loc)
	if err != nil {
		return nil, ErrInvalidFecha
	}

	window, open := c.Weekly[day.Weekday()]
	if !open {
		return []string{}, nil
	}

	now := c.Now().In(c.Loc)
	sameDay := now.Year() == day.Year() && now.YearDay() == day.YearDay()

	slots := []string{}
	for m := window.Open; m <= window.Close; m += SlotMinutes {
		start := day.Add(time.Duration(m) * time.Minute)
		if sameDay && !start.After(now) {
			continue
		}
		slots = append(slots, FormatLabel(m))
	}
	return slots, nil
}

// Contains reports whether hora is a currently bookable label for fecha.
func (c *Calendar) Contains(fecha, hora string) (bool, error) {
	slots, err := c.Slots(fecha)
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if s == hora {
			return true, nil
		}
	}
	return false, nil
}

// FormatLabel renders minutes since midnight as a 12-hour label ("2:30pm").
func FormatLabel(minutes int) string {
	t := time.Date(2000, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return t.Format("3:04pm")
}
