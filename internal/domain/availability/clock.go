package availability

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	ClockLayout = "15:04"
	DateLayout  = "2006-01-02"
)

// Clock is a wall-clock time of day in minutes since midnight.
type Clock int

func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Date is a calendar date with no time zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Weekday() Weekday {
	return WeekdayOf(time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday())
}

func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// At returns the instant of wall-clock c on d in loc.
func (d Date) At(c Clock, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, int(c), 0, 0, loc)
}

// AtExact is At, reporting false when c does not exist on d in loc, as in
// the hour skipped by a spring-forward DST change.
func (d Date) AtExact(c Clock, loc *time.Location) (time.Time, bool) {
	t := d.At(c, loc)
	if DateOf(t) != d || Clock(t.Hour()*60+t.Minute()) != c {
		return t, false
	}
	return t, true
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

var weekdays = [...]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

func WeekdayOf(w time.Weekday) Weekday {
	return weekdays[w]
}

func ParseWeekday(s string) (Weekday, error) {
	w := Weekday(strings.ToLower(strings.TrimSpace(s)))
	if !w.Valid() {
		return "", fmt.Errorf("invalid day of week %q", s)
	}
	return w, nil
}

func (w Weekday) Valid() bool {
	for _, d := range weekdays {
		if d == w {
			return true
		}
	}
	return false
}
