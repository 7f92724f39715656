package availability

import (
	"github.com/BruksfildServices01/smart-hire/internal/httperr"
)

// Rule is either a RecurringRule or a SpecificDateRule.
type Rule interface {
	Day() Weekday
	Span() Window
	Available() bool
	AppliesOn(d Date) bool
	Recurring() bool

	// groupKey identifies the rules that must not overlap each other.
	groupKey() string
}

type RecurringRule struct {
	Weekday     Weekday
	Start       Clock
	End         Clock
	IsAvailable bool
}

func (r RecurringRule) Day() Weekday          { return r.Weekday }
func (r RecurringRule) Span() Window          { return Window{Start: r.Start, End: r.End} }
func (r RecurringRule) Available() bool       { return r.IsAvailable }
func (r RecurringRule) Recurring() bool       { return true }
func (r RecurringRule) AppliesOn(d Date) bool { return d.Weekday() == r.Weekday }
func (r RecurringRule) groupKey() string      { return string(r.Weekday) }

// SpecificDateRule applies on a single calendar date. Weekday is kept for
// grouping during validation and defaults to the weekday of Date.
type SpecificDateRule struct {
	Weekday     Weekday
	Date        Date
	Start       Clock
	End         Clock
	IsAvailable bool
}

func (r SpecificDateRule) Day() Weekday          { return r.Weekday }
func (r SpecificDateRule) Span() Window          { return Window{Start: r.Start, End: r.End} }
func (r SpecificDateRule) Available() bool       { return r.IsAvailable }
func (r SpecificDateRule) Recurring() bool       { return false }
func (r SpecificDateRule) AppliesOn(d Date) bool { return r.Date == d }
func (r SpecificDateRule) groupKey() string      { return string(r.Weekday) + "|" + r.Date.String() }

// NewRule builds the variant selected by recurring from the raw document
// fields. specificDate is ignored for recurring rules and required otherwise.
func NewRule(
	dayOfWeek string,
	startTime string,
	endTime string,
	isAvailable bool,
	recurring bool,
	specificDate string,
) (Rule, error) {

	start, err := ParseClock(startTime)
	if err != nil {
		return nil, httperr.Validation("invalid_start_time", err.Error())
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return nil, httperr.Validation("invalid_end_time", err.Error())
	}

	if recurring {
		day, err := ParseWeekday(dayOfWeek)
		if err != nil {
			return nil, httperr.Validation("invalid_day_of_week", err.Error())
		}
		return RecurringRule{
			Weekday:     day,
			Start:       start,
			End:         end,
			IsAvailable: isAvailable,
		}, nil
	}

	if specificDate == "" {
		return nil, httperr.Validation(
			"specific_date_required",
			"specificDate is required when recurringWeekly is false",
		)
	}
	date, err := ParseDate(specificDate)
	if err != nil {
		return nil, httperr.Validation("invalid_specific_date", err.Error())
	}

	day := date.Weekday()
	if dayOfWeek != "" {
		if day, err = ParseWeekday(dayOfWeek); err != nil {
			return nil, httperr.Validation("invalid_day_of_week", err.Error())
		}
	}

	return SpecificDateRule{
		Weekday:     day,
		Date:        date,
		Start:       start,
		End:         end,
		IsAvailable: isAvailable,
	}, nil
}
