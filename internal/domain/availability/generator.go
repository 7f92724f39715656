package availability

import "time"

// GenerateSlots expands the rules that apply on date into bookable windows.
//
// Every applicable rule contributes independently, in input order, windows of
// exactly AppointmentDuration minutes spaced by Stride. Windows that would end
// after the rule's end are dropped, and so are windows starting less than
// BookingNotice hours after now, and windows that touch a wall-clock time
// skipped by a DST change. The result is never nil.
func GenerateSlots(
	date Date,
	rules []Rule,
	settings Settings,
	loc *time.Location,
	now time.Time,
) []Window {

	slots := []Window{}

	duration := Clock(settings.AppointmentDuration)
	stride := Clock(settings.Stride())
	if duration <= 0 || stride <= 0 {
		return slots
	}

	if loc == nil {
		loc = time.UTC
	}
	noticeMinutes := int64(settings.BookingNotice) * 60

	for _, rule := range rules {
		if !rule.Available() || !rule.AppliesOn(date) {
			continue
		}

		span := rule.Span()
		for cur := span.Start; cur+duration <= span.End; cur += stride {
			start, ok := date.AtExact(cur, loc)
			if !ok {
				continue
			}
			if _, ok := date.AtExact(cur+duration, loc); !ok {
				continue
			}
			if lead := start.Sub(now); lead < 0 || int64(lead/time.Minute) < noticeMinutes {
				continue
			}
			slots = append(slots, Window{Start: cur, End: cur + duration})
		}
	}

	return slots
}
