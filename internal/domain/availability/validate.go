package availability

import (
	"fmt"
	"sort"

	"github.com/BruksfildServices01/smart-hire/internal/httperr"
)

// ValidateRules rejects the whole batch when two rules of the same group
// overlap. Recurring rules are grouped by weekday, one-off rules by weekday
// and date.
func ValidateRules(rules []Rule) error {
	groups := make(map[string][]Window)
	var order []string

	for _, r := range rules {
		key := r.groupKey()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r.Span())
	}

	for _, key := range order {
		spans := groups[key]
		sort.SliceStable(spans, func(i, j int) bool {
			return spans[i].Start < spans[j].Start
		})

		for i := 0; i+1 < len(spans); i++ {
			if spans[i].End > spans[i+1].Start {
				return httperr.Validation(
					"overlapping_slots",
					fmt.Sprintf("overlapping time slots on %s: %s and %s", key, spans[i], spans[i+1]),
				)
			}
		}
	}

	return nil
}
