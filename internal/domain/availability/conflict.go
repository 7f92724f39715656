package availability

// Reservation is the part of an existing booking the conflict check needs.
type Reservation struct {
	Window
	Cancelled bool
}

// FilterAvailable drops every window that overlaps a non-cancelled
// reservation. Input order is preserved.
func FilterAvailable(windows []Window, reservations []Reservation) []Window {
	out := make([]Window, 0, len(windows))

	for _, w := range windows {
		free := true
		for _, r := range reservations {
			if r.Cancelled {
				continue
			}
			if w.Overlaps(r.Window) {
				free = false
				break
			}
		}
		if free {
			out = append(out, w)
		}
	}

	return out
}

// Contains reports whether target is exactly one of windows.
func Contains(windows []Window, target Window) bool {
	for _, w := range windows {
		if w == target {
			return true
		}
	}
	return false
}
