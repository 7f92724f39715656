package availability

// Window is a half-open time range [Start, End) on a single date.
type Window struct {
	Start Clock `json:"startTime"`
	End   Clock `json:"endTime"`
}

func (w Window) Minutes() int {
	return int(w.End - w.Start)
}

// Overlaps uses half-open semantics: windows that only touch do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start < o.End && w.End > o.Start
}

func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}
