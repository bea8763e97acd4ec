package weeks

// NavigationState tracks the displayed week relative to the baseline
// captured once at the start of a run, from whatever week the human left
// the browser on after login. Only the week navigator mutates it.
type NavigationState struct {
	Baseline Stamp
	Current  Stamp
}

// NewNavigationState captures the baseline.
func NewNavigationState(baseline Stamp) NavigationState {
	return NavigationState{Baseline: baseline, Current: baseline}
}
