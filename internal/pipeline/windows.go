package pipeline

// Window is a [Start, End) slice of the media timeline, in seconds. Windows
// are generated once per task and have no identity beyond their position in
// the sequence.
type Window struct {
	Start float64
	End   float64
}

// SplitWindows covers [0, duration) with contiguous windows of at most span
// seconds. The final window may be shorter. A zero duration yields no windows.
func SplitWindows(duration, span float64) []Window {
	if duration <= 0 || span <= 0 {
		return nil
	}
	var windows []Window
	for start := 0.0; start < duration; {
		end := start + span
		if end > duration {
			end = duration
		}
		windows = append(windows, Window{Start: start, End: end})
		start = end
	}
	return windows
}
