package pipeline

import (
	"math"
	"testing"
)

func TestSplitWindows(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		span     float64
		want     []Window
	}{
		{
			"zero_duration_empty",
			0, 30,
			nil,
		},
		{
			"shorter_than_span",
			12, 30,
			[]Window{{0, 12}},
		},
		{
			"exact_multiple",
			60, 30,
			[]Window{{0, 30}, {30, 60}},
		},
		{
			"final_window_shorter",
			65, 30,
			[]Window{{0, 30}, {30, 60}, {60, 65}},
		},
		{
			"negative_duration_empty",
			-5, 30,
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitWindows(tt.duration, tt.span)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d windows, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("window[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Whatever the duration, the windows must tile [0, D) exactly: start at 0,
// chain end-to-start with no gaps or overlaps, and never exceed the span.
func TestSplitWindows_ExactCoverage(t *testing.T) {
	durations := []float64{0.5, 1, 29.9, 30, 30.1, 59, 65, 100, 3600.25}
	const span = 30.0

	for _, d := range durations {
		windows := SplitWindows(d, span)
		if len(windows) == 0 {
			t.Fatalf("D=%v: no windows", d)
		}
		if windows[0].Start != 0 {
			t.Errorf("D=%v: first window starts at %v", d, windows[0].Start)
		}
		for i, w := range windows {
			if w.End <= w.Start {
				t.Errorf("D=%v: window[%d] %v is empty or inverted", d, i, w)
			}
			if w.End-w.Start > span+1e-9 {
				t.Errorf("D=%v: window[%d] %v exceeds span", d, i, w)
			}
			if i > 0 && w.Start != windows[i-1].End {
				t.Errorf("D=%v: gap/overlap between %v and %v", d, windows[i-1], w)
			}
		}
		last := windows[len(windows)-1]
		if math.Abs(last.End-d) > 1e-9 {
			t.Errorf("D=%v: coverage ends at %v", d, last.End)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00"},
		{59.9, "00:00:59"},
		{61, "00:01:01"},
		{3661.5, "01:01:01"},
		{-3, "00:00:00"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.seconds); got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
