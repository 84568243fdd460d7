// Package timer derives the live study clock shown for an active task.
package timer

import (
	"fmt"
	"math"
	"time"
)

// Phase classifies elapsed time against the estimate.
type Phase int

const (
	PhaseNormal Phase = iota
	PhaseWarning
	PhaseOvertime
)

func (p Phase) String() string {
	switch p {
	case PhaseWarning:
		return "warning"
	case PhaseOvertime:
		return "overtime"
	default:
		return "normal"
	}
}

const warnRatio = 0.8

// Elapsed is the time since startedAt, or zero if the task never started
// or the clock went backwards.
func Elapsed(startedAt *time.Time, now time.Time) time.Duration {
	if startedAt == nil {
		return 0
	}
	d := now.Sub(*startedAt)
	if d < 0 {
		return 0
	}
	return d
}

// MinutesTaken rounds elapsed up to whole minutes.
func MinutesTaken(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	return int(math.Ceil(elapsed.Seconds() / 60))
}

func ratio(elapsed time.Duration, estimateMinutes int) float64 {
	if estimateMinutes <= 0 {
		return 0
	}
	return elapsed.Seconds() / float64(estimateMinutes*60)
}

// Progress is elapsed over the estimate, clamped to [0,1].
func Progress(elapsed time.Duration, estimateMinutes int) float64 {
	return math.Min(1, math.Max(0, ratio(elapsed, estimateMinutes)))
}

// PhaseFor compares the unclamped ratio against the warning and overtime
// thresholds.
func PhaseFor(elapsed time.Duration, estimateMinutes int) Phase {
	r := ratio(elapsed, estimateMinutes)
	switch {
	case r > 1:
		return PhaseOvertime
	case r > warnRatio:
		return PhaseWarning
	default:
		return PhaseNormal
	}
}

// FormatClock renders elapsed as MM:SS. Minutes keep counting past 59.
func FormatClock(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	secs := int(elapsed / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
