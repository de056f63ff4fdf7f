// Package timeline maps between timeline pixels and media milliseconds.
package timeline

import (
	"math"

	"github.com/colonyops/cuesync/internal/core/subtitle"
)

// DefaultScale renders 1 pixel (or terminal cell) per 10ms.
const DefaultScale = 1.0

// SnapTolerancePX is how close, in pixels, a drag must come to a snap target
// to lock onto it.
const SnapTolerancePX = 5

// ToMilliseconds converts a pixel distance to a millisecond delta.
func ToMilliseconds(px int, scale float64) int64 {
	return int64(math.Round(float64(px) * 10 / scale))
}

// ToPixels converts a millisecond duration to pixels, rounding down.
func ToPixels(ms int64, scale float64) int {
	return int(math.Floor(scale * float64(ms) / 10))
}

// DeltaPXToDeltaMS converts pointer movement to a millisecond delta,
// preferring the first snap target within SnapTolerancePX.
func DeltaPXToDeltaMS(deltaPX int, scale float64, snappings []int64) int64 {
	return DeltaPXToDeltaMSTolerance(deltaPX, scale, snappings, SnapTolerancePX)
}

// DeltaPXToDeltaMSTolerance is DeltaPXToDeltaMS with an explicit tolerance.
func DeltaPXToDeltaMSTolerance(deltaPX int, scale float64, snappings []int64, tolerancePX int) int64 {
	for _, snapTo := range snappings {
		if abs(ToPixels(snapTo, scale)-deltaPX) <= tolerancePX {
			return snapTo
		}
	}
	return ToMilliseconds(deltaPX, scale)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// BufferDuration is how much of the timeline is laid out at once.
const BufferDuration int64 = 60000

// BufferSpan is the time range laid out for rendering. Most of it lies ahead
// of the current time.
type BufferSpan struct {
	StartTime int64
	EndTime   int64
	Duration  int64
	Width     int
}

// NewBufferSpan positions a buffer around currentTime. A duration <= 0 means
// the media duration is unknown.
func NewBufferSpan(currentTime, duration int64, scale float64) BufferSpan {
	b := BufferSpan{Duration: BufferDuration}
	b.StartTime = currentTime - b.Duration/4
	// Allow a little space left of 0 so the "0" label is not clipped.
	if b.StartTime < -500 {
		b.StartTime = -500
	}
	b.EndTime = b.StartTime + b.Duration
	if duration > 0 {
		b.EndTime = min(b.EndTime, duration)
	}
	b.Width = ToPixels(b.Duration, scale)
	return b
}

// VisibleSpan is the part of the timeline currently on screen.
type VisibleSpan struct {
	StartTime int64
	EndTime   int64
	Duration  int64
	Scale     float64
}

// NewVisibleSpan centres a span of width pixels on currentTime, shifted by
// deltaMS while the timeline is being panned.
func NewVisibleSpan(currentTime int64, width int, scale float64, deltaMS int64) VisibleSpan {
	v := VisibleSpan{Scale: scale}
	v.Duration = ToMilliseconds(width, scale)
	v.StartTime = currentTime - v.Duration/2 + deltaMS
	v.EndTime = v.StartTime + v.Duration
	return v
}

// FitsIn reports whether the span can be drawn from buffer without
// re-laying it out.
func (v VisibleSpan) FitsIn(buffer BufferSpan, duration int64) bool {
	if v.StartTime < buffer.StartTime && buffer.StartTime > 0 {
		return false
	}
	if v.EndTime > buffer.EndTime && buffer.EndTime < duration {
		return false
	}
	return true
}

// Contains reports whether the whole subtitle is on screen.
func (v VisibleSpan) Contains(s *subtitle.Subtitle) bool {
	return v.StartTime < s.StartTime && v.EndTime > s.EndTime
}

// X returns the pixel column of t relative to the span start.
func (v VisibleSpan) X(t int64) int {
	return ToPixels(t-v.StartTime, v.Scale)
}

// TimeAt returns the time under pixel column x.
func (v VisibleSpan) TimeAt(x int) int64 {
	return v.StartTime + ToMilliseconds(x, v.Scale)
}
