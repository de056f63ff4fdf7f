// Package video defines the playback transport the editor drives and a
// simulated clock implementation of it.
package video

import "time"

// Player is the transport contract. Times are milliseconds; a Duration <= 0
// means the media duration is not known yet.
type Player interface {
	CurrentTime() int64
	Duration() int64
	IsPlaying() bool
	Seek(ms int64)
}

// BackwardsTolerance is the largest backwards jump in reported time that is
// treated as jitter and ignored.
const BackwardsTolerance int64 = 250

// Clock is a Player that advances with wall time while playing. It stands in
// for a real media element so timings can be synced against a running clock.
type Clock struct {
	duration int64
	position int64
	reported int64
	playing  bool
	last     time.Time
	now      func() time.Time
}

var _ Player = (*Clock)(nil)

// NewClock creates a paused clock at 0 for media of the given duration.
func NewClock(duration int64) *Clock {
	return &Clock{duration: duration, now: time.Now}
}

// WithNow replaces the wall clock source. Used by tests.
func (c *Clock) WithNow(now func() time.Time) *Clock {
	c.now = now
	return c
}

// CurrentTime returns the smoothed playback position.
func (c *Clock) CurrentTime() int64 { return c.reported }

// Duration returns the media duration.
func (c *Clock) Duration() int64 { return c.duration }

// SetDuration updates the media duration, clamping the position into it.
func (c *Clock) SetDuration(ms int64) {
	c.duration = ms
	if ms > 0 && c.position > ms {
		c.position = ms
		c.reported = ms
	}
}

// IsPlaying reports whether the clock is running.
func (c *Clock) IsPlaying() bool { return c.playing }

// Seek jumps to ms, clamped to [0, duration]. Seeks bypass smoothing.
func (c *Clock) Seek(ms int64) {
	c.position = c.clamp(ms)
	c.reported = c.position
	c.last = c.now()
}

// Play starts the clock.
func (c *Clock) Play() {
	if c.playing {
		return
	}
	c.playing = true
	c.last = c.now()
}

// Pause stops the clock at the current position.
func (c *Clock) Pause() {
	if !c.playing {
		return
	}
	c.Tick()
	c.playing = false
}

// Toggle switches between playing and paused.
func (c *Clock) Toggle() {
	if c.playing {
		c.Pause()
	} else {
		c.Play()
	}
}

// Tick advances the position by the wall time elapsed since the previous
// tick and returns the reported time. Playback stops at the end of media.
func (c *Clock) Tick() int64 {
	now := c.now()
	if c.playing {
		// Carry the sub-millisecond remainder into the next tick.
		ms := now.Sub(c.last).Milliseconds()
		c.last = c.last.Add(time.Duration(ms) * time.Millisecond)
		c.position = c.clamp(c.position + ms)
		if c.duration > 0 && c.position >= c.duration {
			c.playing = false
		}
	} else {
		c.last = now
	}
	c.report(c.position)
	return c.reported
}

func (c *Clock) report(t int64) {
	if t < c.reported && c.reported-t < BackwardsTolerance {
		return
	}
	c.reported = t
}

func (c *Clock) clamp(ms int64) int64 {
	if ms < 0 {
		return 0
	}
	if c.duration > 0 && ms > c.duration {
		return c.duration
	}
	return ms
}
