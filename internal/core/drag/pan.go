package drag

import "github.com/colonyops/cuesync/internal/core/eventbus"

// Pan scrubs the timeline without moving playback until the gesture ends.
type Pan struct {
	base
	currentTime int64
	clickTime   int64
	lastDelta   int64
}

func newPan(env *Env, group string, clickTime int64) *Pan {
	p := &Pan{
		base:        newBase(env, KindPan, group),
		currentTime: env.Player.CurrentTime(),
		clickTime:   clickTime,
	}
	p.minDelta = -p.currentTime
	if d := env.Player.Duration(); d > 0 {
		p.maxDelta = d - p.currentTime
	}
	p.finalize = p.onEnd
	return p
}

// Update shifts the view. Dragging right moves the view back in time.
func (p *Pan) Update(deltaMS int64) {
	if !p.begin() {
		return
	}
	p.lastDelta = p.Clamp(-deltaMS)
	p.env.Bus.PublishTimelineShifted(eventbus.TimelineShiftedPayload{DeltaMS: p.lastDelta})
}

func (p *Pan) onEnd() {
	if p.updates == 0 {
		p.env.seek(p.clickTime)
		return
	}
	p.env.seek(p.currentTime + p.lastDelta)
	p.env.Bus.PublishTimelineShifted(eventbus.TimelineShiftedPayload{})
}
