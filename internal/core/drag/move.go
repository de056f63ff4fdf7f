package drag

import "github.com/colonyops/cuesync/internal/core/subtitle"

// Move shifts a subtitle without changing its duration.
type Move struct {
	base
	snap         snapshot
	cancelMoving func()
}

func newMove(env *Env, group string, s *subtitle.Subtitle) *Move {
	m := &Move{
		base: newBase(env, KindMove, group),
		snap: takeSnapshot(env.Seq, s, env.Player.CurrentTime(), env.Player.Duration()),
	}
	snap := m.snap

	m.minDelta = -snap.start
	if snap.prev != nil {
		m.minDelta = max(m.minDelta, -(snap.start - snap.prevEnd))
	}
	if snap.duration > 0 {
		m.maxDelta = snap.duration - snap.end
	}
	if snap.next != nil {
		m.maxDelta = min(m.maxDelta, snap.nextStart-snap.end)
	}
	m.snappings = []int64{snap.currentTime - snap.end, snap.currentTime - snap.start}

	env.Selection.Select(s)
	m.cancelMoving = env.Scheduler.Schedule(env.MovingDelay, func() {
		if m.state == StateActive {
			env.Markers.Set(s, MarkerMoving)
		}
	})
	m.finalize = m.onEnd
	return m
}

// Update moves the subtitle to [start+d, end+d] of the snapshot.
func (m *Move) Update(deltaMS int64) {
	if !m.begin() {
		return
	}
	d := m.Clamp(deltaMS)
	m.env.Markers.Set(m.snap.sub, MarkerMoving)
	m.apply(subtitle.Change{
		Subtitle:  m.snap.sub,
		StartTime: m.snap.start + d,
		EndTime:   m.snap.end + d,
	})
}

func (m *Move) onEnd() {
	m.cancelMoving()
	m.env.Markers.Clear(m.snap.sub, MarkerMoving)
}
