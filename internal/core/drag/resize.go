package drag

import "github.com/colonyops/cuesync/internal/core/subtitle"

// ResizeStart moves the start edge of a subtitle.
type ResizeStart struct {
	base
	snap snapshot
}

func newResizeStart(env *Env, group string, s *subtitle.Subtitle) *ResizeStart {
	r := &ResizeStart{
		base: newBase(env, KindResizeStart, group),
		snap: takeSnapshot(env.Seq, s, env.Player.CurrentTime(), env.Player.Duration()),
	}
	snap := r.snap

	r.minDelta = -snap.start
	if snap.prev != nil {
		r.minDelta = max(r.minDelta, -(snap.start - snap.prevEnd))
	}
	r.maxDelta = (snap.end - snap.start) - env.MinDuration
	r.snappings = []int64{snap.currentTime - snap.start}

	env.Selection.Select(s)
	env.Markers.Set(s, MarkerAdjustingStart)
	r.finalize = func() { env.Markers.Clear(s, MarkerAdjustingStart) }
	return r
}

// Update moves the start edge, keeping the live end.
func (r *ResizeStart) Update(deltaMS int64) {
	if !r.begin() {
		return
	}
	d := r.Clamp(deltaMS)
	r.apply(subtitle.Change{
		Subtitle:  r.snap.sub,
		StartTime: r.snap.start + d,
		EndTime:   r.snap.sub.EndTime,
	})
}

// ResizeEnd moves the end edge of a subtitle.
type ResizeEnd struct {
	base
	snap snapshot
}

func newResizeEnd(env *Env, group string, s *subtitle.Subtitle) *ResizeEnd {
	r := &ResizeEnd{
		base: newBase(env, KindResizeEnd, group),
		snap: takeSnapshot(env.Seq, s, env.Player.CurrentTime(), env.Player.Duration()),
	}
	snap := r.snap

	r.minDelta = -((snap.end - snap.start) - env.MinDuration)
	if snap.duration > 0 {
		r.maxDelta = snap.duration - snap.end
	}
	if snap.next != nil {
		r.maxDelta = min(r.maxDelta, snap.nextStart-snap.end)
	}
	r.snappings = []int64{snap.currentTime - snap.end}

	env.Selection.Select(s)
	env.Markers.Set(s, MarkerAdjustingEnd)
	r.finalize = func() { env.Markers.Clear(s, MarkerAdjustingEnd) }
	return r
}

// Update moves the end edge, keeping the live start.
func (r *ResizeEnd) Update(deltaMS int64) {
	if !r.begin() {
		return
	}
	d := r.Clamp(deltaMS)
	r.apply(subtitle.Change{
		Subtitle:  r.snap.sub,
		StartTime: r.snap.sub.StartTime,
		EndTime:   r.snap.end + d,
	})
}

// ResizeCoupled moves the boundary shared by a subtitle and its touching
// successor. Only the shared boundary is snapped.
type ResizeCoupled struct {
	base
	snap snapshot
}

func newResizeCoupled(env *Env, group string, s *subtitle.Subtitle) *ResizeCoupled {
	r := &ResizeCoupled{
		base: newBase(env, KindResizeCoupled, group),
		snap: takeSnapshot(env.Seq, s, env.Player.CurrentTime(), env.Player.Duration()),
	}
	snap := r.snap
	next := snap.next

	r.minDelta = -((snap.end - snap.start) - env.MinDuration)
	if snap.duration > 0 {
		r.maxDelta = snap.duration - snap.end
	}
	r.maxDelta = min(r.maxDelta, snap.nextEnd-snap.end-env.MinDuration)
	r.snappings = []int64{snap.currentTime - snap.end}

	env.Selection.Select(s, next)
	env.Markers.Set(s, MarkerAdjustingEnd)
	env.Markers.Set(next, MarkerAdjustingStart)
	r.finalize = func() {
		env.Selection.Select(s)
		env.Markers.Clear(s, MarkerAdjustingEnd)
		env.Markers.Clear(next, MarkerAdjustingStart)
	}
	return r
}

// Update moves the shared boundary of both subtitles in one batch.
func (r *ResizeCoupled) Update(deltaMS int64) {
	if !r.begin() {
		return
	}
	boundary := r.snap.end + r.Clamp(deltaMS)
	r.apply(
		subtitle.Change{Subtitle: r.snap.sub, StartTime: r.snap.sub.StartTime, EndTime: boundary},
		subtitle.Change{Subtitle: r.snap.next, StartTime: boundary, EndTime: r.snap.next.EndTime},
	)
}
