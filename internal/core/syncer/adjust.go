package syncer

import "github.com/colonyops/cuesync/internal/core/subtitle"

type edge int

const (
	edgeStart edge = iota
	edgeEnd
)

type boundary struct {
	sub  *subtitle.Subtitle
	edge edge
	at   int64
}

// AdjustClosestTiming moves the subtitle boundary nearest to now onto now.
// Candidates are the subtitle showing at now, the next one to start, and the
// synced subtitle before that. Boundaries further than MaxAdjustment away are
// left alone, as are moves that would break a neighbour. A neighbour sharing
// the moved boundary moves with it. Returns whether anything changed.
func (e *Engine) AdjustClosestTiming(now int64) bool {
	b, ok := e.closestBoundary(now)
	if !ok {
		e.log.Debug().Int64("now", now).Msg("no boundary within reach")
		return false
	}
	if b.at == now {
		return false
	}

	changes, ok := e.adjustment(b, now)
	if !ok {
		e.log.Debug().Int64("now", now).Str("subtitle", b.sub.ID).Msg("adjustment rejected")
		return false
	}

	e.apply(changes, "")
	return true
}

func (e *Engine) candidates(now int64) []*subtitle.Subtitle {
	var out []*subtitle.Subtitle
	add := func(s *subtitle.Subtitle) {
		if s == nil || !s.IsSynced() {
			return
		}
		for _, c := range out {
			if c == s {
				return
			}
		}
		out = append(out, s)
	}

	add(e.seq.At(now))
	if next := e.seq.FirstAfter(now); next != nil {
		add(next)
		add(e.prevSynced(next))
	} else {
		add(e.seq.LastSynced())
	}
	return out
}

func (e *Engine) closestBoundary(now int64) (boundary, bool) {
	var (
		best  boundary
		dist  int64
		found bool
	)
	for _, s := range e.candidates(now) {
		for _, b := range []boundary{
			{sub: s, edge: edgeStart, at: s.StartTime},
			{sub: s, edge: edgeEnd, at: s.EndTime},
		} {
			d := abs(b.at - now)
			if d > e.opts.MaxAdjustment {
				continue
			}
			if !found || d < dist {
				best, dist, found = b, d, true
			}
		}
	}
	return best, found
}

func (e *Engine) adjustment(b boundary, now int64) ([]subtitle.Change, bool) {
	s := b.sub
	minDur := e.opts.MinDuration

	if b.edge == edgeStart {
		if now < 0 || s.EndTime-now < minDur {
			return nil, false
		}
		changes := []subtitle.Change{{Subtitle: s, StartTime: now, EndTime: s.EndTime}}
		if prev := e.prevSynced(s); prev != nil {
			switch {
			case prev.EndTime == s.StartTime:
				if now-prev.StartTime < minDur {
					return nil, false
				}
				changes = append(changes, subtitle.Change{Subtitle: prev, StartTime: prev.StartTime, EndTime: now})
			case prev.EndTime > now:
				return nil, false
			}
		}
		return changes, true
	}

	if now-s.StartTime < minDur {
		return nil, false
	}
	changes := []subtitle.Change{{Subtitle: s, StartTime: s.StartTime, EndTime: now}}
	if next := e.nextSynced(s); next != nil {
		switch {
		case next.StartTime == s.EndTime:
			if next.EndTime-now < minDur {
				return nil, false
			}
			changes = append(changes, subtitle.Change{Subtitle: next, StartTime: now, EndTime: next.EndTime})
		case next.StartTime < now:
			return nil, false
		}
	}
	return changes, true
}

func (e *Engine) prevSynced(s *subtitle.Subtitle) *subtitle.Subtitle {
	for p := e.seq.Prev(s); p != nil; p = e.seq.Prev(p) {
		if p.IsSynced() {
			return p
		}
	}
	return nil
}

func (e *Engine) nextSynced(s *subtitle.Subtitle) *subtitle.Subtitle {
	for n := e.seq.Next(s); n != nil; n = e.seq.Next(n) {
		if n.IsSynced() {
			return n
		}
	}
	return nil
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
