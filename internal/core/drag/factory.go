package drag

import "github.com/colonyops/cuesync/internal/core/subtitle"

// Target classifies what a pointer press landed on.
type Target int

const (
	TargetBlank Target = iota
	TargetBody
	TargetStartHandle
	TargetEndHandle
	// TargetDualHandle is the boundary shared by a subtitle and its
	// touching successor.
	TargetDualHandle
)

func (t Target) String() string {
	switch t {
	case TargetBlank:
		return "blank"
	case TargetBody:
		return "body"
	case TargetStartHandle:
		return "start-handle"
	case TargetEndHandle:
		return "end-handle"
	case TargetDualHandle:
		return "dual-handle"
	default:
		return "unknown"
	}
}

// Hit is a classified pointer press. Subtitle is nil for TargetBlank; for
// TargetDualHandle it is the earlier of the two subtitles.
type Hit struct {
	Target    Target
	Subtitle  *subtitle.Subtitle
	ClickTime int64
}

// Blank reports whether the hit starts a timeline pan.
func (h Hit) Blank() bool {
	return h.Target == TargetBlank || h.Subtitle == nil || !h.Subtitle.IsSynced()
}

// Factory creates sessions for classified hits.
type Factory struct {
	env    *Env
	groups *GroupSequence
}

// NewFactory creates a factory. Zero fields of env get defaults; a nil
// groups uses a fresh "timeline-drag" sequence.
func NewFactory(env Env, groups *GroupSequence) *Factory {
	if groups == nil {
		groups = NewGroupSequence(DefaultGroupPrefix)
	}
	return &Factory{env: env.withDefaults(), groups: groups}
}

// Env returns the resolved environment sessions act on.
func (f *Factory) Env() *Env {
	return f.env
}

// New returns the session for hit. Presses on unsynced subtitles pan, and a
// dual handle without a synced successor resizes the end only.
func (f *Factory) New(hit Hit) Session {
	group := f.groups.Next()
	if hit.Blank() {
		return newPan(f.env, group, hit.ClickTime)
	}

	s := hit.Subtitle
	switch hit.Target {
	case TargetStartHandle:
		return newResizeStart(f.env, group, s)
	case TargetEndHandle:
		return newResizeEnd(f.env, group, s)
	case TargetDualHandle:
		if next := f.env.Seq.Next(s); next != nil && next.IsSynced() {
			return newResizeCoupled(f.env, group, s)
		}
		return newResizeEnd(f.env, group, s)
	default:
		return newMove(f.env, group, s)
	}
}
