package drag

import (
	"time"

	"github.com/colonyops/cuesync/internal/core/eventbus"
	"github.com/colonyops/cuesync/internal/core/timeline"
)

// Button identifies the pointer button of a press.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// Defaults for ControllerOptions fields left zero.
const (
	DefaultStep         int64 = 100
	DefaultFineStep     int64 = 10
	DefaultTapThreshold       = 250 * time.Millisecond
)

// ControllerOptions tunes input handling.
type ControllerOptions struct {
	Scale        float64
	TolerancePX  int
	Step         int64
	FineStep     int64
	TapThreshold time.Duration
}

func (o ControllerOptions) withDefaults() ControllerOptions {
	if o.Scale <= 0 {
		o.Scale = timeline.DefaultScale
	}
	if o.TolerancePX <= 0 {
		o.TolerancePX = timeline.SnapTolerancePX
	}
	if o.Step <= 0 {
		o.Step = DefaultStep
	}
	if o.FineStep <= 0 {
		o.FineStep = DefaultFineStep
	}
	if o.TapThreshold <= 0 {
		o.TapThreshold = DefaultTapThreshold
	}
	return o
}

// Controller owns the active mouse and keyboard sessions. At most one
// session is live at a time.
type Controller struct {
	factory *Factory
	opts    ControllerOptions

	mouse   Session
	press   Hit
	pressX  int
	pressAt time.Time
	moved   bool

	keyboard Session
	keyDelta int64
}

// NewController creates a controller creating sessions from factory.
func NewController(factory *Factory, opts ControllerOptions) *Controller {
	return &Controller{factory: factory, opts: opts.withDefaults()}
}

// SetScale changes the pixel scale used for pointer deltas.
func (c *Controller) SetScale(scale float64) {
	if scale > 0 {
		c.opts.Scale = scale
	}
}

// Mouse returns the live mouse session or nil.
func (c *Controller) Mouse() Session { return c.mouse }

// Keyboard returns the live keyboard session or nil.
func (c *Controller) Keyboard() Session { return c.keyboard }

// Active returns the live session or nil.
func (c *Controller) Active() Session {
	if c.mouse != nil {
		return c.mouse
	}
	return c.keyboard
}

// PointerDown starts a mouse session. Secondary presses and presses while
// the media duration is unknown are ignored. Returns whether a session started.
func (c *Controller) PointerDown(hit Hit, btn Button, x int, at time.Time) bool {
	env := c.factory.env
	if btn != ButtonPrimary || env.Player.Duration() <= 0 {
		return false
	}

	c.CancelKeyboard()
	c.endMouse(false)

	c.mouse = c.factory.New(hit)
	c.press = hit
	c.pressX = x
	c.pressAt = at
	c.moved = false
	c.started(c.mouse, false)
	return true
}

// PointerMove feeds the pointer position of a live mouse session.
func (c *Controller) PointerMove(x int) {
	if c.mouse == nil {
		return
	}
	deltaPX := x - c.pressX
	if deltaPX == 0 && !c.moved {
		return
	}
	c.moved = true
	c.mouse.Update(c.DeltaMS(deltaPX, c.mouse.Snappings()))
}

// PointerUp ends the mouse session. A short press without motion on a
// subtitle continues as a keyboard session on the same target.
func (c *Controller) PointerUp(at time.Time) {
	if c.mouse == nil {
		return
	}
	tap := !c.moved && at.Sub(c.pressAt) < c.opts.TapThreshold
	hit := c.press
	c.endMouse(false)

	if tap && !hit.Blank() {
		c.StartKeyboard(hit)
	}
}

// PointerLeave cancels the mouse session.
func (c *Controller) PointerLeave() {
	c.endMouse(true)
}

// StartKeyboard starts a keyboard session on hit, ending any live session.
// Blank hits are ignored since the timeline is not panned from the keyboard.
func (c *Controller) StartKeyboard(hit Hit) bool {
	if hit.Blank() {
		return false
	}
	c.endMouse(false)
	c.CancelKeyboard()

	c.keyboard = c.factory.New(hit)
	c.keyDelta = 0
	c.started(c.keyboard, true)
	return true
}

// KeyStep moves the keyboard session one step in dir (-1 or 1). Returns
// false when no keyboard session is live.
func (c *Controller) KeyStep(dir int, fine bool) bool {
	if c.keyboard == nil {
		return false
	}
	c.keyDelta = c.keyboard.Clamp(c.keyDelta + int64(dir)*c.StepForKey(fine))
	c.keyboard.Update(c.keyDelta)
	return true
}

// CancelKeyboard ends the keyboard session, keeping its edits.
func (c *Controller) CancelKeyboard() {
	if c.keyboard == nil {
		return
	}
	s := c.keyboard
	c.keyboard = nil
	s.End()
	c.ended(s, true)
}

// StepForKey returns the keyboard step size.
func (c *Controller) StepForKey(fine bool) int64 {
	if fine {
		return c.opts.FineStep
	}
	return c.opts.Step
}

// DeltaMS converts a pointer delta to milliseconds, snapping to snappings.
func (c *Controller) DeltaMS(deltaPX int, snappings []int64) int64 {
	return timeline.DeltaPXToDeltaMSTolerance(deltaPX, c.opts.Scale, snappings, c.opts.TolerancePX)
}

func (c *Controller) endMouse(cancel bool) {
	if c.mouse == nil {
		return
	}
	s := c.mouse
	c.mouse = nil
	if cancel {
		s.Cancel()
	} else {
		s.End()
	}
	c.ended(s, false)
}

func (c *Controller) started(s Session, keyboard bool) {
	c.factory.env.Bus.PublishDragStarted(eventbus.DragStartedPayload{
		Kind:        string(s.Kind()),
		ChangeGroup: s.ChangeGroup(),
		Keyboard:    keyboard,
	})
}

func (c *Controller) ended(s Session, keyboard bool) {
	c.factory.env.Bus.PublishDragEnded(eventbus.DragEndedPayload{
		Kind:        string(s.Kind()),
		ChangeGroup: s.ChangeGroup(),
		Keyboard:    keyboard,
		Cancelled:   s.State() == StateCancelled,
	})
}
