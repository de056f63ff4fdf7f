package drag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/cuesync/internal/core/eventbus"
)

var t0 = time.Unix(1700000000, 0)

func newController(f *fixture) *Controller {
	return NewController(f.factory, ControllerOptions{})
}

func TestController_PointerDrag(t *testing.T) {
	f := newFixture(t, 10000, 0, [2]int64{1000, 2000})
	c := newController(f)

	require.True(t, c.PointerDown(Hit{Target: TargetBody, Subtitle: f.subs[0]}, ButtonPrimary, 100, t0))
	c.PointerMove(110)
	assert.Equal(t, [2]int64{1100, 2100}, f.subs[0].Timings())

	c.PointerMove(90)
	assert.Equal(t, [2]int64{900, 1900}, f.subs[0].Timings())

	c.PointerUp(t0.Add(time.Second))
	assert.Nil(t, c.Active())
	assert.Nil(t, c.Keyboard(), "a drag is not a tap")
}

func TestController_PointerSnaps(t *testing.T) {
	f := newFixture(t, 10000, 1250, [2]int64{1000, 2000})
	c := newController(f)

	c.PointerDown(Hit{Target: TargetBody, Subtitle: f.subs[0]}, ButtonPrimary, 0, t0)
	c.PointerMove(23)
	assert.Equal(t, [2]int64{1250, 2250}, f.subs[0].Timings())
}

func TestController_IgnoresPresses(t *testing.T) {
	t.Run("secondary button", func(t *testing.T) {
		f := newFixture(t, 10000, 0, [2]int64{1000, 2000})
		c := newController(f)
		assert.False(t, c.PointerDown(Hit{Target: TargetBody, Subtitle: f.subs[0]}, ButtonSecondary, 0, t0))
		assert.Nil(t, c.Active())
	})

	t.Run("unknown duration", func(t *testing.T) {
		f := newFixture(t, 0, 0, [2]int64{1000, 2000})
		c := newController(f)
		assert.False(t, c.PointerDown(Hit{Target: TargetBody, Subtitle: f.subs[0]}, ButtonPrimary, 0, t0))
	})
}

func TestController_TapStartsKeyboardSession(t *testing.T) {
	f := newFixture(t, 10000, 0, [2]int64{1000, 2000})
	c := newController(f)
	hit := Hit{Target: TargetEndHandle, Subtitle: f.subs[0]}

	c.PointerDown(hit, ButtonPrimary, 50, t0)
	c.PointerUp(t0.Add(100 * time.Millisecond))

	require.NotNil(t, c.Keyboard())
	assert.Equal(t, KindResizeEnd, c.Keyboard().Kind())

	started := f.bus.Of(eventbus.EventDragStarted)
	require.Len(t, started, 2)
	assert.True(t, started[1].(eventbus.DragStartedPayload).Keyboard)

	c.KeyStep(1, false)
	assert.Equal(t, [2]int64{1000, 2100}, f.subs[0].Timings())
	c.KeyStep(1, true)
	assert.Equal(t, [2]int64{1000, 2110}, f.subs[0].Timings())
	c.KeyStep(-1, false)
	assert.Equal(t, [2]int64{1000, 2010}, f.subs[0].Timings())

	c.CancelKeyboard()
	assert.Nil(t, c.Keyboard())
	assert.False(t, c.KeyStep(1, false))
}

func TestController_SlowPressIsNotATap(t *testing.T) {
	f := newFixture(t, 10000, 0, [2]int64{1000, 2000})
	c := newController(f)

	c.PointerDown(Hit{Target: TargetBody, Subtitle: f.subs[0]}, ButtonPrimary, 50, t0)
	c.PointerUp(t0.Add(250 * time.Millisecond))
	assert.Nil(t, c.Keyboard())
}

func TestController_BlankTapSeeks(t *testing.T) {
	f := newFixture(t, 10000, 0)
	c := newController(f)

	c.PointerDown(Hit{Target: TargetBlank, ClickTime: 3000}, ButtonPrimary, 50, t0)
	c.PointerUp(t0.Add(10 * time.Millisecond))

	assert.Nil(t, c.Keyboard(), "no keyboard pan")
	assert.Equal(t, int64(3000), f.clock.CurrentTime())
}

func TestController_PointerPan(t *testing.T) {
	f := newFixture(t, 10000, 5000)
	c := newController(f)

	c.PointerDown(Hit{Target: TargetBlank, ClickTime: 5100}, ButtonPrimary, 100, t0)
	c.PointerMove(150)
	c.PointerUp(t0.Add(time.Second))
	assert.Equal(t, int64(4500), f.clock.CurrentTime())
}

func TestController_KeyStepClampsRunningDelta(t *testing.T) {
	f := newFixture(t, 10000, 0, [2]int64{1000, 2000}, [2]int64{2100, 3000})
	c := newController(f)
	require.True(t, c.StartKeyboard(Hit{Target: TargetBody, Subtitle: f.subs[0]}))

	for range 5 {
		c.KeyStep(1, false)
	}
	assert.Equal(t, [2]int64{1100, 2100}, f.subs[0].Timings())

	c.KeyStep(-1, false)
	assert.Equal(t, [2]int64{1000, 2000}, f.subs[0].Timings(), "stepping back responds immediately")
}

func TestController_PointerDownEndsKeyboardSession(t *testing.T) {
	f := newFixture(t, 10000, 0, [2]int64{1000, 2000}, [2]int64{3000, 4000})
	c := newController(f)

	require.True(t, c.StartKeyboard(Hit{Target: TargetBody, Subtitle: f.subs[0]}))
	kb := c.Keyboard()

	c.PointerDown(Hit{Target: TargetBody, Subtitle: f.subs[1]}, ButtonPrimary, 0, t0)
	assert.Equal(t, StateEnded, kb.State())
	assert.Nil(t, c.Keyboard())
	assert.NotNil(t, c.Mouse())
	assert.NotEqual(t, kb.ChangeGroup(), c.Mouse().ChangeGroup())
}

func TestController_PointerLeaveCancels(t *testing.T) {
	f := newFixture(t, 10000, 0, [2]int64{1000, 2000})
	c := newController(f)

	c.PointerDown(Hit{Target: TargetBody, Subtitle: f.subs[0]}, ButtonPrimary, 0, t0)
	c.PointerMove(20)
	s := c.Mouse()
	c.PointerLeave()

	assert.Equal(t, StateCancelled, s.State())
	assert.Equal(t, [2]int64{1200, 2200}, f.subs[0].Timings())

	ended := f.bus.Of(eventbus.EventDragEnded)
	require.Len(t, ended, 1)
	assert.True(t, ended[0].(eventbus.DragEndedPayload).Cancelled)
}

func TestController_StartKeyboardRejectsBlank(t *testing.T) {
	f := newFixture(t, 10000, 0)
	c := newController(f)
	assert.False(t, c.StartKeyboard(Hit{Target: TargetBlank}))
}

func TestController_StepForKey(t *testing.T) {
	f := newFixture(t, 10000, 0)
	c := NewController(f.factory, ControllerOptions{Step: 200, FineStep: 20})
	assert.Equal(t, int64(200), c.StepForKey(false))
	assert.Equal(t, int64(20), c.StepForKey(true))
}
