package eventbus

// hooks holds the lifecycle hook state for the EventBus. The bus is only
// used from the UI loop, so no locking is needed.
type hooks struct {
	onPublish   []func(Event, any)
	onDrop      []func(Event, any)
	onSubscribe []func(Event)
	onPanic     []func(Event, any, any)
}

// OnPublish registers a hook that fires after an event was delivered.
func (bus *EventBus) OnPublish(fn func(Event, any)) {
	bus.hooks.onPublish = append(bus.hooks.onPublish, fn)
}

// OnDrop registers a hook that fires when an event has no subscribers.
func (bus *EventBus) OnDrop(fn func(Event, any)) {
	bus.hooks.onDrop = append(bus.hooks.onDrop, fn)
}

// OnSubscribe registers a hook that fires after a subscriber is registered.
func (bus *EventBus) OnSubscribe(fn func(Event)) {
	bus.hooks.onSubscribe = append(bus.hooks.onSubscribe, fn)
}

// OnPanic registers a hook that fires when a subscriber panics.
func (bus *EventBus) OnPanic(fn func(Event, any, any)) {
	bus.hooks.onPanic = append(bus.hooks.onPanic, fn)
}

// send delivers an event to every subscriber and fires hooks. A panicking
// subscriber does not stop delivery to the rest.
func (bus *EventBus) send(event Event, payload any) {
	subs := bus.subs[event]
	if len(subs) == 0 {
		bus.runOnDrop(event, payload)
		return
	}
	for _, fn := range subs {
		bus.deliver(event, payload, fn)
	}
	for _, fn := range bus.hooks.onPublish {
		fn(event, payload)
	}
}

func (bus *EventBus) deliver(event Event, payload any, fn func(any)) {
	defer func() {
		if r := recover(); r != nil {
			bus.runOnPanic(event, payload, r)
		}
	}()
	fn(payload)
}

func (bus *EventBus) runOnDrop(event Event, payload any) {
	for _, fn := range bus.hooks.onDrop {
		fn(event, payload)
	}
}

func (bus *EventBus) runOnSubscribe(event Event) {
	for _, fn := range bus.hooks.onSubscribe {
		fn(event)
	}
}

func (bus *EventBus) runOnPanic(event Event, payload any, recovered any) {
	for _, fn := range bus.hooks.onPanic {
		func() {
			defer func() { recover() }() //nolint:errcheck
			fn(event, payload, recovered)
		}()
	}
}
