package eventbus

// Event identifies a published event type.
type Event string

const (
	EventDragEnded             Event = "drag.ended"
	EventDragStarted           Event = "drag.started"
	EventMarkersChanged        Event = "markers.changed"
	EventNotificationPublished Event = "notification.published"
	EventSelectionChanged      Event = "selection.changed"
	EventTimelineShifted       Event = "timeline.shifted"
	EventTimingsChanged        Event = "timings.changed"
	EventVideoSeeked           Event = "video.seeked"
)

// EventBus dispatches typed events to subscribers.
type EventBus struct {
	hooks hooks
	subs  map[Event][]func(any)
}

// New creates an empty bus.
func New() *EventBus {
	return &EventBus{subs: make(map[Event][]func(any))}
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.subs[event] = append(bus.subs[event], fn)
	bus.runOnSubscribe(event)
}

// PublishTimingsChanged publishes a timings.changed event.
func (bus *EventBus) PublishTimingsChanged(p TimingsChangedPayload) {
	bus.send(EventTimingsChanged, p)
}

// SubscribeTimingsChanged registers fn for timings.changed events.
func (bus *EventBus) SubscribeTimingsChanged(fn func(TimingsChangedPayload)) {
	bus.subscribe(EventTimingsChanged, func(p any) { fn(p.(TimingsChangedPayload)) })
}

// PublishTimelineShifted publishes a timeline.shifted event.
func (bus *EventBus) PublishTimelineShifted(p TimelineShiftedPayload) {
	bus.send(EventTimelineShifted, p)
}

// SubscribeTimelineShifted registers fn for timeline.shifted events.
func (bus *EventBus) SubscribeTimelineShifted(fn func(TimelineShiftedPayload)) {
	bus.subscribe(EventTimelineShifted, func(p any) { fn(p.(TimelineShiftedPayload)) })
}

// PublishSelectionChanged publishes a selection.changed event.
func (bus *EventBus) PublishSelectionChanged(p SelectionChangedPayload) {
	bus.send(EventSelectionChanged, p)
}

// SubscribeSelectionChanged registers fn for selection.changed events.
func (bus *EventBus) SubscribeSelectionChanged(fn func(SelectionChangedPayload)) {
	bus.subscribe(EventSelectionChanged, func(p any) { fn(p.(SelectionChangedPayload)) })
}

// PublishVideoSeeked publishes a video.seeked event.
func (bus *EventBus) PublishVideoSeeked(p VideoSeekedPayload) {
	bus.send(EventVideoSeeked, p)
}

// SubscribeVideoSeeked registers fn for video.seeked events.
func (bus *EventBus) SubscribeVideoSeeked(fn func(VideoSeekedPayload)) {
	bus.subscribe(EventVideoSeeked, func(p any) { fn(p.(VideoSeekedPayload)) })
}

// PublishDragStarted publishes a drag.started event.
func (bus *EventBus) PublishDragStarted(p DragStartedPayload) {
	bus.send(EventDragStarted, p)
}

// SubscribeDragStarted registers fn for drag.started events.
func (bus *EventBus) SubscribeDragStarted(fn func(DragStartedPayload)) {
	bus.subscribe(EventDragStarted, func(p any) { fn(p.(DragStartedPayload)) })
}

// PublishDragEnded publishes a drag.ended event.
func (bus *EventBus) PublishDragEnded(p DragEndedPayload) {
	bus.send(EventDragEnded, p)
}

// SubscribeDragEnded registers fn for drag.ended events.
func (bus *EventBus) SubscribeDragEnded(fn func(DragEndedPayload)) {
	bus.subscribe(EventDragEnded, func(p any) { fn(p.(DragEndedPayload)) })
}

// PublishMarkersChanged publishes a markers.changed event.
func (bus *EventBus) PublishMarkersChanged(p MarkersChangedPayload) {
	bus.send(EventMarkersChanged, p)
}

// SubscribeMarkersChanged registers fn for markers.changed events.
func (bus *EventBus) SubscribeMarkersChanged(fn func(MarkersChangedPayload)) {
	bus.subscribe(EventMarkersChanged, func(p any) { fn(p.(MarkersChangedPayload)) })
}

// PublishNotificationPublished publishes a notification.published event.
func (bus *EventBus) PublishNotificationPublished(p NotificationPublishedPayload) {
	bus.send(EventNotificationPublished, p)
}

// SubscribeNotificationPublished registers fn for notification.published events.
func (bus *EventBus) SubscribeNotificationPublished(fn func(NotificationPublishedPayload)) {
	bus.subscribe(EventNotificationPublished, func(p any) { fn(p.(NotificationPublishedPayload)) })
}
