package drag

import (
	"slices"

	"github.com/colonyops/cuesync/internal/core/eventbus"
	"github.com/colonyops/cuesync/internal/core/subtitle"
)

// Marker is a transient visual state attached to a subtitle while it is
// being edited.
type Marker string

const (
	// MarkerMoving is set on a subtitle being moved.
	MarkerMoving Marker = "moving"
	// MarkerAdjustingStart is set while the start handle is dragged.
	MarkerAdjustingStart Marker = "adjusting-start"
	// MarkerAdjustingEnd is set while the end handle is dragged.
	MarkerAdjustingEnd Marker = "adjusting-end"
)

// Markers tracks markers per subtitle ID.
type Markers struct {
	bus *eventbus.EventBus
	set map[string][]Marker
}

// NewMarkers creates an empty marker set publishing changes on bus.
func NewMarkers(bus *eventbus.EventBus) *Markers {
	return &Markers{bus: bus, set: make(map[string][]Marker)}
}

// Set adds m to s. Setting a marker twice is a no-op.
func (m *Markers) Set(s *subtitle.Subtitle, mk Marker) {
	if slices.Contains(m.set[s.ID], mk) {
		return
	}
	m.set[s.ID] = append(m.set[s.ID], mk)
	m.changed(s)
}

// Clear removes m from s.
func (m *Markers) Clear(s *subtitle.Subtitle, mk Marker) {
	idx := slices.Index(m.set[s.ID], mk)
	if idx < 0 {
		return
	}
	m.set[s.ID] = slices.Delete(m.set[s.ID], idx, idx+1)
	if len(m.set[s.ID]) == 0 {
		delete(m.set, s.ID)
	}
	m.changed(s)
}

// Has reports whether s carries mk.
func (m *Markers) Has(s *subtitle.Subtitle, mk Marker) bool {
	return slices.Contains(m.set[s.ID], mk)
}

// Of returns the markers on s.
func (m *Markers) Of(s *subtitle.Subtitle) []Marker {
	return slices.Clone(m.set[s.ID])
}

// Len returns the number of subtitles carrying at least one marker.
func (m *Markers) Len() int {
	return len(m.set)
}

func (m *Markers) changed(s *subtitle.Subtitle) {
	m.bus.PublishMarkersChanged(eventbus.MarkersChangedPayload{SubtitleID: s.ID})
}

// Selection is the set of selected subtitles.
type Selection struct {
	bus  *eventbus.EventBus
	subs []*subtitle.Subtitle
}

// NewSelection creates an empty selection publishing changes on bus.
func NewSelection(bus *eventbus.EventBus) *Selection {
	return &Selection{bus: bus}
}

// Select replaces the selection with subs.
func (sel *Selection) Select(subs ...*subtitle.Subtitle) {
	sel.subs = slices.Clone(subs)
	sel.bus.PublishSelectionChanged(eventbus.SelectionChangedPayload{Subtitles: sel.Selected()})
}

// Selected returns the selected subtitles in selection order.
func (sel *Selection) Selected() []*subtitle.Subtitle {
	return slices.Clone(sel.subs)
}

// Contains reports whether s is selected.
func (sel *Selection) Contains(s *subtitle.Subtitle) bool {
	return slices.Contains(sel.subs, s)
}
