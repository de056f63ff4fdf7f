package drag

import "fmt"

// DefaultGroupPrefix prefixes change groups created by timeline drags.
const DefaultGroupPrefix = "timeline-drag"

// GroupSequence hands out monotonically numbered change-group IDs.
type GroupSequence struct {
	prefix string
	n      uint64
}

// NewGroupSequence creates a sequence producing "<prefix>-1", "<prefix>-2", ...
func NewGroupSequence(prefix string) *GroupSequence {
	if prefix == "" {
		prefix = DefaultGroupPrefix
	}
	return &GroupSequence{prefix: prefix}
}

// Next returns the next unused change group.
func (g *GroupSequence) Next() string {
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
