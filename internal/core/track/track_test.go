package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary_Progress(t *testing.T) {
	assert.InDelta(t, 0, Summary{}.Progress(), 0.0001)
	assert.InDelta(t, 0.5, Summary{Total: 4, Synced: 2}.Progress(), 0.0001)
}
