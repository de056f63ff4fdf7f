package srt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/cuesync/internal/core/subtitle"
)

func TestParse(t *testing.T) {
	in := "\ufeff1\r\n00:00:01,000 --> 00:00:02,500\r\nHello\r\nthere\r\n\r\n" +
		"2\n00:01:00.250 --> 00:01:02,000 X1:10 X2:20\nSecond\n\n\n" +
		"00:01:03,000 --> 00:01:04,000\nno index\n"

	subs, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, subs, 3)

	assert.Equal(t, [2]int64{1000, 2500}, subs[0].Timings())
	assert.Equal(t, "Hello\nthere", subs[0].Content)
	assert.Equal(t, [2]int64{60250, 62000}, subs[1].Timings())
	assert.Equal(t, "no index", subs[2].Content)
	assert.NotEqual(t, subs[0].ID, subs[1].ID)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"no separator", "1\n00:00:01,000 00:00:02,000\nx\n"},
		{"no millis", "1\n00:00:01 --> 00:00:02,000\nx\n"},
		{"bad number", "1\n00:aa:01,000 --> 00:00:02,000\nx\n"},
		{"end before start", "1\n00:00:03,000 --> 00:00:02,000\nx\n"},
		{"index only", "1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParseText(t *testing.T) {
	subs, err := ParseText(strings.NewReader("First line\nstill first\n\nSecond\n\n\nThird\n"))
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, "First line\nstill first", subs[0].Content)
	for _, s := range subs {
		assert.False(t, s.IsSynced())
	}
}

func TestWrite(t *testing.T) {
	subs := []*subtitle.Subtitle{
		subtitle.NewSynced(1000, 2500, "Hello"),
		subtitle.New("unsynced"),
		subtitle.NewSynced(3723004, 3724000, "Later"),
	}

	var buf bytes.Buffer
	skipped, err := Write(&buf, subs)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t,
		"1\n00:00:01,000 --> 00:00:02,500\nHello\n\n2\n01:02:03,004 --> 01:02:04,000\nLater\n",
		buf.String())

	back, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, subs[2].Timings(), back[1].Timings())
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "00:00:00,000", FormatTime(-5))
	assert.Equal(t, "00:00:01,001", FormatTime(1001))
	assert.Equal(t, "10:00:00,000", FormatTime(36000000))
}
