// Package srt reads and writes SubRip files and imports plain text scripts
// as unsynced subtitles.
package srt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/colonyops/cuesync/internal/core/subtitle"
)

// ErrMalformed is returned for blocks that cannot be parsed.
var ErrMalformed = errors.New("malformed srt")

const bom = "\ufeff"

// Parse reads SRT cues into synced subtitles in file order.
func Parse(r io.Reader) ([]*subtitle.Subtitle, error) {
	blocks, err := splitBlocks(r)
	if err != nil {
		return nil, err
	}

	subs := make([]*subtitle.Subtitle, 0, len(blocks))
	for i, blk := range blocks {
		s, err := parseBlock(blk)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		subs = append(subs, s)
	}
	return subs, nil
}

// ParseText turns a plain text script into unsynced subtitles. Paragraphs
// separated by blank lines become one subtitle each.
func ParseText(r io.Reader) ([]*subtitle.Subtitle, error) {
	blocks, err := splitBlocks(r)
	if err != nil {
		return nil, err
	}

	subs := make([]*subtitle.Subtitle, 0, len(blocks))
	for _, blk := range blocks {
		subs = append(subs, subtitle.New(strings.Join(blk, "\n")))
	}
	return subs, nil
}

// Write renders synced subtitles as SRT, numbering cues from 1. Unsynced
// subtitles are skipped; their count is returned.
func Write(w io.Writer, subs []*subtitle.Subtitle) (skipped int, err error) {
	bw := bufio.NewWriter(w)
	index := 1
	for _, s := range subs {
		if !s.IsSynced() {
			skipped++
			continue
		}
		if index > 1 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "%d\n%s --> %s\n", index, FormatTime(s.StartTime), FormatTime(s.EndTime))
		if s.Content != "" {
			bw.WriteString(s.Content)
			bw.WriteString("\n")
		}
		index++
	}
	return skipped, bw.Flush()
}

func splitBlocks(r io.Reader) ([][]string, error) {
	var (
		blocks [][]string
		cur    []string
		first  = true
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if first {
			line = strings.TrimPrefix(line, bom)
			first = false
		}
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks, nil
}

func parseBlock(lines []string) (*subtitle.Subtitle, error) {
	// The index line is optional in the wild.
	timing := 0
	if !strings.Contains(lines[0], "-->") {
		timing = 1
	}
	if timing >= len(lines) {
		return nil, fmt.Errorf("%w: missing timing line", ErrMalformed)
	}

	start, end, err := parseTimingLine(lines[timing])
	if err != nil {
		return nil, err
	}
	if end < start {
		return nil, fmt.Errorf("%w: end %s before start %s", ErrMalformed, FormatTime(end), FormatTime(start))
	}
	return subtitle.NewSynced(start, end, strings.Join(lines[timing+1:], "\n")), nil
}

func parseTimingLine(line string) (int64, int64, error) {
	startStr, endStr, ok := strings.Cut(line, "-->")
	if !ok {
		return 0, 0, fmt.Errorf("%w: invalid timing separator", ErrMalformed)
	}
	start, err := ParseTime(strings.TrimSpace(startStr))
	if err != nil {
		return 0, 0, fmt.Errorf("start time: %w", err)
	}
	// Position hints may follow the end time.
	endFields := strings.Fields(endStr)
	if len(endFields) == 0 {
		return 0, 0, fmt.Errorf("%w: missing end time", ErrMalformed)
	}
	end, err := ParseTime(endFields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("end time: %w", err)
	}
	return start, end, nil
}

// ParseTime parses HH:MM:SS,mmm (a "." separator is accepted) into
// milliseconds.
func ParseTime(s string) (int64, error) {
	hms, millis, ok := strings.Cut(strings.Replace(s, ".", ",", 1), ",")
	if !ok {
		return 0, fmt.Errorf("%w: missing millis in %q", ErrMalformed, s)
	}
	parts := strings.Split(hms, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: invalid h:m:s in %q", ErrMalformed, s)
	}

	var total int64
	for i, unit := range []int64{3600000, 60000, 1000} {
		v, err := strconv.ParseInt(parts[i], 10, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: invalid number in %q", ErrMalformed, s)
		}
		total += v * unit
	}
	ms, err := strconv.ParseInt(millis, 10, 64)
	if err != nil || ms < 0 || ms > 999 {
		return 0, fmt.Errorf("%w: invalid millis in %q", ErrMalformed, s)
	}
	return total + ms, nil
}

// FormatTime renders milliseconds as HH:MM:SS,mmm. Negative values render
// as zero.
func FormatTime(ms int64) string {
	ms = max(ms, 0)
	h := ms / 3600000
	ms -= h * 3600000
	m := ms / 60000
	ms -= m * 60000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
