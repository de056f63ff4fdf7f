package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/colonyops/cuesync/pkg/executil"
)

// ErrNoDuration is returned when the probed media reports no duration.
var ErrNoDuration = errors.New("media has no duration")

// Media is the subset of ffprobe output the editor uses.
type Media struct {
	Path       string
	Format     string
	DurationMS int64
	Video      bool
	Audio      bool
}

type probeResult struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Duration  string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
	} `json:"format"`
}

// Prober inspects media files with ffprobe.
type Prober struct {
	exec   executil.Executor
	binary string
}

// NewProber returns a Prober running binary (default "ffprobe") through exec.
func NewProber(exec executil.Executor, binary string) *Prober {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	return &Prober{exec: exec, binary: binary}
}

// Available reports whether the ffprobe binary resolves.
func (p *Prober) Available() bool {
	_, err := p.exec.LookPath(p.binary)
	return err == nil
}

// Probe reads container metadata for path. The container duration wins;
// the longest stream duration is the fallback.
func (p *Prober) Probe(ctx context.Context, path string) (Media, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Media{}, errors.New("probe: empty path")
	}

	out, err := p.exec.Output(ctx, p.binary,
		"-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path,
	)
	if err != nil {
		return Media{}, fmt.Errorf("probe %s: %w", path, err)
	}

	var res probeResult
	if err := json.Unmarshal(out, &res); err != nil {
		return Media{}, fmt.Errorf("probe %s: parse: %w", path, err)
	}

	m := Media{
		Path:       path,
		Format:     res.Format.FormatName,
		DurationMS: secondsToMS(res.Format.Duration),
	}
	var longest int64
	for _, s := range res.Streams {
		switch strings.ToLower(s.CodecType) {
		case "video":
			m.Video = true
		case "audio":
			m.Audio = true
		}
		longest = max(longest, secondsToMS(s.Duration))
	}
	if m.DurationMS <= 0 {
		m.DurationMS = longest
	}
	if m.DurationMS <= 0 {
		return m, fmt.Errorf("probe %s: %w", path, ErrNoDuration)
	}
	return m, nil
}

func secondsToMS(v string) int64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int64(math.Round(f * 1000))
}
