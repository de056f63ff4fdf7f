package doctor

import (
	"context"
	"os/exec"
)

// lookPathFunc is the function used to find executables on PATH.
// Package-level variable to allow test overrides.
var lookPathFunc = exec.LookPath

// ToolsCheck verifies that external tools are available on $PATH.
type ToolsCheck struct {
	ffprobe string
}

// NewToolsCheck creates a new tools check for the configured ffprobe binary.
func NewToolsCheck(ffprobe string) *ToolsCheck {
	if ffprobe == "" {
		ffprobe = "ffprobe"
	}
	return &ToolsCheck{ffprobe: ffprobe}
}

func (c *ToolsCheck) Name() string {
	return "Tools"
}

func (c *ToolsCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	// ffprobe is optional: without it every edit needs --duration
	if path, err := lookPathFunc(c.ffprobe); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  c.ffprobe,
			Status: StatusWarn,
			Detail: "not found on PATH (pass --duration when editing)",
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  c.ffprobe,
			Status: StatusPass,
			Detail: path,
		})
	}

	return result
}
