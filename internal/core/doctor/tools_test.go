package doctor

import (
	"context"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolsCheck_Present(t *testing.T) {
	orig := lookPathFunc
	t.Cleanup(func() { lookPathFunc = orig })

	lookPathFunc = func(file string) (string, error) {
		return "/usr/bin/" + file, nil
	}

	result := NewToolsCheck("").Run(context.Background())

	assert.Equal(t, "Tools", result.Name)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "ffprobe", result.Items[0].Label)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, "/usr/bin/ffprobe", result.Items[0].Detail)
}

func TestToolsCheck_Missing(t *testing.T) {
	orig := lookPathFunc
	t.Cleanup(func() { lookPathFunc = orig })

	lookPathFunc = func(file string) (string, error) {
		return "", &exec.Error{Name: file, Err: fmt.Errorf("not found")}
	}

	result := NewToolsCheck("/opt/ffmpeg/ffprobe").Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, "/opt/ffmpeg/ffprobe", result.Items[0].Label)
	assert.Equal(t, StatusWarn, result.Items[0].Status)
}
