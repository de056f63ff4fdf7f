package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, nil)
	cfg.Media.FFprobePath = ""
	return &cfg
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	require.NoError(t, cfg.ValidateDeep(""))
	assert.Empty(t, cfg.Warnings())
}

func TestValidateDeep_InvalidKey(t *testing.T) {
	cfg := validConfig(t)
	cfg.Keybindings[ContextDefault]["ctrl ctrl x"] = Keybinding{Action: ActionSave}

	err := cfg.ValidateDeep("")
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, err.Error(), "error parsing keybinding")
}

func TestValidateDeep_ConflictingAlternatives(t *testing.T) {
	cfg := validConfig(t)
	cfg.Keybindings[ContextEdit]["shift left | x"] = Keybinding{Action: ActionEditStop}

	err := cfg.ValidateDeep("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already bound")
}

func TestValidateDeep_SameActionAlternativesAllowed(t *testing.T) {
	cfg := validConfig(t)
	cfg.Keybindings[ContextDefault]["SHIFT Z | ctrl y"] = Keybinding{Action: ActionRedo}
	require.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_UnknownContext(t *testing.T) {
	cfg := validConfig(t)
	cfg.Keybindings["menu"] = map[string]Keybinding{"x": {Action: ActionQuit}}

	err := cfg.ValidateDeep("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown context")
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	cfg.DataDir = file

	err := cfg.ValidateDeep("")
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)
	err := cfg.ValidateDeep(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestValidateDeep_MissingConfigFileOK(t *testing.T) {
	cfg := validConfig(t)
	require.NoError(t, cfg.ValidateDeep(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestWarnings(t *testing.T) {
	cfg := validConfig(t)
	cfg.Media.FFprobePath = "definitely-not-a-real-ffprobe-binary"
	cfg.Timeline.StepMS = 5000
	cfg.Timeline.FineStepMS = 6000

	warnings := cfg.Warnings()
	require.Len(t, warnings, 3)
	assert.Equal(t, "Media", warnings[0].Category)
	assert.Equal(t, "step_ms", warnings[1].Item)
	assert.Equal(t, "fine_step_ms", warnings[2].Item)
}
