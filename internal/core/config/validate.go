package config

import (
	"fmt"
	"os"
	"os/exec"
	"sort"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/cuesync/internal/core/keys"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// key syntax and file accessibility. The configPath argument specifies the
// config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateKeybindings(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Media.FFprobePath != "" {
		if _, err := exec.LookPath(c.Media.FFprobePath); err != nil {
			warnings = append(warnings, ValidationWarning{
				Category: "Media",
				Item:     c.Media.FFprobePath,
				Message:  "ffprobe not found, media duration must be passed explicitly",
			})
		}
	}

	if c.Timeline.StepMS > c.Timeline.MaxAdjustmentMS {
		warnings = append(warnings, ValidationWarning{
			Category: "Timeline",
			Item:     "step_ms",
			Message:  "keyboard step is larger than max_adjustment_ms",
		})
	}

	if c.Timeline.FineStepMS > c.Timeline.StepMS {
		warnings = append(warnings, ValidationWarning{
			Category: "Timeline",
			Item:     "fine_step_ms",
			Message:  "fine step is larger than the regular step",
		})
	}

	return warnings
}

// validateFileAccess checks config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// validateKeybindings checks key syntax and that no key is bound twice in
// one context through alternatives.
func (c *Config) validateKeybindings() error {
	var errs criterio.FieldErrorsBuilder

	for _, ctx := range sortedKeys(c.Keybindings) {
		if ctx != ContextDefault && ctx != ContextEdit {
			errs = errs.Append(fmt.Sprintf("keybindings[%q]", ctx), fmt.Errorf("unknown context"))
			continue
		}

		seen := make(map[string]string)
		bindings := c.Keybindings[ctx]
		for _, key := range sortedKeys(bindings) {
			field := fmt.Sprintf("keybindings[%q][%q]", ctx, key)
			alts, err := keys.Alternatives(key)
			if err != nil {
				errs = errs.Append(field, err)
				continue
			}
			for _, alt := range alts {
				if prev, ok := seen[alt]; ok && bindings[prev].Action != bindings[key].Action {
					errs = errs.Append(field, fmt.Errorf("%q is already bound by %q", alt, prev))
				}
				seen[alt] = key
			}
		}
	}

	return errs.ToError()
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
