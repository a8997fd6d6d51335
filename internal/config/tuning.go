// Package config loads the session tuning file: escalation and cooldown
// timings, message text and display units.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/stature/internal/units"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// Defaults applied by the Get* accessors when a field is unset.
const (
	DefaultEscalationDelay = 3 * time.Second
	DefaultResetCooldown   = 5 * time.Second
	DefaultMessageAutoHide = 6 * time.Second
	DefaultDisplayUnits    = units.Inches
	DefaultSelectPrompt    = "Tap the floor"
)

// TuningConfig represents the root configuration for a measurement session.
// Every field is optional; unset fields fall back to the defaults above.
type TuningConfig struct {
	// Feedback timings, as duration strings like "3s"
	EscalationDelay *string `json:"escalation_delay,omitempty"`
	MessageAutoHide *string `json:"message_auto_hide,omitempty"`

	// Session restart guard
	ResetCooldown *string `json:"reset_cooldown,omitempty"`

	// Presentation
	DisplayUnits *string `json:"display_units,omitempty"`
	SelectPrompt *string `json:"select_prompt,omitempty"`

	// Stop plane detection once a plane is selected
	FreezePlanesOnSelect *bool `json:"freeze_planes_on_select,omitempty"`
}

// Helper functions to create pointers
func ptrBool(v bool) *bool       { return &v }
func ptrString(v string) *string { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field populated
// with its default value.
func DefaultTuningConfig() *TuningConfig {
	return &TuningConfig{
		EscalationDelay:      ptrString(DefaultEscalationDelay.String()),
		MessageAutoHide:      ptrString(DefaultMessageAutoHide.String()),
		ResetCooldown:        ptrString(DefaultResetCooldown.String()),
		DisplayUnits:         ptrString(DefaultDisplayUnits),
		SelectPrompt:         ptrString(DefaultSelectPrompt),
		FreezePlanesOnSelect: ptrBool(true),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 64 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/ or cmd/stature-replay/
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	durations := []struct {
		name  string
		value *string
	}{
		{"escalation_delay", c.EscalationDelay},
		{"message_auto_hide", c.MessageAutoHide},
		{"reset_cooldown", c.ResetCooldown},
	}
	for _, d := range durations {
		if d.value == nil || *d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(*d.value)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", d.name, *d.value, err)
		}
		if parsed < 0 {
			return fmt.Errorf("%s must be non-negative, got %s", d.name, *d.value)
		}
	}

	if c.DisplayUnits != nil && !units.IsValid(*c.DisplayUnits) {
		return fmt.Errorf("display_units must be one of %s, got %q", units.GetValidUnitsString(), *c.DisplayUnits)
	}

	return nil
}

func parseDurationOr(value *string, fallback time.Duration) time.Duration {
	if value == nil || *value == "" {
		return fallback
	}
	d, err := time.ParseDuration(*value)
	if err != nil || d < 0 {
		return fallback // default on parse error
	}
	return d
}

// GetEscalationDelay returns how long degraded tracking may persist before
// the escalation message is shown.
func (c *TuningConfig) GetEscalationDelay() time.Duration {
	return parseDurationOr(c.EscalationDelay, DefaultEscalationDelay)
}

// GetMessageAutoHide returns how long transient status messages stay up.
func (c *TuningConfig) GetMessageAutoHide() time.Duration {
	return parseDurationOr(c.MessageAutoHide, DefaultMessageAutoHide)
}

// GetResetCooldown returns how long restart stays unavailable after a reset.
func (c *TuningConfig) GetResetCooldown() time.Duration {
	return parseDurationOr(c.ResetCooldown, DefaultResetCooldown)
}

// GetDisplayUnits returns the display_units value or the default.
func (c *TuningConfig) GetDisplayUnits() string {
	if c.DisplayUnits == nil || !units.IsValid(*c.DisplayUnits) {
		return DefaultDisplayUnits
	}
	return *c.DisplayUnits
}

// GetSelectPrompt returns the select_prompt value or the default.
func (c *TuningConfig) GetSelectPrompt() string {
	if c.SelectPrompt == nil || *c.SelectPrompt == "" {
		return DefaultSelectPrompt
	}
	return *c.SelectPrompt
}

// GetFreezePlanesOnSelect returns the freeze_planes_on_select value or the default.
func (c *TuningConfig) GetFreezePlanesOnSelect() bool {
	if c.FreezePlanesOnSelect == nil {
		return true
	}
	return *c.FreezePlanesOnSelect
}
