package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/stature/internal/testutil"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	return testutil.WriteFile(t, name, body)
}

func TestDefaultTuningConfig(t *testing.T) {
	cfg := DefaultTuningConfig()

	if cfg.EscalationDelay == nil || *cfg.EscalationDelay != "3s" {
		t.Errorf("Expected EscalationDelay '3s', got %v", cfg.EscalationDelay)
	}
	if cfg.ResetCooldown == nil || *cfg.ResetCooldown != "5s" {
		t.Errorf("Expected ResetCooldown '5s', got %v", cfg.ResetCooldown)
	}
	if cfg.DisplayUnits == nil || *cfg.DisplayUnits != "in" {
		t.Errorf("Expected DisplayUnits 'in', got %v", cfg.DisplayUnits)
	}

	if cfg.GetEscalationDelay() != 3*time.Second {
		t.Errorf("GetEscalationDelay() = %v, want 3s", cfg.GetEscalationDelay())
	}
	if cfg.GetResetCooldown() != 5*time.Second {
		t.Errorf("GetResetCooldown() = %v, want 5s", cfg.GetResetCooldown())
	}
	if cfg.GetMessageAutoHide() != 6*time.Second {
		t.Errorf("GetMessageAutoHide() = %v, want 6s", cfg.GetMessageAutoHide())
	}
	if cfg.GetSelectPrompt() != "Tap the floor" {
		t.Errorf("GetSelectPrompt() = %q", cfg.GetSelectPrompt())
	}
	if !cfg.GetFreezePlanesOnSelect() {
		t.Error("GetFreezePlanesOnSelect() = false, want true")
	}
}

func TestGetterDefaults(t *testing.T) {
	cfg := EmptyTuningConfig()

	assert.Equal(t, DefaultEscalationDelay, cfg.GetEscalationDelay())
	assert.Equal(t, DefaultResetCooldown, cfg.GetResetCooldown())
	assert.Equal(t, DefaultMessageAutoHide, cfg.GetMessageAutoHide())
	assert.Equal(t, DefaultDisplayUnits, cfg.GetDisplayUnits())
	assert.Equal(t, DefaultSelectPrompt, cfg.GetSelectPrompt())
	assert.True(t, cfg.GetFreezePlanesOnSelect())
}

func TestGetterFallbackOnBadValues(t *testing.T) {
	cfg := &TuningConfig{
		EscalationDelay: ptrString("soon"),
		ResetCooldown:   ptrString("-1s"),
		DisplayUnits:    ptrString("furlongs"),
		SelectPrompt:    ptrString(""),
	}

	assert.Equal(t, DefaultEscalationDelay, cfg.GetEscalationDelay())
	assert.Equal(t, DefaultResetCooldown, cfg.GetResetCooldown())
	assert.Equal(t, DefaultDisplayUnits, cfg.GetDisplayUnits())
	assert.Equal(t, DefaultSelectPrompt, cfg.GetSelectPrompt())
}

func TestLoadTuningConfig(t *testing.T) {
	path := writeConfig(t, "test_config.json", `{
  "escalation_delay": "1500ms",
  "reset_cooldown": "10s",
  "display_units": "cm",
  "select_prompt": "Tap the table",
  "freeze_planes_on_select": false
}`)

	cfg, err := LoadTuningConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1500*time.Millisecond, cfg.GetEscalationDelay())
	assert.Equal(t, 10*time.Second, cfg.GetResetCooldown())
	assert.Equal(t, "cm", cfg.GetDisplayUnits())
	assert.Equal(t, "Tap the table", cfg.GetSelectPrompt())
	assert.False(t, cfg.GetFreezePlanesOnSelect())
}

func TestLoadTuningConfigPartial(t *testing.T) {
	path := writeConfig(t, "partial.json", `{"display_units": "ft"}`)

	cfg, err := LoadTuningConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "ft", cfg.GetDisplayUnits())
	assert.Equal(t, DefaultEscalationDelay, cfg.GetEscalationDelay())
	assert.Nil(t, cfg.ResetCooldown)
}

func TestLoadTuningConfigMissing(t *testing.T) {
	_, err := LoadTuningConfig("/nonexistent/path/to/config.json")
	if err == nil {
		t.Error("Expected error when loading missing file, got nil")
	}
}

func TestLoadTuningConfigInvalid(t *testing.T) {
	path := writeConfig(t, "invalid_config.json", `{
  "escalation_delay": 3
`)

	_, err := LoadTuningConfig(path)
	if err == nil {
		t.Error("Expected error when loading invalid JSON, got nil")
	}
}

func TestLoadTuningConfigRejectsNonJSON(t *testing.T) {
	_, err := LoadTuningConfig("/some/path/config.yaml")
	if err == nil {
		t.Error("Expected error for non-.json extension, got nil")
	}
}

func TestLoadTuningConfigRejectsLargeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.json")
	if err := os.WriteFile(path, make([]byte, 128*1024), 0644); err != nil {
		t.Fatalf("Failed to write large file: %v", err)
	}

	_, err := LoadTuningConfig(path)
	if err == nil {
		t.Error("Expected error for oversized file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TuningConfig
		wantErr bool
	}{
		{"empty config", EmptyTuningConfig(), false},
		{"defaults", DefaultTuningConfig(), false},
		{"bad escalation delay", &TuningConfig{EscalationDelay: ptrString("3 seconds")}, true},
		{"negative cooldown", &TuningConfig{ResetCooldown: ptrString("-5s")}, true},
		{"bad auto hide", &TuningConfig{MessageAutoHide: ptrString("x")}, true},
		{"empty duration is unset", &TuningConfig{ResetCooldown: ptrString("")}, false},
		{"unknown units", &TuningConfig{DisplayUnits: ptrString("yd")}, true},
		{"metric units", &TuningConfig{DisplayUnits: ptrString("m")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaultConfigFile(t *testing.T) {
	cfg := MustLoadDefaultConfig()

	assert.Equal(t, DefaultEscalationDelay, cfg.GetEscalationDelay())
	assert.Equal(t, DefaultResetCooldown, cfg.GetResetCooldown())
	assert.Equal(t, DefaultMessageAutoHide, cfg.GetMessageAutoHide())
	assert.Equal(t, DefaultDisplayUnits, cfg.GetDisplayUnits())
	assert.Equal(t, DefaultSelectPrompt, cfg.GetSelectPrompt())
}
