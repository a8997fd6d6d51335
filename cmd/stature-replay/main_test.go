package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/stature/internal/testutil"
)

const floorScenario = "../../internal/scenario/testdata/floor.yaml"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRun(t *testing.T) {
	out, _, err := execute(t, "run", floorScenario)
	require.NoError(t, err)

	assert.Contains(t, out, `start "measure from the floor"`)
	assert.Contains(t, out, "tap (200, 600) selected floor")
	assert.Contains(t, out, "10 events over 10.2s, 2 planes, 0 resets, 0 failures")
	assert.Contains(t, out, `final height above floor: 67"`)
}

func TestRunUnitsFlag(t *testing.T) {
	out, _, err := execute(t, "run", "--units", "m", floorScenario)
	require.NoError(t, err)
	assert.Contains(t, out, "final height above floor: 1.70 m")
}

func TestRunInvalidUnits(t *testing.T) {
	_, _, err := execute(t, "run", "--units", "cubits", floorScenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --units")
}

func TestRunConfigFile(t *testing.T) {
	path := testutil.WriteFile(t, "tuning.json", `{"display_units": "ft"}`)

	out, _, err := execute(t, "run", "--config", path, floorScenario)
	require.NoError(t, err)
	assert.Contains(t, out, `final height above floor: 5' 7"`)
}

func TestRunBadConfig(t *testing.T) {
	path := testutil.WriteFile(t, "tuning.yaml", "display_units: ft\n")

	_, _, err := execute(t, "run", "--config", path, floorScenario)
	testutil.AssertError(t, err)
}

func TestRunMissingScenario(t *testing.T) {
	_, _, err := execute(t, "run", "does-not-exist.yaml")
	testutil.AssertError(t, err)
}

func TestRunVerboseLogs(t *testing.T) {
	_, stderr, err := execute(t, "run", "--verbose", floorScenario)
	require.NoError(t, err)
	assert.Contains(t, stderr, "[session] plane")
	assert.Contains(t, stderr, "[scenario] run planeDetection=true")
}

func TestValidate(t *testing.T) {
	bad := testutil.WriteFile(t, "bad.yaml", "events:\n  - at: 1s\n    detect: nowhere\n")

	out, stderr, err := execute(t, "validate", floorScenario, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 scenarios invalid")
	assert.Contains(t, out, "floor.yaml: ok (2 planes, 10 events)")
	assert.Contains(t, stderr, "unknown plane")
}

func TestValidateRequiresArgs(t *testing.T) {
	_, _, err := execute(t, "validate")
	assert.Error(t, err)
}

func TestRunUnitsFlagOverridesScenarioUnits(t *testing.T) {
	path := testutil.WriteFile(t, "cm.yaml", `name: metric
units: cm
planes:
  - name: floor
    height: 0
    screen: {min: [0, 0], max: [100, 100]}
events:
  - at: 0s
    detect: floor
  - at: 1s
    tap: [10, 10]
  - at: 2s
    frame: {camera: [0, 1.8, 0]}
`)

	out, _, err := execute(t, "run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "final height above floor: 180 cm")

	out, _, err = execute(t, "run", "--units", "in", path)
	require.NoError(t, err)
	assert.Contains(t, out, `show heightReading: "71\""`)
	assert.Contains(t, out, `final height above floor: 71"`)
	assert.NotContains(t, out, "180 cm")
}
