package stats

import (
	"testing"

	"github.com/ericmwr/SOP-PR-CALC/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSumsTaskTimes(t *testing.T) {
	w := model.NewWorksheet("Test SOP")
	w.AddTask("Task A", "Standard", 200)
	taskB := w.AddTask("Task B", "Standard", 100)
	factor := w.AddFactor("Surface condition", "0.7-0.9", "")
	require.NoError(t, w.SetFactorApplied(taskB.ID, factor.ID, true))

	// Task A: 1/200 = 0.005 hr per unit area.
	// Task B: (1/100) / 0.8 = 0.0125 hr per unit area.
	// Total 0.0175, blended 1/0.0175.
	result, breakdown := CalculateBreakdown(w, 1000, 50)

	require.Len(t, breakdown, 2)
	assert.InDelta(t, 1.0, breakdown[0].EffectiveMultiplier, 1e-9)
	assert.InDelta(t, 0.005, breakdown[0].AdjustedTimePerArea, 1e-9)
	assert.InDelta(t, 0.8, breakdown[1].EffectiveMultiplier, 1e-9)
	assert.InDelta(t, 0.0125, breakdown[1].AdjustedTimePerArea, 1e-9)

	assert.InDelta(t, 57.142857, result.BlendedRate, 1e-4)
	assert.InDelta(t, 17.5, result.EstimatedHours, 1e-9)
	assert.InDelta(t, 875.0, result.EstimatedCost, 1e-9)
}

func TestCalculateNoSelectedTasks(t *testing.T) {
	w := model.NewWorksheet("Test SOP")
	task := w.AddTask("Task A", "Standard", 200)
	w.SetTaskSelected(task.ID, false)

	result := Calculate(w, 1000, 50)

	assert.Zero(t, result.BlendedRate)
	assert.Zero(t, result.EstimatedHours)
	assert.Zero(t, result.EstimatedCost)
}

func TestCalculateFloorsNonPositiveRates(t *testing.T) {
	w := model.NewWorksheet("Test SOP")
	task := w.AddTask("Task A", "Standard", 0)

	_, breakdown := CalculateBreakdown(w, 100, 50)

	require.Len(t, breakdown, 1)
	// The floor applies only during calculation, the stored rate is untouched
	assert.InDelta(t, 1.0, breakdown[0].AdjustedTimePerArea, 1e-9)
	assert.Zero(t, task.Methods[0].Rate)

	task.Methods[0].Rate = -5
	_, breakdown = CalculateBreakdown(w, 100, 50)
	assert.InDelta(t, 1.0, breakdown[0].AdjustedTimePerArea, 1e-9)
	assert.Equal(t, -5.0, task.Methods[0].Rate)
}

func TestCalculateZeroMultiplierGuard(t *testing.T) {
	w := model.NewWorksheet("Test SOP")
	task := w.AddTask("Task A", "Standard", 100)
	factor := w.AddFactor("Access", "0.7-0.9", "")
	require.NoError(t, w.SetFactorApplied(task.ID, factor.ID, true))

	// Force a zero multiplier past the clamped setter
	w.TaskFactorSettings[task.ID][factor.ID].CurrentValue = 0

	result, breakdown := CalculateBreakdown(w, 100, 50)

	// The unadjusted base time is used instead of dividing by zero
	require.Len(t, breakdown, 1)
	assert.InDelta(t, 0.01, breakdown[0].AdjustedTimePerArea, 1e-9)
	assert.InDelta(t, 100.0, result.BlendedRate, 1e-9)
}

func TestCalculateMultipleAppliedFactors(t *testing.T) {
	w := model.NewWorksheet("Test SOP")
	task := w.AddTask("Task A", "Standard", 100)
	access := w.AddFactor("Access", "0.7-0.9", "")
	height := w.AddFactor("Height", "0.5-0.7", "")
	w.AddFactor("Weather", "0.4-0.6", "")
	require.NoError(t, w.SetFactorApplied(task.ID, access.ID, true))
	require.NoError(t, w.SetFactorApplied(task.ID, height.ID, true))

	_, breakdown := CalculateBreakdown(w, 100, 50)

	// 0.8 * 0.6, the unapplied factor does not contribute
	require.Len(t, breakdown, 1)
	assert.InDelta(t, 0.48, breakdown[0].EffectiveMultiplier, 1e-9)
}

func TestCalculateClampsNegativeInputs(t *testing.T) {
	w := model.NewWorksheet("Test SOP")
	w.AddTask("Task A", "Standard", 100)

	result := Calculate(w, -10, -5)

	assert.InDelta(t, 100.0, result.BlendedRate, 1e-9)
	assert.Zero(t, result.EstimatedHours)
	assert.Zero(t, result.EstimatedCost)
}

func TestCalculateSkipsStaleFactorSettings(t *testing.T) {
	w := model.NewWorksheet("Test SOP")
	task := w.AddTask("Task A", "Standard", 100)
	factor := w.AddFactor("Access", "0.7-0.9", "")
	require.NoError(t, w.SetFactorApplied(task.ID, factor.ID, true))

	// Simulate a stale settings entry referencing a removed factor
	w.GlobalFactors = nil

	_, breakdown := CalculateBreakdown(w, 100, 50)

	require.Len(t, breakdown, 1)
	assert.InDelta(t, 1.0, breakdown[0].EffectiveMultiplier, 1e-9)
}
