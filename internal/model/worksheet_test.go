package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTaskCreatesSelectedMethod(t *testing.T) {
	w := NewWorksheet("Test SOP")
	task := w.AddTask("Sanding", "Standard application", 150)

	assert.True(t, task.IsSelected)
	require.Len(t, task.Methods, 1)
	assert.True(t, task.Methods[0].IsSelected)
	assert.Equal(t, 150.0, task.Methods[0].Rate)
}

func TestMethodSelectionIsExclusive(t *testing.T) {
	w := NewWorksheet("Test SOP")
	task := w.AddTask("Painting", "Brush", 200)

	require.NoError(t, w.AddMethod(task.ID, "Spray", 350))
	require.Len(t, task.Methods, 2)
	assert.True(t, task.Methods[0].IsSelected)
	assert.False(t, task.Methods[1].IsSelected)

	require.NoError(t, w.SelectMethod(task.ID, 1))
	assert.False(t, task.Methods[0].IsSelected)
	assert.True(t, task.Methods[1].IsSelected)

	method := task.SelectedMethod()
	require.NotNil(t, method)
	assert.Equal(t, "Spray", method.Name)
}

func TestDeleteMethod(t *testing.T) {
	w := NewWorksheet("Test SOP")
	task := w.AddTask("Painting", "Brush", 200)

	// Last remaining method cannot be deleted
	err := w.DeleteMethod(task.ID, 0)
	assert.ErrorIs(t, err, ErrLastMethod)

	require.NoError(t, w.AddMethod(task.ID, "Spray", 350))
	require.NoError(t, w.SelectMethod(task.ID, 1))

	// Deleting the selected method promotes the first remaining one
	require.NoError(t, w.DeleteMethod(task.ID, 1))
	require.Len(t, task.Methods, 1)
	assert.True(t, task.Methods[0].IsSelected)
	assert.Equal(t, "Brush", task.Methods[0].Name)

	err = w.DeleteMethod(task.ID, 5)
	assert.ErrorIs(t, err, ErrMethodIndex)

	err = w.DeleteMethod("T-missing", 0)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestEnsureMethodSelection(t *testing.T) {
	task := &Task{
		ID:   "T-1",
		Name: "Priming",
		Methods: []Method{
			{Name: "Roll", Rate: 100, IsSelected: true},
			{Name: "Spray", Rate: 300, IsSelected: true},
		},
	}

	task.EnsureMethodSelection()
	assert.True(t, task.Methods[0].IsSelected)
	assert.False(t, task.Methods[1].IsSelected)

	task.Methods[0].IsSelected = false
	task.EnsureMethodSelection()
	assert.True(t, task.Methods[0].IsSelected)
}

func TestSettingsMatrixIsCompleteCrossProduct(t *testing.T) {
	w := NewWorksheet("Test SOP")
	taskA := w.AddTask("Task A", "Standard", 100)
	taskB := w.AddTask("Task B", "Standard", 100)
	factor := w.AddFactor("Surface condition", "0.7-0.9", "")

	for _, taskID := range []TaskID{taskA.ID, taskB.ID} {
		setting := w.Setting(taskID, factor.ID)
		require.NotNil(t, setting)
		assert.False(t, setting.Applied)
		assert.InDelta(t, 0.8, setting.CurrentValue, 1e-9)
		assert.InDelta(t, 0.7, setting.Min, 1e-9)
		assert.InDelta(t, 0.9, setting.Max, 1e-9)
	}
}

func TestDeleteFactorPrunesSettings(t *testing.T) {
	w := NewWorksheet("Test SOP")
	task := w.AddTask("Task A", "Standard", 100)
	factor := w.AddFactor("Access", "0.8-0.9", "")
	kept := w.AddFactor("Height", "0.6-0.8", "")

	w.DeleteFactor(factor.ID)

	assert.Nil(t, w.FindFactor(factor.ID))
	assert.Nil(t, w.Setting(task.ID, factor.ID))
	assert.NotNil(t, w.Setting(task.ID, kept.ID))
}

func TestDeleteTaskPrunesSettings(t *testing.T) {
	w := NewWorksheet("Test SOP")
	task := w.AddTask("Task A", "Standard", 100)
	w.AddFactor("Access", "0.8-0.9", "")

	w.DeleteTask(task.ID)

	assert.Nil(t, w.FindTask(task.ID))
	_, ok := w.TaskFactorSettings[task.ID]
	assert.False(t, ok)

	// Deleting again is a no-op
	w.DeleteTask(task.ID)
}

func TestReconcileSettingsIsIdempotent(t *testing.T) {
	w := NewWorksheet("Test SOP")
	task := w.AddTask("Task A", "Standard", 100)
	factor := w.AddFactor("Access", "0.8-0.9", "")

	require.NoError(t, w.SetFactorApplied(task.ID, factor.ID, true))
	require.NoError(t, w.SetFactorValue(task.ID, factor.ID, 0.85))

	before := *w.Setting(task.ID, factor.ID)
	w.ReconcileSettings()
	w.ReconcileSettings()
	after := *w.Setting(task.ID, factor.ID)

	assert.Equal(t, before, after)
}

func TestUpdateFactorRangeKeepsTaskValues(t *testing.T) {
	w := NewWorksheet("Test SOP")
	task := w.AddTask("Task A", "Standard", 100)
	factor := w.AddFactor("Access", "0.8-0.9", "")

	require.NoError(t, w.SetFactorValue(task.ID, factor.ID, 0.82))

	require.True(t, w.UpdateFactorRange(factor.ID, "0.5-0.7"))
	assert.InDelta(t, 0.6, factor.AvgMultiplier, 1e-9)

	// The per-task tuning and bounds survive the range edit
	setting := w.Setting(task.ID, factor.ID)
	assert.InDelta(t, 0.82, setting.CurrentValue, 1e-9)
	assert.InDelta(t, 0.8, setting.Min, 1e-9)
}

func TestMoveTask(t *testing.T) {
	w := NewWorksheet("Test SOP")
	a := w.AddTask("A", "Standard", 100)
	b := w.AddTask("B", "Standard", 100)
	c := w.AddTask("C", "Standard", 100)

	require.True(t, w.MoveTask(c.ID, -2))
	assert.Equal(t, []TaskID{c.ID, a.ID, b.ID}, taskOrder(w))

	// Out of bounds moves are rejected and leave the order intact
	assert.False(t, w.MoveTask(c.ID, -1))
	assert.False(t, w.MoveTask(b.ID, 1))
	assert.False(t, w.MoveTask("T-missing", 1))
	assert.Equal(t, []TaskID{c.ID, a.ID, b.ID}, taskOrder(w))
}

func taskOrder(w *Worksheet) []TaskID {
	ids := make([]TaskID, 0, len(w.Tasks))
	for _, task := range w.Tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

func TestNormalizeMigratesLegacyTasks(t *testing.T) {
	w := &Worksheet{
		SOPName: "Legacy",
		Tasks: []*Task{
			{ID: "T-1", Name: "Old flat task", IsSelected: true, LegacyBaseRate: 250},
			{ID: "T-2", Name: "Rate-less task", IsSelected: true},
		},
	}

	w.Normalize()

	require.Len(t, w.Tasks[0].Methods, 1)
	assert.Equal(t, "Standard application", w.Tasks[0].Methods[0].Name)
	assert.Equal(t, 250.0, w.Tasks[0].Methods[0].Rate)
	assert.True(t, w.Tasks[0].Methods[0].IsSelected)
	assert.Zero(t, w.Tasks[0].LegacyBaseRate)

	require.Len(t, w.Tasks[1].Methods, 1)
	assert.Equal(t, float64(FallbackMethodRate), w.Tasks[1].Methods[0].Rate)
}

func TestNormalizeRederivesFactorAverages(t *testing.T) {
	w := &Worksheet{
		GlobalFactors: []*GlobalFactor{
			{ID: "F-1", Name: "Access", MultiplierRange: "0.6-0.8", AvgMultiplier: 42},
		},
	}

	w.Normalize()

	assert.InDelta(t, 0.7, w.GlobalFactors[0].AvgMultiplier, 1e-9)
	assert.NotNil(t, w.Tasks)
	assert.NotNil(t, w.TaskFactorSettings)
}

func TestFactorSettingClamping(t *testing.T) {
	factor := NewGlobalFactor("Access", "0.7-0.9", "")
	setting := newFactorSetting(factor)

	setting.SetValue(5)
	assert.InDelta(t, 0.9, setting.CurrentValue, 1e-9)

	setting.SetValue(0.1)
	assert.InDelta(t, 0.7, setting.CurrentValue, 1e-9)

	// Bounds are floored and kept strictly ordered, value re-clamped
	setting.SetBounds(0.01, 0.01)
	assert.InDelta(t, 0.1, setting.Min, 1e-9)
	assert.InDelta(t, 0.11, setting.Max, 1e-9)
	assert.InDelta(t, 0.11, setting.CurrentValue, 1e-9)
}

func TestCloneIsDeep(t *testing.T) {
	w := NewWorksheet("Test SOP")
	task := w.AddTask("Task A", "Standard", 100)
	factor := w.AddFactor("Access", "0.8-0.9", "")

	clone := w.Clone()
	clone.Tasks[0].Name = "Mutated"
	clone.Tasks[0].Methods[0].Rate = 999
	clone.TaskFactorSettings[task.ID][factor.ID].CurrentValue = 0.5
	clone.GlobalFactors[0].Name = "Mutated"

	assert.Equal(t, "Task A", task.Name)
	assert.Equal(t, 100.0, task.Methods[0].Rate)
	assert.InDelta(t, 0.85, w.Setting(task.ID, factor.ID).CurrentValue, 1e-9)
	assert.Equal(t, "Access", factor.Name)
}
