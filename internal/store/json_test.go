package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ericmwr/SOP-PR-CALC/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorksheetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.sop.json")
	s := NewFileStore("")

	w := model.NewWorksheet("Bead Board Painting")
	w.SOPDescription = "Interior bead board walls"
	task := w.AddTask("Painting", "Brush & Roll", 200)
	require.NoError(t, w.AddMethod(task.ID, "Spray + Backbrush", 350))
	factor := w.AddFactor("Surface condition", "0.7-0.9", "Existing finish quality")
	require.NoError(t, w.SetFactorApplied(task.ID, factor.ID, true))
	require.NoError(t, w.SetFactorValue(task.ID, factor.ID, 0.75))

	require.NoError(t, s.SaveWorksheet(path, w))

	loaded, err := s.LoadWorksheet(path)
	require.NoError(t, err)

	assert.Equal(t, w.SOPName, loaded.SOPName)
	assert.Equal(t, w.SOPDescription, loaded.SOPDescription)
	require.Len(t, loaded.Tasks, 1)
	require.Len(t, loaded.Tasks[0].Methods, 2)
	assert.Equal(t, task.ID, loaded.Tasks[0].ID)
	require.Len(t, loaded.GlobalFactors, 1)
	assert.InDelta(t, 0.8, loaded.GlobalFactors[0].AvgMultiplier, 1e-9)

	setting := loaded.Setting(task.ID, factor.ID)
	require.NotNil(t, setting)
	assert.True(t, setting.Applied)
	assert.InDelta(t, 0.75, setting.CurrentValue, 1e-9)
}

func TestDecodeWorksheetRejectsMissingKeys(t *testing.T) {
	_, err := DecodeWorksheet([]byte(`{"sopName": "Broken", "tasks": []}`))

	var structureErr *StructureError
	require.ErrorAs(t, err, &structureErr)
	assert.ElementsMatch(t, []string{"globalFactors", "taskFactorSettings"}, structureErr.Missing)
	assert.Contains(t, structureErr.Error(), "globalFactors")
}

func TestDecodeWorksheetRejectsMalformedJSON(t *testing.T) {
	_, err := DecodeWorksheet([]byte(`{not json`))
	require.Error(t, err)
}

func TestDecodeWorksheetMigratesLegacyTasks(t *testing.T) {
	doc := `{
  "sopName": "Legacy",
  "globalFactors": [],
  "tasks": [
    {"id": "T-1", "name": "Old task", "isSelected": true, "baseRate": 250}
  ],
  "taskFactorSettings": {}
}`

	w, err := DecodeWorksheet([]byte(doc))
	require.NoError(t, err)

	require.Len(t, w.Tasks, 1)
	require.Len(t, w.Tasks[0].Methods, 1)
	assert.Equal(t, 250.0, w.Tasks[0].Methods[0].Rate)
	assert.True(t, w.Tasks[0].Methods[0].IsSelected)
	assert.Zero(t, w.Tasks[0].LegacyBaseRate)
}

func TestEncodeWorksheetNeverExportsLegacyRate(t *testing.T) {
	w := model.NewWorksheet("Test")
	w.AddTask("Task A", "Standard", 100)

	data, err := EncodeWorksheet(w)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "baseRate")
	assert.Contains(t, string(data), "taskFactorSettings")
}

func TestLoadOrCreateWorksheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fresh.sop.json")
	s := NewFileStore("")

	w, created, err := s.LoadOrCreateWorksheet(path, "Fresh SOP")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Fresh SOP", w.SOPName)

	_, created, err = s.LoadOrCreateWorksheet(path, "Fresh SOP")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestListWorksheets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.sop.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.sop.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(""), 0644))

	s := NewFileStore("")
	files, err := s.ListWorksheets(dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.sop.json", "b.sop.json"}, files)

	files, err = s.ListWorksheets(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".sopcalc.yml")
	s := NewFileStore(path)

	// Missing file falls back to defaults
	config, err := s.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "SF", config.AreaUnit.Acronym)
	assert.Equal(t, "$", config.Currency)

	config.LaborRate = 65
	config.AreaUnit.Acronym = "m2"
	require.NoError(t, s.SaveConfig(config))

	loaded, err := s.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 65.0, loaded.GetLaborRate())
	assert.Equal(t, "m2", loaded.AreaUnit.Acronym)
}
