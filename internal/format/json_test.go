package format

import (
	"encoding/json"
	"testing"

	"github.com/ericmwr/SOP-PR-CALC/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatterBuildOutput(t *testing.T) {
	w := buildWorksheet(t)
	formatter := NewJSONFormatter(model.DefaultConfig())

	output := formatter.BuildOutput(w, 1000, 50)

	assert.Equal(t, "Bead Board Painting", output.SOPName)
	assert.Equal(t, "SF", output.AreaUnit)
	assert.Equal(t, 1000.0, output.ProjectArea)

	require.Len(t, output.Tasks, 1)
	task := output.Tasks[0]
	require.Len(t, task.Methods, 2)
	require.Len(t, task.AppliedFactors, 1)
	assert.InDelta(t, 0.8, task.AppliedFactors[0].Value, 1e-9)

	require.NotNil(t, task.Calculated)
	assert.Equal(t, "Brush & Roll", task.Calculated.MethodName)
	assert.InDelta(t, 0.8, task.Calculated.EffectiveMultiplier, 1e-9)

	// (1/200)/0.8 = 0.00625 hr per unit, blended 160
	assert.InDelta(t, 160.0, output.Results.BlendedRate, 1e-9)
	assert.InDelta(t, 6.25, output.Results.EstimatedHours, 1e-9)
	assert.InDelta(t, 312.5, output.Results.EstimatedCost, 1e-9)
}

func TestJSONFormatterExcludesUnselectedTaskCalculation(t *testing.T) {
	w := buildWorksheet(t)
	w.SetTaskSelected(w.Tasks[0].ID, false)
	formatter := NewJSONFormatter(model.DefaultConfig())

	output := formatter.BuildOutput(w, 1000, 50)

	require.Len(t, output.Tasks, 1)
	assert.Nil(t, output.Tasks[0].Calculated)
	assert.Zero(t, output.Results.BlendedRate)
}

func TestJSONFormatterFormatIsValidJSON(t *testing.T) {
	w := buildWorksheet(t)
	formatter := NewJSONFormatter(model.DefaultConfig())

	text, err := formatter.Format(w, 1000, 50)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &decoded))
	assert.Contains(t, decoded, "results")
	assert.Contains(t, decoded, "globalFactors")
}

func TestYAMLFormatter(t *testing.T) {
	w := buildWorksheet(t)
	formatter := NewYAMLFormatter(model.DefaultConfig())

	text, err := formatter.Format(w, 1000, 50)
	require.NoError(t, err)

	assert.Contains(t, text, "sopname: Bead Board Painting")
	assert.Contains(t, text, "blendedrate: 160")
}
