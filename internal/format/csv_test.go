package format

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ericmwr/SOP-PR-CALC/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildWorksheet(t *testing.T) *model.Worksheet {
	t.Helper()

	w := model.NewWorksheet("Bead Board Painting")
	w.SOPDescription = "Interior bead board walls"

	task := w.AddTask("Painting", "Brush & Roll", 200)
	task.SkillLevel = "Intermediate"
	require.NoError(t, w.AddMethod(task.ID, "Spray + Backbrush", 350))

	factor := w.AddFactor("Surface condition", "0.7-0.9", "Existing finish quality")
	require.NoError(t, w.SetFactorApplied(task.ID, factor.ID, true))

	return w
}

func TestTablesProducesFiveProjections(t *testing.T) {
	w := buildWorksheet(t)

	tables := Tables(w)
	require.Len(t, tables, 5)

	names := make([]string, 0, len(tables))
	for _, table := range tables {
		names = append(names, table.Name)
	}
	assert.Equal(t, []string{
		"sop_details", "global_factors", "tasks", "task_methods", "task_factor_settings",
	}, names)
}

func TestSOPDetailsTable(t *testing.T) {
	w := buildWorksheet(t)

	table := Tables(w)[0]
	assert.Equal(t, []string{"SOP_Name", "SOP_Description"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"Bead Board Painting", "Interior bead board walls"}, table.Rows[0])
}

func TestTasksTableExcludesRates(t *testing.T) {
	w := buildWorksheet(t)

	table := Tables(w)[2]
	assert.NotContains(t, table.Headers, "Rate")
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Painting", table.Rows[0][1])
	assert.Equal(t, "true", table.Rows[0][2])
	assert.Equal(t, "Intermediate", table.Rows[0][3])
}

func TestTaskMethodsTableOneRowPerMethod(t *testing.T) {
	w := buildWorksheet(t)

	table := Tables(w)[3]
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Brush & Roll", table.Rows[0][2])
	assert.Equal(t, "200", table.Rows[0][3])
	assert.Equal(t, "true", table.Rows[0][4])
	assert.Equal(t, "Spray + Backbrush", table.Rows[1][2])
	assert.Equal(t, "false", table.Rows[1][4])
}

func TestTaskFactorSettingsTableCrossProduct(t *testing.T) {
	w := buildWorksheet(t)
	w.AddTask("Caulking", "Standard", 150)

	table := Tables(w)[4]
	// 2 tasks x 1 factor
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "true", table.Rows[0][4])
	assert.Equal(t, "false", table.Rows[1][4])
	assert.Equal(t, "0.8", table.Rows[0][7])
}

func TestEncodeUsesCRLFAndQuoting(t *testing.T) {
	table := Table{
		Name:    "test",
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"plain", `with "quotes", and comma`}},
	}

	data, err := table.Encode()
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasSuffix(text, "\r\n"))
	assert.Contains(t, text, "A,B\r\n")
	assert.Contains(t, text, `"with ""quotes"", and comma"`)
}

func TestWriteCSVFiles(t *testing.T) {
	w := buildWorksheet(t)
	dir := t.TempDir()

	paths, err := WriteCSVFiles(w, dir)
	require.NoError(t, err)
	require.Len(t, paths, 5)

	assert.Equal(t, filepath.Join(dir, "bead_board_painting_sop_details.csv"), paths[0])
	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "bead_board_painting", BaseName(&model.Worksheet{SOPName: "Bead Board Painting"}))
	assert.Equal(t, "sop_config", BaseName(&model.Worksheet{}))
	assert.Equal(t, "a_b_2", BaseName(&model.Worksheet{SOPName: "A/B 2"}))
}
