package format

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ericmwr/SOP-PR-CALC/internal/model"
)

// Table is one flattened CSV projection of the worksheet
type Table struct {
	// Name is the table's file name suffix, e.g. "global_factors"
	Name    string
	Headers []string
	Rows    [][]string
}

// Tables produces the five independent CSV projections of a worksheet: SOP
// details, global factors, tasks (without method rates), task methods, and
// task-factor settings. The export is one-way; there is no CSV import.
func Tables(w *model.Worksheet) []Table {
	return []Table{
		sopDetailsTable(w),
		globalFactorsTable(w),
		tasksTable(w),
		taskMethodsTable(w),
		taskFactorSettingsTable(w),
	}
}

// Encode renders the table as RFC 4180 CSV with CRLF row terminators
func (t *Table) Encode() ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.UseCRLF = true

	if err := cw.Write(t.Headers); err != nil {
		return nil, err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCSVFiles writes all five tables into dir as
// <base>_<table>.csv and returns the written paths
func WriteCSVFiles(w *model.Worksheet, dir string) ([]string, error) {
	base := BaseName(w)

	var paths []string
	for _, table := range Tables(w) {
		data, err := table.Encode()
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s table: %w", table.Name, err)
		}

		path := filepath.Join(dir, base+"_"+table.Name+".csv")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// BaseName derives a file-safe base name from the SOP name
func BaseName(w *model.Worksheet) string {
	name := w.SOPName
	if name == "" {
		name = "sop_config"
	}

	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

func sopDetailsTable(w *model.Worksheet) Table {
	return Table{
		Name:    "sop_details",
		Headers: []string{"SOP_Name", "SOP_Description"},
		Rows:    [][]string{{w.SOPName, w.SOPDescription}},
	}
}

func globalFactorsTable(w *model.Worksheet) Table {
	t := Table{
		Name:    "global_factors",
		Headers: []string{"Factor_ID", "Factor_Name", "Multiplier_Range", "Calculated_Avg_Multiplier", "Description"},
	}
	for _, f := range w.GlobalFactors {
		t.Rows = append(t.Rows, []string{
			string(f.ID), f.Name, f.MultiplierRange, formatFloat(f.AvgMultiplier), f.Description,
		})
	}
	return t
}

// tasksTable deliberately excludes method-level rates; those live in the
// task_methods table
func tasksTable(w *model.Worksheet) Table {
	t := Table{
		Name: "tasks",
		Headers: []string{
			"Task_ID", "Task_Name", "Is_Selected", "Skill_Level",
			"Materials_Required", "Factors_Affecting", "Description",
		},
	}
	for _, task := range w.Tasks {
		t.Rows = append(t.Rows, []string{
			string(task.ID), task.Name, strconv.FormatBool(task.IsSelected),
			task.SkillLevel, task.MaterialsRequired, task.FactorsAffecting, task.Description,
		})
	}
	return t
}

func taskMethodsTable(w *model.Worksheet) Table {
	t := Table{
		Name:    "task_methods",
		Headers: []string{"Task_ID", "Task_Name", "Method_Name", "Rate", "Is_Selected"},
	}
	for _, task := range w.Tasks {
		for _, method := range task.Methods {
			t.Rows = append(t.Rows, []string{
				string(task.ID), task.Name, method.Name,
				formatFloat(method.Rate), strconv.FormatBool(method.IsSelected),
			})
		}
	}
	return t
}

func taskFactorSettingsTable(w *model.Worksheet) Table {
	t := Table{
		Name: "task_factor_settings",
		Headers: []string{
			"Task_ID", "Task_Name", "Factor_ID", "Factor_Name",
			"Is_Applied", "Min", "Max", "Task_Specific_Multiplier",
		},
	}
	for _, task := range w.Tasks {
		for _, factor := range w.GlobalFactors {
			setting := w.Setting(task.ID, factor.ID)
			if setting == nil {
				continue
			}
			t.Rows = append(t.Rows, []string{
				string(task.ID), task.Name, string(factor.ID), factor.Name,
				strconv.FormatBool(setting.Applied),
				formatFloat(setting.Min), formatFloat(setting.Max),
				formatFloat(setting.CurrentValue),
			})
		}
	}
	return t
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
