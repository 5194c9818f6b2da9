package format

import (
	"encoding/json"

	"github.com/ericmwr/SOP-PR-CALC/internal/model"
	"github.com/ericmwr/SOP-PR-CALC/internal/stats"
)

// JSONFormatter formats worksheets as JSON with calculated values
type JSONFormatter struct {
	config *model.Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(config *model.Config) *JSONFormatter {
	return &JSONFormatter{config: config}
}

// Output represents the complete worksheet output with calculated values.
// This is a read-only view; the round-trip configuration document is the
// worksheet JSON written by the store.
type Output struct {
	SOPName        string `json:"sopName"`
	SOPDescription string `json:"sopDescription,omitempty"`

	GlobalFactors []FactorOutput `json:"globalFactors"`
	Tasks         []TaskOutput   `json:"tasks"`

	// Inputs used for the calculated results
	ProjectArea float64 `json:"projectArea"`
	LaborRate   float64 `json:"laborRate"`
	AreaUnit    string  `json:"areaUnit"`
	Currency    string  `json:"currency"`

	Results ResultOutput `json:"results"`
}

// FactorOutput represents a global factor with its derived average
type FactorOutput struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	MultiplierRange string  `json:"multiplierRange"`
	AvgMultiplier   float64 `json:"avgMultiplier"`
	Description     string  `json:"description,omitempty"`
}

// TaskOutput represents a task with its methods, applied factors and
// calculated contribution
type TaskOutput struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	IsSelected        bool                 `json:"isSelected"`
	SkillLevel        string               `json:"skillLevel,omitempty"`
	MaterialsRequired string               `json:"materialsRequired,omitempty"`
	FactorsAffecting  string               `json:"factorsAffecting,omitempty"`
	Description       string               `json:"description,omitempty"`
	Methods           []MethodOutput       `json:"methods"`
	AppliedFactors    []AppliedFactorOutput `json:"appliedFactors,omitempty"`
	Calculated        *TaskCalculatedOutput `json:"calculated,omitempty"`
}

// MethodOutput represents an application method
type MethodOutput struct {
	Name       string  `json:"name"`
	Rate       float64 `json:"rate"`
	IsSelected bool    `json:"isSelected"`
}

// AppliedFactorOutput represents an opted-in factor with its tuned value
type AppliedFactorOutput struct {
	FactorID   string  `json:"factorId"`
	FactorName string  `json:"factorName"`
	Value      float64 `json:"value"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
}

// TaskCalculatedOutput represents calculated values for a selected task
type TaskCalculatedOutput struct {
	MethodName          string  `json:"methodName"`
	EffectiveMultiplier float64 `json:"effectiveMultiplier"`
	AdjustedTimePerArea float64 `json:"adjustedTimePerArea"`
}

// ResultOutput represents the project-level results
type ResultOutput struct {
	BlendedRate    float64 `json:"blendedRate"`
	EstimatedHours float64 `json:"estimatedHours"`
	EstimatedCost  float64 `json:"estimatedCost"`
}

// Format formats a worksheet as JSON
func (f *JSONFormatter) Format(w *model.Worksheet, projectArea, laborRate float64) (string, error) {
	output := f.BuildOutput(w, projectArea, laborRate)
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// BuildOutput builds the output structure
func (f *JSONFormatter) BuildOutput(w *model.Worksheet, projectArea, laborRate float64) *Output {
	result, breakdown := stats.CalculateBreakdown(w, projectArea, laborRate)

	perTask := make(map[model.TaskID]stats.TaskEstimate, len(breakdown))
	for _, est := range breakdown {
		perTask[est.TaskID] = est
	}

	factors := make([]FactorOutput, 0, len(w.GlobalFactors))
	for _, factor := range w.GlobalFactors {
		factors = append(factors, FactorOutput{
			ID:              string(factor.ID),
			Name:            factor.Name,
			MultiplierRange: factor.MultiplierRange,
			AvgMultiplier:   factor.AvgMultiplier,
			Description:     factor.Description,
		})
	}

	tasks := make([]TaskOutput, 0, len(w.Tasks))
	for _, task := range w.Tasks {
		out := TaskOutput{
			ID:                string(task.ID),
			Name:              task.Name,
			IsSelected:        task.IsSelected,
			SkillLevel:        task.SkillLevel,
			MaterialsRequired: task.MaterialsRequired,
			FactorsAffecting:  task.FactorsAffecting,
			Description:       task.Description,
		}

		for _, method := range task.Methods {
			out.Methods = append(out.Methods, MethodOutput{
				Name:       method.Name,
				Rate:       method.Rate,
				IsSelected: method.IsSelected,
			})
		}

		for _, factor := range w.GlobalFactors {
			setting := w.Setting(task.ID, factor.ID)
			if setting == nil || !setting.Applied {
				continue
			}
			out.AppliedFactors = append(out.AppliedFactors, AppliedFactorOutput{
				FactorID:   string(factor.ID),
				FactorName: factor.Name,
				Value:      setting.CurrentValue,
				Min:        setting.Min,
				Max:        setting.Max,
			})
		}

		if est, ok := perTask[task.ID]; ok {
			out.Calculated = &TaskCalculatedOutput{
				MethodName:          est.MethodName,
				EffectiveMultiplier: est.EffectiveMultiplier,
				AdjustedTimePerArea: est.AdjustedTimePerArea,
			}
		}

		tasks = append(tasks, out)
	}

	return &Output{
		SOPName:        w.SOPName,
		SOPDescription: w.SOPDescription,
		GlobalFactors:  factors,
		Tasks:          tasks,
		ProjectArea:    projectArea,
		LaborRate:      laborRate,
		AreaUnit:       f.config.AreaUnit.Acronym,
		Currency:       f.config.Currency,
		Results: ResultOutput{
			BlendedRate:    result.BlendedRate,
			EstimatedHours: result.EstimatedHours,
			EstimatedCost:  result.EstimatedCost,
		},
	}
}
