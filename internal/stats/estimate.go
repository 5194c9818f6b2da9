// Package stats computes estimation results from a worksheet. All functions
// are pure and total: outputs are re-derived from scratch on every call and
// are always finite, non-negative numbers.
package stats

import (
	"github.com/ericmwr/SOP-PR-CALC/internal/model"
)

// MinRate floors a method's production rate during calculation so a
// non-positive stored rate cannot produce a negative or infinite time
const MinRate = 1

// Result contains the calculated estimation results
type Result struct {
	// BlendedRate is the aggregate production rate in area units per labor
	// hour across all selected tasks
	BlendedRate float64 `json:"blendedRate"`

	// EstimatedHours is the total labor time for the project area
	EstimatedHours float64 `json:"estimatedHours"`

	// EstimatedCost is EstimatedHours priced at the labor rate
	EstimatedCost float64 `json:"estimatedCost"`
}

// TaskEstimate is the per-task contribution to the total
type TaskEstimate struct {
	TaskID              model.TaskID `json:"taskId"`
	TaskName            string       `json:"taskName"`
	MethodName          string       `json:"methodName"`
	BaseRate            float64      `json:"baseRate"`
	EffectiveMultiplier float64      `json:"effectiveMultiplier"`
	AdjustedTimePerArea float64      `json:"adjustedTimePerArea"`
}

// Calculate maps a worksheet plus project area and labor rate to a blended
// rate, estimated hours, and estimated cost.
//
// Task times accumulate as a sequential pipeline: each selected task
// contributes its own adjusted time per unit area and the total time per unit
// area is the sum, not a rate-weighted average. With no selected tasks all
// outputs are zero.
func Calculate(w *model.Worksheet, projectArea, laborRate float64) Result {
	result, _ := CalculateBreakdown(w, projectArea, laborRate)
	return result
}

// CalculateBreakdown is Calculate plus the per-task contributions, in
// worksheet task order
func CalculateBreakdown(w *model.Worksheet, projectArea, laborRate float64) (Result, []TaskEstimate) {
	if projectArea < 0 {
		projectArea = 0
	}
	if laborRate < 0 {
		laborRate = 0
	}

	var totalTimePerArea float64
	var breakdown []TaskEstimate

	for _, task := range w.Tasks {
		if !task.IsSelected || len(task.Methods) == 0 {
			continue
		}

		method := task.SelectedMethod()
		baseRate := method.Rate
		if baseRate < MinRate {
			baseRate = MinRate
		}
		baseTimePerArea := 1 / baseRate

		multiplier := effectiveMultiplier(w, task.ID)

		adjusted := baseTimePerArea
		if multiplier != 0 {
			adjusted = baseTimePerArea / multiplier
		}
		totalTimePerArea += adjusted

		breakdown = append(breakdown, TaskEstimate{
			TaskID:              task.ID,
			TaskName:            task.Name,
			MethodName:          method.Name,
			BaseRate:            method.Rate,
			EffectiveMultiplier: multiplier,
			AdjustedTimePerArea: adjusted,
		})
	}

	result := Result{}
	if totalTimePerArea > 0 {
		result.BlendedRate = 1 / totalTimePerArea
	}
	result.EstimatedHours = totalTimePerArea * projectArea
	result.EstimatedCost = result.EstimatedHours * laborRate

	return result, breakdown
}

// effectiveMultiplier is the product of the current values of all applied
// factors for a task. Settings referencing a factor that no longer exists are
// skipped. Defaults to the neutral multiplier 1.
func effectiveMultiplier(w *model.Worksheet, taskID model.TaskID) float64 {
	multiplier := 1.0
	for factorID, setting := range w.TaskFactorSettings[taskID] {
		if setting == nil || !setting.Applied {
			continue
		}
		if w.FindFactor(factorID) == nil {
			continue
		}
		multiplier *= setting.CurrentValue
	}
	return multiplier
}
