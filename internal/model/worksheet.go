package model

import (
	"errors"

	"github.com/ericmwr/SOP-PR-CALC/internal/rate"
)

// ErrLastMethod is returned when deleting a task's only remaining method
var ErrLastMethod = errors.New("a task must keep at least one method")

// ErrTaskNotFound is returned when a task ID does not exist in the worksheet
var ErrTaskNotFound = errors.New("task not found")

// ErrMethodIndex is returned for an out-of-range method index
var ErrMethodIndex = errors.New("method index out of range")

// ErrSettingNotFound is returned when no setting exists for a task/factor pair
var ErrSettingNotFound = errors.New("no setting for task/factor pair")

// Worksheet is the aggregate root of an estimating worksheet: SOP metadata,
// global factors, tasks with their methods, and the task-factor settings
// matrix. All mutation goes through its methods; every structural mutation
// ends with ReconcileSettings so the matrix stays a complete cross product of
// current tasks and factors.
type Worksheet struct {
	SOPName            string                                `json:"sopName" yaml:"sopName"`
	SOPDescription     string                                `json:"sopDescription" yaml:"sopDescription"`
	GlobalFactors      []*GlobalFactor                       `json:"globalFactors" yaml:"globalFactors"`
	Tasks              []*Task                               `json:"tasks" yaml:"tasks"`
	TaskFactorSettings map[TaskID]map[FactorID]*FactorSetting `json:"taskFactorSettings" yaml:"taskFactorSettings"`
}

// NewWorksheet creates an empty worksheet with the given SOP name
func NewWorksheet(name string) *Worksheet {
	return &Worksheet{
		SOPName:            name,
		GlobalFactors:      []*GlobalFactor{},
		Tasks:              []*Task{},
		TaskFactorSettings: map[TaskID]map[FactorID]*FactorSetting{},
	}
}

// FindTask returns the task with the given ID, or nil
func (w *Worksheet) FindTask(id TaskID) *Task {
	for _, t := range w.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// FindFactor returns the global factor with the given ID, or nil
func (w *Worksheet) FindFactor(id FactorID) *GlobalFactor {
	for _, f := range w.GlobalFactors {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// Setting returns the setting for a task/factor pair, or nil
func (w *Worksheet) Setting(taskID TaskID, factorID FactorID) *FactorSetting {
	if byFactor, ok := w.TaskFactorSettings[taskID]; ok {
		return byFactor[factorID]
	}
	return nil
}

// AddFactor appends a new global factor and reconciles the settings matrix
func (w *Worksheet) AddFactor(name, multiplierRange, description string) *GlobalFactor {
	factor := NewGlobalFactor(name, multiplierRange, description)
	w.GlobalFactors = append(w.GlobalFactors, factor)
	w.ReconcileSettings()
	return factor
}

// RenameFactor updates a factor's name. Existing per-task settings are left
// untouched.
func (w *Worksheet) RenameFactor(id FactorID, name string) bool {
	factor := w.FindFactor(id)
	if factor == nil {
		return false
	}
	factor.Name = name
	return true
}

// UpdateFactorRange updates a factor's multiplier range and re-derives its
// average. Existing per-task current values are deliberately not reset: a
// range edit must not wipe out task-specific tuning. Settings for task/factor
// pairs that do not exist yet are created by reconciliation.
func (w *Worksheet) UpdateFactorRange(id FactorID, multiplierRange string) bool {
	factor := w.FindFactor(id)
	if factor == nil {
		return false
	}
	factor.SetRange(multiplierRange)
	w.ReconcileSettings()
	return true
}

// UpdateFactorDescription updates a factor's description
func (w *Worksheet) UpdateFactorDescription(id FactorID, description string) bool {
	factor := w.FindFactor(id)
	if factor == nil {
		return false
	}
	factor.Description = description
	return true
}

// DeleteFactor removes a factor and its settings from every task. Deleting an
// absent ID is a no-op.
func (w *Worksheet) DeleteFactor(id FactorID) {
	for i, f := range w.GlobalFactors {
		if f.ID == id {
			w.GlobalFactors = append(w.GlobalFactors[:i], w.GlobalFactors[i+1:]...)
			break
		}
	}
	w.ReconcileSettings()
}

// AddTask appends a new task with one default, selected method and reconciles
// the settings matrix
func (w *Worksheet) AddTask(name, methodName string, methodRate float64) *Task {
	task := NewTask(name, methodName, methodRate)
	w.Tasks = append(w.Tasks, task)
	w.ReconcileSettings()
	return task
}

// DeleteTask removes a task and its settings entry. Deleting an absent ID is
// a no-op.
func (w *Worksheet) DeleteTask(id TaskID) {
	for i, t := range w.Tasks {
		if t.ID == id {
			w.Tasks = append(w.Tasks[:i], w.Tasks[i+1:]...)
			break
		}
	}
	w.ReconcileSettings()
}

// MoveTask moves a task in the list by the specified offset
func (w *Worksheet) MoveTask(id TaskID, offset int) bool {
	currentIndex := -1
	for i, t := range w.Tasks {
		if t.ID == id {
			currentIndex = i
			break
		}
	}
	if currentIndex == -1 {
		return false
	}

	newIndex := currentIndex + offset
	if newIndex < 0 || newIndex >= len(w.Tasks) {
		return false
	}

	task := w.Tasks[currentIndex]
	w.Tasks = append(w.Tasks[:currentIndex], w.Tasks[currentIndex+1:]...)
	w.Tasks = append(w.Tasks[:newIndex], append([]*Task{task}, w.Tasks[newIndex:]...)...)
	return true
}

// SetTaskSelected marks a task as included in or excluded from the estimate
func (w *Worksheet) SetTaskSelected(id TaskID, selected bool) bool {
	task := w.FindTask(id)
	if task == nil {
		return false
	}
	task.IsSelected = selected
	return true
}

// AddMethod appends a method to a task. The first method of a task becomes
// selected; later ones start unselected.
func (w *Worksheet) AddMethod(taskID TaskID, name string, methodRate float64) error {
	task := w.FindTask(taskID)
	if task == nil {
		return ErrTaskNotFound
	}

	method := Method{Name: name, Rate: methodRate, IsSelected: len(task.Methods) == 0}
	task.Methods = append(task.Methods, method)
	task.EnsureMethodSelection()
	return nil
}

// DeleteMethod removes a method by index. The task's last remaining method
// cannot be deleted; if the removed method was selected, the first remaining
// one takes over.
func (w *Worksheet) DeleteMethod(taskID TaskID, index int) error {
	task := w.FindTask(taskID)
	if task == nil {
		return ErrTaskNotFound
	}
	if index < 0 || index >= len(task.Methods) {
		return ErrMethodIndex
	}
	if len(task.Methods) == 1 {
		return ErrLastMethod
	}

	wasSelected := task.Methods[index].IsSelected
	task.Methods = append(task.Methods[:index], task.Methods[index+1:]...)
	if wasSelected {
		task.Methods[0].IsSelected = true
	}
	task.EnsureMethodSelection()
	return nil
}

// SelectMethod marks the method at index as selected and deselects all its
// siblings
func (w *Worksheet) SelectMethod(taskID TaskID, index int) error {
	task := w.FindTask(taskID)
	if task == nil {
		return ErrTaskNotFound
	}
	if index < 0 || index >= len(task.Methods) {
		return ErrMethodIndex
	}

	for i := range task.Methods {
		task.Methods[i].IsSelected = i == index
	}
	return nil
}

// SetFactorApplied toggles whether a factor affects a task's rate
func (w *Worksheet) SetFactorApplied(taskID TaskID, factorID FactorID, applied bool) error {
	setting := w.Setting(taskID, factorID)
	if setting == nil {
		return ErrSettingNotFound
	}
	setting.Applied = applied
	return nil
}

// SetFactorValue sets the task-specific multiplier, clamped into the
// setting's bounds
func (w *Worksheet) SetFactorValue(taskID TaskID, factorID FactorID, value float64) error {
	setting := w.Setting(taskID, factorID)
	if setting == nil {
		return ErrSettingNotFound
	}
	setting.SetValue(value)
	return nil
}

// SetFactorBounds replaces the task-specific bounds and re-clamps the current
// value
func (w *Worksheet) SetFactorBounds(taskID TaskID, factorID FactorID, min, max float64) error {
	setting := w.Setting(taskID, factorID)
	if setting == nil {
		return ErrSettingNotFound
	}
	setting.SetBounds(min, max)
	return nil
}

// ReconcileSettings makes the settings matrix a complete cross product of
// current tasks and factors: missing pairs are created with defaults, entries
// for deleted tasks or factors are pruned, and malformed entries are
// repaired. Idempotent; called after every structural mutation and after
// load.
func (w *Worksheet) ReconcileSettings() {
	if w.TaskFactorSettings == nil {
		w.TaskFactorSettings = map[TaskID]map[FactorID]*FactorSetting{}
	}

	// Create missing entries
	for _, task := range w.Tasks {
		byFactor, ok := w.TaskFactorSettings[task.ID]
		if !ok {
			byFactor = map[FactorID]*FactorSetting{}
			w.TaskFactorSettings[task.ID] = byFactor
		}
		for _, factor := range w.GlobalFactors {
			setting, ok := byFactor[factor.ID]
			if !ok || setting == nil {
				byFactor[factor.ID] = newFactorSetting(factor)
				continue
			}
			// Repair bounds of entries loaded from older documents that
			// carried only applied/currentValue.
			if setting.Min == 0 && setting.Max == 0 {
				setting.Min, setting.Max = factor.Bounds()
			}
			if setting.Min < rate.FloorMin {
				setting.Min = rate.FloorMin
			}
			if setting.Max <= setting.Min {
				setting.Max = setting.Min + 0.01
			}
			if setting.CurrentValue == 0 {
				setting.CurrentValue = factor.AvgMultiplier
			}
			setting.CurrentValue = setting.clamp(setting.CurrentValue)
		}
	}

	// Prune entries whose task or factor no longer exists
	for taskID, byFactor := range w.TaskFactorSettings {
		if w.FindTask(taskID) == nil {
			delete(w.TaskFactorSettings, taskID)
			continue
		}
		for factorID := range byFactor {
			if w.FindFactor(factorID) == nil {
				delete(byFactor, factorID)
			}
		}
	}
}

// Normalize repairs a worksheet after load: nil slices and maps are
// initialized, factor averages are re-derived from their range strings,
// legacy single-rate tasks are migrated to one default method, method
// selection is enforced, and the settings matrix is reconciled.
func (w *Worksheet) Normalize() {
	if w.GlobalFactors == nil {
		w.GlobalFactors = []*GlobalFactor{}
	}
	if w.Tasks == nil {
		w.Tasks = []*Task{}
	}
	if w.TaskFactorSettings == nil {
		w.TaskFactorSettings = map[TaskID]map[FactorID]*FactorSetting{}
	}

	for _, factor := range w.GlobalFactors {
		factor.AvgMultiplier = rate.Average(factor.MultiplierRange)
	}

	for _, task := range w.Tasks {
		if len(task.Methods) == 0 {
			methodRate := task.LegacyBaseRate
			if methodRate <= 0 {
				methodRate = FallbackMethodRate
			}
			task.Methods = []Method{
				{Name: "Standard application", Rate: methodRate, IsSelected: true},
			}
		}
		task.LegacyBaseRate = 0
		task.EnsureMethodSelection()
	}

	w.ReconcileSettings()
}

// Clone returns a deep copy of the worksheet
func (w *Worksheet) Clone() *Worksheet {
	clone := &Worksheet{
		SOPName:            w.SOPName,
		SOPDescription:     w.SOPDescription,
		GlobalFactors:      make([]*GlobalFactor, 0, len(w.GlobalFactors)),
		Tasks:              make([]*Task, 0, len(w.Tasks)),
		TaskFactorSettings: make(map[TaskID]map[FactorID]*FactorSetting, len(w.TaskFactorSettings)),
	}

	for _, factor := range w.GlobalFactors {
		f := *factor
		clone.GlobalFactors = append(clone.GlobalFactors, &f)
	}
	for _, task := range w.Tasks {
		t := *task
		t.Methods = append([]Method(nil), task.Methods...)
		clone.Tasks = append(clone.Tasks, &t)
	}
	for taskID, byFactor := range w.TaskFactorSettings {
		cloned := make(map[FactorID]*FactorSetting, len(byFactor))
		for factorID, setting := range byFactor {
			s := *setting
			cloned[factorID] = &s
		}
		clone.TaskFactorSettings[taskID] = cloned
	}

	return clone
}
