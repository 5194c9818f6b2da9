package model

import (
	"github.com/google/uuid"
)

// TaskID is a unique identifier for a task
type TaskID string

// FallbackMethodRate is used when a loaded task carries no usable rate at all
const FallbackMethodRate = 100

// Method represents a specific technique for performing a task, carrying its
// own base production rate in area units per labor hour. Within a task's
// method list exactly one method is selected whenever the list is non-empty.
type Method struct {
	Name       string  `json:"name" yaml:"name"`
	Rate       float64 `json:"rate" yaml:"rate"`
	IsSelected bool    `json:"isSelected" yaml:"isSelected"`
}

// Task represents a discrete unit of work with one or more application
// methods. A task with an empty method list is excluded from calculation.
type Task struct {
	ID                TaskID   `json:"id" yaml:"id"`
	Name              string   `json:"name" yaml:"name"`
	IsSelected        bool     `json:"isSelected" yaml:"isSelected"`
	Methods           []Method `json:"methods" yaml:"methods"`
	SkillLevel        string   `json:"skillLevel,omitempty" yaml:"skillLevel,omitempty"`
	MaterialsRequired string   `json:"materialsRequired,omitempty" yaml:"materialsRequired,omitempty"`
	FactorsAffecting  string   `json:"factorsAffecting,omitempty" yaml:"factorsAffecting,omitempty"`
	Description       string   `json:"description,omitempty" yaml:"description,omitempty"`

	// LegacyBaseRate captures the single-rate field of the older flat task
	// shape during import. It is consumed by Normalize and never re-exported.
	LegacyBaseRate float64 `json:"baseRate,omitempty" yaml:"baseRate,omitempty"`
}

// NewTask creates a selected task with one default, selected method
func NewTask(name, methodName string, methodRate float64) *Task {
	return &Task{
		ID:         TaskID(generateID("T")),
		Name:       name,
		IsSelected: true,
		Methods: []Method{
			{Name: methodName, Rate: methodRate, IsSelected: true},
		},
	}
}

// SelectedMethod returns the selected method, falling back to the first one
// if no method carries the flag. Returns nil for an empty method list.
func (t *Task) SelectedMethod() *Method {
	for i := range t.Methods {
		if t.Methods[i].IsSelected {
			return &t.Methods[i]
		}
	}
	if len(t.Methods) > 0 {
		return &t.Methods[0]
	}
	return nil
}

// EnsureMethodSelection repairs the exactly-one-selected invariant after a
// structural change: if nothing is selected the first method becomes
// selected, and any extra selections beyond the first are cleared.
func (t *Task) EnsureMethodSelection() {
	if len(t.Methods) == 0 {
		return
	}

	found := false
	for i := range t.Methods {
		if t.Methods[i].IsSelected {
			if found {
				t.Methods[i].IsSelected = false
			}
			found = true
		}
	}
	if !found {
		t.Methods[0].IsSelected = true
	}
}

func generateID(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}
