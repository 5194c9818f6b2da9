package model

import (
	"github.com/ericmwr/SOP-PR-CALC/internal/rate"
)

// FactorID is a unique identifier for a global factor
type FactorID string

// GlobalFactor represents a named productivity multiplier with a configurable
// range. AvgMultiplier is derived from MultiplierRange and must be recomputed
// whenever the range changes.
type GlobalFactor struct {
	ID              FactorID `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	MultiplierRange string   `json:"multiplierRange" yaml:"multiplierRange"`
	Description     string   `json:"description,omitempty" yaml:"description,omitempty"`
	AvgMultiplier   float64  `json:"avgMultiplier" yaml:"avgMultiplier"`
}

// NewGlobalFactor creates a global factor with a fresh ID and derived average
func NewGlobalFactor(name, multiplierRange, description string) *GlobalFactor {
	return &GlobalFactor{
		ID:              FactorID(generateID("F")),
		Name:            name,
		MultiplierRange: multiplierRange,
		Description:     description,
		AvgMultiplier:   rate.Average(multiplierRange),
	}
}

// SetRange updates the range string and re-derives the average multiplier
func (f *GlobalFactor) SetRange(multiplierRange string) {
	f.MultiplierRange = multiplierRange
	f.AvgMultiplier = rate.Average(multiplierRange)
}

// Bounds returns the clamped slider bounds parsed from the range string
func (f *GlobalFactor) Bounds() (min, max float64) {
	return rate.ParseRange(f.MultiplierRange, rate.DefaultMin, rate.DefaultMax)
}

// FactorSetting is the per-task opt-in and tuned value for a global factor.
// Min and Max are task-specific copies seeded from the factor's parsed range;
// CurrentValue always satisfies Min <= CurrentValue <= Max.
type FactorSetting struct {
	Applied      bool    `json:"applied" yaml:"applied"`
	CurrentValue float64 `json:"currentValue" yaml:"currentValue"`
	Min          float64 `json:"min" yaml:"min"`
	Max          float64 `json:"max" yaml:"max"`
}

// newFactorSetting seeds a setting from the factor's range. The factor does
// not affect the task's rate until the user opts in.
func newFactorSetting(factor *GlobalFactor) *FactorSetting {
	min, max := factor.Bounds()
	s := &FactorSetting{
		Applied: false,
		Min:     min,
		Max:     max,
	}
	s.CurrentValue = s.clamp(factor.AvgMultiplier)
	return s
}

// SetBounds replaces the bounds and re-clamps the current value. The lower
// bound is floored at 0.1 and the upper bound kept strictly above the lower.
func (s *FactorSetting) SetBounds(min, max float64) {
	if min < rate.FloorMin {
		min = rate.FloorMin
	}
	if max <= min {
		max = min + 0.01
	}
	s.Min = min
	s.Max = max
	s.CurrentValue = s.clamp(s.CurrentValue)
}

// SetValue sets the current value, clamped into [Min, Max]
func (s *FactorSetting) SetValue(value float64) {
	s.CurrentValue = s.clamp(value)
}

func (s *FactorSetting) clamp(v float64) float64 {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}
