package rx

import "github.com/hpungsan/optom/internal/record"

// Default working distances in centimetres.
const (
	DefaultAddWorkingDistanceCM          = 40
	DefaultIntermediateWorkingDistanceCM = 50
)

var (
	ruleAddPower        = record.Rule{Tag: "finite,gte=0", Message: "Add must be a positive value"}
	ruleWorkingDistance = record.Rule{Tag: "finite,gt=0,lte=600", Message: "Working distance must be between 0 and 600 cm"}
	rulePrismMagnitude  = record.Rule{Tag: "finite,gte=0", Message: "Prism magnitude must be a positive value"}
	ruleHorizontalBase  = record.Rule{Tag: "omitempty,oneof=R L I O", Message: "Horizontal prism direction must be one of 'R', 'L', 'I' or 'O'"}
	ruleVerticalBase    = record.Rule{Tag: "omitempty,oneof=U D", Message: "Vertical prism direction must be one of 'U' or 'D'"}
)

// Add is a near or intermediate power add with its working distance
// (e.g. +2.00 @ 40cm).
type Add struct {
	Power             float64 `json:"add"`
	WorkingDistanceCM float64 `json:"working_distance_cm"`
	Description       string  `json:"description,omitempty"`
}

// NewAdd returns a validated add.
func NewAdd(power, workingDistanceCM float64, description string) (Add, error) {
	a := Add{Power: power, WorkingDistanceCM: workingDistanceCM, Description: description}
	if err := a.Validate(); err != nil {
		return Add{}, err
	}
	return a, nil
}

// Validate implements record.Validated.
func (a Add) Validate() error {
	return record.CheckAll(
		func() error { return ruleAddPower.Check(a.Power) },
		func() error { return ruleWorkingDistance.Check(a.WorkingDistanceCM) },
	)
}

// HorizontalBase is the base direction of a horizontal prism.
type HorizontalBase string

const (
	BaseNone  HorizontalBase = ""
	BaseRight HorizontalBase = "R"
	BaseLeft  HorizontalBase = "L"
	BaseIn    HorizontalBase = "I"
	BaseOut   HorizontalBase = "O"
)

// VerticalBase is the base direction of a vertical prism.
type VerticalBase string

const (
	BaseNoneVertical VerticalBase = ""
	BaseUp           VerticalBase = "U"
	BaseDown         VerticalBase = "D"
)

// HorizontalPrism is a horizontal prismatic correction.
type HorizontalPrism struct {
	Magnitude float64        `json:"magnitude"`
	Direction HorizontalBase `json:"direction,omitempty"`
}

// Validate implements record.Validated.
func (p HorizontalPrism) Validate() error {
	return record.CheckAll(
		func() error { return rulePrismMagnitude.Check(p.Magnitude) },
		func() error { return ruleHorizontalBase.Check(string(p.Direction)) },
	)
}

// IsZero reports whether the prism has no effect.
func (p HorizontalPrism) IsZero() bool {
	return p.Magnitude == 0
}

// VerticalPrism is a vertical prismatic correction.
type VerticalPrism struct {
	Magnitude float64      `json:"magnitude"`
	Direction VerticalBase `json:"direction,omitempty"`
}

// Validate implements record.Validated.
func (p VerticalPrism) Validate() error {
	return record.CheckAll(
		func() error { return rulePrismMagnitude.Check(p.Magnitude) },
		func() error { return ruleVerticalBase.Check(string(p.Direction)) },
	)
}

// IsZero reports whether the prism has no effect.
func (p VerticalPrism) IsZero() bool {
	return p.Magnitude == 0
}
