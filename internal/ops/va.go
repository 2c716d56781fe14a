package ops

import (
	"github.com/hpungsan/optom/internal/config"
	"github.com/hpungsan/optom/internal/va"
)

// VAOutput is the JSON view of a visual acuity.
type VAOutput struct {
	Numerator   float64  `json:"numerator"`
	Denominator float64  `json:"denominator"`
	Unit        string   `json:"unit"`
	Snellen     string   `json:"snellen"`
	Decimal     *float64 `json:"decimal,omitempty"`
	LogMAR      *float64 `json:"logmar,omitempty"`
	Feet        string   `json:"feet"`
	Metres      string   `json:"metres"`
}

// newVAOutput builds the view. Decimal and logMAR are omitted when undefined
// (e.g. logMAR of a 0/6 acuity).
func newVAOutput(v *va.VisualAcuity) *VAOutput {
	out := &VAOutput{
		Numerator:   v.Numerator(),
		Denominator: v.Denominator(),
		Unit:        string(v.Unit()),
		Snellen:     v.SnellenFraction(),
		Feet:        v.Feet(),
		Metres:      v.Metres(),
	}
	if d, err := v.Decimal(); err == nil {
		out.Decimal = &d
	}
	if l, err := v.LogMAR(); err == nil {
		out.LogMAR = &l
	}
	return out
}

// ParseVAInput contains parameters for ParseVA.
type ParseVAInput struct {
	Text string
}

// ParseVA parses acuity shorthand. When cfg.AcuityUnit is set the result is
// converted to that unit.
func ParseVA(cfg *config.Config, input ParseVAInput) (*VAOutput, error) {
	text, err := requireText("va", input.Text)
	if err != nil {
		return nil, err
	}

	v, err := va.Parse(text)
	if err != nil {
		return nil, err
	}

	if cfg != nil && cfg.AcuityUnit != "" {
		unit, err := va.ParseUnit(cfg.AcuityUnit)
		if err != nil {
			return nil, err
		}
		if err := v.ConvertUnit(unit); err != nil {
			return nil, err
		}
	}

	return newVAOutput(v), nil
}

// ConvertVAInput contains parameters for ConvertVA.
type ConvertVAInput struct {
	Text string
	// Unit is the target unit name or alias ("ft", "m", "feet", "metres").
	Unit string
}

// ConvertVA parses acuity shorthand and converts it to the target unit.
func ConvertVA(input ConvertVAInput) (*VAOutput, error) {
	text, err := requireText("va", input.Text)
	if err != nil {
		return nil, err
	}

	unit, err := va.ParseUnit(input.Unit)
	if err != nil {
		return nil, err
	}

	v, err := va.Parse(text)
	if err != nil {
		return nil, err
	}

	if err := v.ConvertUnit(unit); err != nil {
		return nil, err
	}

	return newVAOutput(v), nil
}
