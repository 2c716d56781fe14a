package va

import (
	"math"
	"strconv"
	"strings"

	"github.com/hpungsan/optom/internal/errors"
	"github.com/hpungsan/optom/internal/format"
	"github.com/hpungsan/optom/internal/record"
)

// feetThreshold is the largest numerator still read as metres when parsing.
const feetThreshold = 6

// defaultNumerator fills an empty numerator ("/5" reads as 6/5).
const defaultNumerator = "6"

const msgParse = "Input must contain one '/' and numbers (e.g. '6/6')"

var (
	ruleDistance    = record.Rule{Tag: "finite,gte=0", Message: "Distance must be a positive value"}
	ruleDenominator = record.Rule{Tag: "ne=0", Message: "Denominator must not be zero"}
	ruleUnit        = record.Rule{Tag: "oneof=m ft", Message: "Unit must be 'm' or 'ft'"}
)

// VisualAcuity is a Snellen acuity such as 6/6 or 20/40.
//
// The zero value is an empty record meant to be filled by Parse; its
// derived views report an arithmetic error.
type VisualAcuity struct {
	numerator   float64
	denominator float64
	unit        Unit
}

// New returns a validated acuity. An unspecified unit means metres.
func New(numerator, denominator float64, unit Unit) (*VisualAcuity, error) {
	if unit == UnitUnspecified {
		unit = UnitMetres
	}
	v := &VisualAcuity{}
	if err := v.set(numerator, denominator, unit); err != nil {
		return nil, err
	}
	return v, nil
}

// Parse builds an acuity from "N/M" shorthand, inferring the unit.
func Parse(text string) (*VisualAcuity, error) {
	return (&VisualAcuity{}).Parse(text)
}

// Parse sets v from "N/M" shorthand and returns v. Whitespace around either
// side is ignored and an empty numerator reads as 6. A numerator above 6 is
// taken to be in feet, otherwise metres. On failure v is left unchanged.
func (v *VisualAcuity) Parse(text string) (*VisualAcuity, error) {
	parts := strings.Split(text, "/")
	if len(parts) != 2 {
		return nil, errors.NewParse(text, msgParse)
	}

	numText := strings.TrimSpace(parts[0])
	if numText == "" {
		numText = defaultNumerator
	}
	numerator, err := parseNumber(text, numText)
	if err != nil {
		return nil, err
	}
	denominator, err := parseNumber(text, strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}

	unit := UnitMetres
	if numerator > feetThreshold {
		unit = UnitFeet
	}

	if err := v.set(numerator, denominator, unit); err != nil {
		return nil, err
	}
	return v, nil
}

func parseNumber(text, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.NewParse(text, msgParse)
	}
	return f, nil
}

// Numerator returns the test distance.
func (v *VisualAcuity) Numerator() float64 { return v.numerator }

// Denominator returns the distance at which the smallest line read subtends
// five minutes of arc.
func (v *VisualAcuity) Denominator() float64 { return v.denominator }

// Unit returns the distance unit.
func (v *VisualAcuity) Unit() Unit { return v.unit }

// SetNumerator sets the test distance after checking it is finite and not negative.
func (v *VisualAcuity) SetNumerator(n float64) error {
	if err := ruleDistance.Check(n); err != nil {
		return err
	}
	v.numerator = n
	return nil
}

// SetDenominator sets the letter size distance after checking it is finite, not
// negative and not zero.
func (v *VisualAcuity) SetDenominator(d float64) error {
	if err := checkDenominator(d); err != nil {
		return err
	}
	v.denominator = d
	return nil
}

// SetUnit sets the unit after checking it is metres or feet. The distances are
// not converted; use ConvertUnit for that.
func (v *VisualAcuity) SetUnit(u Unit) error {
	if err := ruleUnit.Check(string(u)); err != nil {
		return err
	}
	v.unit = u
	return nil
}

// Validate implements record.Validated.
func (v *VisualAcuity) Validate() error {
	return validate(v.numerator, v.denominator, v.unit)
}

// set checks all three fields and commits them together.
func (v *VisualAcuity) set(numerator, denominator float64, unit Unit) error {
	if err := validate(numerator, denominator, unit); err != nil {
		return err
	}
	v.numerator, v.denominator, v.unit = numerator, denominator, unit
	return nil
}

func validate(numerator, denominator float64, unit Unit) error {
	return record.CheckAll(
		func() error { return ruleDistance.Check(numerator) },
		func() error { return checkDenominator(denominator) },
		func() error { return ruleUnit.Check(string(unit)) },
	)
}

func checkDenominator(d float64) error {
	if err := ruleDistance.Check(d); err != nil {
		return err
	}
	return ruleDenominator.Check(d)
}

// ConvertUnit rewrites numerator and denominator in the target unit. It is a
// no-op when v is already in that unit.
func (v *VisualAcuity) ConvertUnit(target Unit) error {
	if !target.valid() {
		return errors.NewInvalidArgument(string(target), msgUnitFlag)
	}
	if v.unit == target {
		return nil
	}
	return v.set(
		convert(v.numerator, v.unit, target),
		convert(v.denominator, v.unit, target),
		target,
	)
}

// Decimal returns numerator / denominator.
func (v *VisualAcuity) Decimal() (float64, error) {
	if v.denominator == 0 {
		return 0, errors.NewArithmetic(v.denominator, "Cannot compute decimal acuity with a zero denominator")
	}
	return v.numerator / v.denominator, nil
}

// LogMAR returns log10 of the decimal acuity (6/6 → 0, 6/12 → -0.301).
func (v *VisualAcuity) LogMAR() (float64, error) {
	d, err := v.Decimal()
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, errors.NewArithmetic(d, "logMAR is undefined for a non-positive decimal acuity")
	}
	return math.Log10(d), nil
}

// SnellenFraction renders "N/M" with trailing ".0" stripped.
func (v *VisualAcuity) SnellenFraction() string {
	return fraction(v.numerator, v.denominator)
}

// String implements fmt.Stringer.
func (v *VisualAcuity) String() string {
	return v.SnellenFraction()
}

// Feet renders the acuity in feet without changing v. It is a display
// projection: a distance that rounds to zero renders as 0 (6/0.1 → "20/0")
// where ConvertUnit would reject the same conversion.
func (v *VisualAcuity) Feet() string {
	return v.project(UnitFeet)
}

// Metres renders the acuity in metres without changing v, with the same
// rounding as Feet.
func (v *VisualAcuity) Metres() string {
	return v.project(UnitMetres)
}

func (v *VisualAcuity) project(to Unit) string {
	return fraction(convert(v.numerator, v.unit, to), convert(v.denominator, v.unit, to))
}

func fraction(numerator, denominator float64) string {
	return format.StripDecimal(numerator) + "/" + format.StripDecimal(denominator)
}
