package rx

import "github.com/hpungsan/optom/internal/errors"

// CylinderForm selects which cylinder notation Transpose should produce.
type CylinderForm int

const (
	// FormUnspecified transposes any prescription with a cylinder.
	FormUnspecified CylinderForm = iota
	// FormNegative forces minus-cylinder notation ("n").
	FormNegative
	// FormPositive forces plus-cylinder notation ("p").
	FormPositive
)

const msgTransposeFlag = "Method transpose() only accepts 'n' and 'p' as input flags"

// ParseCylinderForm maps a transpose flag to a CylinderForm. The empty
// string is FormUnspecified.
func ParseCylinderForm(flag string) (CylinderForm, error) {
	switch flag {
	case "":
		return FormUnspecified, nil
	case "n":
		return FormNegative, nil
	case "p":
		return FormPositive, nil
	}
	return FormUnspecified, errors.NewInvalidArgument(flag, msgTransposeFlag)
}

// String returns the flag for f.
func (f CylinderForm) String() string {
	switch f {
	case FormNegative:
		return "n"
	case FormPositive:
		return "p"
	}
	return ""
}

// Transpose converts between plus- and minus-cylinder notation in place.
//
// With FormNegative the prescription changes only when the cylinder is
// positive, with FormPositive only when it is negative, and with
// FormUnspecified whenever there is a cylinder.
func (p *Prescription) Transpose(form CylinderForm) error {
	var apply bool
	switch form {
	case FormNegative:
		apply = p.cylinder > 0
	case FormPositive:
		apply = p.cylinder < 0
	case FormUnspecified:
		apply = p.cylinder != 0
	default:
		return errors.NewInvalidArgument(int(form), msgTransposeFlag)
	}
	if !apply {
		return nil
	}

	axis := p.axis + 90
	if axis > 180 {
		axis -= 180
	}
	return p.setPower(p.sphere+p.cylinder, -p.cylinder, axis)
}

// Form reports the notation the prescription is currently written in:
// "sphere" when there is no cylinder, else "negative" or "positive".
func (p *Prescription) Form() string {
	switch {
	case p.cylinder < 0:
		return "negative"
	case p.cylinder > 0:
		return "positive"
	}
	return "sphere"
}
