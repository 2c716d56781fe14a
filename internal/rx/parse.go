package rx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hpungsan/optom/internal/errors"
)

// planoPrefix marks a zero sphere ("pl", "plano").
const planoPrefix = "pl"

// Parse builds a prescription from shorthand such as "+1.00/-0.75x180",
// "-2.50" or "plano/-0.50x90".
func Parse(text string) (*Prescription, error) {
	return New().Parse(text)
}

// Parse sets sphere, cylinder and axis from shorthand and returns p.
// A sphere-only prescription gets cylinder 0 and axis 180. On failure p is
// left unchanged.
func (p *Prescription) Parse(text string) (*Prescription, error) {
	sphere, cylinder, axis, err := parseShorthand(text)
	if err != nil {
		return nil, err
	}
	if err := p.setPower(sphere, cylinder, axis); err != nil {
		return nil, err
	}
	return p, nil
}

func parseShorthand(text string) (sphere, cylinder, axis float64, err error) {
	parts := strings.Split(text, "/")
	if len(parts) > 2 {
		return 0, 0, 0, errors.NewParse(text, "Only one '/' can be parsed.")
	}

	sphereText := strings.TrimSpace(parts[0])
	cylinderText, axisText := "0", "180"

	if len(parts) == 2 {
		cylAxis := strings.Split(parts[1], "x")
		if len(cylAxis) != 2 {
			return 0, 0, 0, errors.NewParse(text, "Cylinder and axis must be separated by 'x'")
		}
		cylinderText, axisText = cylAxis[0], cylAxis[1]
	}

	if strings.HasPrefix(sphereText, planoPrefix) {
		sphereText = "0"
	}

	if sphere, err = parseNumber(sphereText); err != nil {
		return 0, 0, 0, err
	}
	if cylinder, err = parseNumber(cylinderText); err != nil {
		return 0, 0, 0, err
	}
	if axis, err = parseNumber(axisText); err != nil {
		return 0, 0, 0, err
	}
	return sphere, cylinder, axis, nil
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.NewParse(s, fmt.Sprintf("'%s' is not a valid number", s))
	}
	return v, nil
}
