package va

import (
	"math"
	"strings"

	"github.com/hpungsan/optom/internal/errors"
)

// MetresPerFoot is the conversion factor between test distances.
const MetresPerFoot = 0.3048

// Unit is the distance unit of a Snellen fraction.
type Unit string

const (
	// UnitUnspecified is the zero value; New treats it as metres.
	UnitUnspecified Unit = ""
	UnitMetres      Unit = "m"
	UnitFeet        Unit = "ft"
)

var unitAliases = map[string]Unit{
	"":       UnitUnspecified,
	"m":      UnitMetres,
	"metre":  UnitMetres,
	"metres": UnitMetres,
	"meter":  UnitMetres,
	"meters": UnitMetres,
	"ft":     UnitFeet,
	"foot":   UnitFeet,
	"feet":   UnitFeet,
}

const msgUnitFlag = "Method convert_unit() only accepts flags 'ft' and 'm'"

// ParseUnit maps a unit name or alias ("metres", "feet") to a Unit.
func ParseUnit(s string) (Unit, error) {
	if u, ok := unitAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return u, nil
	}
	return UnitUnspecified, errors.NewInvalidArgument(s, msgUnitFlag)
}

// valid reports whether u names a concrete unit.
func (u Unit) valid() bool {
	return u == UnitMetres || u == UnitFeet
}

// convert projects a distance from one unit to another. Results are rounded
// to the nearest whole distance, halves to even.
func convert(value float64, from, to Unit) float64 {
	switch {
	case from == to:
		return value
	case to == UnitFeet:
		return math.RoundToEven(value / MetresPerFoot)
	default:
		return math.RoundToEven(value * MetresPerFoot)
	}
}
