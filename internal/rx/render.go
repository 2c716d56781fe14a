package rx

import (
	"fmt"
	"strings"

	"github.com/hpungsan/optom/internal/format"
)

// String renders the canonical form, e.g. "+1.00 / -0.75 x 180",
// "+1.00 DS" or "plano".
func (p *Prescription) String() string {
	var b strings.Builder

	if p.sphere == 0 {
		b.WriteString("plano")
	} else {
		b.WriteString(signed(p.sphere))
	}

	switch {
	case p.cylinder != 0:
		b.WriteString(" / ")
		b.WriteString(signed(p.cylinder))
		b.WriteString(" x ")
		b.WriteString(format.StripDecimal(p.axis))
	case p.sphere != 0:
		b.WriteString(" DS")
	}

	return b.String()
}

// Detail renders String followed by any adds and prisms, e.g.
// "+1.00 DS Add +2.00 @ 40cm, 2.00Δ BI".
func (p *Prescription) Detail() string {
	var b strings.Builder
	b.WriteString(p.String())

	writeAdd(&b, "Add", p.add)
	writeAdd(&b, "Int", p.intermediateAdd)
	for _, a := range p.extraAdds {
		writeAdd(&b, "Add", a)
	}

	var prisms []string
	if !p.horizontalPrism.IsZero() {
		prisms = append(prisms, prism(p.horizontalPrism.Magnitude, horizontalLabel(p.horizontalPrism.Direction)))
	}
	if !p.verticalPrism.IsZero() {
		prisms = append(prisms, prism(p.verticalPrism.Magnitude, verticalLabel(p.verticalPrism.Direction)))
	}
	if !p.readingHorizontalPrism.IsZero() {
		prisms = append(prisms, "near "+prism(p.readingHorizontalPrism.Magnitude, horizontalLabel(p.readingHorizontalPrism.Direction)))
	}
	if !p.readingVerticalPrism.IsZero() {
		prisms = append(prisms, "near "+prism(p.readingVerticalPrism.Magnitude, verticalLabel(p.readingVerticalPrism.Direction)))
	}
	if len(prisms) > 0 {
		b.WriteString(", ")
		b.WriteString(strings.Join(prisms, ", "))
	}

	return b.String()
}

func signed(v float64) string {
	return fmt.Sprintf("%+.2f", v)
}

func writeAdd(b *strings.Builder, label string, a Add) {
	if a.Power == 0 {
		return
	}
	fmt.Fprintf(b, " %s %s @ %scm", label, signed(a.Power), format.StripDecimal(a.WorkingDistanceCM))
	if a.Description != "" {
		fmt.Fprintf(b, " (%s)", a.Description)
	}
}

func prism(magnitude float64, base string) string {
	s := fmt.Sprintf("%.2fΔ", magnitude)
	if base != "" {
		s += " " + base
	}
	return s
}

func horizontalLabel(d HorizontalBase) string {
	switch d {
	case BaseIn:
		return "BI"
	case BaseOut:
		return "BO"
	case BaseRight:
		return "BR"
	case BaseLeft:
		return "BL"
	}
	return ""
}

func verticalLabel(d VerticalBase) string {
	switch d {
	case BaseUp:
		return "BU"
	case BaseDown:
		return "BD"
	}
	return ""
}
