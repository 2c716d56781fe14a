package rx

import (
	"slices"

	"github.com/hpungsan/optom/internal/record"
)

// Defaults applied by New.
const (
	DefaultAxis         = 180
	DefaultBackVertexMM = 12.0
)

var (
	ruleSphere     = record.Rule{Tag: "finite", Message: "Sphere must be a finite value"}
	ruleCylinder   = record.Rule{Tag: "finite", Message: "Cylinder must be a finite value"}
	ruleAxis       = record.Rule{Tag: "finite,gte=0,lte=180", Message: "Axis must be between 0 and 180 degrees"}
	ruleBackVertex = record.Rule{Tag: "finite,gte=0", Message: "Back vertex distance must be a positive value"}
)

// Prescription is a spectacle prescription.
//
// Fields are only reachable through setters, each of which checks its
// invariant before committing, so a Prescription is never observed holding
// an invalid value.
type Prescription struct {
	sphere       float64
	cylinder     float64
	axis         float64
	backVertexMM float64

	add             Add
	intermediateAdd Add
	extraAdds       []Add

	horizontalPrism        HorizontalPrism
	verticalPrism          VerticalPrism
	readingHorizontalPrism HorizontalPrism
	readingVerticalPrism   VerticalPrism
}

// New returns a plano prescription with default axis, adds and back vertex.
func New() *Prescription {
	return &Prescription{
		axis:            DefaultAxis,
		backVertexMM:    DefaultBackVertexMM,
		add:             Add{WorkingDistanceCM: DefaultAddWorkingDistanceCM},
		intermediateAdd: Add{WorkingDistanceCM: DefaultIntermediateWorkingDistanceCM},
	}
}

// Sphere returns the spherical power in dioptres.
func (p *Prescription) Sphere() float64 { return p.sphere }

// Cylinder returns the cylindrical power in dioptres.
func (p *Prescription) Cylinder() float64 { return p.cylinder }

// Axis returns the cylinder axis in degrees.
func (p *Prescription) Axis() float64 { return p.axis }

// BackVertexMM returns the back vertex distance in millimetres.
func (p *Prescription) BackVertexMM() float64 { return p.backVertexMM }

// Add returns the near add.
func (p *Prescription) Add() Add { return p.add }

// IntermediateAdd returns the intermediate add.
func (p *Prescription) IntermediateAdd() Add { return p.intermediateAdd }

// ExtraAdds returns a copy of the extra adds.
func (p *Prescription) ExtraAdds() []Add { return slices.Clone(p.extraAdds) }

// HorizontalPrism returns the distance horizontal prism.
func (p *Prescription) HorizontalPrism() HorizontalPrism { return p.horizontalPrism }

// VerticalPrism returns the distance vertical prism.
func (p *Prescription) VerticalPrism() VerticalPrism { return p.verticalPrism }

// ReadingHorizontalPrism returns the near horizontal prism.
func (p *Prescription) ReadingHorizontalPrism() HorizontalPrism { return p.readingHorizontalPrism }

// ReadingVerticalPrism returns the near vertical prism.
func (p *Prescription) ReadingVerticalPrism() VerticalPrism { return p.readingVerticalPrism }

// SetSphere sets the sphere after checking it is finite.
func (p *Prescription) SetSphere(v float64) error {
	if err := ruleSphere.Check(v); err != nil {
		return err
	}
	p.sphere = v
	return nil
}

// SetCylinder sets the cylinder after checking it is finite.
func (p *Prescription) SetCylinder(v float64) error {
	if err := ruleCylinder.Check(v); err != nil {
		return err
	}
	p.cylinder = v
	return nil
}

// SetAxis sets the axis after checking 0 ≤ axis ≤ 180.
func (p *Prescription) SetAxis(v float64) error {
	if err := ruleAxis.Check(v); err != nil {
		return err
	}
	p.axis = v
	return nil
}

// SetBackVertexMM sets the back vertex distance after checking it is finite and not negative.
func (p *Prescription) SetBackVertexMM(v float64) error {
	if err := ruleBackVertex.Check(v); err != nil {
		return err
	}
	p.backVertexMM = v
	return nil
}

// SetAdd sets the reading add after validating it.
func (p *Prescription) SetAdd(a Add) error {
	if err := record.Check(a); err != nil {
		return err
	}
	p.add = a
	return nil
}

// SetIntermediateAdd sets the intermediate add after validating it.
func (p *Prescription) SetIntermediateAdd(a Add) error {
	if err := record.Check(a); err != nil {
		return err
	}
	p.intermediateAdd = a
	return nil
}

// SetExtraAdds replaces the extra adds. Nothing is stored unless every add
// is valid.
func (p *Prescription) SetExtraAdds(adds []Add) error {
	for _, a := range adds {
		if err := record.Check(a); err != nil {
			return err
		}
	}
	p.extraAdds = slices.Clone(adds)
	return nil
}

// AppendExtraAdd adds a to the end of the extra adds.
func (p *Prescription) AppendExtraAdd(a Add) error {
	if err := record.Check(a); err != nil {
		return err
	}
	p.extraAdds = append(p.extraAdds, a)
	return nil
}

// SetHorizontalPrism sets the distance horizontal prism after validating it.
func (p *Prescription) SetHorizontalPrism(prism HorizontalPrism) error {
	if err := record.Check(prism); err != nil {
		return err
	}
	p.horizontalPrism = prism
	return nil
}

// SetVerticalPrism sets the distance vertical prism after validating it.
func (p *Prescription) SetVerticalPrism(prism VerticalPrism) error {
	if err := record.Check(prism); err != nil {
		return err
	}
	p.verticalPrism = prism
	return nil
}

// SetReadingHorizontalPrism sets the near horizontal prism after validating it.
func (p *Prescription) SetReadingHorizontalPrism(prism HorizontalPrism) error {
	if err := record.Check(prism); err != nil {
		return err
	}
	p.readingHorizontalPrism = prism
	return nil
}

// SetReadingVerticalPrism sets the near vertical prism after validating it.
func (p *Prescription) SetReadingVerticalPrism(prism VerticalPrism) error {
	if err := record.Check(prism); err != nil {
		return err
	}
	p.readingVerticalPrism = prism
	return nil
}

// Validate implements record.Validated by re-running every field rule.
func (p *Prescription) Validate() error {
	checks := []func() error{
		func() error { return ruleSphere.Check(p.sphere) },
		func() error { return ruleCylinder.Check(p.cylinder) },
		func() error { return ruleAxis.Check(p.axis) },
		func() error { return ruleBackVertex.Check(p.backVertexMM) },
		p.add.Validate,
		p.intermediateAdd.Validate,
		p.horizontalPrism.Validate,
		p.verticalPrism.Validate,
		p.readingHorizontalPrism.Validate,
		p.readingVerticalPrism.Validate,
	}
	for _, a := range p.extraAdds {
		checks = append(checks, a.Validate)
	}
	return record.CheckAll(checks...)
}

// setPower checks and commits sphere, cylinder and axis together.
func (p *Prescription) setPower(sphere, cylinder, axis float64) error {
	err := record.CheckAll(
		func() error { return ruleSphere.Check(sphere) },
		func() error { return ruleCylinder.Check(cylinder) },
		func() error { return ruleAxis.Check(axis) },
	)
	if err != nil {
		return err
	}
	p.sphere, p.cylinder, p.axis = sphere, cylinder, axis
	return nil
}

// MeanSphere returns the spherical equivalent, sphere + cylinder/2.
func (p *Prescription) MeanSphere() float64 {
	return p.sphere + p.cylinder/2
}
