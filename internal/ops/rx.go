package ops

import (
	"github.com/hpungsan/optom/internal/config"
	"github.com/hpungsan/optom/internal/rx"
)

// RxOutput is the JSON view of a prescription.
type RxOutput struct {
	Sphere     float64 `json:"sphere"`
	Cylinder   float64 `json:"cylinder"`
	Axis       float64 `json:"axis"`
	MeanSphere float64 `json:"mean_sphere"`
	Form       string  `json:"form"`
	Text       string  `json:"text"`
}

func newRxOutput(p *rx.Prescription) RxOutput {
	return RxOutput{
		Sphere:     p.Sphere(),
		Cylinder:   p.Cylinder(),
		Axis:       p.Axis(),
		MeanSphere: p.MeanSphere(),
		Form:       p.Form(),
		Text:       p.String(),
	}
}

// ParseRxInput contains parameters for ParseRx.
type ParseRxInput struct {
	Text string
}

// ParseRx parses prescription shorthand.
func ParseRx(input ParseRxInput) (*RxOutput, error) {
	text, err := requireText("rx", input.Text)
	if err != nil {
		return nil, err
	}

	p, err := rx.Parse(text)
	if err != nil {
		return nil, err
	}

	out := newRxOutput(p)
	return &out, nil
}

// TransposeRxInput contains parameters for TransposeRx.
type TransposeRxInput struct {
	Text string
	// Flag is "n", "p" or empty. Empty falls back to the configured
	// cylinder form.
	Flag string
}

// TransposeRxOutput reports the prescription before and after transposing.
type TransposeRxOutput struct {
	Before     RxOutput `json:"before"`
	After      RxOutput `json:"after"`
	Flag       string   `json:"flag,omitempty"`
	Transposed bool     `json:"transposed"`
}

// TransposeRx parses prescription shorthand and transposes it.
func TransposeRx(cfg *config.Config, input TransposeRxInput) (*TransposeRxOutput, error) {
	text, err := requireText("rx", input.Text)
	if err != nil {
		return nil, err
	}

	flag := input.Flag
	if flag == "" && cfg != nil {
		flag = cfg.CylinderForm
	}
	form, err := rx.ParseCylinderForm(flag)
	if err != nil {
		return nil, err
	}

	p, err := rx.Parse(text)
	if err != nil {
		return nil, err
	}
	before := newRxOutput(p)

	if err := p.Transpose(form); err != nil {
		return nil, err
	}
	after := newRxOutput(p)

	return &TransposeRxOutput{
		Before:     before,
		After:      after,
		Flag:       form.String(),
		Transposed: before != after,
	}, nil
}
