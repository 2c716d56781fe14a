package mcp

import "github.com/mark3labs/mcp-go/mcp"

var rxParseToolDef = mcp.NewTool("rx_parse",
	mcp.WithDescription("Parse a spectacle prescription written in shorthand (e.g. +1.00/-0.75x180, pl, -2.50). "+
		"Returns sphere, cylinder, axis, mean sphere and the canonical text."),
	mcp.WithString("rx",
		mcp.Required(),
		mcp.Description("Prescription shorthand: SPHERE[/CYLINDERxAXIS]. 'pl' or 'plano' means a zero sphere."),
	),
)

var rxTransposeToolDef = mcp.NewTool("rx_transpose",
	mcp.WithDescription("Transpose a prescription between minus- and plus-cylinder notation. "+
		"Returns the prescription before and after."),
	mcp.WithString("rx",
		mcp.Required(),
		mcp.Description("Prescription shorthand, e.g. +1.00/-0.75x180."),
	),
	mcp.WithString("flag",
		mcp.Description("'n' forces minus cylinder, 'p' forces plus cylinder. Omit to always transpose "+
			"(or to use the configured cylinder_form)."),
		mcp.Enum("n", "p"),
	),
)

var vaParseToolDef = mcp.NewTool("va_parse",
	mcp.WithDescription("Parse a Snellen visual acuity (e.g. 6/6, 20/40). Numerators above 6 are read as feet. "+
		"Returns decimal acuity, logMAR and the fraction in both units."),
	mcp.WithString("va",
		mcp.Required(),
		mcp.Description("Acuity shorthand N/M. An empty numerator means 6."),
	),
)

var vaConvertToolDef = mcp.NewTool("va_convert",
	mcp.WithDescription("Convert a Snellen visual acuity between metres and feet. Distances are rounded to "+
		"whole numbers, halves to even."),
	mcp.WithString("va",
		mcp.Required(),
		mcp.Description("Acuity shorthand N/M."),
	),
	mcp.WithString("unit",
		mcp.Required(),
		mcp.Description("Target unit: 'm' or 'ft' (also 'metres', 'feet')."),
	),
)
