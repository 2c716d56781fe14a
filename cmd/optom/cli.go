package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/optom/internal/config"
	"github.com/hpungsan/optom/internal/errors"
	"github.com/hpungsan/optom/internal/ops"
)

// textFlag switches output from JSON to the canonical shorthand.
func textFlag() cli.Flag {
	return &cli.BoolFlag{Name: "text", Aliases: []string{"t"}, Usage: "Print canonical shorthand instead of JSON"}
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "optom",
		Usage:   "Spectacle prescription and visual acuity toolkit",
		Version: Version,
		Commands: []*cli.Command{
			rxCmd(cfg),
			vaCmd(cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// rxCmd groups the prescription commands.
func rxCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "rx",
		Usage: "Parse and transpose spectacle prescriptions",
		Subcommands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Parse prescription shorthand, e.g. +1.00/-0.75x180",
				ArgsUsage: "[--] <rx>",
				Flags:     []cli.Flag{textFlag()},
				Action: func(c *cli.Context) error {
					output, err := ops.ParseRx(ops.ParseRxInput{Text: c.Args().First()})
					if err != nil {
						return outputError(err)
					}
					if c.Bool("text") {
						return outputText(c.App.Writer, output.Text)
					}
					return outputJSON(c.App.Writer, output)
				},
			},
			{
				Name:      "transpose",
				Usage:     "Transpose between minus- and plus-cylinder form",
				ArgsUsage: "[--] <rx>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "flag", Aliases: []string{"f"}, Usage: "Target form: n (minus cylinder) or p (plus cylinder)"},
					textFlag(),
				},
				Action: func(c *cli.Context) error {
					output, err := ops.TransposeRx(cfg, ops.TransposeRxInput{
						Text: c.Args().First(),
						Flag: c.String("flag"),
					})
					if err != nil {
						return outputError(err)
					}
					if c.Bool("text") {
						return outputText(c.App.Writer, output.After.Text)
					}
					return outputJSON(c.App.Writer, output)
				},
			},
		},
	}
}

// vaCmd groups the visual acuity commands.
func vaCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "va",
		Usage: "Parse and convert Snellen visual acuity",
		Subcommands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Parse acuity shorthand, e.g. 6/12 or 20/40",
				ArgsUsage: "<va>",
				Flags:     []cli.Flag{textFlag()},
				Action: func(c *cli.Context) error {
					output, err := ops.ParseVA(cfg, ops.ParseVAInput{Text: c.Args().First()})
					if err != nil {
						return outputError(err)
					}
					if c.Bool("text") {
						return outputText(c.App.Writer, output.Snellen)
					}
					return outputJSON(c.App.Writer, output)
				},
			},
			{
				Name:      "convert",
				Usage:     "Convert acuity between metres and feet",
				ArgsUsage: "<va>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "unit", Aliases: []string{"u"}, Required: true, Usage: "Target unit: m or ft"},
					textFlag(),
				},
				Action: func(c *cli.Context) error {
					output, err := ops.ConvertVA(ops.ConvertVAInput{
						Text: c.Args().First(),
						Unit: c.String("unit"),
					})
					if err != nil {
						return outputError(err)
					}
					if c.Bool("text") {
						return outputText(c.App.Writer, output.Snellen)
					}
					return outputJSON(c.App.Writer, output)
				},
			},
		},
	}
}

// Helper functions

// outputJSON marshals result to w as JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputText writes a single line to w.
func outputText(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}

// outputError formats error for CLI.
func outputError(err error) error {
	if oErr, ok := err.(*errors.OptomError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", oErr.Code, oErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
