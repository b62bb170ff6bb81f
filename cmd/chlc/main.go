// Command chlc compiles CHL challenge scripts into program images.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	"github.com/urfave/cli/v2"

	"github.com/chazu/chlc/manifest"
	"github.com/chazu/chlc/pkg/diag"
	"github.com/chazu/chlc/pkg/header"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var (
	verbosityFlag = &cli.IntFlag{
		Name:    "verbosity",
		Aliases: []string{"v"},
		Usage:   "log verbosity: 0 warnings, 1 notices, 2 progress, 3 debug",
	}
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable colored output",
	}

	headerFlag = &cli.StringSliceFlag{
		Name:  "header",
		Usage: "C header whose enums define constants (repeatable)",
	}
	infoFlag = &cli.StringSliceFlag{
		Name:  "info",
		Usage: "info file of NAME VALUE constants (repeatable)",
	}
	firstScriptIDFlag = &cli.IntFlag{
		Name:  "first-script-id",
		Usage: "id of the first script",
		Value: 1,
	}
	privateStringsFlag = &cli.BoolFlag{
		Name:  "no-shared-strings",
		Usage: "store every string literal separately",
	}
	ignoreMissingFlag = &cli.BoolFlag{
		Name:  "ignore-missing-scripts",
		Usage: "report calls to undefined scripts as warnings",
	}
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file",
	}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "chlc",
		Usage:   "CHL challenge script compiler",
		Version: version,
		Flags: []cli.Flag{
			verbosityFlag,
			noColorFlag,
		},
		Before: func(ctx *cli.Context) error {
			commonlog.Configure(ctx.Int(verbosityFlag.Name)-2, nil)
			if ctx.Bool(noColorFlag.Name) {
				color.NoColor = true
			}
			return nil
		},
		Commands: []*cli.Command{
			commandBuild,
			commandAsm,
			commandDisasm,
			commandInfo,
			commandLsp,
		},
	}
}

// printError reports err, highlighting the kind of a diagnostic.
func printError(w io.Writer, err error) {
	var de *diag.Error
	if !errors.As(err, &de) {
		color.New(color.FgRed, color.Bold).Fprint(w, "error: ")
		fmt.Fprintln(w, err)
		return
	}
	if s := de.Pos.String(); s != "" {
		color.New(color.Bold).Fprint(w, s+": ")
	}
	kind := color.New(color.FgRed, color.Bold)
	if de.Kind == diag.NotImplemented {
		kind = color.New(color.FgYellow, color.Bold)
	}
	kind.Fprint(w, de.Kind.String()+": ")
	fmt.Fprintln(w, de.Message)
}

// loadConstants feeds the --header and --info files to sink.
func loadConstants(ctx *cli.Context, sink manifest.ConstantSink) error {
	for _, path := range ctx.StringSlice(headerFlag.Name) {
		values, err := header.ParseHeaderFile(path)
		if err != nil {
			return err
		}
		sink.DefineConstants(values, path)
	}
	for _, path := range ctx.StringSlice(infoFlag.Name) {
		values, err := header.ParseInfoFile(path)
		if err != nil {
			return err
		}
		sink.DefineConstants(values, path)
	}
	return nil
}
