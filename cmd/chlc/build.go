package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/chazu/chlc/compiler"
	"github.com/chazu/chlc/manifest"
	"github.com/chazu/chlc/pkg/bytecode"
	"github.com/chazu/chlc/pkg/image"
)

var (
	projectFlag = &cli.StringFlag{
		Name:    "project",
		Aliases: []string{"p"},
		Usage:   "project file or directory (chl.toml or the line format)",
	}
	asmOutputFlag = &cli.StringFlag{
		Name:  "asm",
		Usage: "also write the assembly listing to this file",
	}
	tabWidthFlag = &cli.IntFlag{
		Name:  "tab-width",
		Usage: "columns per tab stop in reported positions",
		Value: compiler.DefaultTabWidth,
	}
)

var commandBuild = &cli.Command{
	Action:    buildCmd,
	Name:      "build",
	Usage:     "compile scripts into a program image",
	ArgsUsage: "[<source>...]",
	Description: `
Compile the given source files, or the project named by --project. With
neither, the chl.toml found in the current directory or one of its parents
is built.

Project builds take their constants and options from the project; file
builds take constants from --header and --info.`,
	Flags: []cli.Flag{
		projectFlag,
		outputFlag,
		asmOutputFlag,
		headerFlag,
		infoFlag,
		tabWidthFlag,
		firstScriptIDFlag,
		privateStringsFlag,
		ignoreMissingFlag,
	},
}

func buildCmd(ctx *cli.Context) error {
	var (
		c      *compiler.Compiler
		output string
		err    error
	)
	if ctx.NArg() > 0 && !ctx.IsSet(projectFlag.Name) {
		c, output, err = buildFiles(ctx)
	} else {
		c, output, err = buildProject(ctx)
	}
	if err != nil {
		return err
	}

	if ctx.IsSet(outputFlag.Name) {
		output = ctx.String(outputFlag.Name)
	}
	return writeProgram(ctx, c.Program(), output)
}

func buildProject(ctx *cli.Context) (*compiler.Compiler, string, error) {
	var (
		m   *manifest.Manifest
		err error
	)
	if path := ctx.String(projectFlag.Name); path != "" {
		m, err = manifest.Open(path)
	} else {
		m, err = manifest.FindAndLoad(".")
		if err == nil && m == nil {
			err = errors.New("no source files given and no " + manifest.FileName + " found")
		}
	}
	if err != nil {
		return nil, "", err
	}
	c, err := m.Build()
	if err != nil {
		return nil, "", err
	}
	return c, m.OutputPath(), nil
}

func buildFiles(ctx *cli.Context) (*compiler.Compiler, string, error) {
	c := compiler.New(compiler.Options{
		TabWidth:             ctx.Int(tabWidthFlag.Name),
		FirstScriptID:        ctx.Int(firstScriptIDFlag.Name),
		SharedStrings:        !ctx.Bool(privateStringsFlag.Name),
		IgnoreMissingScripts: ctx.Bool(ignoreMissingFlag.Name),
	})
	if err := loadConstants(ctx, c); err != nil {
		return nil, "", err
	}
	for _, path := range ctx.Args().Slice() {
		if err := c.CompileFile(path); err != nil {
			return nil, "", err
		}
	}
	if _, err := c.Seal(); err != nil {
		return nil, "", err
	}
	return c, defaultOutput(ctx.Args().First()), nil
}

// defaultOutput names the image after the first input.
func defaultOutput(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".chlb"
}

// writeProgram writes the image and, when --asm is given, the listing.
func writeProgram(ctx *cli.Context, p *bytecode.Program, output string) error {
	if err := image.WriteFile(output, p); err != nil {
		return err
	}
	if path := ctx.String(asmOutputFlag.Name); path != "" {
		if err := os.WriteFile(path, []byte(p.Disassemble()), 0o644); err != nil {
			return fmt.Errorf("cannot write %s: %w", path, err)
		}
	}
	fmt.Fprintf(ctx.App.Writer, "%s %d scripts, %d instructions -> %s\n",
		color.GreenString("ok"), len(p.Scripts), len(p.Instructions), output)
	return nil
}
