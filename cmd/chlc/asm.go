package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/chazu/chlc/pkg/asm"
	"github.com/chazu/chlc/pkg/image"
)

var commandAsm = &cli.Command{
	Action:    asmCmd,
	Name:      "asm",
	Usage:     "assemble listings into a program image",
	ArgsUsage: "<listing>...",
	Flags: []cli.Flag{
		outputFlag,
		headerFlag,
		infoFlag,
		firstScriptIDFlag,
		privateStringsFlag,
		ignoreMissingFlag,
	},
}

func asmCmd(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("no listing given")
	}
	a := asm.New(asm.Options{
		FirstScriptID:        ctx.Int(firstScriptIDFlag.Name),
		SharedStrings:        !ctx.Bool(privateStringsFlag.Name),
		IgnoreMissingScripts: ctx.Bool(ignoreMissingFlag.Name),
	})
	if err := loadConstants(ctx, a); err != nil {
		return err
	}
	for _, path := range ctx.Args().Slice() {
		if err := a.AssembleFile(path); err != nil {
			return err
		}
	}
	p, err := a.Seal()
	if err != nil {
		return err
	}

	output := ctx.String(outputFlag.Name)
	if output == "" {
		output = defaultOutput(ctx.Args().First())
	}
	return writeProgram(ctx, p, output)
}

var commandDisasm = &cli.Command{
	Action:    disasmCmd,
	Name:      "disasm",
	Usage:     "print the assembly listing of a program image",
	ArgsUsage: "<image>",
	Flags: []cli.Flag{
		outputFlag,
	},
}

func disasmCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("exactly one image required")
	}
	p, err := image.ReadFile(ctx.Args().First())
	if err != nil {
		return err
	}
	listing := p.Disassemble()
	if path := ctx.String(outputFlag.Name); path != "" {
		if err := os.WriteFile(path, []byte(listing), 0o644); err != nil {
			return fmt.Errorf("cannot write %s: %w", path, err)
		}
		return nil
	}
	_, err = fmt.Fprint(ctx.App.Writer, listing)
	return err
}
