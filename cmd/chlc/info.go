package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/chazu/chlc/pkg/bytecode"
	"github.com/chazu/chlc/pkg/image"
	"github.com/chazu/chlc/server"
)

var commandInfo = &cli.Command{
	Action:    infoCmd,
	Name:      "info",
	Usage:     "summarize the scripts and globals of a program image",
	ArgsUsage: "<image>",
}

func infoCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("exactly one image required")
	}
	p, err := image.ReadFile(ctx.Args().First())
	if err != nil {
		return err
	}
	printInfo(ctx.App.Writer, p)
	return nil
}

func printInfo(w io.Writer, p *bytecode.Program) {
	heading := color.New(color.Bold)

	heading.Fprintf(w, "Scripts (%d)\n", len(p.Scripts))
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Type", "Parameters", "Locals", "Address", "Source"})
	table.SetAutoWrapText(false)
	for _, s := range p.Scripts {
		table.Append([]string{
			strconv.Itoa(s.ID),
			s.Name,
			s.Type.String(),
			strings.Join(s.Params(), ", "),
			strings.Join(s.Locals(), ", "),
			fmt.Sprintf("0x%08X", s.Address),
			s.SourceFile,
		})
	}
	table.Render()

	initial := make(map[string]float32, len(p.InitGlobals))
	for _, g := range p.InitGlobals {
		initial[g.Name] = g.Value
	}
	heading.Fprintf(w, "\nGlobals (%d)\n", len(p.Globals))
	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"Index", "Name", "Initial"})
	for i, name := range p.Globals {
		value := ""
		if v, ok := initial[name]; ok {
			value = bytecode.FormatFloat(v)
		}
		table.Append([]string{strconv.Itoa(i + 1), name, value})
	}
	table.Render()

	var autorun []string
	for _, id := range p.Autorun {
		if s, ok := p.ScriptByID(id); ok {
			autorun = append(autorun, s.Name)
		}
	}
	heading.Fprint(w, "\nAutorun: ")
	fmt.Fprintln(w, strings.Join(autorun, ", "))
	heading.Fprint(w, "Instructions: ")
	fmt.Fprintln(w, len(p.Instructions))
	heading.Fprint(w, "Data: ")
	fmt.Fprintf(w, "%d bytes, %d strings\n", len(p.Data), len(p.DataStrings()))
}

var commandLsp = &cli.Command{
	Name:  "lsp",
	Usage: "run the language server on stdio",
	Action: func(ctx *cli.Context) error {
		return server.NewLSP(version).Run()
	},
}
