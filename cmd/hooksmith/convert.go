// Package main provides the entry point for the hooksmith CLI.
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/hooksmith/internal/convert"
	"github.com/gorewood/hooksmith/internal/output"
)

// newConvertCmd creates the convert command with subcommands.
func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <name> <input> <output>",
		Short: "Convert a file between formats",
		Long: `Convert a file between formats using the named catalogue operation.

Each operation delegates to one external tool (ffmpeg, yq, sqlite3, or
python3). Hooksmith does no transformation itself; 'convert list' shows
every operation and whether its tool is installed.

Examples:
  hooksmith convert json-to-yaml config.json config.yaml
  hooksmith convert wav-to-mp3 take1.wav take1.mp3
  hooksmith convert sqlite-to-sql app.db app.sql
  hooksmith convert list`,
		Args: cobra.ExactArgs(3),
		RunE: runConvert,
	}

	cmd.AddCommand(newConvertListCmd())
	return cmd
}

// runConvert executes a single conversion.
func runConvert(cmd *cobra.Command, args []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	name, in, out := args[0], args[1], args[2]

	conversion, err := convert.Lookup(name)
	if err != nil {
		userErr := output.NewUserError(err.Error())
		printer.Error(userErr)
		return userErr
	}

	if err := conversion.Run(cmd.Context(), in, out); err != nil {
		if convert.IsToolUnavailable(err) {
			sysErr := output.NewSystemError(fmt.Sprintf("%s: %s", name, err))
			printer.Error(sysErr)
			return sysErr
		}
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":     "ok",
			"conversion": name,
			"input":      in,
			"output":     out,
		})
	}
	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Converted %s -> %s (%s)", in, out, name),
	})
}

// newConvertListCmd creates the convert list subcommand.
func newConvertListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the conversion catalogue",
		Long:  `List every conversion operation with its tool and availability.`,
		RunE:  runConvertList,
	}
}

// runConvertList prints the catalogue.
func runConvertList(cmd *cobra.Command, _ []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	catalogue := convert.Catalogue()
	names := convert.Names()

	if printer.IsJSON() {
		entries := make([]map[string]any, 0, len(names))
		for _, name := range names {
			c := catalogue[name]
			entries = append(entries, map[string]any{
				"name":      c.Name,
				"from":      c.From,
				"to":        c.To,
				"tool":      c.Tool,
				"available": c.Available(),
			})
		}
		return printer.WriteJSON(map[string]any{"conversions": entries})
	}

	printHumanConvertList(printer, catalogue, names)
	return nil
}

// printHumanConvertList renders the catalogue grouped by tool.
func printHumanConvertList(printer *output.Printer, catalogue map[string]*convert.Conversion, names []string) {
	byTool := map[string][]string{}
	for _, name := range names {
		tool := catalogue[name].Tool
		byTool[tool] = append(byTool[tool], name)
	}

	tools := make([]string, 0, len(byTool))
	for tool := range byTool {
		tools = append(tools, tool)
	}
	sort.Strings(tools)

	for _, tool := range tools {
		avail := "available"
		if !catalogue[byTool[tool][0]].Available() {
			avail = "NOT INSTALLED"
		}
		printer.Section(fmt.Sprintf("%s (%s)", tool, avail))

		rows := make([][]string, 0, len(byTool[tool]))
		for _, name := range byTool[tool] {
			c := catalogue[name]
			rows = append(rows, []string{c.Name, strings.ToUpper(c.From), strings.ToUpper(c.To)})
		}
		printer.Table([]string{"NAME", "FROM", "TO"}, rows)
	}
}
