package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lukeapage/flow-to-ts/internal/diagfmt"
	"github.com/lukeapage/flow-to-ts/internal/driver"
	"github.com/lukeapage/flow-to-ts/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.js",
	Short: "Parse a source file and print its syntax tree",
	Long:  `Parse reads a Flow or TypeScript file and prints its syntax tree as indented JSON`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("dialect", "flow", "type syntax of the file (flow|ts)")
}

func readDialect(value string) (parser.Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "flow":
		return parser.Flow, nil
	case "ts", "typescript":
		return parser.TypeScript, nil
	default:
		return parser.Flow, fmt.Errorf("invalid --dialect value %q (expected flow|ts)", value)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	value, err := cmd.Flags().GetString("dialect")
	if err != nil {
		return fmt.Errorf("failed to get dialect flag: %w", err)
	}
	dialect, err := readDialect(value)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], dialect)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   !color.NoColor,
			Context: 2,
		})
	}
	if result.Tree == nil {
		return errFailed
	}
	return result.Tree.Dump(cmd.OutOrStdout(), result.Tree.Root)
}
