package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lukeapage/flow-to-ts/internal/config"
	"github.com/lukeapage/flow-to-ts/internal/convert"
	"github.com/lukeapage/flow-to-ts/internal/diagfmt"
	"github.com/lukeapage/flow-to-ts/internal/driver"
	"github.com/lukeapage/flow-to-ts/internal/trace"
	"github.com/lukeapage/flow-to-ts/internal/ui"
)

var convertCmd = &cobra.Command{
	Use:   "convert <paths...>",
	Short: "Convert Flow files to TypeScript",
	Long: `Convert .js, .jsx, .mjs and .flow files to TypeScript. Directories are
walked recursively. Output goes to a .ts file next to each input, or .tsx
when the file contains JSX. A file that fails does not stop the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	addConvertFlags(convertCmd)
}

func addConvertFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("stdout", false, "print the converted code instead of writing files")
	f.Bool("delete-source", false, "delete each input after its output is written")
	f.Int("jobs", 0, "max parallel conversions (0=auto)")
	f.Bool("cache", false, "reuse results from the on-disk cache")
	f.Bool("clear-cache", false, "drop the on-disk cache before converting")
	f.Bool("verify", false, "re-parse every output as TypeScript before writing it")
	f.String("ui", "auto", "progress UI (auto|on|off)")
	f.String("manifest", "", "path to flow2ts.toml (default: search from the working directory)")
	f.String("diagnostics-format", "pretty", "diagnostics format (pretty|json)")

	f.Bool("skip-non-flow", false, "skip files without an @flow comment")
	f.Bool("inline-utility-types", false, "inline $Diff and friends instead of importing utility-types")
	f.Bool("debug", false, "dump the rewritten tree to stderr")

	f.Bool("prettier", false, "reformat the output")
	f.String("style-config", "", "style file (.prettierrc, .json, .yaml, .toml, package.json)")
	f.Bool("semi", true, "end statements with semicolons")
	f.Bool("single-quote", false, "use single quotes")
	f.Int("tab-width", 2, "spaces per indentation level")
	f.String("trailing-comma", "es5", "trailing commas (none|es5|all)")
	f.Bool("bracket-spacing", true, "spaces inside object braces")
	f.String("arrow-parens", "always", "parens around a sole arrow parameter (always|avoid)")
	f.Int("print-width", 80, "line width the formatter fits to")
}

func runConvert(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	quiet, err := root.GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := root.GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := root.GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	diagFormat, err := flags.GetString("diagnostics-format")
	if err != nil {
		return err
	}
	diagFormat = strings.ToLower(diagFormat)
	if diagFormat != "pretty" && diagFormat != "json" {
		return fmt.Errorf("unsupported diagnostics format %q (must be pretty or json)", diagFormat)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	manifestPath, err := flags.GetString("manifest")
	if err != nil {
		return err
	}
	m, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}

	copts, err := convertOptions(cmd, m)
	if err != nil {
		return err
	}
	copts.DebugOut = cmd.ErrOrStderr()
	opts, err := driverOptions(cmd, copts)
	if err != nil {
		return err
	}
	opts.Timings = showTimings

	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()
	ctx := cmd.Context()

	files, err := driver.CollectFiles(args, m)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "no files to convert")
		}
		return nil
	}

	var sum *driver.Summary
	useTUI := opts.Stdout == nil && !quiet && shouldUseTUI(mode)
	if useTUI {
		err = ui.RunProgress(ctx, cmd.ErrOrStderr(), "flow2ts convert", files, func(sink driver.ProgressSink) error {
			opts.Progress = sink
			var convErr error
			sum, convErr = driver.ConvertFiles(ctx, files, opts)
			return convErr
		})
	} else {
		sum, err = driver.ConvertFiles(ctx, files, opts)
	}
	if err != nil {
		return err
	}

	failed := reportFailures(cmd, sum, diagFormat, maxDiagnostics, opts.Stdout != nil)
	if !quiet {
		printSummary(cmd.ErrOrStderr(), sum)
	}
	if showTimings {
		fmt.Fprintf(cmd.ErrOrStderr(), "files: %d\n%s", sum.Totals.Files(), sum.Totals.Report())
	}
	if failed {
		if ring, ok := trace.Ring(tracer); ok {
			fmt.Fprintln(cmd.ErrOrStderr(), "trace (last events):")
			_ = ring.Dump(cmd.ErrOrStderr(), trace.FormatText)
		}
		return errFailed
	}
	return nil
}

// loadManifest reads the manifest at path, or the one found from the working
// directory when path is empty. No manifest is not an error.
func loadManifest(path string) (*config.Manifest, error) {
	if path == "" {
		found, ok, err := config.FindManifest(".")
		if err != nil || !ok {
			return nil, err
		}
		path = found
	}
	return config.LoadManifest(path)
}

// convertOptions merges manifest settings with explicitly set flags.
func convertOptions(cmd *cobra.Command, m *config.Manifest) (convert.Options, error) {
	flags := cmd.Flags()
	var opts convert.Options
	if m != nil {
		opts.SkipNonFlow = m.Convert.SkipNonFlow
		opts.InlineUtilityTypes = m.Convert.InlineUtilityTypes
	}

	var err error
	if flags.Changed("skip-non-flow") {
		if opts.SkipNonFlow, err = flags.GetBool("skip-non-flow"); err != nil {
			return opts, err
		}
	}
	if flags.Changed("inline-utility-types") {
		if opts.InlineUtilityTypes, err = flags.GetBool("inline-utility-types"); err != nil {
			return opts, err
		}
	}
	if opts.Debug, err = flags.GetBool("debug"); err != nil {
		return opts, err
	}

	req := m.FormatRequest()
	if flags.Changed("prettier") {
		on, err := flags.GetBool("prettier")
		if err != nil {
			return opts, err
		}
		switch {
		case !on:
			req = nil
		case req == nil:
			req = &config.FormatRequest{}
		}
	}
	if req != nil {
		if err := overrideStyle(cmd, req); err != nil {
			return opts, err
		}
	}
	opts.Format = req
	return opts, nil
}

// overrideStyle copies the style flags the user set into req.
func overrideStyle(cmd *cobra.Command, req *config.FormatRequest) error {
	flags := cmd.Flags()
	if flags.Changed("style-config") {
		path, err := flags.GetString("style-config")
		if err != nil {
			return err
		}
		req.ConfigPath = path
	}

	bools := []struct {
		name string
		dst  **bool
	}{
		{"semi", &req.Semi},
		{"single-quote", &req.SingleQuote},
		{"bracket-spacing", &req.BracketSpacing},
	}
	for _, b := range bools {
		if !flags.Changed(b.name) {
			continue
		}
		v, err := flags.GetBool(b.name)
		if err != nil {
			return err
		}
		*b.dst = &v
	}

	ints := []struct {
		name string
		dst  **int
	}{
		{"tab-width", &req.TabWidth},
		{"print-width", &req.PrintWidth},
	}
	for _, i := range ints {
		if !flags.Changed(i.name) {
			continue
		}
		v, err := flags.GetInt(i.name)
		if err != nil {
			return err
		}
		*i.dst = &v
	}

	strs := []struct {
		name string
		dst  **string
	}{
		{"trailing-comma", &req.TrailingComma},
		{"arrow-parens", &req.ArrowParens},
	}
	for _, s := range strs {
		if !flags.Changed(s.name) {
			continue
		}
		v, err := flags.GetString(s.name)
		if err != nil {
			return err
		}
		*s.dst = &v
	}
	return nil
}

func driverOptions(cmd *cobra.Command, copts convert.Options) (driver.Options, error) {
	flags := cmd.Flags()
	opts := driver.Options{Convert: copts}

	var err error
	if opts.Jobs, err = flags.GetInt("jobs"); err != nil {
		return opts, err
	}
	if opts.DeleteSource, err = flags.GetBool("delete-source"); err != nil {
		return opts, err
	}
	if opts.Verify, err = flags.GetBool("verify"); err != nil {
		return opts, err
	}
	toStdout, err := flags.GetBool("stdout")
	if err != nil {
		return opts, err
	}
	if toStdout {
		if opts.DeleteSource {
			return opts, fmt.Errorf("--delete-source cannot be combined with --stdout")
		}
		opts.Stdout = cmd.OutOrStdout()
	}

	useCache, err := flags.GetBool("cache")
	if err != nil {
		return opts, err
	}
	clearCache, err := flags.GetBool("clear-cache")
	if err != nil {
		return opts, err
	}
	if useCache || clearCache {
		cache, err := driver.OpenDiskCache("flow2ts")
		if err != nil {
			return opts, fmt.Errorf("failed to open cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return opts, fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		if useCache {
			opts.Cache = cache
		}
	}
	return opts, nil
}

// reportFailures renders every failed file and reports whether there was one.
func reportFailures(cmd *cobra.Command, sum *driver.Summary, format string, maxDiagnostics int, stdoutTaken bool) bool {
	collector := diagfmt.NewCollector(maxDiagnostics)
	for i := range sum.Files {
		f := &sum.Files[i]
		if f.Err != nil {
			collector.Add(f.Path, f.Src, f.Err)
		}
	}
	if !sum.Failed() {
		return false
	}

	if format == "json" {
		out := cmd.OutOrStdout()
		if stdoutTaken {
			out = cmd.ErrOrStderr()
		}
		if err := collector.JSON(out, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to write diagnostics: %v\n", err)
		}
		return true
	}
	collector.Pretty(cmd.ErrOrStderr(), diagfmt.PrettyOpts{
		Color:     !color.NoColor,
		Context:   1,
		ShowNotes: true,
	})
	return true
}

func printSummary(w io.Writer, sum *driver.Summary) {
	converted, skipped, failed, cached := sum.Counts()
	ok := color.New(color.FgGreen, color.Bold)
	bad := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)

	parts := []string{ok.Sprintf("%d converted", converted)}
	if skipped > 0 {
		parts = append(parts, dim.Sprintf("%d skipped", skipped))
	}
	if failed > 0 {
		parts = append(parts, bad.Sprintf("%d failed", failed))
	}
	if cached > 0 {
		parts = append(parts, dim.Sprintf("%d from cache", cached))
	}
	fmt.Fprintln(w, strings.Join(parts, ", "))
}
