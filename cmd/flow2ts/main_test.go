package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/lukeapage/flow-to-ts/internal/config"
	"github.com/lukeapage/flow-to-ts/internal/convert"
	"github.com/lukeapage/flow-to-ts/internal/parser"
)

func newConvertCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "convert"}
	addConvertFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags %v: %v", args, err)
	}
	return cmd
}

func loadTestManifest(t *testing.T, body string) *config.Manifest {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	m, err := config.LoadManifest(path)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	return m
}

func TestConvertOptionsDefaults(t *testing.T) {
	opts, err := convertOptions(newConvertCmd(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.SkipNonFlow || opts.InlineUtilityTypes || opts.Debug || opts.Format != nil {
		t.Fatalf("defaults = %+v", opts)
	}
}

func TestConvertOptionsFlagsOverrideManifest(t *testing.T) {
	m := loadTestManifest(t, `
[convert]
skip_non_flow = true
inline_utility_types = true

[format]
enabled = true
semi = false
tab_width = 4
`)

	opts, err := convertOptions(newConvertCmd(t), m)
	if err != nil {
		t.Fatal(err)
	}
	if !opts.SkipNonFlow || !opts.InlineUtilityTypes {
		t.Fatalf("manifest convert section ignored: %+v", opts)
	}
	if opts.Format == nil || *opts.Format.Semi || *opts.Format.TabWidth != 4 {
		t.Fatalf("manifest format section ignored: %+v", opts.Format)
	}

	opts, err = convertOptions(newConvertCmd(t, "--skip-non-flow=false", "--semi", "--single-quote"), m)
	if err != nil {
		t.Fatal(err)
	}
	if opts.SkipNonFlow {
		t.Fatalf("--skip-non-flow=false did not override the manifest")
	}
	if !*opts.Format.Semi || !*opts.Format.SingleQuote || *opts.Format.TabWidth != 4 {
		t.Fatalf("format = %+v", opts.Format)
	}

	opts, err = convertOptions(newConvertCmd(t, "--prettier=false"), m)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Format != nil {
		t.Fatalf("--prettier=false kept formatting on")
	}
}

func TestConvertOptionsStyleFlags(t *testing.T) {
	// без --prettier флаги стиля ничего не включают
	opts, err := convertOptions(newConvertCmd(t, "--semi=false"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Format != nil {
		t.Fatalf("style flag enabled formatting")
	}

	opts, err = convertOptions(newConvertCmd(t,
		"--prettier", "--trailing-comma", "all", "--arrow-parens", "avoid",
		"--print-width", "100", "--bracket-spacing=false", "--style-config", "x/.prettierrc"), nil)
	if err != nil {
		t.Fatal(err)
	}
	f := opts.Format
	if f == nil || *f.TrailingComma != "all" || *f.ArrowParens != "avoid" || *f.PrintWidth != 100 ||
		*f.BracketSpacing || f.ConfigPath != "x/.prettierrc" || f.Semi != nil {
		t.Fatalf("format = %+v", f)
	}
}

func TestDriverOptionsRejectsStdoutWithDelete(t *testing.T) {
	cmd := newConvertCmd(t, "--stdout", "--delete-source")
	if _, err := driverOptions(cmd, convert.Options{}); err == nil {
		t.Fatalf("expected an error")
	}
	cmd = newConvertCmd(t, "--stdout", "--jobs", "3")
	opts, err := driverOptions(cmd, convert.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Stdout == nil || opts.Jobs != 3 || opts.Cache != nil {
		t.Fatalf("options = %+v", opts)
	}
}

func TestColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	tests := []struct {
		mode string
		tty  bool
		want bool
	}{
		{"auto", true, true},
		{"auto", false, false},
		{"on", false, true},
		{"OFF", true, false},
	}
	for _, tt := range tests {
		got, err := colorEnabled(tt.mode, tt.tty)
		if err != nil || got != tt.want {
			t.Fatalf("colorEnabled(%q, %v) = %v, %v", tt.mode, tt.tty, got, err)
		}
	}
	if _, err := colorEnabled("sometimes", true); err == nil {
		t.Fatalf("expected an error for a bad mode")
	}
}

func TestReadModes(t *testing.T) {
	if m, err := readUIMode(" On "); err != nil || m != uiModeOn {
		t.Fatalf("readUIMode = %q, %v", m, err)
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Fatalf("expected an error")
	}
	if d, err := readDialect("ts"); err != nil || d != parser.TypeScript {
		t.Fatalf("readDialect = %v, %v", d, err)
	}
	if _, err := readDialect("coffee"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestWriteManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")
	path, err := writeManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadManifest(path); err != nil {
		t.Fatalf("written manifest does not load: %v", err)
	}
	_, err = writeManifest(dir)
	if err == nil || !strings.Contains(err.Error(), "already initialized") {
		t.Fatalf("second init: %v", err)
	}
}
