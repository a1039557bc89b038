package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the project manifest file looked up from the working
// directory upwards.
const ManifestName = "flow2ts.toml"

// Manifest is a parsed flow2ts.toml.
type Manifest struct {
	// Dir is the directory holding the manifest; relative paths in it are
	// resolved against Dir.
	Dir string `toml:"-"`

	Convert ConvertSection `toml:"convert"`
	Format  FormatSection  `toml:"format"`
	Paths   PathsSection   `toml:"paths"`
}

type ConvertSection struct {
	SkipNonFlow        bool `toml:"skip_non_flow"`
	InlineUtilityTypes bool `toml:"inline_utility_types"`
}

type FormatSection struct {
	Enabled        bool    `toml:"enabled"`
	Config         string  `toml:"config"`
	Semi           *bool   `toml:"semi"`
	SingleQuote    *bool   `toml:"single_quote"`
	TabWidth       *int    `toml:"tab_width"`
	TrailingComma  *string `toml:"trailing_comma"`
	BracketSpacing *bool   `toml:"bracket_spacing"`
	ArrowParens    *string `toml:"arrow_parens"`
	PrintWidth     *int    `toml:"print_width"`
}

// PathsSection filters the files a directory walk converts. Patterns use
// path.Match syntax against slash-separated paths relative to Dir; a
// pattern without a slash matches the base name.
type PathsSection struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// FindManifest walks up from startDir to locate flow2ts.toml.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest parses a flow2ts.toml.
func LoadManifest(file string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(file, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", file, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", file, strings.Join(keys, ", "))
	}
	for _, pattern := range append(m.Paths.Include, m.Paths.Exclude...) {
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("%s: bad path pattern %q: %w", file, pattern, err)
		}
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	m.Dir = filepath.Dir(abs)
	return &m, nil
}

// FormatRequest returns the reformat request of the manifest, or nil when
// formatting is off.
func (m *Manifest) FormatRequest() *FormatRequest {
	if m == nil || !m.Format.Enabled {
		return nil
	}
	f := m.Format
	req := &FormatRequest{
		Semi:           f.Semi,
		SingleQuote:    f.SingleQuote,
		TabWidth:       f.TabWidth,
		TrailingComma:  f.TrailingComma,
		BracketSpacing: f.BracketSpacing,
		ArrowParens:    f.ArrowParens,
		PrintWidth:     f.PrintWidth,
	}
	if f.Config != "" {
		req.ConfigPath = f.Config
		if !filepath.IsAbs(f.Config) {
			req.ConfigPath = filepath.Join(m.Dir, f.Config)
		}
	}
	return req
}

// Selects reports whether file passes the include and exclude filters.
// Files outside Dir are never filtered.
func (m *Manifest) Selects(file string) bool {
	if m == nil {
		return true
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return true
	}
	rel, err := filepath.Rel(m.Dir, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return true
	}
	rel = filepath.ToSlash(rel)
	if len(m.Paths.Include) > 0 && !matchAny(m.Paths.Include, rel) {
		return false
	}
	return !matchAny(m.Paths.Exclude, rel)
}

func matchAny(patterns []string, rel string) bool {
	base := path.Base(rel)
	for _, p := range patterns {
		target := rel
		if !strings.Contains(p, "/") {
			target = base
		}
		if ok, _ := path.Match(p, target); ok {
			return true
		}
		// "dir/" and "dir/*" cover everything below dir
		if dir := strings.TrimSuffix(strings.TrimSuffix(p, "*"), "/"); dir != p && strings.HasPrefix(rel, dir+"/") {
			return true
		}
	}
	return false
}

// DefaultManifest is written by `flow2ts init`.
const DefaultManifest = `# flow2ts project settings

[convert]
skip_non_flow = false
inline_utility_types = false

[format]
enabled = false
# config = ".prettierrc"
# semi = true
# single_quote = false
# tab_width = 2
# trailing_comma = "es5"
# bracket_spacing = true
# arrow_parens = "always"
# print_width = 80

[paths]
include = ["*.js", "*.jsx", "*.mjs", "*.flow"]
exclude = ["node_modules/*"]
`
