package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lukeapage/flow-to-ts/internal/diag"
)

// FormatRequest asks for the output to be reformatted. Every field is
// optional; a nil override keeps the value from the config file or the
// default.
type FormatRequest struct {
	// ConfigPath names a style file to load before the overrides.
	ConfigPath string

	Semi           *bool
	SingleQuote    *bool
	TabWidth       *int
	TrailingComma  *string
	BracketSpacing *bool
	ArrowParens    *string
	PrintWidth     *int
}

// ResolveStyle merges defaults < config file < overrides. Problems with the
// file or with a value are reported as *diag.ConfigError.
func ResolveStyle(req *FormatRequest) (Style, error) {
	style := DefaultStyle()
	if req == nil {
		return style, nil
	}
	if req.ConfigPath != "" {
		values, err := loadStyleFile(req.ConfigPath)
		if err != nil {
			return Style{}, err
		}
		if err := style.apply(values); err != nil {
			return Style{}, &diag.ConfigError{Path: req.ConfigPath, Code: diag.CfgBadValue, Err: err}
		}
	}
	req.override(&style)
	if err := style.Validate(); err != nil {
		return Style{}, &diag.ConfigError{Path: req.ConfigPath, Code: diag.CfgBadValue, Err: err}
	}
	return style, nil
}

func (r *FormatRequest) override(s *Style) {
	if r.Semi != nil {
		s.Semi = *r.Semi
	}
	if r.SingleQuote != nil {
		s.SingleQuote = *r.SingleQuote
	}
	if r.TabWidth != nil {
		s.TabWidth = *r.TabWidth
	}
	if r.TrailingComma != nil {
		s.TrailingComma = *r.TrailingComma
	}
	if r.BracketSpacing != nil {
		s.BracketSpacing = *r.BracketSpacing
	}
	if r.ArrowParens != nil {
		s.ArrowParens = *r.ArrowParens
	}
	if r.PrintWidth != nil {
		s.PrintWidth = *r.PrintWidth
	}
}

// loadStyleFile reads a prettier-style config into a key/value map. The
// format follows the file name: TOML by extension, package.json by its
// "prettier" key, everything else as YAML (which also reads JSON).
func loadStyleFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &diag.ConfigError{Path: path, Code: diag.CfgUnreadable, Err: err}
	}
	malformed := func(err error) error {
		return &diag.ConfigError{Path: path, Code: diag.CfgMalformed, Err: err}
	}

	values := map[string]any{}
	switch {
	case strings.EqualFold(filepath.Ext(path), ".toml"):
		if _, err := toml.Decode(string(data), &values); err != nil {
			return nil, malformed(err)
		}
	case filepath.Base(path) == "package.json":
		var pkg map[string]any
		if err := decodeYAML(data, &pkg); err != nil {
			return nil, malformed(err)
		}
		switch v := pkg["prettier"].(type) {
		case nil:
		case map[string]any:
			values = v
		default:
			return nil, malformed(fmt.Errorf(`"prettier" must be an object, got %T`, v))
		}
	default:
		if err := decodeYAML(data, &values); err != nil {
			return nil, malformed(err)
		}
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}

func decodeYAML(data []byte, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return err
	}
	return nil
}

// apply copies the recognized keys of values into s. Unknown keys are
// ignored; a recognized key with the wrong type is an error.
func (s *Style) apply(values map[string]any) error {
	var errs []error
	setBool := func(key string, dst *bool) {
		v, ok := values[key]
		if !ok {
			return
		}
		b, isBool := v.(bool)
		if !isBool {
			errs = append(errs, fmt.Errorf("%s: want a boolean, got %v", key, v))
			return
		}
		*dst = b
	}
	setInt := func(key string, dst *int) {
		v, ok := values[key]
		if !ok {
			return
		}
		switch n := v.(type) {
		case int:
			*dst = n
		case int64:
			*dst = int(n)
		case uint64:
			*dst = int(n)
		case float64:
			if n != float64(int(n)) {
				errs = append(errs, fmt.Errorf("%s: want an integer, got %v", key, v))
				return
			}
			*dst = int(n)
		default:
			errs = append(errs, fmt.Errorf("%s: want an integer, got %v", key, v))
		}
	}
	setString := func(key string, dst *string) {
		v, ok := values[key]
		if !ok {
			return
		}
		str, isString := v.(string)
		if !isString {
			errs = append(errs, fmt.Errorf("%s: want a string, got %v", key, v))
			return
		}
		*dst = str
	}

	setBool("semi", &s.Semi)
	setBool("singleQuote", &s.SingleQuote)
	setInt("tabWidth", &s.TabWidth)
	setString("trailingComma", &s.TrailingComma)
	setBool("bracketSpacing", &s.BracketSpacing)
	setString("arrowParens", &s.ArrowParens)
	setInt("printWidth", &s.PrintWidth)
	return errors.Join(errs...)
}
