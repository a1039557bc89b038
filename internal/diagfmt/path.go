package diagfmt

import (
	"os"
	"path/filepath"
	"strings"
)

// autoPathLimit is the length above which PathModeAuto shortens absolute
// paths to their base name.
const autoPathLimit = 40

func formatPath(p string, mode PathMode, baseDir string) string {
	if p == "" {
		return "<input>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	case PathModeRelative:
		if baseDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return p
			}
			baseDir = wd
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return p
		}
		rel, err := filepath.Rel(baseDir, abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			return p
		}
		return rel
	case PathModeBasename:
		return filepath.Base(p)
	default:
		if filepath.IsAbs(p) && len(p) > autoPathLimit {
			return filepath.Base(p)
		}
		return p
	}
}
