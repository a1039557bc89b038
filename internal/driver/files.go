package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lukeapage/flow-to-ts/internal/config"
)

// Extensions lists the file suffixes a directory walk picks up.
var Extensions = []string{".js", ".jsx", ".mjs", ".flow"}

func hasSourceExt(path string) bool {
	for _, ext := range Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// skipDir reports directories a walk never enters when no manifest says
// otherwise.
func skipDir(name string) bool {
	return name == "node_modules" || (len(name) > 1 && strings.HasPrefix(name, "."))
}

// CollectFiles expands paths into a sorted, de-duplicated file list.
// Files named explicitly are always taken; directories are walked for
// source extensions and filtered by the manifest, if any.
func CollectFiles(paths []string, m *config.Manifest) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && m == nil && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !hasSourceExt(path) || !m.Selects(path) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// OutputPath names the TypeScript file written for src: the source
// extension (and a .js before .flow) is replaced by .ts, or .tsx for JSX.
func OutputPath(src string, jsx bool) string {
	base := strings.TrimSuffix(src, ".flow")
	for _, ext := range []string{".js", ".jsx", ".mjs"} {
		if strings.HasSuffix(base, ext) {
			base = strings.TrimSuffix(base, ext)
			break
		}
	}
	if jsx {
		return base + ".tsx"
	}
	return base + ".ts"
}
