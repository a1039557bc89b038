package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
)

var flowSeeds = []string{
	"",
	"// @flow\nconst a: ?number = 1;\n",
	"type A = {| +a: string, -b?: number, [key: string]: mixed |};",
	"type B = $Keys<typeof obj> | $Values<O> | $ReadOnly<T> | $Shape<S>;",
	"type C = $Diff<A, B>; type D = $PropertyType<T, 'k'>; type E = $ElementType<T, K>;",
	"opaque type K: string = string;\nexport opaque type L = number;",
	"declare function f(x: number): string;\ndeclare class P<T> extends Q<T> { m(): void }",
	"declare module 'm' { declare module.exports: { a: number }; }",
	"import type { A, B as C } from './a';\nimport typeof D from './d';",
	"function f<T: Object = {}>(x: T, ...rest: Array<T>): T { return (x: any); }",
	"const g = async <T>(x: T): Promise<T> => x;",
	"class R<+T> extends S<T> implements U { static +a: number = 1; #b = 2; }",
	"x = <div className=\"a\" {...p}>hi {name}</div>;\ny = <><A /></>;",
	"type F = React.Node | React.Element<typeof C> | React$Ref<T>;",
	"const a = `a${b}c${`d${e}`}`; const r = /re[/]gex/gi;",
	"type G = { (x: number): string, m<T>(x: T): T, [[slot]]: T };",
	"/* block */ // line\nconst a = 1; // trailing\n\n\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range flowSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.js файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".js", ".jsx", ".mjs", ".flow":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
