package convert

import "strings"

// refNames expands the placeholders transform leaves for the React ref
// family. Order matters: $ReactRef is a prefix of the other two.
var refNames = strings.NewReplacer(
	"$ReactRefCallback", "React.RefCallback",
	"$ReactRefObject", "React.RefObject",
	"$ReactRef", "React.Ref",
)

// normalize patches generated text. The substitutions are global: they also
// hit string literals and identifiers that contain the placeholders.
func normalize(code string, trailingLines int) string {
	code += strings.Repeat("\n", trailingLines)
	return refNames.Replace(code)
}

// trailingNewlines counts the newlines that end src.
func trailingNewlines(src []byte) int {
	n := 0
	for i := len(src) - 1; i >= 0; i-- {
		switch src[i] {
		case '\n':
			n++
		case '\r':
		default:
			return n
		}
	}
	return n
}
