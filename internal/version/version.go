// Package version holds build information of the flow2ts CLI. The
// variables can be overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each component in its own color. Color
// output follows color.NoColor.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Line is the output of `flow2ts version`.
func Line() string {
	var sb strings.Builder
	sb.WriteString("flow2ts " + Colored())
	if GitCommit != "" {
		sb.WriteString(" (" + GitCommit)
		if BuildDate != "" {
			sb.WriteString(", " + BuildDate)
		}
		sb.WriteString(")")
	} else if BuildDate != "" {
		sb.WriteString(" (" + BuildDate + ")")
	}
	return sb.String()
}
