// Package version holds build metadata for the chainsel CLI. The variables
// can be overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.3.0-dev"

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

// Info is the build metadata in serializable form.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

// Current returns the metadata of this build.
func Current() Info {
	return Info{Version: Version, GitCommit: GitCommit, BuildDate: BuildDate}
}

// Pretty renders the version with each semver component colored. Versions
// that are not dotted triples are returned as is.
func Pretty(v string) string {
	core, suffix, _ := strings.Cut(v, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// String renders the metadata on one line.
func (i Info) String() string {
	var sb strings.Builder
	sb.WriteString("chainsel ")
	sb.WriteString(Pretty(i.Version))
	if i.GitCommit != "" {
		sb.WriteString(" (")
		sb.WriteString(i.GitCommit)
		sb.WriteString(")")
	}
	if i.BuildDate != "" {
		sb.WriteString(" built ")
		sb.WriteString(i.BuildDate)
	}
	return sb.String()
}
