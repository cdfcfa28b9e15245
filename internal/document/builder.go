// Package document assembles the combined plain-text document.
package document

import (
	"fmt"
	"strings"

	"github.com/temirov/repodoc/internal/types"
)

const (
	sectionHeaderFormat = "=== %s ===\n"
	bannerLine          = "================================================================"

	introductionText = `This file is a merged representation of the repository, combining the
selected files into a single document intended for automated analysis.`
)

// Options selects which leading sections the rendered document carries. File
// sections are always present.
type Options struct {
	IncludeIntroduction bool
	IncludeStructure    bool
}

// Builder accumulates file sections in traversal order and renders the
// combined document once metrics are known.
type Builder struct {
	options  Options
	sections []fileSection
}

type fileSection struct {
	relativePath string
	content      string
}

// NewBuilder returns an empty Builder with the provided options.
func NewBuilder(options Options) *Builder {
	return &Builder{options: options}
}

// AddFile appends one file section. Sections render in insertion order.
func (builder *Builder) AddFile(relativePath string, content string) {
	builder.sections = append(builder.sections, fileSection{relativePath: relativePath, content: content})
}

// FileCount returns the number of accumulated file sections.
func (builder *Builder) FileCount() int {
	return len(builder.sections)
}

// RelativePaths returns the accumulated paths in insertion order.
func (builder *Builder) RelativePaths() []string {
	paths := make([]string, 0, len(builder.sections))
	for _, section := range builder.sections {
		paths = append(paths, section.relativePath)
	}
	return paths
}

// Render produces the combined document: optional introduction, metrics and
// structure sections, then one block per file in traversal order.
func (builder *Builder) Render(summary types.Summary) string {
	var output strings.Builder

	if builder.options.IncludeIntroduction {
		output.WriteString(introductionText)
		output.WriteString("\n\n")
		writeBanner(&output, "Repository Metrics")
		fmt.Fprintf(&output, "Total Files: %d\n", summary.TotalFiles)
		fmt.Fprintf(&output, "Total Tokens: %d\n", summary.TotalTokens)
		output.WriteString("Files by Type:\n")
		for _, extensionStat := range summary.Extensions {
			fmt.Fprintf(&output, "    - %s: %d (%d tokens)\n", extensionStat.Extension, extensionStat.Files, extensionStat.Tokens)
		}
		fmt.Fprintf(&output, "\nTop %d Files by Tokens:\n", len(summary.Top))
		for _, topEntry := range summary.Top {
			fmt.Fprintf(&output, "    - %s: %d tokens\n", topEntry.Path, topEntry.Tokens)
		}
		output.WriteString("\n")
	}

	if builder.options.IncludeStructure {
		writeBanner(&output, "Repository Structure")
		output.WriteString(BuildStructure(builder.RelativePaths()))
		output.WriteString("\n")
	}

	if builder.options.IncludeIntroduction || builder.options.IncludeStructure {
		writeBanner(&output, "Repository Files")
	}

	for _, section := range builder.sections {
		fmt.Fprintf(&output, sectionHeaderFormat, section.relativePath)
		output.WriteString(section.content)
		if !strings.HasSuffix(section.content, "\n") {
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	return output.String()
}

func writeBanner(output *strings.Builder, title string) {
	output.WriteString(bannerLine)
	output.WriteString("\n")
	output.WriteString(title)
	output.WriteString("\n")
	output.WriteString(bannerLine)
	output.WriteString("\n\n")
}
