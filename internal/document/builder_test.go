package document

import (
	"strings"
	"testing"

	"github.com/temirov/repodoc/internal/types"
)

// TestRenderFileSections verifies the header, content and separator layout of
// file sections and their insertion order.
func TestRenderFileSections(testingHandle *testing.T) {
	builder := NewBuilder(Options{})
	builder.AddFile("a.py", "print('a')\n")
	builder.AddFile("b.json", "{}")

	rendered := builder.Render(types.Summary{})
	expected := "=== a.py ===\nprint('a')\n\n=== b.json ===\n{}\n\n"
	if rendered != expected {
		testingHandle.Fatalf("unexpected document:\ngot  %q\nwant %q", rendered, expected)
	}
}

// TestFileCount verifies the section count tracks additions.
func TestFileCount(testingHandle *testing.T) {
	builder := NewBuilder(Options{})
	if builder.FileCount() != 0 {
		testingHandle.Fatalf("expected 0 sections, got %d", builder.FileCount())
	}
	builder.AddFile("a.py", "a\n")
	builder.AddFile("b.py", "b\n")
	if builder.FileCount() != 2 {
		testingHandle.Fatalf("expected 2 sections, got %d", builder.FileCount())
	}
}

// TestRenderEachPathAppearsOnce verifies every added path appears exactly one time.
func TestRenderEachPathAppearsOnce(testingHandle *testing.T) {
	builder := NewBuilder(Options{})
	builder.AddFile("a.py", "a\n")
	builder.AddFile("sub/b.py", "b\n")

	rendered := builder.Render(types.Summary{})
	for _, relativePath := range []string{"a.py", "sub/b.py"} {
		headerLine := "=== " + relativePath + " ===\n"
		if strings.Count(rendered, headerLine) != 1 {
			testingHandle.Errorf("header for %s should appear exactly once", relativePath)
		}
	}
}

// TestRenderEmptyFileSection verifies empty files keep their section.
func TestRenderEmptyFileSection(testingHandle *testing.T) {
	builder := NewBuilder(Options{})
	builder.AddFile("empty.py", "")

	rendered := builder.Render(types.Summary{})
	expected := "=== empty.py ===\n\n\n"
	if rendered != expected {
		testingHandle.Fatalf("unexpected document:\ngot  %q\nwant %q", rendered, expected)
	}
}

// TestRenderIntroductionAndMetrics verifies the leading sections carry the
// summary figures.
func TestRenderIntroductionAndMetrics(testingHandle *testing.T) {
	builder := NewBuilder(Options{IncludeIntroduction: true})
	builder.AddFile("a.py", "a\n")

	summary := types.Summary{
		TotalFiles:  1,
		TotalTokens: 10,
		Extensions:  []types.ExtensionStat{{Extension: ".py", Files: 1, Tokens: 10}},
		Top:         []types.TopEntry{{Path: "a.py", Tokens: 10}},
	}
	rendered := builder.Render(summary)

	for _, expectedFragment := range []string{
		"Repository Metrics",
		"Total Files: 1",
		"Total Tokens: 10",
		"- .py: 1 (10 tokens)",
		"- a.py: 10 tokens",
		"Repository Files",
		"=== a.py ===",
	} {
		if !strings.Contains(rendered, expectedFragment) {
			testingHandle.Errorf("document missing %q", expectedFragment)
		}
	}
}

// TestRenderStructureSection verifies the structure tree renders when enabled.
func TestRenderStructureSection(testingHandle *testing.T) {
	builder := NewBuilder(Options{IncludeStructure: true})
	builder.AddFile("a.py", "a\n")
	builder.AddFile("sub/b.py", "b\n")

	rendered := builder.Render(types.Summary{})
	if !strings.Contains(rendered, "Repository Structure") {
		testingHandle.Fatalf("document missing structure section")
	}
	if !strings.Contains(rendered, "└── sub") && !strings.Contains(rendered, "├── sub") {
		testingHandle.Fatalf("structure section missing sub directory:\n%s", rendered)
	}
}

// TestBuildStructure verifies connector layout and lexical ordering.
func TestBuildStructure(testingHandle *testing.T) {
	structure := BuildStructure([]string{"b.py", "a/one.py", "a/two.py"})
	expected := "" +
		"├── a\n" +
		"│   ├── one.py\n" +
		"│   └── two.py\n" +
		"└── b.py\n"
	if structure != expected {
		testingHandle.Fatalf("unexpected structure:\ngot\n%s\nwant\n%s", structure, expected)
	}
}

// TestBuildStructureEmpty verifies no paths produce no lines.
func TestBuildStructureEmpty(testingHandle *testing.T) {
	if structure := BuildStructure(nil); structure != "" {
		testingHandle.Fatalf("expected empty structure, got %q", structure)
	}
}
