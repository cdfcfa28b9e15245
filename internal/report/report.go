// Package report renders the end-of-run summary for the terminal and the log.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/temirov/repodoc/internal/types"
	"github.com/temirov/repodoc/internal/utils"
)

var summaryBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)

// Render returns the boxed human-readable summary of a completed run.
// documentTokens is the token count of the rendered combined document; the
// per-file sum in the summary remains the authoritative total.
func Render(summary types.Summary, documentTokens int, tokenizerName string, outputFilePath string) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Files: %d", summary.TotalFiles))
	lines = append(lines, fmt.Sprintf("Size: %s", utils.FormatFileSize(summary.TotalBytes)))
	lines = append(lines, fmt.Sprintf("Tokens: %d (%s)", summary.TotalTokens, tokenizerName))
	lines = append(lines, fmt.Sprintf("Document tokens: %d", documentTokens))
	lines = append(lines, fmt.Sprintf("Output: %s", outputFilePath))
	if len(summary.Top) > 0 {
		lines = append(lines, "", fmt.Sprintf("Top %d files by tokens:", len(summary.Top)))
		for _, topEntry := range summary.Top {
			lines = append(lines, fmt.Sprintf("  %s: %d", topEntry.Path, topEntry.Tokens))
		}
	}
	return summaryBoxStyle.Render(strings.Join(lines, "\n"))
}

// Log writes the summary figures to the logger so the log file carries the
// same record the terminal shows.
func Log(logger *zap.Logger, summary types.Summary, documentTokens int, outputFilePath string) {
	topPaths := make([]string, 0, len(summary.Top))
	for _, topEntry := range summary.Top {
		topPaths = append(topPaths, fmt.Sprintf("%s=%d", topEntry.Path, topEntry.Tokens))
	}
	logger.Info("aggregation complete",
		zap.Int("files", summary.TotalFiles),
		zap.Int64("bytes", summary.TotalBytes),
		zap.Int("tokens", summary.TotalTokens),
		zap.Int("documentTokens", documentTokens),
		zap.String("output", outputFilePath),
		zap.Strings("topFiles", topPaths))
}
