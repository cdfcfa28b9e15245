// Package metrics accumulates aggregate figures for an aggregation run.
package metrics

import (
	"path"
	"sort"

	"github.com/temirov/repodoc/internal/types"
)

// DefaultTopCount is the number of top files reported when none is configured.
const DefaultTopCount = 5

// Accumulator gathers per-file figures during a traversal pass. The zero
// value is not usable; construct with NewAccumulator.
type Accumulator struct {
	totalFiles    int
	totalBytes    int64
	totalTokens   int
	perExtension  map[string]*types.ExtensionStat
	tokensPerPath []types.TopEntry
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		perExtension: make(map[string]*types.ExtensionStat),
	}
}

// Add records one included file. relativePath must be unique within a run.
func (accumulator *Accumulator) Add(relativePath string, sizeBytes int64, tokens int) {
	accumulator.totalFiles++
	accumulator.totalBytes += sizeBytes
	accumulator.totalTokens += tokens

	extension := extensionKey(relativePath)
	stat, statPresent := accumulator.perExtension[extension]
	if !statPresent {
		stat = &types.ExtensionStat{Extension: extension}
		accumulator.perExtension[extension] = stat
	}
	stat.Files++
	stat.Tokens += tokens

	accumulator.tokensPerPath = append(accumulator.tokensPerPath, types.TopEntry{Path: relativePath, Tokens: tokens})
}

// Snapshot computes the final summary. The top list is sorted by descending
// token count with lexical path order breaking ties, truncated to topCount.
// Extension stats are sorted by extension name for deterministic output.
func (accumulator *Accumulator) Snapshot(topCount int) types.Summary {
	if topCount <= 0 {
		topCount = DefaultTopCount
	}

	topEntries := make([]types.TopEntry, len(accumulator.tokensPerPath))
	copy(topEntries, accumulator.tokensPerPath)
	sort.Slice(topEntries, func(firstIndex, secondIndex int) bool {
		if topEntries[firstIndex].Tokens != topEntries[secondIndex].Tokens {
			return topEntries[firstIndex].Tokens > topEntries[secondIndex].Tokens
		}
		return topEntries[firstIndex].Path < topEntries[secondIndex].Path
	})
	if len(topEntries) > topCount {
		topEntries = topEntries[:topCount]
	}

	extensionStats := make([]types.ExtensionStat, 0, len(accumulator.perExtension))
	for _, stat := range accumulator.perExtension {
		extensionStats = append(extensionStats, *stat)
	}
	sort.Slice(extensionStats, func(firstIndex, secondIndex int) bool {
		return extensionStats[firstIndex].Extension < extensionStats[secondIndex].Extension
	})

	return types.Summary{
		TotalFiles:  accumulator.totalFiles,
		TotalBytes:  accumulator.totalBytes,
		TotalTokens: accumulator.totalTokens,
		Extensions:  extensionStats,
		Top:         topEntries,
	}
}

// extensionKey groups a file under its extension, or under its full name when
// it has none (Dockerfile, Makefile).
func extensionKey(relativePath string) string {
	baseName := path.Base(relativePath)
	extension := path.Ext(baseName)
	if extension == "" {
		return baseName
	}
	return extension
}
