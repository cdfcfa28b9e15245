package metrics

import (
	"reflect"
	"testing"

	"github.com/temirov/repodoc/internal/types"
)

// TestSnapshotTotals verifies file, byte and token totals accumulate.
func TestSnapshotTotals(testingHandle *testing.T) {
	accumulator := NewAccumulator()
	accumulator.Add("a.py", 100, 10)
	accumulator.Add("b.json", 40, 5)
	accumulator.Add("sub/c.py", 60, 7)

	summary := accumulator.Snapshot(DefaultTopCount)
	if summary.TotalFiles != 3 {
		testingHandle.Errorf("TotalFiles: got %d want 3", summary.TotalFiles)
	}
	if summary.TotalBytes != 200 {
		testingHandle.Errorf("TotalBytes: got %d want 200", summary.TotalBytes)
	}
	if summary.TotalTokens != 22 {
		testingHandle.Errorf("TotalTokens: got %d want 22", summary.TotalTokens)
	}
}

// TestSnapshotTopOrdering verifies descending token order with lexical
// tie-break and the length bound.
func TestSnapshotTopOrdering(testingHandle *testing.T) {
	accumulator := NewAccumulator()
	accumulator.Add("z.py", 1, 10)
	accumulator.Add("a.py", 1, 10)
	accumulator.Add("m.py", 1, 25)
	accumulator.Add("n.py", 1, 3)

	summary := accumulator.Snapshot(3)
	expectedTop := []types.TopEntry{
		{Path: "m.py", Tokens: 25},
		{Path: "a.py", Tokens: 10},
		{Path: "z.py", Tokens: 10},
	}
	if !reflect.DeepEqual(summary.Top, expectedTop) {
		testingHandle.Fatalf("unexpected top list: got %v want %v", summary.Top, expectedTop)
	}
}

// TestSnapshotTopDefaultCount verifies a non-positive topCount selects the default.
func TestSnapshotTopDefaultCount(testingHandle *testing.T) {
	accumulator := NewAccumulator()
	for _, entry := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		accumulator.Add(entry+".py", 1, 1)
	}

	summary := accumulator.Snapshot(0)
	if len(summary.Top) != DefaultTopCount {
		testingHandle.Fatalf("expected %d top entries, got %d", DefaultTopCount, len(summary.Top))
	}
}

// TestSnapshotExtensionStats verifies grouping by extension, with
// extensionless names grouped under the file name.
func TestSnapshotExtensionStats(testingHandle *testing.T) {
	accumulator := NewAccumulator()
	accumulator.Add("a.py", 1, 10)
	accumulator.Add("sub/b.py", 1, 5)
	accumulator.Add("config.json", 1, 2)
	accumulator.Add("Dockerfile", 1, 4)

	summary := accumulator.Snapshot(DefaultTopCount)
	expectedStats := []types.ExtensionStat{
		{Extension: ".json", Files: 1, Tokens: 2},
		{Extension: ".py", Files: 2, Tokens: 15},
		{Extension: "Dockerfile", Files: 1, Tokens: 4},
	}
	if !reflect.DeepEqual(summary.Extensions, expectedStats) {
		testingHandle.Fatalf("unexpected extension stats: got %v want %v", summary.Extensions, expectedStats)
	}
}
