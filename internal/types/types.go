// Package types defines the cross-package data structures used by the repodoc CLI.
package types

// TopEntry pairs a relative path with its token count for top-N reporting.
type TopEntry struct {
	Path   string
	Tokens int
}

// ExtensionStat aggregates file and token counts for one file extension.
type ExtensionStat struct {
	Extension string
	Files     int
	Tokens    int
}

// Summary captures the aggregate metrics of a completed aggregation run.
// TotalTokens is the sum of per-file counts and is the authoritative total;
// the token count of the rendered document is tracked separately by the caller.
type Summary struct {
	TotalFiles  int
	TotalBytes  int64
	TotalTokens int
	Extensions  []ExtensionStat
	Top         []TopEntry
}
