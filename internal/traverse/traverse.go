// Package traverse walks a repository tree and yields the files that survive filtering.
package traverse

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/repodoc/internal/ignore"
	"github.com/temirov/repodoc/internal/rules"
	"github.com/temirov/repodoc/internal/utils"
)

// Options configures a traversal pass.
type Options struct {
	// Root is the absolute directory the walk starts from.
	Root string
	// SkipDirectories lists directory names skipped at every path depth.
	SkipDirectories []string
	// Ignore holds the compiled ignore-file patterns. A nil matcher excludes nothing.
	Ignore *ignore.Matcher
	// FileTypeRules select which file names are captured. At least one rule must match.
	FileTypeRules []rules.Rule
	// Logger receives per-entry warnings. Must not be nil.
	Logger *zap.Logger
}

// Candidate is one file that passed every exclusion check.
type Candidate struct {
	AbsolutePath string
	RelativePath string
}

// Walk traverses options.Root top-down and invokes visit for every candidate
// file. filepath.WalkDir yields entries in lexical order, so the sequence is
// deterministic for an unchanged filesystem. Entries that cannot be accessed
// are logged and skipped; a non-nil error from visit aborts the walk.
func Walk(options Options, visit func(Candidate) error) error {
	cleanedRoot := filepath.Clean(options.Root)

	return filepath.WalkDir(cleanedRoot, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if accessError != nil {
			options.Logger.Warn("skipping inaccessible path",
				zap.String("path", walkedPath),
				zap.Error(accessError))
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath := utils.RelativePathOrSelf(walkedPath, cleanedRoot)
		if relativePath == "." {
			return nil
		}

		if directoryEntry.IsDir() {
			if utils.ContainsString(options.SkipDirectories, directoryEntry.Name()) {
				return filepath.SkipDir
			}
			if options.Ignore != nil && options.Ignore.Matches(relativePath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.Ignore != nil && options.Ignore.Matches(relativePath, false) {
			return nil
		}
		if !rules.AnyMatches(options.FileTypeRules, directoryEntry.Name()) {
			return nil
		}

		if visitError := visit(Candidate{AbsolutePath: walkedPath, RelativePath: relativePath}); visitError != nil {
			return fmt.Errorf("visiting %s: %w", relativePath, visitError)
		}
		return nil
	})
}
