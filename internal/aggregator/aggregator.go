// Package aggregator runs the linear traversal, formatting and reporting pipeline.
//
// The pipeline is strictly sequential: Configure -> Traverse+Filter ->
// Read+Format -> Write output -> Compute metrics. Per-file failures are logged
// and skipped; setup and output-write failures abort the run.
package aggregator

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/repodoc/internal/document"
	"github.com/temirov/repodoc/internal/ignore"
	"github.com/temirov/repodoc/internal/metrics"
	"github.com/temirov/repodoc/internal/rules"
	"github.com/temirov/repodoc/internal/tokenizer"
	"github.com/temirov/repodoc/internal/traverse"
	"github.com/temirov/repodoc/internal/types"
	"github.com/temirov/repodoc/internal/utils"
)

// Settings holds the immutable configuration for one aggregation run.
type Settings struct {
	// RootDirectory is the directory the traversal starts from.
	RootDirectory string
	// OutputFilePath is where the combined document is written, overwritten each run.
	OutputFilePath string
	// IgnoreFilePath names the ignore file. Empty selects <root>/.gitignore;
	// an explicitly configured path that does not exist is fatal, while a
	// missing default yields an empty rule set.
	IgnoreFilePath string
	// SkipDirectories lists directory names excluded at every depth.
	SkipDirectories []string
	// FileTypeRules select which files are captured.
	FileTypeRules []rules.Rule
	// TopCount bounds the top-files list; zero selects the default.
	TopCount int
	// TokenizerModel names the tiktoken model or encoding used for counting.
	TokenizerModel string
	// TokenCounter overrides the counter constructed from TokenizerModel when non-nil.
	TokenCounter tokenizer.Counter
	// IncludeIntroduction and IncludeStructure control the document's leading sections.
	IncludeIntroduction bool
	IncludeStructure    bool
}

// Result captures the artifacts of a completed run.
type Result struct {
	Summary        types.Summary
	DocumentTokens int
	TokenizerName  string
	OutputFilePath string
	Document       string
}

// Run executes the aggregation pipeline with the provided settings.
func Run(settings Settings, logger *zap.Logger) (Result, error) {
	absoluteRoot, rootError := validateRoot(settings.RootDirectory)
	if rootError != nil {
		return Result{}, rootError
	}

	ignoreMatcher, ignoreError := loadIgnoreMatcher(settings.IgnoreFilePath, absoluteRoot, logger)
	if ignoreError != nil {
		return Result{}, ignoreError
	}

	tokenCounter := settings.TokenCounter
	tokenizerName := ""
	if tokenCounter == nil {
		constructedCounter, resolvedName, counterError := tokenizer.NewCounter(settings.TokenizerModel)
		if counterError != nil {
			return Result{}, fmt.Errorf("initialize tokenizer: %w", counterError)
		}
		tokenCounter = constructedCounter
		tokenizerName = resolvedName
	} else {
		tokenizerName = tokenCounter.Name()
	}

	absoluteOutputPath, outputPathError := filepath.Abs(settings.OutputFilePath)
	if outputPathError != nil {
		return Result{}, fmt.Errorf("resolve output path %s: %w", settings.OutputFilePath, outputPathError)
	}

	builder := document.NewBuilder(document.Options{
		IncludeIntroduction: settings.IncludeIntroduction,
		IncludeStructure:    settings.IncludeStructure,
	})
	accumulator := metrics.NewAccumulator()

	logger.Info("starting aggregation",
		zap.String("root", absoluteRoot),
		zap.String("output", absoluteOutputPath),
		zap.Int("fileTypeRules", len(settings.FileTypeRules)))

	walkOptions := traverse.Options{
		Root:            absoluteRoot,
		SkipDirectories: settings.SkipDirectories,
		Ignore:          ignoreMatcher,
		FileTypeRules:   settings.FileTypeRules,
		Logger:          logger,
	}
	walkError := traverse.Walk(walkOptions, func(candidate traverse.Candidate) error {
		// A stale combined document inside the root must not swallow itself.
		if candidate.AbsolutePath == absoluteOutputPath {
			return nil
		}

		fileBytes, readError := os.ReadFile(candidate.AbsolutePath)
		if readError != nil {
			logger.Warn("failed to read file, skipping",
				zap.String("path", candidate.RelativePath),
				zap.Error(readError))
			return nil
		}

		countResult, countError := tokenizer.CountBytes(tokenCounter, fileBytes)
		if countError != nil {
			logger.Warn("failed to count tokens, skipping",
				zap.String("path", candidate.RelativePath),
				zap.Error(countError))
			return nil
		}
		if !countResult.Counted {
			logger.Warn("skipping binary or undecodable file",
				zap.String("path", candidate.RelativePath))
			return nil
		}

		builder.AddFile(candidate.RelativePath, string(fileBytes))
		accumulator.Add(candidate.RelativePath, int64(len(fileBytes)), countResult.Tokens)
		return nil
	})
	if walkError != nil {
		return Result{}, fmt.Errorf("traversing %s: %w", absoluteRoot, walkError)
	}

	summary := accumulator.Snapshot(settings.TopCount)
	combinedDocument := builder.Render(summary)

	if writeError := os.WriteFile(absoluteOutputPath, []byte(combinedDocument), 0o644); writeError != nil {
		return Result{}, fmt.Errorf("writing combined document to %s: %w", absoluteOutputPath, writeError)
	}
	logger.Info("combined document written",
		zap.String("output", absoluteOutputPath),
		zap.Int("files", builder.FileCount()))

	documentTokens := 0
	if documentCount, documentCountError := tokenCounter.CountString(combinedDocument); documentCountError == nil {
		documentTokens = documentCount
	} else {
		logger.Warn("failed to count combined document tokens", zap.Error(documentCountError))
	}

	return Result{
		Summary:        summary,
		DocumentTokens: documentTokens,
		TokenizerName:  tokenizerName,
		OutputFilePath: absoluteOutputPath,
		Document:       combinedDocument,
	}, nil
}

// validateRoot resolves the root directory and fails fast when it is missing
// or not a directory.
func validateRoot(rootDirectory string) (string, error) {
	absoluteRoot, absoluteRootError := filepath.Abs(rootDirectory)
	if absoluteRootError != nil {
		return "", fmt.Errorf("resolve root directory %s: %w", rootDirectory, absoluteRootError)
	}
	cleanedRoot := filepath.Clean(absoluteRoot)
	rootInformation, statError := os.Stat(cleanedRoot)
	if statError != nil {
		if os.IsNotExist(statError) {
			return "", fmt.Errorf("root directory %s does not exist", rootDirectory)
		}
		return "", fmt.Errorf("stat root directory %s: %w", rootDirectory, statError)
	}
	if !rootInformation.IsDir() {
		return "", fmt.Errorf("root path %s is not a directory", rootDirectory)
	}
	return cleanedRoot, nil
}

// loadIgnoreMatcher loads the configured ignore file. An explicitly
// configured path that cannot be read is fatal; a missing default
// <root>/.gitignore yields an empty matcher.
func loadIgnoreMatcher(ignoreFilePath string, absoluteRoot string, logger *zap.Logger) (*ignore.Matcher, error) {
	explicitlyConfigured := ignoreFilePath != ""
	resolvedPath := ignoreFilePath
	if !explicitlyConfigured {
		resolvedPath = filepath.Join(absoluteRoot, utils.GitIgnoreFileName)
	}

	matcher, loadError := ignore.LoadFile(resolvedPath)
	if loadError != nil {
		if os.IsNotExist(loadError) && !explicitlyConfigured {
			logger.Debug("no ignore file found, no ignore rules apply",
				zap.String("path", resolvedPath))
			return ignore.NewMatcher(nil)
		}
		return nil, fmt.Errorf("loading ignore file %s: %w", resolvedPath, loadError)
	}
	logger.Debug("loaded ignore patterns",
		zap.String("path", resolvedPath),
		zap.Int("patterns", matcher.PatternCount()))
	return matcher, nil
}
