// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repodoc/internal/aggregator"
	"github.com/temirov/repodoc/internal/config"
	"github.com/temirov/repodoc/internal/metrics"
	"github.com/temirov/repodoc/internal/report"
	"github.com/temirov/repodoc/internal/rules"
	"github.com/temirov/repodoc/internal/services/clipboard"
	"github.com/temirov/repodoc/internal/utils"
)

const (
	rootUse              = "repodoc"
	rootShortDescription = "repodoc packs a repository into a single document"
	rootLongDescription  = `repodoc walks a repository, filters files by type and ignore rules,
concatenates the surviving files into one combined document, and reports
token and size metrics.`

	versionFlagName        = "version"
	versionFlagDescription = "display application version"
	versionTemplate        = "repodoc version: %s\n"

	packUse              = "pack [root]"
	packAlias            = "p"
	packShortDescription = "build the combined document (" + packAlias + ")"
	packLongDescription  = `Walk the root directory, apply skip-list, ignore-file and file-type rules,
and write every surviving file into a single combined document.`
	packUsageExample = `  # Pack the current directory using repodoc.yaml defaults
  repodoc pack

  # Capture Python and JSON files, skipping the build directory
  repodoc pack ./service --type endswith:.py --type endswith:.json --skip build`

	initUse              = "init"
	initShortDescription = "write a default repodoc.yaml"

	outputFlagName         = "output"
	outputFlagDescription  = "combined document path"
	ignoreFileFlagName     = "ignore-file"
	ignoreFileFlagUsage    = "ignore file path (defaults to <root>/.gitignore)"
	logFileFlagName        = "log-file"
	logFileFlagDescription = "log file path"
	skipFlagName           = "skip"
	skipFlagDescription    = "directory name to skip at any depth (repeatable)"
	typeFlagName           = "type"
	typeFlagDescription    = "file-type rule, endswith:<suffix> or equals:<name> (repeatable)"
	topFlagName            = "top"
	topFlagDescription     = "number of top files by tokens to report"
	modelFlagName          = "model"
	modelFlagDescription   = "tokenizer model or encoding used for counting"
	copyFlagName           = "copy"
	copyFlagDescription    = "copy the combined document to the clipboard"
	noIntroFlagName        = "no-intro"
	noIntroFlagDescription = "omit the introduction and metrics sections"
	noStructureFlagName    = "no-structure"
	noStructureDescription = "omit the repository structure section"
	configFlagName         = "config"
	configFlagDescription  = "configuration file path"

	globalFlagName        = "global"
	globalFlagDescription = "write the global configuration file"
	forceFlagName         = "force"
	forceFlagDescription  = "overwrite an existing configuration file"

	defaultRootPath = "."
	noRulesMessage  = "no file-type rules configured; pass --" + typeFlagName + " or add types to " + utils.ConfigFileName
)

// defaultSkipDirectories are excluded when neither flags nor configuration
// provide a skip list.
var defaultSkipDirectories = []string{"venv", utils.GitDirectoryName, "notes", "archive"}

// Execute runs the repodoc application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createPackCommand(),
		createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// packOptions stores the pack command's flag values.
type packOptions struct {
	outputFilePath  string
	ignoreFilePath  string
	logFilePath     string
	skipDirectories []string
	typeSpecifiers  []string
	topCount        int
	tokenizerModel  string
	copyToClipboard bool
	noIntroduction  bool
	noStructure     bool
	configFilePath  string
}

// createPackCommand returns the pack subcommand.
func createPackCommand() *cobra.Command {
	packCommand, _ := newPackCommand()
	return packCommand
}

// newPackCommand builds the pack subcommand and returns the flag storage
// alongside it so settings resolution can be driven directly.
func newPackCommand() (*cobra.Command, *packOptions) {
	options := &packOptions{}

	packCommand := &cobra.Command{
		Use:     packUse,
		Aliases: []string{packAlias},
		Short:   packShortDescription,
		Long:    packLongDescription,
		Example: packUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return runPack(command, arguments, *options)
		},
	}

	packCommand.Flags().StringVarP(&options.outputFilePath, outputFlagName, "o", utils.DefaultOutputFileName, outputFlagDescription)
	packCommand.Flags().StringVar(&options.ignoreFilePath, ignoreFileFlagName, "", ignoreFileFlagUsage)
	packCommand.Flags().StringVar(&options.logFilePath, logFileFlagName, utils.DefaultLogFileName, logFileFlagDescription)
	packCommand.Flags().StringArrayVar(&options.skipDirectories, skipFlagName, nil, skipFlagDescription)
	packCommand.Flags().StringArrayVarP(&options.typeSpecifiers, typeFlagName, "t", nil, typeFlagDescription)
	packCommand.Flags().IntVar(&options.topCount, topFlagName, metrics.DefaultTopCount, topFlagDescription)
	packCommand.Flags().StringVar(&options.tokenizerModel, modelFlagName, "", modelFlagDescription)
	packCommand.Flags().BoolVar(&options.copyToClipboard, copyFlagName, false, copyFlagDescription)
	packCommand.Flags().BoolVar(&options.noIntroduction, noIntroFlagName, false, noIntroFlagDescription)
	packCommand.Flags().BoolVar(&options.noStructure, noStructureFlagName, false, noStructureDescription)
	packCommand.Flags().StringVar(&options.configFilePath, configFlagName, "", configFlagDescription)
	return packCommand, options
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var writeGlobal bool
	var forceOverwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Force:  forceOverwrite,
			})
			if initError != nil {
				return initError
			}
			fmt.Printf("configuration written to %s\n", destinationPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&forceOverwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// runPack merges configuration-file values with flags (flags win when set)
// and executes the aggregation pipeline.
func runPack(command *cobra.Command, arguments []string, options packOptions) error {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configFilePath,
	})
	if configurationError != nil {
		return configurationError
	}

	settings, resolveError := resolveRunSettings(command, arguments, options, applicationConfiguration.Pack)
	if resolveError != nil {
		return resolveError
	}

	runLogger, loggerError := utils.NewApplicationLogger(settings.logFilePath)
	if loggerError != nil {
		return loggerError
	}
	defer runLogger.Sync()

	result, runError := aggregator.Run(settings.aggregation, runLogger)
	if runError != nil {
		return runError
	}

	fmt.Println(report.Render(result.Summary, result.DocumentTokens, result.TokenizerName, result.OutputFilePath))
	report.Log(runLogger, result.Summary, result.DocumentTokens, result.OutputFilePath)

	if settings.copyToClipboard {
		if copyError := clipboard.NewService().Copy(result.Document); copyError != nil {
			runLogger.Warn("failed to copy combined document to clipboard",
				zap.Error(copyError))
		}
	}

	return nil
}

// runSettings is the fully resolved configuration of one pack invocation.
type runSettings struct {
	aggregation     aggregator.Settings
	logFilePath     string
	copyToClipboard bool
}

// resolveRunSettings resolves every pack setting with flag-over-configuration
// precedence: a flag changed on the command line wins, then the configured
// value, then the built-in default. The positional argument overrides the
// configured root.
func resolveRunSettings(command *cobra.Command, arguments []string, options packOptions, packConfiguration config.PackConfiguration) (runSettings, error) {
	rootDirectory := defaultRootPath
	if packConfiguration.Root != "" {
		rootDirectory = packConfiguration.Root
	}
	if len(arguments) == 1 {
		rootDirectory = arguments[0]
	}

	flagSet := command.Flags()
	outputFilePath := stringValue(flagSet.Changed(outputFlagName), options.outputFilePath, packConfiguration.Output, utils.DefaultOutputFileName)
	ignoreFilePath := stringValue(flagSet.Changed(ignoreFileFlagName), options.ignoreFilePath, packConfiguration.IgnoreFile, "")
	logFilePath := stringValue(flagSet.Changed(logFileFlagName), options.logFilePath, packConfiguration.LogFile, utils.DefaultLogFileName)
	tokenizerModel := stringValue(flagSet.Changed(modelFlagName), options.tokenizerModel, packConfiguration.Model, "")

	skipDirectories := defaultSkipDirectories
	if len(packConfiguration.Skip) > 0 {
		skipDirectories = packConfiguration.Skip
	}
	if flagSet.Changed(skipFlagName) {
		skipDirectories = options.skipDirectories
	}
	skipDirectories = utils.DeduplicateStrings(skipDirectories)

	var fileTypeRules []rules.Rule
	if flagSet.Changed(typeFlagName) {
		parsedRules, parseError := rules.ParseAll(options.typeSpecifiers)
		if parseError != nil {
			return runSettings{}, parseError
		}
		fileTypeRules = parsedRules
	} else {
		configuredRules, configuredRulesError := packConfiguration.Rules()
		if configuredRulesError != nil {
			return runSettings{}, configuredRulesError
		}
		fileTypeRules = configuredRules
	}
	if len(fileTypeRules) == 0 {
		return runSettings{}, errors.New(noRulesMessage)
	}

	topCount := metrics.DefaultTopCount
	if packConfiguration.Top != nil {
		topCount = *packConfiguration.Top
	}
	if flagSet.Changed(topFlagName) {
		topCount = options.topCount
	}

	includeIntroduction := boolOrDefault(packConfiguration.Introduction, true)
	if flagSet.Changed(noIntroFlagName) {
		includeIntroduction = !options.noIntroduction
	}
	includeStructure := boolOrDefault(packConfiguration.Structure, true)
	if flagSet.Changed(noStructureFlagName) {
		includeStructure = !options.noStructure
	}
	copyToClipboard := boolOrDefault(packConfiguration.Clipboard, false)
	if flagSet.Changed(copyFlagName) {
		copyToClipboard = options.copyToClipboard
	}

	return runSettings{
		aggregation: aggregator.Settings{
			RootDirectory:       rootDirectory,
			OutputFilePath:      outputFilePath,
			IgnoreFilePath:      ignoreFilePath,
			SkipDirectories:     skipDirectories,
			FileTypeRules:       fileTypeRules,
			TopCount:            topCount,
			TokenizerModel:      tokenizerModel,
			IncludeIntroduction: includeIntroduction,
			IncludeStructure:    includeStructure,
		},
		logFilePath:     logFilePath,
		copyToClipboard: copyToClipboard,
	}, nil
}

// stringValue resolves a string setting: flag when changed, then
// configuration, then the built-in default.
func stringValue(flagChanged bool, flagValue string, configuredValue string, defaultValue string) string {
	if flagChanged {
		return flagValue
	}
	if configuredValue != "" {
		return configuredValue
	}
	return defaultValue
}

func boolOrDefault(value *bool, defaultValue bool) bool {
	if value == nil {
		return defaultValue
	}
	return *value
}
