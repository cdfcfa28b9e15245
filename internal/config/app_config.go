// Package config loads and merges application configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/repodoc/internal/rules"
	"github.com/temirov/repodoc/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Pack PackConfiguration `mapstructure:"pack"`
}

// PackConfiguration defines defaults for the pack command. Pointer-typed
// fields distinguish "unset" from an explicit false or zero.
type PackConfiguration struct {
	Root         string                  `mapstructure:"root"`
	Output       string                  `mapstructure:"output"`
	IgnoreFile   string                  `mapstructure:"ignore_file"`
	LogFile      string                  `mapstructure:"log_file"`
	Skip         []string                `mapstructure:"skip"`
	Types        []FileTypeConfiguration `mapstructure:"types"`
	Top          *int                    `mapstructure:"top"`
	Model        string                  `mapstructure:"model"`
	Introduction *bool                   `mapstructure:"introduction"`
	Structure    *bool                   `mapstructure:"structure"`
	Clipboard    *bool                   `mapstructure:"clipboard"`
}

// FileTypeConfiguration is one file-type capture rule as written in the
// configuration file.
type FileTypeConfiguration struct {
	Match     string `mapstructure:"match"`
	MatchType string `mapstructure:"match_type"`
}

// Rules converts the configured file types into evaluated rules.
func (configuration PackConfiguration) Rules() ([]rules.Rule, error) {
	parsedRules := make([]rules.Rule, 0, len(configuration.Types))
	for _, fileType := range configuration.Types {
		parsedRule, ruleError := rules.New(fileType.Match, fileType.MatchType)
		if ruleError != nil {
			return nil, fmt.Errorf("configured file type %q: %w", fileType.Match, ruleError)
		}
		parsedRules = append(parsedRules, parsedRule)
	}
	return parsedRules, nil
}

// LoadApplicationConfiguration loads configuration from the global file under
// the user home directory and the local file in the working directory, with
// local values overriding global ones.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfiguration, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	if localPath != "" {
		localConfiguration, loadError := loadConfigurationFromPath(localPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(localConfiguration)
	}

	merged.Pack.Skip = utils.DeduplicateStrings(merged.Pack.Skip)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory string, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(configurationPath string) (ApplicationConfiguration, error) {
	if configurationPath == "" {
		return ApplicationConfiguration{}, nil
	}
	pathInformation, statError := os.Stat(configurationPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", configurationPath, statError)
	}
	if pathInformation.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", configurationPath)
	}

	reader := viper.New()
	reader.SetConfigFile(configurationPath)
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", configurationPath, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", configurationPath, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	result.Pack = result.Pack.merge(override.Pack)
	return result
}

func (configuration PackConfiguration) merge(override PackConfiguration) PackConfiguration {
	result := configuration
	if override.Root != "" {
		result.Root = override.Root
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.IgnoreFile != "" {
		result.IgnoreFile = override.IgnoreFile
	}
	if override.LogFile != "" {
		result.LogFile = override.LogFile
	}
	if len(override.Skip) > 0 {
		result.Skip = append([]string{}, utils.DeduplicateStrings(override.Skip)...)
	}
	if len(override.Types) > 0 {
		result.Types = append([]FileTypeConfiguration{}, override.Types...)
	}
	if override.Top != nil {
		result.Top = cloneInt(override.Top)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	if override.Introduction != nil {
		result.Introduction = cloneBool(override.Introduction)
	}
	if override.Structure != nil {
		result.Structure = cloneBool(override.Structure)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
