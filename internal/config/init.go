package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/repodoc/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	defaultConfigurationTemplate = `pack:
  root: .
  output: combined_docs.txt
  log_file: repodoc.log
  skip:
    - venv
    - .git
    - notes
    - archive
  types:
    - match: .py
      match_type: endswith
    - match: .md
      match_type: endswith
    - match: .json
      match_type: endswith
    - match: Dockerfile
      match_type: equals
  top: 5
  model: cl100k_base
  introduction: true
  structure: true
  clipboard: false
`
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// InitializeConfiguration writes the default configuration to the requested
// target and returns the destination path.
func InitializeConfiguration(options InitOptions) (string, error) {
	target := options.Target
	if target == "" {
		target = InitTargetLocal
	}
	var destinationPath string
	switch target {
	case InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			currentDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return "", fmt.Errorf("determine working directory for configuration: %w", workingDirectoryError)
			}
			workingDirectory = currentDirectory
		}
		destinationPath = filepath.Join(workingDirectory, utils.ConfigFileName)
	case InitTargetGlobal:
		homeDirectory, homeError := os.UserHomeDir()
		if homeError != nil {
			return "", fmt.Errorf("resolve home directory for configuration: %w", homeError)
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if makeDirectoryError := os.MkdirAll(configurationDirectory, 0o755); makeDirectoryError != nil {
			return "", fmt.Errorf("create configuration directory %s: %w", configurationDirectory, makeDirectoryError)
		}
		destinationPath = filepath.Join(configurationDirectory, utils.ConfigFileName)
	default:
		return "", fmt.Errorf("unsupported init target %q", target)
	}

	if _, statError := os.Stat(destinationPath); statError == nil {
		if !options.Force {
			return "", fmt.Errorf("configuration file already exists at %s", destinationPath)
		}
	} else if !os.IsNotExist(statError) {
		return "", fmt.Errorf("inspect configuration path %s: %w", destinationPath, statError)
	}

	if writeError := os.WriteFile(destinationPath, []byte(defaultConfigurationTemplate), 0o600); writeError != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, writeError)
	}

	return destinationPath, nil
}
