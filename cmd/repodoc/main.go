package main

import (
	"fmt"

	"github.com/temirov/repodoc/internal/cli"
	"github.com/temirov/repodoc/internal/utils"
)

// main is the entry point for the repodoc command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger("")
	if loggerInitializationError != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(); applicationExecutionError != nil {
		loggerInstance.Fatal("application execution failed: " + applicationExecutionError.Error())
	}
}
