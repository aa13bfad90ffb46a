// Package cli implements the bridgectl commands.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"bridge/internal/language"
	"bridge/internal/preference"
	"bridge/internal/service"
)

// Deps are the services the commands run against.
type Deps struct {
	Workspaces service.WorkspaceService
	Settings   *preference.Settings
	Catalog    *language.Catalog
}

var deps *Deps

var rootCmd = &cobra.Command{
	Use:   "bridgectl",
	Short: "Translate, summarize and ask about official documents",
	Long: `bridgectl runs Bridge from a terminal: translate and summarize a PDF or
image into a target language, chat about it, and manage the default language.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Configure sets the services used by every command.
func Configure(d *Deps) {
	deps = d
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func requireDeps() (*Deps, error) {
	if deps == nil || deps.Workspaces == nil || deps.Settings == nil || deps.Catalog == nil {
		return nil, errors.New("bridgectl is not configured")
	}
	return deps, nil
}
