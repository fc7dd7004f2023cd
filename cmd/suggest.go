package cmd

import (
	"fmt"

	"dependency-manager/core/config"
	"dependency-manager/core/logger"

	"github.com/spf13/cobra"
)

// suggestCmd prints modernization suggestions without touching the project.
var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Print modernization suggestions for the tracked dependencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		tracked, err := cfg.Project.TrackedCoordinates()
		if err != nil {
			return err
		}
		printSuggestions(l, tracked)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(suggestCmd)
}
