package cmd

import (
	"fmt"
	"os"

	"dependency-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "dependency-manager",
	Short: "Gradle dependency reconciliation tool",
	Long: `Dependency Manager keeps the Maven dependencies of a Gradle project current.
It rewrites versions in build.gradle.kts, replaces vendored jars with verified
downloads and writes a recovery script for every change it makes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding at debug level gives ISO8601 timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
