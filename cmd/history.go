package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var historyLimit int

// historyCmd lists recorded passes, or the entries of one pass.
var historyCmd = &cobra.Command{
	Use:   "history [pass-id]",
	Short: "Show recorded update passes",
	Long: `Without arguments, lists the most recent passes. With a pass id, prints
every entry recorded for that pass.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of passes to list")
	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Sync()

	if a.store == nil {
		return fmt.Errorf("history database is not available")
	}

	if len(args) == 1 {
		pass, err := a.store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		a.log.Info("Pass",
			zap.String("id", pass.ID),
			zap.Bool("dry_run", pass.DryRun),
			zap.Time("started", pass.Started),
			zap.Int("updated", pass.Updated),
			zap.String("recovery_script", pass.RecoveryScript),
		)
		for _, e := range pass.Entries {
			a.log.Info("Entry",
				zap.String("dependency", e.Coordinate),
				zap.String("source", e.Source),
				zap.String("from", e.FromVersion),
				zap.String("to", e.ToVersion),
				zap.String("state", e.State),
				zap.String("failure", e.Failure),
			)
		}
		return nil
	}

	passes, err := a.store.List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(passes) == 0 {
		a.log.Info("No passes recorded")
		return nil
	}
	for _, p := range passes {
		a.log.Info("Pass",
			zap.String("id", p.ID),
			zap.Bool("dry_run", p.DryRun),
			zap.Time("started", p.Started),
			zap.Int("total", p.Total),
			zap.Int("updated", p.Updated),
			zap.Int("warned", p.Warned),
			zap.Int("query_failed", p.QueryFailed),
		)
	}
	return nil
}
