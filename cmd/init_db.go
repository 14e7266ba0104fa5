package main

import (
	"fmt"
	"sort"

	"vibe-todo/vibetodo/config"
	"vibe-todo/vibetodo/database"
	"vibe-todo/vibetodo/services"

	"github.com/spf13/cobra"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the schema and seed the system lists",
	Long:  "Creates any missing tables and makes sure every system list exists. Prints one line per list and fails if any could not be ensured.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		closer, err := setupLogging(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		db, err := database.Setup(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		report, err := services.Bootstrap(cmd.Context(), db, services.ListServiceInstance)
		if err != nil {
			return fmt.Errorf("bootstrap failed: %w", err)
		}

		outcomes := report.Outcomes()
		names := make([]string, 0, len(outcomes))
		for name := range outcomes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, outcomes[name])
		}

		if failed := report.Failed(); len(failed) > 0 {
			return fmt.Errorf("%d system list(s) could not be ensured", len(failed))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initDBCmd)
}
