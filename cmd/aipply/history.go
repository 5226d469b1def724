package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Sof1ane/aipply/internal/config"
	"github.com/Sof1ane/aipply/internal/observability"
	"github.com/Sof1ane/aipply/internal/store"
)

var (
	historyConfigFile string
	historyLimit      int
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "List recent import sessions",
	Long: `History lists import sessions recorded in PostgreSQL, or shows the profile
snapshot of one session when a session ID is given. Requires DATABASE_URL.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(historyConfigFile)
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("import history requires DATABASE_URL to be set")
		}

		ctx := cmd.Context()
		db, err := store.ConnectSessions(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		printer := observability.NewPrinter(cmd.OutOrStdout())

		if len(args) == 1 {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid session ID %q: %w", args[0], err)
			}
			prof, err := db.GetSnapshot(ctx, id)
			if err != nil {
				return err
			}
			if prof == nil {
				return fmt.Errorf("no session found with ID %s", id)
			}
			printer.PrintProfile(prof, "")
			return nil
		}

		sessions, err := db.ListSessions(ctx, historyLimit)
		if err != nil {
			return err
		}
		printer.PrintSessions(sessions)
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyConfigFile, "config", "c", "", "Path to JSON config file")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum sessions to list")
	rootCmd.AddCommand(historyCmd)
}
