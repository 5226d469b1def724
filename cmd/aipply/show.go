package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sof1ane/aipply/internal/observability"
	"github.com/Sof1ane/aipply/internal/store"
)

var showProfileFile string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		fileStore := store.NewFileStore(showProfileFile)
		if !fileStore.Exists() {
			return fmt.Errorf("no profile found at %s; run 'aipply import' first", fileStore.Path())
		}
		prof, err := fileStore.Load()
		if err != nil {
			return err
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintProfile(prof, "")
		return nil
	},
}

func init() {
	showCmd.Flags().StringVarP(&showProfileFile, "profile", "p", "", "Path to the profile file (default profile_structure.json)")
	rootCmd.AddCommand(showCmd)
}
