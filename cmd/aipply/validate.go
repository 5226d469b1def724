package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sof1ane/aipply/internal/store"
)

var validateProfileFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the stored profile against the schema and field rules",
	Long: `Validate loads the profile file, migrating legacy layouts if needed, and
checks it against the profile schema and the field-level rules (required
fields, email format, date ordering). Exits non-zero on any violation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fileStore := store.NewFileStore(validateProfileFile)
		if !fileStore.Exists() {
			return fmt.Errorf("no profile found at %s; run 'aipply import' first", fileStore.Path())
		}

		prof, err := fileStore.Load()
		if err != nil {
			return err
		}
		if err := prof.Validate(); err != nil {
			return fmt.Errorf("profile is invalid: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Profile at %s is valid.\n", fileStore.Path())
		fmt.Fprintf(out, "  %d experience entries, %d education entries, %d skills\n",
			len(prof.Experience), len(prof.Education), len(prof.Skills))
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateProfileFile, "profile", "p", "", "Path to the profile file (default profile_structure.json)")
	rootCmd.AddCommand(validateCmd)
}
