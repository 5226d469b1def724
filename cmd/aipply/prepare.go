package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/Sof1ane/aipply/internal/config"
	"github.com/Sof1ane/aipply/internal/llm"
	"github.com/Sof1ane/aipply/internal/observability"
	"github.com/Sof1ane/aipply/internal/prepare"
	"github.com/Sof1ane/aipply/internal/profile"
	"github.com/Sof1ane/aipply/internal/store"
)

var (
	prepareConfigFile  string
	prepareProfileFile string
	prepareVerbose     bool
)

var prepareCmd = &cobra.Command{
	Use:   "prepare <resume-file>",
	Short: "Bootstrap the profile from an existing resume (PDF or text)",
	Long: `Prepare extracts text from an existing resume and structures it into the
profile schema. With GEMINI_API_KEY set the structuring is AI-assisted;
otherwise a keyword heuristic builds a skeleton to complete by hand.

The result is merged over any existing profile, never overwriting filled
fields with blanks. Review the result with 'aipply show' and complete it with
'aipply import'.`,
	Args: cobra.ExactArgs(1),
	RunE: runPrepare,
}

func init() {
	prepareCmd.Flags().StringVarP(&prepareConfigFile, "config", "c", "", "Path to JSON config file")
	prepareCmd.Flags().StringVarP(&prepareProfileFile, "profile", "p", "", "Path to the profile file (default profile_structure.json)")
	prepareCmd.Flags().BoolVarP(&prepareVerbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.AddCommand(prepareCmd)
}

func runPrepare(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(prepareConfigFile)
	if err != nil {
		return err
	}
	if prepareProfileFile != "" {
		cfg.ProfileFile = prepareProfileFile
	}

	rawText, err := prepare.ExtractText(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var client llm.Client
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, llm.DefaultModel)
		if err == nil {
			defer func() { _ = gemini.Close() }()
			client = gemini
		} else if prepareVerbose {
			log.Printf("[PREPARE] Gemini client unavailable, using heuristic: %v", err)
		}
	}

	prof, err := prepare.Structure(ctx, client, rawText)
	if err != nil {
		return err
	}

	fileStore := store.NewFileStore(cfg.ProfileFile)
	existing := loadExisting(fileStore, cmd.OutOrStdout())
	merged := profile.Merge(existing, prof)

	out := cmd.OutOrStdout()
	if !merged.Usable() {
		// A skeleton often misses the name or email; show it instead of
		// failing so the user knows what to complete.
		fmt.Fprintln(out, "Extracted profile is missing a name or email and was not saved.")
		fmt.Fprintln(out, "Complete it with 'aipply import'. Extracted so far:")
		observability.NewPrinter(out).PrintProfile(merged, "")
		return nil
	}
	if err := fileStore.Save(merged); err != nil {
		fmt.Fprintf(out, "Extracted profile is incomplete and was not saved: %v\n", err)
		fmt.Fprintln(out, "Complete it with 'aipply import'. Extracted so far:")
		observability.NewPrinter(out).PrintProfile(merged, "")
		return nil
	}

	fmt.Fprintf(out, "Profile bootstrapped from %s and saved to %s\n", args[0], fileStore.Path())
	observability.NewPrinter(out).PrintProfile(merged, "")
	fmt.Fprintln(out, "Review the fields above and fill gaps with 'aipply import'.")
	return nil
}
