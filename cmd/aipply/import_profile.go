package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sof1ane/aipply/internal/config"
	"github.com/Sof1ane/aipply/internal/importer"
	"github.com/Sof1ane/aipply/internal/linkedin"
	"github.com/Sof1ane/aipply/internal/llm"
	"github.com/Sof1ane/aipply/internal/manual"
	"github.com/Sof1ane/aipply/internal/observability"
	"github.com/Sof1ane/aipply/internal/prefill"
	"github.com/Sof1ane/aipply/internal/profile"
	"github.com/Sof1ane/aipply/internal/store"
	"github.com/Sof1ane/aipply/internal/summary"
)

var (
	importConfigFile string
	importProfile    string
	importVerbose    bool
	importNoBrowser  bool
	importUseBrowser bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import your profile from LinkedIn or enter it manually",
	Long: `Import builds the local profile file through one of two paths:

  1. LinkedIn API import — OAuth browser flow, requires LINKEDIN_CLIENT_ID
     and LINKEDIN_CLIENT_SECRET
  2. Manual entry — a guided prompt wizard, always available

A failed API import falls back to manual entry; your answers from a previous
import are offered as defaults so nothing is lost on a re-import.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importConfigFile, "config", "c", "", "Path to JSON config file")
	importCmd.Flags().StringVarP(&importProfile, "profile", "p", "", "Path to the profile file (default profile_structure.json)")
	importCmd.Flags().BoolVarP(&importVerbose, "verbose", "v", false, "Enable verbose logging")
	importCmd.Flags().BoolVar(&importNoBrowser, "no-browser", false, "Print the authorization URL instead of opening a browser")
	importCmd.Flags().BoolVar(&importUseBrowser, "use-browser", false, "Use a headless browser for profile URL prefill")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(importConfigFile)
	if err != nil {
		return err
	}
	if importProfile != "" {
		cfg.ProfileFile = importProfile
	}
	if importVerbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)

	// Ctrl-C anywhere in the flow cancels the session cleanly.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	fileStore := store.NewFileStore(cfg.ProfileFile)
	existing := loadExisting(fileStore, out)
	if existing != nil {
		fmt.Fprintf(out, "Found an existing profile for %s at %s.\n", existing.FullName, fileStore.Path())
		keep, err := askMenu(in, out, "What would you like to do?", []string{
			"Keep the existing profile",
			"Re-import (existing answers become defaults)",
		})
		if err != nil {
			return err
		}
		if keep == 1 {
			printer.PrintProfile(existing, "")
			return nil
		}
	}

	choice, err := askMenu(in, out, "How would you like to import your profile?", []string{
		"Import from LinkedIn (OAuth)",
		"Enter it manually",
		"Cancel",
	})
	if err != nil {
		return err
	}

	selection := importer.Select(menuToChoice(choice), cfg.HasLinkedInCredentials())
	if selection.Warning != "" {
		fmt.Fprintf(out, "Note: %s\n", selection.Warning)
	}

	var result *importer.Result
	switch selection.Source {
	case importer.SourceAbort:
		fmt.Fprintln(out, "Import cancelled. Nothing was changed.")
		return nil
	case importer.SourceAPI:
		result, err = runAPIImport(ctx, cfg, in, out, printer, existing)
	default:
		result, err = runManualImport(ctx, cfg, in, out, existing)
	}
	if err != nil {
		if importer.Kind(err) == importer.Aborted {
			fmt.Fprintln(out, "Import cancelled. Nothing was changed.")
			return nil
		}
		return err
	}

	merged := profile.Merge(existing, result.Profile)
	if err := merged.Validate(); err != nil {
		// Provider responses can leave required fields empty (e.g. the email
		// endpoint not granted). That is not a failed import: finish the
		// record interactively instead of exiting.
		fmt.Fprintf(out, "The imported profile is missing required fields (%v).\n", err)
		merged, err = completeProfile(in, out, merged)
		if err != nil {
			if importer.Kind(err) == importer.Aborted {
				fmt.Fprintln(out, "Import cancelled. Nothing was changed.")
				return nil
			}
			return err
		}
	}
	if err := fileStore.Save(merged); err != nil {
		return err
	}
	fmt.Fprintf(out, "Profile saved to %s\n", fileStore.Path())
	printer.PrintProfile(merged, result.Source)

	printer.PrintSummary(generateSummary(ctx, cfg, merged))

	recordSession(ctx, cfg, string(result.Source), merged)
	return nil
}

// runAPIImport drives the OAuth path and, on any recoverable failure, offers
// the manual wizard instead of terminating the session.
func runAPIImport(ctx context.Context, cfg *config.Config, in *bufio.Scanner, out io.Writer, printer *observability.Printer, existing *profile.Profile) (*importer.Result, error) {
	clientCfg := linkedin.Config{
		ClientID:     cfg.LinkedInClientID,
		ClientSecret: cfg.LinkedInClientSecret,
		RedirectURL:  cfg.RedirectURL,
		AuthTimeout:  cfg.ParsedAuthTimeout(linkedin.DefaultAuthTimeout),
		Verbose:      cfg.Verbose,
	}
	if importNoBrowser {
		clientCfg.OpenBrowser = func(url string) error {
			fmt.Fprintf(out, "Open this URL in your browser to authorize:\n%s\n", url)
			return nil
		}
	}

	client, err := linkedin.NewClient(clientCfg)
	if err == nil {
		fmt.Fprintln(out, "Opening your browser for LinkedIn authorization...")
		var prof *profile.Profile
		prof, err = client.Import(ctx)
		if err == nil {
			return &importer.Result{Source: importer.SourceAPI, Profile: prof}, nil
		}
	}

	printer.PrintImportFailure(err)
	if !importer.Fallback(err) {
		return nil, err
	}

	yes, askErr := askYesNo(in, out, "Switch to manual entry instead?")
	if askErr != nil {
		return nil, askErr
	}
	if !yes {
		return nil, err
	}
	return runManualImport(ctx, cfg, in, out, existing)
}

// runManualImport optionally prefills scalar defaults from a public profile
// URL, then runs the prompt wizard.
func runManualImport(ctx context.Context, cfg *config.Config, in *bufio.Scanner, out io.Writer, existing *profile.Profile) (*importer.Result, error) {
	defaults := existing
	if prefilled := tryPrefill(ctx, cfg, in, out); prefilled != nil {
		defaults = profile.Merge(existing, prefilled)
	}

	prof, err := manual.NewWizardFromScanner(in, out, defaults).Run()
	if err != nil {
		return nil, err
	}
	return &importer.Result{Source: importer.SourceManual, Profile: prof}, nil
}

// completeProfile re-runs the wizard with the partial import as defaults so
// the user only has to supply what the provider left out.
func completeProfile(in *bufio.Scanner, out io.Writer, partial *profile.Profile) (*profile.Profile, error) {
	fmt.Fprintln(out, "Let's fill them in; imported values are offered as defaults.")
	return manual.NewWizardFromScanner(in, out, partial).Run()
}

// tryPrefill fetches Open Graph metadata from a public LinkedIn profile URL
// to seed the wizard defaults. Any failure just means no prefill.
func tryPrefill(ctx context.Context, cfg *config.Config, in *bufio.Scanner, out io.Writer) *profile.Profile {
	fmt.Fprint(out, "LinkedIn profile URL to prefill from (leave empty to skip): ")
	if !in.Scan() {
		return nil
	}
	rawURL := strings.TrimSpace(in.Text())
	if rawURL == "" {
		return nil
	}
	if err := prefill.ValidateProfileURL(rawURL); err != nil {
		fmt.Fprintf(out, "Skipping prefill: %v\n", err)
		return nil
	}

	html, err := prefill.Fetch(ctx, rawURL, importUseBrowser, cfg.Verbose)
	if err != nil {
		fmt.Fprintf(out, "Skipping prefill: %v\n", err)
		return nil
	}
	prof, err := prefill.Extract(html)
	if err != nil {
		fmt.Fprintf(out, "Skipping prefill: %v\n", err)
		return nil
	}
	fmt.Fprintln(out, "Prefilled defaults from the public profile page.")
	return prof
}

// generateSummary returns the post-import summary, using Gemini when an API
// key is configured and the deterministic template otherwise.
func generateSummary(ctx context.Context, cfg *config.Config, prof *profile.Profile) string {
	var client llm.Client
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, llm.DefaultModel)
		if err == nil {
			defer func() { _ = gemini.Close() }()
			client = gemini
		} else if cfg.Verbose {
			log.Printf("[IMPORT] Gemini client unavailable: %v", err)
		}
	}
	return summary.Generate(ctx, client, prof)
}

// recordSession appends the import to the PostgreSQL history when a database
// is configured. History is best-effort: failures are logged, never fatal.
func recordSession(ctx context.Context, cfg *config.Config, source string, prof *profile.Profile) {
	if cfg.DatabaseURL == "" {
		return
	}
	db, err := store.ConnectSessions(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Printf("[IMPORT] session history unavailable: %v", err)
		return
	}
	defer db.Close()
	if _, err := db.RecordSession(ctx, source, prof); err != nil {
		log.Printf("[IMPORT] failed to record session: %v", err)
	}
}

func loadExisting(fileStore *store.FileStore, out io.Writer) *profile.Profile {
	if !fileStore.Exists() {
		return nil
	}
	prof, err := fileStore.Load()
	if err != nil {
		fmt.Fprintf(out, "Warning: existing profile could not be read (%v); starting fresh.\n", err)
		return nil
	}
	return prof
}

func menuToChoice(n int) importer.Choice {
	switch n {
	case 1:
		return importer.ChoiceAPI
	case 2:
		return importer.ChoiceManual
	default:
		return importer.ChoiceAbort
	}
}

// askMenu prints numbered options and re-prompts until a valid number is
// entered. Input exhaustion is an abort.
func askMenu(in *bufio.Scanner, out io.Writer, prompt string, options []string) (int, error) {
	fmt.Fprintln(out, prompt)
	for i, opt := range options {
		fmt.Fprintf(out, "  %d. %s\n", i+1, opt)
	}
	for {
		fmt.Fprintf(out, "Choice [1-%d]: ", len(options))
		if !in.Scan() {
			return 0, &importer.ImportError{
				Kind:    importer.Aborted,
				Stage:   "selection",
				Message: "input stream closed before a choice was made",
			}
		}
		n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err == nil && n >= 1 && n <= len(options) {
			return n, nil
		}
		fmt.Fprintln(out, "Please enter one of the listed numbers.")
	}
}

func askYesNo(in *bufio.Scanner, out io.Writer, prompt string) (bool, error) {
	for {
		fmt.Fprintf(out, "%s [y/n]: ", prompt)
		if !in.Scan() {
			return false, &importer.ImportError{
				Kind:    importer.Aborted,
				Stage:   "selection",
				Message: "input stream closed before a choice was made",
			}
		}
		switch strings.ToLower(strings.TrimSpace(in.Text())) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(out, "Please answer y or n.")
	}
}
