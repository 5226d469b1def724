// Package main provides the entry point for the aipply CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aipply",
	Short: "AI resume generator profile tools",
	Long:  "aipply builds and maintains the structured profile the resume generator works from, importing it from LinkedIn or collecting it interactively.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
