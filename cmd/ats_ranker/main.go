// Package main provides the ats_ranker command: an HTTP API server plus
// offline scoring, coaching and ranking commands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debugLogs  bool

	renderPages bool
)

var rootCmd = &cobra.Command{
	Use:   "ats_ranker",
	Short: "ATS Ranker: TF-IDF scoring and coaching for CVs against job descriptions",
	Long: "ATS Ranker scores how well a CV matches a job description with a deterministic " +
		"TF-IDF + cosine model, lists matching and missing terms, and produces coaching advice. " +
		"It runs as an HTTP API (serve) or on local files.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&renderPages, "browser", false, "Render job posting URLs in headless Chrome when the page has little text")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
