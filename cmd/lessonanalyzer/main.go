package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lessonanalyzer",
	Short: "Analyze educational content for interactive learning design",
	Long: `lessonanalyzer turns educational content into a structured analysis:
content type, key topics, learning objectives, suggested interactions and
more, styled after a chosen design vibe.

Configuration is read from the YAML file named by LESSON_ANALYZER_CONFIG and
from environment variables (ANTHROPIC_API_KEY, ANTHROPIC_MODEL, HTTP_ADDR, ...).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
