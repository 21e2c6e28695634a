package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"LessonAnalyzer/internal/app"
	"LessonAnalyzer/internal/config"
	"LessonAnalyzer/internal/domain"
	"LessonAnalyzer/internal/infrastructure/content"
	"LessonAnalyzer/internal/logging"
)

var (
	analyzeVibe string
	analyzeFile string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one document and print the JSON result",
	Long: `Analyze reads content from --file (.txt, .md, .markdown, .html, .htm)
or from stdin, runs it through the analysis pipeline once and prints the
result as JSON.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeVibe, "vibe", "professional", "Design vibe to align the analysis with")
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Content file (default: stdin)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readContent(cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg := config.Load()
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level)

	application := app.New(cfg, logger)
	result, err := application.Analyzer().Analyze(cmd.Context(), domain.RawInput{Content: text, Vibe: analyzeVibe})
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func readContent(stdin io.Reader) (string, error) {
	if analyzeFile != "" {
		return content.ReadFile(analyzeFile)
	}

	raw, err := io.ReadAll(io.LimitReader(stdin, content.MaxFileBytes+1))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if len(raw) > content.MaxFileBytes {
		return "", fmt.Errorf("stdin: %w", content.ErrFileTooLarge)
	}
	return string(raw), nil
}
