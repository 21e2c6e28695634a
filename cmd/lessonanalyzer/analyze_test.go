package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"LessonAnalyzer/internal/infrastructure/content"
)

func TestReadContent(t *testing.T) {
	analyzeFile = ""
	got, err := readContent(strings.NewReader("Photosynthesis basics"))
	if err != nil || got != "Photosynthesis basics" {
		t.Fatalf("stdin: got %q, %v", got, err)
	}

	_, err = readContent(bytes.NewReader(make([]byte, content.MaxFileBytes+1)))
	if !errors.Is(err, content.ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "lesson.md")
	if err := os.WriteFile(path, []byte("# Cells"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	analyzeFile = path
	defer func() { analyzeFile = "" }()

	got, err = readContent(strings.NewReader("ignored"))
	if err != nil || got != "# Cells" {
		t.Fatalf("file: got %q, %v", got, err)
	}
}

func TestAnalyzeWithoutCredentialFails(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("LESSON_ANALYZER_CONFIG", "")

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader("Cells and organelles"))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"analyze", "--vibe", "creative"})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected configuration error")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no result output, got %q", out.String())
	}
}
