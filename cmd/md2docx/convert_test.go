package main

// Notes:
// - run: we test input validation paths and end-to-end conversion to a real
//   .docx file. Preview/screenshot paths need a browser and are not exercised
//   here.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeMarkdownFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing markdown: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestValidateExtension - Input file extension checks
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"md extension", "doc.md", false},
		{"markdown extension", "doc.markdown", false},
		{"uppercase extension", "DOC.MD", false},
		{"txt extension", "doc.txt", true},
		{"docx extension", "doc.docx", true},
		{"no extension", "doc", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateExtension(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidExtension) {
					t.Errorf("error = %v, want ErrInvalidExtension", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestOutputPathFor - Default output path derivation
// ---------------------------------------------------------------------------

func TestOutputPathFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"md file", "doc.md", "doc.docx"},
		{"markdown file", "notes.markdown", "notes.docx"},
		{"nested path", filepath.Join("a", "b", "doc.md"), filepath.Join("a", "b", "doc.docx")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := outputPathFor(tt.input)
			if got != tt.want {
				t.Errorf("outputPathFor(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestReadInput - Markdown loading and source directory derivation
// ---------------------------------------------------------------------------

func TestReadInput(t *testing.T) {
	t.Parallel()

	t.Run("reads content and derives source dir", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeMarkdownFile(t, dir, "doc.md", "# Hello\n")

		in, err := readInput(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Markdown != "# Hello\n" {
			t.Errorf("Markdown = %q, want %q", in.Markdown, "# Hello\n")
		}
		if in.SourceDir != dir {
			t.Errorf("SourceDir = %q, want %q", in.SourceDir, dir)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := readInput(filepath.Join(t.TempDir(), "nope.md"))
		if !errors.Is(err, ErrReadMarkdown) {
			t.Errorf("error = %v, want ErrReadMarkdown", err)
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		t.Parallel()

		_, err := readInput("doc.txt")
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want ErrInvalidExtension", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRun - End-to-end CLI conversion
// ---------------------------------------------------------------------------

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("no input", func(t *testing.T) {
		t.Parallel()

		err := run(&cliFlags{quiet: true}, nil)
		if !errors.Is(err, ErrNoInput) {
			t.Errorf("error = %v, want ErrNoInput", err)
		}
	})

	t.Run("negative workers", func(t *testing.T) {
		t.Parallel()

		err := run(&cliFlags{quiet: true, workers: -1}, []string{"doc.md"})
		if !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("error = %v, want ErrInvalidWorkerCount", err)
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Parallel()

		flags := &cliFlags{quiet: true, config: filepath.Join(t.TempDir(), "nope.yaml")}
		err := run(flags, []string{"doc.md"})
		if !errors.Is(err, ErrLoadConfig) {
			t.Errorf("error = %v, want ErrLoadConfig", err)
		}
	})

	t.Run("converts single file to default output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeMarkdownFile(t, dir, "doc.md", "# Title\n\nBody text.\n")

		if err := run(&cliFlags{quiet: true}, []string{input}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := filepath.Join(dir, "doc.docx")
		data, err := os.ReadFile(output)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		// Zip local file header magic.
		if len(data) < 4 || data[0] != 'P' || data[1] != 'K' {
			t.Error("output is not a zip archive")
		}
	})

	t.Run("converts to explicit output path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeMarkdownFile(t, dir, "doc.md", "some text\n")
		output := filepath.Join(dir, "renamed.docx")

		if err := run(&cliFlags{quiet: true}, []string{input, output}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(output); err != nil {
			t.Errorf("expected output at %s: %v", output, err)
		}
	})

	t.Run("converts multiple files in batch", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := writeMarkdownFile(t, dir, "a.md", "# A\n")
		b := writeMarkdownFile(t, dir, "b.md", "# B\n")
		c := writeMarkdownFile(t, dir, "c.md", "# C\n")

		if err := run(&cliFlags{quiet: true, workers: 2}, []string{a, b, c}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, name := range []string{"a.docx", "b.docx", "c.docx"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
				t.Errorf("expected output %s: %v", name, err)
			}
		}
	})

	t.Run("batch reports first error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := writeMarkdownFile(t, dir, "a.md", "# A\n")
		missing := filepath.Join(dir, "missing.md")
		c := writeMarkdownFile(t, dir, "c.md", "# C\n")

		err := run(&cliFlags{quiet: true}, []string{a, missing, c})
		if err == nil {
			t.Fatal("expected error for missing input")
		}
		// Good inputs still convert.
		if _, statErr := os.Stat(filepath.Join(dir, "a.docx")); statErr != nil {
			t.Errorf("expected a.docx despite batch error: %v", statErr)
		}
	})

	t.Run("config file drives preset", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeMarkdownFile(t, dir, "doc.md", "# Title\n")
		configPath := filepath.Join(dir, "md2docx.yaml")
		if err := os.WriteFile(configPath, []byte("preset: compact\n"), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		if err := run(&cliFlags{quiet: true, config: configPath}, []string{input}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "doc.docx")); err != nil {
			t.Errorf("expected output: %v", err)
		}
	})

	t.Run("styles flag accepts a file path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeMarkdownFile(t, dir, "doc.md", "# Title\n")
		stylesPath := filepath.Join(dir, "sheet.json")
		if err := os.WriteFile(stylesPath, []byte(`{"H1": {"font_size": 40}}`), 0o644); err != nil {
			t.Fatalf("writing style sheet: %v", err)
		}

		if err := run(&cliFlags{quiet: true, styles: stylesPath}, []string{input}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "doc.docx")); err != nil {
			t.Errorf("expected output: %v", err)
		}
	})

	t.Run("styles flag accepts a preset name", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeMarkdownFile(t, dir, "doc.md", "# Title\n")

		if err := run(&cliFlags{quiet: true, styles: "compact"}, []string{input}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("styles flag with unknown bare name is a preset error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeMarkdownFile(t, dir, "doc.md", "# Title\n")

		err := run(&cliFlags{quiet: true, styles: "no-such-name"}, []string{input})
		if err == nil {
			t.Fatal("expected error for unknown style name")
		}
		if got := exitCodeFor(err); got != ExitUsage {
			t.Errorf("exit code = %d, want %d", got, ExitUsage)
		}
	})

	t.Run("unknown preset fails", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeMarkdownFile(t, dir, "doc.md", "# Title\n")

		err := run(&cliFlags{quiet: true, preset: "no-such-preset"}, []string{input})
		if err == nil {
			t.Fatal("expected error for unknown preset")
		}
		if got := exitCodeFor(err); got != ExitUsage {
			t.Errorf("exit code = %d, want %d", got, ExitUsage)
		}
	})
}
