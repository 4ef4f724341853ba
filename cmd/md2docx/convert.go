package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

const filePermissions = 0o644

// run executes the conversion for the given inputs. A single input accepts
// an optional explicit output path; multiple inputs convert in parallel to
// sibling .docx files.
func run(flags *cliFlags, inputs []string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("%w: usage: md2docx <input.md> [output.docx]", ErrNoInput)
	}
	if flags.workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkerCount, flags.workers)
	}

	cfg := &Config{}
	if flags.config != "" {
		loaded, err := loadConfig(flags.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	mergeFlags(flags, cfg)

	log, err := newLogger(flags.verbose, flags.quiet)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	opts := converterOptions(cfg, log)

	// Single input: explicit output path allowed, preview and screenshot
	// apply.
	if len(inputs) == 1 || (len(inputs) == 2 && strings.HasSuffix(inputs[1], ".docx")) {
		output := ""
		if len(inputs) == 2 {
			output = inputs[1]
		}
		return convertOne(inputs[0], output, flags, cfg, opts, log)
	}

	return convertBatch(inputs, cfg, opts, log)
}

func converterOptions(cfg *Config, log *zap.Logger) []md2docx.Option {
	opts := []md2docx.Option{md2docx.WithLogger(log)}
	if cfg.Preset != "" {
		opts = append(opts, md2docx.WithStylePreset(cfg.Preset))
	}
	if cfg.Styles != "" {
		// --styles takes either a JSON file path or an embedded preset
		// name; path separators or an existing file mean a file.
		if fileutil.IsFilePath(cfg.Styles) || fileutil.FileExists(cfg.Styles) {
			opts = append(opts, md2docx.WithStyleFile(cfg.Styles))
		} else {
			opts = append(opts, md2docx.WithStylePreset(cfg.Styles))
		}
	}
	if cfg.Highlight != "" {
		opts = append(opts, md2docx.WithHighlight(cfg.Highlight))
	}
	return opts
}

func convertOne(input, output string, flags *cliFlags, cfg *Config, opts []md2docx.Option, log *zap.Logger) error {
	converter, err := md2docx.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = converter.Close() }()

	in, err := readInput(input)
	if err != nil {
		return err
	}
	if output == "" {
		output = outputPathFor(input)
	}

	ctx := context.Background()

	result, err := converter.Convert(ctx, in)
	if err != nil {
		return fmt.Errorf("converting %s: %w", input, err)
	}
	if err := os.WriteFile(output, result.DOCX, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	log.Info("wrote document", zap.String("output", output))

	if cfg.Preview == "" && flags.screenshot == "" {
		return nil
	}

	previewResult, err := converter.Preview(ctx, in)
	if err != nil {
		return fmt.Errorf("rendering preview: %w", err)
	}
	if cfg.Preview != "" {
		if err := os.WriteFile(cfg.Preview, []byte(previewResult.Page), filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		log.Info("wrote preview", zap.String("output", cfg.Preview))
	}
	if flags.screenshot != "" {
		png, err := converter.RenderPreviewPNG(ctx, previewResult.Page)
		if err != nil {
			return fmt.Errorf("capturing screenshot: %w", err)
		}
		if err := os.WriteFile(flags.screenshot, png, filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		log.Info("wrote screenshot", zap.String("output", flags.screenshot))
	}
	return nil
}

// convertBatch converts every input to a sibling .docx, pooling converters
// across workers. The first error wins; remaining conversions still finish.
func convertBatch(inputs []string, cfg *Config, opts []md2docx.Option, log *zap.Logger) error {
	pool := md2docx.NewConverterPool(md2docx.ResolvePoolSize(cfg.Workers), opts...)
	defer func() { _ = pool.Close() }()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, input := range inputs {
		wg.Add(1)
		go func(input string) {
			defer wg.Done()

			err := func() error {
				converter, err := pool.Acquire()
				if err != nil {
					return err
				}
				defer pool.Release(converter)

				in, err := readInput(input)
				if err != nil {
					return err
				}
				result, err := converter.Convert(context.Background(), in)
				if err != nil {
					return fmt.Errorf("converting %s: %w", input, err)
				}
				output := outputPathFor(input)
				if err := os.WriteFile(output, result.DOCX, filePermissions); err != nil {
					return fmt.Errorf("%w: %v", ErrWriteOutput, err)
				}
				log.Info("wrote document", zap.String("output", output))
				return nil
			}()

			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				log.Error("conversion failed", zap.String("input", input), zap.Error(err))
			}
		}(input)
	}
	wg.Wait()
	return firstErr
}

// readInput loads a markdown file and derives the source directory used to
// resolve relative image paths.
func readInput(path string) (md2docx.Input, error) {
	if err := validateExtension(path); err != nil {
		return md2docx.Input{}, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided input path
	if err != nil {
		return md2docx.Input{}, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	dir := filepath.Dir(path)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return md2docx.Input{Markdown: string(data), SourceDir: dir}, nil
}

func validateExtension(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidExtension, path)
	}
}

// outputPathFor swaps the markdown extension for .docx.
func outputPathFor(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".docx"
}

// newLogger builds the CLI logger: quiet drops everything, verbose shows
// debug, the default shows warnings and errors on stderr.
func newLogger(verbose, quiet bool) (*zap.Logger, error) {
	if quiet {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}
