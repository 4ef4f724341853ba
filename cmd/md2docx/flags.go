package main

import (
	flag "github.com/spf13/pflag"
)

// cliFlags holds all command-line options.
type cliFlags struct {
	config      string
	styles      string
	preset      string
	preview     string
	screenshot  string
	highlight   string
	workers     int
	verbose     bool
	quiet       bool
	showVersion bool
}

// parseFlags parses args (including the program name) and returns the flags
// and positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	flags := &cliFlags{}

	fs := flag.NewFlagSet("md2docx", flag.ContinueOnError)
	fs.StringVarP(&flags.config, "config", "c", "", "YAML config file")
	fs.StringVar(&flags.styles, "styles", "", "JSON style sheet file or embedded preset name")
	fs.StringVar(&flags.preset, "preset", "", "embedded style preset name")
	fs.StringVar(&flags.preview, "preview", "", "also write the HTML preview to this path")
	fs.StringVar(&flags.screenshot, "screenshot", "", "also write a PNG screenshot of the preview to this path")
	fs.StringVar(&flags.highlight, "highlight", "", "chroma style for code-block highlighting")
	fs.IntVarP(&flags.workers, "workers", "w", 0, "parallel conversions for multiple inputs (0 = auto)")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose diagnostics")
	fs.BoolVarP(&flags.quiet, "quiet", "q", false, "suppress diagnostics")
	fs.BoolVar(&flags.showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}
	return flags, fs.Args(), nil
}
