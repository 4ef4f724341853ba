package main

import (
	"errors"
	"os"

	md2docx "github.com/alnah/go-md2docx"
)

// Exit codes follow Unix conventions: 0=success, 1=general, 2=usage.
const (
	ExitSuccess = 0 // successful conversion
	ExitGeneral = 1 // general/unexpected error
	ExitUsage   = 2 // invalid flags or config
	ExitIO      = 3 // file not found, permission denied
	ExitBrowser = 4 // browser/Chrome errors
)

// exitCodeFor maps an error to an exit code. It relies on errors.Is, so
// callers must wrap with fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, md2docx.ErrBrowserConnect) ||
		errors.Is(err, md2docx.ErrPageCreate) ||
		errors.Is(err, md2docx.ErrPageLoad) ||
		errors.Is(err, md2docx.ErrScreenshot) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrLoadConfig) ||
		errors.Is(err, md2docx.ErrStylePreset) ||
		errors.Is(err, md2docx.ErrEmptyMarkdown) {
		return ExitUsage
	}

	return ExitGeneral
}
