package md2docx

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrDocxWrite     = errors.New("docx generation failed")
	ErrPreviewRender = errors.New("preview rendering failed")

	// Browser errors from the optional screenshot path.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrScreenshot     = errors.New("screenshot capture failed")

	// Style configuration errors.
	ErrStylePreset = errors.New("unknown style preset")
)
