// Package imgres classifies image references found in the source document.
// Resolution is per occurrence and side-effect free: the resolver reports a
// classification the caller can always render, and never fails a block.
package imgres

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// State classifies an image reference.
type State int

// Classification results.
const (
	// Remote references carry an http/https scheme. The emitter must
	// substitute a placeholder; nothing is ever fetched.
	Remote State = iota

	// ResolvedLocal references name an existing file on disk.
	ResolvedLocal

	// Unresolved references name a local file that does not exist.
	Unresolved
)

// Resolution is the outcome for one image reference.
type Resolution struct {
	State State
	Path  string // absolute local path when State == ResolvedLocal
}

// Resolver resolves references against the source document's directory.
// Documents move, so nothing is cached: every occurrence is re-resolved
// against the sourceDir current at conversion time.
type Resolver struct {
	log *zap.Logger
}

// New returns a Resolver logging diagnostics to log (nil for none).
func New(log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{log: log}
}

// Resolve classifies locator. Relative locators are resolved against
// sourceDir, the source document's own directory, never the process
// working directory. Remote and unresolved cases emit a diagnostic.
func (r *Resolver) Resolve(locator, sourceDir string) Resolution {
	if isRemote(locator) {
		r.log.Warn("remote image not fetched, placeholder substituted",
			zap.String("src", locator))
		return Resolution{State: Remote}
	}

	path := locator
	if !filepath.IsAbs(path) {
		path = filepath.Join(sourceDir, path)
	}

	if fileutil.FileExists(path) {
		return Resolution{State: ResolvedLocal, Path: path}
	}

	r.log.Warn("image not found, placeholder substituted",
		zap.String("src", locator), zap.String("resolved", path))
	return Resolution{State: Unresolved}
}

// isRemote reports whether the locator carries a network scheme. Scheme-less
// protocol-relative references count as remote too.
func isRemote(locator string) bool {
	return fileutil.IsURL(locator) || strings.HasPrefix(locator, "//")
}
