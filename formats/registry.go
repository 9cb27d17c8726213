// Package formats implements a registry of stitch.Reader implementations
// keyed by file extension, the way the source pipeline's mapper table keys
// board-specific behavior by a numeric id: register once at init time,
// look up by key at runtime, and fail loudly on a double registration.
package formats

import (
	"fmt"
	"strings"

	"github.com/lemiex-tech/stitchview/stitch"
)

// AllowedExtensions lists the embroidery file extensions the outer upload
// layer is expected to accept (spec §6). Not every one of these has a
// Reader registered in this repo — the real binary codecs are an external
// collaborator; see formats/fixture for the one reader this repo ships.
var AllowedExtensions = []string{
	".pes", ".dst", ".jef", ".exp", ".vp3", ".xxx", ".pec", ".hus", ".vip",
}

var registry = map[string]stitch.Reader{}

// Register binds a stitch.Reader to a file extension (including the
// leading dot, e.g. ".pes"). It panics on a duplicate registration, since
// that indicates two decoders claiming the same format at init time.
func Register(ext string, r stitch.Reader) {
	ext = strings.ToLower(ext)
	if existing, ok := registry[ext]; ok {
		panic(fmt.Sprintf("formats: extension %q already registered (%T)", ext, existing))
	}
	registry[ext] = r
}

// Get returns the Reader registered for ext, or a stitch.LoadError with
// Kind UnknownFormat if nothing is registered.
func Get(ext string) (stitch.Reader, error) {
	ext = strings.ToLower(ext)
	r, ok := registry[ext]
	if !ok {
		return nil, &stitch.LoadError{Kind: stitch.UnknownFormat, Path: ext}
	}
	return r, nil
}

// IsAllowedExtension reports whether ext (including leading dot) is one of
// the accepted upload extensions, independent of whether a Reader happens
// to be registered for it yet.
func IsAllowedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, a := range AllowedExtensions {
		if a == ext {
			return true
		}
	}
	return false
}
