// Package design orchestrates the whole ingestion pipeline: load a
// design file, segment it into color blocks, compute its metrics and
// color descriptors, assign needles, and optionally render a TrueView
// preview. It is the one place that wires C1 through C5 together.
package design

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lemiex-tech/stitchview/blocks"
	"github.com/lemiex-tech/stitchview/colorrecord"
	"github.com/lemiex-tech/stitchview/formats"
	"github.com/lemiex-tech/stitchview/needle"
	"github.com/lemiex-tech/stitchview/stitch"
	"github.com/lemiex-tech/stitchview/trueview"
)

// DefaultMaxFileSize is the upper size cap for an accepted design file.
const DefaultMaxFileSize = 50 * 1024 * 1024

// Options controls one Process call.
type Options struct {
	// IncludePreview renders and embeds a base64 PNG preview in the
	// record. PreviewMaxSize bounds its longest dimension; zero uses
	// TrueView.MaxSize instead, for a full-size preview. A PreviewMaxSize
	// at or below previewMaxSizeFast also drops TrueView.LineWidth to 1,
	// mirroring the reference pipeline's fast-preview mode.
	IncludePreview bool
	PreviewMaxSize int

	// TrueView carries through to the renderer when IncludePreview is
	// set. Background/LineWidth/Scale/NativeSize/Margin apply; MaxSize
	// is overridden by PreviewMaxSize when that is non-zero.
	TrueView trueview.Options

	// MaxFileSize overrides DefaultMaxFileSize when non-zero.
	MaxFileSize int64
}

// previewMaxSizeFast is the threshold at or below which a preview gets a
// thinner stroke, mirroring the reference pipeline's fast-preview mode
// pairing a smaller canvas with a 1px line.
const previewMaxSizeFast = 400

// DefaultOptions mirrors the reference pipeline's full, cached preview
// mode: an 800px preview bound, not the fast mode's smaller one.
func DefaultOptions() Options {
	return Options{PreviewMaxSize: 800, TrueView: trueview.DefaultOptions()}
}

// Preview is the embedded-image block of a design record.
type Preview struct {
	ImageData string
	Format    string
	Encoding  string
}

// Record is the complete design record: everything the pipeline
// produces for one source file.
type Record struct {
	FileInfo colorrecord.FileInfo
	Preview  *Preview
	Colors   []colorrecord.ColorDescriptor
	Needles  needle.Assignment
	Metadata colorrecord.Metadata
}

// LoadError is a pipeline-level wrapper distinguishing the stage a
// failure happened in from the underlying stitch/trueview error.
type LoadError struct {
	Path  string
	Stage string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("design: %s: %s: %v", e.Path, e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Pipeline holds the resources shared across Process calls: the needle
// cache. It is safe for concurrent use across different files; Cache
// itself is what enforces safety for a shared hash.
type Pipeline struct {
	Cache *needle.Cache
}

// New returns a Pipeline backed by a cache at the default path.
func New() *Pipeline {
	return &Pipeline{Cache: &needle.Cache{}}
}

// Process runs the full pipeline on the file at path.
func (p *Pipeline) Process(path string, opt Options) (*Record, error) {
	maxSize := opt.MaxFileSize
	if maxSize == 0 {
		maxSize = DefaultMaxFileSize
	}

	// formats.IsAllowedExtension is the outer upload layer's filter, not
	// this pipeline's: Process accepts anything a Reader is registered
	// for, and formats.Get below rejects the rest.
	ext := strings.ToLower(filepath.Ext(path))

	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Path: path, Stage: "stat", Err: err}
	}
	if info.Size() > maxSize {
		return nil, &LoadError{Path: path, Stage: "size", Err: fmt.Errorf("%d bytes exceeds cap of %d", info.Size(), maxSize)}
	}

	hash8, err := contentHash8(path)
	if err != nil {
		return nil, &LoadError{Path: path, Stage: "hash", Err: err}
	}

	reader, err := formats.Get(ext)
	if err != nil {
		return nil, &LoadError{Path: path, Stage: "format", Err: err}
	}

	pattern, err := reader.Load(path)
	if err != nil {
		return nil, &LoadError{Path: path, Stage: "load", Err: err}
	}

	bl := blocks.Segment(pattern)
	metrics := colorrecord.ComputeMetrics(pattern)
	colors := colorrecord.BuildColors(bl)
	colorCount := colorrecord.DistinctColorCount(pattern.Threads)

	assignments, err := p.Cache.Resolve(hash8, colors)
	if err != nil {
		return nil, &LoadError{Path: path, Stage: "needle", Err: err}
	}

	fileInfo := colorrecord.BuildFileInfo(filepath.Base(path), hash8, pattern.CountStitches(), metrics, colorCount, colors)

	rec := &Record{
		FileInfo: fileInfo,
		Colors:   colors,
		Needles:  assignments,
		Metadata: colorrecord.Metadata{
			GeneratedBy: "stitchview",
			Bounds:      &pattern.Bounds,
		},
	}

	if opt.IncludePreview {
		preview, err := renderPreview(pattern, opt)
		if err != nil {
			return nil, &LoadError{Path: path, Stage: "preview", Err: err}
		}
		rec.Preview = preview
	}

	return rec, nil
}

func renderPreview(pattern *stitch.Pattern, opt Options) (*Preview, error) {
	tvOpt := opt.TrueView
	if opt.PreviewMaxSize > 0 {
		tvOpt.MaxSize = opt.PreviewMaxSize
		if opt.PreviewMaxSize <= previewMaxSizeFast {
			tvOpt.LineWidth = 1
		}
	}

	img, err := trueview.Render(pattern, tvOpt)
	if err != nil {
		return nil, err
	}
	pngBytes, err := trueview.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	return &Preview{
		ImageData: base64.StdEncoding.EncodeToString(pngBytes),
		Format:    "png",
		Encoding:  "base64",
	}, nil
}

func contentHash8(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	sum := h.Sum(nil)
	return fmt.Sprintf("%x", sum)[:8], nil
}
