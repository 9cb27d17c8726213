// Command stitchview converts an embroidery design file into a JSON
// design record and, optionally, a TrueView-style preview PNG.
package main

import (
	"encoding/base64"
	"flag"
	"log"
	"os"

	"github.com/lemiex-tech/stitchview/design"

	_ "github.com/lemiex-tech/stitchview/formats/fixture"
)

var (
	inputFile   = flag.String("input", "", "Path to the design file to process.")
	jsonOut     = flag.String("json_out", "", "Path to write the design record JSON. Defaults to stdout.")
	pngOut      = flag.String("png_out", "", "Path to write a TrueView preview PNG. Omit to skip rendering.")
	previewSize = flag.Int("preview_max_size", 0, "Longest preview dimension in px. 0 uses the full render size.")
	background  = flag.String("background", "", "Preview background, #RRGGBB or #AARRGGBB. Omit for transparent.")
	cachePath   = flag.String("cache", "", "Path to the needle assignment cache file.")
)

func main() {
	flag.Parse()

	if *inputFile == "" {
		log.Fatal("missing required -input")
	}

	pipeline := design.New()
	if *cachePath != "" {
		pipeline.Cache.Path = *cachePath
	}

	opt := design.DefaultOptions()
	opt.TrueView.Background = *background
	if *pngOut != "" {
		opt.IncludePreview = true
		opt.PreviewMaxSize = *previewSize
	}

	rec, err := pipeline.Process(*inputFile, opt)
	if err != nil {
		log.Fatalf("processing %s: %v", *inputFile, err)
	}

	data, err := rec.ToJSON()
	if err != nil {
		log.Fatalf("encoding design record: %v", err)
	}

	if *jsonOut == "" {
		os.Stdout.Write(data)
		os.Stdout.Write([]byte("\n"))
	} else if err := os.WriteFile(*jsonOut, data, 0o644); err != nil {
		log.Fatalf("writing %s: %v", *jsonOut, err)
	}

	if *pngOut != "" && rec.Preview != nil {
		png, err := base64.StdEncoding.DecodeString(rec.Preview.ImageData)
		if err != nil {
			log.Fatalf("decoding rendered preview: %v", err)
		}
		if err := os.WriteFile(*pngOut, png, 0o644); err != nil {
			log.Fatalf("writing %s: %v", *pngOut, err)
		}
	}
}
