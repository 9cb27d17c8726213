package colorrecord

import "github.com/lemiex-tech/stitchview/stitch"

// FileInfo is the file_info block of a design record.
type FileInfo struct {
	Filename     string
	Hash8        string
	StitchCount  int
	WidthMM      float64
	HeightMM     float64
	ColorCount   int
	AreaMM2      float64
	ColorChanges int
	Stops        int
	Trims        int
	Appliques    int
}

// BuildFileInfo assembles file_info. Stops is deliberately the block
// count (len(colors)), not the number of STOP commands in the stream —
// that mismatch is carried over from the pipeline this was distilled from
// and kept here for output compatibility. Metrics.Stops still holds the
// STOP-command count.
func BuildFileInfo(filename, hash8 string, stitchCount int, m Metrics, colorCount int, colors []ColorDescriptor) FileInfo {
	return FileInfo{
		Filename:     filename,
		Hash8:        hash8,
		StitchCount:  stitchCount,
		WidthMM:      m.WidthMM,
		HeightMM:     m.HeightMM,
		ColorCount:   colorCount,
		AreaMM2:      m.AreaMM2,
		ColorChanges: m.ColorChanges,
		Stops:        len(colors),
		Trims:        m.Trims,
		Appliques:    m.Appliques,
	}
}

// Metadata carries the bounding box the loader reported, alongside a
// generator tag — kept for parity with the original JSON's metadata block.
type Metadata struct {
	GeneratedBy string
	Bounds      *stitch.Bounds
}
