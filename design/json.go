package design

import (
	"encoding/json"
	"strconv"

	"github.com/lemiex-tech/stitchview/needle"
)

type wireFileInfo struct {
	Filename     string  `json:"filename"`
	Hash         string  `json:"hash8"`
	StitchCount  int     `json:"stitch_count"`
	WidthMM      float64 `json:"width_mm"`
	HeightMM     float64 `json:"height_mm"`
	ColorCount   int     `json:"color_count"`
	AreaMM2      float64 `json:"area_mm2"`
	ColorChanges int     `json:"color_changes"`
	Stops        int     `json:"stops"`
	Trims        int     `json:"trims"`
	Appliques    int     `json:"appliques"`
}

type wireColor struct {
	Sequence     int    `json:"sequence"`
	OriginalCode string `json:"original_code"`
	DisplayCode  string `json:"display_code"`
	ColorWay     string `json:"color_way"`
	Name         string `json:"name"`
	Chart        string `json:"chart"`
	RGBInt       int    `json:"rgb_int"`
	RGBHex       string `json:"rgb_hex"`
	StitchCount  int    `json:"stitch_count"`
	StopFlag     bool   `json:"stop_flag"`
	NeedleNumber *int   `json:"needle_number"`
}

type wireRepresentative struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	RGBHex string `json:"rgb_hex"`
}

type wireDefaults struct {
	BlackNeedle int `json:"black_needle"`
	WhiteNeedle int `json:"white_needle"`
}

type wireNeedleTable struct {
	Assignments map[string]*wireRepresentative `json:"assignments"`
	Defaults    wireDefaults                   `json:"defaults"`
}

type wirePreview struct {
	ImageData string `json:"image_data"`
	Format    string `json:"format"`
	Encoding  string `json:"encoding"`
}

type wireBounds struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

type wireMetadata struct {
	GeneratedBy string      `json:"generated_by"`
	Bounds      *wireBounds `json:"bounds,omitempty"`
}

type wireRecord struct {
	FileInfo         wireFileInfo    `json:"file_info"`
	Preview          *wirePreview    `json:"preview"`
	Colors           []wireColor     `json:"colors"`
	NeedleAssignment wireNeedleTable `json:"needle_assignment"`
	Metadata         wireMetadata    `json:"metadata"`
}

// ToJSON renders the record in the wire shape: UTF-8, 2-space indent,
// with every needle slot key "1".."12" present even when null.
func (r *Record) ToJSON() ([]byte, error) {
	w := wireRecord{
		FileInfo: wireFileInfo{
			Filename:     r.FileInfo.Filename,
			Hash:         r.FileInfo.Hash8,
			StitchCount:  r.FileInfo.StitchCount,
			WidthMM:      r.FileInfo.WidthMM,
			HeightMM:     r.FileInfo.HeightMM,
			ColorCount:   r.FileInfo.ColorCount,
			AreaMM2:      r.FileInfo.AreaMM2,
			ColorChanges: r.FileInfo.ColorChanges,
			Stops:        r.FileInfo.Stops,
			Trims:        r.FileInfo.Trims,
			Appliques:    r.FileInfo.Appliques,
		},
		Colors: make([]wireColor, len(r.Colors)),
		NeedleAssignment: wireNeedleTable{
			Assignments: make(map[string]*wireRepresentative, needle.Slots),
			Defaults:    wireDefaults{BlackNeedle: needle.BlackNeedle, WhiteNeedle: needle.WhiteNeedle},
		},
		Metadata: wireMetadata{GeneratedBy: r.Metadata.GeneratedBy},
	}

	for i, c := range r.Colors {
		w.Colors[i] = wireColor{
			Sequence:     c.Sequence,
			OriginalCode: c.OriginalCode,
			DisplayCode:  c.DisplayCode,
			ColorWay:     c.ColorWay,
			Name:         c.Name,
			Chart:        c.Chart,
			RGBInt:       c.RGBInt,
			RGBHex:       c.RGBHex,
			StitchCount:  c.StitchCount,
			StopFlag:     c.StopFlag,
			NeedleNumber: c.NeedleNumber,
		}
	}

	for slot := 1; slot <= needle.Slots; slot++ {
		key := strconv.Itoa(slot)
		rep, ok := r.Needles[slot]
		if !ok || rep == nil {
			w.NeedleAssignment.Assignments[key] = nil
			continue
		}
		w.NeedleAssignment.Assignments[key] = &wireRepresentative{Code: rep.Code, Name: rep.Name, RGBHex: rep.RGBHex}
	}

	if r.Metadata.Bounds != nil {
		w.Metadata.Bounds = &wireBounds{
			MinX: r.Metadata.Bounds.MinX,
			MinY: r.Metadata.Bounds.MinY,
			MaxX: r.Metadata.Bounds.MaxX,
			MaxY: r.Metadata.Bounds.MaxY,
		}
	}

	if r.Preview != nil {
		w.Preview = &wirePreview{ImageData: r.Preview.ImageData, Format: r.Preview.Format, Encoding: r.Preview.Encoding}
	}

	return json.MarshalIndent(w, "", "  ")
}
