package trueview

import (
	"math"
	"sort"

	"github.com/lemiex-tech/stitchview/stitch"
)

type mode int

const (
	modeRunning mode = iota
	modeSatin
	modeTatami
)

type vec struct{ X, Y float64 }

// stitchDirections returns unit direction vectors for every
// STITCH-to-STITCH consecutive pair in pts, skipping zero-length
// segments and any pair that isn't STITCH on both ends.
func stitchDirections(pts []point) []vec {
	var dirs []vec
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		if a.Command != stitch.STITCH || b.Command != stitch.STITCH {
			continue
		}
		dx, dy := b.X-a.X, b.Y-a.Y
		mag := math.Hypot(dx, dy)
		if mag == 0 {
			continue
		}
		dirs = append(dirs, vec{dx / mag, dy / mag})
	}
	return dirs
}

// extractSatinColumns detects a satin zig-zag and, if found, pairs up
// consecutive STITCH points into columns. Returns nil if the block isn't
// satin.
func extractSatinColumns(pts []point) [][2]point {
	dirs := stitchDirections(pts)
	if len(dirs) < 4 {
		return nil
	}

	opposite := 0
	totalPairs := len(dirs) - 1
	for i := 0; i+1 < len(dirs); i++ {
		if dirs[i].X*dirs[i+1].X+dirs[i].Y*dirs[i+1].Y < -0.2 {
			opposite++
		}
	}
	if totalPairs == 0 || float64(opposite)/float64(totalPairs) < 0.55 {
		return nil
	}

	var columns [][2]point
	for i := 0; i+1 < len(pts); {
		a, b := pts[i], pts[i+1]
		if a.Command == stitch.STITCH && b.Command == stitch.STITCH {
			columns = append(columns, [2]point{a, b})
			i += 2
		} else {
			i++
		}
	}
	return columns
}

// tatamiScore rates how tatami-like a block is, in [0, 1].
func tatamiScore(pts []point) float64 {
	if len(pts) < 15 {
		return 0
	}
	dirs := stitchDirections(pts)
	if len(dirs) < 12 {
		return 0
	}

	var runLengths []int
	run := 1
	reversals := 0
	for i := 0; i+1 < len(dirs); i++ {
		dot := dirs[i].X*dirs[i+1].X + dirs[i].Y*dirs[i+1].Y
		if dot > 0.93 {
			run++
		} else {
			runLengths = append(runLengths, run)
			run = 1
		}
		if dot < -0.2 {
			reversals++
		}
	}
	runLengths = append(runLengths, run)
	if len(runLengths) == 0 {
		return 0
	}

	sorted := append([]int(nil), runLengths...)
	sort.Ints(sorted)
	medianRun := float64(sorted[len(sorted)/2])

	longRuns := 0
	for _, r := range runLengths {
		if r >= 3 {
			longRuns++
		}
	}
	straightFraction := float64(longRuns) / float64(len(runLengths))
	reversalRate := float64(reversals) / float64(max(1, len(runLengths)))

	score := 0.5*straightFraction + 0.3*math.Min(medianRun/6.0, 1) + 0.2*math.Min(reversalRate/0.6, 1)
	return math.Max(0, math.Min(score, 1))
}

// classify picks a rendering mode for a block and, for satin, its
// columns.
func classify(pts []point) (mode, [][2]point) {
	if columns := extractSatinColumns(pts); len(columns) > 0 {
		return modeSatin, columns
	}
	if tatamiScore(pts) >= 0.45 {
		return modeTatami, nil
	}
	if len(pts) >= 50 {
		return modeTatami, nil
	}
	return modeRunning, nil
}
