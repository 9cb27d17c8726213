// Package needle assigns a design's distinct thread colors to the 12
// physical needle positions of an embroidery machine, deterministically,
// and caches the result by content hash so reprocessing the same file
// always yields the same needle numbers.
package needle

import (
	"hash/fnv"
	"sort"
	"strings"

	"github.com/lemiex-tech/stitchview/colorrecord"
)

const (
	Slots       = 12
	BlackNeedle = 5
	WhiteNeedle = 8
)

// Representative is the color placed on a needle slot.
type Representative struct {
	Code   string
	Name   string
	RGBHex string
}

// Assignment maps needle slot (1..Slots) to its representative color, or
// nil when the slot holds no color.
type Assignment map[int]*Representative

// Defaults pins the two reserved slots.
type Defaults struct {
	BlackNeedle int
	WhiteNeedle int
}

// DefaultSlots returns the fixed {black: 5, white: 8} pinning.
func DefaultSlots() Defaults {
	return Defaults{BlackNeedle: BlackNeedle, WhiteNeedle: WhiteNeedle}
}

func isBlack(code string, r, g, b int) bool {
	return code == "137" || (r < 50 && g < 50 && b < 50)
}

func isWhite(code string, r, g, b int) bool {
	return code == "135" || (r > 200 && g > 200 && b > 200)
}

func rgbComponents(rgbInt int) (r, g, b int) {
	return (rgbInt >> 16) & 0xFF, (rgbInt >> 8) & 0xFF, rgbInt & 0xFF
}

func groupKey(c colorrecord.ColorDescriptor) string {
	return c.DisplayCode + "_" + c.RGBHex
}

// Assign mutates colors in place, setting NeedleNumber on every element
// that gets a slot, and returns the resulting assignment table. Colors in
// groups beyond the available slots keep a nil NeedleNumber. All 12 slots
// are always present in the returned table; unused slots are nil.
func Assign(colors []colorrecord.ColorDescriptor) Assignment {
	assignments := make(Assignment, Slots)
	for i := 1; i <= Slots; i++ {
		assignments[i] = nil
	}
	used := make(map[int]bool, Slots)

	var blackIdx, whiteIdx []int
	groupOrder := make([]string, 0, len(colors))
	groupSeen := make(map[string]bool, len(colors))
	groupMembers := make(map[string][]int, len(colors))

	for i, c := range colors {
		r, g, b := rgbComponents(c.RGBInt)
		switch {
		case isBlack(c.OriginalCode, r, g, b):
			blackIdx = append(blackIdx, i)
		case isWhite(c.OriginalCode, r, g, b):
			whiteIdx = append(whiteIdx, i)
		default:
			key := groupKey(c)
			if !groupSeen[key] {
				groupSeen[key] = true
				groupOrder = append(groupOrder, key)
			}
			groupMembers[key] = append(groupMembers[key], i)
		}
	}

	if len(blackIdx) > 0 {
		first := colors[blackIdx[0]]
		assignments[BlackNeedle] = &Representative{Code: first.DisplayCode, Name: first.Name, RGBHex: first.RGBHex}
		for _, i := range blackIdx {
			n := BlackNeedle
			colors[i].NeedleNumber = &n
		}
		used[BlackNeedle] = true
	}

	if len(whiteIdx) > 0 {
		first := colors[whiteIdx[0]]
		assignments[WhiteNeedle] = &Representative{Code: first.DisplayCode, Name: first.Name, RGBHex: first.RGBHex}
		for _, i := range whiteIdx {
			n := WhiteNeedle
			colors[i].NeedleNumber = &n
		}
		used[WhiteNeedle] = true
	}

	available := make([]int, 0, Slots)
	for i := 1; i <= Slots; i++ {
		if !used[i] {
			available = append(available, i)
		}
	}
	sort.Ints(available)

	sortedKeys := append([]string(nil), groupOrder...)
	sort.Strings(sortedKeys)
	seed := seedFromKeys(sortedKeys)
	shuffle(available, seed)

	for i, key := range groupOrder {
		members := groupMembers[key]
		if i >= len(available) {
			continue
		}
		slot := available[i]
		first := colors[members[0]]
		assignments[slot] = &Representative{Code: first.DisplayCode, Name: first.Name, RGBHex: first.RGBHex}
		for _, idx := range members {
			n := slot
			colors[idx].NeedleNumber = &n
		}
	}

	return assignments
}

// seedFromKeys computes the FNV-1a hash of the sorted, joined group keys
// and reduces it mod 2^31-1, matching the string-hash-as-RNG-seed
// convention this pipeline's needle assignment was distilled from. FNV-1a
// is used in place of the original's language-specific string hash since
// that hash is not portable across implementations.
func seedFromKeys(sortedKeys []string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(strings.Join(sortedKeys, "")))
	return h.Sum32() % 2147483647
}

// lcg constants, as used by Numerical Recipes' minimal generator.
const (
	lcgA = 1664525
	lcgC = 1013904223
)

// shuffle performs an in-place Fisher-Yates shuffle driven by a linear
// congruential generator seeded with seed. Fixing the generator and its
// constants keeps the shuffle reproducible independent of host/language.
func shuffle(s []int, seed uint32) {
	state := seed
	next := func(n int) int {
		state = state*lcgA + lcgC
		return int(state % uint32(n))
	}
	for i := len(s) - 1; i > 0; i-- {
		j := next(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
