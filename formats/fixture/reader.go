// Package fixture implements one concrete stitch.Reader over a tiny
// line-oriented text format. It is not a vendor embroidery codec — those
// are out of scope here (see spec §1/§6) — it exists so the rest of this
// repo has something real to load and test against, the way the teacher's
// dummy mapper exists purely so console tests don't need a real cartridge.
package fixture

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/lemiex-tech/stitchview/formats"
	"github.com/lemiex-tech/stitchview/stitch"
)

// Ext is the synthetic extension this reader is registered under.
const Ext = ".stitchfixture"

func init() {
	formats.Register(Ext, Reader{})
}

// Reader parses files shaped like:
//
//	thread FF0000 1234-5678 "Fire Red" "Metro Pro"
//	stitch 0 0 STITCH
//	stitch 100 0 STITCH
//	stitch 100 100 COLOR_CHANGE
//	stitch 200 100 STITCH
//	stitch 0 0 END
//
// Blank lines and lines starting with # are ignored. A thread line's
// catalog/description/brand fields are optional and may be written as -.
type Reader struct{}

var commandNames = map[string]stitch.Command{
	"STITCH":       stitch.STITCH,
	"JUMP":         stitch.JUMP,
	"TRIM":         stitch.TRIM,
	"COLOR_CHANGE": stitch.COLOR_CHANGE,
	"STOP":         stitch.STOP,
	"END":          stitch.END,
	"APPLIQUE":     stitch.APPLIQUE,
}

// Load reads path and returns the normalized Pattern, or a *stitch.LoadError
// if the file can't be opened or a line can't be parsed.
func (Reader) Load(path string) (*stitch.Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &stitch.LoadError{Kind: stitch.UnreadableFile, Path: path, Err: err}
	}
	defer f.Close()

	p := &stitch.Pattern{}
	haveBounds := false

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields, err := splitFixtureLine(line)
		if err != nil {
			return nil, &stitch.LoadError{Kind: stitch.UnreadableFile, Path: path, Err: fmt.Errorf("line %d: %w", lineNo, err)}
		}
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "thread":
			th, err := parseThreadLine(fields)
			if err != nil {
				return nil, &stitch.LoadError{Kind: stitch.UnreadableFile, Path: path, Err: fmt.Errorf("line %d: %w", lineNo, err)}
			}
			p.Threads = append(p.Threads, th)
		case "stitch":
			pt, err := parseStitchLine(fields)
			if err != nil {
				return nil, &stitch.LoadError{Kind: stitch.UnreadableFile, Path: path, Err: fmt.Errorf("line %d: %w", lineNo, err)}
			}
			if !haveBounds {
				p.Bounds = stitch.Bounds{MinX: pt.X, MinY: pt.Y, MaxX: pt.X, MaxY: pt.Y}
				haveBounds = true
			} else {
				if pt.X < p.Bounds.MinX {
					p.Bounds.MinX = pt.X
				}
				if pt.X > p.Bounds.MaxX {
					p.Bounds.MaxX = pt.X
				}
				if pt.Y < p.Bounds.MinY {
					p.Bounds.MinY = pt.Y
				}
				if pt.Y > p.Bounds.MaxY {
					p.Bounds.MaxY = pt.Y
				}
			}
			p.Stitches = append(p.Stitches, pt)
		default:
			return nil, &stitch.LoadError{Kind: stitch.UnreadableFile, Path: path, Err: fmt.Errorf("line %d: unknown directive %q", lineNo, fields[0])}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &stitch.LoadError{Kind: stitch.UnreadableFile, Path: path, Err: err}
	}

	return p, nil
}

func parseStitchLine(fields []string) (stitch.Point, error) {
	if len(fields) != 4 {
		return stitch.Point{}, fmt.Errorf("stitch line needs 3 fields (x y command), got %d", len(fields)-1)
	}
	x, err := strconv.Atoi(fields[1])
	if err != nil {
		return stitch.Point{}, fmt.Errorf("bad x: %w", err)
	}
	y, err := strconv.Atoi(fields[2])
	if err != nil {
		return stitch.Point{}, fmt.Errorf("bad y: %w", err)
	}
	cmd, ok := commandNames[strings.ToUpper(fields[3])]
	if !ok {
		return stitch.Point{}, fmt.Errorf("unknown command %q", fields[3])
	}
	return stitch.Point{X: x, Y: y, Command: cmd}, nil
}

func parseThreadLine(fields []string) (stitch.Thread, error) {
	if len(fields) < 2 {
		return stitch.Thread{}, fmt.Errorf("thread line needs at least a color")
	}
	color, err := strconv.ParseInt(strings.TrimPrefix(fields[1], "#"), 16, 64)
	if err != nil {
		return stitch.Thread{}, fmt.Errorf("bad color %q: %w", fields[1], err)
	}
	th := stitch.Thread{Color: int(color)}
	if len(fields) > 2 && fields[2] != "-" {
		th.CatalogNumber = fields[2]
	}
	if len(fields) > 3 && fields[3] != "-" {
		th.Description = fields[3]
	}
	if len(fields) > 4 && fields[4] != "-" {
		th.Brand = fields[4]
	}
	return th, nil
}

// splitFixtureLine splits on whitespace, but treats a "quoted string" as one
// field so descriptions and brand names can contain spaces.
func splitFixtureLine(line string) ([]string, error) {
	var fields []string
	var cur strings.Builder
	inQuote, sawQuote, pending := false, false, false

	flush := func() {
		if cur.Len() > 0 || sawQuote {
			fields = append(fields, cur.String())
		}
		cur.Reset()
		sawQuote, pending = false, false
	}

	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			sawQuote = true
		case unicode.IsSpace(r) && !inQuote:
			if pending {
				flush()
			}
		default:
			cur.WriteRune(r)
			pending = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote")
	}
	if pending || sawQuote {
		flush()
	}
	return fields, nil
}
