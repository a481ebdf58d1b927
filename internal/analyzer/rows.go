package analyzer

import (
	"fmt"
	"image"
	"math"
	"sort"
)

// Rows merges blocks that overlap vertically into text rows, top to bottom.
func Rows(blocks []Block) []image.Rectangle {
	sorted := make([]Block, len(blocks))
	copy(sorted, blocks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Rect.Min.Y < sorted[j].Rect.Min.Y
	})

	var rows []image.Rectangle
	for _, b := range sorted {
		if n := len(rows); n > 0 && b.Rect.Min.Y < rows[n-1].Max.Y {
			rows[n-1] = rows[n-1].Union(b.Rect)
			continue
		}
		rows = append(rows, b.Rect)
	}
	return rows
}

// RowSpread is the vertical extent covered by all blocks, in pixels.
func RowSpread(blocks []Block) int {
	if len(blocks) == 0 {
		return 0
	}
	r := blocks[0].Rect
	for _, b := range blocks[1:] {
		r = r.Union(b.Rect)
	}
	return r.Dy()
}

// VerifySettled checks a frame at rest: every glyph sits in one row that
// is no taller than maxRow and is centred on the surface's middle line to
// within half a font size. No ink at all is fine, the text may be empty.
func VerifySettled(blocks []Block, fontSize, maxRow float64, surfaceHeight int) error {
	rows := Rows(blocks)
	switch {
	case len(rows) == 0:
		return nil
	case len(rows) > 1:
		return fmt.Errorf("ink in %d rows, want 1: %v", len(rows), rows)
	}

	row := rows[0]
	if spread := float64(RowSpread(blocks)); spread > maxRow {
		return fmt.Errorf("row is %.0fpx tall, limit %.0fpx", spread, maxRow)
	}
	centre := float64(row.Min.Y+row.Max.Y) / 2
	if mid := float64(surfaceHeight) / 2; math.Abs(centre-mid) > fontSize/2 {
		return fmt.Errorf("row centred at %.1f, surface middle is %.1f", centre, mid)
	}
	return nil
}
