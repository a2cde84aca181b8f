package scrollview

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// TileBackground is a Background composed of a grid of equally sized
// tiles. The full logical surface is never materialized: a sliding window
// holding just the tiles under the display, plus a one-tile margin, is
// composited on demand and rebuilt only when the display crosses onto a
// different set of tiles.
//
// With repeat enabled the grid tiles infinitely in both directions. Tile
// indices wrap modulo the grid size, negative indices wrap to the high
// end, and the viewport never clamps its position.
type TileBackground struct {
	origTiles [][]Surface
	tiles     [][]Surface

	rows, cols           int
	origTileW, origTileH int
	tileW, tileH         int

	repeat bool
	zoom   float64

	// window is the composited view of windowIdx, a rectangle of tile
	// indices with an exclusive Max. origin is the window's top-left in
	// background space; it is negative when a repeating display sits on
	// tiles left of or above the first grid period.
	window    Surface
	windowIdx image.Rectangle
	origin    image.Point
	valid     bool
}

// NewTileBackground returns a Background over copies of the given tiles.
// tiles is indexed [row][column] and must be non-empty, rectangular, and
// uniform in tile size; anything else fails with [ErrInvalidArgument].
func NewTileBackground(tiles [][]Surface, repeat bool) (*TileBackground, error) {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return nil, fmt.Errorf("scrollview: empty tile grid: %w", ErrInvalidArgument)
	}
	rows, cols := len(tiles), len(tiles[0])
	tw, th := tiles[0][0].Size()
	if tw <= 0 || th <= 0 {
		return nil, fmt.Errorf("scrollview: tile size %dx%d must be positive: %w", tw, th, ErrInvalidArgument)
	}
	orig := make([][]Surface, rows)
	for r, row := range tiles {
		if len(row) != cols {
			return nil, fmt.Errorf("scrollview: ragged tile grid: row %d has %d tiles, want %d: %w",
				r, len(row), cols, ErrInvalidArgument)
		}
		orig[r] = make([]Surface, cols)
		for c, t := range row {
			w, h := t.Size()
			if w != tw || h != th {
				return nil, fmt.Errorf("scrollview: tile (%d, %d) is %dx%d, want %dx%d: %w",
					r, c, w, h, tw, th, ErrInvalidArgument)
			}
			orig[r][c] = t.Copy()
		}
	}
	return &TileBackground{
		origTiles: orig,
		tiles:     orig,
		rows:      rows,
		cols:      cols,
		origTileW: tw,
		origTileH: th,
		tileW:     tw,
		tileH:     th,
		repeat:    repeat,
		zoom:      1,
	}, nil
}

// Size returns the pixel size of one grid period at the current zoom.
func (b *TileBackground) Size() (w, h int) {
	return b.cols * b.tileW, b.rows * b.tileH
}

// ScaledSize returns the pixel size one grid period would have at the
// given zoom factor. Each tile rounds to whole pixels on its own, so the
// period is always an exact tile multiple.
func (b *TileBackground) ScaledSize(factor float64) (w, h int) {
	tw, th := scaledTile(b.origTileW, factor), scaledTile(b.origTileH, factor)
	return b.cols * tw, b.rows * th
}

func scaledTile(size int, factor float64) int {
	s := int(math.Round(float64(size) * factor))
	if s < 1 {
		s = 1
	}
	return s
}

// Repeats reports whether the grid tiles infinitely.
func (b *TileBackground) Repeats() bool { return b.repeat }

// RecentersOnZoom reports true: per-tile size rounding means a zoomed
// grid does not scale continuously, and keeping the display's center
// point fixed hides the resulting alignment jump.
func (b *TileBackground) RecentersOnZoom() bool { return true }

// SetZoom rescales every tile from its unscaled original to the given
// absolute factor and drops the composited window.
func (b *TileBackground) SetZoom(factor float64) {
	b.zoom = factor
	b.tileW = scaledTile(b.origTileW, factor)
	b.tileH = scaledTile(b.origTileH, factor)
	if factor == 1 {
		b.tiles = b.origTiles
	} else {
		b.tiles = make([][]Surface, b.rows)
		for r := range b.origTiles {
			b.tiles[r] = make([]Surface, b.cols)
			for c := range b.origTiles[r] {
				b.tiles[r][c] = b.origTiles[r][c].Scale(b.tileW, b.tileH)
			}
		}
	}
	b.valid = false
}

// Prepare composites the tiles covering view, expanded by the one-tile
// margin, into the window. Nothing happens while the display stays on the
// same tiles, which is the common case frame over frame.
func (b *TileBackground) Prepare(view image.Rectangle) {
	idx := b.visibleTiles(view)
	idx.Min = idx.Min.Sub(image.Pt(1, 1))
	idx.Max = idx.Max.Add(image.Pt(1, 1))
	if !b.repeat {
		idx = idx.Intersect(image.Rect(0, 0, b.cols, b.rows))
	}
	if b.valid && idx == b.windowIdx {
		return
	}
	b.combineSurfaces(idx)
}

// visibleTiles returns the rectangle of tile indices the view touches,
// with an exclusive Max.
func (b *TileBackground) visibleTiles(view image.Rectangle) image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(floorDiv(view.Min.X, b.tileW), floorDiv(view.Min.Y, b.tileH)),
		Max: image.Pt(floorDiv(view.Max.X, b.tileW)+1, floorDiv(view.Max.Y, b.tileH)+1),
	}
}

// combineSurfaces rebuilds the window from the tiles in the index
// rectangle idx. The window surface is reused when the size is unchanged.
func (b *TileBackground) combineSurfaces(idx image.Rectangle) {
	w, h := idx.Dx()*b.tileW, idx.Dy()*b.tileH
	if b.window == nil {
		b.window = b.tiles[0][0].New(w, h)
	} else if ww, wh := b.window.Size(); ww != w || wh != h {
		b.window = b.window.New(w, h)
	} else {
		b.window.Fill(color.Transparent)
	}
	for r := idx.Min.Y; r < idx.Max.Y; r++ {
		for c := idx.Min.X; c < idx.Max.X; c++ {
			tr, tc := r, c
			if b.repeat {
				tr, tc = floorMod(r, b.rows), floorMod(c, b.cols)
			}
			at := image.Pt((c-idx.Min.X)*b.tileW, (r-idx.Min.Y)*b.tileH)
			b.window.Blit(b.tiles[tr][tc], at, nil)
		}
	}
	b.windowIdx = idx
	b.origin = image.Pt(idx.Min.X*b.tileW, idx.Min.Y*b.tileH)
	b.valid = true
	debugf("tile window %v at origin %v", idx, b.origin)
}

// offsetPosition maps a background-space position into window space. The
// window is a sliding composite rather than the whole logical surface, so
// every read translates through its origin.
func (b *TileBackground) offsetPosition(p image.Point) image.Point {
	return p.Sub(b.origin)
}

// Draw blits the background region src onto dst. src must lie within the
// prepared window; regions outside it are clipped away. A window dropped
// by Blit or SetZoom is recomposited first, so sprite erases between an
// authoring blit and the next Prepare read the authored pixels.
func (b *TileBackground) Draw(dst Surface, at image.Point, src image.Rectangle) image.Rectangle {
	if !b.valid && b.window != nil {
		b.combineSurfaces(b.windowIdx)
	}
	local := image.Rectangle{
		Min: b.offsetPosition(src.Min),
		Max: b.offsetPosition(src.Max),
	}
	return dst.Blit(b.window, at, &local)
}

// Blit draws src onto the unscaled original tiles at the given position
// in original coordinates, splitting the draw across every tile it
// touches. In repeating mode positions outside the first grid period wrap
// onto it. Touched tiles are rescaled and the window is dropped so the
// change shows up on the next Prepare or Draw.
func (b *TileBackground) Blit(src Surface, at image.Point, srcArea *image.Rectangle) image.Rectangle {
	sw, sh := src.Size()
	sr := image.Rect(0, 0, sw, sh)
	if srcArea != nil {
		sr = srcArea.Intersect(sr)
		// Same anchor rule as Surface.Blit: trimming the area's min edge
		// moves the destination along with it.
		at = at.Add(sr.Min.Sub(srcArea.Min))
	}
	if sr.Empty() {
		return image.Rectangle{}
	}
	dstRect := image.Rectangle{Min: at, Max: at.Add(sr.Size())}

	var affected image.Rectangle
	for r := floorDiv(dstRect.Min.Y, b.origTileH); r*b.origTileH < dstRect.Max.Y; r++ {
		for c := floorDiv(dstRect.Min.X, b.origTileW); c*b.origTileW < dstRect.Max.X; c++ {
			tr, tc := r, c
			if b.repeat {
				tr, tc = floorMod(r, b.rows), floorMod(c, b.cols)
			} else if r < 0 || r >= b.rows || c < 0 || c >= b.cols {
				continue
			}
			tileOrigin := image.Pt(c*b.origTileW, r*b.origTileH)
			part := dstRect.Intersect(image.Rectangle{
				Min: tileOrigin,
				Max: tileOrigin.Add(image.Pt(b.origTileW, b.origTileH)),
			})
			srcPart := part.Sub(at).Add(sr.Min)
			a := b.origTiles[tr][tc].Blit(src, part.Min.Sub(tileOrigin), &srcPart)
			if a.Empty() {
				continue
			}
			affected = affected.Union(a.Add(tileOrigin))
			if b.zoom != 1 {
				b.tiles[tr][tc] = b.origTiles[tr][tc].Scale(b.tileW, b.tileH)
			}
		}
	}
	if !affected.Empty() {
		b.valid = false
	}
	return affected
}
