package scrollview

import (
	"image"
	"math"
)

// Background supplies the pixels a Viewport scrolls over. The package
// ships two implementations: [ImageBackground], a single bitmap, and
// [TileBackground], a grid of fixed-size tiles composited lazily into a
// sliding window. Callers with procedural or streamed content can plug in
// their own and hand it to [NewCustom].
//
// All coordinates are in background space: the pixel space of the zoomed
// scrolling area, with (0, 0) at its top-left. A repeating background is
// addressed with unbounded coordinates.
type Background interface {
	// Size returns the pixel size of the scrolling area at the current
	// zoom factor.
	Size() (w, h int)

	// ScaledSize returns the pixel size the scrolling area would have at
	// the given zoom factor, without rebuilding anything.
	ScaledSize(factor float64) (w, h int)

	// Repeats reports whether the background tiles infinitely. A
	// repeating background is never clamped against, and Draw must accept
	// coordinates outside the nominal area.
	Repeats() bool

	// RecentersOnZoom reports whether a zoom change should keep the
	// point at the display's center fixed instead of the top-left
	// corner. Tile grids answer true: their per-tile size rounding can
	// shift alignment, and recentering hides the jump.
	RecentersOnZoom() bool

	// SetZoom rebuilds the background pixels from the unscaled originals
	// at the given absolute factor. The viewport validates the factor
	// before calling.
	SetZoom(factor float64)

	// Prepare is called with the region about to be read so a windowed
	// implementation can composite the tiles covering it. Single-bitmap
	// implementations can ignore it.
	Prepare(view image.Rectangle)

	// Draw blits the background region src onto dst with its top-left at
	// the given point, returning the affected region of dst.
	Draw(dst Surface, at image.Point, src image.Rectangle) image.Rectangle

	// Blit draws src onto the unscaled original content at the given
	// position in original (zoom 1) coordinates, then rebuilds the zoomed
	// pixels so both stay consistent. It returns the affected region in
	// original coordinates. This is how callers author background content
	// after construction.
	Blit(src Surface, at image.Point, srcArea *image.Rectangle) image.Rectangle
}

// ImageBackground is a Background backed by one bitmap. The surface given
// to [NewImageBackground] is copied, so later caller draws on it do not
// desync the viewport; use [Viewport.Blit] to author content instead.
type ImageBackground struct {
	orig Surface
	cur  Surface
	zoom float64
}

// NewImageBackground returns a Background over a copy of background.
func NewImageBackground(background Surface) *ImageBackground {
	orig := background.Copy()
	return &ImageBackground{orig: orig, cur: orig, zoom: 1}
}

// Size returns the pixel size at the current zoom factor.
func (b *ImageBackground) Size() (w, h int) {
	return b.cur.Size()
}

// ScaledSize returns the pixel size the background would have at the
// given zoom factor.
func (b *ImageBackground) ScaledSize(factor float64) (w, h int) {
	ow, oh := b.orig.Size()
	return int(math.Round(float64(ow) * factor)), int(math.Round(float64(oh) * factor))
}

// Repeats reports false: a single bitmap does not wrap.
func (b *ImageBackground) Repeats() bool { return false }

// RecentersOnZoom reports false: a single bitmap scales continuously, so
// the zoomed top-left position stays meaningful.
func (b *ImageBackground) RecentersOnZoom() bool { return false }

// SetZoom rescales the original to the given absolute factor. At factor 1
// the original is used directly.
func (b *ImageBackground) SetZoom(factor float64) {
	b.zoom = factor
	if factor == 1 {
		b.cur = b.orig
		return
	}
	w, h := b.ScaledSize(factor)
	b.cur = b.orig.Scale(w, h)
}

// Prepare is a no-op: the whole bitmap is always materialized.
func (b *ImageBackground) Prepare(view image.Rectangle) {}

// Draw blits the background region src onto dst.
func (b *ImageBackground) Draw(dst Surface, at image.Point, src image.Rectangle) image.Rectangle {
	return dst.Blit(b.cur, at, &src)
}

// Blit draws src onto the unscaled original and rescales the zoomed copy
// to pick up the change.
func (b *ImageBackground) Blit(src Surface, at image.Point, srcArea *image.Rectangle) image.Rectangle {
	r := b.orig.Blit(src, at, srcArea)
	if b.zoom != 1 {
		w, h := b.ScaledSize(b.zoom)
		b.cur = b.orig.Scale(w, h)
	}
	return r
}
