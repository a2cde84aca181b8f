package scrollview

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Surface is a rectangular pixel buffer the viewport draws on. Two
// implementations are provided: [ImageSurface], backed by an in-memory
// image.RGBA and usable headless, and [EbitenSurface], backed by a GPU
// texture for use inside an Ebitengine game loop.
//
// A viewport never mixes implementations: the scrolling area, the display,
// sprite images, and tiles must all share one. Blit panics when handed a
// source of a different implementation.
type Surface interface {
	// Size returns the width and height in pixels.
	Size() (w, h int)

	// New returns a blank surface of the same implementation, for working
	// buffers the viewport allocates itself.
	New(w, h int) Surface

	// Copy returns a deep copy of the surface.
	Copy() Surface

	// Fill sets every pixel to c.
	Fill(c color.Color)

	// Blit draws src onto the surface with src's top-left corner at the
	// given point, clipping to the surface bounds. A non-nil srcArea
	// restricts the copy to that region of src, in src coordinates; the
	// point then positions srcArea's corner, so when the area overhangs
	// src and is trimmed the surviving pixels keep their destinations.
	// It returns the affected region of the destination, which is empty
	// when nothing was drawn.
	Blit(src Surface, at image.Point, srcArea *image.Rectangle) image.Rectangle

	// Scale returns a new surface holding this surface's content resampled
	// to w by h pixels. The receiver is left unchanged.
	Scale(w, h int) Surface

	// ScrollInPlace shifts the surface's content by (dx, dy) pixels without
	// allocating a second buffer. Pixels shifted out of bounds are lost;
	// the region exposed on the opposite edge keeps its previous content
	// and must be repainted by the caller.
	ScrollInPlace(dx, dy int)
}

// clipBlit resolves a blit request to a destination rectangle and source
// start point, both clipped. srcBounds and srcArea are in source
// coordinates. at positions srcArea's corner, clipped or not, so source
// pixels keep their destinations when the area overhangs the source.
// ok is false when nothing would be drawn.
func clipBlit(dstBounds, srcBounds image.Rectangle, at image.Point, srcArea *image.Rectangle) (dr image.Rectangle, sp image.Point, ok bool) {
	sr := srcBounds
	if srcArea != nil {
		sr = srcArea.Intersect(srcBounds)
		// The anchor moves with any trim of the area's min edge.
		at = at.Add(sr.Min.Sub(srcArea.Min))
	}
	if sr.Empty() {
		return image.Rectangle{}, image.Point{}, false
	}
	dr = image.Rectangle{Min: at, Max: at.Add(sr.Size())}.Intersect(dstBounds)
	if dr.Empty() {
		return image.Rectangle{}, image.Point{}, false
	}
	sp = sr.Min.Add(dr.Min.Sub(at))
	return dr, sp, true
}

// ImageSurface is a Surface backed by an image.RGBA. It needs no display,
// no GPU, and no running game loop, which makes it the implementation of
// choice for tests, servers, and offline rendering. Pixels are reachable
// through [ImageSurface.RGBA] for direct inspection.
type ImageSurface struct {
	img *image.RGBA

	// Scaler performs the resampling in Scale. It defaults to
	// xdraw.NearestNeighbor, which keeps pixel art crisp and scaled
	// output byte-for-byte predictable. Copies made by Copy and Scale
	// inherit it.
	Scaler xdraw.Scaler
}

// NewImageSurface returns a transparent-black surface of the given size.
// It panics if w or h is not positive.
func NewImageSurface(w, h int) *ImageSurface {
	if w <= 0 || h <= 0 {
		panic("scrollview: surface size must be positive")
	}
	return &ImageSurface{
		img:    image.NewRGBA(image.Rect(0, 0, w, h)),
		Scaler: xdraw.NearestNeighbor,
	}
}

// NewImageSurfaceFrom returns a surface holding a copy of src's pixels,
// converted to RGBA. The surface's origin is (0, 0) regardless of
// src's bounds.
func NewImageSurfaceFrom(src image.Image) *ImageSurface {
	b := src.Bounds()
	s := NewImageSurface(b.Dx(), b.Dy())
	draw.Draw(s.img, s.img.Bounds(), src, b.Min, draw.Src)
	return s
}

// Size returns the width and height in pixels.
func (s *ImageSurface) Size() (w, h int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// RGBA returns the backing image. Mutating it mutates the surface.
func (s *ImageSurface) RGBA() *image.RGBA {
	return s.img
}

// New returns a blank ImageSurface of the given size with the same Scaler.
func (s *ImageSurface) New(w, h int) Surface {
	c := NewImageSurface(w, h)
	c.Scaler = s.Scaler
	return c
}

// Copy returns a deep copy of the surface.
func (s *ImageSurface) Copy() Surface {
	c := &ImageSurface{
		img:    image.NewRGBA(s.img.Bounds()),
		Scaler: s.Scaler,
	}
	copy(c.img.Pix, s.img.Pix)
	return c
}

// Fill sets every pixel to c.
func (s *ImageSurface) Fill(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Blit draws src onto the surface with source-over alpha blending and
// returns the affected destination region. It panics if src is not an
// *ImageSurface.
func (s *ImageSurface) Blit(src Surface, at image.Point, srcArea *image.Rectangle) image.Rectangle {
	is, ok := src.(*ImageSurface)
	if !ok {
		panic("scrollview: blit between different surface implementations")
	}
	dr, sp, ok := clipBlit(s.img.Bounds(), is.img.Bounds(), at, srcArea)
	if !ok {
		return image.Rectangle{}
	}
	draw.Draw(s.img, dr, is.img, sp, draw.Over)
	return dr
}

// Scale returns a new surface with the content resampled to w by h pixels
// using the surface's Scaler.
func (s *ImageSurface) Scale(w, h int) Surface {
	dst := NewImageSurface(w, h)
	dst.Scaler = s.Scaler
	sc := s.Scaler
	if sc == nil {
		sc = xdraw.NearestNeighbor
	}
	sc.Scale(dst.img, dst.img.Bounds(), s.img, s.img.Bounds(), xdraw.Src, nil)
	return dst
}

// ScrollInPlace shifts the content by (dx, dy) using row-wise moves on the
// backing buffer. The exposed region keeps its previous pixels.
func (s *ImageSurface) ScrollInPlace(dx, dy int) {
	b := s.img.Bounds()
	w, h := b.Dx(), b.Dy()
	if (dx == 0 && dy == 0) || abs(dx) >= w || abs(dy) >= h {
		return
	}

	srcX, dstX := 0, dx
	if dx < 0 {
		srcX, dstX = -dx, 0
	}
	spanBytes := (w - abs(dx)) * 4

	// Rows are walked in an order that never reads a row already
	// overwritten. Horizontal overlap within a row is safe because
	// copy has memmove semantics.
	pix := s.img.Pix
	moveRow := func(srcY, dstY int) {
		so := s.img.PixOffset(b.Min.X+srcX, b.Min.Y+srcY)
		do := s.img.PixOffset(b.Min.X+dstX, b.Min.Y+dstY)
		copy(pix[do:do+spanBytes], pix[so:so+spanBytes])
	}
	if dy > 0 {
		for y := h - 1 - dy; y >= 0; y-- {
			moveRow(y, y+dy)
		}
	} else {
		for y := -dy; y < h; y++ {
			moveRow(y, y+dy)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
