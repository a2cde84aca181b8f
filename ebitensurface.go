package scrollview

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenSurface is a Surface backed by an *ebiten.Image, for viewports that
// render inside an Ebitengine game. Blits run on the GPU with nearest
// filtering, so output matches [ImageSurface] pixel for pixel.
//
// Scrolling in place routes the surviving region through a persistent
// scratch image, since an ebiten.Image cannot draw from itself.
type EbitenSurface struct {
	img     *ebiten.Image
	scratch *ebiten.Image
}

// NewEbitenSurface returns a transparent-black surface of the given size.
// It panics if w or h is not positive.
func NewEbitenSurface(w, h int) *EbitenSurface {
	return &EbitenSurface{img: ebiten.NewImage(w, h)}
}

// NewEbitenSurfaceFromImage wraps an existing image without copying it.
// Drawing on the surface draws on img. The image's bounds must have a
// zero origin, which is the case for any image from ebiten.NewImage or
// ebiten.NewImageFromImage.
func NewEbitenSurfaceFromImage(img *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{img: img}
}

// Image returns the underlying *ebiten.Image for direct manipulation.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.img
}

// Size returns the width and height in pixels.
func (s *EbitenSurface) Size() (w, h int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// New returns a blank EbitenSurface of the given size.
func (s *EbitenSurface) New(w, h int) Surface {
	return NewEbitenSurface(w, h)
}

// Copy returns a deep copy of the surface.
func (s *EbitenSurface) Copy() Surface {
	w, h := s.Size()
	c := ebiten.NewImage(w, h)
	var op ebiten.DrawImageOptions
	op.Blend = ebiten.BlendCopy
	c.DrawImage(s.img, &op)
	return &EbitenSurface{img: c}
}

// Fill sets every pixel to c.
func (s *EbitenSurface) Fill(c color.Color) {
	s.img.Fill(c)
}

// Blit draws src onto the surface with source-over alpha blending and
// returns the affected destination region. It panics if src is not an
// *EbitenSurface.
func (s *EbitenSurface) Blit(src Surface, at image.Point, srcArea *image.Rectangle) image.Rectangle {
	es, ok := src.(*EbitenSurface)
	if !ok {
		panic("scrollview: blit between different surface implementations")
	}
	dr, sp, ok := clipBlit(s.img.Bounds(), es.img.Bounds(), at, srcArea)
	if !ok {
		return image.Rectangle{}
	}
	part := es.img.SubImage(image.Rectangle{Min: sp, Max: sp.Add(dr.Size())}).(*ebiten.Image)
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(dr.Min.X), float64(dr.Min.Y))
	s.img.DrawImage(part, &op)
	return dr
}

// Scale returns a new surface with the content resampled to w by h pixels
// using nearest filtering.
func (s *EbitenSurface) Scale(w, h int) Surface {
	sw, sh := s.Size()
	dst := NewEbitenSurface(w, h)
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(w)/float64(sw), float64(h)/float64(sh))
	op.Blend = ebiten.BlendCopy
	dst.img.DrawImage(s.img, &op)
	return dst
}

// ScrollInPlace shifts the content by (dx, dy). The surviving region is
// staged in a scratch image of the surface's size, allocated on first use
// and kept for later scrolls.
func (s *EbitenSurface) ScrollInPlace(dx, dy int) {
	w, h := s.Size()
	if (dx == 0 && dy == 0) || abs(dx) >= w || abs(dy) >= h {
		return
	}
	if s.scratch == nil {
		s.scratch = ebiten.NewImage(w, h)
	} else if b := s.scratch.Bounds(); b.Dx() != w || b.Dy() != h {
		s.scratch.Deallocate()
		s.scratch = ebiten.NewImage(w, h)
	}

	bounds := image.Rect(0, 0, w, h)
	dstRect := bounds.Intersect(bounds.Add(image.Pt(dx, dy)))
	srcRect := dstRect.Sub(image.Pt(dx, dy))

	var op ebiten.DrawImageOptions
	op.Blend = ebiten.BlendCopy
	op.GeoM.Translate(float64(srcRect.Min.X), float64(srcRect.Min.Y))
	s.scratch.DrawImage(s.img.SubImage(srcRect).(*ebiten.Image), &op)

	op = ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendCopy
	op.GeoM.Translate(float64(dstRect.Min.X), float64(dstRect.Min.Y))
	s.img.DrawImage(s.scratch.SubImage(srcRect).(*ebiten.Image), &op)
}

// Dispose deallocates the underlying images. The surface must not be used
// after calling Dispose.
func (s *EbitenSurface) Dispose() {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	if s.scratch != nil {
		s.scratch.Deallocate()
		s.scratch = nil
	}
}
