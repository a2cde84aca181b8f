package scrollview

import (
	"fmt"
	"image"
	"math"
)

// Sprite is any foreground element DrawSprites can composite onto the
// display: a bounding rectangle in background space plus an image of the
// same size. Sprites are read-only inputs; the viewport remembers only
// the rectangles they covered so it can erase them on the next call.
type Sprite interface {
	// Bounds returns the sprite's position and size in background space.
	Bounds() image.Rectangle
	// Image returns the sprite's pixels. Its size should match Bounds.
	Image() Surface
}

// Viewport tracks a display-sized window over a larger scrolling
// background and keeps the display's pixels in sync as the window moves.
// Scrolling shifts the display's existing content in place and repaints
// only the strips that slid into view, so per-frame cost is proportional
// to the scroll distance rather than the display area.
//
// The window position is tracked twice: a sub-pixel position accumulates
// fractional scroll deltas without drift, and its rounding is the
// pixel-snapped position all drawing uses. Scroll, Center, and DrawSprites
// never fail; positions that would leave the scrolling area are clamped.
//
// A Viewport is not safe for concurrent use. All methods must be called
// from one goroutine, and the caller must not draw on the display between
// a scroll and presenting it.
type Viewport struct {
	bg      Background
	display Surface

	truePos    Vec2
	displayPos image.Point
	zoom       float64

	// clearRects holds the background-space regions covered by the
	// sprites of the previous DrawSprites call, pending erase.
	clearRects []image.Rectangle

	anim *scrollAnim
}

// New returns a viewport scrolling over a copy of background, writing
// into display, with the display's top-left at the given background
// position. The display is painted before returning. It fails with
// [ErrInvalidBounds] when a display-sized rectangle at that position
// does not fit inside the background.
func New(background, display Surface, at Vec2) (*Viewport, error) {
	return NewCustom(NewImageBackground(background), display, at)
}

// NewTiled returns a viewport scrolling over a grid of equally sized
// tiles, composited lazily as the display moves. With repeat the grid
// tiles infinitely in both directions and the position is never clamped.
// It fails with [ErrInvalidArgument] for a malformed grid, or with
// [ErrInvalidBounds] like [New] when repeat is off.
func NewTiled(tiles [][]Surface, display Surface, at Vec2, repeat bool) (*Viewport, error) {
	bg, err := NewTileBackground(tiles, repeat)
	if err != nil {
		return nil, err
	}
	return NewCustom(bg, display, at)
}

// NewCustom returns a viewport over a caller-supplied background
// provider. Most callers want [New] or [NewTiled].
func NewCustom(bg Background, display Surface, at Vec2) (*Viewport, error) {
	v := &Viewport{bg: bg, display: display, zoom: 1}
	if !bg.Repeats() {
		dw, dh := display.Size()
		bw, bh := bg.Size()
		if at.X < 0 || at.Y < 0 || at.X+float64(dw) > float64(bw) || at.Y+float64(dh) > float64(bh) {
			return nil, fmt.Errorf("scrollview: %dx%d display at (%g, %g) does not fit %dx%d scrolling area: %w",
				dw, dh, at.X, at.Y, bw, bh, ErrInvalidBounds)
		}
	}
	v.setTruePos(at)
	v.RedrawDisplay()
	return v, nil
}

// setTruePos is the single writer for the viewport position. The snapped
// position is always derived here, never updated on its own.
func (v *Viewport) setTruePos(p Vec2) {
	v.truePos = p
	v.displayPos = p.Round()
}

// view returns the display's rectangle in background space.
func (v *Viewport) view() image.Rectangle {
	w, h := v.display.Size()
	return image.Rectangle{Min: v.displayPos, Max: v.displayPos.Add(image.Pt(w, h))}
}

// TruePos returns the sub-pixel position of the display's top-left corner
// in background space.
func (v *Viewport) TruePos() Vec2 {
	return v.truePos
}

// DisplayPos returns TruePos rounded to whole pixels. All blits use this
// position.
func (v *Viewport) DisplayPos() image.Point {
	return v.displayPos
}

// Display returns the display surface the viewport writes into.
func (v *Viewport) Display() Surface {
	return v.display
}

// Zoom returns the current zoom factor.
func (v *Viewport) Zoom() float64 {
	return v.zoom
}

// ScrollingArea returns the rectangle the display is constrained to: the
// zoomed background's bounds. For a repeating background it is one period
// of the tile grid and does not constrain anything.
func (v *Viewport) ScrollingArea() image.Rectangle {
	w, h := v.bg.Size()
	return image.Rect(0, 0, w, h)
}

// CenteredPos returns the position the display's top-left would need so
// that point sits at the display's center. Pure; no mutation.
func (v *Viewport) CenteredPos(point Vec2) Vec2 {
	w, h := v.display.Size()
	return Vec2{X: point.X - float64(w)/2, Y: point.Y - float64(h)/2}
}

// Center scrolls so that point sits at the display's center, returning
// the display regions that changed. Moves under one pixel are skipped
// entirely, so centering on the same target every frame settles instead
// of jittering from repeated rounding.
func (v *Viewport) Center(point Vec2) []image.Rectangle {
	delta := v.CenteredPos(point).Sub(v.truePos)
	if delta.Len() < 1 {
		return nil
	}
	return v.Scroll(delta)
}

// Scroll moves the display by delta within the scrolling area and updates
// the display's pixels, returning the display regions that changed.
//
// The requested delta lands on the sub-pixel position; the pixels move by
// the difference of the snapped positions, which clamping can reduce
// further. The display content is shifted in place and only the exposed
// strips are repainted from the background, up to two of them, one per
// axis. A delta of a display size or more repaints everything.
func (v *Viewport) Scroll(delta Vec2) []image.Rectangle {
	prev := v.displayPos
	pos := v.truePos.Add(delta)
	if !v.bg.Repeats() {
		c := clampPos(pos, v.displaySize(), v.ScrollingArea())
		if debugMode && c != pos {
			debugf("scroll clamped (%.2f, %.2f) -> (%.2f, %.2f)", pos.X, pos.Y, c.X, c.Y)
		}
		pos = c
	}
	v.setTruePos(pos)

	eff := v.displayPos.Sub(prev)
	if eff == (image.Point{}) {
		return nil
	}
	v.bg.Prepare(v.view())

	w, h := v.display.Size()
	if abs(eff.X) >= w || abs(eff.Y) >= h {
		v.RedrawDisplay()
		return []image.Rectangle{image.Rect(0, 0, w, h)}
	}

	v.display.ScrollInPlace(-eff.X, -eff.Y)
	areas := v.calculateRedrawAreas(eff)
	dirty := make([]image.Rectangle, 0, len(areas))
	for _, a := range areas {
		v.bg.Draw(v.display, a.dst, a.src)
		dirty = append(dirty, image.Rectangle{Min: a.dst, Max: a.dst.Add(a.src.Size())})
	}
	if debugMode {
		px := 0
		for _, r := range dirty {
			px += r.Dx() * r.Dy()
		}
		debugf("scroll %v: redrew %d px in %d strips", eff, px, len(dirty))
	}
	return dirty
}

// redrawArea pairs a display-local destination with the background region
// to fetch.
type redrawArea struct {
	dst image.Point
	src image.Rectangle
}

// calculateRedrawAreas returns the strips exposed by moving the display
// by delta pixels from its current position: a column strip when delta.X
// is nonzero and a row strip when delta.Y is nonzero. The corner where
// both overlap is covered by either, so draw order does not matter.
// Deltas must be smaller than the display on both axes.
func (v *Viewport) calculateRedrawAreas(delta image.Point) []redrawArea {
	w, h := v.display.Size()
	p := v.displayPos
	areas := make([]redrawArea, 0, 2)
	if delta.X > 0 {
		areas = append(areas, redrawArea{
			dst: image.Pt(w-delta.X, 0),
			src: image.Rect(p.X+w-delta.X, p.Y, p.X+w, p.Y+h),
		})
	} else if delta.X < 0 {
		areas = append(areas, redrawArea{
			dst: image.Point{},
			src: image.Rect(p.X, p.Y, p.X-delta.X, p.Y+h),
		})
	}
	if delta.Y > 0 {
		areas = append(areas, redrawArea{
			dst: image.Pt(0, h-delta.Y),
			src: image.Rect(p.X, p.Y+h-delta.Y, p.X+w, p.Y+h),
		})
	} else if delta.Y < 0 {
		areas = append(areas, redrawArea{
			dst: image.Point{},
			src: image.Rect(p.X, p.Y, p.X+w, p.Y-delta.Y),
		})
	}
	return areas
}

// DrawSprites composites sprites onto the display in two phases: first
// every region a sprite covered on the previous call is restored from the
// background, then the new sprites are drawn at their current positions.
// It returns all display regions that changed, for a partial presentation
// update. Passing no sprites just erases the previous ones.
func (v *Viewport) DrawSprites(sprites ...Sprite) []image.Rectangle {
	dirty := make([]image.Rectangle, 0, len(v.clearRects)+len(sprites))
	for _, r := range v.clearRects {
		if a := v.bg.Draw(v.display, r.Min.Sub(v.displayPos), r); !a.Empty() {
			dirty = append(dirty, a)
		}
	}
	v.clearRects = v.clearRects[:0]
	for _, s := range sprites {
		b := s.Bounds()
		if a := v.display.Blit(s.Image(), b.Min.Sub(v.displayPos), nil); !a.Empty() {
			dirty = append(dirty, a)
		}
		v.clearRects = append(v.clearRects, b)
	}
	return dirty
}

// RedrawDisplay repaints the whole display from the background at the
// current position. Pending sprite erase regions are dropped since the
// full repaint already cleared them. Scroll keeps the display current on
// its own; this is for after authoring blits or an external display swap.
func (v *Viewport) RedrawDisplay() {
	v.bg.Prepare(v.view())
	v.bg.Draw(v.display, image.Point{}, v.view())
	v.clearRects = v.clearRects[:0]
}

// SetZoom rescales the background to factor times its original size,
// moves the position to match, and repaints the display. A single-bitmap
// background keeps the same top-left point; a tile grid keeps the point
// at the display's center instead (see [Background.RecentersOnZoom]).
//
// It fails with [ErrInvalidArgument] for a non-positive or non-finite
// factor, and with [ErrInvalidBounds] when the display would no longer
// fit the shrunken scrolling area; the viewport is unchanged on error.
func (v *Viewport) SetZoom(factor float64) error {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("scrollview: zoom factor %g: %w", factor, ErrInvalidArgument)
	}
	dw, dh := v.display.Size()
	if !v.bg.Repeats() {
		bw, bh := v.bg.ScaledSize(factor)
		if bw < dw || bh < dh {
			return fmt.Errorf("scrollview: %dx%d display does not fit %dx%d scrolling area at zoom %g: %w",
				dw, dh, bw, bh, factor, ErrInvalidBounds)
		}
	}

	// The position lives in zoomed background space, so it scales by the
	// factor ratio along with the pixels.
	ratio := factor / v.zoom
	pos := v.truePos
	if v.bg.RecentersOnZoom() {
		center := Vec2{X: pos.X + float64(dw)/2, Y: pos.Y + float64(dh)/2}
		center.Scale(ratio)
		pos = Vec2{X: center.X - float64(dw)/2, Y: center.Y - float64(dh)/2}
	} else {
		pos.Scale(ratio)
	}

	prev := v.zoom
	v.zoom = factor
	v.anim = nil
	v.bg.SetZoom(factor)
	if !v.bg.Repeats() {
		pos = clampPos(pos, v.displaySize(), v.ScrollingArea())
	}
	v.setTruePos(pos)
	v.RedrawDisplay()
	debugf("zoom %g -> %g, scrolling area now %v", prev, factor, v.ScrollingArea().Max)
	return nil
}

// Blit draws src onto the background at the given position in original,
// zoom 1 coordinates, keeping the zoomed pixels in sync, and returns the
// affected region in those coordinates. The display is not refreshed;
// call [Viewport.RedrawDisplay] when the drawn region may be visible.
func (v *Viewport) Blit(src Surface, at image.Point, srcArea *image.Rectangle) image.Rectangle {
	return v.bg.Blit(src, at, srcArea)
}

// SetDisplay replaces the display surface, after a window resize for
// example. The position is left alone: follow up with
// [Viewport.MoveOrCenterDisplay] and [Viewport.RedrawDisplay] to bring
// the new display back in bounds and paint it. It fails with
// [ErrInvalidBounds] when the new display is larger than the scrolling
// area of a non-repeating background.
func (v *Viewport) SetDisplay(display Surface) error {
	dw, dh := display.Size()
	if !v.bg.Repeats() {
		bw, bh := v.bg.Size()
		if dw > bw || dh > bh {
			return fmt.Errorf("scrollview: %dx%d display does not fit %dx%d scrolling area: %w",
				dw, dh, bw, bh, ErrInvalidBounds)
		}
	}
	v.display = display
	v.clearRects = v.clearRects[:0]
	return nil
}

// MoveOrCenterDisplay moves the display the minimum distance needed to
// lie inside the scrolling area again, centering it on any axis where it
// is larger than the area. Axes already in bounds keep their sub-pixel
// position. No-op on repeating backgrounds.
func (v *Viewport) MoveOrCenterDisplay() {
	if v.bg.Repeats() {
		return
	}
	v.setTruePos(clampPos(v.truePos, v.displaySize(), v.ScrollingArea()))
}

func (v *Viewport) displaySize() image.Point {
	w, h := v.display.Size()
	return image.Pt(w, h)
}
