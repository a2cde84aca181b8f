// Package scrollview scrolls a display-sized window over a larger 2D
// background, repainting only what each movement exposed.
//
// A [Viewport] tracks a sub-pixel position over a background, clamps it to
// the scrollable bounds, shifts the display's pixels in place on every
// scroll, and composites foreground sprites with clear/redraw bookkeeping.
// Each operation returns the display rectangles it touched so the caller
// can limit its presentation update to those regions.
//
// # Quick start
//
//	background := scrollview.NewImageSurface(1200, 1200)
//	// ... draw the world onto background ...
//	display := scrollview.NewImageSurface(400, 400)
//
//	view, err := scrollview.New(background, display, scrollview.Vec2{})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Once per frame:
//	dirty := view.Scroll(scrollview.Vec2{X: 3.5})
//	dirty = append(dirty, view.DrawSprites(player)...)
//	// Present display, restricted to the dirty rectangles.
//
// # Surfaces
//
// All drawing goes through the [Surface] interface. [ImageSurface] wraps
// an image.RGBA and runs anywhere, including tests and servers with no
// GPU. [EbitenSurface] wraps an *ebiten.Image for viewports living inside
// an [Ebitengine] game; wrap the display in one and blit it to the screen
// each frame. A viewport must be given surfaces of a single
// implementation throughout.
//
// # Tile grids
//
// [NewTiled] scrolls over a grid of equally sized tiles instead of one
// bitmap. Only the tiles under the display are composited, and in
// repeating mode the grid wraps around in both directions for an infinite
// background. See [TileBackground].
//
// # Zoom and animation
//
// [Viewport.SetZoom] rescales the background from its unscaled original
// and keeps the position consistent. [Viewport.ScrollTo] and
// [Viewport.CenterOn] animate the position over time with easing curves
// from [gween], advanced by [Viewport.Update].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package scrollview
