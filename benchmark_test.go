package scrollview

import (
	"image"
	"image/color"
	"testing"
)

// setupBenchViewport returns a viewport over a 2048x2048 pattern background
// with a 256x256 display at the center. Software surfaces, so benchmarks
// measure the scroll bookkeeping and pixel moves, not GPU dispatch.
func setupBenchViewport(b *testing.B) *Viewport {
	b.Helper()
	v, err := New(patternSurface(2048, 2048), NewImageSurface(256, 256), Vec2{896, 896})
	if err != nil {
		b.Fatalf("New: %v", err)
	}
	return v
}

// --- Scroll Benchmarks ---

func BenchmarkScroll_SmallDelta(b *testing.B) {
	v := setupBenchViewport(b)
	deltas := [2]Vec2{{2, 0}, {-2, 0}}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.Scroll(deltas[i%2])
	}
}

func BenchmarkScroll_TwoStrips(b *testing.B) {
	v := setupBenchViewport(b)
	deltas := [2]Vec2{{3, 3}, {-3, -3}}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.Scroll(deltas[i%2])
	}
}

func BenchmarkScroll_FullRedraw(b *testing.B) {
	v := setupBenchViewport(b)
	// A display-sized delta leaves nothing to shift.
	deltas := [2]Vec2{{256, 0}, {-256, 0}}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.Scroll(deltas[i%2])
	}
}

func BenchmarkRedrawDisplay(b *testing.B) {
	v := setupBenchViewport(b)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.RedrawDisplay()
	}
}

// --- Sprite Benchmarks ---

func BenchmarkDrawSprites_100(b *testing.B) {
	v := setupBenchViewport(b)
	sprites := make([]Sprite, 100)
	for i := range sprites {
		x := 900 + (i%10)*24
		y := 900 + (i/10)*24
		sprites[i] = newTestSprite(image.Rect(x, y, x+16, y+16), color.RGBA{R: 255, A: 255})
	}
	v.DrawSprites(sprites...) // warmup: first call has no clears

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.DrawSprites(sprites...)
	}
}

// --- Surface Benchmarks ---

func BenchmarkScrollInPlace_1024(b *testing.B) {
	s := patternSurface(1024, 1024)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.ScrollInPlace(3, 3)
	}
}

// --- Tile Grid Benchmarks ---

// setupBenchTiled returns a tiled viewport over an 8x8 grid of 256x256
// tiles with a 256x256 display at the center.
func setupBenchTiled(b *testing.B) *Viewport {
	b.Helper()
	tiles := cutTiles(patternSurface(2048, 2048), 256)
	v, err := NewTiled(tiles, NewImageSurface(256, 256), Vec2{896, 896}, false)
	if err != nil {
		b.Fatalf("NewTiled: %v", err)
	}
	return v
}

func BenchmarkTiledScroll_SameTiles(b *testing.B) {
	v := setupBenchTiled(b)
	deltas := [2]Vec2{{2, 0}, {-2, 0}}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.Scroll(deltas[i%2])
	}
}

func BenchmarkTiledScroll_CrossingTiles(b *testing.B) {
	v := setupBenchTiled(b)
	// A tile-sized delta lands on a different tile range every time, so
	// each scroll recomposites the window.
	deltas := [2]Vec2{{256, 0}, {-256, 0}}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.Scroll(deltas[i%2])
	}
}
