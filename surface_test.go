package scrollview

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

// patternSurface returns a surface whose pixels encode their coordinates,
// so any misplaced blit shows up as a color mismatch.
func patternSurface(w, h int) *ImageSurface {
	s := NewImageSurface(w, h)
	img := s.RGBA()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x),
				G: uint8(y),
				B: uint8(x*7 + y*13),
				A: 255,
			})
		}
	}
	return s
}

// surfacesEqual reports whether two software surfaces have identical size
// and pixels.
func surfacesEqual(a, b *ImageSurface) bool {
	aw, ah := a.Size()
	bw, bh := b.Size()
	if aw != bw || ah != bh {
		return false
	}
	return bytes.Equal(a.RGBA().Pix, b.RGBA().Pix)
}

func pixelAt(s *ImageSurface, x, y int) color.RGBA {
	return s.RGBA().RGBAAt(x, y)
}

// fakeSurface is a Surface of a foreign implementation, for testing the
// mixed-implementation panic.
type fakeSurface struct{ Surface }

// --- Construction ---

func TestNewImageSurfaceSize(t *testing.T) {
	s := NewImageSurface(64, 48)
	w, h := s.Size()
	if w != 64 || h != 48 {
		t.Errorf("Size() = %dx%d, want 64x48", w, h)
	}
}

func TestNewImageSurfacePanicsOnBadSize(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, 10}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewImageSurface(%d, %d) did not panic", size[0], size[1])
				}
			}()
			NewImageSurface(size[0], size[1])
		}()
	}
}

func TestNewImageSurfaceFromNormalizesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 14, 12))
	src.SetRGBA(10, 10, color.RGBA{R: 200, A: 255})
	src.SetRGBA(13, 11, color.RGBA{B: 200, A: 255})

	s := NewImageSurfaceFrom(src)
	w, h := s.Size()
	if w != 4 || h != 2 {
		t.Fatalf("Size() = %dx%d, want 4x2", w, h)
	}
	if got := pixelAt(s, 0, 0); got != (color.RGBA{R: 200, A: 255}) {
		t.Errorf("pixel (0,0) = %v, want translated src (10,10)", got)
	}
	if got := pixelAt(s, 3, 1); got != (color.RGBA{B: 200, A: 255}) {
		t.Errorf("pixel (3,1) = %v, want translated src (13,11)", got)
	}
}

// --- Fill and Copy ---

func TestImageSurfaceFill(t *testing.T) {
	s := NewImageSurface(8, 8)
	s.Fill(color.RGBA{R: 255, A: 255})
	for _, p := range []image.Point{{0, 0}, {7, 7}, {3, 5}} {
		if got := pixelAt(s, p.X, p.Y); got != (color.RGBA{R: 255, A: 255}) {
			t.Errorf("pixel %v = %v, want red", p, got)
		}
	}
}

func TestImageSurfaceCopyIsDeep(t *testing.T) {
	orig := patternSurface(16, 16)
	cp := orig.Copy().(*ImageSurface)
	if !surfacesEqual(orig, cp) {
		t.Fatal("copy differs from original")
	}

	orig.Fill(color.RGBA{A: 255})
	if surfacesEqual(orig, cp) {
		t.Error("mutating the original changed the copy")
	}
}

// --- Blit ---

func TestImageSurfaceBlit(t *testing.T) {
	tests := []struct {
		name    string
		at      image.Point
		srcArea *image.Rectangle
		expect  image.Rectangle
	}{
		{"inside", image.Pt(10, 20), nil, image.Rect(10, 20, 18, 24)},
		{"clipped right-bottom", image.Pt(28, 30), nil, image.Rect(28, 30, 32, 32)},
		{"clipped left-top", image.Pt(-3, -1), nil, image.Rect(0, 0, 5, 3)},
		{"fully outside", image.Pt(40, 40), nil, image.Rectangle{}},
		{"source area", image.Pt(5, 5), &image.Rectangle{Min: image.Pt(2, 1), Max: image.Pt(6, 3)}, image.Rect(5, 5, 9, 7)},
		{"source area past top-left", image.Pt(10, 10), &image.Rectangle{Min: image.Pt(-2, -3), Max: image.Pt(6, 2)}, image.Rect(12, 13, 18, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := NewImageSurface(32, 32)
			src := patternSurface(8, 4)
			got := dst.Blit(src, tt.at, tt.srcArea)
			if got != tt.expect {
				t.Fatalf("Blit affected = %v, want %v", got, tt.expect)
			}
			if got.Empty() {
				return
			}
			// Every affected pixel must match its source pixel.
			srcMin := image.Pt(0, 0)
			if tt.srcArea != nil {
				srcMin = tt.srcArea.Min
			}
			for y := got.Min.Y; y < got.Max.Y; y++ {
				for x := got.Min.X; x < got.Max.X; x++ {
					sx := srcMin.X + x - tt.at.X
					sy := srcMin.Y + y - tt.at.Y
					if want := pixelAt(src, sx, sy); pixelAt(dst, x, y) != want {
						t.Fatalf("pixel (%d,%d) = %v, want src (%d,%d) = %v",
							x, y, pixelAt(dst, x, y), sx, sy, want)
					}
				}
			}
		})
	}
}

func TestImageSurfaceBlitTrimsSourceArea(t *testing.T) {
	dst := NewImageSurface(32, 32)
	src := patternSurface(8, 8)

	// Area extends past the source's right edge: the overlap is 4x8.
	area := image.Rect(4, 0, 12, 8)
	got := dst.Blit(src, image.Pt(0, 0), &area)
	if want := image.Rect(0, 0, 4, 8); got != want {
		t.Errorf("affected = %v, want %v", got, want)
	}
}

func TestImageSurfaceBlitAnchorsTrimmedMinEdge(t *testing.T) {
	dst := NewImageSurface(32, 32)
	dst.Fill(color.RGBA{G: 255, A: 255})
	src := patternSurface(8, 8)

	// Area overhangs the source's top-left by (4, 4). The surviving
	// pixels keep the destinations they were headed for instead of
	// sliding up to the anchor point.
	area := image.Rect(-4, -4, 8, 8)
	got := dst.Blit(src, image.Pt(10, 10), &area)
	if want := image.Rect(14, 14, 22, 22); got != want {
		t.Fatalf("affected = %v, want %v", got, want)
	}
	if got, want := pixelAt(dst, 14, 14), pixelAt(src, 0, 0); got != want {
		t.Errorf("pixel (14,14) = %v, want src (0,0) = %v", got, want)
	}
	if got := pixelAt(dst, 13, 13); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("pixel (13,13) = %v, want untouched background", got)
	}
}

func TestImageSurfaceBlitAlphaCompositing(t *testing.T) {
	dst := NewImageSurface(4, 4)
	dst.Fill(color.RGBA{G: 255, A: 255})

	// Source is transparent except one opaque pixel.
	src := NewImageSurface(2, 2)
	src.RGBA().SetRGBA(0, 0, color.RGBA{R: 255, A: 255})

	dst.Blit(src, image.Pt(1, 1), nil)
	if got := pixelAt(dst, 1, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("opaque src pixel = %v, want red", got)
	}
	if got := pixelAt(dst, 2, 2); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("transparent src pixel overwrote destination: %v", got)
	}
}

func TestImageSurfaceBlitPanicsOnMixedImplementations(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Blit with a foreign Surface implementation did not panic")
		}
	}()
	NewImageSurface(8, 8).Blit(fakeSurface{}, image.Point{}, nil)
}

// --- Scale ---

func TestImageSurfaceScaleNearest(t *testing.T) {
	s := NewImageSurface(2, 2)
	img := s.RGBA()
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 255, G: 255, A: 255})

	big := s.Scale(4, 4).(*ImageSurface)
	// Each source pixel becomes a 2x2 block.
	blocks := []struct {
		x, y   int
		expect color.RGBA
	}{
		{0, 0, color.RGBA{R: 255, A: 255}},
		{1, 1, color.RGBA{R: 255, A: 255}},
		{2, 0, color.RGBA{G: 255, A: 255}},
		{3, 1, color.RGBA{G: 255, A: 255}},
		{0, 2, color.RGBA{B: 255, A: 255}},
		{2, 2, color.RGBA{R: 255, G: 255, A: 255}},
		{3, 3, color.RGBA{R: 255, G: 255, A: 255}},
	}
	for _, b := range blocks {
		if got := pixelAt(big, b.x, b.y); got != b.expect {
			t.Errorf("scaled pixel (%d,%d) = %v, want %v", b.x, b.y, got, b.expect)
		}
	}
}

func TestImageSurfaceScaleRoundTrip(t *testing.T) {
	orig := patternSurface(16, 16)
	back := orig.Scale(32, 32).(*ImageSurface).Scale(16, 16).(*ImageSurface)
	if !surfacesEqual(orig, back) {
		t.Error("2x then 1/2 nearest-neighbor scale did not restore the original")
	}
}

func TestImageSurfaceScaleLeavesReceiver(t *testing.T) {
	orig := patternSurface(8, 8)
	ref := orig.Copy().(*ImageSurface)
	orig.Scale(16, 16)
	if !surfacesEqual(orig, ref) {
		t.Error("Scale mutated the receiver")
	}
}

// --- ScrollInPlace ---

func TestImageSurfaceScrollInPlace(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int
	}{
		{"right", 3, 0},
		{"left", -3, 0},
		{"down", 0, 2},
		{"up", 0, -2},
		{"down-right", 3, 2},
		{"up-left", -3, -2},
		{"up-right", 3, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := patternSurface(8, 6)
			orig := s.Copy().(*ImageSurface)
			s.ScrollInPlace(tt.dx, tt.dy)

			moved := image.Rect(0, 0, 8, 6).Intersect(image.Rect(0, 0, 8, 6).Add(image.Pt(tt.dx, tt.dy)))
			for y := moved.Min.Y; y < moved.Max.Y; y++ {
				for x := moved.Min.X; x < moved.Max.X; x++ {
					want := pixelAt(orig, x-tt.dx, y-tt.dy)
					if got := pixelAt(s, x, y); got != want {
						t.Fatalf("pixel (%d,%d) = %v, want %v from (%d,%d)",
							x, y, got, want, x-tt.dx, y-tt.dy)
					}
				}
			}
		})
	}
}

func TestImageSurfaceScrollInPlaceNoop(t *testing.T) {
	for _, d := range []image.Point{{0, 0}, {8, 0}, {0, 6}, {-8, 0}, {100, 100}} {
		s := patternSurface(8, 6)
		ref := s.Copy().(*ImageSurface)
		s.ScrollInPlace(d.X, d.Y)
		if !surfacesEqual(s, ref) {
			t.Errorf("ScrollInPlace(%d, %d) changed content, want no-op", d.X, d.Y)
		}
	}
}
