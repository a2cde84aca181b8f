// stress bounces several hundred sprites over a 2048x2048 background
// while the viewport glides between random waypoints on an eased tween.
// A stress test for the incremental scroll path: the overlay shows how
// many display pixels each tick actually repaints.
package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/colornames"

	"github.com/aarnot/scrollview"
)

const (
	windowTitle = "scrollview — Stress Demo"
	screenW     = 1280
	screenH     = 720
	worldSize   = 2048
	cellSize    = 128
	count       = 300
	spriteSide  = 12
	glideTime   = 2.5 // seconds per waypoint
	dt          = 1.0 / 60
)

// mover is a bouncing square. All movers of one color share an image.
type mover struct {
	pos scrollview.Vec2
	vel scrollview.Vec2
	img *scrollview.EbitenSurface
}

func (m *mover) Bounds() image.Rectangle {
	p := m.pos.Round()
	return image.Rectangle{Min: p, Max: p.Add(image.Pt(spriteSide, spriteSide))}
}

func (m *mover) Image() scrollview.Surface { return m.img }

func (m *mover) update() {
	m.pos = m.pos.Add(m.vel)
	const max = worldSize - spriteSide
	if m.pos.X < 0 {
		m.pos.X, m.vel.X = 0, -m.vel.X
	} else if m.pos.X > max {
		m.pos.X, m.vel.X = max, -m.vel.X
	}
	if m.pos.Y < 0 {
		m.pos.Y, m.vel.Y = 0, -m.vel.Y
	} else if m.pos.Y > max {
		m.pos.Y, m.vel.Y = max, -m.vel.Y
	}
}

type game struct {
	view      *scrollview.Viewport
	display   *scrollview.EbitenSurface
	movers    []*mover
	sprites   []scrollview.Sprite
	repainted int
}

func newGame() (*game, error) {
	display := scrollview.NewEbitenSurface(screenW, screenH)
	view, err := scrollview.New(checkerBackground(), display, scrollview.Vec2{
		X: (worldSize - screenW) / 2,
		Y: (worldSize - screenH) / 2,
	})
	if err != nil {
		return nil, err
	}

	palette := []*scrollview.EbitenSurface{
		spriteImage(colornames.Orange),
		spriteImage(colornames.Deepskyblue),
		spriteImage(colornames.Yellowgreen),
		spriteImage(colornames.Hotpink),
		spriteImage(colornames.White),
	}
	movers := make([]*mover, count)
	sprites := make([]scrollview.Sprite, count)
	for i := range movers {
		movers[i] = &mover{
			pos: scrollview.Vec2{
				X: rand.Float64() * (worldSize - spriteSide),
				Y: rand.Float64() * (worldSize - spriteSide),
			},
			vel: scrollview.Vec2{
				X: (rand.Float64() - 0.5) * 6,
				Y: (rand.Float64() - 0.5) * 6,
			},
			img: palette[i%len(palette)],
		}
		sprites[i] = movers[i]
	}
	return &game{view: view, display: display, movers: movers, sprites: sprites}, nil
}

func spriteImage(c color.RGBA) *scrollview.EbitenSurface {
	img := scrollview.NewEbitenSurface(spriteSide, spriteSide)
	img.Fill(c)
	return img
}

// checkerBackground paints alternating dark cells so scrolling motion is
// visible at a glance.
func checkerBackground() *scrollview.EbitenSurface {
	bg := scrollview.NewEbitenSurface(worldSize, worldSize)
	dark := scrollview.NewEbitenSurface(cellSize, cellSize)
	dark.Fill(colornames.Darkslategray)
	darker := scrollview.NewEbitenSurface(cellSize, cellSize)
	darker.Fill(colornames.Midnightblue)

	for x := 0; x < worldSize; x += cellSize {
		for y := 0; y < worldSize; y += cellSize {
			cell := dark
			if (x/cellSize+y/cellSize)%2 == 0 {
				cell = darker
			}
			bg.Blit(cell, image.Pt(x, y), nil)
		}
	}
	dark.Dispose()
	darker.Dispose()
	return bg
}

func (g *game) Update() error {
	// Glide to a new waypoint whenever the previous tween finishes.
	if !g.view.Animating() {
		target := scrollview.Vec2{
			X: rand.Float64() * worldSize,
			Y: rand.Float64() * worldSize,
		}
		g.view.CenterOn(target, glideTime, ease.InOutQuad)
	}
	dirty := g.view.Update(dt)

	for _, m := range g.movers {
		m.update()
	}
	dirty = append(dirty, g.view.DrawSprites(g.sprites...)...)

	g.repainted = 0
	for _, r := range dirty {
		g.repainted += r.Dx() * r.Dy()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.display.Image(), nil)
	msg := fmt.Sprintf("FPS: %.1f  sprites: %d\nposition: %v\nrepainted: %d px (display is %d px)",
		ebiten.ActualFPS(), count, g.view.DisplayPos(), g.repainted, screenW*screenH)
	ebitenutil.DebugPrintAt(screen, msg, 4, 4)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle(windowTitle)

	g, err := newGame()
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
