package scrollview

import (
	"image"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll tweens for the viewport X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// ScrollTo starts animating the display's top-left toward the given
// background position over duration seconds, advanced by [Viewport.Update].
// It replaces any animation already running; a zoom change cancels it.
func (v *Viewport) ScrollTo(target Vec2, duration float32, easeFn ease.TweenFunc) {
	v.anim = &scrollAnim{
		tweenX: gween.New(float32(v.truePos.X), float32(target.X), duration, easeFn),
		tweenY: gween.New(float32(v.truePos.Y), float32(target.Y), duration, easeFn),
	}
}

// CenterOn starts animating the display so that point ends up at its
// center: an animated [Viewport.Center].
func (v *Viewport) CenterOn(point Vec2, duration float32, easeFn ease.TweenFunc) {
	v.ScrollTo(v.CenteredPos(point), duration, easeFn)
}

// Animating reports whether a scroll animation is in progress.
func (v *Viewport) Animating() bool {
	return v.anim != nil
}

// Update advances the active scroll animation by dt seconds and scrolls
// the display to the tweened position, returning the display regions that
// changed. Without an active animation it returns nil. Clamping applies
// as usual, so a target outside the scrolling area settles on its edge.
func (v *Viewport) Update(dt float32) []image.Rectangle {
	if v.anim == nil {
		return nil
	}
	pos := v.truePos
	if !v.anim.doneX {
		val, done := v.anim.tweenX.Update(dt)
		pos.X = float64(val)
		v.anim.doneX = done
	}
	if !v.anim.doneY {
		val, done := v.anim.tweenY.Update(dt)
		pos.Y = float64(val)
		v.anim.doneY = done
	}
	if v.anim.doneX && v.anim.doneY {
		v.anim = nil
	}
	return v.Scroll(pos.Sub(v.truePos))
}
