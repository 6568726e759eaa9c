// Package ebitenfx provides the ebiten-backed collaborators for the
// trigger scheduler: spawned effect sprites, audio channels over ebiten
// players, a camera shake generator, and procedural PCM clips.
package ebitenfx

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// animation is a frame animator for an effect spritesheet. Frames are
// laid out left-to-right, top-to-bottom.
type animation struct {
	frames      []*ebiten.Image
	ticksPerFrm int
	loop        bool

	current int
	tick    int
	done    bool
}

func newAnimation(sheet *ebiten.Image, frameW, frameH, fps int, loop bool) *animation {
	if sheet == nil || frameW <= 0 || frameH <= 0 {
		return &animation{done: true}
	}
	if fps <= 0 {
		fps = 12
	}
	bounds := sheet.Bounds()
	cols := bounds.Dx() / frameW
	rows := bounds.Dy() / frameH
	if cols == 0 || rows == 0 {
		return &animation{done: true}
	}

	frames := make([]*ebiten.Image, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			sx := bounds.Min.X + col*frameW
			sy := bounds.Min.Y + row*frameH
			r := image.Rect(sx, sy, sx+frameW, sy+frameH)
			frames = append(frames, sheet.SubImage(r).(*ebiten.Image))
		}
	}

	ticks := int(math.Max(1, math.Round(60.0/float64(fps))))
	return &animation{
		frames:      frames,
		ticksPerFrm: ticks,
		loop:        loop,
	}
}

// update advances the animation by one tick. Non-looping animations set
// done after their last frame has been shown.
func (a *animation) update() {
	if a.done || len(a.frames) == 0 {
		return
	}
	a.tick++
	if a.tick < a.ticksPerFrm {
		return
	}
	a.tick = 0
	a.current++
	if a.current < len(a.frames) {
		return
	}
	if a.loop {
		a.current = 0
		return
	}
	a.current = len(a.frames) - 1
	a.done = true
}

func (a *animation) frame() *ebiten.Image {
	if len(a.frames) == 0 {
		return nil
	}
	return a.frames[a.current]
}
