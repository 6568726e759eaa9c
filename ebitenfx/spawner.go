package ebitenfx

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/nodefx/system"
)

// fadeFrames is the length of the fade-out a shut-down effect plays
// instead of vanishing.
const fadeFrames = 12

// EffectDef describes a spawnable effect: a spritesheet strip and how to
// play it. Looping effects live until they are shut down; one-shot
// effects end with their animation.
type EffectDef struct {
	Sheet  *ebiten.Image
	FrameW int
	FrameH int
	FPS    int
	Loop   bool
	Scale  float64
}

// Instance is one spawned effect.
type Instance struct {
	x, y  float64
	scale float64
	anim  *animation
	fade  int
	dead  bool
}

// Alive reports whether the instance still exists.
func (i *Instance) Alive() bool {
	return !i.dead
}

// Shutdown starts a short fade-out instead of removing the effect
// abruptly. Idempotent.
func (i *Instance) Shutdown() {
	if i.dead || i.fade > 0 {
		return
	}
	i.fade = fadeFrames
}

func (i *Instance) update() {
	if i.dead {
		return
	}
	if i.fade > 0 {
		i.fade--
		if i.fade == 0 {
			i.dead = true
			return
		}
	}
	i.anim.update()
	if i.anim.done {
		i.dead = true
	}
}

func (i *Instance) draw(screen *ebiten.Image, camX, camY float64) {
	if i.dead {
		return
	}
	frame := i.anim.frame()
	if frame == nil {
		return
	}

	var op ebiten.DrawImageOptions
	op.Filter = ebiten.FilterNearest
	w := float64(frame.Bounds().Dx()) * i.scale
	h := float64(frame.Bounds().Dy()) * i.scale
	op.GeoM.Scale(i.scale, i.scale)
	op.GeoM.Translate(i.x-w/2-camX, i.y-h/2-camY)
	if i.fade > 0 {
		op.ColorScale.ScaleAlpha(float32(i.fade) / fadeFrames)
	}
	screen.DrawImage(frame, &op)
}

// Spawner instantiates effect sprites by handle and keeps them updated
// and drawn until they finish. It implements the scheduler's
// EffectSpawner.
type Spawner struct {
	defs      map[string]EffectDef
	instances []*Instance
}

var _ system.EffectSpawner = (*Spawner)(nil)

func NewSpawner() *Spawner {
	return &Spawner{defs: make(map[string]EffectDef)}
}

// Register binds an effect handle to its definition. Re-registering a
// handle replaces it.
func (s *Spawner) Register(handle string, def EffectDef) {
	s.defs[handle] = def
}

// Spawn instantiates the effect centered at the given world position.
// An unknown handle is logged and skipped; only that branch degrades,
// the caller keeps running.
func (s *Spawner) Spawn(handle string, x, y float64) system.EffectInstance {
	def, ok := s.defs[handle]
	if !ok {
		log.Printf("ebitenfx: unknown effect handle %q", handle)
		return nil
	}

	scale := def.Scale
	if scale <= 0 {
		scale = 1
	}
	inst := &Instance{
		x:     x,
		y:     y,
		scale: scale,
		anim:  newAnimation(def.Sheet, def.FrameW, def.FrameH, def.FPS, def.Loop),
	}
	s.instances = append(s.instances, inst)
	return inst
}

// Update advances all live instances and drops finished ones. Call once
// per game update.
func (s *Spawner) Update() {
	n := 0
	for _, inst := range s.instances {
		inst.update()
		if !inst.dead {
			s.instances[n] = inst
			n++
		}
	}
	for i := n; i < len(s.instances); i++ {
		s.instances[i] = nil
	}
	s.instances = s.instances[:n]
}

// Draw renders all live instances with the given camera offset.
func (s *Spawner) Draw(screen *ebiten.Image, camX, camY float64) {
	for _, inst := range s.instances {
		inst.draw(screen, camX, camY)
	}
}

// Active returns the number of live effect instances.
func (s *Spawner) Active() int {
	return len(s.instances)
}
