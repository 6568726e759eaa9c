// demo is a small playable scene exercising the trigger stack: a fake
// animation state machine drives two sibling trigger schedulers on one
// character, sharing a channel pool, with config hot reload.
//
// Controls: arrow keys move (Run node), J attacks, K takes a hit.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/colornames"

	"github.com/milk9111/nodefx/audio"
	"github.com/milk9111/nodefx/component"
	"github.com/milk9111/nodefx/ebitenfx"
	"github.com/milk9111/nodefx/prefabs"
	"github.com/milk9111/nodefx/system"
	"github.com/milk9111/nodefx/validate"
)

const (
	baseWidth  = 640
	baseHeight = 360
)

func main() {
	configPath := flag.String("config", "", "trigger config YAML to load and hot-reload (default: built-in config)")
	dumpGraph := flag.String("dumpgraph", "", "write the demo machine's graph description to this file and exit")
	flag.Parse()

	machine := newDemoMachine("player")

	if *dumpGraph != "" {
		if err := validate.DumpGraph(*dumpGraph, machine.Name(), machine.nodeNames()); err != nil {
			log.Fatalf("demo: %v", err)
		}
		fmt.Printf("wrote %s\n", *dumpGraph)
		return
	}

	game, err := newGame(machine, *configPath)
	if err != nil {
		log.Fatalf("demo: %v", err)
	}
	defer game.close()

	ebiten.SetWindowSize(baseWidth*2, baseHeight*2)
	ebiten.SetWindowTitle("nodefx demo")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

type Game struct {
	machine *demoMachine
	combat  *system.Scheduler
	motion  *system.Scheduler

	spawner *ebitenfx.Spawner
	shaker  *ebitenfx.Shaker

	configPath string
	watcher    *prefabs.Watcher

	x, y   float64
	frames int
}

func newGame(machine *demoMachine, configPath string) (*Game, error) {
	ctx := eaudio.NewContext(48000)

	clips := ebitenfx.NewClipLibrary()
	clips.Register("slash", ebitenfx.Tone(880, 200*time.Millisecond, 48000))
	clips.Register("thud", ebitenfx.Tone(110, 300*time.Millisecond, 48000))
	clips.Register("whiff", ebitenfx.Tone(600, 150*time.Millisecond, 48000))
	clips.Register("steps", ebitenfx.Tone(220, 150*time.Millisecond, 48000))

	pool, err := audio.NewChannelPool(
		ebitenfx.NewPlayerChannel(ctx, clips),
		ebitenfx.NewPlayerChannel(ctx, clips),
		ebitenfx.NewPlayerChannel(ctx, clips),
	)
	if err != nil {
		return nil, err
	}

	spawner := ebitenfx.NewSpawner()
	spawner.Register("slash", ebitenfx.EffectDef{Sheet: makeSheet(6, colornames.Gold), FrameW: 16, FrameH: 16, FPS: 20, Scale: 3})
	spawner.Register("flash", ebitenfx.EffectDef{Sheet: makeSheet(4, colornames.Orangered), FrameW: 16, FrameH: 16, FPS: 16, Scale: 4})
	spawner.Register("smoke", ebitenfx.EffectDef{Sheet: makeSheet(8, colornames.Lightgray), FrameW: 16, FrameH: 16, FPS: 12, Scale: 2})

	shaker := ebitenfx.NewShaker()

	g := &Game{
		machine:    machine,
		spawner:    spawner,
		shaker:     shaker,
		configPath: configPath,
		x:          baseWidth / 2,
		y:          baseHeight / 2,
	}

	collab := system.Collaborators{
		Spawner: spawner,
		Pool:    pool,
		Camera:  shaker,
		Anchor:  func() (float64, float64) { return g.x, g.y },
	}

	combatCfg, motionCfg, err := loadConfigs(configPath)
	if err != nil {
		return nil, err
	}

	combatEntries, combatExits, err := combatCfg.Compile()
	if err != nil {
		return nil, err
	}
	g.combat, err = system.NewScheduler(machine, combatEntries, combatExits, collab)
	if err != nil {
		return nil, err
	}

	motionEntries, motionExits, err := motionCfg.Compile()
	if err != nil {
		return nil, err
	}
	g.motion, err = system.NewScheduler(machine, motionEntries, motionExits, collab)
	if err != nil {
		return nil, err
	}

	machine.subscribe(g.combat)
	machine.subscribe(g.motion)

	if configPath != "" {
		watcher, err := prefabs.NewWatcher(filepath.Dir(configPath))
		if err != nil {
			log.Printf("demo: config watch disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	return g, nil
}

func (g *Game) close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollConfig()

	dx, dy := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= 2
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += 2
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= 2
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += 2
	}
	g.x += dx
	g.y += dy

	if inpututil.IsKeyJustPressed(ebiten.KeyJ) {
		g.machine.trigger("Attack", 30)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		g.machine.trigger("Hurt", 18)
	}
	g.machine.update(dx != 0 || dy != 0)

	g.combat.Update()
	g.motion.Update()
	g.spawner.Update()
	g.shaker.Update()

	return nil
}

func (g *Game) pollConfig() {
	if g.watcher == nil {
		return
	}
	select {
	case name := <-g.watcher.Events:
		if filepath.Clean(name) != filepath.Clean(g.configPath) {
			return
		}
		combatCfg, motionCfg, err := loadConfigs(g.configPath)
		if err != nil {
			log.Printf("demo: reload: %v", err)
			return
		}
		if err := reload(g.combat, combatCfg); err != nil {
			log.Printf("demo: reload: %v", err)
			return
		}
		if err := reload(g.motion, motionCfg); err != nil {
			log.Printf("demo: reload: %v", err)
			return
		}
		log.Printf("demo: reloaded %s", g.configPath)
	case err := <-g.watcher.Errors:
		log.Printf("demo: config watch: %v", err)
	default:
	}
}

func reload(s *system.Scheduler, cfg *prefabs.TriggerSpec) error {
	entries, exits, err := cfg.Compile()
	if err != nil {
		return err
	}
	s.Reload(entries, exits)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	camX, camY := g.shaker.Offset()

	body := colornames.Steelblue
	switch g.machine.current {
	case "Attack":
		body = colornames.Gold
	case "Hurt":
		body = colornames.Orangered
	}
	ebitenutil.DrawRect(screen, g.x-12-camX, g.y-16-camY, 24, 32, body)

	g.spawner.Draw(screen, camX, camY)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"node: %s    tasks: %d    effects: %d    FPS: %.1f\narrows move, J attack, K hurt",
		g.machine.current, g.combat.Pending()+g.motion.Pending(), g.spawner.Active(), ebiten.ActualFPS()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

// makeSheet builds a horizontal strip of frames with a simple grow-fade
// pattern so the demo needs no image assets.
func makeSheet(frames int, c color.RGBA) *ebiten.Image {
	sheet := ebiten.NewImage(frames*16, 16)
	for i := 0; i < frames; i++ {
		size := 4 + 12*i/frames
		off := float64(i*16 + (16-size)/2)
		ebitenutil.DrawRect(sheet, off, float64((16-size)/2), float64(size), float64(size), c)
	}
	return sheet
}

// demoMachine is a stand-in for the host animation system: a trivial
// state machine that reports node enter/exit events to its subscribers.
type demoMachine struct {
	name    string
	current string
	left    int

	onEnter []func(system.Machine, component.NodeID)
	onExit  []func(system.Machine, component.NodeID)
}

func newDemoMachine(name string) *demoMachine {
	return &demoMachine{name: name, current: "Idle"}
}

func (m *demoMachine) Name() string { return m.name }

func (m *demoMachine) nodeNames() []string {
	return []string{"Idle", "Run", "Attack", "Hurt"}
}

func (m *demoMachine) subscribe(s *system.Scheduler) {
	m.onEnter = append(m.onEnter, s.OnNodeEnter)
	m.onExit = append(m.onExit, s.OnNodeExit)
	// The scheduler only sees events from now on; seed the current node.
	s.OnNodeEnter(m, component.HashNodeName(m.current))
}

// trigger switches to a timed node for the given number of frames.
func (m *demoMachine) trigger(node string, frames int) {
	m.set(node)
	m.left = frames
}

func (m *demoMachine) update(moving bool) {
	if m.left > 0 {
		m.left--
		if m.left > 0 {
			return
		}
		// Timed node over, fall back to locomotion.
	}

	switch {
	case moving && m.current != "Run":
		m.set("Run")
	case !moving && m.current != "Idle":
		m.set("Idle")
	}
}

func (m *demoMachine) set(node string) {
	if node == m.current {
		return
	}
	prev := component.HashNodeName(m.current)
	for _, exit := range m.onExit {
		exit(m, prev)
	}
	m.current = node
	next := component.HashNodeName(node)
	for _, enter := range m.onEnter {
		enter(m, next)
	}
}

// loadConfigs returns the combat and motion trigger configs, either from
// the authored file (combat) plus the built-in motion config, or both
// built-in when no path is given.
func loadConfigs(path string) (combat, motion *prefabs.TriggerSpec, err error) {
	if path != "" {
		combat, err = prefabs.LoadTriggerSpec(path)
		if err != nil {
			return nil, nil, err
		}
		return combat, builtinMotion(), nil
	}
	return builtinCombat(), builtinMotion(), nil
}

func builtinCombat() *prefabs.TriggerSpec {
	vol := func(v float64) *float64 { return &v }
	return &prefabs.TriggerSpec{
		Name: "demo_combat",
		Entries: []prefabs.EntryRuleSpec{
			{
				Node:          "Attack",
				Effect:        "slash",
				SpawnDelay:    0.1,
				AbortDeadline: 0.4,
				Sound:         "slash",
				Volume:        vol(0.8),
				Shake:         prefabs.ShakeSpec{Delay: 0.1, Duration: 0.25, Frequency: 14, Amplitude: 3},
			},
			{
				Node:   "Hurt",
				Effect: "flash",
				Sound:  "thud",
				Shake:  prefabs.ShakeSpec{Duration: 0.3, Frequency: 9, Amplitude: 5},
			},
		},
		Exits: []prefabs.ExitRuleSpec{
			{Node: "Attack", Effect: "smoke", SpawnDelay: 0.05, Sound: "whiff", Volume: vol(0.4)},
		},
	}
}

func builtinMotion() *prefabs.TriggerSpec {
	vol := func(v float64) *float64 { return &v }
	return &prefabs.TriggerSpec{
		Name: "demo_motion",
		Entries: []prefabs.EntryRuleSpec{
			{Node: "Run", Sound: "steps", SoundDelay: 0.05, Volume: vol(0.5), Loop: true},
		},
	}
}
