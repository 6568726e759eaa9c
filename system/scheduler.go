// Package system contains the trigger scheduler: it watches node
// enter/exit events from a character's animation state machine and runs
// the delayed, cancelable effect tasks configured for each node.
package system

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/nodefx/audio"
	"github.com/milk9111/nodefx/component"
)

const (
	// tps is the fixed update rate the scheduler is driven at.
	tps = 60
	// pollFrames is the fixed interval at which watch phases re-check
	// node residency and channel state. Cancellation latency is bounded
	// by one poll interval.
	pollFrames = 6
)

// frames converts a delay in seconds to whole update ticks.
func frames(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	f := int(math.Round(seconds * tps))
	if f < 1 {
		f = 1
	}
	return f
}

// Machine identifies the animation state machine a scheduler is bound
// to. Events carry the emitting machine so a miswired component is
// caught immediately instead of silently reacting to a stranger's nodes.
type Machine interface {
	Name() string
}

// EffectInstance is a spawned visual effect.
type EffectInstance interface {
	// Alive reports whether the instance still exists.
	Alive() bool
	// Shutdown requests graceful early termination.
	Shutdown()
}

// EffectSpawner instantiates a visual effect anchored at a world
// position.
type EffectSpawner interface {
	Spawn(handle string, x, y float64) EffectInstance
}

// CameraShaker applies a camera shake impulse. Once issued a shake runs
// its full duration.
type CameraShaker interface {
	Shake(frequency, amplitude, duration float64)
}

// AnchorFunc reports the character's current anchor position, used to
// place spawned effects.
type AnchorFunc func() (x, y float64)

// Collaborators are the engine-side services a scheduler calls out to.
// All fields are required; a missing collaborator is a broken authoring
// setup and fails construction.
type Collaborators struct {
	Spawner EffectSpawner
	Pool    *audio.ChannelPool
	Camera  CameraShaker
	Anchor  AnchorFunc
}

// Scheduler is one trigger component on a character. A character may own
// several independent schedulers, each with its own config, all sharing
// the character's channel pool. It is driven from the game's single
// update thread: event handlers do their bookkeeping synchronously and
// Update advances every pending task by one frame.
type Scheduler struct {
	machine Machine
	active  *component.ActiveNodes
	entries []component.EntrySpec
	exits   []component.ExitSpec

	spawner EffectSpawner
	pool    *audio.ChannelPool
	camera  CameraShaker
	anchor  AnchorFunc

	tasks []task
}

func NewScheduler(m Machine, entries []component.EntrySpec, exits []component.ExitSpec, c Collaborators) (*Scheduler, error) {
	if m == nil {
		return nil, errors.New("system: scheduler needs a state machine")
	}
	if c.Spawner == nil {
		return nil, errors.New("system: scheduler needs an effect spawner")
	}
	if c.Pool == nil {
		return nil, errors.New("system: scheduler needs an audio channel pool")
	}
	if c.Camera == nil {
		return nil, errors.New("system: scheduler needs a camera shaker")
	}
	if c.Anchor == nil {
		return nil, errors.New("system: scheduler needs an anchor func")
	}
	return &Scheduler{
		machine: m,
		active:  component.NewActiveNodes(),
		entries: entries,
		exits:   exits,
		spawner: c.Spawner,
		pool:    c.Pool,
		camera:  c.Camera,
		anchor:  c.Anchor,
	}, nil
}

// OnNodeEnter handles an "entered node" event from the host machine.
// It records residency and launches one independent task per configured
// branch of the first matching entry rule: effect spawn, sound, and
// camera shake. None of the tasks blocks the others or the caller.
func (s *Scheduler) OnNodeEnter(src Machine, id component.NodeID) {
	s.checkSource(src)
	s.active.Enter(id)

	spec, ok := s.entrySpec(id)
	if !ok {
		return
	}
	if spec.Effect != "" {
		s.tasks = append(s.tasks, &entrySpawnTask{spec: spec, wait: frames(spec.SpawnDelay)})
	}
	if spec.Sound != "" {
		s.tasks = append(s.tasks, &entrySoundTask{spec: spec, wait: frames(spec.SoundDelay)})
	}
	if spec.ShakeDuration > 0 {
		s.tasks = append(s.tasks, &shakeTask{spec: spec, wait: frames(spec.ShakeDelay)})
	}
}

// OnNodeExit handles an "exited node" event. Exit effects are parting
// effects: once launched they never consult residency again.
func (s *Scheduler) OnNodeExit(src Machine, id component.NodeID) {
	s.checkSource(src)
	s.active.Exit(id)

	spec, ok := s.exitSpec(id)
	if !ok {
		return
	}
	if spec.Effect != "" {
		s.tasks = append(s.tasks, &exitSpawnTask{spec: spec, wait: frames(spec.SpawnDelay)})
	}
	if spec.Sound != "" {
		s.tasks = append(s.tasks, &exitSoundTask{spec: spec, wait: frames(spec.SoundDelay)})
	}
}

// Update advances every pending task by one frame. Call once per game
// update, after the frame's animation events have been delivered.
func (s *Scheduler) Update() {
	n := 0
	for _, t := range s.tasks {
		if !t.update(s) {
			s.tasks[n] = t
			n++
		}
	}
	for i := n; i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = s.tasks[:n]
}

// Reload swaps in a freshly compiled config between frames. Tasks
// already launched keep the specs they captured.
func (s *Scheduler) Reload(entries []component.EntrySpec, exits []component.ExitSpec) {
	s.entries = entries
	s.exits = exits
}

// IsActive reports whether the node is currently entered on this
// scheduler's machine.
func (s *Scheduler) IsActive(id component.NodeID) bool {
	return s.active.IsActive(id)
}

// Pending returns the number of timed tasks still running.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

func (s *Scheduler) checkSource(src Machine) {
	if src != s.machine {
		name := "<nil>"
		if src != nil {
			name = src.Name()
		}
		panic(fmt.Sprintf("system: scheduler bound to machine %q received event from %q", s.machine.Name(), name))
	}
}

// entrySpec returns the first entry rule matching the node, in config
// order. Duplicate rules for one node are a configuration error caught
// by the validator; at runtime the first match wins.
func (s *Scheduler) entrySpec(id component.NodeID) (component.EntrySpec, bool) {
	for _, spec := range s.entries {
		if spec.Node == id {
			return spec, true
		}
	}
	return component.EntrySpec{}, false
}

func (s *Scheduler) exitSpec(id component.NodeID) (component.ExitSpec, bool) {
	for _, spec := range s.exits {
		if spec.Node == id {
			return spec, true
		}
	}
	return component.ExitSpec{}, false
}
