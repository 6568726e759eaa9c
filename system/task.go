package system

import (
	"log"

	"github.com/milk9111/nodefx/audio"
	"github.com/milk9111/nodefx/component"
)

// task is a transient countdown driven once per frame by the scheduler.
// update returns true when the task is finished. Cancellation is
// cooperative: a task only reacts to residency changes at its own poll
// points.
type task interface {
	update(s *Scheduler) bool
}

// entrySpawnTask waits the spawn delay, spawns the effect if the node is
// still active, then optionally watches the abort window: while the
// window is open an exit from the node shuts the effect down; once the
// abort deadline has elapsed the effect plays to completion regardless.
type entrySpawnTask struct {
	spec     component.EntrySpec
	wait     int
	watching bool
	instance EffectInstance
	left     int
	poll     int
}

func (t *entrySpawnTask) update(s *Scheduler) bool {
	if !t.watching {
		if t.wait > 0 {
			t.wait--
			return false
		}
		if !s.active.IsActive(t.spec.Node) {
			return true
		}
		x, y := s.anchor()
		t.instance = s.spawner.Spawn(t.spec.Effect, x, y)
		if t.instance == nil {
			return true
		}
		if t.spec.AbortDeadline <= 0 {
			// Never abort: no watch phase.
			return true
		}
		t.left = frames(t.spec.AbortDeadline) - frames(t.spec.SpawnDelay)
		if t.left <= 0 {
			return true
		}
		t.watching = true
		t.poll = pollFrames
		return false
	}

	t.poll--
	if t.poll > 0 {
		return false
	}
	t.poll = pollFrames
	t.left -= pollFrames
	if t.left <= 0 {
		// Deadline elapsed: the effect can no longer be canceled.
		return true
	}
	if !t.instance.Alive() {
		return true
	}
	if !s.active.IsActive(t.spec.Node) {
		t.instance.Shutdown()
		return true
	}
	return false
}

// entrySoundTask waits the sound delay, then either fires a one-shot on
// channel 0 or acquires a loop channel and holds it while the node is
// resident and the channel keeps playing.
type entrySoundTask struct {
	spec    component.EntrySpec
	wait    int
	ch      audio.Channel
	looping bool
	poll    int
}

func (t *entrySoundTask) update(s *Scheduler) bool {
	if !t.looping {
		if t.wait > 0 {
			t.wait--
			return false
		}
		if !s.active.IsActive(t.spec.Node) {
			return true
		}
		if !t.spec.Loop {
			s.pool.OneShot().PlayOneShot(t.spec.Sound, t.spec.Volume)
			return true
		}
		ch, ok := s.pool.Acquire()
		if !ok {
			log.Printf("system: no free audio channel for looping sound %q (node %q)", t.spec.Sound, t.spec.NodeName)
			return true
		}
		ch.SetClip(t.spec.Sound)
		ch.SetVolume(t.spec.Volume)
		ch.SetLoop(true)
		ch.Play()
		t.ch = ch
		t.looping = true
		t.poll = pollFrames
		return false
	}

	t.poll--
	if t.poll > 0 {
		return false
	}
	t.poll = pollFrames
	if s.active.IsActive(t.spec.Node) && t.ch.IsPlaying() {
		return false
	}
	// Either the node was exited or the channel was taken over; the loop
	// must not outlive either.
	t.ch.Stop()
	return true
}

// shakeTask waits the shake delay, then issues the camera shake if the
// node is still active. An issued shake runs its full duration even if
// the node is exited afterward.
type shakeTask struct {
	spec component.EntrySpec
	wait int
}

func (t *shakeTask) update(s *Scheduler) bool {
	if t.wait > 0 {
		t.wait--
		return false
	}
	if !s.active.IsActive(t.spec.Node) {
		return true
	}
	s.camera.Shake(t.spec.ShakeFrequency, t.spec.ShakeAmplitude, t.spec.ShakeDuration)
	return true
}

// exitSpawnTask spawns a parting effect after its delay, unconditionally.
type exitSpawnTask struct {
	spec component.ExitSpec
	wait int
}

func (t *exitSpawnTask) update(s *Scheduler) bool {
	if t.wait > 0 {
		t.wait--
		return false
	}
	x, y := s.anchor()
	s.spawner.Spawn(t.spec.Effect, x, y)
	return true
}

// exitSoundTask plays a parting one-shot after its delay, unconditionally.
type exitSoundTask struct {
	spec component.ExitSpec
	wait int
}

func (t *exitSoundTask) update(s *Scheduler) bool {
	if t.wait > 0 {
		t.wait--
		return false
	}
	s.pool.OneShot().PlayOneShot(t.spec.Sound, t.spec.Volume)
	return true
}
