package ebitenfx

import (
	"bytes"
	"log"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/milk9111/nodefx/audio"
)

// PlayerChannel is an audio channel backed by an ebiten audio player.
// Clip names are resolved through a ClipLibrary. A channel plays one
// sound at a time: starting a new sound, looping or one-shot, replaces
// whatever was playing.
type PlayerChannel struct {
	ctx   *eaudio.Context
	clips *ClipLibrary

	clip   string
	volume float64
	loop   bool
	player *eaudio.Player
}

var _ audio.Channel = (*PlayerChannel)(nil)

func NewPlayerChannel(ctx *eaudio.Context, clips *ClipLibrary) *PlayerChannel {
	return &PlayerChannel{ctx: ctx, clips: clips, volume: 1}
}

func (c *PlayerChannel) SetClip(name string)      { c.clip = name }
func (c *PlayerChannel) SetVolume(volume float64) { c.volume = volume }
func (c *PlayerChannel) SetLoop(loop bool)        { c.loop = loop }

// Play starts the staged clip. An unknown clip is logged and skipped;
// the channel stays idle so the branch degrades on its own.
func (c *PlayerChannel) Play() {
	data, ok := c.clips.Get(c.clip)
	if !ok {
		log.Printf("ebitenfx: unknown clip %q", c.clip)
		return
	}
	c.Stop()

	var player *eaudio.Player
	if c.loop {
		loop := eaudio.NewInfiniteLoop(bytes.NewReader(data), int64(len(data)))
		p, err := c.ctx.NewPlayer(loop)
		if err != nil {
			log.Printf("ebitenfx: play %q: %v", c.clip, err)
			return
		}
		player = p
	} else {
		player = c.ctx.NewPlayerFromBytes(data)
	}

	player.SetVolume(c.volume)
	player.Play()
	c.player = player
}

func (c *PlayerChannel) Stop() {
	if c.player == nil {
		return
	}
	c.player.Pause()
	_ = c.player.Close()
	c.player = nil
}

func (c *PlayerChannel) IsPlaying() bool {
	return c.player != nil && c.player.IsPlaying()
}

// PlayOneShot replaces the current sound with a single non-looping
// playback of the clip, fire-and-forget.
func (c *PlayerChannel) PlayOneShot(name string, volume float64) {
	data, ok := c.clips.Get(name)
	if !ok {
		log.Printf("ebitenfx: unknown clip %q", name)
		return
	}
	c.Stop()

	player := c.ctx.NewPlayerFromBytes(data)
	player.SetVolume(volume)
	player.Play()
	c.player = player
}
