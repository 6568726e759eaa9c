// Package audio provides the fixed pool of sound-output channels shared
// by every trigger component attached to a character.
package audio

import (
	"errors"
	"fmt"
)

// Channel is a single sound-output slot capable of playing one clip at a
// time, looping or not. The surface mirrors an ebiten audio player: stage
// the clip, volume and loop flag, then Play. Clip names are resolved by
// the channel implementation.
type Channel interface {
	SetClip(name string)
	SetVolume(volume float64)
	SetLoop(loop bool)
	Play()
	Stop()
	IsPlaying() bool

	// PlayOneShot replaces whatever the channel is playing with a single
	// non-looping playback of the clip, fire-and-forget.
	PlayOneShot(name string, volume float64)
}

// ChannelPool is a fixed set of channels. Channel 0 doubles as the
// default one-shot channel and stays eligible for looping acquisition
// when idle, so one-shots and loop requests can contend for it;
// last-acquire-wins, there is no reservation beyond the playing state
// itself.
type ChannelPool struct {
	channels []Channel
}

// NewChannelPool builds a pool from the given channels. An empty pool or
// a nil channel is a broken authoring setup and fails immediately.
func NewChannelPool(channels ...Channel) (*ChannelPool, error) {
	if len(channels) == 0 {
		return nil, errors.New("audio: channel pool needs at least one channel")
	}
	for i, ch := range channels {
		if ch == nil {
			return nil, fmt.Errorf("audio: channel %d is nil", i)
		}
	}
	return &ChannelPool{channels: channels}, nil
}

// Acquire returns the first channel that reports not-currently-playing,
// or false if every channel is busy. Nothing is mutated on failure. The
// caller should start the channel before its next poll point or another
// acquirer may take it.
func (p *ChannelPool) Acquire() (Channel, bool) {
	for _, ch := range p.channels {
		if !ch.IsPlaying() {
			return ch, true
		}
	}
	return nil, false
}

// OneShot returns the designated one-shot channel.
func (p *ChannelPool) OneShot() Channel {
	return p.channels[0]
}

// Len returns the number of channels in the pool.
func (p *ChannelPool) Len() int {
	return len(p.channels)
}
