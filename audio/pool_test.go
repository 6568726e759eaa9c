package audio

import "testing"

type fakeChannel struct {
	clip    string
	volume  float64
	loop    bool
	playing bool

	oneShots []string
	stops    int
}

func (c *fakeChannel) SetClip(name string)      { c.clip = name }
func (c *fakeChannel) SetVolume(volume float64) { c.volume = volume }
func (c *fakeChannel) SetLoop(loop bool)        { c.loop = loop }
func (c *fakeChannel) Play()                    { c.playing = true }
func (c *fakeChannel) Stop()                    { c.playing = false; c.stops++ }
func (c *fakeChannel) IsPlaying() bool          { return c.playing }

func (c *fakeChannel) PlayOneShot(name string, volume float64) {
	c.oneShots = append(c.oneShots, name)
	c.volume = volume
	c.loop = false
	c.playing = true
}

func TestNewChannelPool(t *testing.T) {
	tests := []struct {
		name     string
		channels []Channel
		wantErr  bool
	}{
		{"empty", nil, true},
		{"nil_channel", []Channel{&fakeChannel{}, nil}, true},
		{"ok", []Channel{&fakeChannel{}}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewChannelPool(tc.channels...)
			if (err != nil) != tc.wantErr {
				t.Fatalf("NewChannelPool err = %v, want error = %v", err, tc.wantErr)
			}
		})
	}
}

func TestChannelPoolAcquire(t *testing.T) {
	t.Run("first_free_wins", func(t *testing.T) {
		c0 := &fakeChannel{playing: true}
		c1 := &fakeChannel{}
		c2 := &fakeChannel{}
		pool, err := NewChannelPool(c0, c1, c2)
		if err != nil {
			t.Fatalf("NewChannelPool: %v", err)
		}

		ch, ok := pool.Acquire()
		if !ok {
			t.Fatalf("expected a free channel")
		}
		if ch != c1 {
			t.Fatalf("expected first idle channel c1, got %v", ch)
		}
	})

	t.Run("channel_zero_eligible_when_idle", func(t *testing.T) {
		c0 := &fakeChannel{}
		c1 := &fakeChannel{}
		pool, err := NewChannelPool(c0, c1)
		if err != nil {
			t.Fatalf("NewChannelPool: %v", err)
		}

		ch, ok := pool.Acquire()
		if !ok || ch != c0 {
			t.Fatalf("expected channel 0 to be acquirable when idle")
		}
		if pool.OneShot() != c0 {
			t.Fatalf("expected channel 0 to be the one-shot channel")
		}
	})

	t.Run("exhausted_mutates_nothing", func(t *testing.T) {
		c0 := &fakeChannel{playing: true}
		c1 := &fakeChannel{playing: true}
		pool, err := NewChannelPool(c0, c1)
		if err != nil {
			t.Fatalf("NewChannelPool: %v", err)
		}

		if _, ok := pool.Acquire(); ok {
			t.Fatalf("expected no free channel")
		}
		if c0.stops != 0 || c1.stops != 0 || len(c0.oneShots) != 0 {
			t.Fatalf("acquire on a full pool must not mutate channel state")
		}
	})
}
