package ebitenfx

import (
	"encoding/binary"
	"math"
	"time"
)

// Tone synthesizes a decaying sine clip as raw PCM in ebiten's native
// format: 16-bit signed little endian, two channels, at the given sample
// rate. It keeps demos and tests free of binary audio assets.
func Tone(frequency float64, duration time.Duration, sampleRate int) []byte {
	n := int(float64(sampleRate) * duration.Seconds())
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		env := math.Exp(-4 * t / duration.Seconds())
		v := int16(math.Sin(2*math.Pi*frequency*t) * env * 0.6 * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}

// ClipLibrary maps clip names from trigger configs to PCM data.
type ClipLibrary struct {
	clips map[string][]byte
}

func NewClipLibrary() *ClipLibrary {
	return &ClipLibrary{clips: make(map[string][]byte)}
}

// Register binds a clip name to its PCM data. Re-registering replaces.
func (l *ClipLibrary) Register(name string, pcm []byte) {
	l.clips[name] = pcm
}

// Get returns the PCM data for a clip name.
func (l *ClipLibrary) Get(name string) ([]byte, bool) {
	pcm, ok := l.clips[name]
	return pcm, ok
}
