package ebitenfx

import (
	"testing"
	"time"
)

func TestTone(t *testing.T) {
	pcm := Tone(440, 250*time.Millisecond, 48000)

	wantLen := 12000 * 4 // samples * 2 channels * 2 bytes
	if len(pcm) != wantLen {
		t.Fatalf("len = %d, want %d", len(pcm), wantLen)
	}

	silent := true
	for _, b := range pcm {
		if b != 0 {
			silent = false
			break
		}
	}
	if silent {
		t.Fatalf("tone is all zeroes")
	}
}

func TestClipLibrary(t *testing.T) {
	lib := NewClipLibrary()
	lib.Register("beep", []byte{1, 2, 3, 4})

	if pcm, ok := lib.Get("beep"); !ok || len(pcm) != 4 {
		t.Fatalf("Get(beep) = %v, %v", pcm, ok)
	}
	if _, ok := lib.Get("boop"); ok {
		t.Fatalf("expected miss for unregistered clip")
	}

	lib.Register("beep", []byte{9})
	if pcm, _ := lib.Get("beep"); len(pcm) != 1 {
		t.Fatalf("re-register should replace, got %v", pcm)
	}
}
