package main

import (
	"sync"
	"testing"
	"time"
)

// TestGrainChip_ConcurrentControlRender stresses the race between the control
// path (MIDI/GUI thread) and RenderSample (audio thread). The test itself has
// no assertions - the race detector is the oracle.
// Run with: go test -race -run TestGrainChip_ConcurrentControlRender -count=1
func TestGrainChip_ConcurrentControlRender(t *testing.T) {
	chip, err := NewGrainChip(AUDIO_BACKEND_NONE)
	if err != nil {
		t.Fatalf("NewGrainChip: %v", err)
	}
	chip.Start()
	defer chip.Stop()

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Goroutine 1: control-side writer - hammers the whole control surface
	wg.Go(func() {
		iter := uint8(0)
		for {
			select {
			case <-stop:
				return
			default:
			}
			chip.NoteOn(40+iter%48, 1+iter%127)
			chip.ControlChange(CC_MOD_WHEEL, iter)
			chip.ControlChange(CC_GRAIN0_PITCH, iter%128)
			chip.PitchBend(uint16(iter) << 7)
			chip.AnalogControl(ANALOG_SYNC, uint16(iter)*4)
			chip.SetSyncMapping(int(iter) % 3)
			chip.NoteOff(40 + iter%48)
			iter++
		}
	})

	// Goroutine 2: audio-side reader - renders samples in a loop
	wg.Go(func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			chip.RenderSample()
		}
	})

	// Goroutine 3: GUI-side reader - polls panel snapshots
	wg.Go(func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			chip.Snapshot()
		}
	})

	time.Sleep(100 * time.Millisecond)
	close(stop)
	wg.Wait()
}
