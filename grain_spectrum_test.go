// grain_spectrum_test.go - Spectral verification of oscillator tuning

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
░           ░             ░      ░            ░      ░ ░           ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/GrainEngine
License: GPLv3 or later
*/

package main

import (
	"math/cmplx"
	"testing"

	"github.com/ktye/fft"
)

// A free-running grain with its envelope pinned open is a plain triangle
// oscillator: its spectral peak must land on the bin of the programmed
// phase increment.
func TestGrain_SpectralPeakMatchesIncrement(t *testing.T) {
	const size = 4096

	f, err := fft.New(size)
	if err != nil {
		t.Fatalf("fft.New: %v", err)
	}

	notes := []uint8{45, 57, 69, 81}
	for _, note := range notes {
		inc := chromaticTable[note]

		var g Grain
		g.phase.SetInc(inc)
		g.env.Retrigger(0xFF00, 0, 1) // no decay: steady amplitude

		buf := make([]complex128, size)
		for i := range buf {
			g.Advance()
			// Center the waveform so bin 0 holds no signal energy.
			buf[i] = complex(float64(g.Sample())/65535-0.5, 0)
			g.Tick()
		}
		buf = f.Transform(buf)

		peak, peakMag := 0, 0.0
		for bin := 1; bin < size/2; bin++ {
			if mag := cmplx.Abs(buf[bin]); mag > peakMag {
				peak, peakMag = bin, mag
			}
		}

		want := float64(inc) * size / PHASE_STEPS
		if float64(peak) < want-1 || float64(peak) > want+1 {
			t.Errorf("note %d (inc %d): spectral peak at bin %d, want %.1f±1", note, inc, peak, want)
		}
	}
}
