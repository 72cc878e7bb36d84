// grain_envelope.go - Exponential amplitude decay envelope

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/GrainEngine
License: GPLv3 or later
*/

package main

// Env decays its amplitude multiplicatively toward zero: every divider ticks
// the amplitude loses amp>>8 scaled by the decay rate, which yields the
// exponential curve the ear expects from a plucked sound. Amplitude is
// monotonically non-increasing between retriggers and the subtraction can
// never underflow ((amp>>8)*decay < amp whenever amp >= 256, zero otherwise).
type Env struct {
	amp     uint16
	decay   uint8
	divider uint8
	count   uint8
}

// Retrigger arms the envelope: amplitude jumps to peak and the divider
// counter reloads. Called on note-on for the release envelope and on every
// grain fire for the per-grain envelopes.
func (e *Env) Retrigger(peak uint16, decay, divider uint8) {
	e.amp = peak
	e.decay = decay
	e.divider = divider
	e.count = divider
}

// Tick runs once per sample period. The divider is a sub-sample clock so
// decay can proceed slower than the sample rate; divider values 0 and 1 both
// decay every tick.
func (e *Env) Tick() {
	if e.count > 1 {
		e.count--
		return
	}
	e.count = e.divider
	e.amp -= (e.amp >> 8) * uint16(e.decay)
}

// Value returns the high byte of the amplitude, the working width for mixing
// and for the voice-level gain stage.
func (e *Env) Value() uint8 {
	return uint8(e.amp >> 8)
}
