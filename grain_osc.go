// grain_osc.go - Grain oscillator: one phase accumulator paired with one envelope

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

// Grain envelopes peak at half scale so the two-grain mix stays within the
// 16-bit mixing register (2 * 255 * 127 = 64770).
const GRAIN_PEAK_AMP = 0x7FFF

// Grain is one short-lived oscillator+envelope unit. Its sync accumulator
// (owned by the Voice) retriggers it on overflow; between fires it free-runs
// at whatever increment the control path last set.
type Grain struct {
	phase Phase
	env   Env
}

// Reset fires the grain: oscillator phase restarts at the waveform origin and
// the envelope rearms at full grain amplitude, keeping its current decay
// rate and divider.
func (g *Grain) Reset() {
	g.phase.acc = 0
	g.env.Retrigger(GRAIN_PEAK_AMP, g.env.decay, g.env.divider)
}

// Advance moves the oscillator by one tick.
func (g *Grain) Advance() {
	g.phase.Advance()
}

// Sample computes the instantaneous output: a folded-triangle waveform of the
// accumulator scaled by the envelope. The top bit selects the falling half of
// the triangle via complement; bits 14..7 give the rising ramp.
func (g *Grain) Sample() uint16 {
	v := uint8(g.phase.acc >> 7)
	if g.phase.acc&0x8000 != 0 {
		v = ^v
	}
	return uint16(v) * uint16(g.env.Value())
}

// Tick delegates to the envelope's decay step.
func (g *Grain) Tick() {
	g.env.Tick()
}
