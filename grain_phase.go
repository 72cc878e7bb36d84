// grain_phase.go - Fixed-point phase accumulator, the pitch/timing primitive

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

const (
	PHASE_BITS  = 16
	PHASE_STEPS = 1 << PHASE_BITS // accumulator steps per waveform cycle

	PITCH_BEND_CENTER = 8192 // 14-bit pitch bend rest position
)

// Phase is a wrapping 16-bit fixed-point counter. Each tick it advances by
// inc; the wrap past zero is the overflow signal that drives grain
// retriggering, so the arithmetic must stay modular, never saturating.
type Phase struct {
	acc        uint16
	inc        uint16
	bend       uint16 // centered offset currently applied to acc
	overflowed bool
}

// SetInc replaces the per-tick increment. Safe to call from the control path
// while the render step is advancing the accumulator.
func (p *Phase) SetInc(inc uint16) {
	p.inc = inc
}

func (p *Phase) Inc() uint16 {
	return p.inc
}

// Advance adds the increment with wraparound and latches whether this tick
// wrapped. Wrap detection relies on acc < inc holding exactly when the
// modular sum passed zero.
func (p *Phase) Advance() {
	p.acc += p.inc
	p.overflowed = p.acc < p.inc
}

// HasOverflowed reports whether the most recent Advance wrapped. The latch is
// valid until the next Advance.
func (p *Phase) HasOverflowed() bool {
	return p.overflowed
}

// Modulate applies a transient phase offset from a 14-bit pitch bend value.
// The offset is centered on PITCH_BEND_CENTER and tracked so successive bend
// messages replace rather than stack: any bend sequence that returns to
// center restores the baseline phase trajectory exactly. The increment is
// untouched.
func (p *Phase) Modulate(value uint16) {
	offset := value - PITCH_BEND_CENTER
	p.acc += offset - p.bend
	p.bend = offset
}
