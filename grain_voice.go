// grain_voice.go - Voice: note state machine, sync accumulators, grain pair

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░         ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/GrainEngine
License: GPLv3 or later
*/

package main

type Gate uint8

const (
	GATE_CLOSED Gate = iota // idle or releasing
	GATE_OPEN               // sustaining
)

type Note struct {
	gate     Gate
	number   uint8
	velocity uint8
}

// The two grains are tuned to fixed intervals below the played note, not
// unison: grain 0 two octaves down, grain 1 an octave and a fourth down.
const (
	SYNC_OFFSET_GRAIN0 = 24
	SYNC_OFFSET_GRAIN1 = 17
)

// Controller assignments for tone shaping per grain.
const (
	CC_MOD_WHEEL    = 1  // sets both grain decay rates
	CC_GRAIN0_PITCH = 16 // grain 0 oscillator pitch, chromatic
	CC_GRAIN1_PITCH = 17 // grain 1 oscillator pitch, chromatic
)

// Release envelope profile armed on note-on: decay rate 1 every 4 ticks,
// fast enough to fade within a fraction of a second once the gate closes.
const (
	RELEASE_DECAY   = 1
	RELEASE_DIVIDER = 4
)

// Voice is the single shared synthesis state: a note gate, two sync
// accumulators scheduling grain restarts, the two grains themselves and the
// release envelope that only decays while the gate is closed. Allocated once
// at startup and mutated for the process lifetime.
type Voice struct {
	note   Note
	env    Env
	sync   [2]Phase
	grains [2]Grain
}

// Grain decay defaults match a mid-position mod wheel so the voice is
// audible before any controller data arrives.
func NewVoice() *Voice {
	v := &Voice{}
	v.grains[0].env.decay = 8
	v.grains[0].env.divider = 1
	v.grains[1].env.decay = 4
	v.grains[1].env.divider = 1
	return v
}

// NoteOn opens the gate and retunes both sync accumulators from the note
// number. A velocity of zero is the running-status note-off convention and
// is routed accordingly. No bounds checking: the transport layer guarantees
// number and velocity are 7-bit, and interval offsets below note 0 wrap into
// the table.
func (v *Voice) NoteOn(number, velocity uint8) {
	if velocity == 0 {
		v.NoteOff(number)
		return
	}
	v.note.number = number
	v.note.velocity = velocity
	v.note.gate = GATE_OPEN

	v.env.Retrigger(uint16(velocity)<<8, RELEASE_DECAY, RELEASE_DIVIDER)

	v.sync[0].SetInc(chromaticTable[(number-SYNC_OFFSET_GRAIN0)&0x7F])
	v.sync[1].SetInc(chromaticTable[(number-SYNC_OFFSET_GRAIN1)&0x7F])
}

// NoteOff closes the gate only when the number matches the sustaining note,
// so a stale release for an earlier key does not cut the current one.
func (v *Voice) NoteOff(number uint8) {
	if v.note.number == number {
		v.note.gate = GATE_CLOSED
	}
}

// ControlChange shapes individual grains directly, bypassing the note-number
// mapping. Unassigned controllers are ignored.
func (v *Voice) ControlChange(controller, value uint8) {
	switch controller {
	case CC_MOD_WHEEL:
		v.grains[0].env.decay = value >> 3
		v.grains[1].env.decay = value >> 4
	case CC_GRAIN0_PITCH:
		v.grains[0].phase.SetInc(chromaticTable[value])
	case CC_GRAIN1_PITCH:
		v.grains[1].phase.SetInc(chromaticTable[value])
	}
}

// PitchBend nudges both sync accumulators by the centered 14-bit value.
func (v *Voice) PitchBend(value uint16) {
	v.sync[0].Modulate(value)
	v.sync[1].Modulate(value)
}

// renderStep is the per-sample-tick procedure. It performs no allocation,
// no I/O and no unbounded loop; callers hold the chip lock. Returns the
// biased 8-bit sample and whether grain 0 fired this tick.
func (v *Voice) renderStep() (sample uint8, grainFired bool) {
	v.sync[0].Advance()
	v.sync[1].Advance()

	if v.sync[0].HasOverflowed() {
		// Time to start the next grain
		v.grains[0].Reset()
		grainFired = true
	}
	if v.sync[1].HasOverflowed() {
		v.grains[1].Reset()
	}

	v.grains[0].Advance()
	v.grains[1].Advance()

	output := v.grains[0].Sample()
	output += v.grains[1].Sample()

	v.grains[0].Tick()
	v.grains[1].Tick()

	// The release envelope holds at its sustain value while the gate is
	// open; leaving the output wherever it lands when the gate closes is
	// fine, the downstream high-pass removes any DC.
	if v.note.gate == GATE_CLOSED {
		v.env.Tick()
	}

	// Rescale to signed, apply velocity/release gain as
	// output * (2*env + 2) / 256, then re-bias to unsigned.
	// Bounds: 2*127*127 + 2*127 = 32512 and 2*(-128)*127 + 2*(-128) = -32768,
	// both within int16.
	scaled := int16(uint8(output>>7)) - 128
	x2 := 2 * scaled
	x2 += x2 * int16(v.env.Value())
	return uint8(x2>>8) + 128, grainFired
}
