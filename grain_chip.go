// grain_chip.go - GrainChip: shared voice state, render tick and control surface

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

import "sync"

// Emulated analog control channels, one per front panel knob.
const (
	ANALOG_GRAIN0_PITCH = 0
	ANALOG_GRAIN1_DECAY = 1
	ANALOG_GRAIN0_DECAY = 2
	ANALOG_GRAIN1_PITCH = 3
	ANALOG_SYNC         = 4
)

// Mapping curves selectable for the sync pitch knob.
const (
	MAP_LOG = iota
	MAP_CHROMATIC
	MAP_PENTATONIC
)

// Output samples retained for the front panel scope.
const SCOPE_SIZE = 512

// Midpoint of the unsigned 8-bit output range, emitted while disabled.
const OUTPUT_BIAS = 128

// GrainChip owns the single Voice shared between the render tick and the
// control path. Every multi-field control update and every render tick runs
// under the mutex, so the render step can never observe a torn note-on.
// The audio backend pulls one sample per output frame; that pull is the
// sample clock.
type GrainChip struct {
	voice       *Voice
	mutex       sync.Mutex
	enabled     bool
	led         bool // toggles on each grain 0 fire
	syncMapping int

	scope    [SCOPE_SIZE]uint8
	scopePos int

	output AudioOutput
}

func NewGrainChip(backend int) (*GrainChip, error) {
	chip := &GrainChip{voice: NewVoice()}

	output, err := NewAudioOutput(backend, SAMPLE_RATE, chip)
	if err != nil {
		return nil, err
	}
	chip.output = output
	return chip, nil
}

// RenderSample executes one render tick and returns the unsigned 8-bit
// sample for the output sink. Total: it never fails and never blocks beyond
// the parameter lock.
func (chip *GrainChip) RenderSample() uint8 {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()

	if !chip.enabled {
		return OUTPUT_BIAS
	}

	sample, grainFired := chip.voice.renderStep()
	if grainFired {
		chip.led = !chip.led
	}

	chip.scope[chip.scopePos] = sample
	chip.scopePos = (chip.scopePos + 1) % SCOPE_SIZE

	return sample
}

// ReadSample converts the 8-bit sink sample to the float32 frame format the
// audio backends speak, mapping the bias midpoint to 0.
func (chip *GrainChip) ReadSample() float32 {
	return (float32(chip.RenderSample()) - OUTPUT_BIAS) / OUTPUT_BIAS
}

// Control path entry points. Handlers assume well-formed 7-bit fields; the
// transport layer validates, never the hot path.

func (chip *GrainChip) NoteOn(number, velocity uint8) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.voice.NoteOn(number, velocity)
}

func (chip *GrainChip) NoteOff(number uint8) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.voice.NoteOff(number)
}

func (chip *GrainChip) ControlChange(controller, value uint8) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.voice.ControlChange(controller, value)
}

func (chip *GrainChip) PitchBend(value uint16) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.voice.PitchBend(value)
}

// MidiHandlers bundles the chip's control entry points for a MidiParser.
func (chip *GrainChip) MidiHandlers() MidiHandlers {
	return MidiHandlers{
		NoteOn:        chip.NoteOn,
		NoteOff:       chip.NoteOff,
		ControlChange: chip.ControlChange,
		PitchBend:     chip.PitchBend,
	}
}

// SetSyncMapping selects the curve AnalogControl applies to the sync knob.
func (chip *GrainChip) SetSyncMapping(mode int) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.syncMapping = mode
}

func (chip *GrainChip) SyncMapping() int {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	return chip.syncMapping
}

// AnalogControl routes a 10-bit knob reading to the parameter wired to that
// channel, through the channel's mapping curve and scaling.
func (chip *GrainChip) AnalogControl(channel int, reading uint16) {
	if reading > 1023 {
		reading = 1023
	}

	chip.mutex.Lock()
	defer chip.mutex.Unlock()

	switch channel {
	case ANALOG_SYNC:
		var inc uint16
		switch chip.syncMapping {
		case MAP_CHROMATIC:
			inc = MapChromatic(reading)
		case MAP_PENTATONIC:
			inc = MapPentatonic(reading)
		default:
			inc = MapPhaseInc(reading) / 4
		}
		chip.voice.sync[0].SetInc(inc)
		chip.voice.sync[1].SetInc(inc)
	case ANALOG_GRAIN0_PITCH:
		chip.voice.grains[0].phase.SetInc(MapPhaseInc(reading) / 2)
	case ANALOG_GRAIN1_PITCH:
		chip.voice.grains[1].phase.SetInc(MapPhaseInc(reading) / 2)
	case ANALOG_GRAIN0_DECAY:
		chip.voice.grains[0].env.decay = uint8(reading / 8)
	case ANALOG_GRAIN1_DECAY:
		chip.voice.grains[1].env.decay = uint8(reading / 4)
	}
}

// PanelState is the front panel's view of the chip, copied under the lock.
type PanelState struct {
	Scope [SCOPE_SIZE]uint8 // oldest sample first
	Led   bool
	Note  Note
}

func (chip *GrainChip) Snapshot() PanelState {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()

	var st PanelState
	n := copy(st.Scope[:], chip.scope[chip.scopePos:])
	copy(st.Scope[n:], chip.scope[:chip.scopePos])
	st.Led = chip.led
	st.Note = chip.voice.note
	return st
}

func (chip *GrainChip) Start() {
	chip.mutex.Lock()
	chip.enabled = true
	chip.mutex.Unlock()
	chip.output.Start()
}

func (chip *GrainChip) Stop() {
	chip.mutex.Lock()
	chip.enabled = false
	chip.mutex.Unlock()
	chip.output.Stop()
	chip.output.Close()
}
