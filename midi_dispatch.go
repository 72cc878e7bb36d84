// midi_dispatch.go - MIDI byte-stream parser and event dispatch

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
	"errors"
	"io"
)

// MIDI status bytes (high nibble; low nibble is the channel).
const (
	MIDI_NOTE_OFF         = 0x80
	MIDI_NOTE_ON          = 0x90
	MIDI_POLY_PRESSURE    = 0xA0
	MIDI_CONTROL_CHANGE   = 0xB0
	MIDI_PROGRAM_CHANGE   = 0xC0
	MIDI_CHANNEL_PRESSURE = 0xD0
	MIDI_PITCH_BEND       = 0xE0
	MIDI_SYSEX_START      = 0xF0
	MIDI_SYSEX_END        = 0xF7
	MIDI_REALTIME_MIN     = 0xF8
)

// MidiHandlers receives decoded channel messages. Nil handlers are skipped.
// The dispatcher is omni: the channel nibble is ignored.
type MidiHandlers struct {
	NoteOn        func(number, velocity uint8)
	NoteOff       func(number uint8)
	ControlChange func(controller, value uint8)
	PitchBend     func(value uint16)
}

// MidiParser assembles channel messages from a raw serial byte stream.
// Running status is honoured: data bytes arriving without a fresh status
// byte reuse the previous one, which is how note-on with velocity zero
// streams encode note-off.
type MidiParser struct {
	handlers MidiHandlers
	status   byte
	data     [2]byte
	have     int
	inSysex  bool
}

func NewMidiParser(handlers MidiHandlers) *MidiParser {
	return &MidiParser{handlers: handlers}
}

// Feed consumes one wire byte. Real-time bytes are transparent and may
// appear in the middle of a message; sysex payloads are skipped.
func (p *MidiParser) Feed(b byte) {
	if b >= MIDI_REALTIME_MIN {
		return
	}

	if b&0x80 != 0 {
		// Any non-real-time status byte terminates an unclosed sysex,
		// EOX included; devices commonly omit the explicit 0xF7.
		switch {
		case b == MIDI_SYSEX_START:
			p.inSysex = true
			p.status = 0
		case b == MIDI_SYSEX_END:
			p.inSysex = false
		case b >= MIDI_SYSEX_START:
			// Other system common messages also cancel running status.
			p.inSysex = false
			p.status = 0
		default:
			p.inSysex = false
			p.status = b
			p.have = 0
		}
		return
	}

	if p.inSysex || p.status == 0 {
		return
	}

	p.data[p.have] = b
	p.have++
	if p.have < p.dataLen() {
		return
	}
	p.have = 0 // keep status for running status
	p.dispatch()
}

func (p *MidiParser) dataLen() int {
	switch p.status & 0xF0 {
	case MIDI_PROGRAM_CHANGE, MIDI_CHANNEL_PRESSURE:
		return 1
	default:
		return 2
	}
}

func (p *MidiParser) dispatch() {
	switch p.status & 0xF0 {
	case MIDI_NOTE_ON:
		if p.handlers.NoteOn != nil {
			p.handlers.NoteOn(p.data[0], p.data[1])
		}
	case MIDI_NOTE_OFF:
		if p.handlers.NoteOff != nil {
			p.handlers.NoteOff(p.data[0])
		}
	case MIDI_CONTROL_CHANGE:
		if p.handlers.ControlChange != nil {
			p.handlers.ControlChange(p.data[0], p.data[1])
		}
	case MIDI_PITCH_BEND:
		if p.handlers.PitchBend != nil {
			// 14-bit value, LSB first
			p.handlers.PitchBend(uint16(p.data[1])<<7 | uint16(p.data[0]))
		}
	}
}

// Run feeds bytes from r until EOF or a read error. This is the control
// loop: it never touches the render path except through the handlers.
func (p *MidiParser) Run(r io.Reader) error {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			p.Feed(b)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
