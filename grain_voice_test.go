// grain_voice_test.go - Test suite for the voice state machine

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

import "testing"

func TestVoice_NoteOnTunesSyncPair(t *testing.T) {
	v := NewVoice()
	v.NoteOn(69, 127)

	if v.note.gate != GATE_OPEN {
		t.Fatal("gate not open after note-on")
	}
	if v.note.number != 69 || v.note.velocity != 127 {
		t.Fatalf("note state = %d/%d, want 69/127", v.note.number, v.note.velocity)
	}
	if got := v.sync[0].Inc(); got != chromaticTable[45] {
		t.Errorf("sync 0 inc = %d, want two octaves down = %d", got, chromaticTable[45])
	}
	if got := v.sync[1].Inc(); got != chromaticTable[52] {
		t.Errorf("sync 1 inc = %d, want octave+fourth down = %d", got, chromaticTable[52])
	}
	if v.env.Value() != 127 {
		t.Errorf("release envelope = %d, want velocity 127", v.env.Value())
	}
}

func TestVoice_LowNoteWrapsIntervalIndex(t *testing.T) {
	// Notes below the grain intervals wrap modulo the table instead of
	// indexing off the end.
	v := NewVoice()
	v.NoteOn(5, 100)

	if got := v.sync[0].Inc(); got != chromaticTable[(5-SYNC_OFFSET_GRAIN0)&0x7F] {
		t.Errorf("sync 0 inc = %d, want wrapped entry %d", got, chromaticTable[(5-SYNC_OFFSET_GRAIN0)&0x7F])
	}
	if got := v.sync[1].Inc(); got != chromaticTable[(5-SYNC_OFFSET_GRAIN1)&0x7F] {
		t.Errorf("sync 1 inc = %d, want wrapped entry %d", got, chromaticTable[(5-SYNC_OFFSET_GRAIN1)&0x7F])
	}
}

func TestVoice_VelocityZeroIsNoteOff(t *testing.T) {
	v := NewVoice()
	v.NoteOn(60, 100)
	v.NoteOn(60, 0)
	if v.note.gate != GATE_CLOSED {
		t.Fatal("velocity-zero note-on left the gate open")
	}
}

func TestVoice_NoteOffMatchesNumber(t *testing.T) {
	v := NewVoice()
	v.NoteOn(60, 100)

	v.NoteOff(61) // stale release for another key
	if v.note.gate != GATE_OPEN {
		t.Fatal("mismatched note-off closed the gate")
	}

	v.NoteOff(60)
	if v.note.gate != GATE_CLOSED {
		t.Fatal("matching note-off did not close the gate")
	}
}

func TestVoice_ControlChangeRouting(t *testing.T) {
	v := NewVoice()

	v.ControlChange(CC_MOD_WHEEL, 64)
	if v.grains[0].env.decay != 64>>3 || v.grains[1].env.decay != 64>>4 {
		t.Errorf("mod wheel decays = %d/%d, want %d/%d",
			v.grains[0].env.decay, v.grains[1].env.decay, 64>>3, 64>>4)
	}

	v.ControlChange(CC_GRAIN0_PITCH, 60)
	if got := v.grains[0].phase.Inc(); got != chromaticTable[60] {
		t.Errorf("grain 0 pitch inc = %d, want %d", got, chromaticTable[60])
	}
	v.ControlChange(CC_GRAIN1_PITCH, 72)
	if got := v.grains[1].phase.Inc(); got != chromaticTable[72] {
		t.Errorf("grain 1 pitch inc = %d, want %d", got, chromaticTable[72])
	}

	// Unassigned controllers leave everything alone.
	before := *v
	v.ControlChange(7, 99)
	if *v != before {
		t.Error("unassigned controller mutated the voice")
	}
}

func TestVoice_PitchBendRoundTrip(t *testing.T) {
	// A full bend followed by a return to center must put both sync
	// accumulators back on their baseline phase trajectory, not just
	// their baseline rate.
	v := NewVoice()
	v.NoteOn(69, 100)
	for i := 0; i < 1000; i++ {
		v.renderStep()
	}
	acc0, acc1 := v.sync[0].acc, v.sync[1].acc

	v.PitchBend(16383)
	if v.sync[0].acc == acc0 {
		t.Fatal("full bend left sync 0 phase untouched")
	}
	v.PitchBend(PITCH_BEND_CENTER)
	if v.sync[0].acc != acc0 || v.sync[1].acc != acc1 {
		t.Fatalf("bend round trip moved sync phases %#04x/%#04x -> %#04x/%#04x",
			acc0, acc1, v.sync[0].acc, v.sync[1].acc)
	}
	if v.sync[0].Inc() != chromaticTable[45] {
		t.Fatal("bend changed the sync increment")
	}

	// Intermediate bend values between the extremes cancel the same way.
	v.PitchBend(PITCH_BEND_CENTER + 700)
	v.PitchBend(PITCH_BEND_CENTER - 700)
	v.PitchBend(PITCH_BEND_CENTER)
	if v.sync[0].acc != acc0 || v.sync[1].acc != acc1 {
		t.Fatalf("multi-step bend left residual phase %#04x/%#04x, want %#04x/%#04x",
			v.sync[0].acc, v.sync[1].acc, acc0, acc1)
	}
}

func TestVoice_ReleaseOnlyAfterGateCloses(t *testing.T) {
	v := NewVoice()
	v.NoteOn(69, 127)

	for i := 0; i < 20000; i++ {
		v.renderStep()
	}
	if v.env.Value() != 127 {
		t.Fatalf("release envelope decayed to %d while sustaining", v.env.Value())
	}

	v.NoteOff(69)
	for i := 0; i < 20000; i++ {
		v.renderStep()
	}
	if v.env.Value() >= 127 {
		t.Fatalf("release envelope = %d after gate closed, want decay", v.env.Value())
	}
}

func TestVoice_GrainFireRate(t *testing.T) {
	// Grain 0 retriggers at the frequency of its sync accumulator, two
	// octaves below the played note. A4 fires at the rate of note 45.
	const ticks = 1 << 17
	for _, note := range []uint8{69, 93} {
		v := NewVoice()
		v.NoteOn(note, 100)

		fires := 0
		for i := 0; i < ticks; i++ {
			_, fired := v.renderStep()
			if fired {
				fires++
			}
		}
		want := ticks * int(chromaticTable[note-SYNC_OFFSET_GRAIN0]) / PHASE_STEPS
		if fires < want-1 || fires > want+1 {
			t.Errorf("note %d: grain 0 fired %d times in %d ticks, want %d±1", note, fires, ticks, want)
		}
	}
}

func TestVoice_SilentOutputIsBiased(t *testing.T) {
	// A fresh voice with stalled grains and a spent release envelope sits
	// near the unsigned midpoint, not at zero.
	v := NewVoice()
	for i := 0; i < 70000; i++ {
		v.renderStep()
	}
	sample, _ := v.renderStep()
	if sample < 127 || sample > 128 {
		t.Fatalf("idle output = %d, want the bias midpoint", sample)
	}
}
