//go:build !headless

// front_panel.go - Ebiten front panel: knobs, keyboard, scope and LED

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
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	PANEL_WIDTH  = 640
	PANEL_HEIGHT = 360

	PANEL_VELOCITY = 100
	PANEL_MIN_OCT  = -2
	PANEL_MAX_OCT  = 4

	KNOB_STEP      = 32   // Up/Down step per press, 10-bit range
	BEND_STEP      = 512  // Left/Right nudge, 14-bit range
	MOD_WHEEL_STEP = 8    // comma/period step, 7-bit range
)

// pianoKeys maps one QWERTY octave of note keys to semitone offsets:
// A-row naturals, W-row sharps.
var pianoKeys = map[ebiten.Key]int{
	ebiten.KeyA: 0, ebiten.KeyW: 1, ebiten.KeyS: 2, ebiten.KeyE: 3,
	ebiten.KeyD: 4, ebiten.KeyF: 5, ebiten.KeyT: 6, ebiten.KeyG: 7,
	ebiten.KeyY: 8, ebiten.KeyH: 9, ebiten.KeyU: 10, ebiten.KeyJ: 11,
	ebiten.KeyK: 12,
}

var knobNames = [5]string{
	"G0 PITCH", "G1 DECAY", "G0 DECAY", "G1 PITCH", "SYNC",
}

var mappingNames = [3]string{"LOG", "CHROM", "PENTA"}

// FrontPanel is the interactive GUI. It owns no synthesis state: every
// input edge becomes a chip control call, and Draw renders from a locked
// Snapshot, so the panel and the audio callback never race.
type FrontPanel struct {
	chip     *GrainChip
	octave   int
	knobs    [5]uint16 // last reading sent per analog channel
	selected int
	modWheel uint8
	held     map[ebiten.Key]uint8 // note key -> sounding note number
}

func NewFrontPanel(chip *GrainChip) *FrontPanel {
	fp := &FrontPanel{
		chip: chip,
		held: map[ebiten.Key]uint8{},
	}
	for i := range fp.knobs {
		fp.knobs[i] = 512
	}
	return fp
}

func (fp *FrontPanel) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	fp.updateNotes()
	fp.updateKnobs()

	if inpututil.IsKeyJustPressed(ebiten.KeyZ) && fp.octave > PANEL_MIN_OCT {
		fp.octave--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) && fp.octave < PANEL_MAX_OCT {
		fp.octave++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		fp.chip.SetSyncMapping((fp.chip.SyncMapping() + 1) % 3)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		fp.chip.PitchBend(PITCH_BEND_CENTER - BEND_STEP)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		fp.chip.PitchBend(PITCH_BEND_CENTER + BEND_STEP)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		if fp.modWheel >= MOD_WHEEL_STEP {
			fp.modWheel -= MOD_WHEEL_STEP
		} else {
			fp.modWheel = 0
		}
		fp.chip.ControlChange(CC_MOD_WHEEL, fp.modWheel)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		if fp.modWheel <= 127-MOD_WHEEL_STEP {
			fp.modWheel += MOD_WHEEL_STEP
		} else {
			fp.modWheel = 127
		}
		fp.chip.ControlChange(CC_MOD_WHEEL, fp.modWheel)
	}

	return nil
}

func (fp *FrontPanel) updateNotes() {
	for key, offset := range pianoKeys {
		if inpututil.IsKeyJustPressed(key) {
			note := TRACKER_BASE_NOTE + fp.octave*12 + offset
			if note < 0 || note > 127 {
				continue
			}
			fp.chip.NoteOn(uint8(note), PANEL_VELOCITY)
			fp.held[key] = uint8(note)
		}
		if inpututil.IsKeyJustReleased(key) {
			if note, ok := fp.held[key]; ok {
				fp.chip.NoteOff(note)
				delete(fp.held, key)
			}
		}
	}
}

func (fp *FrontPanel) updateKnobs() {
	for i := 0; i < 5; i++ {
		if inpututil.IsKeyJustPressed(ebiten.KeyDigit1 + ebiten.Key(i)) {
			fp.selected = i
		}
	}

	adjust := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		adjust = KNOB_STEP
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		adjust = -KNOB_STEP
	}
	if adjust == 0 {
		return
	}

	v := int(fp.knobs[fp.selected]) + adjust
	if v < 0 {
		v = 0
	}
	if v > 1023 {
		v = 1023
	}
	fp.knobs[fp.selected] = uint16(v)
	fp.chip.AnalogControl(fp.selected, uint16(v))
}

func (fp *FrontPanel) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x10, 0x10, 0x18, 0xFF})
	st := fp.chip.Snapshot()

	// Scope: one vertical tick per retained sample, newest at the right.
	const scopeTop, scopeHeight = 40, 160
	for i, s := range st.Scope {
		x := float64(i) * PANEL_WIDTH / SCOPE_SIZE
		y := float64(scopeTop+scopeHeight) - float64(s)*scopeHeight/256
		ebitenutil.DrawRect(screen, x, y, 2, 2, color.RGBA{0x30, 0xE0, 0x60, 0xFF})
	}

	// Grain trigger LED.
	ledColor := color.RGBA{0x30, 0x30, 0x30, 0xFF}
	if st.Led {
		ledColor = color.RGBA{0xFF, 0x40, 0x40, 0xFF}
	}
	ebitenutil.DrawRect(screen, PANEL_WIDTH-40, 10, 20, 20, ledColor)

	// Knob bars with the selected one highlighted.
	for i, v := range fp.knobs {
		x := float64(20 + i*120)
		barColor := color.RGBA{0x60, 0x60, 0x80, 0xFF}
		if i == fp.selected {
			barColor = color.RGBA{0xE0, 0xC0, 0x40, 0xFF}
		}
		ebitenutil.DrawRect(screen, x, 260, float64(v)*100/1023, 12, barColor)
		text.Draw(screen, knobNames[i], basicfont.Face7x13, int(x), 250, color.White)
	}

	gate := "----"
	if st.Note.gate == GATE_OPEN {
		gate = fmt.Sprintf("NOTE %d", st.Note.number)
	}
	status := fmt.Sprintf("%s  OCT %+d  MAP %s  MOD %d",
		gate, fp.octave, mappingNames[fp.chip.SyncMapping()], fp.modWheel)
	text.Draw(screen, status, basicfont.Face7x13, 20, 25, color.White)
	text.Draw(screen, "A-K notes  Z/X octave  1-5 knob  Up/Dn adjust  L/R bend  ,/. mod  M map  ESC quit",
		basicfont.Face7x13, 20, PANEL_HEIGHT-15, color.RGBA{0x90, 0x90, 0x90, 0xFF})
}

func (fp *FrontPanel) Layout(_, _ int) (int, int) {
	return PANEL_WIDTH, PANEL_HEIGHT
}

// Run opens the window and blocks until it closes. Must be called from the
// main goroutine; ebiten owns it.
func (fp *FrontPanel) Run() error {
	ebiten.SetWindowSize(PANEL_WIDTH*2, PANEL_HEIGHT*2)
	ebiten.SetWindowTitle("Grain Engine (c) 2024 - 2026 Zayn Otley")
	if err := ebiten.RunGame(fp); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
