package main

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// trackerKeys maps the two QWERTY note rows to semitone offsets from the
// octave base: z-row is the lower octave, q-row the upper. Same layout as
// every tracker since ProTracker.
var trackerKeys = map[byte]int{
	'z': 0, 's': 1, 'x': 2, 'd': 3, 'c': 4, 'v': 5, 'g': 6,
	'b': 7, 'h': 8, 'n': 9, 'j': 10, 'm': 11,
	'q': 12, '2': 13, 'w': 14, '3': 15, 'e': 16, 'r': 17, '5': 18,
	't': 19, '6': 20, 'y': 21, '7': 22, 'u': 23, 'i': 24,
}

const (
	TRACKER_BASE_NOTE = 48 // C3 at octave 0
	TRACKER_VELOCITY  = 100
	TRACKER_MIN_OCT   = -2
	TRACKER_MAX_OCT   = 4
)

// TerminalHost plays the chip from raw stdin when no GUI is wanted.
// Only instantiated in main.go for interactive use — never in tests.
type TerminalHost struct {
	chip         *GrainChip
	octave       int
	lastNote     int // -1 when silent
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	nonblockSet  bool
	oldTermState *term.State
}

func NewTerminalHost(chip *GrainChip) *TerminalHost {
	return &TerminalHost{
		chip:     chip,
		lastNote: -1,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (h *TerminalHost) handleKey(b byte) bool {
	switch b {
	case 0x1B, 0x03: // ESC or Ctrl-C
		return false
	case ' ':
		if h.lastNote >= 0 {
			h.chip.NoteOff(uint8(h.lastNote))
			h.lastNote = -1
		}
	case '[':
		if h.octave > TRACKER_MIN_OCT {
			h.octave--
		}
	case ']':
		if h.octave < TRACKER_MAX_OCT {
			h.octave++
		}
	case '\t':
		h.chip.SetSyncMapping((h.chip.SyncMapping() + 1) % 3)
	default:
		if offset, ok := trackerKeys[b]; ok {
			note := TRACKER_BASE_NOTE + h.octave*12 + offset
			if note >= 0 && note <= 127 {
				if h.lastNote >= 0 {
					h.chip.NoteOff(uint8(h.lastNote))
				}
				h.chip.NoteOn(uint8(note), TRACKER_VELOCITY)
				h.lastNote = note
			}
		}
	}
	return true
}

// Run sets stdin to raw non-blocking mode and plays keys until ESC,
// Ctrl-C or Stop(). Blocking; call from the main goroutine.
func (h *TerminalHost) Run() error {
	h.fd = int(os.Stdin.Fd())

	// Raw mode disables OS-level echo and line buffering so single
	// keypresses arrive immediately.
	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		close(h.done)
		return fmt.Errorf("terminal_host: failed to set raw mode: %w", err)
	}
	h.oldTermState = oldState

	if err := syscall.SetNonblock(h.fd, true); err != nil {
		h.restore()
		close(h.done)
		return fmt.Errorf("terminal_host: failed to set nonblocking stdin: %w", err)
	}
	h.nonblockSet = true

	fmt.Print("z-m lower octave, q-i upper, [ ] octave, TAB mapping, SPACE off, ESC quit\r\n")

	defer close(h.done)
	defer h.restore()
	buf := make([]byte, 1)

	for {
		select {
		case <-h.stopCh:
			return nil
		default:
		}

		n, err := syscall.Read(h.fd, buf)
		if n > 0 {
			if !h.handleKey(buf[0]) {
				return nil
			}
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return nil
		}
		if n == 0 {
			time.Sleep(5 * time.Millisecond)
		}
	}
}

func (h *TerminalHost) restore() {
	if h.nonblockSet {
		_ = syscall.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}

// Stop terminates Run from another goroutine and waits for it to return.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
}
