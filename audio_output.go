// audio_output.go - Audio backend interface and selection

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

import "fmt"

const (
	AUDIO_BACKEND_NONE = iota
	AUDIO_BACKEND_OTO
	AUDIO_BACKEND_PORTAUDIO
	AUDIO_BACKEND_ALSA
)

// AudioOutput is the sample sink. The backend owns the sample clock: it pulls
// (or feeds) exactly one chip sample per output frame at SAMPLE_RATE.
type AudioOutput interface {
	Start()
	Stop()
	Close()
	IsStarted() bool
}

func NewAudioOutput(backend int, sampleRate int, chip *GrainChip) (AudioOutput, error) {
	switch backend {
	case AUDIO_BACKEND_NONE:
		return &NullOutput{}, nil
	case AUDIO_BACKEND_OTO:
		player, err := NewOtoPlayer(sampleRate)
		if err != nil {
			return nil, err
		}
		player.SetupPlayer(chip)
		return player, nil
	case AUDIO_BACKEND_PORTAUDIO:
		return NewPortAudioPlayer(sampleRate, chip)
	case AUDIO_BACKEND_ALSA:
		return NewALSAPlayer(sampleRate, chip)
	default:
		return nil, fmt.Errorf("unknown audio backend: %d", backend)
	}
}

// NullOutput discards nothing and produces nothing: tests drive the chip by
// calling RenderSample directly.
type NullOutput struct {
	started bool
}

func (n *NullOutput) Start()          { n.started = true }
func (n *NullOutput) Stop()           { n.started = false }
func (n *NullOutput) Close()          { n.started = false }
func (n *NullOutput) IsStarted() bool { return n.started }
