// main.go - Main entry point for the Grain Engine synthesizer

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
	"flag"
	"fmt"
	"io"
	"os"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147m  ▄████  ██▀███   ▄▄▄       ██▓ ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████\033[0m\n\033[38;2;255;80;147m ██▒ ▀█▒▓██ ▒ ██▒▒████▄    ▓██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀\033[0m\n\033[38;2;255;140;147m▒██░▄▄▄░▓██ ░▄█ ▒▒██  ▀█▄  ▒██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███\033[0m\n\033[38;2;255;200;147m░▓█  ██▓▒██▀▀█▄  ░██▄▄▄▄██ ░██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄\033[0m\n\033[38;2;255;255;147m░▒▓███▀▒░██▓ ▒██▒ ▓█   ▓██▒░██░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒\033[0m")
	fmt.Println("\nA granular synthesizer voice: two grains, a sync clock and a lo-fi 8-bit output.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/GrainEngine")
	fmt.Println("Buy me a coffee: https://ko-fi.com/intuition/tip")
	fmt.Println("License: GPLv3 or later")
}

func parseBackend(name string) (int, error) {
	switch name {
	case "oto":
		return AUDIO_BACKEND_OTO, nil
	case "portaudio":
		return AUDIO_BACKEND_PORTAUDIO, nil
	case "alsa":
		return AUDIO_BACKEND_ALSA, nil
	case "none":
		return AUDIO_BACKEND_NONE, nil
	default:
		return 0, fmt.Errorf("unknown backend %q (want oto, portaudio, alsa or none)", name)
	}
}

func main() {
	boilerPlate()

	var (
		backendName string
		noGUI       bool
		scriptPath  string
		midiPath    string
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&backendName, "backend", "oto", "Audio backend: oto, portaudio, alsa or none")
	flagSet.BoolVar(&noGUI, "nogui", false, "Play from the terminal instead of the GUI panel")
	flagSet.StringVar(&scriptPath, "script", "", "Run a Lua sequencing script and exit")
	flagSet.StringVar(&midiPath, "midi", "", "Read raw MIDI bytes from a file or device node")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./grain_engine [-backend oto|portaudio|alsa|none] [-nogui] [-script file.lua] [-midi /dev/midi1]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	backend, err := parseBackend(backendName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	chip, err := NewGrainChip(backend)
	if err != nil {
		fmt.Printf("Failed to initialize audio: %v\n", err)
		os.Exit(1)
	}
	chip.Start()
	defer chip.Stop()

	if midiPath != "" {
		in, err := os.Open(midiPath)
		if err != nil {
			fmt.Printf("Failed to open MIDI input: %v\n", err)
			os.Exit(1)
		}
		parser := NewMidiParser(chip.MidiHandlers())
		go func() {
			defer in.Close()
			if err := parser.Run(in); err != nil {
				fmt.Printf("MIDI input error: %v\n", err)
			}
		}()
	}

	if scriptPath != "" {
		if err := NewScriptHost(chip).RunFile(scriptPath); err != nil {
			fmt.Printf("Script error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if noGUI {
		if err := NewTerminalHost(chip).Run(); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Ebiten insists on the main goroutine.
	if err := NewFrontPanel(chip).Run(); err != nil {
		fmt.Printf("GUI error: %v\n", err)
		os.Exit(1)
	}
}
