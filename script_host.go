// script_host.go - Lua scripting host for driving the chip

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
	"time"

	lua "github.com/yuin/gopher-lua"
)

// ScriptHost runs a Lua sequencing script against the chip. Scripts get a
// small imperative API mirroring the control surface:
//
//	noteon(number, velocity)
//	noteoff(number)
//	cc(controller, value)
//	bend(value)          -- 14-bit, 8192 = centre
//	analog(channel, reading)
//	mapping(mode)        -- 0 log, 1 chromatic, 2 pentatonic
//	sleep(ms)
type ScriptHost struct {
	chip *GrainChip
}

func NewScriptHost(chip *GrainChip) *ScriptHost {
	return &ScriptHost{chip: chip}
}

func (sh *ScriptHost) register(L *lua.LState) {
	L.SetGlobal("noteon", L.NewFunction(func(L *lua.LState) int {
		sh.chip.NoteOn(uint8(L.CheckInt(1)), uint8(L.CheckInt(2)))
		return 0
	}))
	L.SetGlobal("noteoff", L.NewFunction(func(L *lua.LState) int {
		sh.chip.NoteOff(uint8(L.CheckInt(1)))
		return 0
	}))
	L.SetGlobal("cc", L.NewFunction(func(L *lua.LState) int {
		sh.chip.ControlChange(uint8(L.CheckInt(1)), uint8(L.CheckInt(2)))
		return 0
	}))
	L.SetGlobal("bend", L.NewFunction(func(L *lua.LState) int {
		sh.chip.PitchBend(uint16(L.CheckInt(1)))
		return 0
	}))
	L.SetGlobal("analog", L.NewFunction(func(L *lua.LState) int {
		sh.chip.AnalogControl(L.CheckInt(1), uint16(L.CheckInt(2)))
		return 0
	}))
	L.SetGlobal("mapping", L.NewFunction(func(L *lua.LState) int {
		sh.chip.SetSyncMapping(L.CheckInt(1))
		return 0
	}))
	L.SetGlobal("sleep", L.NewFunction(func(L *lua.LState) int {
		time.Sleep(time.Duration(L.CheckInt(1)) * time.Millisecond)
		return 0
	}))
}

// RunFile executes the script and returns when it finishes. The audio
// backend keeps rendering underneath; sleep() is how scripts hold notes.
func (sh *ScriptHost) RunFile(path string) error {
	L := lua.NewState()
	defer L.Close()

	sh.register(L)
	return L.DoFile(path)
}
