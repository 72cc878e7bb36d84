// grain_lut.go - Frequency mapping tables: control value in, phase increment out

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

import "math"

// One render tick per output sample, clocked by the audio backend.
const SAMPLE_RATE = 31250

// Smooth logarithmic mapping: 64 antilog mantissas spanning one octave,
// shifted down by the top four bits of the 10-bit reading. Covers a wide
// continuous pitch range with no audible steps.
var antilogTable = [64]uint16{
	64830, 64132, 63441, 62757, 62081, 61413, 60751, 60097, 59449, 58809, 58176, 57549, 56929, 56316, 55709, 55109,
	54515, 53928, 53347, 52773, 52204, 51642, 51085, 50535, 49991, 49452, 48920, 48393, 47871, 47356, 46846, 46341,
	45842, 45348, 44859, 44376, 43898, 43425, 42958, 42495, 42037, 41584, 41136, 40693, 40255, 39821, 39392, 38968,
	38548, 38133, 37722, 37316, 36914, 36516, 36123, 35734, 35349, 34968, 34591, 34219, 33850, 33486, 33125, 32768,
}

// Stepped chromatic mapping: one phase increment per MIDI note number,
// computed once at startup from the closed form so the table stays
// bit-reproducible. chromaticTable[69] is A440.
var chromaticTable [128]uint16

// Stepped pentatonic mapping: a five-note-per-octave subsequence of the
// chromatic increments. Entry 0 is silence.
var pentatonicTable = [54]uint16{
	0, 19, 22, 26, 29, 32, 38, 43, 51, 58, 65, 77, 86, 103, 115, 129, 154, 173, 206, 231, 259, 308, 346,
	411, 461, 518, 616, 691, 822, 923, 1036, 1232, 1383, 1644, 1845, 2071, 2463, 2765, 3288,
	3691, 4143, 4927, 5530, 6577, 7382, 8286, 9854, 11060, 13153, 14764, 16572, 19708, 22121, 26306,
}

func midiNoteToFreq(note float64) float64 {
	return math.Pow(2, (note-69)/12) * 440
}

// freqToInc converts Hz to a per-tick phase increment, rounding to nearest.
func freqToInc(freq float64) uint16 {
	return uint16(freq*PHASE_STEPS/SAMPLE_RATE + 0.5)
}

func init() {
	for n := range chromaticTable {
		chromaticTable[n] = freqToInc(midiNoteToFreq(float64(n)))
	}
}

// MapPhaseInc is the continuous logarithmic curve for a 10-bit reading.
// The low six bits index the antilog mantissa, the high bits pick the octave.
func MapPhaseInc(reading uint16) uint16 {
	return antilogTable[reading&0x3F] >> (reading >> 6)
}

// MapChromatic quantizes a 10-bit reading to the equal-tempered scale.
// Readings above 1023 are outside the domain; callers clamp.
func MapChromatic(reading uint16) uint16 {
	return chromaticTable[(1023-reading)>>3]
}

// MapPentatonic quantizes a 10-bit reading to a five-note scale. The *53>>10
// scaling approximates division by 1024/53 and reaches indices 0..52.
func MapPentatonic(reading uint16) uint16 {
	value := uint8((1023 - reading) * 53 >> 10)
	return pentatonicTable[value]
}
