// Command synthplay drives a ymf271.Chip synchronously and streams its
// rendered stereo output to an SDL2 audio device. It either replays a
// TOML session file (clock rate, PCM ROM path, group/slot register
// writes) or, with no session given, programs a small built-in demo tone.
package main

import (
	"flag"
	"fmt"
	"os"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Rennsou1/ymf271/internal/debug"
	"github.com/Rennsou1/ymf271/internal/synthconfig"
	"github.com/Rennsou1/ymf271/internal/ymf271"
)

// targetQueuedBytes caps how far ahead of the audio device we render, so
// the render loop and the device's playback position stay close together.
const targetQueuedBytes = 4096 * 4 * 2

func main() {
	sessionPath := flag.String("session", "", "path to a TOML session file (clock rate, ROM path, register writes)")
	flag.Parse()

	var session *synthconfig.Session
	if *sessionPath != "" {
		s, err := synthconfig.Load(*sessionPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		session = s
	} else {
		session = synthconfig.Default()
		applyDemoTune(session)
	}

	logger := debug.NewLogger(10000)
	logger.SetComponentEnabled(debug.ComponentRegister, true)
	logger.SetComponentEnabled(debug.ComponentROM, true)
	logger.SetComponentEnabled(debug.ComponentTimer, true)
	logger.SetMinLevel(debug.LogLevelDebug)

	chip := ymf271.NewChip(session.ClockHz, logger)

	if session.ROMPath != "" {
		data, err := os.ReadFile(session.ROMPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "reading ROM:", err)
			os.Exit(1)
		}
		chip.AllocROM(uint32(len(data)))
		chip.WriteROM(0, data)
	}

	for _, g := range session.Groups {
		chip.SetGroupControl(g.Index, g.Sync, g.PFM)
	}
	for _, w := range session.SlotWrites {
		chip.WriteSlotRegister(w.Slot, w.Reg, w.Value)
	}

	if err := sdl.Init(sdl.INIT_AUDIO); err != nil {
		fmt.Fprintln(os.Stderr, "sdl init:", err)
		os.Exit(1)
	}
	defer sdl.Quit()

	spec := &sdl.AudioSpec{
		Freq:     int32(chip.SampleRate()),
		Format:   sdl.AUDIO_S32LSB,
		Channels: 2,
		Samples:  512,
	}
	obtained := &sdl.AudioSpec{}
	dev, err := sdl.OpenAudioDevice("", false, spec, obtained, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open audio device:", err)
		os.Exit(1)
	}
	defer sdl.CloseAudioDevice(dev)
	sdl.PauseAudioDevice(dev, false)

	totalSamples := int(float64(chip.SampleRate()) * session.DurationSeconds)

	const chunk = 1024
	left := make([]int32, chunk)
	right := make([]int32, chunk)
	interleaved := make([]int32, chunk*2)

	fmt.Printf("synthplay: streaming sampleRate=%d totalSamples=%d\n", obtained.Freq, totalSamples)

	rendered := 0
	for rendered < totalSamples {
		n := chunk
		if totalSamples-rendered < n {
			n = totalSamples - rendered
		}

		chip.Update(n, left[:n], right[:n])
		for i := 0; i < n; i++ {
			interleaved[i*2] = left[i]
			interleaved[i*2+1] = right[i]
		}

		for sdl.GetQueuedAudioSize(dev) > targetQueuedBytes {
			sdl.Delay(5)
		}
		if err := sdl.QueueAudio(dev, int32SliceAsBytes(interleaved[:n*2])); err != nil {
			fmt.Fprintln(os.Stderr, "queue audio:", err)
			os.Exit(1)
		}

		rendered += n
	}

	for sdl.GetQueuedAudioSize(dev) > 0 {
		sdl.Delay(10)
	}
}

func int32SliceAsBytes(s []int32) []byte {
	if len(s) == 0 {
		return nil
	}
	return (*[1 << 30]byte)(unsafe.Pointer(&s[0]))[: len(s)*4 : len(s)*4]
}

// applyDemoTune programs group 0 slot 0 as a single self-modulating sine
// carrier (algorithm 15: every slot is an independent carrier, so slot 0
// alone is heard) with a fast attack and no decay, so it holds a steady
// tone until the process exits.
func applyDemoTune(s *synthconfig.Session) {
	s.Groups = []synthconfig.GroupWrite{{Index: 0, Sync: 0, PFM: false}}
	s.SlotWrites = []synthconfig.SlotWrite{
		{Slot: 0, Reg: 0x2, Value: 0x00}, // lfo off
		{Slot: 0, Reg: 0x3, Value: 0x01}, // multiple=1, detune=0
		{Slot: 0, Reg: 0x4, Value: 0x00}, // tl=0 (max volume)
		{Slot: 0, Reg: 0x5, Value: 0x1f}, // ar=31 (fastest attack)
		{Slot: 0, Reg: 0x6, Value: 0x00}, // decay1 rate
		{Slot: 0, Reg: 0x7, Value: 0x00}, // decay2 rate
		{Slot: 0, Reg: 0x8, Value: 0x00}, // rel rate / decay1 level
		{Slot: 0, Reg: 0xb, Value: 0x30}, // waveform=0 (sine), feedback=3, accon=0
		{Slot: 0, Reg: 0xc, Value: 0x0f}, // algorithm 15 (all independent carriers)
		{Slot: 0, Reg: 0xd, Value: 0x00}, // ch0/ch1 level 0 = 0dB (loudest)
		{Slot: 0, Reg: 0xe, Value: 0x00},
		{Slot: 0, Reg: 0xa, Value: 0x48}, // block=4, fns bits 8-11 = 8
		{Slot: 0, Reg: 0x9, Value: 0x00}, // fns low byte
		{Slot: 0, Reg: 0x0, Value: 0x01}, // key on
	}
}
