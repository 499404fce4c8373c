// Package synthconfig loads a synthplay session file: the clock rate, an
// optional PCM sample ROM path, and the sequence of group and slot
// register writes that program a patch before rendering begins.
package synthconfig

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// GroupWrite configures one group's sync mode and PFM flag before playback.
type GroupWrite struct {
	Index int  `toml:"index"`
	Sync  uint8 `toml:"sync"`
	PFM   bool `toml:"pfm"`
}

// SlotWrite is one direct slot register write, applied in file order.
type SlotWrite struct {
	Slot  int   `toml:"slot"`
	Reg   uint8 `toml:"reg"`
	Value uint8 `toml:"value"`
}

// Session describes one synthplay run: how the chip is clocked, what
// sample data it has access to, and the register writes that program it.
type Session struct {
	ClockHz         uint32       `toml:"clock_hz"`
	ROMPath         string       `toml:"rom"`
	DurationSeconds float64      `toml:"duration_seconds"`
	Groups          []GroupWrite `toml:"groups"`
	SlotWrites      []SlotWrite  `toml:"slot_writes"`
}

// Default returns a session with a conservative clock and a short demo
// duration, used when no session file is given.
func Default() *Session {
	return &Session{
		ClockHz:         16934400,
		DurationSeconds: 2.0,
	}
}

// Load reads and decodes a TOML session file.
func Load(path string) (*Session, error) {
	s := Default()
	if _, err := toml.DecodeFile(path, s); err != nil {
		return nil, fmt.Errorf("synthconfig: load %s: %w", path, err)
	}
	if s.ClockHz == 0 {
		s.ClockHz = 16934400
	}
	return s, nil
}
