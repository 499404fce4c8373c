package ymf271

import "github.com/Rennsou1/ymf271/internal/debug"

// Write latches one byte to the chip's 16-port register interface, the
// same address/data-pair protocol the original hardware exposes: even
// "low" offsets latch an address, the following "high" offset commits
// data through to the FM, PCM or timer register file.
func (c *Chip) Write(offset uint8, data uint8) {
	c.regsMain[offset&0xf] = data

	switch offset & 0xf {
	case 0x0, 0x2, 0x4, 0x6, 0x8, 0xc:
		// address latches only

	case 0x1:
		c.writeFM(0, c.regsMain[0x0], data)
	case 0x3:
		c.writeFM(1, c.regsMain[0x2], data)
	case 0x5:
		c.writeFM(2, c.regsMain[0x4], data)
	case 0x7:
		c.writeFM(3, c.regsMain[0x6], data)
	case 0x9:
		c.writePCM(c.regsMain[0x8], data)
	case 0xd:
		c.writeTimer(c.regsMain[0xc], data)
	}
}

// Read returns one status/data byte from the chip's register interface.
func (c *Chip) Read(offset uint8) uint8 {
	switch offset & 0xf {
	case 0x0:
		return c.Status1()
	case 0x1:
		return c.Status2()
	case 0x2:
		if !c.extRW {
			return 0xff
		}
		ret := c.extReadLatch
		c.extAddress = (c.extAddress + 1) & 0x7fffff
		c.extReadLatch = c.readMemory(c.extAddress)
		return ret
	}
	return 0xff
}

// writeFM dispatches a bank/address/data triple written against one of
// the four FM address ports, broadcasting to sibling slots when the
// group's sync mode ties the written register together across banks.
func (c *Chip) writeFM(bank int, address, data uint8) {
	groupnum := fmTab[address&0xf]
	reg := (address >> 4) & 0xf

	if groupnum == -1 {
		c.logf(debug.ComponentRegister, "writeFM: invalid group %02X %02X", address, data)
		return
	}

	syncReg := false
	switch reg {
	case 0, 9, 10, 12, 13, 14:
		syncReg = true
	}

	syncMode := false
	switch c.groups[groupnum].sync {
	case 0:
		syncMode = bank == 0
	case 1:
		syncMode = bank == 0 || bank == 1
	case 2:
		syncMode = bank == 0
	}

	if syncMode && syncReg {
		switch c.groups[groupnum].sync {
		case 0:
			c.writeRegister(12*0+groupnum, reg, data)
			c.writeRegister(12*1+groupnum, reg, data)
			c.writeRegister(12*2+groupnum, reg, data)
			c.writeRegister(12*3+groupnum, reg, data)
		case 1:
			if bank == 0 {
				c.writeRegister(12*0+groupnum, reg, data)
				c.writeRegister(12*2+groupnum, reg, data)
			} else {
				c.writeRegister(12*1+groupnum, reg, data)
				c.writeRegister(12*3+groupnum, reg, data)
			}
		case 2:
			c.writeRegister(12*0+groupnum, reg, data)
			c.writeRegister(12*1+groupnum, reg, data)
			c.writeRegister(12*2+groupnum, reg, data)
		}
		return
	}

	c.writeRegister(12*bank+groupnum, reg, data)
}

// writePCM handles a write against the PCM address port: sample start/end
// /loop addresses and the fs/bits/srcnote/srcb attribute byte.
func (c *Chip) writePCM(address, data uint8) {
	slotnum := pcmTab[address&0xf]
	if slotnum == -1 {
		c.logf(debug.ComponentRegister, "writePCM: invalid slot %02X %02X", address, data)
		return
	}
	s := &c.slots[slotnum]

	switch (address >> 4) & 0xf {
	case 0x0:
		s.startAddr = (s.startAddr &^ 0xff) | uint32(data)
	case 0x1:
		s.startAddr = (s.startAddr &^ 0xff00) | uint32(data)<<8
	case 0x2:
		s.startAddr = (s.startAddr &^ 0xff0000) | uint32(data&0x7f)<<16
		s.altLoop = data&0x80 != 0
	case 0x3:
		s.endAddr = (s.endAddr &^ 0xff) | uint32(data)
	case 0x4:
		s.endAddr = (s.endAddr &^ 0xff00) | uint32(data)<<8
	case 0x5:
		s.endAddr = (s.endAddr &^ 0xff0000) | uint32(data&0x7f)<<16
	case 0x6:
		s.loopAddr = (s.loopAddr &^ 0xff) | uint32(data)
	case 0x7:
		s.loopAddr = (s.loopAddr &^ 0xff00) | uint32(data)<<8
	case 0x8:
		s.loopAddr = (s.loopAddr &^ 0xff0000) | uint32(data&0x7f)<<16
	case 0x9:
		s.fs = data & 0x3
		if data&0x4 != 0 {
			s.bits = 12
		} else {
			s.bits = 8
		}
		s.srcNote = (data >> 3) & 0x3
		s.srcB = (data >> 5) & 0x7
	}
}

// writeTimer handles the group sync/pfm register (address&0xf0==0) and
// the chip-level timer/external-memory register block (0x10-0x22).
func (c *Chip) writeTimer(address, data uint8) {
	if address&0xf0 == 0 {
		groupnum := fmTab[address&0xf]
		if groupnum == -1 {
			c.logf(debug.ComponentRegister, "writeTimer: invalid group %02X %02X", address, data)
			return
		}
		g := &c.groups[groupnum]
		g.sync = data & 0x3
		g.pfm = data>>7 != 0
		return
	}

	switch address {
	case 0x10:
		c.timerA = (c.timerA & 0x003) | uint32(data)<<2
	case 0x11:
		c.timerA = (c.timerA & 0x3fc) | uint32(data&0x03)
	case 0x12:
		c.timerB = uint32(data)

	case 0x13:
		if ^c.enable&data&1 != 0 {
			c.timerAPeriod = 384 * (1024 - c.timerA)
		}
		if ^c.enable&data&2 != 0 {
			c.timerBPeriod = 384 * 16 * (256 - c.timerB)
		}
		if data&0x10 != 0 {
			c.irqstate &^= 1
			c.status &^= 1
			if c.irqHandler != nil && c.irqstate&2 == 0 {
				c.irqHandler(false)
			}
		}
		if data&0x20 != 0 {
			c.irqstate &^= 2
			c.status &^= 2
			if c.irqHandler != nil && c.irqstate&1 == 0 {
				c.irqHandler(false)
			}
		}
		c.enable = data

	case 0x14:
		c.extAddress = (c.extAddress &^ 0xff) | uint32(data)
	case 0x15:
		c.extAddress = (c.extAddress &^ 0xff00) | uint32(data)<<8
	case 0x16:
		c.extAddress = (c.extAddress &^ 0xff0000) | uint32(data&0x7f)<<16
		c.extRW = data&0x80 != 0
	case 0x17:
		c.extAddress = (c.extAddress + 1) & 0x7fffff
		if !c.extRW {
			c.WriteROM(c.extAddress, []byte{data})
		}

	case 0x20, 0x21, 0x22:
		// test registers, no effect

	default:
	}
}

// WriteSlotRegister applies a register write directly against one slot,
// bypassing the bank/address-latch port protocol in Write. Intended for
// debugger and test use, where addressing a slot directly is more useful
// than replaying the host's port sequence.
func (c *Chip) WriteSlotRegister(slotnum int, reg, data uint8) {
	if slotnum < 0 || slotnum >= len(c.slots) {
		return
	}
	c.writeRegister(slotnum, reg, data)
}

// SetGroupControl sets a group's sync mode and PFM flag directly,
// bypassing the port protocol. Intended for debugger and test use.
func (c *Chip) SetGroupControl(groupnum int, sync uint8, pfm bool) {
	if groupnum < 0 || groupnum >= len(c.groups) {
		return
	}
	c.groups[groupnum].sync = sync & 0x3
	c.groups[groupnum].pfm = pfm
}

// writeRegister applies one slot register write, handling the key-on
// side effects (envelope/LFO/step reset, and the sync-mode-gated sibling
// slot initialization) when bit 0 of register 0x0 is set.
func (c *Chip) writeRegister(slotnum int, reg uint8, data uint8) {
	s := &c.slots[slotnum]

	switch reg {
	case 0x0:
		s.extEn = data&0x80 != 0
		s.extOut = (data >> 3) & 0xf

		if data&1 != 0 {
			groupnum := slotnum % 12
			bank := slotnum / 12
			g := &c.groups[groupnum]

			s.step = 0
			s.stepPtr = 0
			s.active = true
			s.loopDirection = 1

			initEnvelope(c.tables, s)
			initLFO(c.tables, s)
			calculateStep(c.tables, s)
			calculateStatusEnd(c, slotnum, false)

			s.feedbackModulation0 = 0
			s.feedbackModulation1 = 0

			switch {
			case g.sync == 0 && bank == 0:
				for i := 1; i < 4; i++ {
					c.keyOnSibling(groupnum + i*12)
				}
			case g.sync == 1 && bank == 0:
				c.keyOnSibling(groupnum + 2*12)
			case g.sync == 1 && bank == 1:
				c.keyOnSibling(groupnum + 3*12)
			case g.sync == 2 && bank == 0:
				c.keyOnSibling(groupnum + 1*12)
				c.keyOnSibling(groupnum + 2*12)
			}
		} else if s.active {
			s.envState = envRelease
		}

	case 0x1:
		s.lfoFreq = data
	case 0x2:
		s.lfoWave = data & 3
		s.pms = (data >> 3) & 0x7
		s.ams = (data >> 6) & 0x3
	case 0x3:
		s.multiple = data & 0xf
		s.detune = (data >> 4) & 0x7
	case 0x4:
		s.tl = data & 0x7f
	case 0x5:
		s.ar = data & 0x1f
		s.keyscale = (data >> 5) & 0x3
	case 0x6:
		s.decay1Rate = data & 0x1f
	case 0x7:
		s.decay2Rate = data & 0x1f
	case 0x8:
		s.relRate = data & 0xf
		s.decay1Lvl = (data >> 4) & 0xf
	case 0x9:
		s.fns = (uint32(s.fnsHi)<<8)&0x0f00 | uint32(data)
		s.block = (s.fnsHi >> 4) & 0xf
	case 0xa:
		s.fnsHi = data
	case 0xb:
		s.waveform = data & 0x7
		s.feedback = (data >> 4) & 0x7
		s.accon = data&0x80 != 0
	case 0xc:
		s.algorithm = data & 0xf
	case 0xd:
		s.ch0Level = data >> 4
		s.ch1Level = data & 0xf
	case 0xe:
		s.ch2Level = data >> 4
		s.ch3Level = data & 0xf
	}
}

// keyOnSibling re-initializes a sibling slot's envelope/LFO/step state
// without re-running key-on bookkeeping, per the sync-mode broadcast rule
// the datasheet never documents but real software depends on.
func (c *Chip) keyOnSibling(slotnum int) {
	s := &c.slots[slotnum]
	s.step = 0
	s.stepPtr = 0
	s.loopDirection = 1
	initEnvelope(c.tables, s)
	initLFO(c.tables, s)
	calculateStep(c.tables, s)
	s.feedbackModulation0 = 0
	s.feedbackModulation1 = 0
}
