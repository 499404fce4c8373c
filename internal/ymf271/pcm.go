package ymf271

import "github.com/Rennsou1/ymf271/internal/debug"

// readPCMSample reads one signed sample at a byte-offset from a slot's
// sample start address, decoding either 8-bit linear or 12-bit packed
// (3 bytes store 2 samples) format.
func readPCMSample(c *Chip, s *slot, offset uint32) int16 {
	if s.bits == 8 {
		return int16(c.readMemory(s.startAddr+offset)) << 8
	}

	byteOffset := (offset >> 1) * 3
	if offset&1 != 0 {
		hi := int16(c.readMemory(s.startAddr + byteOffset + 2))
		lo := int16(c.readMemory(s.startAddr+byteOffset+1) & 0x0f)
		return (hi << 8) | (lo << 4)
	}
	hi := int16(c.readMemory(s.startAddr + byteOffset))
	lo := int16(c.readMemory(s.startAddr+byteOffset+1) & 0xf0)
	return (hi << 8) | lo
}

// updatePCM renders one slot's PCM voice for proc_smpls samples, mixing it
// either directly into mixBuf (accon=0) or, after 18-bit saturation, into
// accBuf (accon=1, the shared accumulator/distortion path).
func updatePCM(c *Chip, slotnum int, mixBuf []int32, samples int) {
	s := &c.slots[slotnum]
	if !s.active {
		return
	}

	for i := 0; i < samples; i++ {
		if s.loopDirection > 0 {
			if (s.stepPtr >> 16) > uint64(s.endAddr) {
				if s.altLoop {
					s.loopDirection = -1
					s.stepPtr = (uint64(s.endAddr) << 16) | (s.stepPtr & 0xffff)
				} else {
					s.stepPtr = s.stepPtr - (uint64(s.endAddr) << 16) + (uint64(s.loopAddr) << 16)
					if (s.stepPtr >> 16) > uint64(s.endAddr) {
						c.logf(debug.ComponentPCM, "slot %d: loopaddr %d > endaddr %d, clamping to loopaddr", slotnum, s.loopAddr, s.endAddr)
						s.stepPtr &= 0xffff
						s.stepPtr |= uint64(s.loopAddr) << 16
						if (s.stepPtr >> 16) > uint64(s.endAddr) {
							c.logf(debug.ComponentPCM, "slot %d: loopaddr still past endaddr, clamping to endaddr", slotnum)
							s.stepPtr &= 0xffff
							s.stepPtr |= uint64(s.endAddr) << 16
						}
					}
				}
				calculateStatusEnd(c, slotnum, true)
			}
		} else {
			if int64(s.stepPtr>>16) < int64(s.loopAddr) {
				s.loopDirection = 1
				s.stepPtr = (uint64(s.loopAddr) << 16) | (s.stepPtr & 0xffff)
			}
		}

		sample := readPCMSample(c, s, uint32(s.stepPtr>>16))

		updateEnvelope(s)
		updateLFO(c.tables, s)

		if s.accon {
			const accTLScale = 2
			accumulationFactor := int64(accTLScale)
			if s.tl != 0 {
				accumulationFactor = int64(s.tl) * accTLScale
			}

			accumulated := int64(sample) * accumulationFactor
			if accumulated > acc18Max {
				accumulated = acc18Max
			} else if accumulated < acc18Min {
				accumulated = acc18Min
			}
			output := int32(accumulated >> 2)

			mixACCChannel(c, i, 0, output, s.ch0Level)
			mixACCChannel(c, i, 1, output, s.ch1Level)
			mixACCChannel(c, i, 2, output, s.ch2Level)
			mixACCChannel(c, i, 3, output, s.ch3Level)
		} else {
			finalVolume := int64(calculateSlotVolume(c.tables, s))

			ch0 := clampUnitVolume((finalVolume * int64(c.tables.attenuation[s.ch0Level])) >> 16)
			ch1 := clampUnitVolume((finalVolume * int64(c.tables.attenuation[s.ch1Level])) >> 16)
			ch2 := clampUnitVolume((finalVolume * int64(c.tables.attenuation[s.ch2Level])) >> 16)
			ch3 := clampUnitVolume((finalVolume * int64(c.tables.attenuation[s.ch3Level])) >> 16)

			mixBuf[i*4+0] += int32((int64(sample) * ch0) >> 16)
			mixBuf[i*4+1] += int32((int64(sample) * ch1) >> 16)
			mixBuf[i*4+2] += int32((int64(sample) * ch2) >> 16)
			mixBuf[i*4+3] += int32((int64(sample) * ch3) >> 16)
		}

		if s.loopDirection > 0 {
			s.stepPtr += uint64(s.step)
		} else {
			s.stepPtr -= uint64(s.step)
		}
	}
}

func clampUnitVolume(v int64) int64 {
	if v > 65536 {
		return 65536
	}
	return v
}

func mixACCChannel(c *Chip, i, channel int, output int32, level uint8) {
	acc := int64(c.accBuffer[i*4+channel]) + ((int64(output) * int64(c.tables.attenuation[level])) >> 16)
	if acc > acc18Max {
		acc = acc18Max
	} else if acc < acc18Min {
		acc = acc18Min
	}
	c.accBuffer[i*4+channel] = int32(acc)
}
