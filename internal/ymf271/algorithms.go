package ymf271

// update4OpFM renders group j in sync-0 (4-operator FM) mode for
// proc_smpls samples, mixing the result into mixp. The 16 algorithms are
// transcribed directly from the chip's per-algorithm operator wiring;
// each case only differs in which slots modulate which, and which slots
// are carriers (and therefore PFM-eligible).
func update4OpFM(c *Chip, j int, mixp []int32, procSmpls int, pfmEnabled bool) {
	slot1, slot2, slot3, slot4 := j, j+12, j+24, j+36
	t := c.tables

	if !c.slots[slot1].active {
		return
	}

	op := func(slotnum int, inp int64, carrier bool) int64 {
		if carrier && pfmEnabled {
			return calculateOpPFM(c, t, &c.slots[slotnum], inp)
		}
		return calculateOp(t, &c.slots[slotnum], inp)
	}

	for i := 0; i < procSmpls; i++ {
		var output1, output2, output3, output4 int64
		var phaseMod1, phaseMod2, phaseMod3 int64

		switch c.slots[slot1].algorithm {
		case 0:
			phaseMod1 = op(slot1, opInputFeedback, false)
			setFeedback(&c.slots[slot1], phaseMod1)
			phaseMod3 = op(slot3, phaseMod1, false)
			phaseMod2 = op(slot2, phaseMod3, false)
			output4 = op(slot4, phaseMod2, true)
		case 1:
			phaseMod1 = op(slot1, opInputFeedback, false)
			phaseMod3 = op(slot3, phaseMod1, false)
			setFeedback(&c.slots[slot1], phaseMod3)
			phaseMod2 = op(slot2, phaseMod3, false)
			output4 = op(slot4, phaseMod2, true)
		case 2:
			phaseMod1 = op(slot1, opInputFeedback, false)
			setFeedback(&c.slots[slot1], phaseMod1)
			phaseMod3 = op(slot3, opInputNone, false)
			phaseMod2 = op(slot2, phaseMod1+phaseMod3, false)
			output4 = op(slot4, phaseMod2, true)
		case 3:
			phaseMod1 = op(slot1, opInputFeedback, false)
			setFeedback(&c.slots[slot1], phaseMod1)
			phaseMod3 = op(slot3, opInputNone, false)
			phaseMod2 = op(slot2, phaseMod3, false)
			output4 = op(slot4, phaseMod1+phaseMod2, true)
		case 4:
			phaseMod1 = op(slot1, opInputFeedback, false)
			setFeedback(&c.slots[slot1], phaseMod1)
			phaseMod3 = op(slot3, phaseMod1, false)
			phaseMod2 = op(slot2, opInputNone, false)
			output4 = op(slot4, phaseMod3+phaseMod2, true)
		case 5:
			phaseMod1 = op(slot1, opInputFeedback, false)
			phaseMod3 = op(slot3, phaseMod1, false)
			setFeedback(&c.slots[slot1], phaseMod3)
			phaseMod2 = op(slot2, opInputNone, false)
			output4 = op(slot4, phaseMod3+phaseMod2, true)
		case 6:
			phaseMod1 = op(slot1, opInputFeedback, false)
			setFeedback(&c.slots[slot1], phaseMod1)
			output3 = op(slot3, phaseMod1, true)
			phaseMod2 = op(slot2, opInputNone, false)
			output4 = op(slot4, phaseMod2, true)
		case 7:
			phaseMod1 = op(slot1, opInputFeedback, false)
			phaseMod3 = op(slot3, phaseMod1, false)
			setFeedback(&c.slots[slot1], phaseMod3)
			if pfmEnabled {
				output3 = calculateOpPFM(c, t, &c.slots[slot3], phaseMod1)
			} else {
				output3 = phaseMod3
			}
			phaseMod2 = op(slot2, opInputNone, false)
			output4 = op(slot4, phaseMod2, true)
		case 8:
			phaseMod1 = op(slot1, opInputFeedback, false)
			setFeedback(&c.slots[slot1], phaseMod1)
			if pfmEnabled {
				output1 = calculateOpPFM(c, t, &c.slots[slot1], opInputFeedback)
			} else {
				output1 = phaseMod1
			}
			phaseMod3 = op(slot3, opInputNone, false)
			phaseMod2 = op(slot2, phaseMod3, false)
			output4 = op(slot4, phaseMod2, true)
		case 9:
			phaseMod1 = op(slot1, opInputFeedback, false)
			setFeedback(&c.slots[slot1], phaseMod1)
			if pfmEnabled {
				output1 = calculateOpPFM(c, t, &c.slots[slot1], opInputFeedback)
			} else {
				output1 = phaseMod1
			}
			phaseMod3 = op(slot3, opInputNone, false)
			phaseMod2 = op(slot2, opInputNone, false)
			output4 = op(slot4, phaseMod3+phaseMod2, true)
		case 10:
			phaseMod1 = op(slot1, opInputFeedback, false)
			setFeedback(&c.slots[slot1], phaseMod1)
			output3 = op(slot3, phaseMod1, true)
			output2 = op(slot2, opInputNone, true)
			output4 = op(slot4, opInputNone, true)
		case 11:
			phaseMod1 = op(slot1, opInputFeedback, false)
			phaseMod3 = op(slot3, phaseMod1, false)
			setFeedback(&c.slots[slot1], phaseMod3)
			if pfmEnabled {
				output3 = calculateOpPFM(c, t, &c.slots[slot3], phaseMod1)
			} else {
				output3 = phaseMod3
			}
			output2 = op(slot2, opInputNone, true)
			output4 = op(slot4, opInputNone, true)
		case 12:
			phaseMod1 = op(slot1, opInputFeedback, false)
			setFeedback(&c.slots[slot1], phaseMod1)
			output3 = op(slot3, phaseMod1, true)
			output2 = op(slot2, phaseMod1, true)
			output4 = op(slot4, phaseMod1, true)
		case 13:
			phaseMod1 = op(slot1, opInputFeedback, false)
			setFeedback(&c.slots[slot1], phaseMod1)
			if pfmEnabled {
				output1 = calculateOpPFM(c, t, &c.slots[slot1], opInputFeedback)
			} else {
				output1 = phaseMod1
			}
			phaseMod3 = op(slot3, opInputNone, false)
			output2 = op(slot2, phaseMod3, true)
			output4 = op(slot4, opInputNone, true)
		case 14:
			phaseMod1 = op(slot1, opInputFeedback, false)
			setFeedback(&c.slots[slot1], phaseMod1)
			if pfmEnabled {
				output1 = calculateOpPFM(c, t, &c.slots[slot1], opInputFeedback)
			} else {
				output1 = phaseMod1
			}
			output3 = op(slot3, phaseMod1, true)
			phaseMod2 = op(slot2, opInputNone, false)
			output4 = op(slot4, phaseMod2, true)
		case 15:
			phaseMod1 = op(slot1, opInputFeedback, false)
			setFeedback(&c.slots[slot1], phaseMod1)
			if pfmEnabled {
				output1 = calculateOpPFM(c, t, &c.slots[slot1], opInputFeedback)
			} else {
				output1 = phaseMod1
			}
			output3 = op(slot3, opInputNone, true)
			output2 = op(slot2, opInputNone, true)
			output4 = op(slot4, opInputNone, true)
		}

		mixFourOperators(t, mixp, i,
			output1, &c.slots[slot1],
			output2, &c.slots[slot2],
			output3, &c.slots[slot3],
			output4, &c.slots[slot4])
	}
}

// update2OpFM renders group j in sync-1 (2x two-operator FM) mode: the
// group's 4 slots form two independent two-operator pairs (bank0+bank2,
// bank1+bank3).
func update2OpFM(c *Chip, j int, mixp []int32, procSmpls int, pfmEnabled bool) {
	t := c.tables
	for opPair := 0; opPair < 2; opPair++ {
		slot1 := j + opPair*12
		slot3 := j + (opPair+2)*12

		if !c.slots[slot1].active {
			continue
		}

		for i := 0; i < procSmpls; i++ {
			var output1, output3 int64
			var phaseMod1, phaseMod3 int64

			switch c.slots[slot1].algorithm & 3 {
			case 0:
				phaseMod1 = calculateOp(t, &c.slots[slot1], opInputFeedback)
				setFeedback(&c.slots[slot1], phaseMod1)
				if pfmEnabled {
					output3 = calculateOpPFM(c, t, &c.slots[slot3], phaseMod1)
				} else {
					output3 = calculateOp(t, &c.slots[slot3], phaseMod1)
				}
			case 1:
				phaseMod1 = calculateOp(t, &c.slots[slot1], opInputFeedback)
				phaseMod3 = calculateOp(t, &c.slots[slot3], phaseMod1)
				setFeedback(&c.slots[slot1], phaseMod3)
				if pfmEnabled {
					output3 = calculateOpPFM(c, t, &c.slots[slot3], phaseMod1)
				} else {
					output3 = phaseMod3
				}
			case 2:
				phaseMod1 = calculateOp(t, &c.slots[slot1], opInputFeedback)
				setFeedback(&c.slots[slot1], phaseMod1)
				if pfmEnabled {
					output1 = calculateOpPFM(c, t, &c.slots[slot1], opInputFeedback)
				} else {
					output1 = phaseMod1
				}
				if pfmEnabled {
					output3 = calculateOpPFM(c, t, &c.slots[slot3], opInputNone)
				} else {
					output3 = calculateOp(t, &c.slots[slot3], opInputNone)
				}
			case 3:
				phaseMod1 = calculateOp(t, &c.slots[slot1], opInputFeedback)
				setFeedback(&c.slots[slot1], phaseMod1)
				if pfmEnabled {
					output1 = calculateOpPFM(c, t, &c.slots[slot1], opInputFeedback)
				} else {
					output1 = phaseMod1
				}
				if pfmEnabled {
					output3 = calculateOpPFM(c, t, &c.slots[slot3], phaseMod1)
				} else {
					output3 = calculateOp(t, &c.slots[slot3], phaseMod1)
				}
			}

			ch0 := attenSum(t, output1, c.slots[slot1].ch0Level) + attenSum(t, output3, c.slots[slot3].ch0Level)
			ch1 := attenSum(t, output1, c.slots[slot1].ch1Level) + attenSum(t, output3, c.slots[slot3].ch1Level)
			ch2 := attenSum(t, output1, c.slots[slot1].ch2Level) + attenSum(t, output3, c.slots[slot3].ch2Level)
			ch3 := attenSum(t, output1, c.slots[slot1].ch3Level) + attenSum(t, output3, c.slots[slot3].ch3Level)

			mixp[i*4+0] += int32(ch0)
			mixp[i*4+1] += int32(ch1)
			mixp[i*4+2] += int32(ch2)
			mixp[i*4+3] += int32(ch3)
		}
	}
}

// update3OpFMPCM renders group j in sync-2 (3-operator FM driving a
// fourth, independent PCM slot) mode.
func update3OpFMPCM(c *Chip, j int, mixp []int32, procSmpls int, pfmEnabled bool) {
	t := c.tables
	slot1, slot2, slot3 := j, j+12, j+24

	if c.slots[slot1].active {
		for i := 0; i < procSmpls; i++ {
			var output1, output2, output3 int64
			var phaseMod1, phaseMod3 int64

			op := func(slotnum int, inp int64, carrier bool) int64 {
				if carrier && pfmEnabled {
					return calculateOpPFM(c, t, &c.slots[slotnum], inp)
				}
				return calculateOp(t, &c.slots[slotnum], inp)
			}

			switch c.slots[slot1].algorithm & 7 {
			case 0:
				phaseMod1 = op(slot1, opInputFeedback, false)
				setFeedback(&c.slots[slot1], phaseMod1)
				phaseMod3 = op(slot3, phaseMod1, false)
				output2 = op(slot2, phaseMod3, true)
			case 1:
				phaseMod1 = op(slot1, opInputFeedback, false)
				phaseMod3 = op(slot3, phaseMod1, false)
				setFeedback(&c.slots[slot1], phaseMod3)
				output2 = op(slot2, phaseMod3, true)
			case 2:
				phaseMod1 = op(slot1, opInputFeedback, false)
				setFeedback(&c.slots[slot1], phaseMod1)
				phaseMod3 = op(slot3, opInputNone, false)
				output2 = op(slot2, phaseMod1+phaseMod3, true)
			case 3:
				phaseMod1 = op(slot1, opInputFeedback, false)
				setFeedback(&c.slots[slot1], phaseMod1)
				if pfmEnabled {
					output1 = calculateOpPFM(c, t, &c.slots[slot1], opInputFeedback)
				} else {
					output1 = phaseMod1
				}
				phaseMod3 = op(slot3, opInputNone, false)
				output2 = op(slot2, phaseMod3, true)
			case 4:
				phaseMod1 = op(slot1, opInputFeedback, false)
				setFeedback(&c.slots[slot1], phaseMod1)
				output3 = op(slot3, phaseMod1, true)
				output2 = op(slot2, opInputNone, true)
			case 5:
				phaseMod1 = op(slot1, opInputFeedback, false)
				phaseMod3 = op(slot3, phaseMod1, false)
				setFeedback(&c.slots[slot1], phaseMod3)
				if pfmEnabled {
					output3 = calculateOpPFM(c, t, &c.slots[slot3], phaseMod1)
				} else {
					output3 = phaseMod3
				}
				output2 = op(slot2, opInputNone, true)
			case 6:
				phaseMod1 = op(slot1, opInputFeedback, false)
				setFeedback(&c.slots[slot1], phaseMod1)
				if pfmEnabled {
					output1 = calculateOpPFM(c, t, &c.slots[slot1], opInputFeedback)
				} else {
					output1 = phaseMod1
				}
				output3 = op(slot3, opInputNone, true)
				output2 = op(slot2, opInputNone, true)
			case 7:
				phaseMod1 = op(slot1, opInputFeedback, false)
				setFeedback(&c.slots[slot1], phaseMod1)
				if pfmEnabled {
					output1 = calculateOpPFM(c, t, &c.slots[slot1], opInputFeedback)
				} else {
					output1 = phaseMod1
				}
				output3 = op(slot3, phaseMod1, true)
				output2 = op(slot2, opInputNone, true)
			}

			mixThreeOperators(t, mixp, i,
				output1, &c.slots[slot1],
				output2, &c.slots[slot2],
				output3, &c.slots[slot3])
		}
	}

	updatePCM(c, j+3*12, c.mixBuffer, procSmpls)
}

func attenSum(t *tables, output int64, level uint8) int64 {
	return (output * int64(t.attenuation[level])) >> 16
}

func mixFourOperators(t *tables, mixp []int32, i int,
	o1 int64, s1 *slot, o2 int64, s2 *slot, o3 int64, s3 *slot, o4 int64, s4 *slot) {
	mixp[i*4+0] += int32(attenSum(t, o1, s1.ch0Level) + attenSum(t, o2, s2.ch0Level) + attenSum(t, o3, s3.ch0Level) + attenSum(t, o4, s4.ch0Level))
	mixp[i*4+1] += int32(attenSum(t, o1, s1.ch1Level) + attenSum(t, o2, s2.ch1Level) + attenSum(t, o3, s3.ch1Level) + attenSum(t, o4, s4.ch1Level))
	mixp[i*4+2] += int32(attenSum(t, o1, s1.ch2Level) + attenSum(t, o2, s2.ch2Level) + attenSum(t, o3, s3.ch2Level) + attenSum(t, o4, s4.ch2Level))
	mixp[i*4+3] += int32(attenSum(t, o1, s1.ch3Level) + attenSum(t, o2, s2.ch3Level) + attenSum(t, o3, s3.ch3Level) + attenSum(t, o4, s4.ch3Level))
}

func mixThreeOperators(t *tables, mixp []int32, i int,
	o1 int64, s1 *slot, o2 int64, s2 *slot, o3 int64, s3 *slot) {
	mixp[i*4+0] += int32(attenSum(t, o1, s1.ch0Level) + attenSum(t, o2, s2.ch0Level) + attenSum(t, o3, s3.ch0Level))
	mixp[i*4+1] += int32(attenSum(t, o1, s1.ch1Level) + attenSum(t, o2, s2.ch1Level) + attenSum(t, o3, s3.ch1Level))
	mixp[i*4+2] += int32(attenSum(t, o1, s1.ch2Level) + attenSum(t, o2, s2.ch2Level) + attenSum(t, o3, s3.ch2Level))
	mixp[i*4+3] += int32(attenSum(t, o1, s1.ch3Level) + attenSum(t, o2, s2.ch3Level) + attenSum(t, o3, s3.ch3Level))
}
