package ymf271

import "github.com/Rennsou1/ymf271/internal/debug"

// Update renders samples stereo frames into left/right, which must each be
// at least samples long. Rendering happens in mixbufSamples-sized chunks
// (matching the original's internal streaming buffer), clearing the mix
// and accumulator buffers between chunks, dispatching each of the 12
// groups through its sync mode, and finally folding the 4-channel mix
// down to stereo.
func (c *Chip) Update(samples int, left, right []int32) {
	remaining := samples
	outOffset := 0

	for remaining > 0 {
		procSmpls := remaining
		if procSmpls > int(c.mixbufSamples) {
			procSmpls = int(c.mixbufSamples)
		}

		c.renderChunk(procSmpls)

		for i := 0; i < procSmpls; i++ {
			ch0 := c.mixBuffer[i*4+0]
			ch1 := c.mixBuffer[i*4+1]
			ch2 := c.mixBuffer[i*4+2]
			ch3 := c.mixBuffer[i*4+3]

			l := ch0 + ((ch2 * 5) >> 8)
			r := ch1 + ((ch3 * 5) >> 8)

			left[outOffset+i] = l >> 2
			right[outOffset+i] = r >> 2
		}

		outOffset += procSmpls
		remaining -= procSmpls
	}
}

// UpdateInt16 renders samples stereo frames like Update, clamping each
// frame to a signed 16-bit sample for direct playback (e.g. queuing to an
// SDL2 audio device).
func (c *Chip) UpdateInt16(samples int, left, right []int16) {
	buf32L := make([]int32, samples)
	buf32R := make([]int32, samples)
	c.Update(samples, buf32L, buf32R)
	for i := 0; i < samples; i++ {
		left[i] = clampSample(buf32L[i])
		right[i] = clampSample(buf32R[i])
	}
}

func clampSample(v int32) int16 {
	if v > maxOut {
		return maxOut
	}
	if v < minOut {
		return minOut
	}
	return int16(v)
}

// UpdateQuad renders samples frames of all four raw mix channels without
// the stereo fold-down, for hosts that want to
// inspect or route ch2/ch3 ("rear"/auxiliary) independently instead of
// folding them into left/right.
func (c *Chip) UpdateQuad(samples int, ch0, ch1, ch2, ch3 []int32) {
	remaining := samples
	outOffset := 0

	for remaining > 0 {
		procSmpls := remaining
		if procSmpls > int(c.mixbufSamples) {
			procSmpls = int(c.mixbufSamples)
		}

		c.renderChunk(procSmpls)

		for i := 0; i < procSmpls; i++ {
			ch0[outOffset+i] = c.mixBuffer[i*4+0]
			ch1[outOffset+i] = c.mixBuffer[i*4+1]
			ch2[outOffset+i] = c.mixBuffer[i*4+2]
			ch3[outOffset+i] = c.mixBuffer[i*4+3]
		}

		outOffset += procSmpls
		remaining -= procSmpls
	}
}

// renderChunk clears the mix/accumulator buffers and dispatches all 12
// groups for procSmpls samples, folding accBuffer (the accon=1 distortion
// path) back into mixBuffer once every group has rendered.
func (c *Chip) renderChunk(procSmpls int) {
	for i := 0; i < procSmpls*4; i++ {
		c.mixBuffer[i] = 0
		c.accBuffer[i] = 0
	}

	for j := 0; j < 12; j++ {
		g := &c.groups[j]
		if g.muted {
			continue
		}

		pfmEnabled := g.pfm && (j == 0 || j == 4 || j == 8)
		if pfmEnabled && g.sync == 3 {
			c.logf(debug.ComponentDispatch, "group %d: pfm requested but sync=3 (4xPCM), gated off", j)
		}

		switch g.sync {
		case 0:
			update4OpFM(c, j, c.mixBuffer, procSmpls, pfmEnabled)
		case 1:
			update2OpFM(c, j, c.mixBuffer, procSmpls, pfmEnabled)
		case 2:
			update3OpFMPCM(c, j, c.mixBuffer, procSmpls, pfmEnabled)
		case 3:
			for bank := 0; bank < 4; bank++ {
				updatePCM(c, j+bank*12, c.mixBuffer, procSmpls)
			}
		}
	}

	for i := 0; i < procSmpls*4; i++ {
		c.mixBuffer[i] += c.accBuffer[i]
	}
}
