// SPDX-License-Identifier: EPL-2.0

package mixer

import "encoding/binary"

// MixChannels mixes every playing source into out as interleaved PCM in
// the negotiated output format. Called before Init, it fills out with
// silence and returns, so a misconfigured audio callback degrades to
// silence instead of failing on the real-time thread.
//
// The engine walks each source once per output frame, holding its guard
// and then the active buffer's guard for the whole per-frame decision.
// Waiting on a contended guard is deliberate: skipping the source instead
// would be an audible dropout. Nothing on this path allocates.
func MixChannels(out []byte) {
	mix(out, false)
}

// MixFake advances playback positions, looping and buffer-exhaustion state
// exactly as MixChannels would, but writes silence instead of computing
// samples. It keeps timing bookkeeping correct across callbacks while
// output is muted.
func MixFake(out []byte) {
	mix(out, true)
}

func mix(out []byte, fake bool) {
	state.mu.Lock()
	initialized := state.initialized
	format := state.format
	quality := state.quality
	state.mu.Unlock()

	clear(out)
	if !initialized {
		return
	}

	width := format.BytesPerChannel()
	stereo := format.Channels() == 2
	frame := format.SampleSize()

	sources.mu.RLock()
	defer sources.mu.RUnlock()

	for off := 0; off+frame <= len(out); off += frame {
		var left, right int32

		for _, s := range sources.entries {
			l, r := s.mixFrame(quality, stereo, fake)
			left += l
			right += r
		}

		if fake {
			continue
		}

		writeSample(out[off:], width, clip(left, width))
		if stereo {
			writeSample(out[off+width:], width, clip(right, width))
		}
	}
}

// mixFrame produces one output frame worth of samples for this source,
// advancing its queue when the active buffer runs out.
func (s *source) mixFrame(quality Quality, stereo, fake bool) (left, right int32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Playing {
		return 0, 0
	}

	b := buffers.lookup(s.current)
	if b == nil {
		// Queue drained, or never filled: the source parks itself.
		s.state = Stopped
		return 0, 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.data) == 0 {
		s.finishBufferLocked(b)
		return 0, 0
	}

	// The stepped tiers advance once per frame, on the last authoritative
	// call: the left one for mono payloads (the right side is served from
	// the sample cache), otherwise the last channel mixed.
	advanceLeft := !stereo || b.format.Channels() == 1

	if fake {
		s.skipSample(b, channelLeft, advanceLeft)
		if stereo {
			s.skipSample(b, channelRight, true)
		}
	} else {
		left = s.nextSample(b, quality, channelLeft, advanceLeft)
		if stereo {
			right = s.nextSample(b, quality, channelRight, true)
		}
	}

	if s.pos >= uint32(len(b.data)) {
		s.finishBufferLocked(b)
	}

	return left, right
}

// finishBufferLocked handles exhaustion of the active buffer: loop onward
// (wrapping to the queue head), or mark the buffer processed and move to
// the linked one. A looping source never marks buffers processed, so its
// queue stays reclaim-proof while it cycles.
func (s *source) finishBufferLocked(b *buffer) {
	s.pos = 0
	s.count = 0

	if s.looping {
		if b.next != 0 {
			s.current = b.next
		} else {
			s.current = s.head
		}

		return
	}

	b.state = bufferProcessed
	s.processed++
	s.current = b.next
}

// clip saturates an accumulated sample to the output integer range.
func clip(v int32, width int) int32 {
	if width == 1 {
		if v > 127 {
			return 127
		}
		if v < -128 {
			return -128
		}

		return v
	}

	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}

	return v
}

// writeSample stores one clipped sample at the output cursor.
func writeSample(dst []byte, width int, v int32) {
	if width == 1 {
		dst[0] = byte(int8(v))
		return
	}

	binary.LittleEndian.PutUint16(dst, uint16(int16(v)))
}
