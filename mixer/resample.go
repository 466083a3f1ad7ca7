// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"encoding/binary"

	"github.com/ik5/softmix/utils"
)

// fracOne is the whole-step threshold of the fractional accumulator: when
// count crosses it, the position advances one extra sample frame. Keeping
// the stepping in integer arithmetic makes long playback bit-for-bit
// reproducible, with no floating-point drift.
const fracOne = 1 << 16

type channelSide uint8

const (
	channelLeft channelSide = iota
	channelRight
)

// identityStep reports whether the buffer plays at exactly the output
// frequency, enabling the copy-through fast path.
func (b *buffer) identityStep() bool {
	return b.stepLow == 0 && b.stepHigh == uint32(b.format.SampleSize())
}

// sampleAt reads one signed sample at byte offset off, clamped to the
// payload bounds so interpolation near the edges never reads outside the
// buffer.
func sampleAt(b *buffer, off int64) int32 {
	width := int64(b.format.BytesPerChannel())
	if int64(len(b.data)) < width {
		return 0
	}

	if off < 0 {
		off = 0
	}
	if limit := int64(len(b.data)) - width; off > limit {
		off = limit
	}

	if width == 1 {
		return int32(int8(b.data[off]))
	}

	return int32(int16(binary.LittleEndian.Uint16(b.data[off:])))
}

// stepLocked advances the fixed-point cursor by the buffer's step pair,
// carrying accumulator overflow into one extra whole frame.
func (s *source) stepLocked(b *buffer) {
	s.pos += b.stepHigh
	s.count += b.stepLow

	if s.count >= fracOne {
		s.count -= fracOne
		s.pos += uint32(b.format.SampleSize())
	}
}

// nextSample produces one gain-scaled output sample for the requested
// channel and keeps the source's position bookkeeping current. advance
// marks the final resampling call of the output frame; the stepped tiers
// move the cursor exactly once per frame, on that call. The identity tier
// instead advances one channel width on every call it serves, which walks
// an interleaved payload in natural order as the engine alternates sides.
//
// Both the source and buffer guards must be held.
func (s *source) nextSample(b *buffer, quality Quality, side channelSide, advance bool) int32 {
	mono := b.format.Channels() == 1
	if mono && side == channelRight {
		// Mono duplication: reuse the sample computed by the preceding
		// left-channel call instead of resampling again. The cache is
		// written only on that authoritative call.
		return gainScale(s.cache, s.gain)
	}

	width := b.format.BytesPerChannel()
	frame := int64(b.format.SampleSize())

	var off int64 // channel offset within the sample frame
	if side == channelRight {
		off = int64(width)
	}

	var v int32
	if b.identityStep() {
		v = sampleAt(b, int64(s.pos))
		s.pos += uint32(width)
	} else {
		pos := int64(s.pos)

		switch quality {
		case QualityLow:
			v = sampleAt(b, pos+off)
		case QualityHigh:
			x := float32(s.count) / fracOne
			y0 := float32(sampleAt(b, pos-frame+off))
			y1 := float32(sampleAt(b, pos+off))
			y2 := float32(sampleAt(b, pos+frame+off))
			y3 := float32(sampleAt(b, pos+2*frame+off))
			v = int32(utils.CubicInterpolate(y0, y1, y2, y3, x))
		default:
			s0 := sampleAt(b, pos+off)
			s1 := sampleAt(b, pos+frame+off)
			v = s0 + int32(int64(s1-s0)*int64(s.count)>>16)
		}

		if advance {
			s.stepLocked(b)
		}
	}

	if mono {
		s.cache = v
	}

	return gainScale(v, s.gain)
}

// skipSample performs the position bookkeeping of nextSample without
// touching the payload, for the timing-only mixing path.
func (s *source) skipSample(b *buffer, side channelSide, advance bool) {
	if b.format.Channels() == 1 && side == channelRight {
		return
	}

	if b.identityStep() {
		s.pos += uint32(b.format.BytesPerChannel())
		return
	}

	if advance {
		s.stepLocked(b)
	}
}

// gainScale applies the source gain to a computed sample.
func gainScale(v int32, gain float32) int32 {
	if gain == 1 {
		return v
	}

	return int32(float32(v) * gain)
}
