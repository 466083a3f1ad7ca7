package audio

import "fmt"

// Downmixer folds a multi-channel source down to 1 or 2 output channels by
// averaging, so any decoder output fits a mono/stereo-only consumer. For
// stereo output, even input channels fold into the left side and odd ones
// into the right.
type Downmixer struct {
	src Source
	out int
	tmp []int16
}

// NewDownmixer wraps src. outChannels outside 1..2 is clamped, and never
// exceeds the source's own channel count (folding only, no upmixing).
func NewDownmixer(src Source, outChannels int) *Downmixer {
	if outChannels < 1 {
		outChannels = 1
	} else if outChannels > 2 {
		outChannels = 2
	}
	if outChannels > src.Channels() {
		outChannels = src.Channels()
	}

	return &Downmixer{
		src: src,
		out: outChannels,
		tmp: make([]int16, 4096),
	}
}

func (m *Downmixer) SampleRate() int { return m.src.SampleRate() }
func (m *Downmixer) Channels() int   { return m.out }
func (m *Downmixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *Downmixer) ReadSamples(dst []int16) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == m.out {
		// Pass-through: nothing to fold
		return m.src.ReadSamples(dst)
	}

	if len(dst)%m.out != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := len(dst) / m.out
	samplesNeeded := frames * channels

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]int16, samplesNeeded)
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	framesRead := n / channels

	if m.out == 1 {
		for f := 0; f < framesRead; f++ {
			base := f * channels
			sum := int32(0)
			for c := 0; c < channels; c++ {
				sum += int32(m.tmp[base+c])
			}
			dst[f] = int16(sum / int32(channels))
		}

		return framesRead, err
	}

	// Stereo fold: alternate input channels between the two sides.
	leftCount := int32((channels + 1) / 2)
	rightCount := int32(channels / 2)

	for f := 0; f < framesRead; f++ {
		base := f * channels
		var left, right int32
		for c := 0; c < channels; c++ {
			if c%2 == 0 {
				left += int32(m.tmp[base+c])
			} else {
				right += int32(m.tmp[base+c])
			}
		}
		dst[f*2] = int16(left / leftCount)
		dst[f*2+1] = int16(right / rightCount)
	}

	return framesRead * 2, err
}
