// SPDX-License-Identifier: EPL-2.0

package mixer

// Handle identifies a buffer or a source in its registry. Zero is reserved
// as the invalid/null handle and never refers to a live object.
type Handle uint32

// Format describes the sample layout of a PCM stream, packed as
// (channels << 8) | bytesPerChannel. Only mono/stereo layouts at 8 or
// 16 bits per channel are valid; anything else is rejected at the boundary.
type Format uint16

const (
	FormatMono8    Format = 0x0101
	FormatMono16   Format = 0x0102
	FormatStereo8  Format = 0x0201
	FormatStereo16 Format = 0x0202
)

// Channels returns the channel count encoded in the format.
func (f Format) Channels() int { return int(f >> 8) }

// BytesPerChannel returns the width of a single channel sample in bytes.
func (f Format) BytesPerChannel() int { return int(f & 0xff) }

// SampleSize returns the size of one interleaved sample frame in bytes.
func (f Format) SampleSize() int { return f.Channels() * f.BytesPerChannel() }

// Valid reports whether f is one of the supported layouts.
func (f Format) Valid() bool {
	switch f {
	case FormatMono8, FormatMono16, FormatStereo8, FormatStereo16:
		return true
	}

	return false
}

func (f Format) String() string {
	switch f {
	case FormatMono8:
		return "mono 8-bit"
	case FormatMono16:
		return "mono 16-bit"
	case FormatStereo8:
		return "stereo 8-bit"
	case FormatStereo16:
		return "stereo 16-bit"
	}

	return "invalid format"
}

// Quality selects the resampling tier used by the mixing engine when a
// buffer's native frequency differs from the output frequency.
type Quality uint8

const (
	// QualityLow picks the nearest source sample.
	QualityLow Quality = iota
	// QualityMedium interpolates linearly between neighboring samples.
	QualityMedium
	// QualityHigh interpolates cubically over four neighboring samples.
	QualityHigh
)

func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	}

	return "unknown quality"
}

// Flags carries mixer-wide behavior flags negotiated at Init.
type Flags uint32

const FlagNone Flags = 0
