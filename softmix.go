package softmix

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/softmix/audio"
	"github.com/ik5/softmix/mixer"
)

// LoadSource drains src and uploads its PCM to the buffer named by h
// through the mixer's data-loading boundary. Sources with more channels
// than the mixer's output layout are folded down first, so a stereo file
// loads as mono when the mixer itself runs mono.
//
// Parameters:
//   - h: a buffer handle from mixer.GenBuffers
//   - src: the audio source to drain (implements audio.Source)
//   - bufferSize: size of the read buffer in samples (e.g., 4096)
//
// The source is read to completion; for streams this means the whole
// stream is held in memory as one buffer payload. Queue multiple buffers
// on a source to play longer material in slices.
func LoadSource(h mixer.Handle, src audio.Source, bufferSize int) error {
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	target := mixer.Channels()
	if target > 2 {
		target = 2
	}
	if src.Channels() > target {
		src = audio.NewDownmixer(src, target)
	}

	format := mixer.FormatMono16
	if src.Channels() == 2 {
		format = mixer.FormatStereo16
	}

	buf := make([]int16, bufferSize)
	// Assume ~2 seconds initially and grow as needed
	pcm := make([]byte, 0, int(mixer.Frequency())*2*format.SampleSize())

	for {
		n, err := src.ReadSamples(buf)
		for i := 0; i < n; i++ {
			pcm = binary.LittleEndian.AppendUint16(pcm, uint16(buf[i]))
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return fmt.Errorf("%w", err)
		}

		if n == 0 {
			break
		}
	}

	return mixer.BufferData(h, format, pcm, uint32(src.SampleRate()))
}

// LoadReader decodes r with the decoder registered under format in reg and
// loads the result into the buffer named by h. The decoded source is
// closed before returning.
func LoadReader(h mixer.Handle, reg *audio.Registry, format string, r io.Reader, bufferSize int) error {
	dec, ok := reg.Get(format)
	if !ok {
		return ErrUnknownFormat
	}

	src, err := dec.Decode(r)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer src.Close()

	return LoadSource(h, src, bufferSize)
}
