// SPDX-License-Identifier: EPL-2.0

package mixer

import "sync"

// bufferState tracks where a buffer sits in a source queue's lifecycle.
type bufferState uint8

const (
	// bufferEmpty means the buffer is not linked into any queue.
	bufferEmpty bufferState = iota
	// bufferPlaying means the buffer is queued and not yet fully played.
	bufferPlaying
	// bufferProcessed means the buffer was fully consumed and can be
	// reclaimed through UnqueueBuffers.
	bufferProcessed
)

// buffer owns one PCM payload plus its playback metadata. Sources never
// hold the payload, only the handle; every access goes through the
// registry so stale handles are caught at lookup time.
type buffer struct {
	mu        sync.Mutex
	data      []byte
	format    Format
	frequency uint32

	// Fixed-point resample step against the output frequency:
	// stepHigh is the whole-frame advance per output frame in bytes,
	// stepLow the fractional remainder with 65536 meaning one extra frame.
	stepHigh uint32
	stepLow  uint32

	state bufferState
	next  Handle // following buffer in the owning source's queue
}

type bufferRegistry struct {
	mu      sync.RWMutex
	entries map[Handle]*buffer
	last    Handle
}

var buffers = bufferRegistry{entries: make(map[Handle]*buffer)}

func (r *bufferRegistry) reset() {
	r.mu.Lock()
	r.entries = make(map[Handle]*buffer)
	r.last = 0
	r.mu.Unlock()
}

func (r *bufferRegistry) lookup(h Handle) *buffer {
	if h == 0 {
		return nil
	}

	r.mu.RLock()
	b := r.entries[h]
	r.mu.RUnlock()

	return b
}

// GenBuffers allocates n fresh buffer handles with no payload. For n <= 0
// it returns an empty handle list rather than an error.
func GenBuffers(n int) []Handle {
	if n <= 0 {
		return nil
	}

	handles := make([]Handle, n)

	buffers.mu.Lock()
	for i := range handles {
		buffers.last++
		handles[i] = buffers.last
		buffers.entries[buffers.last] = &buffer{}
	}
	buffers.mu.Unlock()

	return handles
}

// DeleteBuffers releases the given buffers. A buffer still linked into a
// source queue is refused and left alive; the caller must unqueue it
// first. The registry checks only the buffer's own state and never scans
// sources.
func DeleteBuffers(handles []Handle) error {
	var err error

	for _, h := range handles {
		b := buffers.lookup(h)
		if b == nil {
			err = fail(ErrInvalidHandle)
			continue
		}

		b.mu.Lock()
		linked := b.state != bufferEmpty
		b.mu.Unlock()

		if linked {
			err = fail(ErrBufferQueued)
			continue
		}

		buffers.mu.Lock()
		delete(buffers.entries, h)
		buffers.mu.Unlock()
	}

	return err
}

// IsBuffer reports whether h names a live buffer.
func IsBuffer(h Handle) bool {
	return buffers.lookup(h) != nil
}

// BufferData stores a copy of data as the buffer's payload together with
// its originating format and frequency, and derives the fixed-point
// resample step pair against the current output frequency. The registry
// owns the copy; the caller's slice may be reused afterwards.
func BufferData(h Handle, format Format, data []byte, frequency uint32) error {
	if !format.Valid() {
		return fail(ErrInvalidFormat)
	}

	if frequency == 0 {
		return fail(ErrInvalidFrequency)
	}

	b := buffers.lookup(h)
	if b == nil {
		return fail(ErrInvalidHandle)
	}

	mixFrequency := Frequency()
	frame := uint32(format.SampleSize())

	payload := make([]byte, len(data))
	copy(payload, data)

	b.mu.Lock()
	b.data = payload
	b.format = format
	b.frequency = frequency
	b.stepHigh = frequency / mixFrequency * frame
	b.stepLow = uint32((uint64(frequency%mixFrequency) << 16) / uint64(mixFrequency))
	b.mu.Unlock()

	return nil
}

// BufferProp selects a buffer attribute for GetBufferProperty.
type BufferProp int

const (
	BufferFrequency BufferProp = iota + 1
	BufferBits
	BufferChannels
	BufferSize
)

// GetBufferProperty exposes a buffer attribute for diagnostic or boundary
// use. A buffer that never received data reports zero values.
func GetBufferProperty(h Handle, prop BufferProp) (int64, error) {
	b := buffers.lookup(h)
	if b == nil {
		return 0, fail(ErrInvalidHandle)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch prop {
	case BufferFrequency:
		return int64(b.frequency), nil
	case BufferBits:
		return int64(b.format.BytesPerChannel() * 8), nil
	case BufferChannels:
		return int64(b.format.Channels()), nil
	case BufferSize:
		return int64(len(b.data)), nil
	}

	return 0, fail(ErrInvalidProperty)
}

// BufferBytes exposes the owned payload. The returned slice aliases the
// registry's copy and must be treated as read-only.
func BufferBytes(h Handle) ([]byte, error) {
	b := buffers.lookup(h)
	if b == nil {
		return nil, fail(ErrInvalidHandle)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.data, nil
}
