// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"math"
	"sync"
)

// SourceState is a source's playback state.
type SourceState int32

const (
	Initial SourceState = iota
	Playing
	Paused
	Stopped
)

func (s SourceState) String() string {
	switch s {
	case Initial:
		return "initial"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	}

	return "unknown state"
}

// source is one playback instance. Its queue is a chain of buffer handles
// linked through each buffer's next field: head is the persistent chain
// head (restart, loop and unqueue point) and current names the buffer
// being played. pos is always a byte cursor into current.
type source struct {
	mu      sync.Mutex
	state   SourceState
	gain    float32
	looping bool

	head    Handle
	current Handle
	pos     uint32
	count   uint32 // fractional resample accumulator, 65536 == one frame

	// cache holds the last sample computed on the authoritative channel,
	// pre-gain, so a mono source duplicates it onto the other output
	// channel without resampling twice.
	cache     int32
	processed uint32
}

type sourceRegistry struct {
	mu      sync.RWMutex
	entries map[Handle]*source
	last    Handle
}

var sources = sourceRegistry{entries: make(map[Handle]*source)}

func (r *sourceRegistry) reset() {
	r.mu.Lock()
	r.entries = make(map[Handle]*source)
	r.last = 0
	r.mu.Unlock()
}

func (r *sourceRegistry) lookup(h Handle) *source {
	if h == 0 {
		return nil
	}

	r.mu.RLock()
	s := r.entries[h]
	r.mu.RUnlock()

	return s
}

// GenSources allocates n fresh source handles in the initial state with
// unit gain. For n <= 0 it returns an empty handle list.
func GenSources(n int) []Handle {
	if n <= 0 {
		return nil
	}

	handles := make([]Handle, n)

	sources.mu.Lock()
	for i := range handles {
		sources.last++
		handles[i] = sources.last
		sources.entries[sources.last] = &source{gain: 1}
	}
	sources.mu.Unlock()

	return handles
}

// DeleteSources releases the given sources, unlinking their queues so the
// queued buffers become reclaimable again.
func DeleteSources(handles []Handle) error {
	var err error

	for _, h := range handles {
		s := sources.lookup(h)
		if s == nil {
			err = fail(ErrInvalidHandle)
			continue
		}

		s.mu.Lock()
		s.state = Stopped
		for b := buffers.lookup(s.head); b != nil; {
			b.mu.Lock()
			next := b.next
			b.next = 0
			b.state = bufferEmpty
			b.mu.Unlock()

			b = buffers.lookup(next)
		}
		s.head = 0
		s.current = 0
		s.mu.Unlock()

		sources.mu.Lock()
		delete(sources.entries, h)
		sources.mu.Unlock()
	}

	return err
}

// IsSource reports whether h names a live source.
func IsSource(h Handle) bool {
	return sources.lookup(h) != nil
}

// restartLocked rewinds the source to the head of its queue and marks every
// chained buffer playable again.
func (s *source) restartLocked() {
	s.current = s.head
	s.pos = 0
	s.count = 0
	s.cache = 0
	s.processed = 0

	for b := buffers.lookup(s.head); b != nil; {
		b.mu.Lock()
		b.state = bufferPlaying
		next := b.next
		b.mu.Unlock()

		b = buffers.lookup(next)
	}
}

// Play starts playback. A paused source resumes where it stopped; a source
// in any other state restarts from the head of its queue.
func Play(h Handle) error {
	s := sources.lookup(h)
	if s == nil {
		return fail(ErrInvalidHandle)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Paused {
		s.restartLocked()
	}
	s.state = Playing

	return nil
}

// Pause suspends a playing source in place. Pausing a source in any other
// state is a no-op.
func Pause(h Handle) error {
	s := sources.lookup(h)
	if s == nil {
		return fail(ErrInvalidHandle)
	}

	s.mu.Lock()
	if s.state == Playing {
		s.state = Paused
	}
	s.mu.Unlock()

	return nil
}

// Stop halts playback, leaving the queue intact. A later Play restarts
// from the queue head.
func Stop(h Handle) error {
	s := sources.lookup(h)
	if s == nil {
		return fail(ErrInvalidHandle)
	}

	s.mu.Lock()
	if s.state == Playing || s.state == Paused {
		s.state = Stopped
	}
	s.mu.Unlock()

	return nil
}

// Rewind returns the source to the initial state at the head of its queue
// without changing what is queued.
func Rewind(h Handle) error {
	s := sources.lookup(h)
	if s == nil {
		return fail(ErrInvalidHandle)
	}

	s.mu.Lock()
	s.restartLocked()
	s.state = Initial
	s.mu.Unlock()

	return nil
}

// QueueBuffers appends the given buffers, in order, to the end of the
// source's queue. All handles are validated before any linking happens so
// a bad handle cannot leave a half-linked chain.
func QueueBuffers(h Handle, bufferHandles []Handle) error {
	s := sources.lookup(h)
	if s == nil {
		return fail(ErrInvalidHandle)
	}

	for _, bh := range bufferHandles {
		if buffers.lookup(bh) == nil {
			return fail(ErrInvalidHandle)
		}
	}

	if len(bufferHandles) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Find the current chain tail.
	var tail *buffer
	for bh := s.head; bh != 0; {
		b := buffers.lookup(bh)
		if b == nil {
			break
		}

		b.mu.Lock()
		next := b.next
		b.mu.Unlock()

		if next == 0 {
			tail = b
			break
		}
		bh = next
	}

	for _, bh := range bufferHandles {
		// Revalidate: another control thread may have deleted the buffer
		// after the upfront check above.
		b := buffers.lookup(bh)
		if b == nil {
			continue
		}

		b.mu.Lock()
		b.state = bufferPlaying
		b.next = 0
		b.mu.Unlock()

		if tail == nil {
			s.head = bh
		} else {
			tail.mu.Lock()
			tail.next = bh
			tail.mu.Unlock()
		}

		// A fully drained source picks playback up at the new data.
		if s.current == 0 {
			s.current = bh
		}

		tail = b
	}

	return nil
}

// UnqueueBuffers removes up to n fully-played buffers from the head of the
// queue and returns their handles in the order they were queued. It stops
// at the first buffer that has not been fully played; unqueueing such a
// buffer is an error.
func UnqueueBuffers(h Handle, n int) ([]Handle, error) {
	s := sources.lookup(h)
	if s == nil {
		return nil, fail(ErrInvalidHandle)
	}

	var out []Handle

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(out) < n {
		bh := s.head
		if bh == 0 {
			break
		}

		b := buffers.lookup(bh)
		if b == nil {
			s.head = 0
			break
		}

		b.mu.Lock()
		if b.state != bufferProcessed {
			b.mu.Unlock()
			return out, fail(ErrBufferNotProcessed)
		}
		s.head = b.next
		b.next = 0
		b.state = bufferEmpty
		b.mu.Unlock()

		if s.processed > 0 {
			s.processed--
		}

		out = append(out, bh)
	}

	return out, nil
}

// queuedLocked counts the buffers currently linked into the queue.
func (s *source) queuedLocked() int32 {
	var n int32

	for b := buffers.lookup(s.head); b != nil; {
		n++

		b.mu.Lock()
		next := b.next
		b.mu.Unlock()

		b = buffers.lookup(next)
	}

	return n
}

// SourceProp selects a source attribute for the property accessors.
type SourceProp int

const (
	// Gain is the non-negative playback gain multiplier (float).
	Gain SourceProp = iota + 1
	// Looping selects whether the queue replays from its head when
	// exhausted (int, 0 or 1).
	Looping
	// State is the playback state (int, read-only).
	State
	// BuffersQueued counts buffers linked into the queue (int, read-only).
	BuffersQueued
	// BuffersProcessed counts fully-played buffers awaiting reclamation
	// (int, read-only).
	BuffersProcessed
)

// SetSourceFloat sets a float-valued source property.
func SetSourceFloat(h Handle, prop SourceProp, value float32) error {
	s := sources.lookup(h)
	if s == nil {
		return fail(ErrInvalidHandle)
	}

	switch prop {
	case Gain:
		if value < 0 || math.IsNaN(float64(value)) {
			return fail(ErrInvalidValue)
		}

		s.mu.Lock()
		s.gain = value
		s.mu.Unlock()

		return nil
	}

	return fail(ErrInvalidProperty)
}

// SetSourceInt sets an int-valued source property. State and the queue
// counters are read-only and refused here.
func SetSourceInt(h Handle, prop SourceProp, value int32) error {
	s := sources.lookup(h)
	if s == nil {
		return fail(ErrInvalidHandle)
	}

	switch prop {
	case Looping:
		if value != 0 && value != 1 {
			return fail(ErrInvalidValue)
		}

		s.mu.Lock()
		s.looping = value == 1
		s.mu.Unlock()

		return nil
	}

	return fail(ErrInvalidProperty)
}

// GetSourceFloat reads a float-valued source property.
func GetSourceFloat(h Handle, prop SourceProp) (float32, error) {
	s := sources.lookup(h)
	if s == nil {
		return 0, fail(ErrInvalidHandle)
	}

	switch prop {
	case Gain:
		s.mu.Lock()
		defer s.mu.Unlock()

		return s.gain, nil
	}

	return 0, fail(ErrInvalidProperty)
}

// GetSourceInt reads an int-valued source property.
func GetSourceInt(h Handle, prop SourceProp) (int32, error) {
	s := sources.lookup(h)
	if s == nil {
		return 0, fail(ErrInvalidHandle)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch prop {
	case Looping:
		if s.looping {
			return 1, nil
		}

		return 0, nil
	case State:
		return int32(s.state), nil
	case BuffersQueued:
		return s.queuedLocked(), nil
	case BuffersProcessed:
		return int32(s.processed), nil
	}

	return 0, fail(ErrInvalidProperty)
}
