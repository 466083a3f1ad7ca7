// SPDX-License-Identifier: EPL-2.0

package mixer

import "sync"

// Values reported by the accessors before Init has negotiated real ones.
// The fallback keeps every read path branch-free on lifecycle state.
const (
	DefaultFrequency uint32 = 44100
	DefaultFormat           = FormatStereo16
	DefaultQuality          = QualityMedium
)

// mixerState is the process-wide singleton holding the negotiated output
// configuration and the last-error slot. It is guarded independently from
// the buffer and source registries.
type mixerState struct {
	mu          sync.Mutex
	initialized bool
	frequency   uint32
	format      Format
	quality     Quality
	flags       Flags
	lastCode    Code
}

var state mixerState

// Init installs the negotiated output configuration. Calling Init on an
// already initialized mixer performs an implicit Uninit first, so repeated
// calls reset state rather than accumulate it.
func Init(frequency uint32, format Format, quality Quality, flags Flags) error {
	if frequency == 0 {
		return fail(ErrInvalidFrequency)
	}

	if !format.Valid() {
		return fail(ErrInvalidFormat)
	}

	state.mu.Lock()
	initialized := state.initialized
	state.mu.Unlock()

	if initialized {
		Uninit()
	}

	state.mu.Lock()
	state.initialized = true
	state.frequency = frequency
	state.format = format
	state.quality = quality
	state.flags = flags
	state.mu.Unlock()

	return nil
}

// Uninit clears the mixer configuration and empties both registries. It is
// a no-op when the mixer was never initialized, so teardown paths may call
// it unconditionally.
func Uninit() {
	state.mu.Lock()
	state.initialized = false
	state.frequency = 0
	state.format = 0
	state.quality = 0
	state.flags = 0
	state.lastCode = CodeNoError
	state.mu.Unlock()

	sources.reset()
	buffers.reset()
}

// Initialized reports whether Init has installed a configuration.
func Initialized() bool {
	state.mu.Lock()
	defer state.mu.Unlock()

	return state.initialized
}

// GetError returns the last recorded error code and clears it.
func GetError() Code {
	state.mu.Lock()
	defer state.mu.Unlock()

	code := state.lastCode
	state.lastCode = CodeNoError

	return code
}

// fail records the one-shot error code and returns err unchanged.
func fail(err error) error {
	state.mu.Lock()
	state.lastCode = CodeInvalidOperation
	state.mu.Unlock()

	return err
}

// Frequency returns the negotiated output frequency in Hz, or
// DefaultFrequency before Init.
func Frequency() uint32 {
	state.mu.Lock()
	defer state.mu.Unlock()

	if !state.initialized {
		return DefaultFrequency
	}

	return state.frequency
}

// OutputFormat returns the negotiated output format, or DefaultFormat
// before Init.
func OutputFormat() Format {
	state.mu.Lock()
	defer state.mu.Unlock()

	if !state.initialized {
		return DefaultFormat
	}

	return state.format
}

// Channels returns the output channel count.
func Channels() int {
	return OutputFormat().Channels()
}

// OutputQuality returns the negotiated resampling quality, or
// DefaultQuality before Init.
func OutputQuality() Quality {
	state.mu.Lock()
	defer state.mu.Unlock()

	if !state.initialized {
		return DefaultQuality
	}

	return state.quality
}

// OutputFlags returns the negotiated flags, or FlagNone before Init.
func OutputFlags() Flags {
	state.mu.Lock()
	defer state.mu.Unlock()

	if !state.initialized {
		return FlagNone
	}

	return state.flags
}
