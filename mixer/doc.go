// SPDX-License-Identifier: EPL-2.0

// Package mixer is a software PCM mixing engine: it combines any number of
// independently playing sources into one interleaved PCM stream for an
// OS/hardware audio callback to consume.
//
// Buffers hold decoded PCM payloads; sources are playback instances, each
// with its own queue of buffers, gain and looping flag. Both are addressed
// through opaque non-zero integer handles, with 0 reserved as the invalid
// handle.
//
// # Lifecycle
//
// The engine is a process-wide singleton:
//
//	mixer.Init(44100, mixer.FormatStereo16, mixer.QualityMedium, mixer.FlagNone)
//	defer mixer.Uninit()
//
// Init on an already initialized engine resets it. Accessors such as
// Frequency and OutputFormat report documented defaults before Init, so
// read paths never have to branch on lifecycle state.
//
// # Playback
//
//	bufs := mixer.GenBuffers(1)
//	mixer.BufferData(bufs[0], mixer.FormatMono16, pcm, 22050)
//
//	srcs := mixer.GenSources(1)
//	mixer.QueueBuffers(srcs[0], bufs)
//	mixer.Play(srcs[0])
//
// The audio callback then pulls mixed output at its own cadence:
//
//	mixer.MixChannels(out)
//
// MixFake performs the same queue and position bookkeeping while writing
// silence, for callbacks that must keep time while output is muted.
//
// # Resampling
//
// A buffer loaded at a frequency other than the output frequency is
// resampled per sample at one of three quality tiers (nearest, linear,
// cubic), selected at Init. The stepping is fixed-point integer
// arithmetic, so results are reproducible bit-for-bit.
//
// # Concurrency
//
// Control calls (queue, play, properties) and the audio callback may run
// concurrently: the singleton, every buffer and every source carry their
// own guard. Buffer payloads are owned by the registry; sources reference
// them by handle only, and reclamation of played buffers is explicit
// through UnqueueBuffers.
//
// # Errors
//
// Operations return sentinel errors and additionally record a one-shot
// error code readable through GetError. Paths that may run on the audio
// thread degrade to silence or a no-op instead of failing.
package mixer
