// SPDX-License-Identifier: EPL-2.0

// Package softmix is a software audio mixing library for games and other
// real-time applications.
//
// The core lives in the mixer subpackage: a handle-based engine that
// combines any number of playing sources, each with its own queue of PCM
// buffers, gain and looping flag, into a single interleaved PCM stream for
// an OS audio callback. Buffers loaded at a different sample rate than the
// output are resampled on the fly at a configurable quality tier.
//
// # Supported Formats
//
// The package itself performs no file parsing; decoders under formats/
// produce the PCM:
//   - WAV (PCM 16-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16-bit) via formats/aiff
//
// # Quick Start
//
//	mixer.Init(44100, mixer.FormatStereo16, mixer.QualityMedium, mixer.FlagNone)
//	defer mixer.Uninit()
//
//	// Decode an audio file
//	file, _ := os.Open("shot.wav")
//	src, _ := wav.Decoder{}.Decode(file)
//
//	// Upload it into a mixer buffer and start a source playing it
//	buf := mixer.GenBuffers(1)
//	softmix.LoadSource(buf[0], src, 4096)
//
//	snd := mixer.GenSources(1)
//	mixer.QueueBuffers(snd[0], buf)
//	mixer.Play(snd[0])
//
//	// In the audio callback:
//	mixer.MixChannels(out)
//
// # Format Decoders
//
// Each format has its own decoder implementing audio.Decoder. Decoders can
// be registered in an audio.Registry and selected by key, which LoadReader
// builds on:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	reg.Register("mp3", mp3.Decoder{})
//
//	softmix.LoadReader(buf[0], reg, "mp3", file, 4096)
//
// # Buffer Reclamation
//
// The mixer never frees played buffers on its own. A source counts the
// buffers it has fully played; the caller claims them back for reuse:
//
//	n, _ := mixer.GetSourceInt(snd[0], mixer.BuffersProcessed)
//	done, _ := mixer.UnqueueBuffers(snd[0], int(n))
//
// See the mixer subpackage for the full engine documentation.
package softmix
