// SPDX-License-Identifier: EPL-2.0

// Package audio defines the decoder-facing interfaces of the mixing
// library.
//
// A Source streams interleaved signed 16-bit PCM together with its sample
// rate and channel count — exactly the shape the mixer's data-loading
// boundary expects. Format packages under formats/ implement Decoder and
// can be looked up by key through a Registry:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	reg.Register("mp3", mp3.Decoder{})
//
//	dec, ok := reg.Get("wav")
//	src, err := dec.Decode(file)
//
// A Downmixer folds sources with more than two channels down to the
// mono/stereo layouts the mixer accepts:
//
//	src = audio.NewDownmixer(src, 2)
//
// The package performs no mixing or resampling itself; it only produces
// PCM for the mixer package to consume.
package audio
