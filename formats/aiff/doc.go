// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF audio decoding.
//
// Decoding is built on github.com/go-audio/aiff and supports PCM 16-bit
// files, mono or stereo, at any sample rate, exposed as an audio.Source
// of interleaved int16 samples.
//
//	decoder := aiff.Decoder{}
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]int16, 4096)
//	n, err := source.ReadSamples(buf)
package aiff
