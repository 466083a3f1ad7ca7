// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding is built on github.com/go-audio/wav and supports PCM 16-bit
// files, mono or stereo, at any sample rate. The decoder returns an
// audio.Source streaming interleaved int16 samples ready for the mixer's
// data-loading boundary.
//
// # Decoding WAV Files
//
//	decoder := wav.Decoder{}
//	file, _ := os.Open("audio.wav")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]int16, 4096)
//	n, err := source.ReadSamples(buf)
//
// # Writing WAV Files
//
// Use WriteWAV16 to render mono 16-bit PCM, e.g. mixer output:
//
//	samples := []int16{100, -100, 200, -200}
//	file, _ := os.Create("output.wav")
//	err := wav.WriteWAV16(file, 8000, samples)
package wav
