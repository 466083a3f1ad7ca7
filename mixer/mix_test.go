package mixer

import (
	"sync"
	"testing"
)

// loadPCM loads raw little-endian PCM into a fresh buffer.
func loadPCM(t *testing.T, format Format, frequency uint32, pcm []byte) Handle {
	t.Helper()

	handles := GenBuffers(1)
	if err := BufferData(handles[0], format, pcm, frequency); err != nil {
		t.Fatalf("BufferData() error = %v", err)
	}

	return handles[0]
}

// loadPCM16 loads mono or stereo 16-bit samples at the given frequency.
func loadPCM16(t *testing.T, format Format, frequency uint32, samples []int16) Handle {
	t.Helper()

	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		pcm[i*2] = byte(s)
		pcm[i*2+1] = byte(uint16(s) >> 8)
	}

	return loadPCM(t, format, frequency, pcm)
}

// playSamples binds one buffer to a playing source.
func playSamples(t *testing.T, format Format, frequency uint32, samples []int16) Handle {
	t.Helper()

	buf := loadPCM16(t, format, frequency, samples)
	src := GenSources(1)[0]

	if err := QueueBuffers(src, []Handle{buf}); err != nil {
		t.Fatal(err)
	}
	if err := Play(src); err != nil {
		t.Fatal(err)
	}

	return src
}

// decode16 reinterprets an output byte slice as little-endian int16 samples.
func decode16(out []byte) []int16 {
	samples := make([]int16, len(out)/2)
	for i := range samples {
		samples[i] = int16(uint16(out[i*2]) | uint16(out[i*2+1])<<8)
	}

	return samples
}

func check16(t *testing.T, out, want []int16) {
	t.Helper()

	if len(out) != len(want) {
		t.Fatalf("got %d samples, want %d", len(out), len(want))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("sample %d = %d, want %d (full output %v)", i, out[i], want[i], out)
		}
	}
}

func TestMixChannels_SilenceBeforeInit(t *testing.T) {
	defer Uninit()

	out := make([]byte, 32)
	for i := range out {
		out[i] = 0xAA
	}

	MixChannels(out)

	for i, b := range out {
		if b != 0 {
			t.Fatalf("out[%d] = %#x before Init, want silence", i, b)
		}
	}
}

func TestMixChannels_IdentityMonoOntoStereo(t *testing.T) {
	defer Uninit()

	if err := Init(44100, FormatStereo16, QualityMedium, FlagNone); err != nil {
		t.Fatal(err)
	}

	src := playSamples(t, FormatMono16, 44100, []int16{100, 100, 100, 100})

	out := make([]byte, 16)
	MixChannels(out)

	// Four mono input samples fill four stereo frames, duplicated onto
	// both channels.
	check16(t, decode16(out), []int16{100, 100, 100, 100, 100, 100, 100, 100})

	processed, _ := GetSourceInt(src, BuffersProcessed)
	if processed != 1 {
		t.Errorf("BuffersProcessed = %d after exhaustion, want 1", processed)
	}
	if got := sourceState(t, src); got != Playing {
		t.Errorf("state right after draining = %v, want playing", got)
	}

	// The next callback finds the queue empty and parks the source.
	MixChannels(out)
	check16(t, decode16(out), make([]int16, 8))
	if got := sourceState(t, src); got != Stopped {
		t.Errorf("state after empty-queue mix = %v, want stopped", got)
	}
}

func TestMixChannels_StereoIdentity(t *testing.T) {
	defer Uninit()

	if err := Init(44100, FormatStereo16, QualityMedium, FlagNone); err != nil {
		t.Fatal(err)
	}

	playSamples(t, FormatStereo16, 44100, []int16{1, 2, 3, 4})

	out := make([]byte, 8)
	MixChannels(out)

	check16(t, decode16(out), []int16{1, 2, 3, 4})
}

func TestMixChannels_SumAndClip(t *testing.T) {
	defer Uninit()

	if err := Init(44100, FormatStereo16, QualityMedium, FlagNone); err != nil {
		t.Fatal(err)
	}

	playSamples(t, FormatMono16, 44100, []int16{20000, -20000, 1000})
	playSamples(t, FormatMono16, 44100, []int16{20000, -20000, 2000})

	out := make([]byte, 12)
	MixChannels(out)

	// 40000 and -40000 saturate; the in-range frame sums exactly.
	check16(t, decode16(out), []int16{32767, 32767, -32768, -32768, 3000, 3000})
}

func TestMixChannels_GainAttenuates(t *testing.T) {
	defer Uninit()

	if err := Init(44100, FormatStereo16, QualityMedium, FlagNone); err != nil {
		t.Fatal(err)
	}

	src := playSamples(t, FormatMono16, 44100, []int16{100, 100})
	if err := SetSourceFloat(src, Gain, 0.5); err != nil {
		t.Fatal(err)
	}

	out := make([]byte, 8)
	MixChannels(out)

	check16(t, decode16(out), []int16{50, 50, 50, 50})
}

func TestMixChannels_EightBitOutput(t *testing.T) {
	defer Uninit()

	if err := Init(44100, FormatMono8, QualityMedium, FlagNone); err != nil {
		t.Fatal(err)
	}

	src := GenSources(1)[0]
	buf := loadPCM(t, FormatMono8, 44100, []byte{100, 0x9C, 0}) // 100, -100, 0
	if err := QueueBuffers(src, []Handle{buf}); err != nil {
		t.Fatal(err)
	}
	if err := Play(src); err != nil {
		t.Fatal(err)
	}

	out := make([]byte, 3)
	MixChannels(out)

	want := []int8{100, -100, 0}
	for i := range want {
		if int8(out[i]) != want[i] {
			t.Fatalf("out[%d] = %d, want %d", i, int8(out[i]), want[i])
		}
	}

	processed, _ := GetSourceInt(src, BuffersProcessed)
	if processed != 1 {
		t.Errorf("BuffersProcessed = %d, want 1", processed)
	}
}

func TestMixChannels_LinearUpsample(t *testing.T) {
	defer Uninit()

	if err := Init(44100, FormatStereo16, QualityMedium, FlagNone); err != nil {
		t.Fatal(err)
	}

	src := playSamples(t, FormatMono16, 22050, []int16{0, 100})

	// Half-rate input: each sample pair yields two output frames, the
	// second interpolated halfway.
	out := make([]byte, 16)
	MixChannels(out)

	check16(t, decode16(out), []int16{0, 0, 50, 50, 100, 100, 100, 100})

	processed, _ := GetSourceInt(src, BuffersProcessed)
	if processed != 1 {
		t.Errorf("BuffersProcessed = %d, want 1", processed)
	}
}

func TestMixChannels_NearestDownsample(t *testing.T) {
	defer Uninit()

	if err := Init(44100, FormatStereo16, QualityLow, FlagNone); err != nil {
		t.Fatal(err)
	}

	playSamples(t, FormatMono16, 88200, []int16{1, 2, 3, 4, 5, 6, 7, 8})

	out := make([]byte, 16)
	MixChannels(out)

	check16(t, decode16(out), []int16{1, 1, 3, 3, 5, 5, 7, 7})
}

func TestMixChannels_LoopingReplaysQueue(t *testing.T) {
	defer Uninit()

	if err := Init(44100, FormatStereo16, QualityMedium, FlagNone); err != nil {
		t.Fatal(err)
	}

	src := playSamples(t, FormatMono16, 44100, []int16{7, 9})
	if err := SetSourceInt(src, Looping, 1); err != nil {
		t.Fatal(err)
	}

	out := make([]byte, 24) // three times around the two-sample payload
	MixChannels(out)

	check16(t, decode16(out), []int16{7, 7, 9, 9, 7, 7, 9, 9, 7, 7, 9, 9})

	if got := sourceState(t, src); got != Playing {
		t.Errorf("looping source state = %v, want playing", got)
	}
	processed, _ := GetSourceInt(src, BuffersProcessed)
	if processed != 0 {
		t.Errorf("looping source BuffersProcessed = %d, want 0", processed)
	}
}

func TestMixFake_AdvancesWithoutOutput(t *testing.T) {
	defer Uninit()

	if err := Init(44100, FormatStereo16, QualityMedium, FlagNone); err != nil {
		t.Fatal(err)
	}

	src := playSamples(t, FormatMono16, 44100, []int16{100, 100})

	out := make([]byte, 8)
	for i := range out {
		out[i] = 0x55
	}

	MixFake(out)

	for i, b := range out {
		if b != 0 {
			t.Fatalf("out[%d] = %#x from MixFake, want silence", i, b)
		}
	}

	// Position bookkeeping ran: the buffer drained exactly as with real
	// mixing.
	processed, _ := GetSourceInt(src, BuffersProcessed)
	if processed != 1 {
		t.Errorf("BuffersProcessed = %d after MixFake, want 1", processed)
	}
}

func TestMixChannels_EmptyQueueStops(t *testing.T) {
	defer Uninit()

	if err := Init(44100, FormatStereo16, QualityMedium, FlagNone); err != nil {
		t.Fatal(err)
	}

	src := GenSources(1)[0]
	if err := Play(src); err != nil {
		t.Fatal(err)
	}

	out := make([]byte, 8)
	MixChannels(out)

	if got := sourceState(t, src); got != Stopped {
		t.Errorf("state after mixing an empty queue = %v, want stopped", got)
	}
}

func TestMixChannels_PartialTrailingFrame(t *testing.T) {
	defer Uninit()

	if err := Init(44100, FormatStereo16, QualityMedium, FlagNone); err != nil {
		t.Fatal(err)
	}

	playSamples(t, FormatMono16, 44100, []int16{100, 100})

	// 10 bytes hold two whole stereo frames plus two stray bytes, which
	// stay silent.
	out := make([]byte, 10)
	for i := range out {
		out[i] = 0xAA
	}

	MixChannels(out)

	check16(t, decode16(out[:8]), []int16{100, 100, 100, 100})
	if out[8] != 0 || out[9] != 0 {
		t.Errorf("trailing partial frame = [%#x %#x], want silence", out[8], out[9])
	}
}

func TestMixChannels_PausedSourceIsSilent(t *testing.T) {
	defer Uninit()

	if err := Init(44100, FormatStereo16, QualityMedium, FlagNone); err != nil {
		t.Fatal(err)
	}

	src := playSamples(t, FormatMono16, 44100, []int16{100, 100, 100, 100})

	out := make([]byte, 4)
	MixChannels(out)
	check16(t, decode16(out), []int16{100, 100})

	if err := Pause(src); err != nil {
		t.Fatal(err)
	}
	MixChannels(out)
	check16(t, decode16(out), []int16{0, 0})

	// Resuming picks up where the pause landed, not at the queue head.
	if err := Play(src); err != nil {
		t.Fatal(err)
	}
	MixChannels(out)
	check16(t, decode16(out), []int16{100, 100})

	processed, _ := GetSourceInt(src, BuffersProcessed)
	if processed != 0 {
		t.Errorf("BuffersProcessed = %d mid-buffer, want 0", processed)
	}
}

// TestMixChannels_ConcurrentControl drives the full control surface while a
// second goroutine pulls audio, the way an OS callback runs alongside game
// logic. Its assertions are thin on purpose; the value is in running it
// under the race detector.
func TestMixChannels_ConcurrentControl(t *testing.T) {
	if err := Init(44100, FormatStereo16, QualityMedium, FlagNone); err != nil {
		t.Fatal(err)
	}
	defer Uninit()

	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		out := make([]byte, 64)
		for {
			select {
			case <-done:
				return
			default:
				MixChannels(out)
				MixFake(out)
			}
		}
	}()

	samples := []int16{100, -100, 100, -100}

	for i := 0; i < 200; i++ {
		src := GenSources(1)[0]
		buf := loadPCM16(t, FormatMono16, 22050, samples)

		if err := QueueBuffers(src, []Handle{buf}); err != nil {
			t.Fatal(err)
		}
		if err := SetSourceInt(src, Looping, 1); err != nil {
			t.Fatal(err)
		}
		if err := Play(src); err != nil {
			t.Fatal(err)
		}
		if err := Rewind(src); err != nil {
			t.Fatal(err)
		}
		if err := Stop(src); err != nil {
			t.Fatal(err)
		}

		// The queue still owns the buffer until the source goes away.
		if err := DeleteBuffers([]Handle{buf}); err == nil {
			t.Fatal("DeleteBuffers() accepted a queued buffer")
		}
		if err := DeleteSources([]Handle{src}); err != nil {
			t.Fatal(err)
		}
		if err := DeleteBuffers([]Handle{buf}); err != nil {
			t.Fatal(err)
		}
	}

	close(done)
	wg.Wait()
}
