// Package beep plays short audible cues when the microphone goes live or
// muted. Cues are off until Enable(true).
package beep

import (
	"math"
	"sync"
	"sync/atomic"
)

var enabled atomic.Bool

// Enable turns cues on or off. Safe from any goroutine.
func Enable(on bool) { enabled.Store(on) }

func Enabled() bool { return enabled.Load() }

const (
	sampleRate = 44100

	// Live: high pitch, short
	liveFreq   = 1200
	liveVolume = 0.5
	liveDecay  = 60

	// Muted: medium pitch, slightly longer
	mutedFreq   = 900
	mutedVolume = 0.5
	mutedDecay  = 40

	// Error: low pitch double-beep
	errorFreq   = 350
	errorVolume = 0.6
	errorDecay  = 30
)

var (
	liveSamples  []int16
	mutedSamples []int16
	errorSamples []int16
	soundOnce    sync.Once

	// output is replaced in tests.
	output = play
)

func initSound() {
	liveSamples = generateTick(sampleRate, liveFreq, 0.03, liveVolume, liveDecay)
	mutedSamples = generateTick(sampleRate, mutedFreq, 0.05, mutedVolume, mutedDecay)
	errorSamples = generateDoubleBeep(sampleRate, errorFreq, 0.08, 0.05, errorVolume, errorDecay)
}

// generateTick returns mono samples of a decaying sine.
func generateTick(rate int, freq, duration, volume, decay float64) []int16 {
	n := int(float64(rate) * duration)
	samples := make([]int16, n)
	for i := range samples {
		t := float64(i) / float64(rate)
		envelope := math.Exp(-t * decay)
		samples[i] = int16(math.Sin(2*math.Pi*freq*t) * 32767 * volume * envelope)
	}
	return samples
}

func generateDoubleBeep(rate int, freq, beepDur, gapDur, volume, decay float64) []int16 {
	beep := generateTick(rate, freq, beepDur, volume, decay)
	gap := make([]int16, int(float64(rate)*gapDur))
	result := make([]int16, 0, len(beep)*2+len(gap))
	result = append(result, beep...)
	result = append(result, gap...)
	result = append(result, beep...)
	return result
}

func cue(samples *[]int16) {
	if !enabled.Load() {
		return
	}
	soundOnce.Do(initSound)
	go output(*samples)
}

func PlayLive()  { cue(&liveSamples) }
func PlayMuted() { cue(&mutedSamples) }
func PlayError() { cue(&errorSamples) }
