// Package audio plays synthesized cues for game events.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/sliceit/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// maxVoices caps simultaneous cues so a burst of slices stays audible.
const maxVoices = 8

// SoundManager turns game events into sound.
// Until Initialize succeeds it is silent and every call is a no-op.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	log         *log.Logger
}

// NewSoundManager creates a manager at the given linear volume (0..1).
func NewSoundManager(volume float64, logger *log.Logger) *SoundManager {
	if logger == nil {
		logger = log.Default().WithPrefix("audio")
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: clamp01(volume),
		log:    logger,
	}
}

// Initialize opens the audio device. On failure the manager stays silent.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		sm.log.Warn("audio unavailable, running silent", "err", err)
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Enabled reports whether cues reach the speaker.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized && sm.volume > 0
}

// SetVolume changes the linear volume of cues played afterwards.
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = clamp01(v)
}

// Volume returns the current linear volume.
func (sm *SoundManager) Volume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.volume
}

// Play mixes cue c into the output.
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.volume <= 0 {
		return
	}
	s := NewCue(c, sampleRate)
	if s == nil {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	if sm.mixer.Len() >= maxVoices {
		return
	}
	sm.mixer.Add(withVolume(s, sm.volume))
}

// Handle plays the cue for each event. Repeated cues within one batch
// are played once.
func (sm *SoundManager) Handle(events []core.Event) {
	var seen [cueCount]bool
	for _, ev := range events {
		c, ok := CueFor(ev)
		if !ok || seen[c] {
			continue
		}
		seen[c] = true
		sm.Play(c)
	}
}

// Cleanup silences all playing cues.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
