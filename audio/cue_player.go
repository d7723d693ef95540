package audio

import (
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/rewind/event"
	"github.com/lixenwraith/rewind/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// CuePlayer plays event cues through a single speaker mixer
// Every method is safe without an audio device, playback is then skipped
type CuePlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
	requests    [cueCount]int
}

// NewCuePlayer creates a player; volume is a linear factor in [0,1]
func NewCuePlayer(volume float64, muted bool) *CuePlayer {
	return &CuePlayer{
		mixer:  &beep.Mixer{},
		volume: volume,
		muted:  muted,
	}
}

// Initialize opens the speaker, a muted player never touches the device
func (p *CuePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || p.muted {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup stops every playing cue
func (p *CuePlayer) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Play queues c on the mixer
func (p *CuePlayer) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c < cueCount {
		p.requests[c]++
	}
	if !p.initialized {
		return
	}

	s, err := Build(c, sampleRate)
	if err != nil {
		log.Printf("audio: %v", err)
		return
	}

	speaker.Lock()
	p.mixer.Add(&effects.Gain{Streamer: s, Gain: p.volume - 1})
	speaker.Unlock()
}

// Requests returns how often c was asked for, played or not
func (p *CuePlayer) Requests(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c >= cueCount {
		return 0
	}
	return p.requests[c]
}

// Initialized reports an open speaker
func (p *CuePlayer) Initialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// EventTypes lists the events with a cue
func (p *CuePlayer) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventTurnStarted,
		event.EventTurnRejected,
		event.EventRewindTriggered,
		event.EventGoalReached,
		event.EventEntityFell,
	}
}

// HandleEvent maps an event to its cue
func (p *CuePlayer) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventTurnStarted:
		if tp, ok := ev.Payload.(*event.TurnPayload); ok && tp.Moved {
			p.Play(CueStep)
		}
	case event.EventTurnRejected:
		p.Play(CueBlocked)
	case event.EventRewindTriggered:
		p.Play(CueRewind)
	case event.EventGoalReached:
		p.Play(CueGoal)
	case event.EventEntityFell:
		p.Play(CueFall)
	}
}
