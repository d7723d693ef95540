package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/rewind/parameter"
)

// Cue identifies a short sound effect
type Cue uint8

const (
	CueStep Cue = iota
	CueBlocked
	CueRewind
	CueGoal
	CueFall
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueStep:
		return "step"
	case CueBlocked:
		return "blocked"
	case CueRewind:
		return "rewind"
	case CueGoal:
		return "goal"
	case CueFall:
		return "fall"
	default:
		return "unknown"
	}
}

// Build returns a finite streamer for c
func Build(c Cue, sr beep.SampleRate) (beep.Streamer, error) {
	switch c {
	case CueStep:
		return tone(sr, parameter.StepCueFrequency, parameter.StepCueDuration)
	case CueBlocked:
		return beep.Take(sr.N(parameter.BlockedCueDuration), newBuzz(sr, parameter.BlockedCueFrequency)), nil
	case CueRewind:
		return newSweep(sr, parameter.RewindCueStartFreq, parameter.RewindCueEndFreq, parameter.RewindCueDuration), nil
	case CueGoal:
		notes := make([]beep.Streamer, 0, len(parameter.GoalCueNotes))
		for _, f := range parameter.GoalCueNotes {
			s, err := tone(sr, f, parameter.GoalCueNoteDuration)
			if err != nil {
				return nil, err
			}
			notes = append(notes, s)
		}
		return beep.Seq(notes...), nil
	case CueFall:
		return newSweep(sr, parameter.FallCueFrequency, parameter.FallCueFrequency/2, parameter.FallCueDuration), nil
	default:
		return nil, fmt.Errorf("audio: unknown cue %d", c)
	}
}

func tone(sr beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("audio: %v Hz tone: %w", freq, err)
	}
	return beep.Take(sr.N(d), sine), nil
}

// buzz is a sine with odd-ish harmonics and a short fade in
type buzz struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func newBuzz(sr beep.SampleRate, freq float64) *buzz {
	return &buzz{sr: sr, freq: freq}
}

func (g *buzz) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)

		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *buzz) Err() error {
	return nil
}

// sweep glides linearly between two frequencies with a decaying envelope
// Ends on its own after the configured length
type sweep struct {
	sr       beep.SampleRate
	from, to float64
	total    int
	pos      int
	phase    float64
}

func newSweep(sr beep.SampleRate, from, to float64, d time.Duration) *sweep {
	return &sweep{sr: sr, from: from, to: to, total: sr.N(d)}
}

func (g *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		frac := float64(g.pos) / float64(g.total)
		freq := g.from + (g.to-g.from)*frac
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		sample := (1 - frac) * math.Sin(g.phase)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *sweep) Err() error {
	return nil
}
