package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/rewind/anim"
	"github.com/lixenwraith/rewind/game"
	"github.com/lixenwraith/rewind/parameter"
	"github.com/lixenwraith/rewind/sim"
)

// ErrInvalid marks a tuning file that parsed but holds out-of-range values
var ErrInvalid = errors.New("invalid tuning")

// maxFileSize bounds the tuning file read
const maxFileSize = 64 * 1024

// Tuning overrides parameter defaults
// Every field is optional, omitted fields fall back through the Get methods
type Tuning struct {
	// Playback, duration strings like "300ms"
	HorizontalMove *string  `json:"horizontal_move,omitempty"`
	VerticalMove   *string  `json:"vertical_move,omitempty"`
	InputGrace     *string  `json:"input_grace,omitempty"`
	Speed          *float64 `json:"speed,omitempty"`
	MergeGroups    *bool    `json:"merge_groups,omitempty"`

	// World
	FloorZ   *int `json:"floor_z,omitempty"`
	Headroom *int `json:"headroom,omitempty"`

	// Audio
	Mute   *bool    `json:"mute,omitempty"`
	Volume *float64 `json:"volume,omitempty"`
}

func ptrBool(v bool) *bool { return &v }

// LoadTuning reads and validates a JSON tuning file
// Partial files are fine
func LoadTuning(path string) (*Tuning, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("tuning file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat tuning file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("tuning file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read tuning file: %w", err)
	}

	t := &Tuning{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse tuning JSON: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks every set field
func (t *Tuning) Validate() error {
	for name, d := range map[string]*string{
		"horizontal_move": t.HorizontalMove,
		"vertical_move":   t.VerticalMove,
		"input_grace":     t.InputGrace,
	} {
		if d == nil || *d == "" {
			continue
		}
		v, err := time.ParseDuration(*d)
		if err != nil {
			return fmt.Errorf("%w: %s %q: %v", ErrInvalid, name, *d, err)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %v", ErrInvalid, name, v)
		}
	}

	if t.Speed != nil && (*t.Speed < parameter.MinSpeedMultiplier || *t.Speed > parameter.MaxSpeedMultiplier) {
		return fmt.Errorf("%w: speed must be between %g and %g, got %g",
			ErrInvalid, parameter.MinSpeedMultiplier, parameter.MaxSpeedMultiplier, *t.Speed)
	}
	if t.FloorZ != nil && *t.FloorZ < 0 {
		return fmt.Errorf("%w: floor_z must be non-negative, got %d", ErrInvalid, *t.FloorZ)
	}
	if t.Headroom != nil && *t.Headroom < 1 {
		return fmt.Errorf("%w: headroom must be at least 1, got %d", ErrInvalid, *t.Headroom)
	}
	if t.Volume != nil && (*t.Volume < 0 || *t.Volume > 1) {
		return fmt.Errorf("%w: volume must be between 0 and 1, got %g", ErrInvalid, *t.Volume)
	}
	return nil
}

func duration(s *string, def time.Duration) time.Duration {
	if s == nil || *s == "" {
		return def
	}
	d, err := time.ParseDuration(*s)
	if err != nil {
		return def
	}
	return d
}

func (t *Tuning) GetHorizontalMove() time.Duration {
	return duration(t.HorizontalMove, parameter.HorizontalMoveDuration)
}

func (t *Tuning) GetVerticalMove() time.Duration {
	return duration(t.VerticalMove, parameter.VerticalMoveDuration)
}

func (t *Tuning) GetInputGrace() time.Duration {
	return duration(t.InputGrace, parameter.InputGraceWindow)
}

func (t *Tuning) GetSpeed() float64 {
	if t.Speed == nil {
		return parameter.DefaultSpeedMultiplier
	}
	return *t.Speed
}

func (t *Tuning) GetMergeGroups() bool {
	return t.MergeGroups != nil && *t.MergeGroups
}

func (t *Tuning) GetFloorZ() int {
	if t.FloorZ == nil {
		return parameter.DefaultFloorZ
	}
	return *t.FloorZ
}

func (t *Tuning) GetHeadroom() int {
	if t.Headroom == nil {
		return parameter.DefaultHeadroom
	}
	return *t.Headroom
}

func (t *Tuning) GetMute() bool {
	return t.Mute != nil && *t.Mute
}

func (t *Tuning) GetVolume() float64 {
	if t.Volume == nil {
		return parameter.CueVolume
	}
	return *t.Volume
}

// ApplyFlags lets command-line switches win over the file
// Only switches that were set override
func (t *Tuning) ApplyFlags(mute, mergeGroups bool) {
	if mute {
		t.Mute = ptrBool(true)
	}
	if mergeGroups {
		t.MergeGroups = ptrBool(true)
	}
}

// SimOptions resolves world options
func (t *Tuning) SimOptions() sim.Options {
	return sim.Options{
		FloorZ:   t.GetFloorZ(),
		Headroom: t.GetHeadroom(),
	}
}

// GameOptions resolves manager and playback options
func (t *Tuning) GameOptions() game.Options {
	return game.Options{
		Grace: t.GetInputGrace(),
		Anim: anim.Options{
			Horizontal:    t.GetHorizontalMove(),
			Vertical:      t.GetVerticalMove(),
			MergeDisjoint: t.GetMergeGroups(),
		},
		Speed: t.GetSpeed(),
	}
}
