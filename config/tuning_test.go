package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/rewind/anim"
	"github.com/lixenwraith/rewind/game"
	"github.com/lixenwraith/rewind/parameter"
	"github.com/lixenwraith/rewind/sim"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestTuning_EmptyMatchesDefaults(t *testing.T) {
	tn := &Tuning{}
	require.NoError(t, tn.Validate())

	if diff := cmp.Diff(game.DefaultOptions(), tn.GameOptions()); diff != "" {
		t.Errorf("game options mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, sim.DefaultOptions(), tn.SimOptions())
	assert.False(t, tn.GetMute())
	assert.Equal(t, parameter.CueVolume, tn.GetVolume())
}

func TestLoadTuning_Partial(t *testing.T) {
	path := writeFile(t, "tuning.json", `{
		"horizontal_move": "200ms",
		"speed": 2,
		"headroom": 4,
		"merge_groups": true
	}`)

	tn, err := LoadTuning(path)
	require.NoError(t, err)

	want := game.Options{
		Grace: parameter.InputGraceWindow,
		Anim: anim.Options{
			Horizontal:    200 * time.Millisecond,
			Vertical:      parameter.VerticalMoveDuration,
			MergeDisjoint: true,
		},
		Speed: 2,
	}
	if diff := cmp.Diff(want, tn.GameOptions()); diff != "" {
		t.Errorf("game options mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, sim.Options{FloorZ: parameter.DefaultFloorZ, Headroom: 4}, tn.SimOptions())
}

func TestLoadTuning_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad duration", `{"vertical_move": "fast"}`},
		{"negative duration", `{"input_grace": "-1s"}`},
		{"speed too high", `{"speed": 9}`},
		{"speed too low", `{"speed": 0.1}`},
		{"negative floor", `{"floor_z": -1}`},
		{"no headroom", `{"headroom": 0}`},
		{"loud", `{"volume": 1.5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTuning(writeFile(t, "tuning.json", tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
		})
	}
}

func TestLoadTuning_FileErrors(t *testing.T) {
	_, err := LoadTuning(writeFile(t, "tuning.yaml", `{}`))
	assert.ErrorContains(t, err, ".json")

	_, err = LoadTuning(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = LoadTuning(writeFile(t, "broken.json", `{"speed":`))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalid))
}

func TestTuning_ApplyFlags(t *testing.T) {
	tn := &Tuning{}
	tn.ApplyFlags(false, false)
	assert.Nil(t, tn.Mute)
	assert.Nil(t, tn.MergeGroups)

	tn.ApplyFlags(true, true)
	assert.True(t, tn.GetMute())
	assert.True(t, tn.GetMergeGroups())
	assert.True(t, tn.GameOptions().Anim.MergeDisjoint)
}
