package level

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/rewind/vmath"
)

func TestParse_FileOrder(t *testing.T) {
	// 2 wide, 3 long, 2 high: each layer is Width lines of Length codes
	src := "2,3,2\n" +
		"120\n" +
		"345\n" +
		"\n" +
		"000\n" +
		"001\n"

	lv, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 2, lv.Width)
	assert.Equal(t, 3, lv.Length)
	assert.Equal(t, 2, lv.Height)

	assert.Equal(t, CodeWall, lv.At(vmath.C3(0, 0, 0)))
	assert.Equal(t, CodeStart, lv.At(vmath.C3(0, 1, 0)))
	assert.Equal(t, CodeEmpty, lv.At(vmath.C3(0, 2, 0)))
	assert.Equal(t, CodeGoal, lv.At(vmath.C3(1, 0, 0)))
	assert.Equal(t, CodeRewind, lv.At(vmath.C3(1, 1, 0)))
	assert.Equal(t, CodeCrate, lv.At(vmath.C3(1, 2, 0)))
	assert.Equal(t, CodeWall, lv.At(vmath.C3(1, 2, 1)))

	assert.Equal(t, vmath.C3(0, 1, 1), lv.Start, "spawn is one level above the start tile")
}

func TestParse_SkipsStrayCharacters(t *testing.T) {
	src := "3, 3, 1\r\n" +
		"1 1 1 | 1 2 1\n# comment-ish 8 9\n1,1,1"

	lv, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, vmath.C3(1, 1, 1), lv.Start)

	count := 0
	lv.Each(func(c vmath.Coord, code Code) { count++ })
	assert.Equal(t, 9, count)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", ErrHeader},
		{"two dims", "3,3\n111", ErrHeader},
		{"not a number", "3,x,1\n", ErrHeader},
		{"zero dim", "0,3,1\n", ErrHeader},
		{"huge dim", "3,3,100000\n", ErrHeader},
		{"truncated", "3,3,1\n1112", ErrTruncated},
		{"no start", "2,2,1\n1111", ErrNoStart},
		{"two starts", "2,2,1\n2211", ErrDuplicateStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	lv, err := Load("testdata/flat.txt")
	require.NoError(t, err)
	assert.Equal(t, vmath.C3(1, 1, 1), lv.Start)
	assert.Equal(t, CodeEmpty, lv.At(vmath.C3(5, 5, 5)))

	_, err = Load("testdata/missing.txt")
	assert.Error(t, err)
}

func TestLoad_BundledLevel(t *testing.T) {
	lv, err := Load("../levels/crate_bridge.txt")
	require.NoError(t, err)
	assert.Equal(t, vmath.C3(2, 0, 2), lv.Start)
	assert.Equal(t, CodeCrate, lv.At(vmath.C3(2, 2, 2)))
	assert.Equal(t, CodeRewind, lv.At(vmath.C3(0, 1, 1)))
	assert.Equal(t, CodeGoal, lv.At(vmath.C3(2, 6, 1)))
}
