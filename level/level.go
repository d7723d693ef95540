package level

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lixenwraith/rewind/parameter"
	"github.com/lixenwraith/rewind/vmath"
)

// Code is a single-digit cell code of the level format
type Code uint8

const (
	CodeEmpty  Code = 0
	CodeWall   Code = 1
	CodeStart  Code = 2
	CodeGoal   Code = 3
	CodeRewind Code = 4
	CodeCrate  Code = 5
)

var (
	ErrHeader         = errors.New("malformed level header")
	ErrTruncated      = errors.New("level body ended early")
	ErrNoStart        = errors.New("level has no start tile")
	ErrDuplicateStart = errors.New("level has more than one start tile")
)

// Level is a parsed level: dimensions plus one code per cell
type Level struct {
	Width  int
	Length int
	Height int
	// Start is the spawn cell, one Z above the start tile
	Start vmath.Coord
	codes []Code // index = x + y*Width + z*Width*Length
}

// At returns the code at c, CodeEmpty outside the level
func (l *Level) At(c vmath.Coord) Code {
	if c.X < 0 || c.X >= l.Width || c.Y < 0 || c.Y >= l.Length || c.Z < 0 || c.Z >= l.Height {
		return CodeEmpty
	}
	return l.codes[c.X+c.Y*l.Width+c.Z*l.Width*l.Length]
}

// Each visits every non-empty cell in file order (z, then x, then y)
func (l *Level) Each(fn func(c vmath.Coord, code Code)) {
	for z := 0; z < l.Height; z++ {
		for x := 0; x < l.Width; x++ {
			for y := 0; y < l.Length; y++ {
				c := vmath.C3(x, y, z)
				if code := l.At(c); code != CodeEmpty {
					fn(c, code)
				}
			}
		}
	}
}

// Load reads and parses a level file
func Load(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open level: %w", err)
	}
	defer f.Close()

	lv, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", path, err)
	}
	return lv, nil
}

// Parse reads "<width>,<length>,<height>\n" followed by one code per cell
// in z-major, then x, then y order
// Characters other than cell codes between values are skipped
func Parse(r io.Reader) (*Level, error) {
	br := bufio.NewReader(r)

	header, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && header != "") {
		return nil, fmt.Errorf("%w: %v", ErrHeader, err)
	}

	w, l, h, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	lv := &Level{
		Width:  w,
		Length: l,
		Height: h,
		codes:  make([]Code, w*l*h),
	}

	hasStart := false
	for z := 0; z < h; z++ {
		for x := 0; x < w; x++ {
			for y := 0; y < l; y++ {
				code, err := nextCode(br)
				if err != nil {
					return nil, fmt.Errorf("%w at cell (%d,%d,%d)", ErrTruncated, x, y, z)
				}
				lv.codes[x+y*w+z*w*l] = code

				if code == CodeStart {
					if hasStart {
						return nil, fmt.Errorf("%w: second at (%d,%d,%d)", ErrDuplicateStart, x, y, z)
					}
					hasStart = true
					lv.Start = vmath.C3(x, y, z+1)
				}
			}
		}
	}

	if !hasStart {
		return nil, ErrNoStart
	}
	return lv, nil
}

func parseHeader(line string) (w, l, h int, err error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: want 3 comma separated values, got %q", ErrHeader, line)
	}

	dims := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(strings.TrimSpace(p))
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("%w: %v", ErrHeader, convErr)
		}
		if n <= 0 || n > parameter.MaxLevelDimension {
			return 0, 0, 0, fmt.Errorf("%w: dimension %d out of range", ErrHeader, n)
		}
		dims[i] = n
	}
	return dims[0], dims[1], dims[2], nil
}

// nextCode skips until a valid cell code
func nextCode(br *bufio.Reader) (Code, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		if b >= '0' && b <= '0'+byte(CodeCrate) {
			return Code(b - '0'), nil
		}
	}
}
