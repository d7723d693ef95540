package status

import (
	"math"
	"sync/atomic"

	"github.com/lixenwraith/rewind/parameter"
)

// Float provides atomic float64 access using bit conversion
// Zero value is ready to use (represents 0.0)
type Float struct {
	bits atomic.Uint64
}

// Store sets the value atomically
func (f *Float) Store(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Load returns the value atomically
func (f *Float) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Text provides atomic string access truncated to parameter.StatusTextMax runes
// Zero value is ready to use (represents empty string)
type Text struct {
	ptr atomic.Pointer[string]
}

// Store sets the string value, truncating long messages
func (s *Text) Store(val string) {
	if r := []rune(val); len(r) > parameter.StatusTextMax {
		val = string(r[:parameter.StatusTextMax])
	}
	s.ptr.Store(&val)
}

// Load returns the current string value
func (s *Text) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
