package status

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Metric keys written by the game manager and read by the HUD
const (
	KeyTimeline = "timeline"
	KeyTurn     = "turn"
	KeyEchoes   = "echoes"
	KeyTurns    = "turns"
	KeyRejected = "rejected"
	KeyRewinds  = "rewinds"
	KeySpeed    = "speed"
	KeyState    = "state"
	KeyWon      = "won"
	KeyDebug    = "debug"
)

// Registry is the central metrics facade
// The manager caches pointers during init; updates write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[Float]
	Strings *MetricMap[Text]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[Float](),
		Strings: NewMetricMap[Text](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Entry is one formatted metric
type Entry struct {
	Key   string
	Value string
}

// Entries formats every metric, ints first then floats, bools and strings
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, 0, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		entries = append(entries, Entry{k, strconv.FormatInt(v.Load(), 10)})
	})
	r.Floats.Range(func(k string, v *Float) {
		entries = append(entries, Entry{k, fmt.Sprintf("%.2g", v.Load())})
	})
	r.Bools.Range(func(k string, v *atomic.Bool) {
		entries = append(entries, Entry{k, strconv.FormatBool(v.Load())})
	})
	r.Strings.Range(func(k string, v *Text) {
		entries = append(entries, Entry{k, v.Load()})
	})
	return entries
}

// Lookup returns the formatted value of key
func (r *Registry) Lookup(key string) (string, bool) {
	for _, e := range r.Entries() {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}
