package input

// Adapter converts device key state into logical turn input
// Tracks held movement keys as a most-recently-pressed stack so releasing a newer key
// reasserts the older one still held
type Adapter struct {
	held   Keys
	stack  []Direction
	newest Direction

	debugging bool

	// OnChanged fires after the newest held direction may have changed
	OnChanged func(newest Direction)
	// OnPass fires on a pass press
	OnPass func()
}

// NewAdapter creates an adapter with nothing held
func NewAdapter() *Adapter {
	return &Adapter{
		stack: make([]Direction, 0, 4),
	}
}

// SetHeld applies a sampled key state, pushing newly pressed keys and removing released ones
// No-op when the state is unchanged
func (a *Adapter) SetHeld(keys Keys) {
	if keys == a.held {
		return
	}

	for _, k := range keyOrder {
		was := a.held&k.bit != 0
		is := keys&k.bit != 0
		switch {
		case is && !was:
			a.stack = append(a.stack, k.dir)
		case was && !is:
			a.remove(k.dir)
		}
	}

	a.held = keys
	if len(a.stack) == 0 {
		a.newest = None
	} else {
		a.newest = a.stack[len(a.stack)-1]
	}

	if a.OnChanged != nil {
		a.OnChanged(a.newest)
	}
}

func (a *Adapter) remove(d Direction) {
	for i, s := range a.stack {
		if s == d {
			a.stack = append(a.stack[:i], a.stack[i+1:]...)
			return
		}
	}
}

// Press is the press edge of a key
func (a *Adapter) Press(d Direction) {
	if d == Pass {
		if a.OnPass != nil {
			a.OnPass()
		}
		return
	}
	a.SetHeld(a.held | KeyFor(d))
}

// Release is the release edge of a movement key
func (a *Adapter) Release(d Direction) {
	a.SetHeld(a.held &^ KeyFor(d))
}

// Tap presses and immediately releases, for devices without release events
func (a *Adapter) Tap(d Direction) {
	a.Press(d)
	if d != Pass {
		a.Release(d)
	}
}

// Newest returns the top of the held stack, None when nothing is held
func (a *Adapter) Newest() Direction {
	return a.newest
}

// StackEmpty reports no held movement keys
func (a *Adapter) StackEmpty() bool {
	return len(a.stack) == 0
}

// Stack returns a copy of the held stack, oldest press first
func (a *Adapter) Stack() []Direction {
	out := make([]Direction, len(a.stack))
	copy(out, a.stack)
	return out
}

func (a *Adapter) Held() Keys {
	return a.held
}

// Debugging disables normal turn processing while set
func (a *Adapter) Debugging() bool {
	return a.debugging
}

func (a *Adapter) SetDebugging(on bool) {
	a.debugging = on
}

func (a *Adapter) ToggleDebugging() bool {
	a.debugging = !a.debugging
	return a.debugging
}

// Reset releases everything without firing callbacks
func (a *Adapter) Reset() {
	a.held = 0
	a.stack = a.stack[:0]
	a.newest = None
}
