package event

// EventType represents the type of game event
type EventType int

const (
	// EventNone is the zero value and never emitted
	EventNone EventType = iota

	// EventTurnStarted fires before a turn is resolved
	// Trigger: Manager.processTurn | Payload: *TurnPayload
	EventTurnStarted

	// EventTurnEnded fires after a resolved turn finishes animating
	// Trigger: Manager.onTurnEnd | Payload: *TurnPayload
	EventTurnEnded

	// EventTurnRejected fires when the current player cannot act
	// Trigger: Manager.processTurn | Payload: *TurnPayload
	EventTurnRejected

	// EventRewindTriggered fires after a queued rewind executes
	// Trigger: Manager.onTurnEnd | Payload: *RewindPayload
	EventRewindTriggered

	// EventGoalReached fires once when the current player rests on the goal
	// Trigger: Manager.processTurn | Payload: nil
	EventGoalReached

	// EventEntityFell fires per entity that left the world this turn
	// Trigger: Manager.processTurn | Payload: nil
	EventEntityFell

	// EventAnimationProgress fires per track each animation tick
	// Trigger: Sequencer.OnProgress | Payload: *ProgressPayload
	EventAnimationProgress

	// EventRestarted fires after the level state is rebuilt
	// Trigger: Manager.Restart | Payload: nil
	EventRestarted

	eventTypeCount
)

var typeNames = [eventTypeCount]string{
	EventNone:              "None",
	EventTurnStarted:       "TurnStarted",
	EventTurnEnded:         "TurnEnded",
	EventTurnRejected:      "TurnRejected",
	EventRewindTriggered:   "RewindTriggered",
	EventGoalReached:       "GoalReached",
	EventEntityFell:        "EntityFell",
	EventAnimationProgress: "AnimationProgress",
	EventRestarted:         "Restarted",
}

func (t EventType) String() string {
	if t < 0 || t >= eventTypeCount {
		return "Unknown"
	}
	return typeNames[t]
}

// TypeByName returns the EventType for a given name
func TypeByName(name string) (EventType, bool) {
	for i, n := range typeNames {
		if n == name {
			return EventType(i), true
		}
	}
	return EventNone, false
}

// AllTypes lists every emittable event type in declaration order
func AllTypes() []EventType {
	types := make([]EventType, 0, eventTypeCount-1)
	for t := EventTurnStarted; t < eventTypeCount; t++ {
		types = append(types, t)
	}
	return types
}
