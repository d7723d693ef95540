package event

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/rewind/entity"
	"github.com/lixenwraith/rewind/input"
	"github.com/lixenwraith/rewind/vmath"
)

// GameEvent is a single outbound notification
// Session, Timeline and Turn are stamped by the Bus on Emit
type GameEvent struct {
	Type     EventType
	Session  uuid.UUID
	Timeline int
	Turn     int
	Entity   entity.ID
	Position vmath.Vec3F
	Payload  any
}

// TurnPayload describes a started, ended or rejected turn
type TurnPayload struct {
	Direction input.Direction
	Echoes    int    // Live echoes including the current player
	Moved     bool   // Any entity changed position
	Reason    string // Rejection reason, empty otherwise
}

// RewindPayload is carried by EventRewindTriggered
type RewindPayload struct {
	FromTimeline int
	Echoes       int
}

// ProgressPayload reports one animation track per tick
type ProgressPayload struct {
	Group  int     // Active group index
	Groups int     // Total groups in the turn
	Speed  float64 // Playback multiplier
}
