package entity

import "strings"

// Flags is the capability bitset of an entity
type Flags uint8

const (
	FlagMoveable Flags = 1 << iota
	// FlagRewind marks a tile that schedules a rewind when the live player rests on it
	FlagRewind
	// FlagSuper marks a player currently merged into a superposition
	FlagSuper
	// FlagGoal marks a tile that wins the level when the live player rests on it
	FlagGoal
	// FlagCurrentPlayer marks the single echo receiving live input
	FlagCurrentPlayer
	// FlagStart marks the level start tile
	FlagStart
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagMoveable, "MOVEABLE"},
	{FlagRewind, "REWIND"},
	{FlagSuper, "SUPER"},
	{FlagGoal, "GOAL"},
	{FlagCurrentPlayer, "CURRENT_PLAYER"},
	{FlagStart, "START"},
}

func (f Flags) String() string {
	if f == 0 {
		return "NONE"
	}
	var parts []string
	for _, n := range flagNames {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
