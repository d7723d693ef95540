package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector for interpolated presentation positions
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

// V3FLerp interpolates a→b, t clamped to [0,1]
func V3FLerp(a, b Vec3F, t float64) Vec3F {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return V3FAdd(a, V3FScale(V3FSub(b, a), t))
}

// V3FFromCoord converts a voxel coordinate to its float position
func V3FFromCoord(c Coord) Vec3F {
	return Vec3F{float64(c.X), float64(c.Y), float64(c.Z)}
}

// V3FRound snaps a float position to the nearest voxel
func V3FRound(v Vec3F) Coord {
	return Coord{
		X: int(math.Round(v.X)),
		Y: int(math.Round(v.Y)),
		Z: int(math.Round(v.Z)),
	}
}
