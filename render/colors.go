package render

import (
	"github.com/gdamore/tcell/v2"
)

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbEmpty      = tcell.NewRGBColor(60, 62, 80)    // Dim dot for holes
	RgbWallLow    = tcell.NewRGBColor(70, 72, 90)    // Wall at floor level
	RgbWallHigh   = tcell.NewRGBColor(170, 172, 190) // Wall at max height
	RgbCrate      = tcell.NewRGBColor(190, 130, 60)  // Wooden brown
	RgbStart      = tcell.NewRGBColor(120, 120, 200) // Muted blue
	RgbGoal       = tcell.NewRGBColor(255, 215, 0)   // Gold
	RgbRewind     = tcell.NewRGBColor(0, 200, 200)   // Vibrant cyan
	RgbPlayer     = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbEcho       = tcell.NewRGBColor(200, 120, 255) // Violet
	RgbSuper      = tcell.NewRGBColor(255, 120, 200) // Pink
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
	RgbHelp       = tcell.NewRGBColor(140, 140, 160) // Gray
	RgbAlert      = tcell.NewRGBColor(255, 80, 80)   // Red
)

// shade interpolates between low and high by z in [0,height)
func shade(low, high tcell.Color, z, height int) tcell.Color {
	if height <= 1 {
		return high
	}
	lr, lg, lb := low.RGB()
	hr, hg, hb := high.RGB()
	t := float64(z) / float64(height-1)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(a, b int32) int32 {
		return a + int32(float64(b-a)*t)
	}
	return tcell.NewRGBColor(mix(lr, hr), mix(lg, hg), mix(lb, hb))
}
