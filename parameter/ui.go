package parameter

// Layout
const (
	// CellWidth is the number of terminal columns per grid cell
	CellWidth = 2

	// TopMargin leaves a line for the title
	TopMargin = 1

	// LeftMargin pads the board from the terminal edge
	LeftMargin = 2

	// HUDLines is the number of status lines below the board
	HUDLines = 3

	// StatusTextMax truncates free-form HUD messages
	StatusTextMax = 40
)

// Glyphs
const (
	GlyphEmpty         = '·'
	GlyphWall          = '█'
	GlyphStart         = 'S'
	GlyphGoal          = 'G'
	GlyphRewind        = 'R'
	GlyphCrate         = '▣'
	GlyphPlayer        = '@'
	GlyphEcho          = 'e'
	GlyphSuperposition = '◎'
)
