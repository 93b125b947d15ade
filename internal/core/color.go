package core

// Color is the foreground color of a screen cell. The platform maps each
// value to a terminal color; the engine never sees it.
type Color uint8

// Terminal colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Board roles.
const (
	ColorFrame     = ColorGray
	ColorTitle     = ColorBrightCyan
	ColorBulbLit   = ColorBrightYellow
	ColorBulbGlow  = ColorYellow
	ColorBulbDark  = ColorGray
	ColorSwitchOn  = ColorBrightGreen
	ColorSwitchOff = ColorGray
	ColorLocked    = ColorGray
	ColorWarning   = ColorOrange
	ColorFailure   = ColorBrightRed
)
