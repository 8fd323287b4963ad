package feedback

// RGB packs a red, green and blue component into the integer colour format
// Discord expects on embeds.
func RGB(r, g, b uint8) int {
	return int(r)<<16 | int(g)<<8 | int(b)
}

// Theme holds the embed colours used for the four message severities.
type Theme struct {
	Success int
	Error   int
	Warning int
	Info    int
}

// DefaultTheme mirrors Discord's own brand palette.
var DefaultTheme = Theme{
	Success: 0x57F287,
	Error:   0xED4245,
	Warning: 0xFEE75C,
	Info:    0x5865F2,
}

// Color maps a severity name to its theme colour. Unknown names fall back to Info.
func (t Theme) Color(severity string) int {
	switch severity {
	case "success":
		return t.Success
	case "error":
		return t.Error
	case "warning":
		return t.Warning
	default:
		return t.Info
	}
}
