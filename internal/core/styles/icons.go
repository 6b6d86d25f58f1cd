package styles

var (
	IconCheck   = "✓"
	IconPending = "○"
	IconCursor  = "❯"
	IconRunning = "▶"
	IconPaused  = "⏸"
	IconClock   = "◷"
)
