package ui

// revealTickMsg drives the typewriter reveal of an assistant reply. The
// generation ties the tick to the reveal job it was scheduled for so ticks
// left over from a superseded reply are ignored.
type revealTickMsg struct {
	generation uint64
}

// markdownRenderedMsg carries the terminal-rendered markdown for a message,
// produced asynchronously so the update loop never blocks on rendering.
type markdownRenderedMsg struct {
	MessageID string
	Rendered  string
}
