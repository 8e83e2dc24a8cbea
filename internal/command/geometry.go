package command

// InputMode decides which components receive raw key presses.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModePrompt
)

func (m InputMode) String() string {
	if m == ModePrompt {
		return "prompt"
	}
	return "normal"
}

// Rect is a screen region in cells.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports a region with no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
