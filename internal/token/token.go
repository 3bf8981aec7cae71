package token

import "fmt"

// Position is a location inside a signature file.
// Line and Column are 1-based; a zero Line means the position is unknown.
type Position struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the position points into a file.
func (p Position) IsValid() bool { return p.Line > 0 }

// Shift returns the position moved right by n columns on the same line.
func (p Position) Shift(n int) Position {
	if !p.IsValid() {
		return p
	}
	p.Column += n
	return p
}

func (p Position) String() string {
	file := p.File
	if file == "" {
		file = "<input>"
	}
	if !p.IsValid() {
		return file
	}
	return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Column)
}
