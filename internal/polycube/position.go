package polycube

import "fmt"

// Position is a cell coordinate inside a shape's local grid.
type Position struct {
	X, Y, Z int8
}

func (p Position) Add(o Position) Position {
	return Position{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

func (p Position) Sub(o Position) Position {
	return Position{p.X - o.X, p.Y - o.Y, p.Z - o.Z}
}

func (p Position) Min(o Position) Position {
	return Position{min(p.X, o.X), min(p.Y, o.Y), min(p.Z, o.Z)}
}

func (p Position) Max(o Position) Position {
	return Position{max(p.X, o.X), max(p.Y, o.Y), max(p.Z, o.Z)}
}

// Less orders positions by z, then y, then x.
func (p Position) Less(o Position) bool {
	if p.Z != o.Z {
		return p.Z < o.Z
	}
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.X < o.X
}

// Volume treats p as an extent.
func (p Position) Volume() int {
	return int(p.X) * int(p.Y) * int(p.Z)
}

// ordered reports whether the extent p satisfies width >= height >= depth.
func (p Position) ordered() bool {
	return p.X >= p.Y && p.Y >= p.Z
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}
