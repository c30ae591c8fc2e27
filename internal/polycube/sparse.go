package polycube

import (
	"errors"
	"fmt"
	"slices"
)

var ErrEmptyShape = errors.New("shape has no cells")

// Sparse stores only the filled cells of a shape, relative to its bounding box.
type Sparse struct {
	n     int
	dims  Position
	cubes [MaxCubes]Position
}

// NewSparse builds a shape from arbitrary cell coordinates, translating them so the
// bounding box starts at the origin. Connectivity is not checked.
func NewSparse(cells []Position) (Sparse, error) {
	if len(cells) == 0 {
		return Sparse{}, ErrEmptyShape
	}
	if len(cells) > MaxCubes {
		return Sparse{}, fmt.Errorf("%w: %d cells, maximum is %d", ErrTooManyCubes, len(cells), MaxCubes)
	}

	lo, hi := cells[0], cells[0]
	for _, c := range cells[1:] {
		lo = lo.Min(c)
		hi = hi.Max(c)
	}

	s := Sparse{n: len(cells), dims: hi.Sub(lo).Add(Position{1, 1, 1})}
	if s.dims.X <= 0 || s.dims.Y <= 0 || s.dims.Z <= 0 {
		return Sparse{}, fmt.Errorf("%w: cells span from %v to %v", ErrGridCapacity, lo, hi)
	}
	for i, c := range cells {
		s.cubes[i] = c.Sub(lo)
	}
	return s, nil
}

func (s Sparse) Len() int { return s.n }

// Dims is the bounding box extent.
func (s Sparse) Dims() Position { return s.dims }

func (s Sparse) Cells() []Position {
	return slices.Clone(s.cubes[:s.n])
}

func (s Sparse) String() string {
	var buf [encodingBytes]byte
	return fmt.Sprintf("%dx%dx%d:%s", s.dims.X, s.dims.Y, s.dims.Z, s.AppendEncoding(buf[:0]))
}

// labels returns the sorted linear index of every cell inside the bounding box.
func (s *Sparse) labels(buf *[MaxCubes]int) []int {
	out := buf[:s.n]
	plane := int(s.dims.X) * int(s.dims.Y)
	for i, c := range s.cubes[:s.n] {
		out[i] = int(c.Z)*plane + int(c.Y)*int(s.dims.X) + int(c.X)
	}
	slices.Sort(out)
	return out
}

// AppendEncoding appends the hex encoding of s to dst. Every label uses the same
// number of digits, chosen from the bounding box volume, so shapes with equal
// bounding boxes compare as strings exactly like their sorted label sequences.
func (s Sparse) AppendEncoding(dst []byte) []byte {
	var buf [MaxCubes]int
	return appendLabels(dst, s.labels(&buf), hexWidth(s.dims.Volume()-1))
}

func (s Sparse) Encoding() string {
	var buf [encodingBytes]byte
	return string(s.AppendEncoding(buf[:0]))
}

// hexWidth is the number of hex digits needed to write maxLabel, at least 1.
func hexWidth(maxLabel int) int {
	width := 1
	for limit := 16; limit <= maxLabel; limit <<= 4 {
		width++
	}
	return width
}

const hexDigits = "0123456789ABCDEF"

func appendLabels(dst []byte, labels []int, width int) []byte {
	for _, label := range labels {
		for shift := (width - 1) * 4; shift >= 0; shift -= 4 {
			dst = append(dst, hexDigits[(label>>shift)&0xF])
		}
	}
	return dst
}

type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

// turn is a rotation about one axis.
type turn int

const (
	turnNone turn = iota
	turnQuarter
	turnQuarterReverse
	turnHalf
)

// rotate applies t about a. Every rotation keeps the shape inside its (possibly
// permuted) bounding box.
func (s Sparse) rotate(t turn, a axis) Sparse {
	if t == turnNone {
		return s
	}

	d := s.dims
	out := Sparse{n: s.n}

	switch t {
	case turnQuarter, turnQuarterReverse:
		switch a {
		case axisX:
			out.dims = Position{d.X, d.Z, d.Y}
		case axisY:
			out.dims = Position{d.Z, d.Y, d.X}
		case axisZ:
			out.dims = Position{d.Y, d.X, d.Z}
		}
	case turnHalf:
		out.dims = d
	}

	for i, c := range s.cubes[:s.n] {
		var r Position
		switch t {
		case turnQuarter:
			switch a {
			case axisX:
				r = Position{c.X, d.Z - 1 - c.Z, c.Y}
			case axisY:
				r = Position{c.Z, c.Y, d.X - 1 - c.X}
			case axisZ:
				r = Position{d.Y - 1 - c.Y, c.X, c.Z}
			}
		case turnQuarterReverse:
			switch a {
			case axisX:
				r = Position{c.X, c.Z, d.Y - 1 - c.Y}
			case axisY:
				r = Position{d.Z - 1 - c.Z, c.Y, c.X}
			case axisZ:
				r = Position{c.Y, d.X - 1 - c.X, c.Z}
			}
		case turnHalf:
			switch a {
			case axisX:
				r = Position{c.X, d.Y - 1 - c.Y, d.Z - 1 - c.Z}
			case axisY:
				r = Position{d.X - 1 - c.X, c.Y, d.Z - 1 - c.Z}
			case axisZ:
				r = Position{d.X - 1 - c.X, d.Y - 1 - c.Y, c.Z}
			}
		}
		out.cubes[i] = r
	}
	return out
}

func (s Sparse) quarterTurn(a axis) Sparse        { return s.rotate(turnQuarter, a) }
func (s Sparse) reverseQuarterTurn(a axis) Sparse { return s.rotate(turnQuarterReverse, a) }
func (s Sparse) halfTurn(a axis) Sparse           { return s.rotate(turnHalf, a) }
