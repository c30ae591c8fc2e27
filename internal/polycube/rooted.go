package polycube

import (
	"fmt"
	"strings"
)

// Rooted is a partially grown shape anchored at its root cell, following Redelmeier's
// method as described in http://kevingong.com/Polyominoes/ParallelPoly.html.
//
// Grid cells hold 0 when empty, filledCell when part of the shape, and otherwise the
// label assigned when the cell was discovered as a neighbour. Labels increase in
// discovery order; a search branch only ever fills labels above highestUsed.
type Rooted struct {
	k    int
	root Position
	dims Position

	highestUsed    int
	highestWritten int

	minBounds Position
	maxBounds Position
	labelMin  Position
	labelMax  Position

	// root-relative, in fill order; the first k entries are live
	filled [MaxCubes]Position
	cells  [gridCapacity]uint16
}

var neighbourOffsets = [6]Position{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// fillUndo is what fill overwrites and unfill puts back.
type fillUndo struct {
	minBounds   Position
	maxBounds   Position
	highestUsed int
}

// resetToMonocube turns r into the single root cube every search starts from.
func (r *Rooted) resetToMonocube() {
	r.k = 1
	r.root = Position{}
	r.dims = Position{1, 1, 1}
	r.highestUsed = 1
	r.highestWritten = 1
	r.minBounds = Position{}
	r.maxBounds = Position{}
	r.labelMin = Position{}
	r.labelMax = Position{}
	r.filled[0] = Position{}
	r.cells[0] = filledCell
}

// Len is the number of filled cells.
func (r *Rooted) Len() int { return r.k }

func (r *Rooted) Root() Position { return r.root }

func (r *Rooted) Dims() Position { return r.dims }

// Filled returns the filled cells relative to the root, in the order they were filled.
func (r *Rooted) Filled() []Position {
	out := make([]Position, r.k)
	copy(out, r.filled[:r.k])
	return out
}

// Clone returns an independent deep copy.
func (r *Rooted) Clone() *Rooted {
	c := *r
	return &c
}

func (r *Rooted) size() int {
	return r.dims.Volume()
}

func (r *Rooted) contains(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.Z >= 0 &&
		p.X < r.dims.X && p.Y < r.dims.Y && p.Z < r.dims.Z
}

func (r *Rooted) index(p Position) int {
	return int(p.Z)*int(r.dims.Y)*int(r.dims.X) + int(p.Y)*int(r.dims.X) + int(p.X)
}

func (r *Rooted) positionOf(index int) Position {
	plane := int(r.dims.X) * int(r.dims.Y)
	return Position{
		X: int8(index % int(r.dims.X)),
		Y: int8(index % plane / int(r.dims.X)),
		Z: int8(index / plane),
	}
}

func (r *Rooted) at(p Position) uint16 {
	return r.cells[r.index(p)]
}

func (r *Rooted) set(p Position, v uint16) {
	r.cells[r.index(p)] = v
}

// last is the most recently filled cell in grid coordinates.
func (r *Rooted) last() Position {
	return r.root.Add(r.filled[r.k-1])
}

// extent is the bounding box size of the filled cells.
func (r *Rooted) extent() Position {
	return r.maxBounds.Sub(r.minBounds).Add(Position{1, 1, 1})
}

func (r *Rooted) mustHaveRoot(op string) {
	if !r.contains(r.root) || r.at(r.root) != filledCell {
		panic(fmt.Sprintf("polycube: %s: root %v is not filled in grid %v", op, r.root, r.dims))
	}
}

// copyHeader copies everything but the grid into dst, translated by delta.
func (r *Rooted) copyHeader(dst *Rooted, delta, dims Position) {
	dst.k = r.k
	dst.highestUsed = r.highestUsed
	dst.highestWritten = r.highestWritten
	dst.dims = dims
	dst.root = r.root.Add(delta)
	dst.minBounds = r.minBounds.Add(delta)
	dst.maxBounds = r.maxBounds.Add(delta)
	dst.labelMin = r.labelMin.Add(delta)
	dst.labelMax = r.labelMax.Add(delta)
	dst.filled = r.filled
}

// copyCells writes every non-empty cell of r into the already cleared grid of dst,
// translated by delta.
func (r *Rooted) copyCells(dst *Rooted, delta Position) {
	index := 0
	for z := int8(0); z < r.dims.Z; z++ {
		for y := int8(0); y < r.dims.Y; y++ {
			for x := int8(0); x < r.dims.X; x++ {
				if v := r.cells[index]; v != emptyCell {
					p := Position{x, y, z}.Add(delta)
					if !dst.contains(p) {
						panic(fmt.Sprintf("polycube: cell %v moved outside grid %v", p, dst.dims))
					}
					dst.set(p, v)
				}
				index++
			}
		}
	}
}

// padInto copies r into dst with room to label the neighbours of the last filled
// cell. Only faces that cell touches are grown, since every earlier cell already had
// its neighbours labeled. Small shapes are padded on every face. It returns the offset
// applied to existing cells.
func (r *Rooted) padInto(dst *Rooted) (Position, error) {
	r.mustHaveRoot("pad")

	lower := Position{1, 1, 1}
	upper := Position{1, 1, 1}

	if r.k > padUniformUpTo {
		last := r.last()
		lower = Position{}
		upper = Position{}

		switch {
		case last.X == 0:
			lower.X = 1
		case last.Y == 0:
			lower.Y = 1
		case last.Z == 0:
			lower.Z = 1
		}

		switch {
		case last.X == r.dims.X-1:
			upper.X = 1
		case last.Y == r.dims.Y-1:
			upper.Y = 1
		case last.Z == r.dims.Z-1:
			upper.Z = 1
		}
	}

	dims := r.dims.Add(lower).Add(upper)
	if dims.Volume() > gridCapacity {
		return Position{}, fmt.Errorf("%w: grid %v needs %d cells, capacity is %d",
			ErrGridCapacity, dims, dims.Volume(), gridCapacity)
	}

	r.copyHeader(dst, lower, dims)
	clear(dst.cells[:dims.Volume()])
	r.copyCells(dst, lower)

	dst.mustHaveRoot("pad")
	return lower, nil
}

// expandInto pads r into dst and labels the empty neighbours of the last filled cell
// in +x, -x, +y, -y, +z, -z order.
func (r *Rooted) expandInto(dst *Rooted) error {
	lower, err := r.padInto(dst)
	if err != nil {
		return err
	}

	last := r.last().Add(lower)
	next := r.highestWritten + 1
	for _, offset := range neighbourOffsets {
		p := last.Add(offset)
		if !dst.contains(p) {
			panic(fmt.Sprintf("polycube: neighbour %v of %v outside padded grid %v", p, last, dst.dims))
		}
		if dst.at(p) != emptyCell {
			continue
		}
		dst.set(p, uint16(next))
		next++
		dst.labelMin = dst.labelMin.Min(p)
		dst.labelMax = dst.labelMax.Max(p)
	}
	dst.highestWritten = next - 1

	dst.mustHaveRoot("expand")
	return nil
}

// cropInto copies r into dst shrunk to the bounding box of its labels, which always
// contains the filled cells.
func (r *Rooted) cropInto(dst *Rooted) {
	r.mustHaveRoot("crop")

	dims := r.labelMax.Sub(r.labelMin).Add(Position{1, 1, 1})
	delta := Position{}.Sub(r.labelMin)

	r.copyHeader(dst, delta, dims)
	clear(dst.cells[:dims.Volume()])
	r.copyCells(dst, delta)

	dst.mustHaveRoot("crop")
}

// pending collects the grid index of every label above highestUsed, ordered by label.
// Slots for labels no longer in the grid hold -1.
func (r *Rooted) pending(buf *[maxLabels]int32) []int32 {
	count := r.highestWritten - r.highestUsed
	if count < 0 || count > len(buf) {
		panic(fmt.Sprintf("polycube: %d pending labels (used %d, written %d)", count, r.highestUsed, r.highestWritten))
	}

	out := buf[:count]
	for i := range out {
		out[i] = -1
	}
	for i, v := range r.cells[:r.size()] {
		if v == emptyCell || v == filledCell || int(v) <= r.highestUsed {
			continue
		}
		out[int(v)-r.highestUsed-1] = int32(i)
	}
	return out
}

// fill converts the labeled cell at p into a filled one.
func (r *Rooted) fill(p Position, label uint16) fillUndo {
	undo := fillUndo{
		minBounds:   r.minBounds,
		maxBounds:   r.maxBounds,
		highestUsed: r.highestUsed,
	}

	r.set(p, filledCell)
	r.filled[r.k] = p.Sub(r.root)
	r.k++
	r.highestUsed = int(label)
	r.minBounds = r.minBounds.Min(p)
	r.maxBounds = r.maxBounds.Max(p)
	return undo
}

// unfill reverses the fill of p.
func (r *Rooted) unfill(p Position, label uint16, undo fillUndo) {
	r.k--
	r.set(p, label)
	r.highestUsed = undo.highestUsed
	r.minBounds = undo.minBounds
	r.maxBounds = undo.maxBounds
}

// Sparse returns the filled cells relative to their bounding box.
func (r *Rooted) Sparse() Sparse {
	s := Sparse{n: r.k, dims: r.extent()}
	offset := r.root.Sub(r.minBounds)
	for i := 0; i < r.k; i++ {
		s.cubes[i] = r.filled[i].Add(offset)
	}
	return s
}

// String draws the grid one z layer at a time, 1 for filled cells.
func (r *Rooted) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %d %d : root=%v\n", r.dims.X, r.dims.Y, r.dims.Z, r.root)
	for z := int8(0); z < r.dims.Z; z++ {
		for y := int8(0); y < r.dims.Y; y++ {
			for x := int8(0); x < r.dims.X; x++ {
				if r.at(Position{x, y, z}) == filledCell {
					sb.WriteString("1 ")
				} else {
					sb.WriteString("0 ")
				}
			}
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
