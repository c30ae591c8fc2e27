// Package polycube counts polycubes up to rotation by growing rooted shapes one cube
// at a time and keeping only the canonical orientation of each finished shape.
package polycube

import (
	"fmt"

	"github.com/2767mr/polycubes/internal/arena"
)

// FoundFunc receives every canonical shape of the target size.
type FoundFunc func(Sparse)

// ExpandedFunc receives every shape that reaches the hand-off cutoff. The shape is
// reused once the callback returns; Clone it to keep it.
type ExpandedFunc func(*Rooted)

// NewArena returns an arena big enough for one search of any supported size.
func NewArena() *arena.Arena[Rooted] {
	return arena.New[Rooted](arenaCapacity)
}

type search struct {
	arena      *arena.Arena[Rooted]
	target     int
	cutoff     int
	onFound    FoundFunc
	onExpanded ExpandedFunc
}

// Enumerate counts the canonical polycubes of size n, growing every shape from a
// single root cube. Shapes reaching size cutoff (when cutoff < n) go to onExpanded
// instead of being grown further. Either callback may be nil.
func Enumerate(a *arena.Arena[Rooted], n, cutoff int, onFound FoundFunc, onExpanded ExpandedFunc) (uint64, error) {
	switch {
	case n < 1:
		return 0, nil
	case n > MaxCubes:
		return 0, fmt.Errorf("%w: %d > %d", ErrTooManyCubes, n, MaxCubes)
	case n <= 2:
		if onFound != nil {
			onFound(smallShape(n))
		}
		return 1, nil
	}

	mark := a.Mark()
	defer a.Reset(mark)

	start, err := a.Allocate()
	if err != nil {
		return 0, err
	}
	start.resetToMonocube()

	return ExpandFrom(a, n, cutoff, start, onFound, onExpanded)
}

// ExpandFrom continues the search from start, which is read but never modified.
func ExpandFrom(a *arena.Arena[Rooted], n, cutoff int, start *Rooted, onFound FoundFunc, onExpanded ExpandedFunc) (uint64, error) {
	if n > MaxCubes {
		return 0, fmt.Errorf("%w: %d > %d", ErrTooManyCubes, n, MaxCubes)
	}
	if start.Len() >= n {
		return 0, nil
	}

	s := search{
		arena:      a,
		target:     n,
		cutoff:     cutoff,
		onFound:    onFound,
		onExpanded: onExpanded,
	}
	return s.expand(start)
}

func (s *search) expand(current *Rooted) (uint64, error) {
	mark := s.arena.Mark()
	defer s.arena.Reset(mark)

	grown, err := s.arena.Allocate()
	if err != nil {
		return 0, fmt.Errorf("expanding shape of size %d: %w", current.k, err)
	}
	if err := current.expandInto(grown); err != nil {
		return 0, err
	}

	if current.k < cropBelow {
		cropped, err := s.arena.Allocate()
		if err != nil {
			return 0, fmt.Errorf("cropping shape of size %d: %w", current.k, err)
		}
		grown.cropInto(cropped)
		grown = cropped
	}

	var buf [maxLabels]int32
	var count uint64

	for _, index := range grown.pending(&buf) {
		if index < 0 {
			continue
		}

		// The root must stay the first filled cell in (z, y, x) order, so each
		// translation class is grown from exactly one root.
		p := grown.positionOf(int(index))
		if p.Less(grown.root) {
			continue
		}

		label := grown.cells[index]
		undo := grown.fill(p, label)

		switch {
		case grown.k == s.target:
			if grown.extent().ordered() {
				shape := grown.Sparse()
				if shape.IsCanonical() {
					count++
					if s.onFound != nil {
						s.onFound(shape)
					}
				}
			}
		case grown.k == s.cutoff:
			if s.onExpanded != nil {
				s.onExpanded(grown)
			}
		default:
			found, err := s.expand(grown)
			if err != nil {
				grown.unfill(p, label, undo)
				return count, err
			}
			count += found
		}

		grown.unfill(p, label, undo)
	}

	return count, nil
}

// smallShape is the only polycube of size 1 or 2.
func smallShape(n int) Sparse {
	s := Sparse{n: n, dims: Position{int8(n), 1, 1}}
	for i := 0; i < n; i++ {
		s.cubes[i] = Position{X: int8(i)}
	}
	return s
}
