package polycube

import "bytes"

const orientations = 24

type rotationStep struct {
	// fromStart restarts from the unrotated shape instead of the previous one.
	fromStart bool
	turn      turn
	axis      axis
}

// rotationSteps reaches all 24 proper rotations with one turn each: four quarter turns
// about x, the same after flipping x around, then four turns about the axis the
// x axis lands on after a quarter turn either way about y and z.
var rotationSteps = [orientations]rotationStep{
	{true, turnNone, axisX},
	{false, turnQuarter, axisX},
	{false, turnQuarter, axisX},
	{false, turnQuarter, axisX},

	{false, turnHalf, axisY},
	{false, turnQuarter, axisX},
	{false, turnQuarter, axisX},
	{false, turnQuarter, axisX},

	{true, turnQuarter, axisY},
	{false, turnQuarter, axisZ},
	{false, turnQuarter, axisZ},
	{false, turnQuarter, axisZ},

	{true, turnQuarterReverse, axisY},
	{false, turnQuarter, axisZ},
	{false, turnQuarter, axisZ},
	{false, turnQuarter, axisZ},

	{true, turnQuarter, axisZ},
	{false, turnQuarter, axisY},
	{false, turnQuarter, axisY},
	{false, turnQuarter, axisY},

	{true, turnQuarterReverse, axisZ},
	{false, turnQuarter, axisY},
	{false, turnQuarter, axisY},
	{false, turnQuarter, axisY},
}

// halfTurnWalk visits every rotation that keeps the bounding box axes in place.
// Half turns about x and y compose to the half turn about z, so three steps cover
// the whole Gray code cycle.
var halfTurnWalk = [...]axis{axisX, axisY, axisX}

// Rotations returns s in each of its 24 orientations, starting with s itself.
func (s Sparse) Rotations() [orientations]Sparse {
	var out [orientations]Sparse
	prev := s
	for i, step := range rotationSteps {
		if step.fromStart {
			prev = s
		}
		prev = prev.rotate(step.turn, step.axis)
		out[i] = prev
	}
	return out
}

// IsCanonical reports whether s has width >= height >= depth and no rotation of it
// with such a bounding box has a smaller encoding. Ties count as canonical.
func (s Sparse) IsCanonical() bool {
	if !s.dims.ordered() {
		return false
	}

	var own, other [encodingBytes]byte
	mine := s.AppendEncoding(own[:0])
	smaller := func(o Sparse) bool {
		return bytes.Compare(o.AppendEncoding(other[:0]), mine) < 0
	}

	if s.dims.X != s.dims.Y && s.dims.Y != s.dims.Z {
		current := s
		for _, a := range halfTurnWalk {
			current = current.halfTurn(a)
			if smaller(current) {
				return false
			}
		}
		return true
	}

	prev := s
	for _, step := range rotationSteps[1:] {
		if step.fromStart {
			prev = s
		}
		prev = prev.rotate(step.turn, step.axis)
		if prev.dims.ordered() && smaller(prev) {
			return false
		}
	}
	return true
}

// Canonical returns the orientation of s that IsCanonical accepts.
func (s Sparse) Canonical() Sparse {
	var best Sparse
	var bestBuf, buf [encodingBytes]byte
	var bestEnc []byte
	for _, o := range s.Rotations() {
		if !o.dims.ordered() {
			continue
		}
		enc := o.AppendEncoding(buf[:0])
		if bestEnc == nil || bytes.Compare(enc, bestEnc) < 0 {
			best = o
			bestEnc = append(bestBuf[:0], enc...)
		}
	}
	return best
}
