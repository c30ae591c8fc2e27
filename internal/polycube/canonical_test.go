package polycube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSparse(t *testing.T, cells ...Position) Sparse {
	t.Helper()
	s, err := NewSparse(cells)
	require.NoError(t, err)
	return s
}

var sampleShapes = map[string]struct {
	cells        []Position
	orientations int
	canonical    string
}{
	"asymmetric pentacube": {
		cells:        []Position{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {2, 1, 0}, {2, 1, 1}},
		orientations: 24,
		canonical:    "3x2x2:0125B",
	},
	"L tetracube": {
		cells:        []Position{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {0, 1, 0}},
		orientations: 24,
		canonical:    "3x2x1:0123",
	},
	"standing L tetracube": {
		cells:        []Position{{0, 0, 0}, {0, 0, 1}, {0, 0, 2}, {1, 0, 0}},
		orientations: 24,
		canonical:    "3x2x1:0123",
	},
	"vertical line": {
		cells:        []Position{{0, 0, 0}, {0, 1, 0}, {0, 2, 0}},
		orientations: 3,
		canonical:    "3x1x1:012",
	},
	"cube": {
		cells: []Position{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
			{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
		},
		orientations: 1,
		canonical:    "2x2x2:01234567",
	},
}

func TestRotationsAreDistinctOrientations(t *testing.T) {
	for name, tc := range sampleShapes {
		t.Run(name, func(t *testing.T) {
			s := mustSparse(t, tc.cells...)
			rotations := s.Rotations()
			assert.Equal(t, s, rotations[0])

			distinct := map[string]bool{}
			for _, r := range rotations {
				require.Equal(t, s.Len(), r.Len())
				require.Equal(t, s.Dims().Volume(), r.Dims().Volume())
				distinct[r.String()] = true
			}
			assert.Len(t, distinct, tc.orientations)
		})
	}
}

func TestExactlyOneCanonicalOrientation(t *testing.T) {
	for name, tc := range sampleShapes {
		t.Run(name, func(t *testing.T) {
			s := mustSparse(t, tc.cells...)

			accepted := map[string]bool{}
			for _, r := range s.Rotations() {
				if r.IsCanonical() {
					accepted[r.String()] = true
				}
				assert.Equal(t, tc.canonical, r.Canonical().String(), "from %v", r)
			}
			assert.Equal(t, map[string]bool{tc.canonical: true}, accepted)
		})
	}
}

func TestUnorderedDimsAreNeverCanonical(t *testing.T) {
	for _, cells := range [][]Position{
		{{0, 0, 0}, {0, 1, 0}},
		{{0, 0, 0}, {0, 0, 1}},
		{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {1, 0, 2}},
	} {
		s := mustSparse(t, cells...)
		assert.False(t, s.IsCanonical(), s.String())
	}
}

func TestQuarterTurnsComposeToIdentity(t *testing.T) {
	s := mustSparse(t, sampleShapes["asymmetric pentacube"].cells...)

	for _, a := range []axis{axisX, axisY, axisZ} {
		r := s
		for i := 0; i < 4; i++ {
			r = r.quarterTurn(a)
		}
		assert.Equal(t, s, r, "four quarter turns about %d", a)

		assert.Equal(t, s, s.quarterTurn(a).reverseQuarterTurn(a))
		assert.Equal(t, s, s.halfTurn(a).halfTurn(a))
		assert.Equal(t, s.halfTurn(a), s.quarterTurn(a).quarterTurn(a))
	}
}

func TestHalfTurnsComposeAcrossAxes(t *testing.T) {
	s := mustSparse(t, sampleShapes["asymmetric pentacube"].cells...)
	assert.Equal(t, s.halfTurn(axisZ).Encoding(), s.halfTurn(axisX).halfTurn(axisY).Encoding())
}
