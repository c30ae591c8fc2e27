package polycube

import (
	"bytes"
	"cmp"
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSparse(t *testing.T) {
	s, err := NewSparse([]Position{{5, -1, 2}, {6, -1, 2}, {6, 0, 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, Position{2, 2, 1}, s.Dims())
	assert.Equal(t, []Position{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}, s.Cells())
	assert.Equal(t, "2x2x1:013", s.String())

	_, err = NewSparse(nil)
	assert.True(t, errors.Is(err, ErrEmptyShape))

	_, err = NewSparse(make([]Position, MaxCubes+1))
	assert.True(t, errors.Is(err, ErrTooManyCubes))

	_, err = NewSparse([]Position{{-100, 0, 0}, {100, 0, 0}})
	assert.True(t, errors.Is(err, ErrGridCapacity))
}

func TestCellsIsACopy(t *testing.T) {
	s := mustSparse(t, Position{0, 0, 0}, Position{1, 0, 0})
	cells := s.Cells()
	cells[0] = Position{9, 9, 9}
	assert.Equal(t, Position{}, s.Cells()[0])
}

func TestHexWidth(t *testing.T) {
	for _, tc := range []struct {
		maxLabel, width int
	}{
		{0, 1}, {1, 1}, {15, 1}, {16, 2}, {240, 2}, {255, 2}, {256, 3}, {4095, 3}, {4096, 4},
	} {
		assert.Equal(t, tc.width, hexWidth(tc.maxLabel), "max label %d", tc.maxLabel)
	}
}

func TestEncodingUsesFixedWidthUpperHex(t *testing.T) {
	// 4x4x2: labels run up to 31, so every label takes two digits.
	s := mustSparse(t, Position{0, 0, 0}, Position{3, 3, 0}, Position{3, 3, 1}, Position{2, 3, 1})
	assert.Equal(t, "000F1E1F", s.Encoding())
	assert.Equal(t, []byte("pre:000F1E1F"), s.AppendEncoding([]byte("pre:")))
}

func TestEncodingOrderMatchesLabelOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randomLabels := func(n, limit int) []int {
		picked := rng.Perm(limit)[:n]
		slices.Sort(picked)
		return picked
	}

	for _, limit := range []int{16, 17, 241, 300, 4100} {
		width := hexWidth(limit - 1)
		for round := 0; round < 500; round++ {
			n := 1 + rng.Intn(min(limit, MaxCubes))
			a, b := randomLabels(n, limit), randomLabels(n, limit)

			got := bytes.Compare(appendLabels(nil, a, width), appendLabels(nil, b, width))
			want := slices.Compare(a, b)
			require.Equal(t, cmp.Compare(want, 0), got, "labels %v vs %v", a, b)
		}
	}
}
