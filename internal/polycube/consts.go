package polycube

// Supported shape sizes.
const (
	// MaxCubes is the largest shape size the search accepts. Every fixed-size buffer
	// below is derived from it.
	MaxCubes = 32

	// DefaultCutoff is the shape size at which the dispatcher hands work to the pool.
	DefaultCutoff = 5

	// Growth starts from one cube, so the smallest shape that can be handed off has two.
	minCutoff = 2
)

// Internal sizing and bounds.
const (
	// A grid side never exceeds the filled extent plus two padding cells per face, and
	// the filled extents of a k-cube shape sum to at most k+2. Grids are only grown for
	// k < MaxCubes, so the three sides sum to at most MaxCubes+13 and their product is
	// largest when they are equal.
	gridSide     = (MaxCubes + 15) / 3
	gridCapacity = gridSide * gridSide * gridSide

	// Each filled cell labels at most six neighbours.
	maxLabels = 6*MaxCubes + 2

	// Two arena nodes per recursion frame.
	arenaCapacity = 2 * MaxCubes

	// Four hex digits cover any bounding box a MaxCubes shape can have.
	maxHexWidth   = 4
	encodingBytes = MaxCubes * maxHexWidth

	// cropBelow is the size below which the grown grid is cropped back to its labels.
	cropBelow = 3
	// padUniformUpTo is the size up to which the grid is padded on every face.
	padUniformUpTo = 3
)

// Cell values.
const (
	emptyCell  uint16 = 0
	filledCell uint16 = 0x7FFF
)
