package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallMaskLayout(t *testing.T) {
	assert.Equal(t, WallMask(0b1000), WallUp)
	assert.Equal(t, WallMask(0b0100), WallDown)
	assert.Equal(t, WallMask(0b0010), WallLeft)
	assert.Equal(t, WallMask(0b0001), WallRight)
	assert.Equal(t, WallMask(0b1111), AllWalls)

	w := AllWalls.Without(Left).Without(Right)
	assert.True(t, w.IsCorridorAlongRow())
	assert.False(t, w.IsCorridorAlongColumn())
	assert.True(t, w.IsCorridorAlong(Right))
	assert.False(t, w.IsCorridorAlong(Down))
	assert.Equal(t, 2, w.OpenCount())
	assert.Equal(t, AllWalls, w.With(Left).With(Right))
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"up", Up, true},
		{"DOWN", Down, true},
		{" left ", Left, true},
		{"east", Right, true},
		{"sideways", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDirection(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
				assert.Equal(t, got, got.Opposite().Opposite())
			}
		})
	}
}

func TestNewGrid(t *testing.T) {
	t.Run("rejects bad dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {MaxDimension + 1, 2}} {
			_, err := NewGrid(dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidDimension, "dims %v", dims)
		}
	})

	t.Run("starts fully walled", func(t *testing.T) {
		g, err := NewGrid(3, 4)
		require.NoError(t, err)
		assert.Equal(t, 12, g.Size())
		assert.Equal(t, 0, g.EdgeCount())
		for i := 0; i < g.Size(); i++ {
			assert.Equal(t, AllWalls, g.Walls(CellID(i)))
		}
	})

	t.Run("id and coord round trip", func(t *testing.T) {
		g, err := NewGrid(4, 7)
		require.NoError(t, err)
		for i := 0; i < g.Size(); i++ {
			c := g.IDToCoord(CellID(i))
			assert.True(t, g.InBounds(c.Row, c.Col))
			assert.Equal(t, CellID(i), g.CoordToID(c))
		}
		assert.Equal(t, Coord{Row: 1, Col: 3}, g.IDToCoord(10))
	})
}

func TestGridNeighbors(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)

	assert.Equal(t, []CellID{1, 7, 3, 5}, g.Neighbors(4, nil), "up, down, left, right")
	assert.Equal(t, []CellID{3, 1}, g.Neighbors(0, nil))
	assert.Equal(t, []CellID{5, 7}, g.Neighbors(8, nil))

	odd := g.Neighbors(4, func(id CellID) bool { return id%2 == 1 && id != 7 })
	assert.Equal(t, []CellID{1, 3, 5}, odd)
}

func TestGridConnect(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)

	t.Run("adjacent cells", func(t *testing.T) {
		require.True(t, g.Connect(4, 5))
		assert.True(t, g.Walls(4).Open(Right))
		assert.True(t, g.Walls(5).Open(Left))
		assert.True(t, g.Connected(5, 4))
		assert.Equal(t, 1, g.EdgeCount())
		requireSymmetric(t, g)
	})

	t.Run("non adjacent cells are left alone", func(t *testing.T) {
		before := g.Matrix()
		assert.False(t, g.Connect(0, 4), "diagonal")
		assert.False(t, g.Connect(2, 3), "row wrap")
		assert.False(t, g.Connect(0, 0), "same cell")
		assert.False(t, g.Connect(0, 99), "out of range")
		assert.Equal(t, before, g.Matrix())
	})

	t.Run("disconnect restores the wall", func(t *testing.T) {
		require.True(t, g.Disconnect(5, 4))
		assert.Equal(t, AllWalls, g.Walls(4))
		assert.Equal(t, AllWalls, g.Walls(5))
		assert.Equal(t, 0, g.EdgeCount())
	})
}

func TestGridMatrixIsACopy(t *testing.T) {
	g, err := NewGrid(2, 2)
	require.NoError(t, err)

	m := g.Matrix()
	m[0][0] = 0
	assert.Equal(t, AllWalls, g.Walls(0))
}

func TestGridString(t *testing.T) {
	g, err := NewGrid(1, 2)
	require.NoError(t, err)
	require.True(t, g.Connect(0, 1))

	want := "+---+---+\n" +
		"|       |\n" +
		"+---+---+\n"
	assert.Equal(t, want, g.String())
}
