package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	for _, size := range []int{4, 6, 8, 10} {
		b := NewBoard(size)
		mid := size / 2

		black, white := b.Count()
		require.Equal(t, 2, black, "size %d should start with two black discs", size)
		require.Equal(t, 2, white, "size %d should start with two white discs", size)

		require.Equal(t, White, b.At(mid-1, mid-1))
		require.Equal(t, Black, b.At(mid-1, mid))
		require.Equal(t, Black, b.At(mid, mid-1))
		require.Equal(t, White, b.At(mid, mid))
	}
}

func TestInBounds(t *testing.T) {
	b := NewBoard(4)

	require.True(t, b.InBounds(0, 0))
	require.True(t, b.InBounds(3, 3))
	require.False(t, b.InBounds(-1, 0))
	require.False(t, b.InBounds(0, 4))
	require.False(t, b.InBounds(4, 2))
}

func TestScan(t *testing.T) {
	b := NewBoard(4)

	t.Run("walks to the edge", func(t *testing.T) {
		var got []Step
		for s := range b.Scan(0, 0, 0) {
			got = append(got, s)
		}
		require.Equal(t, []Step{{0, 1, 1}, {0, 2, 2}, {0, 3, 3}}, got)
	})

	t.Run("diagonal", func(t *testing.T) {
		var got []Step
		for s := range b.Scan(3, 0, 1) {
			got = append(got, s)
		}
		require.Equal(t, []Step{{2, 1, 1}, {1, 2, 2}, {0, 3, 3}}, got, "Up-right from the bottom-left corner should cross the board")
	})

	t.Run("empty when leaving the board", func(t *testing.T) {
		for s := range b.Scan(0, 0, 2) {
			t.Fatalf("unexpected step %+v", s)
		}
	})

	t.Run("stops when the consumer breaks", func(t *testing.T) {
		visited := 0
		for s := range b.Scan(0, 0, 6) {
			visited++
			if s.N == 2 {
				break
			}
		}
		require.Equal(t, 2, visited)
	})

	t.Run("every direction is a unit vector", func(t *testing.T) {
		seen := make(map[[2]int]bool)
		for d := Direction(0); d < NumDirections; d++ {
			dr, dc := d.Delta()
			require.LessOrEqual(t, dr*dr+dc*dc, 2)
			require.NotEqual(t, [2]int{0, 0}, [2]int{dr, dc})
			seen[[2]int{dr, dc}] = true
		}
		require.Len(t, seen, NumDirections, "Directions should be distinct")
	})
}

func TestBoardCopy(t *testing.T) {
	b := NewBoard(4)
	c := b.Copy()
	c.Set(0, 0, Black)

	require.Equal(t, Empty, b.At(0, 0), "Copy should not share storage")
	require.Equal(t, Black, c.At(0, 0))
}

func TestParseBoard(t *testing.T) {
	t.Run("round trips String", func(t *testing.T) {
		b := NewBoard(6)
		parsed, err := ParseBoard(
			"......",
			"......",
			"..OX..",
			"..XO..",
			"......",
			"......",
		)
		require.NoError(t, err)
		require.Equal(t, b.String(), parsed.String())
	})

	t.Run("rejects odd sizes", func(t *testing.T) {
		_, err := ParseBoard("...", "...", "...")
		require.ErrorIs(t, err, ErrInvalidBoardSize)
	})

	t.Run("rejects ragged rows", func(t *testing.T) {
		_, err := ParseBoard("....", "...", "....", "....")
		require.Error(t, err)
	})

	t.Run("rejects unknown cells", func(t *testing.T) {
		_, err := ParseBoard("....", "..?.", "....", "....")
		require.Error(t, err)
	})
}
