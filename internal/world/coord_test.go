package world

import "testing"

func TestFloorDivMatchesEuclideanDivision(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{15, 16, 0},
		{16, 16, 1},
		{-1, 16, -1},
		{-16, 16, -1},
		{-17, 16, -2},
	}
	for _, tc := range cases {
		if got := floorDiv(tc.a, tc.b); got != tc.want {
			t.Errorf("floorDiv(%d,%d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestModIsAlwaysNonNegative(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{15, 16, 15},
		{16, 16, 0},
		{-1, 16, 15},
		{-16, 16, 0},
		{-17, 16, 15},
	}
	for _, tc := range cases {
		if got := mod(tc.a, tc.b); got != tc.want {
			t.Errorf("mod(%d,%d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestWorldToChunkAndLocalRoundTrip(t *testing.T) {
	w, h, d := 16, 16, 16
	for _, wx := range []int{-33, -16, -1, 0, 1, 15, 16, 31, 32} {
		coord := WorldToChunk(wx, 0, 0, w, h, d)
		lx, _, _ := WorldToLocal(wx, 0, 0, w, h, d)
		ox, _, _ := coord.ChunkOrigin(w, h, d)
		if ox+lx != wx {
			t.Errorf("chunk origin + local != world for wx=%d: %d+%d != %d", wx, ox, lx, wx)
		}
		if lx < 0 || lx >= w {
			t.Errorf("local x out of range: %d", lx)
		}
	}
}
