package world

import "testing"

func TestBlockTypeSolidAndCulling(t *testing.T) {
	cases := []struct {
		bt             BlockType
		wantSolid      bool
		wantOpaqueCull bool
	}{
		{BlockTypeAir, false, true},
		{BlockTypeStone, true, true},
		{BlockTypeDirt, true, true},
		{BlockTypeWater, true, false},
		{BlockTypeGlass, true, false},
		{BlockTypeLeaves, true, false},
		{BlockTypeIce, true, false},
	}
	for _, tc := range cases {
		if got := tc.bt.IsSolid(); got != tc.wantSolid {
			t.Errorf("%v.IsSolid() = %v, want %v", tc.bt, got, tc.wantSolid)
		}
		if got := tc.bt.OpaqueCulling(); got != tc.wantOpaqueCull {
			t.Errorf("%v.OpaqueCulling() = %v, want %v", tc.bt, got, tc.wantOpaqueCull)
		}
	}
}

func TestBlockTypeValid(t *testing.T) {
	if !BlockTypeCobblestone.Valid() {
		t.Error("BlockTypeCobblestone should be valid")
	}
	if BlockType(9999).Valid() {
		t.Error("out-of-range BlockType should not be valid")
	}
}

func TestFaceOppositeIsInvolution(t *testing.T) {
	for f := FacePosX; f <= FaceNegZ; f++ {
		if got := f.Opposite().Opposite(); got != f {
			t.Errorf("Opposite(Opposite(%v)) = %v, want %v", f, got, f)
		}
	}
}

func TestFaceTextureSlotCovers6Slots(t *testing.T) {
	seen := make(map[int]bool)
	for f := FacePosX; f <= FaceNegZ; f++ {
		seen[f.TextureSlot()] = true
	}
	if len(seen) != 6 {
		t.Errorf("expected 6 distinct texture slots, got %d", len(seen))
	}
}
