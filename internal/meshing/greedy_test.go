package meshing

import (
	"testing"

	"mini-mc/internal/config"
	"mini-mc/internal/registry"
	"mini-mc/internal/world"
)

func TestMain(m *testing.M) {
	registry.InitRegistry()
	m.Run()
}

// TestEmptyChunkProducesNoMesh is scenario S2: an all-air chunk has no
// visible faces at all.
func TestEmptyChunkProducesNoMesh(t *testing.T) {
	b := world.NewBlocks(config.DefaultChunkDims)
	opaque, transparent := Build(b, NeighborBlocks{}, world.LODHigh)
	if !opaque.Empty() {
		t.Errorf("expected empty opaque mesh, got %d vertices", len(opaque.Vertices))
	}
	if !transparent.Empty() {
		t.Errorf("expected empty transparent mesh, got %d vertices", len(transparent.Vertices))
	}
}

// TestAdjacentSameTypeBlocksCullSharedFace is scenario S3: two abutting
// opaque blocks of the same type never emit the shared interior face. Two
// unit stone cubes side by side show exactly 6 merged quads (top, bottom,
// front, back, and the two outer ±X caps) and never a quad on the shared
// plane x=1 between them.
func TestAdjacentSameTypeBlocksCullSharedFace(t *testing.T) {
	b := world.NewBlocks(config.DefaultChunkDims)
	b.Set(0, 0, 0, world.BlockTypeStone)
	b.Set(1, 0, 0, world.BlockTypeStone)

	opaque, _ := Build(b, NeighborBlocks{}, world.LODHigh)

	const wantQuads = 6
	if gotQuads := len(opaque.Vertices) / VertexStride / 4; gotQuads != wantQuads {
		t.Fatalf("expected %d merged quads, got %d (vertices=%d)", wantQuads, gotQuads, len(opaque.Vertices)/VertexStride)
	}
	for i := 0; i+VertexStride <= len(opaque.Vertices); i += VertexStride {
		if x := opaque.Vertices[i]; x == 1 {
			t.Errorf("found a vertex at the shared interior plane x=1, the hidden face was emitted")
		}
	}
}

// TestOpaqueFaceVisibleRule is scenario S3's general face-visibility
// invariant (spec §4.4, Testable Property #5): a face is visible iff the
// neighbor is air, or exactly one side is opaque-culling, or both sides
// are non-opaque-culling and of different types. Two different
// opaque-culling types (the common case underground: stone against dirt,
// andesite against granite) never show a face between them.
func TestOpaqueFaceVisibleRule(t *testing.T) {
	if faceVisible(world.BlockTypeStone, world.BlockTypeAir) != true {
		t.Error("a face next to air must be visible")
	}
	if faceVisible(world.BlockTypeStone, world.BlockTypeStone) != false {
		t.Error("a face between two identical blocks must be hidden")
	}
	if faceVisible(world.BlockTypeStone, world.BlockTypeDirt) != false {
		t.Error("a face between two different opaque-culling blocks must be hidden")
	}
	if faceVisible(world.BlockTypeAndesite, world.BlockTypeGranite) != false {
		t.Error("a face between two different opaque-culling blocks must be hidden")
	}
	if faceVisible(world.BlockTypeWater, world.BlockTypeWater) != false {
		t.Error("two abutting water cells must not render their shared face")
	}
	if faceVisible(world.BlockTypeWater, world.BlockTypeStone) != true {
		t.Error("a non-opaque-culling block against an opaque-culling one must show a face")
	}
	if faceVisible(world.BlockTypeStone, world.BlockTypeWater) != true {
		t.Error("an opaque-culling block against a non-opaque-culling one must show a face")
	}
	if faceVisible(world.BlockTypeGlass, world.BlockTypeWater) != true {
		t.Error("two different non-opaque-culling types must show a face (glass against water draws)")
	}
}

// TestGlassAgainstStoneEmitsOneTransparentFace is scenario S3: replacing
// one of two touching stone blocks with glass makes the glass show its
// face on the glass/stone interface (x=1) in the transparent mesh. The
// stone's own face on that plane goes to the opaque mesh.
func TestGlassAgainstStoneEmitsOneTransparentFace(t *testing.T) {
	b := world.NewBlocks(config.DefaultChunkDims)
	b.Set(0, 0, 0, world.BlockTypeStone)
	b.Set(1, 0, 0, world.BlockTypeGlass)

	_, transparent := Build(b, NeighborBlocks{}, world.LODHigh)

	foundSharedFace := false
	for i := 0; i+VertexStride <= len(transparent.Vertices); i += VertexStride {
		if transparent.Vertices[i] == 1 {
			foundSharedFace = true
		}
	}
	if !foundSharedFace {
		t.Error("expected the glass/stone interface face on the transparent mesh at x=1")
	}
}

func TestTransparentBlocksGoToTransparentBuffer(t *testing.T) {
	b := world.NewBlocks(config.DefaultChunkDims)
	b.Set(5, 5, 5, world.BlockTypeGlass)

	opaque, transparent := Build(b, NeighborBlocks{}, world.LODHigh)
	if !opaque.Empty() {
		t.Error("a lone glass block should not contribute to the opaque buffer")
	}
	if transparent.Empty() {
		t.Error("a lone glass block should produce transparent geometry")
	}
}

func TestNilNeighborChunkIsTreatedAsAir(t *testing.T) {
	dims := config.DefaultChunkDims
	b := world.NewBlocks(dims)
	b.Set(dims.Width-1, 0, 0, world.BlockTypeStone)

	opaque, _ := Build(b, NeighborBlocks{}, world.LODHigh)
	if opaque.Empty() {
		t.Fatal("a block on the border with no loaded neighbor should still show its boundary face")
	}
}
