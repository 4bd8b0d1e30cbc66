package streaming

import (
	"testing"

	"mini-mc/internal/world"
)

// TestSubmitReportsDroppedRequests is spec §7's contract: SubmitGen and
// SubmitMesh report false when the queue is saturated, so a caller knows
// not to commit pending-state or clear a dirty tag for a request that
// never actually got enqueued.
func TestSubmitReportsDroppedRequests(t *testing.T) {
	p := &WorkerPool{
		genReq:  make(chan GenRequest),
		meshReq: make(chan MeshRequest),
	}

	coord := world.ChunkCoord{X: 0, Y: 0, Z: 0}
	if p.SubmitGen(GenRequest{Coord: coord, Mode: ModeLoadOrGenerate}) {
		t.Error("SubmitGen on an unbuffered channel with no receiver must report false")
	}
	if p.SubmitMesh(MeshRequest{Coord: coord}) {
		t.Error("SubmitMesh on an unbuffered channel with no receiver must report false")
	}
}

// TestSubmitReportsSuccessfulEnqueue is the converse: a request that fits
// in the queue is reported as enqueued.
func TestSubmitReportsSuccessfulEnqueue(t *testing.T) {
	p := &WorkerPool{
		genReq:  make(chan GenRequest, 1),
		meshReq: make(chan MeshRequest, 1),
	}

	coord := world.ChunkCoord{X: 0, Y: 0, Z: 0}
	if !p.SubmitGen(GenRequest{Coord: coord, Mode: ModeLoadOrGenerate}) {
		t.Error("SubmitGen with queue room available must report true")
	}
	if !p.SubmitMesh(MeshRequest{Coord: coord}) {
		t.Error("SubmitMesh with queue room available must report true")
	}
}
