// Package cache is the durable chunk store: one file per chunk coordinate
// under <root>/cache/<world>/chunks/, encoded with stdlib encoding/binary
// and compressed with zstd. It is grounded directly on the Rust reference
// implementation's persistence.ChunkCache (save_chunk/load_chunk/
// delete_chunk keyed by "{x}_{y}_{z}.chunk"), with bincode swapped for a
// fixed binary layout plus zstd framing — there is no Go bincode
// equivalent anywhere in the retrieval corpus, but zstd-compressed chunk
// blobs are exactly what oriumgames-pile's provider does for its own
// chunk storage.
package cache

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mini-mc/internal/config"
	"mini-mc/internal/world"

	"github.com/klauspost/compress/zstd"
)

// magic tags the start of every encoded chunk blob, catching attempts to
// load a file written by an incompatible version of this format.
const magic = "MMC1"

// ChunkCache persists and retrieves chunk block data by coordinate.
type ChunkCache struct {
	dir  string
	dims config.ChunkDims
}

// New creates (or reuses) the cache directory for worldName under root,
// failing if it cannot be created.
func New(root, worldName string, dims config.ChunkDims) (*ChunkCache, error) {
	dir := filepath.Join(root, "cache", worldName, "chunks")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chunk cache directory %q: %w", dir, err)
	}
	return &ChunkCache{dir: dir, dims: dims}, nil
}

// path returns the on-disk path for coord, matching the reference
// cache's "{x}_{y}_{z}.chunk" naming.
func (c *ChunkCache) path(coord world.ChunkCoord) string {
	return filepath.Join(c.dir, fmt.Sprintf("%d_%d_%d.chunk", coord.X, coord.Y, coord.Z))
}

// Save writes blocks to disk at coord, overwriting any existing file
// (last write wins, per spec §7's idempotent-save resolution).
func (c *ChunkCache) Save(coord world.ChunkCoord, blocks *world.Blocks) error {
	path := c.path(coord)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chunk file %q: %w", path, err)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("open zstd writer for %q: %w", path, err)
	}
	if _, err := zw.Write([]byte(magic)); err != nil {
		zw.Close()
		return fmt.Errorf("write chunk header %q: %w", path, err)
	}
	if err := encodeBlocks(zw, blocks); err != nil {
		zw.Close()
		return fmt.Errorf("encode chunk %q: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush chunk file %q: %w", path, err)
	}
	return nil
}

// Load reads the blocks previously saved at coord, returning (nil, nil) if
// no file exists there yet — callers distinguish "not cached" from "read
// error" by checking for a nil error alongside a nil result.
func (c *ChunkCache) Load(coord world.ChunkCoord) (*world.Blocks, error) {
	path := c.path(coord)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open chunk file %q: %w", path, err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("open zstd reader for %q: %w", path, err)
	}
	defer zr.Close()

	hdr := make([]byte, len(magic))
	if _, err := io.ReadFull(zr, hdr); err != nil {
		return nil, fmt.Errorf("read chunk header %q: %w", path, err)
	}
	if string(hdr) != magic {
		return nil, fmt.Errorf("chunk file %q: bad magic %q", path, hdr)
	}

	blocks, err := decodeBlocks(zr, c.dims)
	if err != nil {
		return nil, fmt.Errorf("decode chunk %q: %w", path, err)
	}
	return blocks, nil
}

// Delete removes the persisted blob for coord, if any. Deleting an
// already-absent chunk is not an error.
func (c *ChunkCache) Delete(coord world.ChunkCoord) error {
	path := c.path(coord)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete chunk file %q: %w", path, err)
	}
	return nil
}

func encodeBlocks(w io.Writer, blocks *world.Blocks) error {
	raw := blocks.Raw()
	buf := make([]byte, 2*len(raw))
	for i, bt := range raw {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(bt))
	}
	_, err := w.Write(buf)
	return err
}

func decodeBlocks(r io.Reader, dims config.ChunkDims) (*world.Blocks, error) {
	n := dims.Width * dims.Height * dims.Depth
	buf := make([]byte, 2*n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	data := make([]world.BlockType, n)
	for i := range data {
		data[i] = world.BlockType(binary.LittleEndian.Uint16(buf[i*2:]))
	}
	return world.BlocksFromRaw(dims, data), nil
}
