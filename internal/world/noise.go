package world

import "math"

// Deterministic, seeded, stdlib-only value noise: no third-party noise
// library exists anywhere in the retrieval corpus, so every noise field
// the generator needs (height, mountain envelope, roughness, stone
// variation, seabed gravel, ice patches) is built from this one hash-based
// primitive with different seed offsets and octave counts, the way the
// reference generator layers several named Fbm/Perlin fields over a
// shared noise backend.

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// hash2 is a SplitMix64-style integer hash, stable across runs for the
// same (x, z, seed) triple.
func hash2(x, z, seed int64) uint64 {
	v := uint64(x) + (uint64(z) << 1) + uint64(seed)*0x9E3779B97F4A7C15
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

// hash3 extends hash2 with a third coordinate for the 3D stone-variation
// field.
func hash3(x, y, z, seed int64) uint64 {
	v := uint64(x) + (uint64(y) << 1) + (uint64(z) << 2) + uint64(seed)*0x9E3779B97F4A7C15
	v += 0xC2B2AE3D27D4EB4F
	v = (v ^ (v >> 29)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 32)) * 0x94D049BB133111EB
	v = v ^ (v >> 29)
	return v
}

func latticeValue2(x, z, seed int64) float64 {
	h := hash2(x, z, seed)
	return float64(h&0xFFFFFFFF)/float64(0xFFFFFFFF)*2 - 1 // [-1,1]
}

func latticeValue3(x, y, z, seed int64) float64 {
	h := hash3(x, y, z, seed)
	return float64(h&0xFFFFFFFF)/float64(0xFFFFFFFF)*2 - 1
}

// valueNoise2D samples a single octave of 2D lattice noise in [-1,1].
func valueNoise2D(x, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)
	x1 := x0 + 1
	z1 := z0 + 1

	fx := fade(x - x0)
	fz := fade(z - z0)

	v00 := latticeValue2(int64(x0), int64(z0), seed)
	v10 := latticeValue2(int64(x1), int64(z0), seed)
	v01 := latticeValue2(int64(x0), int64(z1), seed)
	v11 := latticeValue2(int64(x1), int64(z1), seed)

	i0 := lerp(v00, v10, fx)
	i1 := lerp(v01, v11, fx)
	return lerp(i0, i1, fz)
}

// valueNoise3D samples a single octave of 3D lattice noise in [-1,1],
// used only for the stone-variation field.
func valueNoise3D(x, y, z float64, seed int64) float64 {
	x0, y0, z0 := math.Floor(x), math.Floor(y), math.Floor(z)
	x1, y1, z1 := x0+1, y0+1, z0+1

	fx, fy, fz := fade(x-x0), fade(y-y0), fade(z-z0)

	v000 := latticeValue3(int64(x0), int64(y0), int64(z0), seed)
	v100 := latticeValue3(int64(x1), int64(y0), int64(z0), seed)
	v010 := latticeValue3(int64(x0), int64(y1), int64(z0), seed)
	v110 := latticeValue3(int64(x1), int64(y1), int64(z0), seed)
	v001 := latticeValue3(int64(x0), int64(y0), int64(z1), seed)
	v101 := latticeValue3(int64(x1), int64(y0), int64(z1), seed)
	v011 := latticeValue3(int64(x0), int64(y1), int64(z1), seed)
	v111 := latticeValue3(int64(x1), int64(y1), int64(z1), seed)

	x00 := lerp(v000, v100, fx)
	x10 := lerp(v010, v110, fx)
	x01 := lerp(v001, v101, fx)
	x11 := lerp(v011, v111, fx)

	y0i := lerp(x00, x10, fy)
	y1i := lerp(x01, x11, fy)
	return lerp(y0i, y1i, fz)
}

// fbm2D sums `octaves` layers of valueNoise2D, the way the reference
// generator's Fbm<Simplex> fields work, returning a value in
// approximately [-1,1].
func fbm2D(x, z float64, seed int64, octaves int, persistence, lacunarity float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		sum += valueNoise2D(x*frequency, z*frequency, seed+int64(i*131)) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// perlin2D is a single-octave 2D field, used for the reference's Perlin
// (not Fbm-wrapped) fields: seabed gravel and ice patches.
func perlin2D(x, z float64, seed int64) float64 {
	return valueNoise2D(x, z, seed)
}
