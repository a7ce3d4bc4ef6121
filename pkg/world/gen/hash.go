package gen

// Salts keep the hash streams of different features independent.
const (
	saltOre  uint32 = 0x0a3c5e71
	saltTree uint32 = 0x5bd1e995
)

func mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

func seed32(seed int64) uint32 {
	return uint32(seed) ^ uint32(seed>>32)
}

// hash2 is a stable hash of a block column.
func hash2(seed uint32, x, z int) uint32 {
	h := seed
	h ^= uint32(int32(x)) * 0x9e3779b1
	h ^= uint32(int32(z)) * 0x85ebca6b
	return mix32(h)
}

// hash3 is a stable hash of a block position.
func hash3(seed uint32, x, y, z int) uint32 {
	h := seed
	h ^= uint32(int32(x)) * 0x9e3779b1
	h ^= uint32(int32(y)) * 0x85ebca6b
	h ^= uint32(int32(z)) * 0xc2b2ae35
	return mix32(h)
}

// unit maps a hash onto [0, 1).
func unit(h uint32) float64 {
	return float64(h) / (1 << 32)
}

// columnRNG is a small LCG stream seeded from a column hash.
type columnRNG struct {
	state uint64
}

func newColumnRNG(seed uint32, x, z int) *columnRNG {
	h := hash2(seed^saltTree, x, z)
	return &columnRNG{state: uint64(h)<<32 | uint64(mix32(h))}
}

func (r *columnRNG) next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// float returns a value in [0, 1).
func (r *columnRNG) float() float64 {
	return float64(r.next()>>11) / (1 << 53)
}

// intn returns a value in [0, n).
func (r *columnRNG) intn(n int) int {
	return int((r.next() >> 33) % uint64(n))
}

// hashEnd is the coordinate hash used by the outer end generator.
func hashEnd(x, z int) int {
	h := int32(x)*374761393 + int32(z)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	return int((h ^ (h >> 16)) & 0x7FFFFFFF)
}
