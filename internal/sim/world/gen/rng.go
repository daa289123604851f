package gen

// Feature salts. Every pass derives its randomness from (seed, salt, ...)
// so passes never share a random stream and consumption order is fixed.
const (
	saltHeight uint64 = 0x9e3779b97f4a7101
	saltCaves  uint64 = 0x9e3779b97f4a7202
	saltOres   uint64 = 0x9e3779b97f4a7303
	saltDen    uint64 = 0x9e3779b97f4a7404
	saltTrees  uint64 = 0x9e3779b97f4a7505
)

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// hash2 is a stateless hash of (seed, salt, x, y). Integer-only so results
// are bit-identical across platforms.
func hash2(seed uint32, salt uint64, x, y int) uint64 {
	ux := uint64(uint32(int32(x)))
	uy := uint64(uint32(int32(y)))
	v := uint64(seed) ^ salt ^ (ux * 0x9e3779b97f4a7c15) ^ (uy * 0xbf58476d1ce4e5b9)
	return mix64(v)
}

// stream is a deterministic random stream for walk-style placement
// (caves, ore veins), derived from the seed, a pass salt, and the walk
// index so iteration order is fixed.
type stream struct {
	state uint64
}

func newStream(seed uint32, salt uint64, n int) *stream {
	return &stream{state: mix64(uint64(seed) ^ salt ^ uint64(uint32(n))*0x94d049bb133111eb)}
}

func (s *stream) next() uint64 {
	s.state = mix64(s.state)
	return s.state
}

func (s *stream) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.next() % uint64(n))
}
