package core

import "math"

// Salts used when drawing independent values for a single depth.
const (
	SaltKind     int64 = 0
	SaltLateralX int64 = 1
	SaltLateralY int64 = 2
	SaltJitterX  int64 = 3
	SaltJitterY  int64 = 4
)

// SampleAt returns a pseudo-random value in [0, 1) that depends only on depth and
// salt. There is no hidden state: the same pair always yields the same value.
func SampleAt(depth float64, salt int64) float64 {
	if depth == 0 {
		// -0 and +0 have different bit patterns.
		depth = 0
	}
	h := math.Float64bits(depth)
	h ^= uint64(salt) * 0x9e3779b97f4a7c15
	h = mix64(h)
	h = mix64(h ^ uint64(salt))
	return float64(h>>11) * (1.0 / (1 << 53))
}

// mix64 is the splitmix64 finaliser.
func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
