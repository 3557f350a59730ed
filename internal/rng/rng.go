// Package rng provides deterministically seeded random sub-streams.
//
// Every random draw in a generation run comes from a stream keyed by
// (seed, stage, index). Streams are independent of each other and of call
// order, so stages may run their instances in parallel and still produce
// identical output for identical input.
package rng

import (
	"hash/fnv"
	"math/rand"
)

// Sub derives a child seed for a named stage and instance index.
// The derivation mixes the inputs through splitmix64 so adjacent indices
// produce uncorrelated streams.
func Sub(seed int64, stage string, index int) int64 {
	h := fnv.New64a()
	h.Write([]byte(stage))
	x := uint64(seed) ^ h.Sum64() ^ (uint64(index)+1)*0x9e3779b97f4a7c15
	return int64(splitmix64(x))
}

// splitmix64 is the finalizer from the SplitMix64 generator. It maps any
// 64-bit input to a well-mixed output and is bijective.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Stream is one seeded random stream. It wraps math/rand with the draw
// helpers the generator stages need.
type Stream struct {
	r *rand.Rand
}

// New creates the stream for (seed, stage, index).
func New(seed int64, stage string, index int) *Stream {
	return &Stream{r: rand.New(rand.NewSource(Sub(seed, stage, index)))}
}

// Float64 returns a value in [0,1).
func (s *Stream) Float64() float64 {
	return s.r.Float64()
}

// Intn returns a value in [0,n).
func (s *Stream) Intn(n int) int {
	return s.r.Intn(n)
}

// Range returns a value in [min,max).
func (s *Stream) Range(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.r.Float64()*(max-min)
}

// IntRange returns a value in [min,max] inclusive.
func (s *Stream) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.Intn(max-min+1)
}

// Angle returns a rotation in [0,2pi).
func (s *Stream) Angle() float64 {
	return s.r.Float64() * 2 * 3.141592653589793
}

// Weighted picks an index from the weight slice, proportionally to each
// weight. Weights must be positive; an empty slice returns 0.
func (s *Stream) Weighted(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	target := s.r.Float64() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return i
		}
	}
	return len(weights) - 1
}
