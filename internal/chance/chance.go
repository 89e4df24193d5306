// ABOUTME: Seeded random source threaded through every generation stage.
// ABOUTME: Provides weighted tables and sampling helpers so runs are reproducible.

package chance

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// Source wraps a seeded *rand.Rand. It is not safe for concurrent use; each stage
// derives its own Source.
type Source struct {
	seed int64
	r    *rand.Rand
}

// New creates a Source from a fixed seed.
func New(seed int64) *Source {
	return &Source{seed: seed, r: rand.New(rand.NewSource(seed))}
}

// Seed returns the seed this Source was created with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Derive returns an independent Source for a named consumer. The derived stream only
// depends on the parent seed and the name, so a stage produces the same rows whether
// it runs alone or as part of the whole pipeline.
func (s *Source) Derive(name string) *Source {
	h := fnv.New64a()
	h.Write([]byte(name))
	return New(s.seed ^ int64(h.Sum64()))
}

// Float64 returns a value in [0.0, 1.0).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// Intn returns a value in [0, n).
func (s *Source) Intn(n int) int {
	return s.r.Intn(n)
}

// IntBetween returns a value in [lo, hi], both inclusive.
func (s *Source) IntBetween(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + s.r.Intn(hi-lo+1)
}

// Uniform returns a+(b-a)*r. Works when a > b, matching the usual uniform(a, b) contract.
func (s *Source) Uniform(a, b float64) float64 {
	return a + (b-a)*s.r.Float64()
}

// Chance reports true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.r.Float64() < p
}

// Between returns a whole-second instant in [from, to]. It returns from when the
// range is empty or reversed.
func (s *Source) Between(from, to time.Time) time.Time {
	span := to.Sub(from)
	if span <= 0 {
		return from
	}
	t := from.Add(time.Duration(s.r.Int63n(int64(span) + 1)))
	if t = t.Truncate(time.Second); t.Before(from) {
		return from
	}
	return t
}

// Choice returns a uniformly chosen element. Panics on an empty slice.
func Choice[T any](s *Source, items []T) T {
	return items[s.r.Intn(len(items))]
}

// Sample returns n distinct elements in random order (n is capped at len(items)).
// The input slice is not modified.
func Sample[T any](s *Source, items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	pool := make([]T, len(items))
	copy(pool, items)
	for i := 0; i < n; i++ {
		j := i + s.r.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
