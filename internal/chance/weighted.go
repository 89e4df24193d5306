// ABOUTME: Weighted categorical tables used as named generation configuration.
// ABOUTME: Replaces inline probability literals with substitutable values.

package chance

// Option is one outcome of a categorical distribution.
type Option[T any] struct {
	Value  T
	Weight float64
}

// Weighted is an ordered categorical distribution. Order matters for reproducibility.
type Weighted[T any] []Option[T]

// W builds a Weighted table from options, keeping their order.
func W[T any](opts ...Option[T]) Weighted[T] {
	return Weighted[T](opts)
}

// O is shorthand for an Option literal.
func O[T any](v T, w float64) Option[T] {
	return Option[T]{Value: v, Weight: w}
}

// Total returns the sum of all weights.
func (w Weighted[T]) Total() float64 {
	var total float64
	for _, o := range w {
		total += o.Weight
	}
	return total
}

// Pick draws one outcome. Zero-weight options are never chosen.
// Panics if the table is empty or all weights are zero.
func Pick[T any](s *Source, w Weighted[T]) T {
	total := w.Total()
	if total <= 0 {
		panic("chance: weighted table has no positive weight")
	}
	x := s.r.Float64() * total
	for _, o := range w {
		if o.Weight <= 0 {
			continue
		}
		if x < o.Weight {
			return o.Value
		}
		x -= o.Weight
	}
	// floating point slack: return last positive option
	for i := len(w) - 1; i >= 0; i-- {
		if w[i].Weight > 0 {
			return w[i].Value
		}
	}
	panic("unreachable")
}
