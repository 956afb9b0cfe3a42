package hashing

import "math"

// Vector is a sparse feature vector of fixed dimension.
// Indices are strictly increasing; Values[i] is the weight at Indices[i].
type Vector struct {
	dim     int
	Indices []int
	Values  []float64
}

// NewVector creates a sparse vector. Callers must pass sorted, unique indices in [0, dim).
func NewVector(dim int, indices []int, values []float64) Vector {
	return Vector{dim: dim, Indices: indices, Values: values}
}

// Len returns the dimension of the feature space.
func (v Vector) Len() int { return v.dim }

// NNZ returns the number of stored (non-zero) entries.
func (v Vector) NNZ() int { return len(v.Indices) }

// IsZero reports whether v has no non-zero entries.
func (v Vector) IsZero() bool { return len(v.Indices) == 0 }

// At returns the value at index i.
func (v Vector) At(i int) float64 {
	lo, hi := 0, len(v.Indices)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case v.Indices[mid] == i:
			return v.Values[mid]
		case v.Indices[mid] < i:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0
}

// SquaredNorm returns the squared L2 norm.
func (v Vector) SquaredNorm() float64 {
	var s float64
	for _, x := range v.Values {
		s += x * x
	}
	return s
}

// Dense expands v into a dense slice of length Len().
func (v Vector) Dense() []float64 {
	out := make([]float64, v.dim)
	for k, i := range v.Indices {
		out[i] = v.Values[k]
	}
	return out
}

// Equal reports whether v and o have the same dimension and entries.
func (v Vector) Equal(o Vector) bool {
	if v.dim != o.dim || len(v.Indices) != len(o.Indices) {
		return false
	}
	for k := range v.Indices {
		if v.Indices[k] != o.Indices[k] || v.Values[k] != o.Values[k] {
			return false
		}
	}
	return true
}

func (v Vector) normalize(norm string) {
	var n float64
	switch norm {
	case NormL1:
		for _, x := range v.Values {
			n += math.Abs(x)
		}
	case NormL2:
		n = math.Sqrt(v.SquaredNorm())
	default:
		return
	}
	if n == 0 {
		return
	}
	for k := range v.Values {
		v.Values[k] /= n
	}
}
