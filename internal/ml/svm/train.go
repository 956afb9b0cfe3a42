// Package svm implements a linear-kernel maximum-margin classifier over sparse
// hashed features. Multiclass problems are decomposed one-vs-one.
package svm

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/kailas-cloud/reviewdex/internal/ml/hashing"
)

// biasFeature is the constant appended to every sample so the solver learns an intercept.
const biasFeature = 1.0

var (
	// ErrEmptyTrainingSet signals that no samples were given.
	ErrEmptyTrainingSet = errors.New("empty training set")
	// ErrSingleClass signals that the labels contain fewer than two distinct classes.
	ErrSingleClass = errors.New("training set needs at least two classes")
)

// Train fits a one-vs-one linear SVM.
// The same inputs and Params always produce the same model.
func Train(xs []hashing.Vector, ys []int, p Params) (*Model, error) {
	p = p.withDefaults()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("svm params: %w", err)
	}
	if len(xs) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("got %d samples but %d labels", len(xs), len(ys))
	}

	dim := xs[0].Len()
	for i, x := range xs {
		if x.Len() != dim {
			return nil, fmt.Errorf("%w: sample %d has %d, sample 0 has %d", ErrDimensionMismatch, i, x.Len(), dim)
		}
	}

	classes := slices.Clone(ys)
	slices.Sort(classes)
	classes = slices.Compact(classes)
	if len(classes) < 2 {
		return nil, ErrSingleClass
	}

	byClass := make(map[int][]int, len(classes))
	for i, y := range ys {
		byClass[y] = append(byClass[y], i)
	}

	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))

	estimators := make([]Estimator, 0, len(classes)*(len(classes)-1)/2)
	for i := 0; i < len(classes); i++ {
		for j := i + 1; j < len(classes); j++ {
			neg, pos := classes[i], classes[j]
			idx := append(slices.Clone(byClass[neg]), byClass[pos]...)
			slices.Sort(idx)

			subX := make([]hashing.Vector, len(idx))
			subY := make([]float64, len(idx))
			for k, s := range idx {
				subX[k] = xs[s]
				if ys[s] == pos {
					subY[k] = 1
				} else {
					subY[k] = -1
				}
			}

			w, b := solveDual(subX, subY, dim, p, rng)
			estimators = append(estimators, Estimator{
				Positive: pos,
				Negative: neg,
				Bias:     b,
				Weights:  sparsify(w),
			})
		}
	}

	return NewModel(dim, classes, estimators, p)
}

// solveDual minimises the L2-regularised hinge loss by coordinate descent on the dual
// (box constraint 0 <= alpha <= C), returning the dense weights and the intercept.
func solveDual(xs []hashing.Vector, ys []float64, dim int, p Params, rng *rand.Rand) ([]float64, float64) {
	n := len(xs)
	w := make([]float64, dim)
	var wb float64
	alpha := make([]float64, n)

	qd := make([]float64, n)
	for i, x := range xs {
		qd[i] = x.SquaredNorm() + biasFeature*biasFeature
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	for iter := 0; iter < p.MaxIter; iter++ {
		rng.Shuffle(n, func(a, b int) { order[a], order[b] = order[b], order[a] })

		pgMax, pgMin := math.Inf(-1), math.Inf(1)
		for _, i := range order {
			x := xs[i]
			g := ys[i]*(dot(w, x)+wb*biasFeature) - 1

			var pg float64
			switch {
			case alpha[i] == 0:
				pg = math.Min(g, 0)
			case alpha[i] == p.C:
				pg = math.Max(g, 0)
			default:
				pg = g
			}
			pgMax = math.Max(pgMax, pg)
			pgMin = math.Min(pgMin, pg)

			if math.Abs(pg) <= 1e-12 {
				continue
			}
			old := alpha[i]
			alpha[i] = math.Min(math.Max(old-g/qd[i], 0), p.C)
			d := (alpha[i] - old) * ys[i]
			for k, idx := range x.Indices {
				w[idx] += d * x.Values[k]
			}
			wb += d * biasFeature
		}

		if pgMax-pgMin <= p.Tol {
			break
		}
	}

	return w, wb * biasFeature
}

func dot(w []float64, x hashing.Vector) float64 {
	var s float64
	for k, idx := range x.Indices {
		s += w[idx] * x.Values[k]
	}
	return s
}

func sparsify(w []float64) map[int]float64 {
	out := make(map[int]float64)
	for i, v := range w {
		if v != 0 {
			out[i] = v
		}
	}
	return out
}
