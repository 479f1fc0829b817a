// Copyright (c) 2026 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.21
//

// Projection and selection operators for common feasible sets and regularizers.
// All of them mutate their argument in place, as the solver requires.

package goadmm

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// IdentityProjection leaves its argument unchanged (feasible set = everything)
type IdentityProjection struct{}

func (IdentityProjection) Project(x *mat.Dense) {}

// IdentitySelection leaves its argument unchanged (no regularizer)
type IdentitySelection struct{}

func (IdentitySelection) Select(z *mat.Dense, scale float64) {}

// SoftThreshold is the proximal operator of the L1 penalty Lambda*||z||_1:
// elementwise shrinkage toward zero by Lambda*scale
type SoftThreshold struct {
	Lambda float64 // Regularization level; the shrinkage amount is Lambda*scale
}

func (s SoftThreshold) Select(z *mat.Dense, scale float64) {
	t := s.Lambda * scale
	z.Apply(func(i, j int, v float64) float64 {
		if v > t {
			return v - t
		}
		if v < -t {
			return v + t
		}
		return 0.0
	}, z)
}

// FantopeProjection projects onto the Fantope
//   { X symmetric : 0 <= eig(X) <= 1, trace(X) = Rank }
// the convex hull of rank-Rank orthogonal projection matrices. This is the
// feasible set for subspace estimation problems such as sparse PCA.
type FantopeProjection struct {
	Rank int // Target subspace dimension (1 <= Rank <= n)
}

// Project replaces x with its Euclidean projection onto the Fantope
// - Eigendecompose the symmetric part of x
// - Shift the spectrum by theta and clip to [0, 1] so that it sums to Rank
//   (theta is found by bisection; the sum is non-increasing in theta)
// - Reassemble from the clipped spectrum
func (f FantopeProjection) Project(x *mat.Dense) {
	spectralReplace(x, func(vals []float64) []float64 {
		d := float64(f.Rank)
		lo := vals[0] - 1.0
		hi := vals[len(vals)-1]
		clipSum := func(theta float64) float64 {
			sum := 0.0
			for _, v := range vals {
				sum += math.Min(math.Max(v-theta, 0.0), 1.0)
			}
			return sum
		}
		// 100 halvings put the bracket far below any meaningful tolerance
		for iter := 0; iter < 100; iter++ {
			mid := 0.5 * (lo + hi)
			if clipSum(mid) > d {
				lo = mid
			} else {
				hi = mid
			}
		}
		theta := 0.5 * (lo + hi)
		out := make([]float64, len(vals))
		for i, v := range vals {
			out[i] = math.Min(math.Max(v-theta, 0.0), 1.0)
		}
		return out
	})
}

// SpectralBallProjection projects onto the set of symmetric matrices with
// operator norm at most Radius by clipping the spectrum to [-Radius, Radius]
type SpectralBallProjection struct {
	Radius float64
}

func (s SpectralBallProjection) Project(x *mat.Dense) {
	spectralReplace(x, func(vals []float64) []float64 {
		out := make([]float64, len(vals))
		for i, v := range vals {
			out[i] = math.Min(math.Max(v, -s.Radius), s.Radius)
		}
		return out
	})
}

// Replace x by V diag(f(vals)) V^T where vals, V come from the
// eigendecomposition of the symmetric part of x (vals ascending).
// If the decomposition fails x is left unchanged; the solver treats operator
// misbehavior as caller responsibility.
func spectralReplace(x *mat.Dense, f func(vals []float64) []float64) {
	vals, vecs, err := eigSym(x)
	if err != nil {
		return
	}
	gamma := f(vals)

	// W = V diag(gamma), then x = W V^T
	n := len(vals)
	w := mat.NewDense(n, n, nil)
	w.Apply(func(i, j int, v float64) float64 {
		return v * gamma[j]
	}, vecs)
	x.Mul(w, vecs.T())
}
