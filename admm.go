// Copyright (c) 2026 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.21
//

// Implements the projection-and-selection ADMM algorithm for the problem
//   max <input, x>  subject to  x in C,  minus R(x)
// where C and R are supplied by the caller as projection and proximal operators.

package goadmm

import (
	"gonum.org/v1/gonum/mat"
)

// Projection is a Euclidean projection onto a convex set, applied in place.
// Implementations must be idempotent on points already in the set.
type Projection interface {
	Project(x *mat.Dense)
}

// Selection is the proximal operator of a scaled regularizer, applied in place.
// The scale argument is 1/rho at the time of the call.
type Selection interface {
	Select(z *mat.Dense, scale float64)
}

// ProjectionFunc adapts a plain function to the Projection interface.
type ProjectionFunc func(x *mat.Dense)

func (f ProjectionFunc) Project(x *mat.Dense) { f(x) }

// SelectionFunc adapts a plain function to the Selection interface.
type SelectionFunc func(z *mat.Dense, scale float64)

func (f SelectionFunc) Select(z *mat.Dense, scale float64) { f(z, scale) }

// AdmmOpt contains the fixed parameters of one ADMM solve
// The penalty parameter itself is passed separately because it is mutated
type AdmmOpt struct {
	AdjustFactor float64 // Factor (> 1) by which the penalty can increase/decrease
	MaxIter      int     // Maximum number of iterations
	Tolerance    float64 // Convergence tolerance for the primal and dual residual norms
	Verbose      int     // Debug display level for the benchmark variant (0: silent)
}

// NewAdmmOpt creates a new AdmmOpt with default values
func NewAdmmOpt() *AdmmOpt {
	return &AdmmOpt{
		AdjustFactor: DefAdjustFactor,
		MaxIter:      DefMaxIter,
		Tolerance:    DefTolerance,
		Verbose:      0,
	}
}

// Solve runs the ADMM iteration until both residual norms fall below
// opt.Tolerance or opt.MaxIter iterations have run
//
// Parameters:
//   - projection: Euclidean projection onto the feasible convex set
//   - selection: proximal operator of the scaled regularizer
//   - input: input matrix (the linear objective coefficient), read-only
//   - z: solution matrix, same dimension as input; updated in place
//   - u: dual variable matrix, same dimension as input; updated in place
//   - penalty: ADMM penalty parameter rho (> 0); it may change
//   - opt: fixed solve parameters
//
// Returns:
//   - The number of iterations run. A return value equal to opt.MaxIter
//     means the tolerance was not reached; the caller must check for this.
//
// z, u and penalty are left in their final state, so a subsequent call
// continues from where this one stopped (warm start).
func Solve(
	projection Projection,
	selection Selection,
	input mat.Matrix,
	z *mat.Dense,
	u *mat.Dense,
	penalty *float64,
	opt *AdmmOpt,
) int {

	nr, nc := z.Dims()
	x := mat.NewDense(nr, nc, nil)
	zOld := mat.NewDense(nr, nc, nil)
	work := mat.NewDense(nr, nc, nil)

	var niter int
	for niter = 0; niter < opt.MaxIter; niter++ {
		// Store previous value of z
		zOld.Copy(z)

		// Projection: x = P(z - u + input/penalty)
		rho := *penalty
		x.Apply(func(i, j int, v float64) float64 {
			return v - u.At(i, j) + input.At(i, j)/rho
		}, z)
		projection.Project(x)

		// Selection: z = S(x + u, 1/penalty)
		z.Add(x, u)
		selection.Select(z, 1.0/rho)

		// Dual variable update: u = u + x - z
		u.Add(u, x)
		u.Sub(u, z)

		// Primal and dual residual norms
		work.Sub(x, z)
		rr := mat.Norm(work, 2)
		work.Sub(z, zOld)
		ss := rho * mat.Norm(work, 2)

		// Convergence criterion
		if rr < opt.Tolerance && ss < opt.Tolerance {
			niter++
			break
		}

		// Penalty adjustment (Boyd, et al. 2010)
		adjustPenalty(rr, ss, u, penalty, opt.AdjustFactor)
	}

	return niter
}

// Rebalance the penalty parameter when the primal and dual residuals are more
// than a factor of 10 apart; u is rescaled inversely so that rho*u is preserved
func adjustPenalty(rr, ss float64, u *mat.Dense, penalty *float64, adjust float64) {
	if rr > residualRatio*ss {
		*penalty = *penalty * adjust
		u.Scale(1.0/adjust, u)
	} else if ss > residualRatio*rr {
		*penalty = *penalty / adjust
		u.Scale(adjust, u)
	}
}
