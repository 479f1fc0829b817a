// Copyright (c) 2026 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.21
//

package goadmm

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"
)

// SolveBenchmark runs the same ADMM iteration as Solve, additionally recording
// per-iteration wall-clock time and reconstruction error against a known answer
//
// Every iteration, including the final one that satisfies the convergence
// criterion, appends one entry to *times (iteration duration in seconds) and
// one entry to *errs (Frobenius distance between the rank-k eigenprojection
// of the current z and truth). After any call, the number of appended entries
// equals the returned iteration count.
//
// The eigenprojection step dominates the per-iteration cost; this variant is
// meant for offline benchmarking against a known subspace, not for production
// solves.
//
// Parameters:
//   - projection, selection: operators as in Solve
//   - rank: number of leading eigenvectors forming the diagnostic projection
//   - input: input matrix, read-only
//   - truth: ground-truth projection matrix the error is measured against
//   - z, u, penalty, opt: as in Solve; z, u and penalty are updated in place
//   - times, errs: history containers appended to, never overwritten
//
// Returns:
//   - The number of iterations run (opt.MaxIter means non-convergence)
//   - An error if the eigendecomposition of z fails; the returned count
//     includes the failing iteration, whose timing entry is recorded but
//     whose error entry is not
func SolveBenchmark(
	projection Projection,
	selection Selection,
	rank int,
	input mat.Matrix,
	truth mat.Matrix,
	z *mat.Dense,
	u *mat.Dense,
	penalty *float64,
	opt *AdmmOpt,
	times *[]float64,
	errs *[]float64,
) (int, error) {

	nr, nc := z.Dims()
	x := mat.NewDense(nr, nc, nil)
	zOld := mat.NewDense(nr, nc, nil)
	work := mat.NewDense(nr, nc, nil)
	proj := mat.NewDense(nr, nc, nil)

	var niter int
	for niter = 0; niter < opt.MaxIter; niter++ {
		PrintAIf(opt.Verbose > 0, "iter = %d\n", niter)

		t1 := time.Now()

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
			*times = append(*times, time.Since(t1).Seconds())

			if err := recordError(proj, z, truth, rank, errs); err != nil {
				return niter, err
			}
			break
		}

		// Penalty adjustment (Boyd, et al. 2010)
		adjustPenalty(rr, ss, u, penalty, opt.AdjustFactor)

		*times = append(*times, time.Since(t1).Seconds())

		if err := recordError(proj, z, truth, rank, errs); err != nil {
			niter++
			return niter, err
		}
	}

	return niter, nil
}

// Append ||P_k(z) - truth||_F to the error history. The error is measured
// between projection matrices, not between z and truth directly, so it tracks
// subspace recovery rather than entrywise agreement.
func recordError(proj *mat.Dense, z *mat.Dense, truth mat.Matrix, rank int, errs *[]float64) error {
	if err := RankProjection(proj, z, rank); err != nil {
		return fmt.Errorf("RankProjection() failed, err= %s", err.Error())
	}
	var diff mat.Dense
	diff.Sub(proj, truth)
	*errs = append(*errs, mat.Norm(&diff, 2))
	return nil
}
