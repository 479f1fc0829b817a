// Copyright (c) 2026 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.21
//

package goadmm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	m "github.com/mkhts/goadmm"
)

// TestSolveBenchmark_HistoryAlignment checks that both histories grow by
// exactly one entry per iteration, on the converging path, on the
// budget-exhausted path, and across repeated appending calls.
func TestSolveBenchmark_HistoryAlignment(t *testing.T) {
	n := 4
	truth := zeros(n)
	opt := m.NewAdmmOpt()
	opt.MaxIter = 50

	var times, errs []float64

	// Converges on the first iteration
	z, u := zeros(n), zeros(n)
	rho := 1.0
	niter, err := m.SolveBenchmark(m.IdentityProjection{}, m.IdentitySelection{},
		1, zeros(n), truth, z, u, &rho, opt, &times, &errs)
	require.NoError(t, err)
	require.Equal(t, 1, niter)
	assert.Len(t, times, niter, "one timing entry per iteration")
	assert.Len(t, errs, niter, "one error entry per iteration")

	// A second call appends instead of overwriting
	niter, err = m.SolveBenchmark(m.IdentityProjection{}, m.IdentitySelection{},
		1, zeros(n), truth, z, u, &rho, opt, &times, &errs)
	require.NoError(t, err)
	require.Equal(t, 1, niter)
	assert.Len(t, times, 2)
	assert.Len(t, errs, 2)

	// Budget exhaustion records one entry for every iteration run
	shift := m.SelectionFunc(func(z *mat.Dense, scale float64) {
		z.Apply(func(i, j int, v float64) float64 { return v + 1.0 }, z)
	})
	times, errs = nil, nil
	z, u = zeros(n), zeros(n)
	rho = 1.0
	opt.MaxIter = 5
	niter, err = m.SolveBenchmark(m.IdentityProjection{}, shift,
		1, zeros(n), truth, z, u, &rho, opt, &times, &errs)
	require.NoError(t, err)
	require.Equal(t, 5, niter)
	assert.Len(t, times, 5)
	assert.Len(t, errs, 5)

	for _, d := range times {
		assert.GreaterOrEqual(t, d, 0.0, "iteration durations must be non-negative")
	}
}

// TestSolveBenchmark_RecoversPlantedSubspace solves a Fantope-constrained
// problem whose optimum is the projection onto the leading eigenvector of the
// input and checks that the recorded error approaches zero.
func TestSolveBenchmark_RecoversPlantedSubspace(t *testing.T) {
	n := 5
	// Leading eigenvector e0 with a clear spectral gap
	input := mat.NewDense(n, n, nil)
	for i, v := range []float64{3.0, 1.0, 0.5, 0.2, 0.1} {
		input.Set(i, i, v)
	}
	truth := zeros(n)
	truth.Set(0, 0, 1.0) // e0 e0^T

	z, u := zeros(n), zeros(n)
	rho := 1.0
	opt := &m.AdmmOpt{AdjustFactor: 2.0, MaxIter: 300, Tolerance: 1e-6}

	var times, errs []float64
	niter, err := m.SolveBenchmark(m.FantopeProjection{Rank: 1}, m.IdentitySelection{},
		1, input, truth, z, u, &rho, opt, &times, &errs)

	require.NoError(t, err)
	require.Less(t, niter, opt.MaxIter, "the instance must converge before the budget")
	require.Len(t, errs, niter)
	assert.Less(t, errs[niter-1], 1e-2, "final subspace error must be small")
	assert.LessOrEqual(t, errs[niter-1], errs[0], "error must not degrade over the solve")
}

// TestSolveBenchmark_BadRank checks that an impossible diagnostic rank is
// reported as an error instead of corrupting the histories silently.
func TestSolveBenchmark_BadRank(t *testing.T) {
	n := 3
	z, u := zeros(n), zeros(n)
	rho := 1.0
	opt := m.NewAdmmOpt()
	opt.MaxIter = 10

	var times, errs []float64
	niter, err := m.SolveBenchmark(m.IdentityProjection{}, m.IdentitySelection{},
		n+1, zeros(n), zeros(n), z, u, &rho, opt, &times, &errs)

	require.Error(t, err)
	assert.Equal(t, 1, niter, "the failing iteration is counted")
	assert.Len(t, times, 1, "timing for the failing iteration is recorded")
	assert.Empty(t, errs, "no error entry is recorded for the failing iteration")
}
