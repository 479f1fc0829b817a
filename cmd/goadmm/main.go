// Copyright (c) 2026 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.21
//

// Benchmark driver for the ADMM solver: builds a synthetic sparse PCA
// instance with a known principal subspace, runs the instrumented solve and
// reports per-iteration subspace error and timing.

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	m "github.com/mkhts/goadmm"
)

func main() {

	// Parse command line arguments
	args, err := parseArgs()
	if err != nil {
		m.PrintE(err)
		flag.Usage()
		os.Exit(1)
	}

	// Run the benchmark
	if err := runBenchmark(args); err != nil {
		m.PrintE(err)
		os.Exit(1)
	}
}

type cmdOpt struct {
	n       int     // Problem dimension
	rank    int     // Target subspace dimension
	support int     // Support size of the leading eigenvectors
	noise   float64 // Noise level of the synthetic input matrix
	lambda  float64 // L1 regularization level
	rho     float64 // Initial penalty parameter
	adjust  float64 // Penalty adjustment factor
	maxiter int     // Iteration budget
	tol     float64 // Residual tolerance
	seed    uint64  // Random seed
	verbose int     // Per-iteration reporting level
}

func parseArgs() (a cmdOpt, err error) {
	flag.Usage = func() {
		m.PrintA(`
[Usage]
	%s [Options]

Runs the instrumented ADMM solver on a synthetic sparse PCA instance.

[Options]
`, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	opt := m.NewAdmmOpt()
	flag.IntVar(&a.n, "n", 100, "Problem dimension (the input matrix is n x n)")
	flag.IntVar(&a.rank, "k", 2, "Dimension of the planted principal subspace")
	flag.IntVar(&a.support, "s", 10, "Number of nonzero coordinates carrying the planted subspace")
	flag.Float64Var(&a.noise, "sigma", 0.5, "Standard deviation of the symmetric noise added to the input matrix")
	flag.Float64Var(&a.lambda, "lambda", 0.1, "L1 regularization level of the soft-threshold selection operator")
	flag.Float64Var(&a.rho, "rho", m.DefPenalty, "Initial ADMM penalty parameter")
	flag.Float64Var(&a.adjust, "a", opt.AdjustFactor, "Penalty adjustment factor")
	flag.IntVar(&a.maxiter, "i", opt.MaxIter, "Maximum number of iterations")
	flag.Float64Var(&a.tol, "t", opt.Tolerance, "Convergence tolerance for the residual norms")
	flag.Uint64Var(&a.seed, "seed", 1, "Random seed for instance generation")
	var dbg int
	flag.IntVar(&dbg, "x", 0, "Debug information display. Specify level value. 0(OFF), 1(per-iteration report), 2(per-iteration table), 3(dump instance matrices)")
	flag.Parse()
	if flag.NArg() != 0 {
		return a, fmt.Errorf("unexpected arguments: %v", flag.Args())
	}
	if a.rank < 1 || a.support < a.rank || a.n < a.support {
		return a, fmt.Errorf("need 1 <= k <= s <= n, got k= %d, s= %d, n= %d", a.rank, a.support, a.n)
	}
	a.verbose = dbg
	m.DBG_ = dbg
	return
}

func runBenchmark(args cmdOpt) error {

	// Plant a sparse rank-k projection and bury it in symmetric noise
	truth, input := makeInstance(args)
	if m.DBG_ >= 3 {
		m.PrintD(3, "--- truth ---\n")
		m.PrintMat(truth)
		m.PrintD(3, "--- input ---\n")
		m.PrintMat(input)
	}

	z := mat.NewDense(args.n, args.n, nil)
	u := mat.NewDense(args.n, args.n, nil)
	rho := args.rho

	opt := m.NewAdmmOpt()
	opt.AdjustFactor = args.adjust
	opt.MaxIter = args.maxiter
	opt.Tolerance = args.tol
	opt.Verbose = args.verbose

	var times, errs []float64
	niter, err := m.SolveBenchmark(
		m.FantopeProjection{Rank: args.rank}, m.SoftThreshold{Lambda: args.lambda},
		args.rank, input, truth, z, u, &rho, opt, &times, &errs)
	if err != nil {
		return fmt.Errorf("SolveBenchmark() failed, err= %s", err.Error())
	}

	if niter == opt.MaxIter {
		m.PrintA("warning: iteration budget exhausted without convergence\n")
	}

	fmt.Printf("n= %d, k= %d, s= %d, sigma= %.3f, lambda= %.4f\n",
		args.n, args.rank, args.support, args.noise, args.lambda)
	fmt.Printf("iterations= %d, final rho= %.6g\n", niter, rho)
	if len(errs) == 0 {
		return nil
	}
	fmt.Printf("subspace error: final= %.6g, max= %.6g\n", errs[len(errs)-1], slices.Max(errs))
	total := 0.0
	for _, t := range times {
		total += t
	}
	fmt.Printf("time [s]: total= %.6g, mean= %.6g, max= %.6g\n", total, total/float64(len(times)), slices.Max(times))

	if args.verbose >= 2 {
		fmt.Printf("%6s %14s %14s\n", "iter", "error", "time[s]")
		for i := range errs {
			fmt.Printf("%6d %14.6e %14.6e\n", i, errs[i], times[i])
		}
	}
	return nil
}

// Build the ground-truth projection V V^T, with V an orthonormal basis of a
// random rank-k subspace supported on the first s coordinates, and the input
// matrix truth + noise with symmetric Gaussian noise
func makeInstance(args cmdOpt) (truth, input *mat.Dense) {
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(args.seed)}

	// Orthonormalize a random s x k Gaussian matrix via QR
	g := mat.NewDense(args.support, args.rank, nil)
	g.Apply(func(i, j int, v float64) float64 { return normal.Rand() }, g)
	var qr mat.QR
	qr.Factorize(g)
	var q mat.Dense
	qr.QTo(&q)

	// Embed the basis into n dimensions (zero outside the support)
	v := mat.NewDense(args.n, args.rank, nil)
	for i := 0; i < args.support; i++ {
		for j := 0; j < args.rank; j++ {
			v.Set(i, j, q.At(i, j))
		}
	}

	truth = mat.NewDense(args.n, args.n, nil)
	truth.Mul(v, v.T())

	// input = truth + sigma*(E + E^T)/2
	e := mat.NewDense(args.n, args.n, nil)
	e.Apply(func(i, j int, v float64) float64 { return normal.Rand() }, e)
	input = mat.NewDense(args.n, args.n, nil)
	input.Apply(func(i, j int, v float64) float64 {
		return truth.At(i, j) + 0.5*args.noise*(e.At(i, j)+e.At(j, i))
	}, truth)
	return truth, input
}
