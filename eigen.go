// Copyright (c) 2026 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.21
//

package goadmm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Build the symmetric part (A + A^T)/2 of a square matrix
// Iterates the upper triangle only; SetSym mirrors the entry
func symPart(a mat.Matrix) *mat.SymDense {
	n, _ := a.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return s
}

// eigSym computes the eigendecomposition of the symmetric part of a.
// Eigenvalues are returned in ascending order with matching eigenvector
// columns, following mat.EigenSym.
func eigSym(a mat.Matrix) (vals []float64, vecs *mat.Dense, err error) {
	var eig mat.EigenSym
	if ok := eig.Factorize(symPart(a), true); !ok {
		return nil, nil, fmt.Errorf("symmetric eigendecomposition did not converge")
	}
	vecs = &mat.Dense{}
	eig.VectorsTo(vecs)
	return eig.Values(nil), vecs, nil
}

// RankProjection sets dst to the rank-k eigenprojection V_k V_k^T of a, where
// the columns of V_k are the eigenvectors of the symmetric part of a belonging
// to its k largest eigenvalues
//
// The result is the orthogonal projection onto the leading k-dimensional
// eigenspace; it is used as a diagnostic distance metric against a known
// projection matrix, not as part of the solve itself.
func RankProjection(dst *mat.Dense, a mat.Matrix, k int) error {
	n, m := a.Dims()
	if n != m {
		return fmt.Errorf("invalid matrix size. a(%d x %d) is not square", n, m)
	}
	if k <= 0 || k > n {
		return fmt.Errorf("invalid rank. k= %d, n= %d", k, n)
	}

	_, vecs, err := eigSym(a)
	if err != nil {
		return err
	}

	// mat.EigenSym orders eigenvalues ascending, so the top-k eigenvectors
	// are the last k columns
	vk := vecs.Slice(0, n, n-k, n)
	dst.Mul(vk, vk.T())
	return nil
}
