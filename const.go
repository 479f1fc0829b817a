// Copyright (c) 2026 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.21
//

package goadmm

const (
	DefAdjustFactor = 2.0  // Default penalty adjustment factor
	DefMaxIter      = 1000 // Default iteration budget
	DefTolerance    = 1e-6 // Default residual tolerance
	DefPenalty      = 1.0  // Default initial penalty parameter rho

	// Residual imbalance ratio that triggers a penalty adjustment
	// (Boyd, et al. 2010); within this ratio rho is left alone
	residualRatio = 10.0
)
