// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package equation implements the soft-constraint parameter math shared by
// the non-contact constraints: the SPOOK-style (beta, gamma) pair derived
// from stiffness and damping, as well as its Baumgarte-only special case
// used by hard constraints.
package equation

// Spook derives the (beta, gamma) softness parameters of a SPOOK
// constraint from its stiffness and damping coefficients and the substep
// length h, following the standard derivation beta = h*k/(d+h*k),
// gamma = 1/((d+h*k)*h).
func Spook(stiffness, damping, h float64) (beta, gamma float64) {

	denom := damping + h*stiffness
	if denom == 0 {
		return 0, 0
	}
	beta = h * stiffness / denom
	gamma = 1 / (denom * h)
	return beta, gamma
}

// Baumgarte returns the (beta, gamma) pair for a hard constraint
// stabilized purely by a Baumgarte bias term, with no softness.
func Baumgarte(factor float64) (beta, gamma float64) {

	return factor, 0
}

// Bias computes the SPOOK/Baumgarte velocity bias term beta*invDt*c for a
// scalar constraint with current error c, given beta and invDt = 1/h.
func Bias(beta, invDt, c float64) float64 {

	return beta * invDt * c
}
