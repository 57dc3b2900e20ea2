// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math2 implements the 2D math primitives used by the simulation
// core: vectors, rotations, axis-aligned bounding boxes and transforms.
// It operates directly on float64 numbers without casting.
package math2

import "math"

const Pi = math.Pi

// Inf is the scalar used by shapes and the broadphase to represent
// an unbounded extent.
var Inf = math.Inf(1)

// Clamp clamps x to the closed interval [a, b].
func Clamp(x, a, b float64) float64 {

	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}

// Abs returns the absolute value of x.
func Abs(x float64) float64 {

	return math.Abs(x)
}

// Sqrt returns the square root of x.
func Sqrt(x float64) float64 {

	return math.Sqrt(x)
}

// Atan2 returns the angle, in radians, between the positive x-axis and the
// point (x, y).
func Atan2(y, x float64) float64 {

	return math.Atan2(y, x)
}

// Pow returns base raised to the power exp.
func Pow(base, exp float64) float64 {

	return math.Pow(base, exp)
}

// Min returns the smaller of a and b.
func Min(a, b float64) float64 {

	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b float64) float64 {

	if a > b {
		return a
	}
	return b
}

// NearZero returns whether x is close enough to zero to be treated as zero.
func NearZero(x float64) bool {

	const epsilon = 1e-9
	return Abs(x) < epsilon
}
