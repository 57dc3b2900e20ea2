// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package constraint implements the non-contact constraints: distance
// joints, springs, hinges and spline followers. Each exposes the
// presolve/warmstart/solve sequence the step driver runs once per substep.
package constraint

import (
	"github.com/space2d/engine/body"
)

// Constraint is the common interface every non-contact constraint
// implements, matched to one iteration of the sequential-impulse solver.
type Constraint interface {
	Presolve(dt, invDt float64)
	Warmstart()
	Solve(invDt float64)
	Bodies() (a, b *body.RigidBody)
}
