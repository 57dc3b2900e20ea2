// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/space2d/engine/body"
	"github.com/space2d/engine/equation"
	"github.com/space2d/engine/math2"
)

// Hinge is a 2-DoF revolute joint enforcing that an anchor on body A
// coincides with an anchor on body B, solved as a 2x2 block, with an
// optional relative-angle limit.
type Hinge struct {
	BodyA, BodyB               *body.RigidBody
	LocalAnchorA, LocalAnchorB math2.Vector2
	Baumgarte                  float64

	EnableLimit bool
	LowerAngle  float64
	UpperAngle  float64

	accumulatedImpulse math2.Vector2
	limitImpulse       float64

	rA, rB   math2.Vector2
	bias     math2.Vector2
	invK11   float64
	invK12   float64
	invK22   float64

	limitActive int // -1 at lower, 0 inactive, 1 at upper
	limitC      float64
	limitMass   float64
	limitBias   float64
}

// NewHinge creates a 2-DoF revolute joint between two bodies, anchored at
// the given body-local points relative to each body's center of mass.
func NewHinge(a, b *body.RigidBody, anchorA, anchorB math2.Vector2, baumgarte float64) *Hinge {

	return &Hinge{BodyA: a, BodyB: b, LocalAnchorA: anchorA, LocalAnchorB: anchorB, Baumgarte: baumgarte}
}

func (h *Hinge) Bodies() (*body.RigidBody, *body.RigidBody) {

	return h.BodyA, h.BodyB
}

func (h *Hinge) Presolve(dt, invDt float64) {

	h.rA = math2.Rotate(h.LocalAnchorA, h.BodyA.Angle())
	h.rB = math2.Rotate(h.LocalAnchorB, h.BodyB.Angle())

	invMa, invMb := h.BodyA.InvMass(), h.BodyB.InvMass()
	invIa, invIb := h.BodyA.InvInertia(), h.BodyB.InvInertia()

	k11 := invMa + invMb + invIa*h.rA.Y*h.rA.Y + invIb*h.rB.Y*h.rB.Y
	k12 := -invIa*h.rA.X*h.rA.Y - invIb*h.rB.X*h.rB.Y
	k22 := invMa + invMb + invIa*h.rA.X*h.rA.X + invIb*h.rB.X*h.rB.X

	det := k11*k22 - k12*k12
	if det != 0 {
		det = 1 / det
	}
	h.invK11 = k22 * det
	h.invK12 = -k12 * det
	h.invK22 = k11 * det

	pa := h.BodyA.Position().Add(h.rA)
	pb := h.BodyB.Position().Add(h.rB)
	c := pb.Sub(pa)
	h.bias = c.Scale(h.Baumgarte * invDt)

	if h.EnableLimit {
		h.presolveLimit(dt, invDt)
	} else {
		h.limitActive = 0
	}
}

func (h *Hinge) presolveLimit(dt, invDt float64) {

	angle := h.BodyB.Angle() - h.BodyA.Angle()
	invIa, invIb := h.BodyA.InvInertia(), h.BodyB.InvInertia()

	mass := invIa + invIb
	if mass > 0 {
		h.limitMass = 1 / mass
	} else {
		h.limitMass = 0
	}

	switch {
	case angle <= h.LowerAngle:
		h.limitActive = -1
		h.limitC = angle - h.LowerAngle
	case angle >= h.UpperAngle:
		h.limitActive = 1
		h.limitC = angle - h.UpperAngle
	default:
		h.limitActive = 0
		h.limitImpulse = 0
	}
	h.limitBias = equation.Bias(h.Baumgarte, invDt, h.limitC)
	_ = dt
}

func (h *Hinge) Warmstart() {

	h.BodyA.ApplyImpulse(h.accumulatedImpulse.Negate(), h.LocalAnchorA)
	h.BodyB.ApplyImpulse(h.accumulatedImpulse, h.LocalAnchorB)

	if h.limitActive != 0 {
		h.applyLimitAngularImpulse(h.limitImpulse)
	}
}

func (h *Hinge) applyLimitAngularImpulse(impulse float64) {

	h.BodyA.SetAngularVelocity(h.BodyA.AngularVelocity() - h.BodyA.InvInertia()*impulse)
	h.BodyB.SetAngularVelocity(h.BodyB.AngularVelocity() + h.BodyB.InvInertia()*impulse)
}

func (h *Hinge) Solve(invDt float64) {

	va := h.BodyA.LinearVelocity().Add(math2.CrossScalar(h.BodyA.AngularVelocity(), h.rA))
	vb := h.BodyB.LinearVelocity().Add(math2.CrossScalar(h.BodyB.AngularVelocity(), h.rB))
	cdot := vb.Sub(va).Add(h.bias)

	ix := -(h.invK11*cdot.X + h.invK12*cdot.Y)
	iy := -(h.invK12*cdot.X + h.invK22*cdot.Y)
	impulse := math2.Vec2(ix, iy)

	h.accumulatedImpulse = h.accumulatedImpulse.Add(impulse)
	h.BodyA.ApplyImpulse(impulse.Negate(), h.LocalAnchorA)
	h.BodyB.ApplyImpulse(impulse, h.LocalAnchorB)

	if h.limitActive != 0 {
		h.solveLimit(invDt)
	}
}

func (h *Hinge) solveLimit(invDt float64) {

	cdot := h.BodyB.AngularVelocity() - h.BodyA.AngularVelocity()
	lambda := -(cdot + h.limitBias) * h.limitMass

	newImpulse := h.limitImpulse + lambda
	if h.limitActive < 0 {
		if newImpulse < 0 {
			newImpulse = 0
		}
	} else {
		if newImpulse > 0 {
			newImpulse = 0
		}
	}
	lambda = newImpulse - h.limitImpulse
	h.limitImpulse = newImpulse

	h.applyLimitAngularImpulse(lambda)
	_ = invDt
}
