// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/space2d/engine/body"
	"github.com/space2d/engine/equation"
	"github.com/space2d/engine/math2"
)

// Distance is a rigid or soft constraint holding the distance between an
// anchor on body A and an anchor on body B equal to a rest length. With
// zero stiffness it behaves as a hard distance joint stabilized by a
// Baumgarte bias; with nonzero stiffness/damping it behaves as a spring.
type Distance struct {
	BodyA, BodyB               *body.RigidBody
	LocalAnchorA, LocalAnchorB math2.Vector2
	Length                     float64

	// Stiffness and Damping make this a soft spring when Stiffness > 0;
	// when Stiffness == 0 the constraint is rigid and uses Baumgarte instead.
	Stiffness float64
	Damping   float64
	Baumgarte float64

	accumulatedImpulse float64

	rA, rB   math2.Vector2
	normal   math2.Vector2
	mass     float64
	beta     float64
	gamma    float64
	c        float64
}

// NewDistanceJoint creates a rigid distance constraint stabilized with the
// given Baumgarte factor.
func NewDistanceJoint(a, b *body.RigidBody, anchorA, anchorB math2.Vector2, length, baumgarte float64) *Distance {

	return &Distance{BodyA: a, BodyB: b, LocalAnchorA: anchorA, LocalAnchorB: anchorB, Length: length, Baumgarte: baumgarte}
}

// NewSpring creates a soft distance constraint with the given stiffness and damping.
func NewSpring(a, b *body.RigidBody, anchorA, anchorB math2.Vector2, length, stiffness, damping float64) *Distance {

	return &Distance{BodyA: a, BodyB: b, LocalAnchorA: anchorA, LocalAnchorB: anchorB, Length: length, Stiffness: stiffness, Damping: damping}
}

func (d *Distance) Bodies() (*body.RigidBody, *body.RigidBody) {

	return d.BodyA, d.BodyB
}

func (d *Distance) Presolve(dt, invDt float64) {

	d.rA = math2.Rotate(d.LocalAnchorA, d.BodyA.Angle())
	d.rB = math2.Rotate(d.LocalAnchorB, d.BodyB.Angle())

	pa := d.BodyA.Position().Add(d.rA)
	pb := d.BodyB.Position().Add(d.rB)

	delta := pb.Sub(pa)
	dist := delta.Length()

	d.normal = math2.Vec2(1, 0)
	if dist > 1e-9 {
		d.normal = delta.Scale(1 / dist)
	}
	d.c = dist - d.Length

	crA := d.rA.Cross(d.normal)
	crB := d.rB.Cross(d.normal)
	k := d.BodyA.InvMass() + d.BodyB.InvMass() + crA*crA*d.BodyA.InvInertia() + crB*crB*d.BodyB.InvInertia()

	if d.Stiffness > 0 {
		d.beta, d.gamma = equation.Spook(d.Stiffness, d.Damping, dt)
	} else {
		d.beta, d.gamma = equation.Baumgarte(d.Baumgarte)
	}

	denom := k + d.gamma
	if denom > 0 {
		d.mass = 1 / denom
	} else {
		d.mass = 0
	}
	_ = invDt
}

func (d *Distance) Warmstart() {

	impulse := d.normal.Scale(d.accumulatedImpulse)
	d.BodyA.ApplyImpulse(impulse.Negate(), d.LocalAnchorA)
	d.BodyB.ApplyImpulse(impulse, d.LocalAnchorB)
}

func (d *Distance) Solve(invDt float64) {

	va := d.BodyA.LinearVelocity().Add(math2.CrossScalar(d.BodyA.AngularVelocity(), d.rA))
	vb := d.BodyB.LinearVelocity().Add(math2.CrossScalar(d.BodyB.AngularVelocity(), d.rB))
	cdot := vb.Sub(va).Dot(d.normal)

	lambda := -(cdot + equation.Bias(d.beta, invDt, d.c) + d.gamma*d.accumulatedImpulse) * d.mass
	d.accumulatedImpulse += lambda

	impulse := d.normal.Scale(lambda)
	d.BodyA.ApplyImpulse(impulse.Negate(), d.LocalAnchorA)
	d.BodyB.ApplyImpulse(impulse, d.LocalAnchorB)
}
