// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/space2d/engine/body"
	"github.com/space2d/engine/math2"
)

// splineSamplesPerSegment controls how finely each Catmull-Rom segment is
// sampled when searching for the nearest point to the constrained anchor.
const splineSamplesPerSegment = 16

// Spline constrains a single body's anchor to lie on a smooth curve
// (Catmull-Rom) through a set of control points, projected each presolve
// to the nearest parameter on the curve and then held there as a soft
// positional constraint.
type Spline struct {
	BodyA         *body.RigidBody
	LocalAnchor   math2.Vector2
	ControlPoints []math2.Vector2
	Baumgarte     float64

	accumulatedImpulse math2.Vector2

	rA                     math2.Vector2
	bias                   math2.Vector2
	invK11, invK12, invK22 float64
}

// NewSpline creates a spline-follower constraint anchored at a body-local
// point relative to the body's center of mass.
func NewSpline(a *body.RigidBody, anchor math2.Vector2, controlPoints []math2.Vector2, baumgarte float64) *Spline {

	return &Spline{BodyA: a, LocalAnchor: anchor, ControlPoints: controlPoints, Baumgarte: baumgarte}
}

// SetControlPoints replaces the curve's control points.
func (s *Spline) SetControlPoints(points []math2.Vector2) {

	s.ControlPoints = points
}

func (s *Spline) Bodies() (*body.RigidBody, *body.RigidBody) {

	return s.BodyA, nil
}

func (s *Spline) Presolve(dt, invDt float64) {

	s.rA = math2.Rotate(s.LocalAnchor, s.BodyA.Angle())
	worldAnchor := s.BodyA.Position().Add(s.rA)

	target := s.nearestPoint(worldAnchor)
	c := target.Sub(worldAnchor)

	invMa := s.BodyA.InvMass()
	invIa := s.BodyA.InvInertia()

	k11 := invMa + invIa*s.rA.Y*s.rA.Y
	k12 := -invIa * s.rA.X * s.rA.Y
	k22 := invMa + invIa*s.rA.X*s.rA.X

	det := k11*k22 - k12*k12
	if det != 0 {
		det = 1 / det
	}
	s.invK11 = k22 * det
	s.invK12 = -k12 * det
	s.invK22 = k11 * det

	s.bias = c.Scale(s.Baumgarte * invDt)
	_ = dt
}

func (s *Spline) Warmstart() {

	s.BodyA.ApplyImpulse(s.accumulatedImpulse.Negate(), s.LocalAnchor)
}

func (s *Spline) Solve(invDt float64) {

	va := s.BodyA.LinearVelocity().Add(math2.CrossScalar(s.BodyA.AngularVelocity(), s.rA))
	cdot := va.Negate().Add(s.bias)

	ix := -(s.invK11*cdot.X + s.invK12*cdot.Y)
	iy := -(s.invK12*cdot.X + s.invK22*cdot.Y)
	impulse := math2.Vec2(ix, iy)

	s.accumulatedImpulse = s.accumulatedImpulse.Add(impulse)
	s.BodyA.ApplyImpulse(impulse.Negate(), s.LocalAnchor)
	_ = invDt
}

// nearestPoint samples every Catmull-Rom segment of the curve and returns
// the sampled point closest to target.
func (s *Spline) nearestPoint(target math2.Vector2) math2.Vector2 {

	n := len(s.ControlPoints)
	if n == 0 {
		return target
	}
	if n == 1 {
		return s.ControlPoints[0]
	}

	get := func(i int) math2.Vector2 {
		if i < 0 {
			return s.ControlPoints[0]
		}
		if i >= n {
			return s.ControlPoints[n-1]
		}
		return s.ControlPoints[i]
	}

	bestDist := math2.Inf
	best := s.ControlPoints[0]

	for seg := 0; seg < n-1; seg++ {
		p0, p1, p2, p3 := get(seg-1), get(seg), get(seg+1), get(seg+2)
		for i := 0; i <= splineSamplesPerSegment; i++ {
			t := float64(i) / float64(splineSamplesPerSegment)
			p := catmullRom(p0, p1, p2, p3, t)
			d := p.DistanceToSquared(target)
			if d < bestDist {
				bestDist = d
				best = p
			}
		}
	}
	return best
}

func catmullRom(p0, p1, p2, p3 math2.Vector2, t float64) math2.Vector2 {

	t2 := t * t
	t3 := t2 * t

	c0 := -0.5*t3 + t2 - 0.5*t
	c1 := 1.5*t3 - 2.5*t2 + 1
	c2 := -1.5*t3 + 2*t2 + 0.5*t
	c3 := 0.5*t3 - 0.5*t2

	return p0.Scale(c0).Add(p1.Scale(c1)).Add(p2.Scale(c2)).Add(p3.Scale(c3))
}
