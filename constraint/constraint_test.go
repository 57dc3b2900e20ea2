// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/space2d/engine/body"
	"github.com/space2d/engine/math2"
	"github.com/space2d/engine/shape"
)

func disk(t *testing.T, pos, vel math2.Vector2) *body.RigidBody {
	t.Helper()

	b := body.New(body.Init{
		Kind:           body.Dynamic,
		Position:       pos,
		LinearVelocity: vel,
		Material:       body.Material{Density: 1 / (math2.Pi * 0.25)}, // mass == pi*r^2*density == 1 for r=0.5
	})
	b.AddShape(shape.NewCircle(math2.Vector2{}, 0.5))
	return b
}

func TestDistanceJoint_HoldsLengthUnderOpposingVelocities(t *testing.T) {

	a := disk(t, math2.Vec2(-1, 0), math2.Vec2(1, 0))
	b := disk(t, math2.Vec2(1, 0), math2.Vec2(-1, 0))

	joint := NewDistanceJoint(a, b, math2.Vector2{}, math2.Vector2{}, 2, 0.2)

	dt := 1.0 / 60
	invDt := 1 / dt
	for i := 0; i < 120; i++ {
		joint.Presolve(dt, invDt)
		joint.Warmstart()
		for it := 0; it < 8; it++ {
			joint.Solve(invDt)
		}
		a.IntegrateVelocities(dt)
		b.IntegrateVelocities(dt)
	}

	dist := a.Position().DistanceTo(b.Position())
	assert.InDelta(t, 2.0, dist, 0.05)
}

func TestHinge_KeepsAnchorsCoincident(t *testing.T) {

	a := body.New(body.Init{Kind: body.Static, Position: math2.Vector2{}})
	a.AddShape(shape.NewCircle(math2.Vector2{}, 0.1))

	b := disk(t, math2.Vec2(1, 0), math2.Vector2{})
	b.SetAngularVelocity(2)

	hinge := NewHinge(a, b, math2.Vector2{}, math2.Vec2(-1, 0), 0.2)

	dt := 1.0 / 60
	invDt := 1 / dt
	for i := 0; i < 60; i++ {
		hinge.Presolve(dt, invDt)
		hinge.Warmstart()
		for it := 0; it < 8; it++ {
			hinge.Solve(invDt)
		}
		b.IntegrateVelocities(dt)
	}

	anchorWorld := b.Position().Add(math2.Rotate(math2.Vec2(-1, 0), b.Angle()))
	assert.InDelta(t, 0, anchorWorld.X, 0.1)
	assert.InDelta(t, 0, anchorWorld.Y, 0.1)
}

func TestSpline_PullsAnchorTowardCurve(t *testing.T) {

	points := []math2.Vector2{
		math2.Vec2(0, 5),
		math2.Vec2(2, 5),
		math2.Vec2(4, 5),
	}

	b := disk(t, math2.Vec2(2, 0), math2.Vector2{})
	s := NewSpline(b, math2.Vector2{}, points, 0.2)

	dt := 1.0 / 60
	invDt := 1 / dt
	for i := 0; i < 180; i++ {
		s.Presolve(dt, invDt)
		s.Warmstart()
		for it := 0; it < 4; it++ {
			s.Solve(invDt)
		}
		b.IntegrateVelocities(dt)
	}

	assert.InDelta(t, 5.0, b.Position().Y, 0.3)
}
