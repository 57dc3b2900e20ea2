// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/space2d/engine/body"
	"github.com/space2d/engine/collision"
	"github.com/space2d/engine/math2"
	"github.com/space2d/engine/shape"
)

func circleBody(t *testing.T, kind body.Kind, pos math2.Vector2, radius float64) *body.RigidBody {
	t.Helper()

	b := body.New(body.Init{Kind: kind, Position: pos, Material: body.Material{Density: 1}})
	s := shape.NewCircle(math2.Vector2{}, radius)
	b.AddShape(s)
	return b
}

func singleContactPair(bodyA, bodyB *body.RigidBody, normal math2.Vector2, separation float64, restitution, friction float64) map[collision.PairKey]*collision.PersistentContactPair {

	pcp := &collision.PersistentContactPair{
		BodyA: bodyA, BodyB: bodyB,
		Normal:       normal,
		ContactCount: 1,
		Restitution:  restitution,
		Friction:     friction,
	}
	pcp.Contacts[0] = collision.Contact{
		AnchorA:    math2.Vec2(0, 0),
		AnchorB:    math2.Vec2(0, 0),
		Separation: separation,
	}
	return map[collision.PairKey]*collision.PersistentContactPair{{A: 0, B: 1}: pcp}
}

func TestSolveVelocity_SeparatesPenetratingBodies(t *testing.T) {

	a := circleBody(t, body.Dynamic, math2.Vec2(-1, 0), 0.5)
	b := circleBody(t, body.Dynamic, math2.Vec2(1, 0), 0.5)
	a.SetLinearVelocity(math2.Vec2(1, 0))
	b.SetLinearVelocity(math2.Vec2(-1, 0))

	contacts := singleContactPair(a, b, math2.Vec2(1, 0), -0.2, 0, 0)

	dt := 1.0 / 60
	invDt := 1 / dt

	Presolve(contacts, invDt, Baumgarte, 0.2, 0.005)
	Warmstart(contacts, true)
	for i := 0; i < 8; i++ {
		SolveVelocity(contacts)
	}

	require.Equal(t, 1, contacts[collision.PairKey{A: 0, B: 1}].ContactCount)
	rel := b.LinearVelocity().Sub(a.LinearVelocity()).Dot(math2.Vec2(1, 0))
	assert.Greater(t, rel, -2.0)
}

func TestWarmstart_ZeroesImpulseWhenNotPersisted(t *testing.T) {

	a := circleBody(t, body.Dynamic, math2.Vec2(-1, 0), 0.5)
	b := circleBody(t, body.Dynamic, math2.Vec2(1, 0), 0.5)

	contacts := singleContactPair(a, b, math2.Vec2(1, 0), -0.1, 0, 0)
	c := &contacts[collision.PairKey{A: 0, B: 1}].Contacts[0]
	c.NormalImpulse = 5
	c.IsPersisted = false

	Warmstart(contacts, true)

	assert.Equal(t, 0.0, c.NormalImpulse)
	assert.Equal(t, 0.0, c.TangentImpulse)
	assert.Equal(t, math2.Vector2{}, a.LinearVelocity())
}

func TestPresolve_RestitutionBiasVanishesBelowThreshold(t *testing.T) {

	a := circleBody(t, body.Dynamic, math2.Vec2(-1, 0), 0.5)
	b := circleBody(t, body.Static, math2.Vec2(1, 0), 0.5)
	a.SetLinearVelocity(math2.Vec2(0.1, 0))

	contacts := singleContactPair(a, b, math2.Vec2(1, 0), -0.01, 0.8, 0)
	Presolve(contacts, 60, Baumgarte, 0.2, 0.005)

	c := &contacts[collision.PairKey{A: 0, B: 1}].Contacts[0]
	assert.Greater(t, c.VelocityBias, 0.0)
	// Closing speed 0.1 is below RestitutionThreshold, so only the Baumgarte
	// term baumgarte*invDt*(penetration-slop) remains.
	assert.InDelta(t, 0.2*60*(0.01-0.005), c.VelocityBias, 1e-9)
}

func TestSolvePositions_ReducesPenetration(t *testing.T) {

	a := circleBody(t, body.Dynamic, math2.Vec2(-0.4, 0), 0.5)
	b := circleBody(t, body.Dynamic, math2.Vec2(0.4, 0), 0.5)

	contacts := singleContactPair(a, b, math2.Vec2(1, 0), -0.2, 0, 0)

	for i := 0; i < 4; i++ {
		SolvePositions(contacts, 0.2, 0.005)
	}

	dist := b.Position().DistanceTo(a.Position())
	assert.Greater(t, dist, 0.8)
}
