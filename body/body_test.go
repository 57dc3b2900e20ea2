// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package body

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/space2d/engine/math2"
	"github.com/space2d/engine/shape"
)

func newDynamicCircle(t *testing.T, pos math2.Vector2, radius float64) *RigidBody {
	t.Helper()

	b := New(Init{
		Kind:     Dynamic,
		Position: pos,
		Material: Material{Density: 1, Friction: 0.5, Restitution: 0},
	})
	b.AddShape(shape.NewCircle(math2.Vector2{}, radius))
	return b
}

func TestStaticBodyNeverIntegrates(t *testing.T) {

	b := New(Init{Kind: Static, Position: math2.Vec2(1, 2)})
	b.AddShape(shape.NewCircle(math2.Vector2{}, 1))

	b.ApplyForce(math2.Vec2(0, -100))
	b.IntegrateAccelerations(math2.Vec2(0, -9.81), 1.0/60, 1, 1)
	b.IntegrateVelocities(1.0 / 60)

	assert.Equal(t, math2.Vec2(1, 2), b.Position())
	assert.Equal(t, math2.Vector2{}, b.LinearVelocity())
	assert.Equal(t, 0.0, b.InvMass())
	assert.Equal(t, 0.0, b.InvInertia())
}

func TestAddShape_ComputesMassFromCircleArea(t *testing.T) {

	b := newDynamicCircle(t, math2.Vector2{}, 1)

	assert.InDelta(t, math2.Pi, b.Mass(), 1e-9)
	assert.InDelta(t, 1/math2.Pi, b.InvMass(), 1e-9)
	assert.InDelta(t, 0.5*math2.Pi, b.Inertia(), 1e-9)
}

func TestIntegrateAccelerations_AppliesGravity(t *testing.T) {

	b := newDynamicCircle(t, math2.Vec2(0, 10), 1)
	b.SetLinearDamping(0)

	b.IntegrateAccelerations(math2.Vec2(0, -9.81), 1.0/60, 1, 1)

	assert.InDelta(t, -9.81/60, b.LinearVelocity().Y, 1e-9)
}

func TestIntegrateVelocities_UpdatesPositionAndOrigin(t *testing.T) {

	b := newDynamicCircle(t, math2.Vector2{}, 1)
	b.SetLinearVelocity(math2.Vec2(1, 0))

	b.IntegrateVelocities(1.0)

	assert.Equal(t, math2.Vec2(1, 0), b.Position())
	assert.Equal(t, b.Position(), b.Origin()) // circle centered at com == body origin
}

func TestFreeFall_MatchesSemiImplicitEuler(t *testing.T) {

	b := newDynamicCircle(t, math2.Vec2(0, 10), 1)
	b.SetLinearDamping(0)

	gravity := math2.Vec2(0, -9.81)
	dt := 1.0 / 60
	const steps = 60
	for i := 0; i < steps; i++ {
		b.IntegrateAccelerations(gravity, dt, 1, 1)
		b.IntegrateVelocities(dt)
	}

	// Semi-implicit Euler updates velocity before position, so the discrete
	// drop after n steps is a*dt^2*n*(n+1)/2, not the continuous a*t^2/2.
	expectedY := 10 + gravity.Y*dt*dt*float64(steps*(steps+1))/2
	assert.InDelta(t, expectedY, b.Position().Y, 1e-9)
}

func TestApplyImpulse_ChangesVelocityAndSpin(t *testing.T) {

	b := newDynamicCircle(t, math2.Vector2{}, 1)

	b.ApplyImpulse(math2.Vec2(0, 1), math2.Vec2(1, 0))

	assert.InDelta(t, 1/math2.Pi, b.LinearVelocity().Y, 1e-9)
	assert.NotZero(t, b.AngularVelocity())
}

func TestSetMass_OverridesAutomaticComputation(t *testing.T) {

	b := newDynamicCircle(t, math2.Vector2{}, 1)

	require.NoError(t, b.SetMass(10))
	assert.Equal(t, 10.0, b.Mass())
	assert.InDelta(t, 0.1, b.InvMass(), 1e-9)

	b.AddShape(shape.NewCircle(math2.Vector2{}, 1))
	assert.Equal(t, 10.0, b.Mass())
}

func TestSetMass_RejectsNegative(t *testing.T) {

	b := newDynamicCircle(t, math2.Vector2{}, 1)
	assert.ErrorIs(t, b.SetMass(-1), ErrInvalidArgument)
}

func TestAABB_TracksPosition(t *testing.T) {

	b := newDynamicCircle(t, math2.Vec2(5, 5), 2)

	box := b.AABB()
	assert.Equal(t, math2.NewAABB(3, 3, 7, 7), box)

	b.SetPosition(math2.Vec2(0, 0))
	box = b.AABB()
	assert.Equal(t, math2.NewAABB(-2, -2, 2, 2), box)
}

func TestKineticEnergy(t *testing.T) {

	b := newDynamicCircle(t, math2.Vector2{}, 1)
	b.SetLinearVelocity(math2.Vec2(2, 0))

	assert.InDelta(t, 0.5*b.Mass()*4, b.KineticEnergy(), 1e-9)
}
