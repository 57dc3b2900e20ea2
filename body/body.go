// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package body implements the RigidBody: the aggregate of shapes, motion
// state, mass properties and force accumulators that the simulation
// integrates forward in time.
package body

import (
	"errors"

	"github.com/space2d/engine/math2"
	"github.com/space2d/engine/shape"
)

// Kind distinguishes a body that never moves (Static) from one that is
// fully simulated (Dynamic). A kinematic body is represented as Static
// unless the caller drives its velocity externally; the integrator treats
// both the same way.
type Kind int

const (
	Static Kind = iota
	Dynamic
)

// Material carries the density used to derive mass properties and the
// surface properties used by the contact solver.
type Material struct {
	Density     float64
	Restitution float64
	Friction    float64
}

// ErrInvalidArgument is returned when a manual mass/inertia override would
// leave the body in an inconsistent state.
var ErrInvalidArgument = errors.New("body: invalid argument")

// Init carries the parameters used to construct a RigidBody.
type Init struct {
	Kind            Kind
	Position        math2.Vector2
	Angle           float64
	LinearVelocity  math2.Vector2
	AngularVelocity float64
	Material        Material

	LinearDamping  float64
	AngularDamping float64
	GravityScale   float64

	CollisionGroup    uint32
	CollisionCategory uint32
	CollisionMask     uint32
}

// RigidBody is a rigid body aggregating one or more shapes under a single
// pose and mass distribution.
type RigidBody struct {
	id      uint64
	spaceID uint64 // 0 means the body is not attached to any space.

	kind Kind

	position math2.Vector2 // world position of the center of mass.
	angle    float64
	origin   math2.Vector2 // world position of the body-local frame origin.

	linearVelocity  math2.Vector2
	angularVelocity float64

	mass, invMass         float64
	inertia, invInertia   float64
	com                   math2.Vector2 // body-local centroid.
	massOverridden        bool

	material Material

	linearDamping  float64
	angularDamping float64
	gravityScale   float64

	force  math2.Vector2
	torque float64

	shapes []*shape.Shape

	collisionEnabled  bool
	collisionGroup    uint32
	collisionCategory uint32
	collisionMask     uint32

	cachedAABB math2.AABB
	aabbDirty  bool
}

// New creates a RigidBody from an initializer. The body is not attached to
// any space until added to one.
func New(init Init) *RigidBody {

	category := init.CollisionCategory
	if category == 0 {
		category = 1
	}
	// CollisionMask is honored literally, including zero: per the filter
	// rules a mask of 0 matches no category and so never collides. Callers
	// that want the common "collide with everything" behavior must set
	// CollisionMask to ^uint32(0) themselves.
	mask := init.CollisionMask
	gravityScale := init.GravityScale
	if gravityScale == 0 {
		gravityScale = 1
	}

	b := &RigidBody{
		kind:              init.Kind,
		position:          init.Position,
		angle:             init.Angle,
		origin:            init.Position,
		linearVelocity:    init.LinearVelocity,
		angularVelocity:   init.AngularVelocity,
		material:          init.Material,
		linearDamping:     init.LinearDamping,
		angularDamping:    init.AngularDamping,
		gravityScale:      gravityScale,
		collisionEnabled:  true,
		collisionGroup:    init.CollisionGroup,
		collisionCategory: category,
		collisionMask:     mask,
		aabbDirty:         true,
	}
	return b
}

// ID returns the body's space-assigned identifier, or 0 if unattached.
func (b *RigidBody) ID() uint64 {

	return b.id
}

// Attach assigns the body to a space, recording the space's token and the
// body's new identifier within it.
func (b *RigidBody) Attach(spaceID, id uint64) {

	b.spaceID = spaceID
	b.id = id
}

// Detach clears the body's space association, returning ownership to the caller.
func (b *RigidBody) Detach() {

	b.spaceID = 0
	b.id = 0
}

// SpaceID returns the token of the space this body is attached to, or 0 if unattached.
func (b *RigidBody) SpaceID() uint64 {

	return b.spaceID
}

// Kind returns whether the body is Static or Dynamic.
func (b *RigidBody) Kind() Kind {

	return b.kind
}

// SetKind changes the body's kind, recomputing mass properties so that a
// Static body has zero inverse mass and inertia.
func (b *RigidBody) SetKind(kind Kind) {

	if b.kind == kind {
		return
	}
	b.kind = kind
	if !b.massOverridden {
		b.recomputeMassProperties()
	} else if kind == Static {
		b.invMass = 0
		b.invInertia = 0
	}
}

// Position returns the world position of the body's center of mass.
func (b *RigidBody) Position() math2.Vector2 {

	return b.position
}

// SetPosition sets the body's world position directly, bypassing integration.
func (b *RigidBody) SetPosition(p math2.Vector2) {

	b.position = p
	b.recomputeOrigin()
	b.invalidateCaches()
}

// Angle returns the body's orientation in radians.
func (b *RigidBody) Angle() float64 {

	return b.angle
}

// SetAngle sets the body's orientation directly, bypassing integration.
func (b *RigidBody) SetAngle(angle float64) {

	b.angle = angle
	b.recomputeOrigin()
	b.invalidateCaches()
}

// Origin returns the world position of the body-local frame's origin,
// i.e. position - rotate(com, angle).
func (b *RigidBody) Origin() math2.Vector2 {

	return b.origin
}

// Transform returns the transform used to place the body's shapes in world space.
func (b *RigidBody) Transform() math2.Transform {

	return math2.NewTransform(b.origin, b.angle)
}

// LinearVelocity returns the body's linear velocity.
func (b *RigidBody) LinearVelocity() math2.Vector2 {

	return b.linearVelocity
}

// SetLinearVelocity sets the body's linear velocity directly.
func (b *RigidBody) SetLinearVelocity(v math2.Vector2) {

	b.linearVelocity = v
}

// AngularVelocity returns the body's angular velocity in radians/second.
func (b *RigidBody) AngularVelocity() float64 {

	return b.angularVelocity
}

// SetAngularVelocity sets the body's angular velocity directly.
func (b *RigidBody) SetAngularVelocity(w float64) {

	b.angularVelocity = w
}

// Mass returns the body's total mass.
func (b *RigidBody) Mass() float64 {

	return b.mass
}

// InvMass returns the inverse of the body's mass; zero for Static bodies.
func (b *RigidBody) InvMass() float64 {

	return b.invMass
}

// Inertia returns the body's moment of inertia about its center of mass.
func (b *RigidBody) Inertia() float64 {

	return b.inertia
}

// InvInertia returns the inverse of the body's moment of inertia; zero for Static bodies.
func (b *RigidBody) InvInertia() float64 {

	return b.invInertia
}

// COM returns the body-local centroid used as the origin of the body's pose.
func (b *RigidBody) COM() math2.Vector2 {

	return b.com
}

// SetMass overrides the automatically computed mass, disabling recomputation
// on all future AddShape calls. Returns ErrInvalidArgument if mass is negative.
func (b *RigidBody) SetMass(mass float64) error {

	if mass < 0 {
		return ErrInvalidArgument
	}
	b.massOverridden = true
	b.mass = mass
	if mass > 0 && b.kind == Dynamic {
		b.invMass = 1 / mass
	} else {
		b.invMass = 0
	}
	return nil
}

// SetInertia overrides the automatically computed moment of inertia.
// Returns ErrInvalidArgument if inertia is negative.
func (b *RigidBody) SetInertia(inertia float64) error {

	if inertia < 0 {
		return ErrInvalidArgument
	}
	b.massOverridden = true
	b.inertia = inertia
	if inertia > 0 && b.kind == Dynamic {
		b.invInertia = 1 / inertia
	} else {
		b.invInertia = 0
	}
	return nil
}

// Material returns the body's material properties.
func (b *RigidBody) Material() Material {

	return b.material
}

// SetMaterial replaces the body's material. Density changes take effect on
// the next AddShape unless mass has been manually overridden.
func (b *RigidBody) SetMaterial(m Material) {

	b.material = m
}

// LinearDamping returns the body's linear velocity damping factor.
func (b *RigidBody) LinearDamping() float64 {

	return b.linearDamping
}

// SetLinearDamping sets the body's linear velocity damping factor.
func (b *RigidBody) SetLinearDamping(d float64) {

	b.linearDamping = d
}

// AngularDamping returns the body's angular velocity damping factor.
func (b *RigidBody) AngularDamping() float64 {

	return b.angularDamping
}

// SetAngularDamping sets the body's angular velocity damping factor.
func (b *RigidBody) SetAngularDamping(d float64) {

	b.angularDamping = d
}

// GravityScale returns the factor applied to the space's gravity for this body.
func (b *RigidBody) GravityScale() float64 {

	return b.gravityScale
}

// SetGravityScale sets the factor applied to the space's gravity for this body.
func (b *RigidBody) SetGravityScale(s float64) {

	b.gravityScale = s
}

// Shapes returns the body's shapes in insertion order.
func (b *RigidBody) Shapes() []*shape.Shape {

	return b.shapes
}

// AddShape appends a shape to the body and recomputes mass, inertia and
// center of mass from the union of shapes assuming uniform density, unless
// the mass has been manually overridden with SetMass/SetInertia.
func (b *RigidBody) AddShape(s *shape.Shape) {

	b.shapes = append(b.shapes, s)
	if !b.massOverridden {
		b.recomputeMassProperties()
	}
	b.invalidateCaches()
}

// recomputeMassProperties derives mass, center of mass and moment of
// inertia from the body's shapes, assuming each has uniform density equal
// to the body's material density.
func (b *RigidBody) recomputeMassProperties() {

	if b.kind == Static || len(b.shapes) == 0 {
		b.mass, b.invMass = 0, 0
		b.inertia, b.invInertia = 0, 0
		b.com = math2.Vector2{}
		return
	}

	var totalMass float64
	var weightedCentroid math2.Vector2
	for _, s := range b.shapes {
		m := s.Area() * b.material.Density
		totalMass += m
		weightedCentroid = weightedCentroid.Add(s.Centroid().Scale(m))
	}

	if totalMass <= 0 {
		b.mass, b.invMass = 0, 0
		b.inertia, b.invInertia = 0, 0
		b.com = math2.Vector2{}
		return
	}

	com := weightedCentroid.Scale(1 / totalMass)

	var inertia float64
	for _, s := range b.shapes {
		m := s.Area() * b.material.Density
		d := s.Centroid().Sub(com)
		inertia += m*s.UnitInertia() + m*d.LengthSq()
	}

	b.mass = totalMass
	b.invMass = 1 / totalMass
	b.com = com
	if inertia <= 0 {
		b.inertia, b.invInertia = 0, 0
	} else {
		b.inertia = inertia
		b.invInertia = 1 / inertia
	}
	b.recomputeOrigin()
}

func (b *RigidBody) recomputeOrigin() {

	b.origin = b.position.Sub(math2.Rotate(b.com, b.angle))
}

// CollisionEnabled returns whether the body participates in collision detection.
func (b *RigidBody) CollisionEnabled() bool {

	return b.collisionEnabled
}

// SetCollisionEnabled toggles whether the body participates in collision detection.
func (b *RigidBody) SetCollisionEnabled(enabled bool) {

	b.collisionEnabled = enabled
}

// CollisionGroup returns the body's collision group. Two bodies sharing a
// nonzero group never collide with each other.
func (b *RigidBody) CollisionGroup() uint32 {

	return b.collisionGroup
}

// SetCollisionGroup sets the body's collision group.
func (b *RigidBody) SetCollisionGroup(group uint32) {

	b.collisionGroup = group
}

// CollisionCategory returns the bitmask describing what this body is.
func (b *RigidBody) CollisionCategory() uint32 {

	return b.collisionCategory
}

// SetCollisionCategory sets the bitmask describing what this body is.
func (b *RigidBody) SetCollisionCategory(category uint32) {

	b.collisionCategory = category
}

// CollisionMask returns the bitmask of categories this body collides with.
func (b *RigidBody) CollisionMask() uint32 {

	return b.collisionMask
}

// SetCollisionMask sets the bitmask of categories this body collides with.
func (b *RigidBody) SetCollisionMask(mask uint32) {

	b.collisionMask = mask
}

// ApplyForce adds a world-space force at the center of mass, to be
// consumed by the next IntegrateAccelerations call. No-op on Static bodies.
func (b *RigidBody) ApplyForce(f math2.Vector2) {

	if b.kind == Static {
		return
	}
	b.force = b.force.Add(f)
}

// ApplyForceAt adds a world-space force applied at a world-space point,
// contributing both to the linear force accumulator and, via the moment
// arm from the center of mass, to the torque accumulator.
func (b *RigidBody) ApplyForceAt(f, rWorld math2.Vector2) {

	if b.kind == Static {
		return
	}
	b.force = b.force.Add(f)
	arm := rWorld.Sub(b.position)
	b.torque += arm.Cross(f)
}

// ApplyTorque adds to the body's torque accumulator. No-op on Static bodies.
func (b *RigidBody) ApplyTorque(torque float64) {

	if b.kind == Static {
		return
	}
	b.torque += torque
}

// ApplyImpulse applies an instantaneous impulse J at a body-local point
// rLocal (relative to the center of mass), changing velocities immediately
// rather than going through the force accumulator. No-op on Static bodies.
func (b *RigidBody) ApplyImpulse(j, rLocal math2.Vector2) {

	if b.kind == Static {
		return
	}
	rWorld := math2.Rotate(rLocal, b.angle)
	b.ApplyImpulseWorld(j, rWorld)
}

// ApplyImpulseWorld applies an instantaneous impulse J at a point rWorld
// already expressed as a world-frame offset from the center of mass. Used
// by the contact and constraint solvers, which track anchors in world
// space rather than re-deriving them from a body-local offset each
// iteration. No-op on Static bodies.
func (b *RigidBody) ApplyImpulseWorld(j, rWorld math2.Vector2) {

	if b.kind == Static {
		return
	}
	b.linearVelocity = b.linearVelocity.Add(j.Scale(b.invMass))
	b.angularVelocity += b.invInertia * rWorld.Cross(j)
}

// IntegrateAccelerations advances velocities by dt under gravity and the
// accumulated force/torque, applies damping, and clears the accumulators.
// linearDampingScale and angularDampingScale are the space-level damping
// scales (Settings.LinearDamping/AngularDamping); the exponent applied to
// each per-body damping rate is dt scaled by the corresponding factor, so a
// scale of 0 disables damping for the step regardless of the body's own
// rate. No-op on Static bodies.
func (b *RigidBody) IntegrateAccelerations(gravity math2.Vector2, dt, linearDampingScale, angularDampingScale float64) {

	if b.kind == Static {
		return
	}

	accel := gravity.Scale(b.gravityScale).Add(b.force.Scale(b.invMass))
	b.linearVelocity = b.linearVelocity.Add(accel.Scale(dt))
	b.angularVelocity += b.invInertia * b.torque * dt

	b.linearVelocity = b.linearVelocity.Scale(dampingFactor(b.linearDamping, dt*linearDampingScale))
	b.angularVelocity *= dampingFactor(b.angularDamping, dt*angularDampingScale)

	b.force = math2.Vector2{}
	b.torque = 0
}

func dampingFactor(damping, dt float64) float64 {

	if damping <= 0 || dt == 0 {
		return 1
	}
	return powClamped(1-damping, dt)
}

func powClamped(base, exp float64) float64 {

	if base <= 0 {
		return 0
	}
	return math2.Pow(base, exp)
}

// IntegrateVelocities advances the body's pose by dt using its current
// velocities, recomputes origin, and invalidates cached geometry. No-op on
// Static bodies.
func (b *RigidBody) IntegrateVelocities(dt float64) {

	if b.kind == Static {
		return
	}

	b.position = b.position.Add(b.linearVelocity.Scale(dt))
	b.angle += b.angularVelocity * dt
	b.recomputeOrigin()
	b.invalidateCaches()
}

// KineticEnergy returns the body's translational plus rotational kinetic energy.
func (b *RigidBody) KineticEnergy() float64 {

	return 0.5*b.mass*b.linearVelocity.LengthSq() + b.RotationalEnergy()
}

// RotationalEnergy returns the body's rotational kinetic energy.
func (b *RigidBody) RotationalEnergy() float64 {

	return 0.5 * b.inertia * b.angularVelocity * b.angularVelocity
}

func (b *RigidBody) invalidateCaches() {

	b.aabbDirty = true
}

// AABB returns the world-space bounding box enclosing all of the body's
// shapes, recomputing and caching it if the pose has changed since the
// last call.
func (b *RigidBody) AABB() math2.AABB {

	if !b.aabbDirty && len(b.shapes) > 0 {
		return b.cachedAABB
	}
	if len(b.shapes) == 0 {
		b.cachedAABB = math2.AABB{}
		b.aabbDirty = false
		return b.cachedAABB
	}

	xform := b.Transform()
	s0 := b.shapes[0]
	s0.Transform(xform)
	box := s0.AABB(xform)
	for _, s := range b.shapes[1:] {
		s.Transform(xform)
		box = box.Union(s.AABB(xform))
	}

	b.cachedAABB = box
	b.aabbDirty = false
	return box
}
