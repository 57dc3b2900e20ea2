// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package space implements the simulation container: it owns bodies,
// constraints and the persistent contact store, and drives the fixed
// timestep substep pipeline (accelerations, broad-phase, narrow-phase,
// constraint and contact solving, velocity integration, optional position
// correction) that advances them.
package space

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/space2d/engine/body"
	"github.com/space2d/engine/collision"
	"github.com/space2d/engine/constraint"
	"github.com/space2d/engine/internal/elog"
	"github.com/space2d/engine/math2"
	"github.com/space2d/engine/solver"
)

// tokenCounter hands out a unique identity to each Space so a body's
// recorded space-membership can be checked without a pointer back-reference.
var tokenCounter atomic.Uint64

// Space owns a set of rigid bodies and constraints and advances them
// through time. The zero value is not usable; construct with New.
type Space struct {
	id    string
	token uint64

	bodies      []*body.RigidBody
	constraints []constraint.Constraint

	contacts        map[collision.PairKey]*collision.PersistentContactPair
	broadphasePairs []collision.BodyPair

	settings   Settings
	gravity    math2.Vector2
	killBounds math2.AABB

	listener collision.ContactListener

	nextBodyID uint64

	stepping                 bool
	pendingBodyRemoval       []*body.RigidBody
	pendingConstraintRemoval []constraint.Constraint

	log *elog.Logger
}

// New creates an empty Space with DefaultSettings, zero gravity and an
// unbounded kill region.
func New() *Space {

	return &Space{
		id:         uuid.New().String(),
		token:      tokenCounter.Add(1),
		contacts:   make(map[collision.PairKey]*collision.PersistentContactPair),
		settings:   DefaultSettings(),
		killBounds: math2.NewAABB(-math2.Inf, -math2.Inf, math2.Inf, math2.Inf),
		log:        elog.New("space"),
	}
}

// ID returns the space's unique identifier, useful for correlating log
// lines and contact events across multiple concurrently-running spaces.
func (s *Space) ID() string {

	return s.id
}

// Settings returns the space's current tunables.
func (s *Space) Settings() Settings {

	return s.settings
}

// SetSettings replaces the space's tunables.
func (s *Space) SetSettings(settings Settings) {

	s.settings = settings
}

// Gravity returns the space's gravitational acceleration.
func (s *Space) Gravity() math2.Vector2 {

	return s.gravity
}

// SetGravity sets the space's gravitational acceleration, applied to every
// dynamic body scaled by its own gravity scale.
func (s *Space) SetGravity(g math2.Vector2) {

	s.gravity = g
}

// KillBounds returns the region outside of which bodies are removed when
// UseKillBounds is enabled.
func (s *Space) KillBounds() math2.AABB {

	return s.killBounds
}

// SetKillBounds sets the kill region.
func (s *Space) SetKillBounds(bounds math2.AABB) {

	s.killBounds = bounds
}

// SetContactListener installs the listener notified of contact lifecycle
// events during Step. Pass nil to stop receiving notifications.
func (s *Space) SetContactListener(listener collision.ContactListener) {

	s.listener = listener
}

// Bodies returns the space's bodies in insertion order. The slice is owned
// by the space and must not be mutated by the caller.
func (s *Space) Bodies() []*body.RigidBody {

	return s.bodies
}

// Constraints returns the space's constraints in insertion order. The
// slice is owned by the space and must not be mutated by the caller.
func (s *Space) Constraints() []constraint.Constraint {

	return s.constraints
}

// AddRigidBody transfers ownership of b to the space, assigning it a
// fresh, space-local id. Returns ErrAlreadyAdded if b already belongs to
// this space.
func (s *Space) AddRigidBody(b *body.RigidBody) error {

	if b.SpaceID() == s.token {
		s.log.Warnf("add_rigidbody rejected", elog.Fields{"space": s.id, "reason": "already_added"})
		return ErrAlreadyAdded
	}
	id := s.nextBodyID
	s.nextBodyID++
	b.Attach(s.token, id)
	s.bodies = append(s.bodies, b)
	return nil
}

// RemoveRigidBody unlinks b from the space without destroying it. If
// called during Step, the removal is deferred to the end of the current
// substep. Returns ErrNotFound if b does not belong to this space.
func (s *Space) RemoveRigidBody(b *body.RigidBody) error {

	if b.SpaceID() != s.token {
		s.log.Warnf("remove_rigidbody rejected", elog.Fields{"space": s.id, "reason": "not_found"})
		return ErrNotFound
	}
	if s.stepping {
		s.pendingBodyRemoval = append(s.pendingBodyRemoval, b)
		return nil
	}
	s.removeBodyNow(b)
	return nil
}

func (s *Space) removeBodyNow(b *body.RigidBody) {

	for i, other := range s.bodies {
		if other == b {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			break
		}
	}
	b.Detach()
	s.purgeContactsFor(b)
}

func (s *Space) purgeContactsFor(b *body.RigidBody) {

	for key, pcp := range s.contacts {
		if pcp.BodyA == b || pcp.BodyB == b {
			delete(s.contacts, key)
		}
	}
}

// AddConstraint transfers ownership of c to the space. Returns
// ErrAlreadyAdded if c has already been added.
func (s *Space) AddConstraint(c constraint.Constraint) error {

	for _, existing := range s.constraints {
		if existing == c {
			return ErrAlreadyAdded
		}
	}
	s.constraints = append(s.constraints, c)
	return nil
}

// RemoveConstraint unlinks c from the space. If called during Step, the
// removal is deferred to the end of the current substep. Returns
// ErrNotFound if c does not belong to this space.
func (s *Space) RemoveConstraint(c constraint.Constraint) error {

	found := false
	for _, existing := range s.constraints {
		if existing == c {
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	if s.stepping {
		s.pendingConstraintRemoval = append(s.pendingConstraintRemoval, c)
		return nil
	}
	s.removeConstraintNow(c)
	return nil
}

func (s *Space) removeConstraintNow(c constraint.Constraint) {

	for i, existing := range s.constraints {
		if existing == c {
			s.constraints = append(s.constraints[:i], s.constraints[i+1:]...)
			return
		}
	}
}

// Clear empties the space's bodies, constraints and contacts, detaching
// every body. If freeAll is true, the body id counter is also reset, so a
// freshly-cleared space behaves as if newly constructed; if false, the
// counter keeps advancing so ids already handed out are never reused by a
// later clear/rebuild cycle within the same Space value.
func (s *Space) Clear(freeAll bool) {

	for _, b := range s.bodies {
		b.Detach()
	}
	s.bodies = nil
	s.constraints = nil
	s.contacts = make(map[collision.PairKey]*collision.PersistentContactPair)
	s.broadphasePairs = nil
	s.pendingBodyRemoval = nil
	s.pendingConstraintRemoval = nil

	if freeAll {
		s.nextBodyID = 0
	}
}

// Step advances the simulation by dt, split into settings.Substeps fixed
// sub-increments. A non-positive dt or a zero substep count is a no-op.
func (s *Space) Step(dt float64) {

	if dt <= 0 || s.settings.Substeps <= 0 {
		return
	}

	h := dt / float64(s.settings.Substeps)
	invH := 1 / h

	for i := 0; i < s.settings.Substeps; i++ {
		s.stepping = true
		s.substep(h, invH)
		s.stepping = false
		s.flushRemovals()
	}

	s.log.Debugf("step", elog.Fields{"space": s.id, "bodies": len(s.bodies), "contacts": len(s.contacts)})
}

func (s *Space) substep(h, invH float64) {

	for _, b := range s.bodies {
		b.IntegrateAccelerations(s.gravity, h, s.settings.LinearDamping, s.settings.AngularDamping)
	}

	s.broadphasePairs = collision.FindPairs(s.bodies, s.contacts, s.listener)
	collision.Update(s.broadphasePairs, s.contacts, s.settings.Warmstarting, s.settings.RestitutionMix, s.settings.FrictionMix, s.listener)

	for _, c := range s.constraints {
		c.Presolve(h, invH)
	}
	for _, c := range s.constraints {
		c.Warmstart()
	}

	solver.Presolve(s.contacts, invH, s.settings.ContactPositionCorrection, s.settings.Baumgarte, s.settings.PenetrationSlop)
	solver.Warmstart(s.contacts, s.settings.Warmstarting)

	for i := 0; i < s.settings.VelocityIterations; i++ {
		for _, c := range s.constraints {
			c.Solve(invH)
		}
		solver.SolveVelocity(s.contacts)
	}

	for _, b := range s.bodies {
		b.IntegrateVelocities(h)
		if s.settings.UseKillBounds && !s.killBounds.Contains(b.AABB()) {
			s.pendingBodyRemoval = append(s.pendingBodyRemoval, b)
		}
	}

	if s.settings.ContactPositionCorrection == NGS {
		for i := 0; i < s.settings.PositionIterations; i++ {
			solver.SolvePositions(s.contacts, s.settings.MaxLinearCorrection, s.settings.PenetrationSlop)
		}
	}
}

func (s *Space) flushRemovals() {

	for _, b := range s.pendingBodyRemoval {
		if b.SpaceID() == s.token {
			s.removeBodyNow(b)
		}
	}
	s.pendingBodyRemoval = nil

	for _, c := range s.pendingConstraintRemoval {
		s.removeConstraintNow(c)
	}
	s.pendingConstraintRemoval = nil
}
