// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collision

import (
	"github.com/space2d/engine/body"
	"github.com/space2d/engine/math2"
	"github.com/space2d/engine/shape"
)

// Contact is a single point of a contact manifold, carrying the solver
// state warm-started across steps.
type Contact struct {
	AnchorA, AnchorB math2.Vector2 // world-rotated, relative to each body's COM.
	Separation       float64
	FeatureID        uint32

	NormalImpulse  float64
	TangentImpulse float64
	NormalMass     float64
	TangentMass    float64
	VelocityBias   float64

	IsPersisted   bool
	RemoveInvoked bool
}

// PersistentContactPair is the manifold between two shapes, carrying up to
// two contact points and the mixed material properties used by the solver.
type PersistentContactPair struct {
	ShapeA, ShapeB *shape.Shape
	BodyA, BodyB   *body.RigidBody

	Normal       math2.Vector2 // unit vector from ShapeA to ShapeB.
	ContactCount int
	Contacts     [2]Contact

	Friction    float64
	Restitution float64
}
