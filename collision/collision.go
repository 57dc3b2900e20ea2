// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collision implements broad-phase pair generation, narrow-phase
// manifold computation and the persistent contact store that carries
// accumulated impulses across steps for warm-starting.
package collision

import (
	"github.com/space2d/engine/body"
	"github.com/space2d/engine/math2"
	"github.com/space2d/engine/shape"
)

// PairKey uniquely identifies an unordered shape pair, always stored with
// A < B so the same pair hashes identically regardless of discovery order.
type PairKey struct {
	A, B uint32
}

// NewPairKey builds a PairKey from two shape IDs, ordering them a < b.
func NewPairKey(a, b uint32) PairKey {

	if a < b {
		return PairKey{A: a, B: b}
	}
	return PairKey{A: b, B: a}
}

// BodyPair is a candidate colliding pair produced by the broad-phase.
type BodyPair struct {
	BodyA, BodyB *body.RigidBody
}

// EventKind discriminates the three events a ContactListener may observe.
type EventKind int

const (
	ContactBegan EventKind = iota
	ContactPersisted
	ContactRemoved
)

// ContactEvent carries the information delivered to a ContactListener for
// a single contact point.
type ContactEvent struct {
	BodyA, BodyB   *body.RigidBody
	ShapeA, ShapeB *shape.Shape
	Normal         math2.Vector2
	Penetration    float64
	Position       math2.Vector2
	NormalImpulse  float64
	FrictionImpulse float64
	ID             uint32
}

// ContactListener observes the lifecycle of contacts discovered during a step.
// Implementations must not mutate the space other than through its deferred
// add/remove API.
type ContactListener interface {
	OnContactBegan(event ContactEvent)
	OnContactPersisted(event ContactEvent)
	OnContactRemoved(event ContactEvent)
}

// MixRule selects how two materials' restitution or friction values combine
// for a contact pair.
type MixRule int

const (
	MixAvg MixRule = iota
	MixMul
	MixSqrt
	MixMin
	MixMax
)

// Mix combines a and b according to rule.
func Mix(rule MixRule, a, b float64) float64 {

	switch rule {
	case MixMul:
		return a * b
	case MixSqrt:
		return math2.Sqrt(a * b)
	case MixMin:
		return math2.Min(a, b)
	case MixMax:
		return math2.Max(a, b)
	default:
		return (a + b) / 2
	}
}
