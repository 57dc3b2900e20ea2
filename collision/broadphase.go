// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collision

import (
	"github.com/space2d/engine/body"
)

// FindPairs runs the brute-force broad-phase over bodies: for every
// ordered pair passing the early-out filters, it prunes persistent
// contacts whose body AABBs have separated (emitting ContactRemoved for
// any contact that had been persisted) and records pairs whose body AABBs
// overlap and have at least one overlapping shape-pair AABB.
func FindPairs(bodies []*body.RigidBody, contacts map[PairKey]*PersistentContactPair, listener ContactListener) []BodyPair {

	var pairs []BodyPair

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if a.ID() > b.ID() {
				a, b = b, a
			}

			if !needsTest(a, b) {
				continue
			}

			aBox := a.AABB()
			bBox := b.AABB()

			if !aBox.Overlaps(bBox) {
				pruneStaleContacts(a, b, contacts, listener)
				continue
			}

			if anyShapePairOverlaps(a, b) {
				pairs = append(pairs, BodyPair{BodyA: a, BodyB: b})
			}
		}
	}

	return pairs
}

// needsTest applies the broad-phase early-out filters in order.
func needsTest(a, b *body.RigidBody) bool {

	if a.ID() >= b.ID() {
		return false
	}
	if !a.CollisionEnabled() || !b.CollisionEnabled() {
		return false
	}
	if a.Kind() == body.Static && b.Kind() == body.Static {
		return false
	}
	if a.CollisionGroup() != 0 && a.CollisionGroup() == b.CollisionGroup() {
		return false
	}
	if a.CollisionMask()&b.CollisionCategory() == 0 || b.CollisionMask()&a.CollisionCategory() == 0 {
		return false
	}
	return true
}

func anyShapePairOverlaps(a, b *body.RigidBody) bool {

	aXform := a.Transform()
	bXform := b.Transform()
	for _, sa := range a.Shapes() {
		saBox := sa.AABB(aXform)
		for _, sb := range b.Shapes() {
			if saBox.Overlaps(sb.AABB(bXform)) {
				return true
			}
		}
	}
	return false
}

func pruneStaleContacts(a, b *body.RigidBody, contacts map[PairKey]*PersistentContactPair, listener ContactListener) {

	for _, sa := range a.Shapes() {
		for _, sb := range b.Shapes() {
			key := NewPairKey(sa.ID(), sb.ID())
			pcp, ok := contacts[key]
			if !ok {
				continue
			}
			if listener != nil {
				for i := 0; i < pcp.ContactCount; i++ {
					c := pcp.Contacts[i]
					if !c.IsPersisted {
						continue
					}
					listener.OnContactRemoved(contactEvent(pcp, c))
				}
			}
			delete(contacts, key)
		}
	}
}

func contactEvent(pcp *PersistentContactPair, c Contact) ContactEvent {

	return ContactEvent{
		BodyA:           pcp.BodyA,
		BodyB:           pcp.BodyB,
		ShapeA:          pcp.ShapeA,
		ShapeB:          pcp.ShapeB,
		Normal:          pcp.Normal,
		Penetration:     -c.Separation,
		Position:        pcp.BodyA.Position().Add(c.AnchorA),
		NormalImpulse:   c.NormalImpulse,
		FrictionImpulse: c.TangentImpulse,
		ID:              c.FeatureID,
	}
}
