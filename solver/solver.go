// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver implements the sequential-impulse contact solver: the
// presolve/warmstart/solve-velocity/position-correction stages that turn a
// set of persistent contact manifolds into velocity and position changes,
// with friction solved before the normal impulse in each iteration.
package solver

import (
	"github.com/space2d/engine/collision"
	"github.com/space2d/engine/math2"
)

// PositionCorrection selects how penetration is resolved: either folded
// into the velocity bias (Baumgarte) or corrected directly on position
// after velocity integration (NGS).
type PositionCorrection int

const (
	Baumgarte PositionCorrection = iota
	NGS
)

// RestitutionThreshold is the closing-speed floor below which restitution
// is not applied, preventing jitter between resting bodies.
const RestitutionThreshold = 1.0

// Presolve computes each contact's effective masses and velocity bias
// (restitution, plus a Baumgarte penetration term when correction is not
// deferred to NGS). Must run after the narrowphase has updated contacts and
// before Warmstart.
func Presolve(contacts map[collision.PairKey]*collision.PersistentContactPair, invDt float64, correction PositionCorrection, baumgarteFactor, penetrationSlop float64) {

	for _, pcp := range contacts {
		n := pcp.Normal
		t := n.PerpRight()

		invMa, invMb := pcp.BodyA.InvMass(), pcp.BodyB.InvMass()
		invIa, invIb := pcp.BodyA.InvInertia(), pcp.BodyB.InvInertia()

		for i := 0; i < pcp.ContactCount; i++ {
			c := &pcp.Contacts[i]
			rA, rB := c.AnchorA, c.AnchorB

			crAn, crBn := rA.Cross(n), rB.Cross(n)
			kN := invMa + invMb + crAn*crAn*invIa + crBn*crBn*invIb
			if kN > 0 {
				c.NormalMass = 1 / kN
			} else {
				c.NormalMass = 0
			}

			crAt, crBt := rA.Cross(t), rB.Cross(t)
			kT := invMa + invMb + crAt*crAt*invIa + crBt*crBt*invIb
			if kT > 0 {
				c.TangentMass = 1 / kT
			} else {
				c.TangentMass = 0
			}

			va := pcp.BodyA.LinearVelocity().Add(math2.CrossScalar(pcp.BodyA.AngularVelocity(), rA))
			vb := pcp.BodyB.LinearVelocity().Add(math2.CrossScalar(pcp.BodyB.AngularVelocity(), rB))
			vRelN := vb.Sub(va).Dot(n)

			bias := -pcp.Restitution * math2.Min(0, vRelN+RestitutionThreshold)
			if correction == Baumgarte {
				penetration := -c.Separation
				bias += baumgarteFactor * invDt * math2.Max(0, penetration-penetrationSlop)
			}
			c.VelocityBias = bias
		}
	}
}

// Warmstart reapplies each persisted contact's accumulated impulse from the
// previous step, or clears it when warmstarting is disabled or the contact
// is new this step.
func Warmstart(contacts map[collision.PairKey]*collision.PersistentContactPair, warmstarting bool) {

	for _, pcp := range contacts {
		n := pcp.Normal
		t := n.PerpRight()

		for i := 0; i < pcp.ContactCount; i++ {
			c := &pcp.Contacts[i]
			if !warmstarting || !c.IsPersisted {
				c.NormalImpulse = 0
				c.TangentImpulse = 0
				continue
			}
			impulse := n.Scale(c.NormalImpulse).Add(t.Scale(c.TangentImpulse))
			pcp.BodyA.ApplyImpulseWorld(impulse.Negate(), c.AnchorA)
			pcp.BodyB.ApplyImpulseWorld(impulse, c.AnchorB)
		}
	}
}

// SolveVelocity runs one sequential-impulse velocity iteration over every
// contact point, solving friction before the normal impulse so that the
// friction clamp uses the normal impulse accumulated up to this iteration.
func SolveVelocity(contacts map[collision.PairKey]*collision.PersistentContactPair) {

	for _, pcp := range contacts {
		n := pcp.Normal
		t := n.PerpRight()

		for i := 0; i < pcp.ContactCount; i++ {
			c := &pcp.Contacts[i]
			rA, rB := c.AnchorA, c.AnchorB

			va := pcp.BodyA.LinearVelocity().Add(math2.CrossScalar(pcp.BodyA.AngularVelocity(), rA))
			vb := pcp.BodyB.LinearVelocity().Add(math2.CrossScalar(pcp.BodyB.AngularVelocity(), rB))
			vRelT := vb.Sub(va).Dot(t)

			dLambdaT := -vRelT * c.TangentMass
			maxFriction := pcp.Friction * c.NormalImpulse
			newTangent := math2.Clamp(c.TangentImpulse+dLambdaT, -maxFriction, maxFriction)
			dLambdaT = newTangent - c.TangentImpulse
			c.TangentImpulse = newTangent

			impulseT := t.Scale(dLambdaT)
			pcp.BodyA.ApplyImpulseWorld(impulseT.Negate(), rA)
			pcp.BodyB.ApplyImpulseWorld(impulseT, rB)

			va = pcp.BodyA.LinearVelocity().Add(math2.CrossScalar(pcp.BodyA.AngularVelocity(), rA))
			vb = pcp.BodyB.LinearVelocity().Add(math2.CrossScalar(pcp.BodyB.AngularVelocity(), rB))
			vRelN := vb.Sub(va).Dot(n)

			dLambdaN := -(vRelN - c.VelocityBias) * c.NormalMass
			newNormal := math2.Max(0, c.NormalImpulse+dLambdaN)
			dLambdaN = newNormal - c.NormalImpulse
			c.NormalImpulse = newNormal

			impulseN := n.Scale(dLambdaN)
			pcp.BodyA.ApplyImpulseWorld(impulseN.Negate(), rA)
			pcp.BodyB.ApplyImpulseWorld(impulseN, rB)
		}
	}
}

// SolvePositions runs one non-linear Gauss-Seidel (NGS) position-correction
// pass over every contact, directly adjusting body positions and angles to
// reduce penetration beyond the allowed slop. Each contact's recorded
// separation is nudged toward zero by the applied correction rather than
// recomputed from a re-run narrowphase, trading exactness for an update
// that stays local to the solver.
func SolvePositions(contacts map[collision.PairKey]*collision.PersistentContactPair, maxLinearCorrection, penetrationSlop float64) {

	for _, pcp := range contacts {
		n := pcp.Normal

		for i := 0; i < pcp.ContactCount; i++ {
			c := &pcp.Contacts[i]
			penetration := -c.Separation
			correction := math2.Clamp(penetration-penetrationSlop, 0, maxLinearCorrection)
			if correction <= 0 {
				continue
			}

			invMa, invMb := pcp.BodyA.InvMass(), pcp.BodyB.InvMass()
			invIa, invIb := pcp.BodyA.InvInertia(), pcp.BodyB.InvInertia()

			rA, rB := c.AnchorA, c.AnchorB
			crAn, crBn := rA.Cross(n), rB.Cross(n)
			kN := invMa + invMb + crAn*crAn*invIa + crBn*crBn*invIb
			if kN <= 0 {
				continue
			}

			impulse := correction / kN
			p := n.Scale(impulse)

			pcp.BodyA.SetPosition(pcp.BodyA.Position().Sub(p.Scale(invMa)))
			pcp.BodyA.SetAngle(pcp.BodyA.Angle() - invIa*rA.Cross(p))
			pcp.BodyB.SetPosition(pcp.BodyB.Position().Add(p.Scale(invMb)))
			pcp.BodyB.SetAngle(pcp.BodyB.Angle() + invIb*rB.Cross(p))

			c.Separation = math2.Min(0, c.Separation+correction)
		}
	}
}
