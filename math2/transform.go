// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math2

// Transform is a rigid 2D pose: a world position and an orientation angle.
type Transform struct {
	Position Vector2
	Angle    float64
}

// NewTransform builds a Transform from a position and an angle in radians.
func NewTransform(position Vector2, angle float64) Transform {

	return Transform{Position: position, Angle: angle}
}

// ToWorld transforms a body-local point into world space using this transform's
// rotation and then translating by Position.
func (t Transform) ToWorld(localPoint Vector2) Vector2 {

	return Rotate(localPoint, t.Angle).Add(t.Position)
}

// ToLocal transforms a world point into the frame described by this transform.
func (t Transform) ToLocal(worldPoint Vector2) Vector2 {

	return Rotate(worldPoint.Sub(t.Position), -t.Angle)
}
