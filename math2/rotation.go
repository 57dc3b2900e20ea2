// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math2

import "math"

// Rotation is a 2x2 rotation matrix stored as its cosine/sine pair.
// It avoids repeated calls to math.Sin/math.Cos when the same angle
// is used to rotate many vertices, as happens when a polygon shape
// is transformed into world space.
type Rotation struct {
	Cos float64
	Sin float64
}

// NewRotation builds a Rotation from an angle given in radians.
func NewRotation(angle float64) Rotation {

	return Rotation{Cos: math.Cos(angle), Sin: math.Sin(angle)}
}

// Rotate rotates v by this rotation and returns the result.
// rotate(v, angle) = (cos*x - sin*y, sin*x + cos*y)
func (r Rotation) Rotate(v Vector2) Vector2 {

	return Vector2{
		X: r.Cos*v.X - r.Sin*v.Y,
		Y: r.Sin*v.X + r.Cos*v.Y,
	}
}

// Rotate rotates v by angle (in radians) and returns the result.
func Rotate(v Vector2, angle float64) Vector2 {

	return NewRotation(angle).Rotate(v)
}
