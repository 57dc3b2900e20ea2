// Copyright (c) The Space2D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package space

import "errors"

var (
	// ErrAlreadyAdded is returned by AddRigidBody/AddConstraint when the
	// object already belongs to this space.
	ErrAlreadyAdded = errors.New("space: object already added to this space")

	// ErrNotFound is returned by RemoveRigidBody/RemoveConstraint when the
	// object does not belong to this space.
	ErrNotFound = errors.New("space: object not found in this space")

	// ErrInvalidArgument is the sentinel for out-of-range settings, such as
	// a negative substep or iteration count. No function in this package
	// returns it: SetSettings stores its argument unchecked, and Step treats
	// a non-positive substep count as a no-op.
	ErrInvalidArgument = errors.New("space: invalid argument")
)
