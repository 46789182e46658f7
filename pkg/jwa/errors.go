/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwa

import "errors"

// ErrUnsupportedCurve is returned when a curve name is absent from the curve
// registry.
var ErrUnsupportedCurve = errors.New("unsupported curve")

// ErrUnsupportedAlgorithm is returned when an algorithm identifier is absent
// from the relevant algorithm table, or the algorithm cannot be used with the
// given key.
var ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
