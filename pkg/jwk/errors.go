/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"errors"
	"fmt"
)

// Failure kinds raised by key operations. Curve registry and algorithm table
// failures are jwa.ErrUnsupportedCurve and jwa.ErrUnsupportedAlgorithm.
var (
	// ErrUnsupportedKeyType is returned when the kty parameter names a key
	// type other than EC or oct.
	ErrUnsupportedKeyType = errors.New("unsupported key type")

	// ErrNoAlgorithm is returned when no algorithm was specified and the key
	// does not declare one.
	ErrNoAlgorithm = errors.New("no algorithm specified")

	// ErrAuthenticationFailed is returned when AEAD tag verification fails
	// during decryption.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrNotPrivateKey is returned when an operation requires private key
	// material that the key does not carry.
	ErrNotPrivateKey = errors.New("not a private key")

	// ErrNoPublicForm is returned when a public view is requested of a key
	// type that has none.
	ErrNoPublicForm = errors.New("key has no public form")
)

// StructuralError indicates that a key parameter is missing or does not
// satisfy its declared encoding kind.
type StructuralError struct {
	Param  string
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("invalid JWK parameter '%s': %s", e.Param, e.Reason)
}

// KeySizeError indicates that the key's size does not satisfy the resolved
// algorithm's key size requirement. Required is the exact size for encryption
// and key wrapping algorithms, and the minimum size for signing algorithms.
type KeySizeError struct {
	Alg      string
	Required int
	Actual   int
	Exact    bool
}

func (e *KeySizeError) Error() string {
	if e.Exact {
		return fmt.Sprintf("algorithm '%s' requires a %d-bit key, got %d bits", e.Alg, e.Required, e.Actual)
	}

	return fmt.Sprintf("algorithm '%s' requires a key of at least %d bits, got %d bits", e.Alg, e.Required, e.Actual)
}
