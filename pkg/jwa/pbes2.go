/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwa

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/pbkdf2"
)

// PBES2 key management algorithm identifiers.
const (
	PBES2HS256A128KW = "PBES2-HS256+A128KW"
	PBES2HS384A192KW = "PBES2-HS384+A192KW"
	PBES2HS512A256KW = "PBES2-HS512+A256KW"
)

// Minimum PBES2 parameter values from RFC 7518 section 4.8.1.
const (
	MinPBES2SaltSize   = 8
	MinPBES2Iterations = 1000
)

// PBES2 describes a password-based key management algorithm: a PBKDF2 key
// derivation followed by an AES key wrap with the derived key.
type PBES2 struct {
	Name    string
	Hash    func() hash.Hash
	KeyWrap KeyWrap
}

var pbes2Algorithms = []PBES2{
	{Name: PBES2HS256A128KW, Hash: sha256.New, KeyWrap: a128KW},
	{Name: PBES2HS384A192KW, Hash: sha512.New384, KeyWrap: a192KW},
	{Name: PBES2HS512A256KW, Hash: sha512.New, KeyWrap: a256KW},
}

// PBES2Algorithms returns the PBES2 algorithms in their declared order.
func PBES2Algorithms() []PBES2 {
	return append([]PBES2{}, pbes2Algorithms...)
}

// LookupPBES2 returns the descriptor for the named PBES2 algorithm.
func LookupPBES2(name string) (PBES2, error) {
	for _, alg := range pbes2Algorithms {
		if alg.Name == name {
			return alg, nil
		}
	}

	return PBES2{}, fmt.Errorf("%w: '%s'", ErrUnsupportedAlgorithm, name)
}

// DeriveKey derives the key wrapping key from the password. The effective
// PBKDF2 salt is the algorithm name, a zero byte and the salt input, as
// specified in RFC 7518 section 4.8.1.1. The iteration count is required and
// must meet the RFC 7518 minimum.
func (a PBES2) DeriveKey(password, saltInput []byte, iterations int) ([]byte, error) {
	if len(saltInput) < MinPBES2SaltSize {
		return nil, fmt.Errorf("salt input must be at least %d bytes", MinPBES2SaltSize)
	}

	if iterations < MinPBES2Iterations {
		return nil, fmt.Errorf("iteration count must be at least %d", MinPBES2Iterations)
	}

	salt := make([]byte, 0, len(a.Name)+1+len(saltInput))
	salt = append(salt, a.Name...)
	salt = append(salt, 0)
	salt = append(salt, saltInput...)

	return pbkdf2.Key(password, salt, iterations, a.KeyWrap.KeyBits/8, a.Hash), nil
}

// WrapKey derives the key wrapping key from the password and wraps the content
// encryption key with it.
func (a PBES2) WrapKey(password, saltInput []byte, iterations int, cek []byte) ([]byte, error) {
	kek, err := a.DeriveKey(password, saltInput, iterations)
	if err != nil {
		return nil, err
	}

	return a.KeyWrap.Wrap(kek, cek)
}

// UnwrapKey derives the key wrapping key from the password and unwraps the
// content encryption key with it.
func (a PBES2) UnwrapKey(password, saltInput []byte, iterations int, wrapped []byte) ([]byte, error) {
	kek, err := a.DeriveKey(password, saltInput, iterations)
	if err != nil {
		return nil, err
	}

	return a.KeyWrap.Unwrap(kek, wrapped)
}
