/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwa

import (
	"crypto/aes"
	"fmt"

	josecipher "github.com/square/go-jose/v3/cipher"
)

// Key management algorithm identifiers for symmetric keys.
const (
	A128KW = "A128KW"
	A192KW = "A192KW"
	A256KW = "A256KW"

	// DirectUse indicates direct use of the shared symmetric key as the
	// content encryption key. It performs no wrapping.
	DirectUse = "dir"
)

// KeyWrap describes an AES key wrap algorithm (RFC 3394). KeyBits is the exact
// size of the key encryption key.
type KeyWrap struct {
	Name    string
	KeyBits int
}

var (
	a128KW = KeyWrap{Name: A128KW, KeyBits: 128}
	a192KW = KeyWrap{Name: A192KW, KeyBits: 192}
	a256KW = KeyWrap{Name: A256KW, KeyBits: 256}
)

var keyWraps = []KeyWrap{a128KW, a192KW, a256KW}

// KeyWraps returns the AES key wrap algorithms in their declared order.
func KeyWraps() []KeyWrap {
	return append([]KeyWrap{}, keyWraps...)
}

// LookupKeyWrap returns the descriptor for the named key wrap algorithm.
func LookupKeyWrap(name string) (KeyWrap, error) {
	for _, alg := range keyWraps {
		if alg.Name == name {
			return alg, nil
		}
	}

	return KeyWrap{}, fmt.Errorf("%w: '%s'", ErrUnsupportedAlgorithm, name)
}

// Wrap wraps the content encryption key with the key encryption key.
func (a KeyWrap) Wrap(kek, cek []byte) ([]byte, error) {
	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, err
	}

	return josecipher.KeyWrap(block, cek)
}

// Unwrap unwraps the wrapped content encryption key with the key encryption key.
func (a KeyWrap) Unwrap(kek, wrapped []byte) ([]byte, error) {
	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, err
	}

	return josecipher.KeyUnwrap(block, wrapped)
}
