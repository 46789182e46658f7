/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwa

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	josecipher "github.com/square/go-jose/v3/cipher"
)

// AEAD content encryption algorithm identifiers.
const (
	A128GCM      = "A128GCM"
	A192GCM      = "A192GCM"
	A256GCM      = "A256GCM"
	A128CBCHS256 = "A128CBC-HS256"
	A192CBCHS384 = "A192CBC-HS384"
	A256CBCHS512 = "A256CBC-HS512"
)

// ContentEncryption describes an AEAD content encryption algorithm. KeyBits is
// the exact key size the algorithm requires. For the CBC-HMAC family the key
// is the combined MAC and encryption key, per RFC 7518 section 5.2. The AEAD
// seal output is the ciphertext with the authentication tag of TagSize bytes
// appended.
type ContentEncryption struct {
	Name    string
	KeyBits int
	IVSize  int
	TagSize int
	newAEAD func(key []byte) (cipher.AEAD, error)
}

var contentEncryptions = []ContentEncryption{
	{Name: A128GCM, KeyBits: 128, IVSize: 12, TagSize: 16, newAEAD: newGCM},
	{Name: A192GCM, KeyBits: 192, IVSize: 12, TagSize: 16, newAEAD: newGCM},
	{Name: A256GCM, KeyBits: 256, IVSize: 12, TagSize: 16, newAEAD: newGCM},
	{Name: A128CBCHS256, KeyBits: 256, IVSize: 16, TagSize: 16, newAEAD: newCBCHMAC},
	{Name: A192CBCHS384, KeyBits: 384, IVSize: 16, TagSize: 24, newAEAD: newCBCHMAC},
	{Name: A256CBCHS512, KeyBits: 512, IVSize: 16, TagSize: 32, newAEAD: newCBCHMAC},
}

// ContentEncryptions returns the AEAD content encryption algorithms in their
// declared order.
func ContentEncryptions() []ContentEncryption {
	return append([]ContentEncryption{}, contentEncryptions...)
}

// LookupContentEncryption returns the descriptor for the named AEAD content
// encryption algorithm.
func LookupContentEncryption(name string) (ContentEncryption, error) {
	for _, alg := range contentEncryptions {
		if alg.Name == name {
			return alg, nil
		}
	}

	return ContentEncryption{}, fmt.Errorf("%w: '%s'", ErrUnsupportedAlgorithm, name)
}

// NewAEAD creates the AEAD cipher for the algorithm. The key length must equal
// KeyBits.
func (a ContentEncryption) NewAEAD(key []byte) (cipher.AEAD, error) {
	return a.newAEAD(key)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}

func newCBCHMAC(key []byte) (cipher.AEAD, error) {
	return josecipher.NewCBCHMAC(key, aes.NewCipher)
}
