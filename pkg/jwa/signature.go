/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwa

import (
	"crypto"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
)

// EC signature algorithm identifiers.
const (
	ES256  = "ES256"
	ES384  = "ES384"
	ES512  = "ES512"
	ES256K = "ES256K"
)

// HMAC signature algorithm identifiers.
const (
	HS256 = "HS256"
	HS384 = "HS384"
	HS512 = "HS512"
)

// ECSignature describes an ECDSA signature algorithm. Each algorithm is bound
// to a single curve.
type ECSignature struct {
	Name  string
	Curve string
	Hash  crypto.Hash
}

var ecSignatures = []ECSignature{
	{Name: ES256, Curve: P256, Hash: crypto.SHA256},
	{Name: ES384, Curve: P384, Hash: crypto.SHA384},
	{Name: ES512, Curve: P521, Hash: crypto.SHA512},
	{Name: ES256K, Curve: Secp256k1, Hash: crypto.SHA256},
}

// ECSignatures returns the EC signature algorithms in their declared order.
func ECSignatures() []ECSignature {
	return append([]ECSignature{}, ecSignatures...)
}

// LookupECSignature returns the descriptor for the named EC signature algorithm.
func LookupECSignature(name string) (ECSignature, error) {
	for _, alg := range ecSignatures {
		if alg.Name == name {
			return alg, nil
		}
	}

	return ECSignature{}, fmt.Errorf("%w: '%s'", ErrUnsupportedAlgorithm, name)
}

// SupportsCurve returns true if the algorithm can be used with the given curve.
func (a ECSignature) SupportsCurve(curve string) bool {
	return a.Curve == curve
}

// HMACSignature describes an HMAC signature algorithm and the minimum key size
// it requires.
type HMACSignature struct {
	Name       string
	Hash       func() hash.Hash
	MinKeyBits int
}

var hmacSignatures = []HMACSignature{
	{Name: HS256, Hash: sha256.New, MinKeyBits: 256},
	{Name: HS384, Hash: sha512.New384, MinKeyBits: 384},
	{Name: HS512, Hash: sha512.New, MinKeyBits: 512},
}

// HMACSignatures returns the HMAC signature algorithms in their declared order.
func HMACSignatures() []HMACSignature {
	return append([]HMACSignature{}, hmacSignatures...)
}

// LookupHMACSignature returns the descriptor for the named HMAC signature
// algorithm.
func LookupHMACSignature(name string) (HMACSignature, error) {
	for _, alg := range hmacSignatures {
		if alg.Name == name {
			return alg, nil
		}
	}

	return HMACSignature{}, fmt.Errorf("%w: '%s'", ErrUnsupportedAlgorithm, name)
}

// Compute computes the HMAC tag over data with the given key.
func (a HMACSignature) Compute(key, data []byte) ([]byte, error) {
	mac := hmac.New(a.Hash, key)

	if _, err := mac.Write(data); err != nil {
		return nil, err
	}

	return mac.Sum(nil), nil
}
