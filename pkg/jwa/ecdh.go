/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwa

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	josecipher "github.com/square/go-jose/v3/cipher"
)

// ECDH-ES key management algorithm identifiers.
const (
	ECDHES       = "ECDH-ES"
	ECDHESA128KW = "ECDH-ES+A128KW"
	ECDHESA192KW = "ECDH-ES+A192KW"
	ECDHESA256KW = "ECDH-ES+A256KW"
)

// The Concat KDF output is bounded to the largest key any JOSE algorithm in
// the tables consumes.
const maxDerivedKeyBits = 512

// ECDH describes an ECDH-ES key agreement algorithm, optionally combined with
// an AES key wrap of the content encryption key. ECDH-ES algorithms work over
// any registered curve.
type ECDH struct {
	Name    string
	KeyWrap *KeyWrap // nil for direct key agreement
}

var ecdhAlgorithms = []ECDH{
	{Name: ECDHES},
	{Name: ECDHESA128KW, KeyWrap: &a128KW},
	{Name: ECDHESA192KW, KeyWrap: &a192KW},
	{Name: ECDHESA256KW, KeyWrap: &a256KW},
}

// ECDHAlgorithms returns the ECDH-ES algorithms in their declared order.
func ECDHAlgorithms() []ECDH {
	return append([]ECDH{}, ecdhAlgorithms...)
}

// LookupECDH returns the descriptor for the named ECDH-ES algorithm.
func LookupECDH(name string) (ECDH, error) {
	for _, alg := range ecdhAlgorithms {
		if alg.Name == name {
			return alg, nil
		}
	}

	return ECDH{}, fmt.Errorf("%w: '%s'", ErrUnsupportedAlgorithm, name)
}

// DeriveECDHES derives a shared key of the given size from an EC private key
// and an EC public key on the same curve, using the Concat KDF as specified in
// RFC 7518 section 4.6. The algorithm identifier, along with the optional
// PartyUInfo and PartyVInfo values, is mixed into the derivation.
func DeriveECDHES(algID string, apu, apv []byte, priv *ecdsa.PrivateKey, pub *ecdsa.PublicKey, keyBits int) ([]byte, error) {
	if priv == nil || pub == nil {
		return nil, errors.New("private and public keys are required")
	}

	if priv.Curve != pub.Curve || !priv.Curve.IsOnCurve(pub.X, pub.Y) {
		return nil, errors.New("public key is not on the private key's curve")
	}

	if keyBits <= 0 || keyBits%8 != 0 || keyBits > maxDerivedKeyBits {
		return nil, fmt.Errorf("invalid derived key size %d", keyBits)
	}

	return josecipher.DeriveECDHES(algID, apu, apv, priv, pub, keyBits/8), nil
}

// DeriveKey derives this algorithm's key agreement output for the given key
// pair. For the direct variant the result is the content encryption key of the
// enc algorithm's size; for the key wrapping variants it is the key encryption
// key and enc is ignored.
func (a ECDH) DeriveKey(priv *ecdsa.PrivateKey, pub *ecdsa.PublicKey, enc string, apu, apv []byte) ([]byte, error) {
	if a.KeyWrap != nil {
		return DeriveECDHES(a.Name, apu, apv, priv, pub, a.KeyWrap.KeyBits)
	}

	encAlg, err := LookupContentEncryption(enc)
	if err != nil {
		return nil, err
	}

	return DeriveECDHES(encAlg.Name, apu, apv, priv, pub, encAlg.KeyBits)
}

// WrapKey derives the key encryption key for the given key pair and wraps the
// content encryption key with it.
func (a ECDH) WrapKey(priv *ecdsa.PrivateKey, pub *ecdsa.PublicKey, apu, apv, cek []byte) ([]byte, error) {
	kek, err := a.wrappingKey(priv, pub, apu, apv)
	if err != nil {
		return nil, err
	}

	return a.KeyWrap.Wrap(kek, cek)
}

// UnwrapKey derives the key encryption key for the given key pair and unwraps
// the content encryption key with it.
func (a ECDH) UnwrapKey(priv *ecdsa.PrivateKey, pub *ecdsa.PublicKey, apu, apv, wrapped []byte) ([]byte, error) {
	kek, err := a.wrappingKey(priv, pub, apu, apv)
	if err != nil {
		return nil, err
	}

	return a.KeyWrap.Unwrap(kek, wrapped)
}

func (a ECDH) wrappingKey(priv *ecdsa.PrivateKey, pub *ecdsa.PublicKey, apu, apv []byte) ([]byte, error) {
	if a.KeyWrap == nil {
		return nil, fmt.Errorf("%w: '%s' does not wrap keys", ErrUnsupportedAlgorithm, a.Name)
	}

	return DeriveECDHES(a.Name, apu, apv, priv, pub, a.KeyWrap.KeyBits)
}
