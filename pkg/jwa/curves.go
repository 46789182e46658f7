/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jwa defines the curve registry and the algorithm tables shared by
// the JWK key types (RFC 7518).
package jwa

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
)

// Curve names.
const (
	P256      = "P-256"
	P384      = "P-384"
	P521      = "P-521"
	Secp256k1 = "secp256k1"
)

const (
	p256CoordinateSize      = 32
	p384CoordinateSize      = 48
	p521CoordinateSize      = 66
	secp256k1CoordinateSize = 32
)

// Curve describes an elliptic curve along with the parameters JOSE algorithms
// use with it. CoordinateSize is the byte length of an encoded coordinate or
// private scalar; Hash is the digest paired with the curve for ECDSA.
type Curve struct {
	Name           string
	Curve          elliptic.Curve
	CoordinateSize int
	Hash           crypto.Hash
}

var curves = []Curve{
	{Name: P256, Curve: elliptic.P256(), CoordinateSize: p256CoordinateSize, Hash: crypto.SHA256},
	{Name: P384, Curve: elliptic.P384(), CoordinateSize: p384CoordinateSize, Hash: crypto.SHA384},
	{Name: P521, Curve: elliptic.P521(), CoordinateSize: p521CoordinateSize, Hash: crypto.SHA512},
	{Name: Secp256k1, Curve: btcec.S256(), CoordinateSize: secp256k1CoordinateSize, Hash: crypto.SHA256},
}

// Curves returns the registered curves in their declared order.
func Curves() []Curve {
	return append([]Curve{}, curves...)
}

// LookupCurve returns the descriptor for the named curve. The set of curves is
// fixed: the three NIST curves plus secp256k1.
func LookupCurve(name string) (Curve, error) {
	for _, curve := range curves {
		if curve.Name == name {
			return curve, nil
		}
	}

	return Curve{}, fmt.Errorf("%w: '%s'", ErrUnsupportedCurve, name)
}

// GenerateKeyPair generates a new key pair on the curve using a
// cryptographically secure source of randomness. It returns the public point
// coordinates and the private scalar.
func (c Curve) GenerateKeyPair() (x, y, d *big.Int, err error) {
	key, err := ecdsa.GenerateKey(c.Curve, rand.Reader)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("generate '%s' key pair: %w", c.Name, err)
	}

	return key.X, key.Y, key.D, nil
}
