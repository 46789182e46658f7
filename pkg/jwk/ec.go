/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/trustbloc/jose-core-go/pkg/encoder"
	"github.com/trustbloc/jose-core-go/pkg/internal/log"
	"github.com/trustbloc/jose-core-go/pkg/jwa"
)

// ECKey is the elliptic curve view of a key (kty EC).
type ECKey struct {
	*JWK
}

// PublicEC builds a public EC key from a curve name and point coordinates.
// Coordinates are encoded as fixed-width big-endian unsigned integers of the
// curve's coordinate size.
func PublicEC(crv string, x, y *big.Int, opts ...KeyOption) (*ECKey, error) {
	curve, err := jwa.LookupCurve(crv)
	if err != nil {
		return nil, err
	}

	params := map[string]interface{}{
		paramKty: KtyEC,
		paramCrv: crv,
	}

	if params[paramX], err = encoder.EncodeBigInt(x, curve.CoordinateSize); err != nil {
		return nil, &StructuralError{Param: paramX, Reason: err.Error()}
	}

	if params[paramY], err = encoder.EncodeBigInt(y, curve.CoordinateSize); err != nil {
		return nil, &StructuralError{Param: paramY, Reason: err.Error()}
	}

	applyOptions(params, opts)

	return newECKey(params)
}

// PrivateEC builds a private EC key from a curve name, point coordinates and
// the private scalar.
func PrivateEC(crv string, x, y, d *big.Int, opts ...KeyOption) (*ECKey, error) {
	curve, err := jwa.LookupCurve(crv)
	if err != nil {
		return nil, err
	}

	params := map[string]interface{}{
		paramKty: KtyEC,
		paramCrv: crv,
	}

	if params[paramX], err = encoder.EncodeBigInt(x, curve.CoordinateSize); err != nil {
		return nil, &StructuralError{Param: paramX, Reason: err.Error()}
	}

	if params[paramY], err = encoder.EncodeBigInt(y, curve.CoordinateSize); err != nil {
		return nil, &StructuralError{Param: paramY, Reason: err.Error()}
	}

	if params[paramD], err = encoder.EncodeBigInt(d, curve.CoordinateSize); err != nil {
		return nil, &StructuralError{Param: paramD, Reason: err.Error()}
	}

	applyOptions(params, opts)

	return newECKey(params)
}

// GenerateEC generates a new private EC key on the named curve.
func GenerateEC(crv string, opts ...KeyOption) (*ECKey, error) {
	curve, err := jwa.LookupCurve(crv)
	if err != nil {
		return nil, err
	}

	x, y, d, err := curve.GenerateKeyPair()
	if err != nil {
		return nil, err
	}

	key, err := PrivateEC(crv, x, y, d, opts...)
	if err != nil {
		return nil, err
	}

	logger.Debug("Generated EC key", log.WithKeyType(KtyEC), log.WithCurve(crv))

	return key, nil
}

// FromECDSA builds an EC key from a native ecdsa private or public key.
func FromECDSA(key interface{}, opts ...KeyOption) (*ECKey, error) {
	switch k := key.(type) {
	case *ecdsa.PrivateKey:
		crv, err := curveName(k.Curve)
		if err != nil {
			return nil, err
		}

		return PrivateEC(crv, k.X, k.Y, k.D, opts...)
	case *ecdsa.PublicKey:
		crv, err := curveName(k.Curve)
		if err != nil {
			return nil, err
		}

		return PublicEC(crv, k.X, k.Y, opts...)
	default:
		return nil, fmt.Errorf("%w: unexpected native key type %T", ErrUnsupportedKeyType, key)
	}
}

func newECKey(params map[string]interface{}) (*ECKey, error) {
	key, err := New(params)
	if err != nil {
		return nil, err
	}

	return &ECKey{JWK: key}, nil
}

func curveName(curve elliptic.Curve) (string, error) {
	for _, registered := range jwa.Curves() {
		if registered.Curve == curve {
			return registered.Name, nil
		}
	}

	return "", fmt.Errorf("%w: '%s'", jwa.ErrUnsupportedCurve, curve.Params().Name)
}

func checkCurve(params map[string]interface{}) error {
	_, err := jwa.LookupCurve(stringEntry(params[paramCrv]))

	return err
}

func checkCoordinateSizes(key *JWK) error {
	curve, err := jwa.LookupCurve(stringEntry(key.params[paramCrv]))
	if err != nil {
		return err
	}

	names := []string{paramX, paramY}
	if key.private {
		names = append(names, paramD)
	}

	for _, name := range names {
		if _, err := encoder.DecodeBigInt(stringEntry(key.params[name]), curve.CoordinateSize); err != nil {
			return &StructuralError{
				Param:  name,
				Reason: fmt.Sprintf("%s for curve %s", err.Error(), curve.Name),
			}
		}
	}

	return nil
}

// Curve returns the key's curve descriptor.
func (k *ECKey) Curve() jwa.Curve {
	// crv was resolved at construction
	curve, _ := jwa.LookupCurve(stringEntry(k.params[paramCrv]))

	return curve
}

// CoordinateSize returns the byte length of the key's encoded coordinates.
func (k *ECKey) CoordinateSize() int {
	return k.Curve().CoordinateSize
}

// X returns the x coordinate of the public point.
func (k *ECKey) X() *big.Int {
	return k.coordinate(paramX)
}

// Y returns the y coordinate of the public point.
func (k *ECKey) Y() *big.Int {
	return k.coordinate(paramY)
}

// D returns the private scalar, or nil for a public key.
func (k *ECKey) D() *big.Int {
	if !k.IsPrivate() {
		return nil
	}

	return k.coordinate(paramD)
}

func (k *ECKey) coordinate(name string) *big.Int {
	value, err := encoder.DecodeBigInt(stringEntry(k.params[name]), k.CoordinateSize())
	if err != nil {
		return nil
	}

	return value
}

// PublicECDSA returns the key's public point as a native ecdsa public key.
func (k *ECKey) PublicECDSA() (*ecdsa.PublicKey, error) {
	x, y := k.X(), k.Y()
	if x == nil || y == nil {
		return nil, &StructuralError{Param: paramX, Reason: "invalid coordinates"}
	}

	return &ecdsa.PublicKey{Curve: k.Curve().Curve, X: x, Y: y}, nil
}

// PrivateECDSA returns the key as a native ecdsa private key. The key must
// carry the private scalar.
func (k *ECKey) PrivateECDSA() (*ecdsa.PrivateKey, error) {
	if !k.IsPrivate() {
		return nil, ErrNotPrivateKey
	}

	public, err := k.PublicECDSA()
	if err != nil {
		return nil, err
	}

	d := k.coordinate(paramD)
	if d == nil {
		return nil, &StructuralError{Param: paramD, Reason: "invalid scalar"}
	}

	return &ecdsa.PrivateKey{PublicKey: *public, D: d}, nil
}

// SupportedSigningAlgorithms returns the signature algorithms this key can be
// used with. Each EC signature algorithm is bound to one curve.
func (k *ECKey) SupportedSigningAlgorithms() []string {
	var names []string

	for _, alg := range jwa.ECSignatures() {
		if alg.SupportsCurve(k.Curve().Name) {
			names = append(names, alg.Name)
		}
	}

	return names
}

// SupportedKeyManagementAlgorithms returns the key management algorithms this
// key can be used with. The ECDH-ES family works over any registered curve.
func (k *ECKey) SupportedKeyManagementAlgorithms() []string {
	var names []string

	for _, alg := range jwa.ECDHAlgorithms() {
		names = append(names, alg.Name)
	}

	return names
}

// Sign signs data with ECDSA and returns the signature as the fixed-width
// concatenation r || s. When alg is empty it is resolved from the key's
// declared algorithm.
func (k *ECKey) Sign(data []byte, alg string) ([]byte, error) {
	name, err := selectAlg(k.Alg(), alg, k.SupportedSigningAlgorithms())
	if err != nil {
		return nil, err
	}

	sigAlg, err := jwa.LookupECSignature(name)
	if err != nil {
		return nil, err
	}

	privateKey, err := k.PrivateECDSA()
	if err != nil {
		return nil, err
	}

	digest, err := computeDigest(sigAlg.Hash, data)
	if err != nil {
		return nil, err
	}

	r, s, err := ecdsa.Sign(rand.Reader, privateKey, digest)
	if err != nil {
		return nil, fmt.Errorf("sign with '%s': %w", name, err)
	}

	size := k.CoordinateSize()

	return append(copyPadded(r.Bytes(), size), copyPadded(s.Bytes(), size)...), nil
}

// Verify verifies an r || s signature over data. The candidate algorithms are
// resolved from the options, the key's declared algorithm or the key's full
// supported set, in that order. It returns false without error when the
// signature is malformed or no candidate verifies.
func (k *ECKey) Verify(data, signature []byte, opts ...AlgOption) (bool, error) {
	candidates, err := selectAlgs(k.Alg(), k.SupportedSigningAlgorithms(), opts...)
	if err != nil {
		return false, err
	}

	publicKey, err := k.PublicECDSA()
	if err != nil {
		return false, err
	}

	size := k.CoordinateSize()
	if len(signature) != 2*size {
		return false, nil
	}

	r := new(big.Int).SetBytes(signature[:size])
	s := new(big.Int).SetBytes(signature[size:])

	for _, name := range candidates {
		sigAlg, err := jwa.LookupECSignature(name)
		if err != nil {
			return false, err
		}

		digest, err := computeDigest(sigAlg.Hash, data)
		if err != nil {
			return false, err
		}

		if ecdsa.Verify(publicKey, digest, r, s) {
			return true, nil
		}
	}

	return false, nil
}

// DeriveSenderKey derives the ECDH-ES key agreement output on the sender
// side, from an ephemeral private key and this key's public point. For
// ECDH-ES the result is the content encryption key for enc; for the wrapping
// variants it is the key encryption key.
func (k *ECKey) DeriveSenderKey(ephemeral *ecdsa.PrivateKey, alg, enc string, apu, apv []byte) ([]byte, error) {
	ecdhAlg, err := k.ecdhAlgorithm(alg)
	if err != nil {
		return nil, err
	}

	publicKey, err := k.PublicECDSA()
	if err != nil {
		return nil, err
	}

	return ecdhAlg.DeriveKey(ephemeral, publicKey, enc, apu, apv)
}

// DeriveRecipientKey derives the ECDH-ES key agreement output on the
// recipient side, from this key's private scalar and the sender's ephemeral
// public key.
func (k *ECKey) DeriveRecipientKey(ephemeral *ecdsa.PublicKey, alg, enc string, apu, apv []byte) ([]byte, error) {
	ecdhAlg, err := k.ecdhAlgorithm(alg)
	if err != nil {
		return nil, err
	}

	privateKey, err := k.PrivateECDSA()
	if err != nil {
		return nil, err
	}

	return ecdhAlg.DeriveKey(privateKey, ephemeral, enc, apu, apv)
}

// WrapKey generates an ephemeral key on this key's curve, derives the key
// encryption key against this key's public point and wraps the content
// encryption key. The returned ephemeral public key must accompany the
// wrapped key so the recipient can unwrap it.
func (k *ECKey) WrapKey(cek []byte, alg string, apu, apv []byte) (wrapped []byte, epk *ECKey, err error) {
	ecdhAlg, err := k.ecdhAlgorithm(alg)
	if err != nil {
		return nil, nil, err
	}

	ephemeral, err := GenerateEC(k.Curve().Name)
	if err != nil {
		return nil, nil, err
	}

	ephemeralKey, err := ephemeral.PrivateECDSA()
	if err != nil {
		return nil, nil, err
	}

	publicKey, err := k.PublicECDSA()
	if err != nil {
		return nil, nil, err
	}

	wrapped, err = ecdhAlg.WrapKey(ephemeralKey, publicKey, apu, apv, cek)
	if err != nil {
		return nil, nil, err
	}

	epk, err = publicView(ephemeral)
	if err != nil {
		return nil, nil, err
	}

	return wrapped, epk, nil
}

// UnwrapKey derives the key encryption key from this key's private scalar and
// the sender's ephemeral public key, and unwraps the content encryption key.
func (k *ECKey) UnwrapKey(wrapped []byte, alg string, epk *ECKey, apu, apv []byte) ([]byte, error) {
	ecdhAlg, err := k.ecdhAlgorithm(alg)
	if err != nil {
		return nil, err
	}

	privateKey, err := k.PrivateECDSA()
	if err != nil {
		return nil, err
	}

	ephemeralKey, err := epk.PublicECDSA()
	if err != nil {
		return nil, err
	}

	return ecdhAlg.UnwrapKey(privateKey, ephemeralKey, apu, apv, wrapped)
}

func (k *ECKey) ecdhAlgorithm(alg string) (jwa.ECDH, error) {
	name, err := selectAlg(k.Alg(), alg, k.SupportedKeyManagementAlgorithms())
	if err != nil {
		return jwa.ECDH{}, err
	}

	return jwa.LookupECDH(name)
}

func publicView(key *ECKey) (*ECKey, error) {
	public, err := key.JWK.Public()
	if err != nil {
		return nil, err
	}

	return public.EC()
}

func computeDigest(hash crypto.Hash, data []byte) ([]byte, error) {
	hasher := hash.New()

	if _, err := hasher.Write(data); err != nil {
		return nil, err
	}

	return hasher.Sum(nil), nil
}

// copyPadded returns value left-padded with zeroes to size bytes.
func copyPadded(value []byte, size int) []byte {
	dest := make([]byte, size)
	copy(dest[size-len(value):], value)

	return dest
}
