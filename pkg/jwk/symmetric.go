/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"crypto/hmac"
	"crypto/rand"
	"fmt"

	"github.com/trustbloc/jose-core-go/pkg/encoder"
	"github.com/trustbloc/jose-core-go/pkg/internal/log"
	"github.com/trustbloc/jose-core-go/pkg/jwa"
)

// SymmetricKey is the symmetric view of a key (kty oct).
type SymmetricKey struct {
	*JWK
}

// NewSymmetric builds a symmetric key from raw secret bytes.
func NewSymmetric(secret []byte, opts ...KeyOption) (*SymmetricKey, error) {
	if len(secret) == 0 {
		return nil, &StructuralError{Param: paramK, Reason: "secret must not be empty"}
	}

	params := map[string]interface{}{
		paramKty: KtyOct,
		paramK:   encoder.EncodeToString(secret),
	}

	applyOptions(params, opts)

	key, err := New(params)
	if err != nil {
		return nil, err
	}

	return &SymmetricKey{JWK: key}, nil
}

// GenerateSymmetric generates a symmetric key of the given size in bits.
func GenerateSymmetric(sizeBits int, opts ...KeyOption) (*SymmetricKey, error) {
	if sizeBits <= 0 || sizeBits%8 != 0 {
		return nil, fmt.Errorf("key size must be a positive multiple of 8 bits, got %d", sizeBits)
	}

	secret := make([]byte, sizeBits/8)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate %d-bit key: %w", sizeBits, err)
	}

	key, err := NewSymmetric(secret, opts...)
	if err != nil {
		return nil, err
	}

	logger.Debug("Generated symmetric key", log.WithKeyType(KtyOct), log.WithSize(sizeBits))

	return key, nil
}

// GenerateSymmetricForAlgorithm generates a symmetric key sized for the given
// algorithm and declares the algorithm on the key.
func GenerateSymmetricForAlgorithm(alg string, opts ...KeyOption) (*SymmetricKey, error) {
	sizeBits, err := symmetricKeySize(alg)
	if err != nil {
		return nil, err
	}

	return GenerateSymmetric(sizeBits, append([]KeyOption{WithAlgorithm(alg)}, opts...)...)
}

// symmetricKeySize returns the key size in bits that alg calls for: the
// minimum size for HMAC algorithms, the exact size otherwise.
func symmetricKeySize(alg string) (int, error) {
	if hmacAlg, err := jwa.LookupHMACSignature(alg); err == nil {
		return hmacAlg.MinKeyBits, nil
	}

	if encAlg, err := jwa.LookupContentEncryption(alg); err == nil {
		return encAlg.KeyBits, nil
	}

	if wrapAlg, err := jwa.LookupKeyWrap(alg); err == nil {
		return wrapAlg.KeyBits, nil
	}

	return 0, fmt.Errorf("%w: no key size defined for '%s'", jwa.ErrUnsupportedAlgorithm, alg)
}

// Key returns the raw secret.
func (k *SymmetricKey) Key() []byte {
	// k was validated at construction
	secret, err := encoder.DecodeAnyPadding(stringEntry(k.params[paramK]))
	if err != nil {
		return nil
	}

	return secret
}

// KeySize returns the key size in bits.
func (k *SymmetricKey) KeySize() int {
	return len(k.Key()) * 8
}

// SupportedSigningAlgorithms returns the signature algorithms this key can be
// used with. The key size is checked by the operations, not here.
func (k *SymmetricKey) SupportedSigningAlgorithms() []string {
	var names []string

	for _, alg := range jwa.HMACSignatures() {
		names = append(names, alg.Name)
	}

	return names
}

// SupportedEncryptionAlgorithms returns the content encryption algorithms
// this key can be used with.
func (k *SymmetricKey) SupportedEncryptionAlgorithms() []string {
	var names []string

	for _, alg := range jwa.ContentEncryptions() {
		names = append(names, alg.Name)
	}

	return names
}

// SupportedKeyManagementAlgorithms returns the key management algorithms this
// key can be used with. Direct use is listed but performs no wrapping.
func (k *SymmetricKey) SupportedKeyManagementAlgorithms() []string {
	var names []string

	for _, alg := range jwa.KeyWraps() {
		names = append(names, alg.Name)
	}

	return append(names, jwa.DirectUse)
}

// Sign computes the HMAC tag over data. When alg is empty it is resolved from
// the key's declared algorithm. The key must meet the algorithm's minimum
// key size.
func (k *SymmetricKey) Sign(data []byte, alg string) ([]byte, error) {
	name, err := selectAlg(k.Alg(), alg, k.SupportedSigningAlgorithms())
	if err != nil {
		return nil, err
	}

	hmacAlg, err := jwa.LookupHMACSignature(name)
	if err != nil {
		return nil, err
	}

	if k.KeySize() < hmacAlg.MinKeyBits {
		return nil, &KeySizeError{Alg: name, Required: hmacAlg.MinKeyBits, Actual: k.KeySize()}
	}

	return hmacAlg.Compute(k.Key(), data)
}

// Verify recomputes the HMAC tag for each candidate algorithm and compares it
// to the signature in constant time. A candidate requiring a larger key is
// skipped, unless it is the single resolved algorithm, which fails with a
// KeySizeError. It returns false when no candidate matches.
func (k *SymmetricKey) Verify(data, signature []byte, opts ...AlgOption) (bool, error) {
	candidates, err := selectAlgs(k.Alg(), k.SupportedSigningAlgorithms(), opts...)
	if err != nil {
		return false, err
	}

	for _, name := range candidates {
		hmacAlg, err := jwa.LookupHMACSignature(name)
		if err != nil {
			return false, err
		}

		if k.KeySize() < hmacAlg.MinKeyBits {
			if len(candidates) == 1 {
				return false, &KeySizeError{Alg: name, Required: hmacAlg.MinKeyBits, Actual: k.KeySize()}
			}

			continue
		}

		expected, err := hmacAlg.Compute(k.Key(), data)
		if err != nil {
			return false, err
		}

		if hmac.Equal(signature, expected) {
			return true, nil
		}
	}

	return false, nil
}

// Encrypt encrypts plaintext bound to the additional authenticated data. A
// fresh random IV of the algorithm's size is generated when none is supplied.
// The ciphertext and the authentication tag are returned separately, the way
// JWE carries them.
func (k *SymmetricKey) Encrypt(plaintext, aad, iv []byte, alg string) (ciphertext, tag, usedIV []byte, err error) {
	name, err := selectAlg(k.Alg(), alg, k.SupportedEncryptionAlgorithms())
	if err != nil {
		return nil, nil, nil, err
	}

	encAlg, err := jwa.LookupContentEncryption(name)
	if err != nil {
		return nil, nil, nil, err
	}

	if k.KeySize() != encAlg.KeyBits {
		return nil, nil, nil, &KeySizeError{Alg: name, Required: encAlg.KeyBits, Actual: k.KeySize(), Exact: true}
	}

	if iv == nil {
		iv = make([]byte, encAlg.IVSize)
		if _, err := rand.Read(iv); err != nil {
			return nil, nil, nil, fmt.Errorf("generate IV: %w", err)
		}
	} else if len(iv) != encAlg.IVSize {
		return nil, nil, nil, fmt.Errorf("IV must be %d bytes for '%s', got %d", encAlg.IVSize, name, len(iv))
	}

	aead, err := encAlg.NewAEAD(k.Key())
	if err != nil {
		return nil, nil, nil, err
	}

	sealed := aead.Seal(nil, iv, plaintext, aad)
	split := len(sealed) - encAlg.TagSize

	return sealed[:split], sealed[split:], iv, nil
}

// Decrypt authenticates the ciphertext, tag and additional authenticated data
// and returns the plaintext. Tampering with any of them fails with
// ErrAuthenticationFailed.
func (k *SymmetricKey) Decrypt(ciphertext, tag, iv, aad []byte, alg string) ([]byte, error) {
	name, err := selectAlg(k.Alg(), alg, k.SupportedEncryptionAlgorithms())
	if err != nil {
		return nil, err
	}

	encAlg, err := jwa.LookupContentEncryption(name)
	if err != nil {
		return nil, err
	}

	if k.KeySize() != encAlg.KeyBits {
		return nil, &KeySizeError{Alg: name, Required: encAlg.KeyBits, Actual: k.KeySize(), Exact: true}
	}

	if len(iv) != encAlg.IVSize {
		return nil, fmt.Errorf("IV must be %d bytes for '%s', got %d", encAlg.IVSize, name, len(iv))
	}

	aead, err := encAlg.NewAEAD(k.Key())
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(append(sealed, ciphertext...), tag...)

	plaintext, err := aead.Open(nil, iv, sealed, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAuthenticationFailed, err)
	}

	return plaintext, nil
}

// WrapKey wraps a content encryption key with this key using AES key
// wrapping. The key size must match the algorithm exactly.
func (k *SymmetricKey) WrapKey(cek []byte, alg string) ([]byte, error) {
	wrapAlg, err := k.keyWrapAlgorithm(alg)
	if err != nil {
		return nil, err
	}

	return wrapAlg.Wrap(k.Key(), cek)
}

// UnwrapKey unwraps a content encryption key wrapped with this key.
func (k *SymmetricKey) UnwrapKey(wrapped []byte, alg string) ([]byte, error) {
	wrapAlg, err := k.keyWrapAlgorithm(alg)
	if err != nil {
		return nil, err
	}

	return wrapAlg.Unwrap(k.Key(), wrapped)
}

func (k *SymmetricKey) keyWrapAlgorithm(alg string) (jwa.KeyWrap, error) {
	name, err := selectAlg(k.Alg(), alg, k.SupportedKeyManagementAlgorithms())
	if err != nil {
		return jwa.KeyWrap{}, err
	}

	if name == jwa.DirectUse {
		return jwa.KeyWrap{}, fmt.Errorf("%w: '%s' does not wrap keys", jwa.ErrUnsupportedAlgorithm, name)
	}

	wrapAlg, err := jwa.LookupKeyWrap(name)
	if err != nil {
		return jwa.KeyWrap{}, err
	}

	if k.KeySize() != wrapAlg.KeyBits {
		return jwa.KeyWrap{}, &KeySizeError{Alg: name, Required: wrapAlg.KeyBits, Actual: k.KeySize(), Exact: true}
	}

	return wrapAlg, nil
}
