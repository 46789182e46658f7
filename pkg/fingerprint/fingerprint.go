/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package fingerprint derives stable identifiers for keys from their
// canonical thumbprint form. Fingerprints are multihash encoded and rendered
// either with a multibase prefix or as plain base58.
package fingerprint

import (
	"bytes"
	"crypto"
	"errors"
	"fmt"
	"hash"

	"github.com/btcsuite/btcutil/base58"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
)

// CanonicalKey is the part of a key a fingerprint is computed over: its
// canonical RFC 7638 thumbprint form.
type CanonicalKey interface {
	Canonical() ([]byte, error)
}

// GetHash returns the hash for the given multihash code.
func GetHash(multihashCode uint64) (hash.Hash, error) {
	switch multihashCode {
	case multihash.SHA2_256:
		return crypto.SHA256.New(), nil
	case multihash.SHA2_512:
		return crypto.SHA512.New(), nil
	default:
		return nil, fmt.Errorf("multihash code %d not supported, unable to compute hash", multihashCode)
	}
}

// ComputeMultihash hashes data with the algorithm of the given multihash code
// and returns the multihash-encoded digest.
func ComputeMultihash(multihashCode uint64, data []byte) ([]byte, error) {
	h, err := GetHash(multihashCode)
	if err != nil {
		return nil, err
	}

	if _, err := h.Write(data); err != nil {
		return nil, err
	}

	return multihash.Encode(h.Sum(nil), multihashCode)
}

// Multihash returns the multihash-encoded digest of the key's canonical form.
func Multihash(key CanonicalKey, multihashCode uint64) ([]byte, error) {
	canonical, err := key.Canonical()
	if err != nil {
		return nil, err
	}

	return ComputeMultihash(multihashCode, canonical)
}

// Multibase returns the key's multihash fingerprint in the given multibase
// encoding.
func Multibase(encoding multibase.Encoding, key CanonicalKey, multihashCode uint64) (string, error) {
	fingerprint, err := Multihash(key, multihashCode)
	if err != nil {
		return "", err
	}

	return multibase.Encode(encoding, fingerprint)
}

// Base58 returns the key's multihash fingerprint in plain base58, without a
// multibase prefix.
func Base58(key CanonicalKey, multihashCode uint64) (string, error) {
	fingerprint, err := Multihash(key, multihashCode)
	if err != nil {
		return "", err
	}

	return base58.Encode(fingerprint), nil
}

// MultihashCode extracts the multihash code from a multibase-encoded
// fingerprint.
func MultihashCode(encodedFingerprint string) (uint64, error) {
	_, fingerprint, err := multibase.Decode(encodedFingerprint)
	if err != nil {
		return 0, fmt.Errorf("decode fingerprint: %w", err)
	}

	decoded, err := multihash.Decode(fingerprint)
	if err != nil {
		return 0, fmt.Errorf("decode multihash: %w", err)
	}

	return decoded.Code, nil
}

// IsSupportedMultihash reports whether the encoded fingerprint carries a
// valid multihash code.
func IsSupportedMultihash(encodedFingerprint string) bool {
	code, err := MultihashCode(encodedFingerprint)
	if err != nil {
		return false
	}

	return multihash.ValidCode(code)
}

// Matches verifies that a multibase-encoded fingerprint belongs to the key.
// The hash algorithm is taken from the fingerprint itself.
func Matches(key CanonicalKey, encodedFingerprint string) error {
	_, fingerprint, err := multibase.Decode(encodedFingerprint)
	if err != nil {
		return fmt.Errorf("decode fingerprint: %w", err)
	}

	decoded, err := multihash.Decode(fingerprint)
	if err != nil {
		return fmt.Errorf("decode multihash: %w", err)
	}

	computed, err := Multihash(key, decoded.Code)
	if err != nil {
		return err
	}

	if !bytes.Equal(computed, fingerprint) {
		return errors.New("fingerprint does not match the key")
	}

	return nil
}
