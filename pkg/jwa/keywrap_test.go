/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwa

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupKeyWrap(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		for name, keyBits := range map[string]int{A128KW: 128, A192KW: 192, A256KW: 256} {
			alg, err := LookupKeyWrap(name)
			require.NoError(t, err)
			require.Equal(t, keyBits, alg.KeyBits)
		}
	})

	t.Run("error - unknown algorithm", func(t *testing.T) {
		_, err := LookupKeyWrap("A512KW")
		require.Error(t, err)
		require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})

	t.Run("error - direct use does not wrap", func(t *testing.T) {
		_, err := LookupKeyWrap(DirectUse)
		require.Error(t, err)
		require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})
}

// Test vector from RFC 3394 section 4.1.
func TestKeyWrapRFC3394Vector(t *testing.T) {
	kek := fromHex(t, "000102030405060708090A0B0C0D0E0F")
	cek := fromHex(t, "00112233445566778899AABBCCDDEEFF")
	expected := fromHex(t, "1FA68B0A8112B447AEF34BD8FB5A7B829D3E862371D2CFE5")

	alg, err := LookupKeyWrap(A128KW)
	require.NoError(t, err)

	wrapped, err := alg.Wrap(kek, cek)
	require.NoError(t, err)
	require.Equal(t, expected, wrapped)

	unwrapped, err := alg.Unwrap(kek, wrapped)
	require.NoError(t, err)
	require.Equal(t, cek, unwrapped)
}

func TestKeyWrapRoundTrip(t *testing.T) {
	cek := make([]byte, 32)
	_, err := rand.Read(cek)
	require.NoError(t, err)

	for _, alg := range KeyWraps() {
		t.Run(alg.Name, func(t *testing.T) {
			kek := make([]byte, alg.KeyBits/8)
			_, err := rand.Read(kek)
			require.NoError(t, err)

			wrapped, err := alg.Wrap(kek, cek)
			require.NoError(t, err)
			require.Equal(t, len(cek)+8, len(wrapped))

			unwrapped, err := alg.Unwrap(kek, wrapped)
			require.NoError(t, err)
			require.Equal(t, cek, unwrapped)

			// tampered wrapped key fails the integrity check
			wrapped[0] ^= 0xFF
			_, err = alg.Unwrap(kek, wrapped)
			require.Error(t, err)
		})
	}
}

func TestKeyWrapBadKEKSize(t *testing.T) {
	alg, err := LookupKeyWrap(A128KW)
	require.NoError(t, err)

	_, err = alg.Wrap(make([]byte, 17), make([]byte, 16))
	require.Error(t, err)

	_, err = alg.Unwrap(make([]byte, 17), make([]byte, 24))
	require.Error(t, err)
}

func fromHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	require.NoError(t, err)

	return b
}
