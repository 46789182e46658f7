/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fingerprint

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/jose-core-go/pkg/jwk"
)

const ecPublicJSON = `{"kty":"EC","crv":"P-256","x":"MKBCTNIcKUSDii11ySs3526iDZ8AiTo7Tu6KPAqv7D4","y":"4Etl6SRW2YiLUrN5vfvVHuhp7x8PxltmWWlbbM4IFyM"}`

func TestComputeMultihash(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		computed, err := ComputeMultihash(multihash.SHA2_256, []byte("hello"))
		require.NoError(t, err)

		// 0x12 (sha2-256), 0x20 (32 bytes), then the digest
		require.Equal(t,
			"12202cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
			hex.EncodeToString(computed))
	})

	t.Run("sha2-512", func(t *testing.T) {
		computed, err := ComputeMultihash(multihash.SHA2_512, []byte("hello"))
		require.NoError(t, err)
		require.Len(t, computed, 64+2)
	})

	t.Run("unsupported code", func(t *testing.T) {
		_, err := ComputeMultihash(55, []byte("hello"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "not supported, unable to compute hash")
	})
}

func TestMultihash(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		key, err := jwk.FromBytes([]byte(ecPublicJSON))
		require.NoError(t, err)

		fingerprint, err := Multihash(key, multihash.SHA2_256)
		require.NoError(t, err)
		require.Len(t, fingerprint, 34)

		decoded, err := multihash.Decode(fingerprint)
		require.NoError(t, err)
		require.Equal(t, uint64(multihash.SHA2_256), decoded.Code)
	})

	t.Run("deterministic across parameter order", func(t *testing.T) {
		key, err := jwk.FromBytes([]byte(ecPublicJSON))
		require.NoError(t, err)

		reordered, err := jwk.FromBytes([]byte(`{"y":"4Etl6SRW2YiLUrN5vfvVHuhp7x8PxltmWWlbbM4IFyM","x":"MKBCTNIcKUSDii11ySs3526iDZ8AiTo7Tu6KPAqv7D4","crv":"P-256","kty":"EC"}`))
		require.NoError(t, err)

		first, err := Multihash(key, multihash.SHA2_256)
		require.NoError(t, err)

		second, err := Multihash(reordered, multihash.SHA2_256)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("canonical form error", func(t *testing.T) {
		key, err := jwk.FromBytes([]byte(`{"kty":"oct"}`))
		require.NoError(t, err)

		_, err = Multihash(key, multihash.SHA2_256)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid JWK parameter 'k'")
	})
}

func TestMultibase(t *testing.T) {
	key, err := jwk.FromBytes([]byte(ecPublicJSON))
	require.NoError(t, err)

	t.Run("base58btc fingerprint", func(t *testing.T) {
		fingerprint, err := Multibase(multibase.Base58BTC, key, multihash.SHA2_256)
		require.NoError(t, err)
		require.NotEmpty(t, fingerprint)
		require.Equal(t, byte('z'), fingerprint[0])

		code, err := MultihashCode(fingerprint)
		require.NoError(t, err)
		require.Equal(t, uint64(multihash.SHA2_256), code)
		require.True(t, IsSupportedMultihash(fingerprint))
	})

	t.Run("matches", func(t *testing.T) {
		fingerprint, err := Multibase(multibase.Base58BTC, key, multihash.SHA2_256)
		require.NoError(t, err)
		require.NoError(t, Matches(key, fingerprint))
	})

	t.Run("does not match another key", func(t *testing.T) {
		other, err := jwk.NewSymmetric([]byte("0123456789abcdef"))
		require.NoError(t, err)

		fingerprint, err := Multibase(multibase.Base58BTC, other.JWK, multihash.SHA2_256)
		require.NoError(t, err)

		err = Matches(key, fingerprint)
		require.Error(t, err)
		require.Contains(t, err.Error(), "fingerprint does not match the key")
	})

	t.Run("invalid fingerprint encoding", func(t *testing.T) {
		require.False(t, IsSupportedMultihash("!!not multibase!!"))

		_, err := MultihashCode("!!not multibase!!")
		require.Error(t, err)
		require.Contains(t, err.Error(), "decode fingerprint")

		err = Matches(key, "!!not multibase!!")
		require.Error(t, err)
	})
}

func TestBase58(t *testing.T) {
	key, err := jwk.FromBytes([]byte(ecPublicJSON))
	require.NoError(t, err)

	encoded, err := Base58(key, multihash.SHA2_256)
	require.NoError(t, err)
	require.NotEmpty(t, encoded)

	decoded := base58.Decode(encoded)
	require.Len(t, decoded, 34)

	mh, err := multihash.Decode(decoded)
	require.NoError(t, err)
	require.Equal(t, uint64(multihash.SHA2_256), mh.Code)
}
