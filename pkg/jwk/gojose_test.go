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
	"testing"

	gojose "github.com/square/go-jose/v3"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/jose-core-go/pkg/encoder"
	"github.com/trustbloc/jose-core-go/pkg/jwa"
)

func TestToJOSE(t *testing.T) {
	t.Run("public EC key", func(t *testing.T) {
		key, err := FromBytes([]byte(ecPublicJSON))
		require.NoError(t, err)

		joseKey, err := key.ToJOSE()
		require.NoError(t, err)
		require.True(t, joseKey.Valid())
		require.Equal(t, "1", joseKey.KeyID)
		require.Equal(t, "enc", joseKey.Use)
		require.IsType(t, &ecdsa.PublicKey{}, joseKey.Key)
	})

	t.Run("private EC key", func(t *testing.T) {
		key, err := FromBytes([]byte(ecPrivateJSON))
		require.NoError(t, err)

		joseKey, err := key.ToJOSE()
		require.NoError(t, err)
		require.True(t, joseKey.Valid())
		require.IsType(t, &ecdsa.PrivateKey{}, joseKey.Key)
	})

	t.Run("symmetric key", func(t *testing.T) {
		key, err := FromBytes([]byte(octJSON))
		require.NoError(t, err)

		joseKey, err := key.ToJOSE()
		require.NoError(t, err)

		secret, err := encoder.DecodeAnyPadding("GawgguFyGrWKav7AX4VKUg")
		require.NoError(t, err)
		require.Equal(t, secret, joseKey.Key)
	})

	t.Run("secp256k1 is not supported by go-jose", func(t *testing.T) {
		key, err := GenerateEC(jwa.Secp256k1)
		require.NoError(t, err)

		_, err = key.ToJOSE()
		require.ErrorIs(t, err, jwa.ErrUnsupportedCurve)
	})
}

func TestFromJOSE(t *testing.T) {
	t.Run("private EC key", func(t *testing.T) {
		privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		key, err := FromJOSE(&gojose.JSONWebKey{Key: privateKey, KeyID: "kid-1", Algorithm: "ES256"})
		require.NoError(t, err)
		require.True(t, key.IsPrivate())
		require.Equal(t, "kid-1", key.Kid())
		require.Equal(t, "ES256", key.Alg())
	})

	t.Run("round trip", func(t *testing.T) {
		key, err := FromBytes([]byte(ecPrivateJSON))
		require.NoError(t, err)

		joseKey, err := key.ToJOSE()
		require.NoError(t, err)

		restored, err := FromJOSE(joseKey)
		require.NoError(t, err)

		thumbprint, err := key.Thumbprint()
		require.NoError(t, err)

		restoredThumbprint, err := restored.Thumbprint()
		require.NoError(t, err)
		require.Equal(t, thumbprint, restoredThumbprint)
	})
}

func TestThumbprintAgainstGoJose(t *testing.T) {
	t.Run("EC thumbprints agree", func(t *testing.T) {
		key, err := FromBytes([]byte(ecPublicJSON))
		require.NoError(t, err)

		joseKey, err := key.ToJOSE()
		require.NoError(t, err)

		digest, err := joseKey.Thumbprint(crypto.SHA256)
		require.NoError(t, err)

		thumbprint, err := key.Thumbprint()
		require.NoError(t, err)
		require.Equal(t, encoder.EncodeToString(digest), thumbprint)
	})

	t.Run("generated key thumbprints agree", func(t *testing.T) {
		key, err := GenerateEC(jwa.P521)
		require.NoError(t, err)

		joseKey, err := key.ToJOSE()
		require.NoError(t, err)

		digest, err := joseKey.Thumbprint(crypto.SHA256)
		require.NoError(t, err)

		thumbprint, err := key.Thumbprint()
		require.NoError(t, err)
		require.Equal(t, encoder.EncodeToString(digest), thumbprint)
	})
}
