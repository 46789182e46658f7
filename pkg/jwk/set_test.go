/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/jose-core-go/pkg/jwa"
)

func TestParseSet(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		set, err := ParseSet([]byte(`{"keys":[` + ecPublicJSON + `,` + octJSON + `]}`))
		require.NoError(t, err)
		require.Len(t, set.Keys, 2)
		require.Equal(t, KtyEC, set.Keys[0].Kty())
		require.Equal(t, KtyOct, set.Keys[1].Kty())
	})

	t.Run("empty set", func(t *testing.T) {
		set, err := ParseSet([]byte(`{"keys":[]}`))
		require.NoError(t, err)
		require.Empty(t, set.Keys)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseSet([]byte("not JSON"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "unmarshal JWK set")
	})

	t.Run("invalid key reports its index", func(t *testing.T) {
		_, err := ParseSet([]byte(`{"keys":[` + ecPublicJSON + `,{"kty":"EC","crv":"P-999"}]}`))
		require.Error(t, err)
		require.Contains(t, err.Error(), "key at index 1")
		require.ErrorIs(t, err, jwa.ErrUnsupportedCurve)
	})
}

func TestSetKey(t *testing.T) {
	key, err := FromBytes([]byte(ecPublicJSON))
	require.NoError(t, err)

	set := NewSet(key)

	t.Run("found", func(t *testing.T) {
		found, ok := set.Key("1")
		require.True(t, ok)
		require.True(t, key.Equal(found))
	})

	t.Run("not found", func(t *testing.T) {
		_, ok := set.Key("unknown")
		require.False(t, ok)
	})
}

func TestSetAdd(t *testing.T) {
	t.Run("duplicate material is skipped", func(t *testing.T) {
		key, err := FromBytes([]byte(octJSON))
		require.NoError(t, err)

		set := NewSet()
		require.Equal(t, 1, set.Add(key))
		require.Equal(t, 0, set.Add(key))
		require.Len(t, set.Keys, 1)
	})

	t.Run("same material under another kid is skipped", func(t *testing.T) {
		key, err := FromBytes([]byte(octJSON))
		require.NoError(t, err)

		renamed, err := New(map[string]interface{}{
			"kty": "oct",
			"k":   "GawgguFyGrWKav7AX4VKUg",
			"kid": "another",
		})
		require.NoError(t, err)

		set := NewSet(key)
		require.Equal(t, 0, set.Add(renamed))
	})

	t.Run("distinct keys are added", func(t *testing.T) {
		first, err := GenerateSymmetric(128)
		require.NoError(t, err)

		second, err := GenerateSymmetric(128)
		require.NoError(t, err)

		set := NewSet()
		require.Equal(t, 2, set.Add(first.JWK, second.JWK))
	})

	t.Run("nil keys are skipped", func(t *testing.T) {
		set := NewSet()
		require.Equal(t, 0, set.Add(nil))
	})
}

func TestSetRemove(t *testing.T) {
	key, err := FromBytes([]byte(ecPublicJSON))
	require.NoError(t, err)

	other, err := FromBytes([]byte(octJSON))
	require.NoError(t, err)

	set := NewSet(key, other)

	require.False(t, set.Remove("unknown"))
	require.Len(t, set.Keys, 2)

	require.True(t, set.Remove("1"))
	require.Len(t, set.Keys, 1)
	require.Equal(t, KtyOct, set.Keys[0].Kty())
}

func TestSetPublic(t *testing.T) {
	ecKey, err := GenerateEC(jwa.P256, WithKid("ec-1"))
	require.NoError(t, err)

	symKey, err := GenerateSymmetric(256, WithKid("oct-1"))
	require.NoError(t, err)

	set := NewSet(ecKey.JWK, symKey.JWK)

	public, err := set.Public()
	require.NoError(t, err)
	require.Len(t, public.Keys, 1)
	require.Equal(t, "ec-1", public.Keys[0].Kid())
	require.False(t, public.Keys[0].IsPrivate())
}

func TestSetPatch(t *testing.T) {
	t.Run("add a key", func(t *testing.T) {
		key, err := FromBytes([]byte(ecPublicJSON))
		require.NoError(t, err)

		set := NewSet(key)

		patched, err := set.Patch([]byte(`[{"op":"add","path":"/keys/-","value":` + octJSON + `}]`))
		require.NoError(t, err)
		require.Len(t, patched.Keys, 2)
		require.Equal(t, KtyOct, patched.Keys[1].Kty())

		// the source set is untouched
		require.Len(t, set.Keys, 1)
	})

	t.Run("remove a key", func(t *testing.T) {
		set, err := ParseSet([]byte(`{"keys":[` + ecPublicJSON + `,` + octJSON + `]}`))
		require.NoError(t, err)

		patched, err := set.Patch([]byte(`[{"op":"remove","path":"/keys/0"}]`))
		require.NoError(t, err)
		require.Len(t, patched.Keys, 1)
		require.Equal(t, KtyOct, patched.Keys[0].Kty())
	})

	t.Run("invalid patch document", func(t *testing.T) {
		set := NewSet()

		_, err := set.Patch([]byte("not JSON"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "decode JSON patch")
	})

	t.Run("patch cannot be applied", func(t *testing.T) {
		set := NewSet()

		_, err := set.Patch([]byte(`[{"op":"remove","path":"/keys/5"}]`))
		require.Error(t, err)
		require.Contains(t, err.Error(), "apply JSON patch")
	})

	t.Run("patched set is revalidated", func(t *testing.T) {
		set := NewSet()

		_, err := set.Patch([]byte(`[{"op":"add","path":"/keys/-","value":{"kty":"EC","crv":"P-999"}}]`))
		require.Error(t, err)
		require.Contains(t, err.Error(), "key at index 0")
	})
}

func TestSetJSON(t *testing.T) {
	t.Run("empty set marshals with an empty array", func(t *testing.T) {
		data, err := NewSet().MarshalJSON()
		require.NoError(t, err)
		require.JSONEq(t, `{"keys":[]}`, string(data))
	})

	t.Run("round trip", func(t *testing.T) {
		set, err := ParseSet([]byte(`{"keys":[` + ecPrivateJSON + `]}`))
		require.NoError(t, err)

		data, err := set.MarshalJSON()
		require.NoError(t, err)

		parsed := &Set{}
		require.NoError(t, parsed.UnmarshalJSON(data))
		require.Len(t, parsed.Keys, 1)
		require.True(t, set.Keys[0].Equal(parsed.Keys[0]))
	})
}
