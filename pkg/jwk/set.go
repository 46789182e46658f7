/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/pkg/errors"

	"github.com/trustbloc/jose-core-go/pkg/internal/log"
)

// Set is a JWK Set (RFC 7517 section 5). A set is not safe for concurrent
// mutation; callers guard Add and Remove.
type Set struct {
	Keys []*JWK
}

type setJSON struct {
	Keys []*JWK `json:"keys"`
}

// NewSet builds a set from the given keys.
func NewSet(keys ...*JWK) *Set {
	return &Set{Keys: append([]*JWK{}, keys...)}
}

// ParseSet parses and validates a JWK Set from its JSON representation.
func ParseSet(data []byte) (*Set, error) {
	var raw struct {
		Keys []json.RawMessage `json:"keys"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "unmarshal JWK set")
	}

	set := &Set{}

	for i, rawKey := range raw.Keys {
		key, err := FromBytes(rawKey)
		if err != nil {
			return nil, errors.Wrapf(err, "key at index %d", i)
		}

		set.Keys = append(set.Keys, key)
	}

	return set, nil
}

// Key returns the first key with the given ID.
func (s *Set) Key(kid string) (*JWK, bool) {
	for _, key := range s.Keys {
		if key.Kid() == kid {
			return key, true
		}
	}

	return nil, false
}

// Add adds keys to the set, skipping keys whose material is already present.
// Presence is determined by thumbprint. It returns the number of keys added.
func (s *Set) Add(keys ...*JWK) int {
	added := 0

	for _, key := range keys {
		if key == nil || s.contains(key) {
			continue
		}

		s.Keys = append(s.Keys, key)
		added++
	}

	return added
}

func (s *Set) contains(key *JWK) bool {
	thumbprint, err := key.Thumbprint()
	if err != nil {
		return false
	}

	for _, existing := range s.Keys {
		existingThumbprint, err := existing.Thumbprint()
		if err != nil {
			continue
		}

		if existingThumbprint == thumbprint {
			return true
		}
	}

	return false
}

// Remove removes all keys with the given ID and reports whether any was
// removed.
func (s *Set) Remove(kid string) bool {
	var kept []*JWK

	removed := false

	for _, key := range s.Keys {
		if key.Kid() == kid {
			removed = true

			continue
		}

		kept = append(kept, key)
	}

	s.Keys = kept

	return removed
}

// Public returns the public view of the set. Symmetric keys carry no public
// material and are dropped.
func (s *Set) Public() (*Set, error) {
	public := &Set{}

	for _, key := range s.Keys {
		if key.Kty() == KtyOct {
			continue
		}

		publicKey, err := key.Public()
		if err != nil {
			return nil, err
		}

		public.Keys = append(public.Keys, publicKey)
	}

	return public, nil
}

// Patch applies an RFC 6902 JSON patch to the set's JSON representation and
// returns the patched set, fully revalidated.
func (s *Set) Patch(patchBytes []byte) (*Set, error) {
	patch, err := jsonpatch.DecodePatch(patchBytes)
	if err != nil {
		return nil, errors.Wrap(err, "decode JSON patch")
	}

	setBytes, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	patchedBytes, err := patch.Apply(setBytes)
	if err != nil {
		return nil, errors.Wrap(err, "apply JSON patch")
	}

	patched, err := ParseSet(patchedBytes)
	if err != nil {
		return nil, err
	}

	logger.Debug("Applied JSON patch to key set",
		log.WithPatch(patch), log.WithTotal(len(patched.Keys)))

	return patched, nil
}

// MarshalJSON marshals the set with an empty keys array when the set holds no
// keys.
func (s *Set) MarshalJSON() ([]byte, error) {
	keys := s.Keys
	if keys == nil {
		keys = []*JWK{}
	}

	return json.Marshal(setJSON{Keys: keys})
}

// UnmarshalJSON parses and validates the set.
func (s *Set) UnmarshalJSON(data []byte) error {
	parsed, err := ParseSet(data)
	if err != nil {
		return err
	}

	*s = *parsed

	return nil
}
