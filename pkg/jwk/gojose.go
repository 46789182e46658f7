/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"fmt"

	gojose "github.com/square/go-jose/v3"

	"github.com/trustbloc/jose-core-go/pkg/jwa"
)

// ToJOSE converts the key to a go-jose JSONWebKey. go-jose does not support
// the secp256k1 curve.
func (j *JWK) ToJOSE() (*gojose.JSONWebKey, error) {
	if stringEntry(j.params[paramCrv]) == jwa.Secp256k1 {
		return nil, fmt.Errorf("%w: go-jose does not support secp256k1", jwa.ErrUnsupportedCurve)
	}

	data, err := j.MarshalJSON()
	if err != nil {
		return nil, err
	}

	key := &gojose.JSONWebKey{}
	if err := key.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("convert to go-jose key: %w", err)
	}

	return key, nil
}

// FromJOSE builds a validated key from a go-jose JSONWebKey.
func FromJOSE(key *gojose.JSONWebKey) (*JWK, error) {
	data, err := key.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal go-jose key: %w", err)
	}

	return FromBytes(data)
}
