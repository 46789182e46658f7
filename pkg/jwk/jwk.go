/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jwk implements the JSON Web Key entity (RFC 7517) for elliptic
// curve and symmetric keys. A key is constructed from its parameters and is
// structurally validated once, at construction; every key in circulation is
// valid. Key type specific views (ECKey, SymmetricKey) expose the crypto
// operations of RFC 7518.
package jwk

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/square/go-jose/v3/json"

	"github.com/trustbloc/jose-core-go/pkg/canonicalizer"
	"github.com/trustbloc/jose-core-go/pkg/encoder"
	"github.com/trustbloc/jose-core-go/pkg/internal/log"
)

var logger = log.New("jose-core-jwk")

// JWK holds the validated parameters of a JSON Web Key.
type JWK struct {
	params  map[string]interface{}
	private bool
}

// KeyOption sets an optional parameter on a key under construction.
type KeyOption func(params map[string]interface{})

// WithKid sets the key ID parameter.
func WithKid(kid string) KeyOption {
	return func(params map[string]interface{}) {
		params[paramKid] = kid
	}
}

// WithAlgorithm sets the key's declared algorithm parameter.
func WithAlgorithm(alg string) KeyOption {
	return func(params map[string]interface{}) {
		params[paramAlg] = alg
	}
}

// WithUse sets the key's declared use parameter.
func WithUse(use string) KeyOption {
	return func(params map[string]interface{}) {
		params[paramUse] = use
	}
}

// WithKeyOps sets the key's declared operations parameter.
func WithKeyOps(ops ...string) KeyOption {
	return func(params map[string]interface{}) {
		params[paramKeyOps] = ops
	}
}

// WithParam sets an additional, non-standard parameter.
func WithParam(name string, value interface{}) KeyOption {
	return func(params map[string]interface{}) {
		params[name] = value
	}
}

// New builds a key from its parameters. The kty parameter selects the
// parameter schema. For EC keys the curve is resolved before the generic
// schema checks, so a missing or unregistered crv fails with
// jwa.ErrUnsupportedCurve rather than a structural error.
func New(params map[string]interface{}) (*JWK, error) {
	kty := stringEntry(params[paramKty])
	if kty == "" {
		return nil, &StructuralError{Param: paramKty, Reason: "missing required parameter"}
	}

	schema, err := schemaFor(kty)
	if err != nil {
		return nil, err
	}

	cloned := cloneParams(params)

	if err := checkCommonParams(cloned); err != nil {
		return nil, err
	}

	if kty == KtyEC {
		if err := checkCurve(cloned); err != nil {
			return nil, err
		}
	}

	private, err := validateParams(schema, cloned)
	if err != nil {
		return nil, err
	}

	key := &JWK{params: cloned, private: private}

	if kty == KtyEC {
		if err := checkCoordinateSizes(key); err != nil {
			return nil, err
		}
	}

	return key, nil
}

// FromBytes parses and validates a key from its JSON representation.
func FromBytes(data []byte) (*JWK, error) {
	params, err := unmarshalParams(data)
	if err != nil {
		return nil, err
	}

	return New(params)
}

// Kty returns the key type.
func (j *JWK) Kty() string {
	return stringEntry(j.params[paramKty])
}

// Kid returns the key ID. When the key has no kid parameter the RFC 7638
// thumbprint is used.
func (j *JWK) Kid() string {
	if kid, ok := j.params[paramKid]; ok {
		return stringEntry(kid)
	}

	thumbprint, err := j.Thumbprint()
	if err != nil {
		return ""
	}

	return thumbprint
}

// Alg returns the key's declared algorithm, or empty when none is declared.
func (j *JWK) Alg() string {
	return stringEntry(j.params[paramAlg])
}

// Use returns the key's declared use, or empty when none is declared.
func (j *JWK) Use() string {
	return stringEntry(j.params[paramUse])
}

// KeyOps returns the key's declared operations, or nil when none are declared.
func (j *JWK) KeyOps() []string {
	ops, err := stringsEntry(j.params[paramKeyOps])
	if err != nil {
		return nil
	}

	return ops
}

// Param returns the named parameter.
func (j *JWK) Param(name string) (interface{}, bool) {
	value, ok := j.params[name]

	return value, ok
}

// IsPrivate reports whether the key carries private key material.
func (j *JWK) IsPrivate() bool {
	return j.private
}

// Public returns the public view of the key, with all private parameters
// removed. Symmetric keys have no public form.
func (j *JWK) Public() (*JWK, error) {
	if j.Kty() == KtyOct {
		return nil, fmt.Errorf("%w: symmetric key", ErrNoPublicForm)
	}

	if !j.private {
		return j, nil
	}

	schema, err := schemaFor(j.Kty())
	if err != nil {
		return nil, err
	}

	params := make(map[string]interface{}, len(j.params))

	for name, value := range j.params {
		if param, ok := schema[name]; ok && param.Private {
			continue
		}

		params[name] = value
	}

	return New(params)
}

// Canonical returns the canonical JSON form of the key's thumbprint members,
// as specified by RFC 7638 section 3.
func (j *JWK) Canonical() ([]byte, error) {
	members, ok := thumbprintParams[j.Kty()]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedKeyType, j.Kty())
	}

	subset := make(map[string]string, len(members))

	for _, name := range members {
		value := stringEntry(j.params[name])
		if value == "" {
			return nil, &StructuralError{Param: name, Reason: "missing required parameter"}
		}

		subset[name] = value
	}

	return canonicalizer.MarshalCanonical(subset)
}

// Thumbprint returns the key's RFC 7638 SHA-256 thumbprint, base64 URL
// encoded without padding.
func (j *JWK) Thumbprint() (string, error) {
	canonical, err := j.Canonical()
	if err != nil {
		return "", err
	}

	digest := sha256.Sum256(canonical)

	return encoder.EncodeToString(digest[:]), nil
}

// Equal reports whether both keys hold exactly the same parameters.
func (j *JWK) Equal(other *JWK) bool {
	if other == nil {
		return false
	}

	thisJSON, err := canonicalizer.MarshalCanonical(j.params)
	if err != nil {
		return false
	}

	otherJSON, err := canonicalizer.MarshalCanonical(other.params)
	if err != nil {
		return false
	}

	return bytes.Equal(thisJSON, otherJSON)
}

// EC returns the elliptic curve view of the key.
func (j *JWK) EC() (*ECKey, error) {
	if j.Kty() != KtyEC {
		return nil, fmt.Errorf("%w: expected EC, got '%s'", ErrUnsupportedKeyType, j.Kty())
	}

	return &ECKey{JWK: j}, nil
}

// Symmetric returns the symmetric view of the key.
func (j *JWK) Symmetric() (*SymmetricKey, error) {
	if j.Kty() != KtyOct {
		return nil, fmt.Errorf("%w: expected oct, got '%s'", ErrUnsupportedKeyType, j.Kty())
	}

	return &SymmetricKey{JWK: j}, nil
}

// MarshalJSON marshals the key's parameters.
func (j *JWK) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.params)
}

// UnmarshalJSON parses and validates the key's parameters.
func (j *JWK) UnmarshalJSON(data []byte) error {
	key, err := FromBytes(data)
	if err != nil {
		return err
	}

	*j = *key

	return nil
}

func unmarshalParams(data []byte) (map[string]interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var params map[string]interface{}

	if err := decoder.Decode(&params); err != nil {
		return nil, fmt.Errorf("unmarshal JWK: %w", err)
	}

	return params, nil
}

func applyOptions(params map[string]interface{}, opts []KeyOption) {
	for _, opt := range opts {
		opt(params)
	}
}

func cloneParams(params map[string]interface{}) map[string]interface{} {
	cloned := make(map[string]interface{}, len(params))

	for name, value := range params {
		switch values := value.(type) {
		case []interface{}:
			value = append([]interface{}{}, values...)
		case []string:
			value = append([]string{}, values...)
		}

		cloned[name] = value
	}

	return cloned
}

func stringEntry(entry interface{}) string {
	if entry == nil {
		return ""
	}

	value, ok := entry.(string)
	if !ok {
		return ""
	}

	return value
}

func stringsEntry(entry interface{}) ([]string, error) {
	switch values := entry.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string{}, values...), nil
	case []interface{}:
		strs := make([]string, len(values))

		for i, value := range values {
			str, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("entry at index %d is not a string", i)
			}

			strs[i] = str
		}

		return strs, nil
	default:
		return nil, fmt.Errorf("entry is not an array of strings")
	}
}
