/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"fmt"
	"sort"

	"github.com/trustbloc/jose-core-go/pkg/encoder"
)

// Key types (RFC 7518 section 6.1).
const (
	// KtyEC is the elliptic curve key type.
	KtyEC = "EC"

	// KtyOct is the symmetric (octet sequence) key type.
	KtyOct = "oct"
)

// Common key parameters (RFC 7517 section 4).
const (
	paramKty    = "kty"
	paramKid    = "kid"
	paramAlg    = "alg"
	paramUse    = "use"
	paramKeyOps = "key_ops"
)

// Key type specific parameters (RFC 7518 section 6).
const (
	paramCrv = "crv"
	paramX   = "x"
	paramY   = "y"
	paramD   = "d"
	paramK   = "k"
)

// ParamKind identifies how a key parameter value is encoded.
type ParamKind int

const (
	// KindName is a case-sensitive identifier string.
	KindName ParamKind = iota

	// KindBase64URL is binary content, base64 URL encoded.
	KindBase64URL
)

// Param describes one parameter of a key type's schema.
type Param struct {
	Description string
	Kind        ParamKind
	Private     bool
	Required    bool
}

var ecParams = map[string]Param{
	paramCrv: {Description: "curve", Kind: KindName, Required: true},
	paramX:   {Description: "x coordinate", Kind: KindBase64URL, Required: true},
	paramY:   {Description: "y coordinate", Kind: KindBase64URL, Required: true},
	paramD:   {Description: "EC private key", Kind: KindBase64URL, Private: true, Required: true},
}

var octParams = map[string]Param{
	paramK: {Description: "key value", Kind: KindBase64URL, Private: true, Required: true},
}

// thumbprintParams lists the members hashed into the RFC 7638 thumbprint,
// already in lexicographic order.
var thumbprintParams = map[string][]string{
	KtyEC:  {paramCrv, paramKty, paramX, paramY},
	KtyOct: {paramK, paramKty},
}

func schemaFor(kty string) (map[string]Param, error) {
	switch kty {
	case KtyEC:
		return ecParams, nil
	case KtyOct:
		return octParams, nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedKeyType, kty)
	}
}

// validateParams checks params against the schema. All required public
// parameters must be present. When any private parameter is present, all
// required private parameters must be present too. Every present parameter
// must parse per its declared kind. It reports whether the key carries
// private material.
func validateParams(schema map[string]Param, params map[string]interface{}) (bool, error) {
	private := false

	for _, name := range sortedParamNames(schema) {
		param := schema[name]

		raw, ok := params[name]
		if !ok {
			if param.Required && !param.Private {
				return false, &StructuralError{Param: name, Reason: "missing required parameter"}
			}

			continue
		}

		if param.Private {
			private = true
		}

		if err := checkParamKind(name, param.Kind, raw); err != nil {
			return false, err
		}
	}

	if private {
		for _, name := range sortedParamNames(schema) {
			if param := schema[name]; param.Private && param.Required {
				if _, ok := params[name]; !ok {
					return false, &StructuralError{Param: name, Reason: "missing required private parameter"}
				}
			}
		}
	}

	return private, nil
}

func checkParamKind(name string, kind ParamKind, raw interface{}) error {
	value, ok := raw.(string)
	if !ok {
		return &StructuralError{Param: name, Reason: "must be a string"}
	}

	switch kind {
	case KindName:
		if value == "" {
			return &StructuralError{Param: name, Reason: "must not be empty"}
		}
	case KindBase64URL:
		if _, err := encoder.DecodeAnyPadding(value); err != nil {
			return &StructuralError{Param: name, Reason: "must be base64 URL encoded"}
		}
	}

	return nil
}

func checkCommonParams(params map[string]interface{}) error {
	for _, name := range []string{paramKid, paramAlg, paramUse} {
		if raw, ok := params[name]; ok {
			if _, isString := raw.(string); !isString {
				return &StructuralError{Param: name, Reason: "must be a string"}
			}
		}
	}

	if raw, ok := params[paramKeyOps]; ok {
		if _, err := stringsEntry(raw); err != nil {
			return &StructuralError{Param: paramKeyOps, Reason: "must be an array of strings"}
		}
	}

	return nil
}

func sortedParamNames(schema map[string]Param) []string {
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
