/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package encoder

import (
	"encoding/base64"
	"fmt"
	"math/big"
)

// EncodeToString encodes the bytes to string.
func EncodeToString(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeString decodes the encoded content to Bytes.
func DecodeString(encodedContent string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(encodedContent)
}

// DecodeAnyPadding decodes the encoded content to bytes. Both padded and
// unpadded content is accepted.
func DecodeAnyPadding(encodedContent string) ([]byte, error) {
	if len(encodedContent)%4 == 0 && len(encodedContent) > 0 && encodedContent[len(encodedContent)-1] == '=' {
		return base64.URLEncoding.DecodeString(encodedContent)
	}

	return base64.RawURLEncoding.DecodeString(encodedContent)
}

// EncodeBigInt encodes an unsigned big integer as a fixed-width big-endian
// value of the given size in bytes, left padded with zeroes, and returns it
// base64 URL encoded.
func EncodeBigInt(value *big.Int, size int) (string, error) {
	if value == nil || value.Sign() < 0 {
		return "", fmt.Errorf("value must be a non-negative integer")
	}

	bytes := value.Bytes()
	if len(bytes) > size {
		return "", fmt.Errorf("value does not fit into %d bytes", size)
	}

	padded := make([]byte, size)
	copy(padded[size-len(bytes):], bytes)

	return EncodeToString(padded), nil
}

// DecodeBigInt decodes a base64 URL encoded big-endian unsigned integer of
// exactly the given size in bytes.
func DecodeBigInt(encodedContent string, size int) (*big.Int, error) {
	bytes, err := DecodeAnyPadding(encodedContent)
	if err != nil {
		return nil, err
	}

	if len(bytes) != size {
		return nil, fmt.Errorf("expected %d bytes, got %d", size, len(bytes))
	}

	return new(big.Int).SetBytes(bytes), nil
}
