/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log Fields.
const (
	FieldAddress     = "address"
	FieldAlgorithm   = "algorithm"
	FieldCurve       = "curve"
	FieldFingerprint = "fingerprint"
	FieldKeyID       = "keyID"
	FieldKeyIDs      = "keyIDs"
	FieldKeyType     = "keyType"
	FieldPatch       = "patch"
	FieldSize        = "size"
	FieldTotal       = "total"
)

// WithAddress sets the address field.
func WithAddress(value string) zap.Field {
	return zap.String(FieldAddress, value)
}

// WithAlgorithm sets the algorithm field.
func WithAlgorithm(value string) zap.Field {
	return zap.String(FieldAlgorithm, value)
}

// WithCurve sets the curve field.
func WithCurve(value string) zap.Field {
	return zap.String(FieldCurve, value)
}

// WithFingerprint sets the fingerprint field.
func WithFingerprint(value string) zap.Field {
	return zap.String(FieldFingerprint, value)
}

// WithKeyID sets the key-id field.
func WithKeyID(value string) zap.Field {
	return zap.String(FieldKeyID, value)
}

// WithKeyIDs sets the key-ids field.
func WithKeyIDs(value ...string) zap.Field {
	return zap.Array(FieldKeyIDs, NewStringArrayMarshaller(value))
}

// WithKeyType sets the key-type field.
func WithKeyType(value string) zap.Field {
	return zap.String(FieldKeyType, value)
}

// WithPatch sets the patch field.
func WithPatch(value interface{}) zap.Field {
	return zap.Inline(NewObjectMarshaller(FieldPatch, value))
}

// WithSize sets the size field.
func WithSize(value int) zap.Field {
	return zap.Int(FieldSize, value)
}

// WithTotal sets the total field.
func WithTotal(value int) zap.Field {
	return zap.Int(FieldTotal, value)
}

// ObjectMarshaller uses reflection to marshal an object's fields.
type ObjectMarshaller struct {
	key string
	obj interface{}
}

// NewObjectMarshaller returns a new ObjectMarshaller.
func NewObjectMarshaller(key string, obj interface{}) *ObjectMarshaller {
	return &ObjectMarshaller{key: key, obj: obj}
}

// MarshalLogObject marshals the object's fields.
func (m *ObjectMarshaller) MarshalLogObject(e zapcore.ObjectEncoder) error {
	return e.AddReflected(m.key, m.obj)
}

// StringArrayMarshaller marshals an array of strings into a log field.
type StringArrayMarshaller struct {
	values []string
}

// NewStringArrayMarshaller returns a new StringArrayMarshaller.
func NewStringArrayMarshaller(values []string) *StringArrayMarshaller {
	return &StringArrayMarshaller{values: values}
}

// MarshalLogArray marshals the array.
func (m *StringArrayMarshaller) MarshalLogArray(e zapcore.ArrayEncoder) error {
	for _, v := range m.values {
		e.AppendString(v)
	}

	return nil
}
