/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Content types served by the REST handlers.
const (
	// ContentTypeJSON is the generic JSON content type.
	ContentTypeJSON = "application/json"
	// ContentTypeJWKSet is the JWK Set content type (RFC 7517 section 8.5.1).
	ContentTypeJWKSet = "application/jwk-set+json"
	// ContentTypeJWK is the JWK content type (RFC 7517 section 8.5.2).
	ContentTypeJWK = "application/jwk+json"
)

// WriteResponse writes v as JSON with the given content type
func WriteResponse(rw http.ResponseWriter, contentType string, status int, v interface{}) {
	rw.Header().Set("Content-Type", contentType)
	rw.WriteHeader(status)

	err := json.NewEncoder(rw).Encode(v)
	if err != nil {
		logger.Errorf("Unable to write response: %s", err)
	}
}

// WriteError writes err as a JSON error response. If err is or wraps an
// HTTPError then its status overrides the given one.
func WriteError(rw http.ResponseWriter, status int, err error) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Status()
	}

	rw.Header().Set("Content-Type", ContentTypeJSON)
	rw.WriteHeader(status)

	e := json.NewEncoder(rw).Encode(ErrorResponse{Message: err.Error()})
	if e != nil {
		logger.Errorf("Unable to write error response: %s", e)
	}
}
