/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwkshandler

import (
	"fmt"
	"net/http"

	"github.com/multiformats/go-multihash"

	"github.com/trustbloc/jose-core-go/pkg/fingerprint"
	"github.com/trustbloc/jose-core-go/pkg/internal/log"
	"github.com/trustbloc/jose-core-go/pkg/jwk"
	"github.com/trustbloc/jose-core-go/pkg/restapi/common"
)

// RetrieveHandler serves the public JWK Set of a key source.
type RetrieveHandler struct {
	*handler
	source KeySource
	maxAge int
}

// Option configures a RetrieveHandler.
type Option func(h *RetrieveHandler)

// WithCacheMaxAge adds a Cache-Control max-age directive to responses.
func WithCacheMaxAge(seconds int) Option {
	return func(h *RetrieveHandler) {
		h.maxAge = seconds
	}
}

// NewRetrieveHandler returns a handler that serves the source's public JWK Set
// at {basePath}/jwks.json.
func NewRetrieveHandler(basePath string, source KeySource, opts ...Option) *RetrieveHandler {
	h := &RetrieveHandler{source: source}

	for _, opt := range opts {
		opt(h)
	}

	h.handler = newHandler(fmt.Sprintf("%s/jwks.json", basePath), http.MethodGet, h.retrieve)

	return h
}

// retrieve writes the public view of the source's keys. The reduction to the
// public view happens here, whatever the source returned, so private
// parameters never leave the process.
func (h *RetrieveHandler) retrieve(rw http.ResponseWriter, req *http.Request) {
	public, err := h.publicKeys()
	if err != nil {
		logger.Errorf("Unable to load keys: %s", err)

		common.WriteError(rw, http.StatusInternalServerError, err)

		return
	}

	if h.maxAge > 0 {
		rw.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d, public", h.maxAge))
	}

	logger.Debug("Serving JWK set", log.WithTotal(len(public.Keys)))

	if logger.IsEnabled(log.DEBUG) {
		logFingerprints(public)
	}

	common.WriteResponse(rw, common.ContentTypeJWKSet, http.StatusOK, public)
}

func logFingerprints(set *jwk.Set) {
	for _, key := range set.Keys {
		fp, err := fingerprint.Base58(key, multihash.SHA2_256)
		if err != nil {
			continue
		}

		logger.Debug("Serving key", log.WithKeyID(key.Kid()), log.WithFingerprint(fp))
	}
}

func (h *RetrieveHandler) publicKeys() (*jwk.Set, error) {
	set, err := h.source.Keys()
	if err != nil {
		return nil, err
	}

	return set.Public()
}
