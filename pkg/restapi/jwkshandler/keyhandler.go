/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwkshandler

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/trustbloc/jose-core-go/pkg/jwk"
	"github.com/trustbloc/jose-core-go/pkg/restapi/common"
)

// KeyHandler serves a single public key by its key ID.
type KeyHandler struct {
	*handler
	source KeySource
}

// NewKeyHandler returns a handler that serves one public key from the source
// at {basePath}/keys/{id}.
func NewKeyHandler(basePath string, source KeySource) *KeyHandler {
	h := &KeyHandler{source: source}

	h.handler = newHandler(fmt.Sprintf("%s/keys/{id}", basePath), http.MethodGet, h.retrieve)

	return h
}

// retrieve serves the public form of one key. Keys with no public form, such
// as symmetric keys, are reported as not found.
func (h *KeyHandler) retrieve(rw http.ResponseWriter, req *http.Request) {
	kid := getKeyID(req)

	logger.Debugf("Retrieving key for ID [%s]", kid)

	key, err := h.doRetrieve(kid)
	if err != nil {
		common.WriteError(rw, http.StatusInternalServerError, err)

		return
	}

	common.WriteResponse(rw, common.ContentTypeJWK, http.StatusOK, key)
}

func (h *KeyHandler) doRetrieve(kid string) (*jwk.JWK, error) {
	set, err := h.source.Keys()
	if err != nil {
		logger.Errorf("Unable to load keys: %s", err)

		return nil, common.NewHTTPError(http.StatusInternalServerError, err)
	}

	key, ok := set.Key(kid)
	if !ok {
		return nil, common.NewHTTPError(http.StatusNotFound, errors.New("key not found"))
	}

	public, err := key.Public()
	if err != nil {
		return nil, common.NewHTTPError(http.StatusNotFound, errors.New("key not found"))
	}

	return public, nil
}

var getKeyID = func(req *http.Request) string {
	return mux.Vars(req)["id"]
}
