/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jwkshandler provides REST handlers that publish the public keys of a
// key source as a JWK Set (RFC 7517).
package jwkshandler

import (
	"github.com/trustbloc/jose-core-go/pkg/internal/log"
	"github.com/trustbloc/jose-core-go/pkg/jwk"
	"github.com/trustbloc/jose-core-go/pkg/restapi/common"
)

var logger = log.New("jose-core-restapi-jwkshandler")

// KeySource supplies the keys published by the handlers. The returned set may
// contain private keys; handlers only ever serve the public view.
type KeySource interface {
	Keys() (*jwk.Set, error)
}

// handler serves published keys
type handler struct {
	path       string
	method     string
	reqHandler common.HTTPRequestHandler
}

func newHandler(path, method string, reqHandler common.HTTPRequestHandler) *handler {
	return &handler{
		path:       path,
		method:     method,
		reqHandler: reqHandler,
	}
}

// Path returns the context path
func (h *handler) Path() string {
	return h.path
}

// Method returns the HTTP method
func (h *handler) Method() string {
	return h.method
}

// Handler returns the handler
func (h *handler) Handler() common.HTTPRequestHandler {
	return h.reqHandler
}
