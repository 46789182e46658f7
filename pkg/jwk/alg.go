/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"errors"
	"fmt"

	"github.com/trustbloc/jose-core-go/pkg/jwa"
)

// AlgOption configures the algorithm resolution of a verify operation.
type AlgOption func(opts *algOptions)

type algOptions struct {
	alg  string
	algs []string
}

// WithAlg requires the operation to use exactly this algorithm.
func WithAlg(alg string) AlgOption {
	return func(opts *algOptions) {
		opts.alg = alg
	}
}

// WithAlgs restricts the operation to the given candidate algorithms.
func WithAlgs(algs ...string) AlgOption {
	return func(opts *algOptions) {
		opts.algs = algs
	}
}

// selectAlg resolves the single algorithm an operation uses: an explicitly
// chosen algorithm wins over the key's declared algorithm. The resolved
// algorithm must be in the key's supported set.
func selectAlg(keyAlg, alg string, supported []string) (string, error) {
	chosen := alg
	if chosen == "" {
		chosen = keyAlg
	}

	if chosen == "" {
		return "", ErrNoAlgorithm
	}

	if !containsString(supported, chosen) {
		return "", fmt.Errorf("%w: '%s' cannot be used with this key", jwa.ErrUnsupportedAlgorithm, chosen)
	}

	return chosen, nil
}

// selectAlgs resolves the ordered candidate algorithms a verify operation
// tries: a single explicitly chosen algorithm wins, else the explicit
// candidate list filtered to the supported set, else the key's declared
// algorithm, else the full supported set.
func selectAlgs(keyAlg string, supported []string, opts ...AlgOption) ([]string, error) {
	options := &algOptions{}

	for _, opt := range opts {
		opt(options)
	}

	if options.alg != "" && len(options.algs) > 0 {
		return nil, errors.New("alg and algs cannot both be specified")
	}

	switch {
	case options.alg != "":
		chosen, err := selectAlg(keyAlg, options.alg, supported)
		if err != nil {
			return nil, err
		}

		return []string{chosen}, nil

	case len(options.algs) > 0:
		var candidates []string

		for _, name := range options.algs {
			if containsString(supported, name) {
				candidates = append(candidates, name)
			}
		}

		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w: none of %v can be used with this key", jwa.ErrUnsupportedAlgorithm, options.algs)
		}

		return candidates, nil

	case keyAlg != "":
		chosen, err := selectAlg(keyAlg, "", supported)
		if err != nil {
			return nil, err
		}

		return []string{chosen}, nil

	case len(supported) > 0:
		return append([]string{}, supported...), nil

	default:
		return nil, ErrNoAlgorithm
	}
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}

	return false
}
