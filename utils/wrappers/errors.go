// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wrappers

import (
	"errors"
	"strings"
)

// Errs is a collection of errors
type Errs struct {
	errs []error
}

// Add adds errors to the collection, ignoring nils.
func (e *Errs) Add(errs ...error) {
	for _, err := range errs {
		if err != nil {
			e.errs = append(e.errs, err)
		}
	}
}

// Errored returns true if any errors have been added
func (e *Errs) Errored() bool {
	return len(e.errs) > 0
}

// Err returns the errors as a single error
func (e *Errs) Err() error {
	switch len(e.errs) {
	case 0:
		return nil
	case 1:
		return e.errs[0]
	default:
		msgs := make([]string, len(e.errs))
		for i, err := range e.errs {
			msgs[i] = err.Error()
		}
		return errors.New(strings.Join(msgs, "; "))
	}
}
