// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used exclusively at the edge of write endpoints. It ensures
// that business logic only operates on semantically valid data, and that
// missing required input maps to the 400 validation branch of the envelope.
// The rule surface grows with the write endpoints; only rules with a caller
// are kept.
package validate

import (
	"fmt"

	"github.com/homezy-app/homezy-api/internal/platform/apperr"
)

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// NotEmpty fails if the slice has no elements.
func (v *Validator) NotEmpty(field string, values []string) *Validator {
	if len(values) == 0 {
		v.add(field, "At least one value is required")
	}
	return v
}

// MaxCount fails if the slice holds more than max elements.
func (v *Validator) MaxCount(field string, values []string, max int) *Validator {
	if len(values) > max {
		v.add(field, fmt.Sprintf("Maximum %d values", max))
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method — call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
