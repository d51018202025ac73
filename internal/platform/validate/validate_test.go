// Copyright (c) 2026 Homezy. All rights reserved.
// Author: dev@homezy.app

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homezy-app/homezy-api/internal/platform/apperr"
	"github.com/homezy-app/homezy-api/internal/platform/validate"
)

/*
TestValidator_NotEmpty tests the non-empty slice rule used by batch endpoints.
*/
func TestValidator_NotEmpty(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		hasError bool
	}{
		{"one_value", []string{"a"}, false},
		{"many_values", []string{"a", "b", "c"}, false},
		{"empty_slice", []string{}, true},
		{"nil_slice", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			err := v.NotEmpty("ids", tt.values).Err()

			if tt.hasError {
				require.Error(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, "ids", ae.Details[0].Field)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestValidator_MaxCount tests the slice size cap.
*/
func TestValidator_MaxCount(t *testing.T) {
	v := &validate.Validator{}
	v.MaxCount("ids", []string{"a", "b", "c"}, 2)

	err := v.Err()
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 400, ae.HTTPStatus)
	assert.Equal(t, "ids", ae.Details[0].Field)
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		NotEmpty("ids", []string{"n-1", "n-2"}).
		MaxCount("ids", []string{"n-1", "n-2"}, 50).
		Err()

	assert.NoError(t, err)
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}
	err := v.
		NotEmpty("ids", nil).                         // Fails: empty
		MaxCount("other_ids", []string{"a", "b"}, 1). // Fails: over cap
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate both errors
	assert.Len(t, ae.Details, 2)
}

/*
TestErrInvalidJSON verifies the shared malformed-body sentinel maps to 400.
*/
func TestErrInvalidJSON(t *testing.T) {
	ae := apperr.As(validate.ErrInvalidJSON)
	require.NotNil(t, ae)
	assert.Equal(t, 400, ae.HTTPStatus)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}
