package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegressionError(t *testing.T) {
	err := &RegressionError{Count: 3}
	assert.Equal(t, "3 benchmark(s) regressed past the threshold", err.Error())
}

func TestRegressionErrorDetection(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		isRegression bool
	}{
		{
			name:         "RegressionError",
			err:          &RegressionError{Count: 1},
			isRegression: true,
		},
		{
			name:         "wrapped RegressionError",
			err:          fmt.Errorf("comparing suites: %w", &RegressionError{Count: 2}),
			isRegression: true,
		},
		{
			name:         "load error",
			err:          errors.New("2 result file(s) could not be loaded"),
			isRegression: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var regErr *RegressionError
			assert.Equal(t, tt.isRegression, errors.As(tt.err, &regErr))
		})
	}
}
