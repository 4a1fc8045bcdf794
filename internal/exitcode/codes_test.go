package exitcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CodexForgeBR/workout-forge/internal/exitcode"
)

func TestName(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{exitcode.Success, "Success"},
		{exitcode.Error, "Error"},
		{exitcode.Unresolved, "Unresolved"},
		{exitcode.Interrupted, "Interrupted"},
		{42, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, exitcode.Name(tt.code))
		})
	}
}

func TestValues(t *testing.T) {
	assert.Equal(t, 0, exitcode.Success)
	assert.Equal(t, 1, exitcode.Error)
	assert.Equal(t, 2, exitcode.Unresolved)
	assert.Equal(t, 130, exitcode.Interrupted)
}

func TestForViolations(t *testing.T) {
	assert.Equal(t, exitcode.Success, exitcode.ForViolations(0))
	assert.Equal(t, exitcode.Unresolved, exitcode.ForViolations(3))
}
