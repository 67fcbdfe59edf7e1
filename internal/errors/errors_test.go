package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ErrConfig, "Config file not found", "Run 'sour init' to create one")

	assert.Equal(t, ErrConfig, err.Code)
	assert.Equal(t, "Config file not found", err.Message)
	assert.Equal(t, "Run 'sour init' to create one", err.Suggestion)
	assert.Nil(t, err.Cause)
}

func TestWrap(t *testing.T) {
	cause := errors.New("read /proc/stat: permission denied")
	err := Wrap(cause, "Cannot sample CPU")

	assert.Equal(t, ErrProvider, err.Code)
	assert.Equal(t, cause, err.Cause)
	assert.ErrorIs(t, err, cause)
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := WrapWithCode(cause, ErrSpeedtest, "Speed test failed", "Check your network connection")

	assert.Equal(t, ErrSpeedtest, err.Code)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, "Check your network connection", err.Suggestion)
}

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "message only",
			err:      New(ErrInput, "Invalid selection", ""),
			contains: []string{"✗ Invalid selection"},
		},
		{
			name:     "message and suggestion",
			err:      New(ErrProcess, "Cannot terminate process", "Try running with elevated privileges"),
			contains: []string{"✗ Cannot terminate process", "Try running with elevated privileges"},
		},
		{
			name:     "message, cause, and suggestion",
			err:      WrapWithCode(errors.New("operation not permitted"), ErrProcess, "Kill failed", "Use sudo"),
			contains: []string{"✗ Kill failed", "operation not permitted", "Use sudo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				assert.True(t, strings.Contains(msg, want), "expected %q in %q", want, msg)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	err := New(ErrSpeedtest, "Measurement failed", "")

	assert.True(t, IsCode(err, ErrSpeedtest))
	assert.False(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(nil, ErrSpeedtest))
	assert.False(t, IsCode(errors.New("plain"), ErrSpeedtest))
}

func TestIsCodeWrapped(t *testing.T) {
	inner := New(ErrProcess, "Process exited", "")
	outer := fmt.Errorf("kill tree: %w", inner)

	assert.True(t, IsCode(outer, ErrProcess))
	assert.False(t, IsCode(outer, ErrInput))
}
