package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain error", stderrors.New("boom"), ExitGeneral},
		{"context canceled", context.Canceled, ExitCanceled},
		{"wrapped context canceled", fmt.Errorf("prompt: %w", context.Canceled), ExitCanceled},
		{"not found", New(ErrCodeNotFound, "missing"), ExitNotFound},
		{"no interfaces", New(ErrCodeNoInterfaces, "none"), ExitNoInterfaces},
		{"unreachable", New(ErrCodeUnreachable, "down"), ExitUnreachable},
		{"out of attempts", New(ErrCodeOutOfAttempts, "too many"), ExitOutOfAttempts},
		{"missing key", New(ErrCodeMissingKey, "no UUID"), ExitInvalidIdentity},
		{"invalid identity", New(ErrCodeInvalidIdentity, "bad ID"), ExitInvalidIdentity},
		{"unavailable", New(ErrCodeUnavailable, "dbus"), ExitUnavailable},
		{"invalid request", New(ErrCodeInvalidRequest, "flag"), ExitGeneral},
		{"wrapped structured", fmt.Errorf("stage: %w", New(ErrCodeNotFound, "x")), ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestStructuredError_ErrorAndUnwrap(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := WrapWithContext(ErrCodeNotFound, "cannot read network.cfg", cause, map[string]any{"path": "/x"})

	assert.Equal(t, "cannot read network.cfg: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "/x", err.Context["path"])
	assert.True(t, Is(err, ErrCodeNotFound))
	assert.False(t, Is(err, ErrCodeInternal))

	plain := Newf(ErrCodeMissingKey, "no %s= line", "UUID")
	assert.Equal(t, "no UUID= line", plain.Error())
	assert.Nil(t, plain.Unwrap())
}

func TestCodeOf_Nil(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
}
