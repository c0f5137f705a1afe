package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndCodeOf(t *testing.T) {
	err := New("CONFIG_MISSING", "DATASET_FILE is required")
	assert.Equal(t, "DATASET_FILE is required", err.Error())
	assert.Equal(t, "CONFIG_MISSING", CodeOf(err))

	assert.Equal(t, "INTERNAL_ERROR", CodeOf(stderrors.New("plain")))
}

func TestWrap_PreservesCodeAndCause(t *testing.T) {
	cause := New("UNKNOWN_RULE_FIELD", "bad rule")
	wrapped := Wrap(cause, "building advisor")

	assert.Equal(t, "UNKNOWN_RULE_FIELD", CodeOf(wrapped))
	assert.Equal(t, "building advisor: bad rule", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, cause))

	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestWrapf(t *testing.T) {
	cause := stderrors.New("file not found")
	wrapped := Wrapf(cause, "load dataset %s", "experiments.csv")

	require.Error(t, wrapped)
	assert.Equal(t, "load dataset experiments.csv: file not found", wrapped.Error())
	assert.Equal(t, "INTERNAL_ERROR", CodeOf(wrapped))

	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
}
