package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataFor(t *testing.T) {
	meta := MetadataFor(CodeNotFound)
	assert.Equal(t, http.StatusNotFound, meta.HTTPStatus)
	assert.False(t, meta.Retryable)

	unknown := MetadataFor(Code("SOMETHING_ELSE"))
	assert.Equal(t, http.StatusInternalServerError, unknown.HTTPStatus)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(CodeDependency, cause, "persist payment")

	require.NotNil(t, err)
	assert.Equal(t, CodeDependency, err.Code())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "DEPENDENCY_ERROR: persist payment", err.Error())
}

func TestWrapNilCause(t *testing.T) {
	err := Wrap(CodeValidation, nil, "amount required")
	require.NotNil(t, err)
	assert.Nil(t, err.Unwrap())
	assert.Equal(t, CodeValidation, err.Code())
}

func TestAs(t *testing.T) {
	typed := New(CodeForbidden, "owner role required")
	wrapped := fmt.Errorf("handler: %w", typed)

	found := As(wrapped)
	require.NotNil(t, found)
	assert.Equal(t, CodeForbidden, found.Code())

	assert.Nil(t, As(errors.New("plain")))
	assert.Nil(t, As(nil))
}

func TestDumpChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeDependency, cause, "load debt")

	dump := Dump(err)
	assert.Equal(t, CodeDependency, dump.Code)
	assert.Len(t, dump.Chain, 2)
	assert.Contains(t, dump.TopMessage, "load debt")
}
