package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenekit/assetpack/pkg/errors"
)

func TestNewAndWrap(t *testing.T) {
	err := errors.New(errors.ErrNoDocumentLocation, "document never saved")
	assert.Equal(t, "[NO_DOCUMENT_LOCATION] document never saved", err.Error())

	cause := fmt.Errorf("disk full")
	wrapped := errors.Wrapf(cause, errors.ErrEntryCopyFailed, "copy %s", "brick")
	assert.Equal(t, "[ENTRY_COPY_FAILED] copy brick: disk full", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)

	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "nothing"))
}

func TestErrorCodeChecks(t *testing.T) {
	err := errors.Newf(errors.ErrInvalidDestination, "bad destination %q", "/x")

	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDestination))
	assert.False(t, errors.IsErrorCode(err, errors.ErrEntryCopyFailed))
	assert.Equal(t, errors.ErrInvalidDestination, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(fmt.Errorf("plain")))

	// Codes survive wrapping by the standard library.
	outer := fmt.Errorf("stage failed: %w", err)
	assert.True(t, errors.IsErrorCode(outer, errors.ErrInvalidDestination))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrHashUnavailable, "unreadable").
		WithDetail("path", "/project/tex.png")

	require.Contains(t, err.Details, "path")
	assert.Equal(t, "/project/tex.png", err.Details["path"])
}
