package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorWrapsUnknownErrors(t *testing.T) {
	appErr := FromError(fmt.Errorf("boom"))
	require.NotNil(t, appErr)
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Nil(t, FromError(nil))
}

func TestCloneMatchesTemplate(t *testing.T) {
	clone := Clone(ErrSectionFull, "section CS101-A is full")
	assert.True(t, errors.Is(clone, ErrSectionFull))
	assert.False(t, errors.Is(clone, ErrUnitCapExceeded))
	assert.Equal(t, "section is full", ErrSectionFull.Message)

	wrapped := fmt.Errorf("add: %w", clone)
	assert.Equal(t, clone, FromError(wrapped))
}

func TestWithDetailDoesNotMutateTemplate(t *testing.T) {
	withKey := ErrScheduleConflict.WithDetail("key", "CS101-A").WithDetail("conflictDays", []string{"M"})
	assert.Equal(t, "CS101-A", withKey.Details["key"])
	assert.Len(t, withKey.Details, 2)
	assert.Nil(t, ErrScheduleConflict.Details)
}
