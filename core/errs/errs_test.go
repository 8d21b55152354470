package errs_test

import (
	"fmt"
	"testing"

	"scorebook/core/errs"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := errs.NotFound("events", "abc-123")
	assert.True(t, errs.IsNotFound(err))
	assert.Contains(t, err.Error(), "events")
	assert.Contains(t, err.Error(), "abc-123")

	// Still detectable through wrapping.
	wrapped := fmt.Errorf("loading event: %w", err)
	assert.True(t, errs.IsNotFound(wrapped))
	assert.False(t, errs.IsValidation(wrapped))
}

func TestInvalid(t *testing.T) {
	err := errs.Invalid("score", "raw_value", "must be at least 1")
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), "raw_value")

	noField := errs.Invalid("event", "", "missing venue format")
	assert.Equal(t, "event: missing venue format", noField.Error())
}

func TestConflict(t *testing.T) {
	err := errs.Conflict("merge_entries", "foreign_storage_id,foreign_id", "s1/r1")
	assert.True(t, errs.IsIntegrity(err))
	assert.False(t, errs.IsNotFound(err))
	assert.Contains(t, err.Error(), "merge_entries")
	assert.Contains(t, err.Error(), "s1/r1")
}
