package supabase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	t.Run("NoRows", func(t *testing.T) {
		assert.True(t, isNoRows(errors.New(`(PGRST116) JSON object requested, multiple (or no) rows returned`)))
		assert.True(t, isNoRows(errors.New("query returned 0 rows")))
		assert.False(t, isNoRows(errors.New("connection refused")))
		assert.False(t, isNoRows(nil))
	})

	t.Run("UniqueViolation", func(t *testing.T) {
		assert.True(t, isUniqueViolation(errors.New(`(23505) duplicate key value violates unique constraint "saved_resources_pkey"`)))
		assert.False(t, isUniqueViolation(errors.New("permission denied")))
		assert.False(t, isUniqueViolation(nil))
	})

	// Bad credentials must classify as not-found, never as an outage, so
	// sign-in answers 400 instead of 503 when the password is wrong.
	t.Run("InvalidCredentials", func(t *testing.T) {
		assert.True(t, isInvalidCredentials(errors.New(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`)))
		assert.True(t, isInvalidCredentials(errors.New("Invalid login credentials")))
		assert.True(t, isInvalidCredentials(fmt.Errorf("response status 400: bad request")))
		assert.False(t, isInvalidCredentials(errors.New("connection refused")))
		assert.False(t, isInvalidCredentials(errors.New("response status 500: internal error")))
		assert.False(t, isInvalidCredentials(nil))
	})
}
