package smartscrape_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/smartscrape"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := smartscrape.Errorf(smartscrape.EMISSINGCRED, "missing credential %q", "AZURE_OPENAI_API_KEY")

	assert.Equal(t, smartscrape.EMISSINGCRED, smartscrape.ErrorCode(err))
	assert.Equal(t, "missing credential \"AZURE_OPENAI_API_KEY\"", smartscrape.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, smartscrape.ErrorCode(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading: %w", smartscrape.Errorf(smartscrape.ETIMEOUT, "too slow"))

	assert.Equal(t, smartscrape.ETIMEOUT, smartscrape.ErrorCode(err))
	assert.Equal(t, "too slow", smartscrape.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("connection refused")

	assert.Equal(t, smartscrape.EINTERNAL, smartscrape.ErrorCode(err))
	assert.Equal(t, "connection refused", smartscrape.ErrorMessage(err))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, smartscrape.ErrorMessage(nil))
}

func TestIsValidation(t *testing.T) {
	t.Parallel()

	assert.True(t, smartscrape.IsValidation(smartscrape.Errorf(smartscrape.EINVALID, "prompt required")))
	assert.False(t, smartscrape.IsValidation(smartscrape.Errorf(smartscrape.EMISSINGCRED, "x")))
	assert.False(t, smartscrape.IsValidation(errors.New("boom")))
	assert.False(t, smartscrape.IsValidation(nil))
}
