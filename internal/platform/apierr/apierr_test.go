package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	t.Parallel()

	status, code := StatusOf(Conflict("code_used", fmt.Errorf("already redeemed")))
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "code_used", code)

	wrapped := fmt.Errorf("creating order: %w", NotFound("order_not_found", fmt.Errorf("nope")))
	status, code = StatusOf(wrapped)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "order_not_found", code)

	status, code = StatusOf(errors.New("plain failure"))
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, "internal_error", code)

	status, _ = StatusOf(New(0, "odd", nil))
	require.Equal(t, http.StatusInternalServerError, status)
}

func TestErrorMessageFallbacks(t *testing.T) {
	t.Parallel()

	require.Equal(t, "boom", BadRequest("invalid", fmt.Errorf("boom")).Error())
	require.Equal(t, "invalid", (&Error{Code: "invalid"}).Error())
	require.Equal(t, "api error (418)", (&Error{Status: 418}).Error())

	inner := fmt.Errorf("root cause")
	require.ErrorIs(t, BadRequest("invalid", inner), inner)
}
