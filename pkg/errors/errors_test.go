package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	err := New(CodeNotFound, "order abc not found")

	require.Equal(t, CodeNotFound, err.Code())
	require.Equal(t, "order abc not found", err.Message())
	require.Equal(t, "NOT_FOUND: order abc not found", err.Error())
	require.Nil(t, err.Unwrap())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "redis ping failed")

	require.Equal(t, CodeDependency, err.Code())
	require.ErrorIs(t, err, cause)
}

func TestWrapNilCauseBehavesLikeNew(t *testing.T) {
	err := Wrap(CodeInternal, nil, "boom")

	require.Equal(t, CodeInternal, err.Code())
	require.Nil(t, err.Unwrap())
}

func TestWithDetails(t *testing.T) {
	details := map[string]string{"field": "qty"}
	err := New(CodeValidation, "bad payload").WithDetails(details)

	require.Equal(t, details, err.Details())
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	inner := New(CodeStateConflict, "cancelled orders are terminal")
	outer := fmt.Errorf("transition order: %w", inner)

	typed := As(outer)
	require.NotNil(t, typed)
	require.Equal(t, CodeStateConflict, typed.Code())
}

func TestAsReturnsNilForForeignErrors(t *testing.T) {
	require.Nil(t, As(stdErrors.New("plain")))
	require.Nil(t, As(nil))
}

func TestMetadataForKnownCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeStateConflict, http.StatusUnprocessableEntity},
		{CodeIdempotency, http.StatusConflict},
		{CodeInternal, http.StatusInternalServerError},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		meta := MetadataFor(tc.code)
		require.Equal(t, tc.status, meta.HTTPStatus, "code %s", tc.code)
		require.NotEmpty(t, meta.PublicMessage, "code %s", tc.code)
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("NO_SUCH_CODE"))
	require.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
}

func TestNilErrorAccessorsAreSafe(t *testing.T) {
	var err *Error
	require.Equal(t, CodeInternal, err.Code())
	require.Empty(t, err.Message())
	require.Nil(t, err.Details())
	require.Nil(t, err.WithDetails("ignored"))
}
