package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/luminaretail/orders-backend/pkg/errors"
	"github.com/luminaretail/orders-backend/pkg/types"
)

func TestWriteSuccessWrapsData(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteSuccess(rec, map[string]int{"count": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var envelope types.SuccessEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), data["count"])
}

func TestWriteErrorUsesCodeMetadata(t *testing.T) {
	rec := httptest.NewRecorder()

	err := pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	WriteError(context.Background(), nil, rec, err)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
	assert.Equal(t, "order not found", envelope.Error.Message)
}

func TestWriteErrorHidesInternalMessages(t *testing.T) {
	rec := httptest.NewRecorder()

	err := pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("pq: duplicate key"), "insert failed")
	WriteError(context.Background(), nil, rec, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "internal server error", envelope.Error.Message)
	assert.NotContains(t, rec.Body.String(), "duplicate key")
}

func TestWriteErrorIncludesDetailsWhenAllowed(t *testing.T) {
	rec := httptest.NewRecorder()

	err := pkgerrors.New(pkgerrors.CodeValidation, "bad payload").
		WithDetails(map[string]string{"qty": "must be positive"})
	WriteError(context.Background(), nil, rec, err)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	details, ok := envelope.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "must be positive", details["qty"])
}

func TestWriteErrorWrapsForeignErrors(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(context.Background(), nil, rec, errors.New("plain failure"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
