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

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func readError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestWriteSuccessEncodesPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"message": "Session exists."})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Session exists."}`, rec.Body.String())
}

func TestWriteSuccessStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccessStatus(rec, http.StatusCreated, map[string]string{"message": "Purchase completed successfully."})

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestWriteErrorUsesCodeMetadata(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{pkgerrors.New(pkgerrors.CodeValidation, "All fields are required."), http.StatusBadRequest, "All fields are required."},
		{pkgerrors.New(pkgerrors.CodeUnauthorized, "User not logged in."), http.StatusUnauthorized, "User not logged in."},
		{pkgerrors.New(pkgerrors.CodeNotFound, "Some products not found."), http.StatusNotFound, "Some products not found."},
		{pkgerrors.New(pkgerrors.CodeInternal, "persist purchase"), http.StatusInternalServerError, "Error processing purchase."},
		{pkgerrors.New(pkgerrors.CodeDependency, "validate session"), http.StatusServiceUnavailable, "Service temporarily unavailable."},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(context.Background(), nil, rec, tc.err)

		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, tc.message, readError(t, rec))
	}
}

func TestWriteErrorOverridesMessageForUserFacingCodes(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeValidation, "Cart must be a comma-separated list of product ids."))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cart must be a comma-separated list of product ids.", readError(t, rec))
}

func TestWriteErrorNeverLeaksInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("pq: duplicate key"), "persist purchase"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error processing purchase.", readError(t, rec))
	assert.NotContains(t, rec.Body.String(), "duplicate key")
}

func TestWriteErrorUntypedDefaultsToInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error processing purchase.", readError(t, rec))
}

func TestWriteErrorNilError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
