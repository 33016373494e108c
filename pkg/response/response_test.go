package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "zedorolo/pkg/errors"
)

func record(t *testing.T, fn func(c echo.Context) error) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, fn(c))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestSuccessEnvelope(t *testing.T) {
	rec, body := record(t, func(c echo.Context) error {
		return Success(c, map[string]string{"id": "abc"})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Nil(t, body.Error)
	assert.NotEmpty(t, body.Timestamp)
}

func TestCreatedEnvelope(t *testing.T) {
	rec, body := record(t, func(c echo.Context) error {
		return Created(c, map[string]string{"id": "abc"})
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, body.Success)
}

func TestErrorEnvelopeFromAppError(t *testing.T) {
	rec, body := record(t, func(c echo.Context) error {
		return Error(c, apperrors.StaleState("This proposal was already updated"))
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "STALE_STATE", body.Error.Code)
	assert.Equal(t, "This proposal was already updated", body.Error.Message)
}

func TestErrorEnvelopeFromUnknownError(t *testing.T) {
	rec, body := record(t, func(c echo.Context) error {
		return Error(c, fmt.Errorf("firestore exploded"))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	// Internals never leak to the client.
	assert.NotContains(t, body.Error.Message, "firestore")
}

func TestValidationErrorTranslation(t *testing.T) {
	type form struct {
		Email string `validate:"required,email"`
	}
	vErr := validator.New().Struct(form{})
	require.Error(t, vErr)

	rec, body := record(t, func(c echo.Context) error {
		return Error(c, vErr)
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "email is required", body.Error.Message)
}

func TestPaginatedEnvelope(t *testing.T) {
	rec, _ := record(t, func(c echo.Context) error {
		return Paginated(c, []string{"a", "b", "c"}, 7, 2, 3)
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data PaginatedResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.Data.Total)
	assert.Equal(t, 2, body.Data.Page)
	assert.Equal(t, 3, body.Data.PageSize)
	assert.Equal(t, 3, body.Data.TotalPages)
}
