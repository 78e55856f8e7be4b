package ginx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardia/riskapi/internal/app/pkg/errorx"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Success(c, map[string]string{"label": "Positive"})

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, 200, resp.Meta.Code)
	assert.Equal(t, "OK", resp.Meta.Message)
	assert.Equal(t, map[string]interface{}{"label": "Positive"}, resp.Data)
}

func TestBadRequestWithFieldError(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	BadRequestWithFieldError(c, errorx.OutOfRange("age", 0, 120))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	require.Len(t, resp.Meta.Details, 1)
	assert.Equal(t, "age", resp.Meta.Details[0].Path)
	assert.Equal(t, "'age' must be between 0 and 120.", resp.Meta.Details[0].Info)
}

func TestBadRequestWithValidation(t *testing.T) {
	type body struct {
		Features map[string]interface{} `validate:"required"`
	}
	verr := validator.New().Struct(body{})
	require.Error(t, verr)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	BadRequestWithValidation(c, verr)

	resp := decode(t, rec)
	assert.Equal(t, "Validation failed", resp.Meta.Message)
	require.Len(t, resp.Meta.Details, 1)
	assert.Equal(t, "Features is required", resp.Meta.Details[0].Info)

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	BadRequestWithValidation(c, errors.New("unexpected EOF"))
	resp = decode(t, rec)
	assert.Equal(t, "unexpected EOF", resp.Meta.Message)
	assert.Empty(t, resp.Meta.Details)
}

func TestInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	InternalError(c, "Prediction failed.")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Nil(t, decode(t, rec).Data)
}
