package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestE_NoArgsPanics(t *testing.T) {
	assert.PanicsWithValue(t, "call to apperr.E with no arguments", func() { _ = E() })
}

func TestE_UnknownArgType(t *testing.T) {
	err := E(42)
	assert.EqualError(t, err, "unknown type (int) passed to apperr.E")
}

func TestE_CodeAndMessage(t *testing.T) {
	err := E(Op("dish.Create"), CodeConflict, "dish name already used")
	assert.EqualError(t, err, "dish name already used")
	assert.Equal(t, CodeConflict, ErrorCode(err))
	assert.True(t, Is(err, CodeConflict))
}

func TestE_InheritsCodeMessageAndDetails(t *testing.T) {
	inner := E(CodeNotFound, "ingredients not found", Details{"missingIds": []int64{3}})
	outer := E(Op("service.ReviseDish"), inner)

	assert.Equal(t, CodeNotFound, ErrorCode(outer))
	assert.EqualError(t, outer, "ingredients not found")
	assert.Equal(t, Details{"missingIds": []int64{3}}, ErrorDetails(outer))
	assert.ErrorIs(t, outer, inner)
}

func TestErrorCode_WrappedWithFmt(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", E(CodeValidation, "bad"))
	assert.Equal(t, CodeValidation, ErrorCode(err))
	assert.Equal(t, Code(""), ErrorCode(errors.New("plain")))
}

func TestError_FallbackText(t *testing.T) {
	assert.Equal(t, "db down", (&Error{Err: errors.New("db down")}).Error())
	assert.Equal(t, "NOT_FOUND", (&Error{Code: CodeNotFound}).Error())
	assert.Equal(t, "unknown error", (&Error{}).Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:   http.StatusBadRequest,
		CodeUnauthorized: http.StatusForbidden,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeInternal:     http.StatusInternalServerError,
		"":               http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), "code %q", code)
	}
}
