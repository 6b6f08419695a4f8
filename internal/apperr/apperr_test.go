package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusOf(BadRequest("x")))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(Unauthorized("x")))
	assert.Equal(t, http.StatusForbidden, StatusOf(Forbidden("x")))
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFound("x")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(Internal("x")))

	// 包了一层也能取出状态码
	wrapped := fmt.Errorf("outer: %w", NotFound("inner"))
	assert.Equal(t, http.StatusNotFound, StatusOf(wrapped))

	// 普通error一律按500
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestErrorMessage(t *testing.T) {
	err := BadRequest("参数不对")
	assert.EqualError(t, err, "参数不对")
	assert.Equal(t, http.StatusBadRequest, err.Code)
}
