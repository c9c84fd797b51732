package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	e := New(ErrCodeBookNotFound, "图书不存在")
	assert.Equal(t, "[40402] 图书不存在", e.Error())

	wrapped := Wrap(stderrors.New("connection refused"), "数据库错误")
	assert.Contains(t, wrapped.Error(), "connection refused")
	assert.Equal(t, ErrCodeInternal, wrapped.Code)
}

func TestAppError_Unwrap(t *testing.T) {
	inner := stderrors.New("inner")
	wrapped := Wrap(inner, "外层")
	assert.ErrorIs(t, wrapped, inner)
}

func TestIsCode(t *testing.T) {
	e := New(ErrCodeInsufficientStock, "库存不足")
	assert.True(t, IsCode(e, ErrCodeInsufficientStock))
	assert.False(t, IsCode(e, ErrCodeBookNotFound))
	assert.False(t, IsCode(stderrors.New("plain"), ErrCodeInsufficientStock))
}

func TestErrorFamilies(t *testing.T) {
	assert.True(t, IsNotFound(New(ErrCodeBookNotFound, "")))
	assert.True(t, IsNotFound(New(ErrCodeCustomerNotFound, "")))
	assert.False(t, IsNotFound(New(ErrCodeDuplicateEntry, "")))

	assert.True(t, IsConstraintViolation(New(ErrCodeDuplicateEntry, "")))
	assert.True(t, IsConstraintViolation(New(ErrCodeValueOutOfRange, "")))
	assert.False(t, IsConstraintViolation(New(ErrCodeIntegrityError, "")))
}

func TestGetAppError(t *testing.T) {
	e := New(ErrCodeOrderNotFound, "订单不存在")
	assert.Same(t, e, GetAppError(e))

	plain := stderrors.New("plain")
	got := GetAppError(plain)
	assert.Equal(t, ErrCodeInternal, got.Code)
	assert.ErrorIs(t, got, plain)
}
