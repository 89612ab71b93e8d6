package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIs(t *testing.T) {
	errNotFound := NewError(http.StatusNotFound, "item not found")

	wrapped := fmt.Errorf("load: %w", errNotFound)
	assert.True(t, errors.Is(wrapped, errNotFound))
	assert.True(t, errors.Is(NewError(http.StatusNotFound, "item not found"), errNotFound))
	assert.False(t, errors.Is(NewError(http.StatusBadRequest, "item not found"), errNotFound))
	assert.False(t, errors.Is(errors.New("item not found"), errNotFound))

	var respErr *Error
	require.True(t, errors.As(wrapped, &respErr))
	assert.Equal(t, http.StatusNotFound, respErr.Code)
	assert.Equal(t, "item not found", respErr.Error())
}

func TestNewPagedData(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		pageSize  int
		wantPages int
	}{
		{name: "exact", total: 40, pageSize: 20, wantPages: 2},
		{name: "remainder", total: 41, pageSize: 20, wantPages: 3},
		{name: "empty", total: 0, pageSize: 20, wantPages: 0},
		{name: "zero page size", total: 10, pageSize: 0, wantPages: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paged := NewPagedData[string](nil, tt.total, 1, tt.pageSize)
			assert.Equal(t, tt.wantPages, paged.Pages)
			assert.NotNil(t, paged.Items)
			assert.Empty(t, paged.Items)
		})
	}
}

func TestEnvelopes(t *testing.T) {
	ok := Success(http.StatusOK, true)
	assert.Equal(t, Body{Code: 200, Message: "success", Data: true}, ok)

	msg := Message(http.StatusOK, "Item deleted successfully")
	assert.Nil(t, msg.Data)
	assert.Equal(t, "Item deleted successfully", msg.Message)
}
