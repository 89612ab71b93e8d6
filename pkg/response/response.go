package response

import (
	"errors"
)

const MessageSuccess = "success"

type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

func NewError(code int, err string) error {
	return &Error{code, errors.New(err)}
}

// Body is the envelope every endpoint answers with.
type Body struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type PagedData[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Pages    int `json:"pages"`
}

func Success(code int, data interface{}) Body {
	return Body{Code: code, Message: MessageSuccess, Data: data}
}

func Message(code int, message string) Body {
	return Body{Code: code, Message: message}
}

func Fail(code int, message string) Body {
	return Body{Code: code, Message: message}
}

// NewPagedData builds a page descriptor. Items is never nil so the JSON
// output is always a list.
func NewPagedData[T any](items []T, total, page, pageSize int) PagedData[T] {
	if items == nil {
		items = []T{}
	}

	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}

	return PagedData[T]{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Pages:    pages,
	}
}
