// Package model defines the payload types shared by every API handler:
// the built-in id and no-content payloads, paging, and the response
// envelope written on the wire.
package model

import "github.com/google/uuid"

// CodeOK is the envelope code of every successful response.
const CodeOK = "OK"

// Unit is the payload of operations that return no data.
type Unit struct{}

// LongID is the payload of operations that return a numeric identifier.
type LongID struct {
	ID int64 `json:"id"`
}

// StringID is the payload of operations that return a string identifier.
type StringID struct {
	ID string `json:"id"`
}

// UUIDID is the payload of operations that return a UUID identifier.
type UUIDID struct {
	ID uuid.UUID `json:"id"`
}

// Any is a free-form JSON object payload.
type Any map[string]any

// Envelope wraps every successful response body.
type Envelope[T any] struct {
	Code string `json:"code"`
	Data T      `json:"data"`
}

// OK wraps data in a successful envelope.
func OK[T any](data T) Envelope[T] {
	return Envelope[T]{Code: CodeOK, Data: data}
}

// Done is the envelope of operations that return Unit.
type Done struct {
	Code string `json:"code"`
}

// Page is one slice of a paged listing.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	PageNo   int   `json:"pageNo"`
	PageSize int   `json:"pageSize"`
}

// NewPage cuts the requested page out of all items. Page numbers start at 1;
// out of range pages yield an empty item list.
func NewPage[T any](all []T, pageNo, pageSize int) Page[T] {
	if pageNo < 1 {
		pageNo = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	page := Page[T]{
		Items:    []T{},
		Total:    int64(len(all)),
		PageNo:   pageNo,
		PageSize: pageSize,
	}

	if len(all) == 0 || pageNo-1 > (len(all)-1)/pageSize {
		return page
	}
	start := (pageNo - 1) * pageSize
	end := min(start+pageSize, len(all))
	page.Items = append(page.Items, all[start:end]...)

	return page
}

// ErrorBody is the body of every error response.
type ErrorBody struct {
	Code    string `json:"code" openapi:"description=declared response code"`
	Message string `json:"message" openapi:"description=localized message"`
}
