// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrTransport wraps network-level failures: the request never produced an
// HTTP response.
var ErrTransport = errors.New("backend unreachable")

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 * 1024

// Error is a non-2xx backend response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// errorBody is the optional JSON shape of backend error responses.
// Detail is raw because validation failures carry a list instead of a string.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

func (b errorBody) detail() string {
	var s string
	if len(b.Detail) == 0 || json.Unmarshal(b.Detail, &s) != nil {
		return ""
	}
	return s
}

// GenericMessage is the error text used when the backend gives no detail.
func GenericMessage(status int) string {
	return fmt.Sprintf("request failed (%d)", status)
}

// errorFromResponse builds an *Error using detail, then message, then the
// generic status text. Unparsable bodies degrade to the generic text.
func errorFromResponse(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode, Message: GenericMessage(resp.StatusCode)}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return apiErr
	}

	switch {
	case body.detail() != "":
		apiErr.Message = body.detail()
	case body.Message != "":
		apiErr.Message = body.Message
	}
	return apiErr
}

// DecodeError is a 2xx response whose body could not be decoded.
type DecodeError struct {
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response (%d): %v", e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StatusOf returns the HTTP status carried by err, or 0 if err is not an *Error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
