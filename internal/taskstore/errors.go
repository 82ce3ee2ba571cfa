package taskstore

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RequestError is any transport, authorization or server failure from
// the external task store. StatusCode is zero when the request never
// reached the store.
type RequestError struct {
	StatusCode int
	Detail     string
	wrapped    error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("taskstore: request failed: %s", e.Detail)
	}
	return fmt.Sprintf("taskstore: status %d: %s", e.StatusCode, e.Detail)
}

func (e *RequestError) Unwrap() error {
	return e.wrapped
}

func decodeError(resp *http.Response) error {
	out := &RequestError{StatusCode: resp.StatusCode, Detail: http.StatusText(resp.StatusCode)}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return out
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Detail != "" {
		out.Detail = payload.Detail
	}
	return out
}
