package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// ErrorKind classifies a failed request for presentation purposes.
type ErrorKind int

const (
	// ErrorKindTransport covers network failures and non-2xx responses.
	ErrorKindTransport ErrorKind = iota
	// ErrorKindApplication covers status=="error" inside a 200 response.
	ErrorKindApplication
	// ErrorKindUnknown covers response shapes the client cannot interpret.
	ErrorKindUnknown
)

// AlertFunc is a side-effecting notifier for user-facing error messages. It
// is notification only: the error is still returned to the caller.
type AlertFunc func(message string)

// UploadError is an application-level upload failure: the server answered
// 200 with status=="error". Msg and Hint come from the response body.
type UploadError struct {
	Msg  string
	Hint string
}

func (e *UploadError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s %s", e.Msg, e.Hint)
	}
	return e.Msg
}

// errorPayload is the error body shape both platform dialects return.
type errorPayload struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// Classify maps a failed operation to an ErrorKind and a user-facing message.
// For transport failures it extracts code/msg from the error payload when
// present, formatted as "{code}: {msg}", falling back to the raw error text.
// Pure function; presentation is composed separately via an AlertFunc.
func Classify(err error) (ErrorKind, string) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		var payload errorPayload
		if len(reqErr.Body) > 0 && sonic.Unmarshal(reqErr.Body, &payload) == nil && payload.Msg != "" {
			if payload.Code != "" {
				return ErrorKindTransport, fmt.Sprintf("%s: %s", payload.Code, payload.Msg)
			}
			return ErrorKindTransport, payload.Msg
		}
		return ErrorKindTransport, err.Error()
	}

	var upErr *UploadError
	if errors.As(err, &upErr) {
		return ErrorKindApplication, strings.TrimSpace(upErr.Error())
	}
	return ErrorKindUnknown, err.Error()
}

// notifyAlert runs the classification and hands the message to the notifier.
// Safe to call with a nil notifier.
func notifyAlert(alert AlertFunc, err error) {
	if alert == nil || err == nil {
		return
	}
	_, message := Classify(err)
	alert(message)
}
