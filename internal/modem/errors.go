package modem

import "fmt"

// TransportError reports a failed exchange with the device: the request could
// not be sent, the connection broke, or the device answered with a non-2xx
// status. StatusCode is zero when no response was received.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error: %s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("transport error: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError reports a response body that does not match the expected XML schema.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RequestError reports a request that could not be built, such as a POST
// body that does not marshal or an authenticated call made without a session.
// Nothing is sent to the device.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request error: %s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// APIError is the <error> variant of the device's response envelope.
// Code and Message are exactly what the device reported.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: code=%d message=%s", e.Code, e.Message)
}
