package modem

import (
	"encoding/xml"
	"errors"
	"testing"
)

type sample struct {
	Value int `xml:"Value"`
}

func TestEnvelope_Response(t *testing.T) {
	var env Envelope[sample]
	if err := xml.Unmarshal([]byte(`<response><Value>42</Value></response>`), &env); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	got, err := env.Unwrap()
	if err != nil {
		t.Fatalf("Unwrap() error = %v", err)
	}
	if got.Value != 42 {
		t.Errorf("Value = %d, want 42", got.Value)
	}
}

func TestEnvelope_Error(t *testing.T) {
	var env Envelope[sample]
	body := `<?xml version="1.0" encoding="UTF-8"?><error><code>125002</code><message>session expired</message></error>`
	if err := xml.Unmarshal([]byte(body), &env); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	_, err := env.Unwrap()

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Unwrap() error = %v, want *APIError", err)
	}
	if apiErr.Code != 125002 || apiErr.Message != "session expired" {
		t.Errorf("APIError = %+v", apiErr)
	}
	if want := "api error: code=125002 message=session expired"; apiErr.Error() != want {
		t.Errorf("Error() = %q, want %q", apiErr.Error(), want)
	}
}

func TestEnvelope_UnknownRoot(t *testing.T) {
	var env Envelope[sample]
	if err := xml.Unmarshal([]byte(`<result><Value>1</Value></result>`), &env); err == nil {
		t.Fatal("Unmarshal() of unknown root should fail")
	}
}

func TestEnvelope_Zero(t *testing.T) {
	var env Envelope[sample]
	if _, err := env.Unwrap(); err == nil {
		t.Fatal("Unwrap() of zero Envelope should fail")
	}
}

func TestResolve_ZeroIsParseError(t *testing.T) {
	_, err := resolve("GET /x", Envelope[sample]{})

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("resolve() error = %v, want *ParseError", err)
	}
}

func TestTransportError_Message(t *testing.T) {
	err := &TransportError{Op: "GET /api/x", StatusCode: 502}
	if want := "transport error: GET /api/x: unexpected status 502"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
