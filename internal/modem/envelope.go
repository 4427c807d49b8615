package modem

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// Envelope is the wrapper the device puts around every API response. Exactly
// one of the two variants is set after decoding:
//
//	<response>...T...</response>
//	<error><code>125002</code><message></message></error>
//
// Unwrap is the only way to get at the payload, so every caller handles both.
type Envelope[T any] struct {
	response *T
	err      *APIError
}

// UnmarshalXML selects the variant from the root element name.
func (e *Envelope[T]) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	switch start.Name.Local {
	case "response":
		var v T
		if err := d.DecodeElement(&v, &start); err != nil {
			return err
		}
		e.response, e.err = &v, nil
	case "error":
		var body struct {
			Code    int    `xml:"code"`
			Message string `xml:"message"`
		}
		if err := d.DecodeElement(&body, &start); err != nil {
			return err
		}
		e.response, e.err = nil, &APIError{Code: body.Code, Message: body.Message}
	default:
		return fmt.Errorf("unexpected root element <%s>", start.Name.Local)
	}
	return nil
}

// Unwrap returns the payload of a <response> envelope, or the *APIError of an
// <error> envelope. A zero Envelope (nothing decoded) is an error too.
func (e Envelope[T]) Unwrap() (T, error) {
	var zero T
	switch {
	case e.err != nil:
		return zero, e.err
	case e.response != nil:
		return *e.response, nil
	default:
		return zero, errors.New("empty envelope")
	}
}

// request wraps a POST body in the <request> root element the device expects.
type request struct {
	body any
}

func (r request) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	return enc.EncodeElement(r.body, xml.StartElement{Name: xml.Name{Local: "request"}})
}
