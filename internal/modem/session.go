package modem

import (
	"context"
	"errors"
	"fmt"
)

// Session holds the credentials every authenticated call must present.
// It is acquired per scrape and never stored on the Client.
type Session struct {
	// Cookie is the SesInfo value, already in "SessionID=..." form.
	Cookie string `xml:"SesInfo"`
	// Token is the TokInfo value, sent as __RequestVerificationToken.
	Token string `xml:"TokInfo"`
}

// AcquireSession asks the device for a fresh session cookie and verification
// token. The request itself is unauthenticated.
func (c *Client) AcquireSession(ctx context.Context) (*Session, error) {
	var env Envelope[Session]
	if err := c.get(ctx, sessionPath, nil, &env); err != nil {
		return nil, err
	}
	sess, err := resolve("GET "+sessionPath, env)
	if err != nil {
		return nil, err
	}
	if sess.Cookie == "" || sess.Token == "" {
		return nil, &ParseError{Op: "GET " + sessionPath, Err: errors.New("response lacks SesInfo or TokInfo")}
	}
	return &sess, nil
}

// resolve unwraps env, reporting anything other than an *APIError as a
// *ParseError for op.
func resolve[T any](op string, env Envelope[T]) (T, error) {
	v, err := env.Unwrap()
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return v, apiErr
		}
		return v, &ParseError{Op: op, Err: fmt.Errorf("resolve envelope: %w", err)}
	}
	return v, nil
}
