package modem

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/obsidianstack/hilink-exporter/internal/config"
)

// Device API paths.
const (
	sessionPath    = "/api/webserver/SesTokInfo"
	statisticsPath = "/api/monitoring/traffic-statistics"
)

// Header names carrying the session on authenticated requests.
const (
	headerCookie = "Cookie"
	headerToken  = "__RequestVerificationToken"
)

// maxBodySize caps how much of a device response is read. Real responses are
// a few hundred bytes.
const maxBodySize = 1 << 20

// Client talks to one device's web API. It holds no session: every caller
// acquires its own and passes it explicitly, so a Client is safe for
// concurrent use by independent scrapes.
type Client struct {
	endpoint string
	client   *http.Client
}

// New returns a Client for the device described by dev.
// It builds the HTTP client once and reuses it across scrapes.
func New(dev config.DeviceConfig) (*Client, error) {
	client, err := buildHTTPClient(dev)
	if err != nil {
		return nil, fmt.Errorf("modem %q: build http client: %w", dev.Endpoint, err)
	}
	return &Client{
		endpoint: strings.TrimRight(dev.Endpoint, "/"),
		client:   client,
	}, nil
}

// Close releases idle connections to the device. Requests still in flight
// complete normally.
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}

// sessionRoundTripper injects the session headers into every outgoing request.
type sessionRoundTripper struct {
	base http.RoundTripper
	sess *Session
}

func (t *sessionRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(headerCookie, t.sess.Cookie)
	req.Header.Set(headerToken, t.sess.Token)
	return t.base.RoundTrip(req)
}

// httpClient returns the shared client when sess is nil, or a shallow copy
// whose transport authenticates with sess.
func (c *Client) httpClient(sess *Session) *http.Client {
	if sess == nil {
		return c.client
	}
	base := c.client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hc := *c.client
	hc.Transport = &sessionRoundTripper{base: base, sess: sess}
	return &hc
}

// get performs a GET to path and decodes the XML body into out.
func (c *Client) get(ctx context.Context, path string, sess *Session, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
	if err != nil {
		return &TransportError{Op: "GET " + path, Err: fmt.Errorf("build request: %w", err)}
	}
	return c.do(req, sess, out)
}

// post sends in wrapped in a <request> element to path and decodes the XML
// body into out.
func (c *Client) post(ctx context.Context, path string, sess *Session, in, out any) error {
	body, err := xml.Marshal(request{body: in})
	if err != nil {
		return &RequestError{Op: "POST " + path, Err: fmt.Errorf("encode body: %w", err)}
	}
	payload := append([]byte(xml.Header), body...)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return &TransportError{Op: "POST " + path, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/xml; charset=UTF-8")
	return c.do(req, sess, out)
}

func (c *Client) do(req *http.Request, sess *Session, out any) error {
	op := req.Method + " " + req.URL.Path

	resp, err := c.httpClient(sess).Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return &TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	if err := xml.Unmarshal(data, out); err != nil {
		return &ParseError{Op: op, Err: err}
	}
	return nil
}

// buildHTTPClient constructs an http.Client for the device's TLS and timeout settings.
func buildHTTPClient(dev config.DeviceConfig) (*http.Client, error) {
	tlsCfg := &tls.Config{
		InsecureSkipVerify: dev.TLS.InsecureSkipVerify, //nolint:gosec // user-configured
	}

	if dev.TLS.CAFile != "" {
		caPEM, err := os.ReadFile(dev.TLS.CAFile)
		if err != nil {
			return nil, fmt.Errorf("read ca file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caPEM) {
			return nil, fmt.Errorf("no valid certs found in ca file %q", dev.TLS.CAFile)
		}
		tlsCfg.RootCAs = pool
	}

	return &http.Client{
		Transport: &http.Transport{TLSClientConfig: tlsCfg},
		Timeout:   dev.Timeout,
	}, nil
}
