// Package modem is a client for the HiLink web API exposed by consumer LTE
// modems and routers. It speaks the device's XML protocol over HTTP.
//
// A scrape is two requests, strictly in order:
//
//	GET /api/webserver/SesTokInfo         : unauthenticated, yields Session
//	GET /api/monitoring/traffic-statistics: authenticated with Session
//
// Client.Gather runs both. Authenticated requests carry the session as the
// Cookie and __RequestVerificationToken headers, injected by a per-session
// round tripper in client.go; the session is never stored on the Client.
//
// Every response body is an Envelope: either <response> with the payload or
// <error> with a device code and message. Failures are typed: *TransportError
// (connection or non-2xx status), *ParseError (body does not match the
// schema) and *APIError (the <error> variant). Nothing is retried.
package modem
