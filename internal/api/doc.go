// Package api implements the HTTP surface of hilink-exporter.
//
// New(source, encoder, opts) returns a Handler that serves:
//
//	GET /                : landing page linking the paths below
//	GET <metrics_path>   : one full device scrape, encoded metrics
//	GET <telemetry_path> : the exporter's own metrics (promhttp)
//	GET /healthz         : liveness, does not contact the device
//
// A scrape failure is reported in-band: the metrics path still answers 200,
// with a text/plain body describing the error. The failure is also logged and
// counted in hilink_exporter_scrapes_total{result=...}.
//
// Non-GET requests to the metrics path get 405. No external HTTP framework
// is used.
package api
