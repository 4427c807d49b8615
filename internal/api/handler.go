package api

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/common/expfmt"

	"github.com/obsidianstack/hilink-exporter/internal/collector"
	"github.com/obsidianstack/hilink-exporter/internal/modem"
	"github.com/obsidianstack/hilink-exporter/pkg/types"
)

// Gatherer performs one complete collection from the device.
// *modem.Client is the production implementation.
type Gatherer interface {
	Gather(ctx context.Context) (*types.TrafficStatistics, error)
}

// Options configures the routes served by Handler.
type Options struct {
	MetricsPath   string
	TelemetryPath string
}

// Handler serves the scrape endpoint and its companions.
type Handler struct {
	mu     sync.RWMutex
	source Gatherer

	encoder   *collector.Encoder
	telemetry *telemetry
	opts      Options
	mux       *http.ServeMux
}

// New creates a Handler that scrapes source on every request to the metrics
// path and registers all routes.
func New(source Gatherer, encoder *collector.Encoder, opts Options) *Handler {
	h := &Handler{
		source:    source,
		encoder:   encoder,
		telemetry: newTelemetry(),
		opts:      opts,
		mux:       http.NewServeMux(),
	}

	h.mux.HandleFunc(opts.MetricsPath, h.scrape)
	h.mux.Handle(opts.TelemetryPath, h.telemetry.handler())
	h.mux.HandleFunc("/healthz", h.healthz)
	h.mux.HandleFunc("/", h.index)

	return h
}

// SetSource replaces the device used by subsequent scrapes and returns the
// one it replaced. Scrapes already running finish against the previous one.
func (h *Handler) SetSource(source Gatherer) Gatherer {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev := h.source
	h.source = source
	return prev
}

func (h *Handler) currentSource() Gatherer {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.source
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// scrape runs session → statistics → encode for this request only.
func (h *Handler) scrape(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	format := expfmt.NegotiateIncludingOpenMetrics(r.Header)
	doc, err := h.collect(r.Context(), format)

	result := resultOf(err)
	h.telemetry.observe(result, time.Since(start))

	if err != nil {
		slog.Warn("api: scrape failed", "result", result, "err", err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "scrape failed: %v\n", err)
		return
	}

	slog.Debug("api: scrape succeeded", "duration", time.Since(start), "format", string(format))
	w.Header().Set("Content-Type", string(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (h *Handler) collect(ctx context.Context, format expfmt.Format) ([]byte, error) {
	stats, err := h.currentSource().Gather(ctx)
	if err != nil {
		return nil, err
	}
	return h.encoder.Encode(stats, format)
}

// healthz reports process liveness only.
func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

var indexTmpl = template.Must(template.New("index").Parse(`<html>
<head><title>HiLink Exporter</title></head>
<body>
<h1>HiLink Exporter</h1>
<p><a href="{{.MetricsPath}}">Device metrics</a></p>
<p><a href="{{.TelemetryPath}}">Exporter metrics</a></p>
</body>
</html>
`))

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, h.opts); err != nil {
		slog.Error("api: render index", "err", err)
	}
}

// Scrape results, used as the result label of hilink_exporter_scrapes_total.
const (
	resultSuccess   = "success"
	resultTransport = "transport"
	resultParse     = "parse"
	resultAPI       = "api"
	resultEncoding  = "encoding"
	resultRequest   = "request"
	resultUnknown   = "unknown"
)

var allResults = []string{
	resultSuccess, resultTransport, resultParse, resultAPI, resultEncoding, resultRequest, resultUnknown,
}

// resultOf classifies a scrape error by its category in the error taxonomy.
func resultOf(err error) string {
	var (
		transportErr *modem.TransportError
		parseErr     *modem.ParseError
		apiErr       *modem.APIError
		encodingErr  *collector.EncodingError
		requestErr   *modem.RequestError
	)
	switch {
	case err == nil:
		return resultSuccess
	case errors.As(err, &transportErr):
		return resultTransport
	case errors.As(err, &parseErr):
		return resultParse
	case errors.As(err, &apiErr):
		return resultAPI
	case errors.As(err, &encodingErr):
		return resultEncoding
	case errors.As(err, &requestErr):
		return resultRequest
	default:
		return resultUnknown
	}
}
