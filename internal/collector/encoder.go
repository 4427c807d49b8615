package collector

import (
	"bytes"
	"errors"
	"fmt"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/obsidianstack/hilink-exporter/pkg/types"
)

// Family names without the namespace prefix.
const (
	transferredName     = "transferred_bytes"
	connectDurationName = "connect_duration_seconds_total"
)

// EncodingError reports a failure to render the metrics document.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding error: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// Encoder maps traffic statistics onto metric families. It holds only the
// namespace and is safe for concurrent use.
type Encoder struct {
	namespace string
}

// New returns an Encoder whose family names start with namespace + "_".
func New(namespace string) *Encoder {
	return &Encoder{namespace: namespace}
}

// Families builds the transferred-bytes and connect-duration families for stats.
func (e *Encoder) Families(stats *types.TrafficStatistics) []*dto.MetricFamily {
	transferred := &dto.MetricFamily{
		Name: ptr(e.namespace + "_" + transferredName),
		Help: ptr("Transferred bytes"),
		Type: dto.MetricType_GAUGE.Enum(),
		Unit: ptr("bytes"),
	}
	for _, p := range Periods {
		for _, d := range Directions {
			transferred.Metric = append(transferred.Metric, &dto.Metric{
				Label: []*dto.LabelPair{
					labelPair(labelPeriod, string(p)),
					labelPair(labelDirection, string(d)),
				},
				Gauge: &dto.Gauge{Value: ptr(float64(transferredBytes(stats, p, d)))},
			})
		}
	}

	duration := &dto.MetricFamily{
		Name: ptr(e.namespace + "_" + connectDurationName),
		Help: ptr("Connected duration"),
		Type: dto.MetricType_COUNTER.Enum(),
		Unit: ptr("seconds"),
	}
	for _, p := range Periods {
		duration.Metric = append(duration.Metric, &dto.Metric{
			Label:   []*dto.LabelPair{labelPair(labelPeriod, string(p))},
			Counter: &dto.Counter{Value: ptr(float64(connectSeconds(stats, p)))},
		})
	}

	return []*dto.MetricFamily{transferred, duration}
}

// Encode renders the families for stats in format. The document is built in
// memory, so a failure never leaves a partial document behind.
func (e *Encoder) Encode(stats *types.TrafficStatistics, format expfmt.Format) ([]byte, error) {
	if stats == nil {
		return nil, &EncodingError{Err: errors.New("no traffic statistics")}
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, format, expfmt.WithUnit())
	for _, mf := range e.Families(stats) {
		if err := enc.Encode(mf); err != nil {
			return nil, &EncodingError{Err: fmt.Errorf("family %s: %w", mf.GetName(), err)}
		}
	}
	// OpenMetrics requires the trailing # EOF line.
	if closer, ok := enc.(expfmt.Closer); ok {
		if err := closer.Close(); err != nil {
			return nil, &EncodingError{Err: err}
		}
	}
	return buf.Bytes(), nil
}

func transferredBytes(stats *types.TrafficStatistics, p Period, d Direction) uint64 {
	switch {
	case p == PeriodSession && d == DirectionUpload:
		return stats.CurrentUpload
	case p == PeriodSession && d == DirectionDownload:
		return stats.CurrentDownload
	case p == PeriodTotal && d == DirectionUpload:
		return stats.TotalUpload
	default:
		return stats.TotalDownload
	}
}

func connectSeconds(stats *types.TrafficStatistics, p Period) uint64 {
	if p == PeriodSession {
		return stats.CurrentConnectTime
	}
	return stats.TotalConnectTime
}

func labelPair(name, value string) *dto.LabelPair {
	return &dto.LabelPair{Name: ptr(name), Value: ptr(value)}
}

func ptr[T any](v T) *T { return &v }
