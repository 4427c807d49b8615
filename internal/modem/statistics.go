package modem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/obsidianstack/hilink-exporter/pkg/types"
)

// FetchStatistics reads the traffic counters using sess. An <error> envelope
// is returned as *APIError with the device's code and message; it is never
// retried.
func (c *Client) FetchStatistics(ctx context.Context, sess *Session) (*types.TrafficStatistics, error) {
	if sess == nil {
		return nil, &RequestError{Op: "GET " + statisticsPath, Err: errors.New("no session")}
	}

	var env Envelope[statisticsPayload]
	if err := c.get(ctx, statisticsPath, sess, &env); err != nil {
		return nil, err
	}
	body, err := resolve("GET "+statisticsPath, env)
	if err != nil {
		return nil, err
	}
	return body.toStatistics()
}

// statisticsPayload is the wire form of the traffic-statistics payload. Pointer
// fields tell an absent element apart from a zero counter.
type statisticsPayload struct {
	CurrentUpload      *uint64 `xml:"CurrentUpload"`
	CurrentDownload    *uint64 `xml:"CurrentDownload"`
	CurrentConnectTime *uint64 `xml:"CurrentConnectTime"`
	TotalUpload        *uint64 `xml:"TotalUpload"`
	TotalDownload      *uint64 `xml:"TotalDownload"`
	TotalConnectTime   *uint64 `xml:"TotalConnectTime"`
}

// toStatistics requires every counter to be present.
func (b statisticsPayload) toStatistics() (*types.TrafficStatistics, error) {
	fields := []struct {
		name string
		v    *uint64
	}{
		{"CurrentUpload", b.CurrentUpload},
		{"CurrentDownload", b.CurrentDownload},
		{"CurrentConnectTime", b.CurrentConnectTime},
		{"TotalUpload", b.TotalUpload},
		{"TotalDownload", b.TotalDownload},
		{"TotalConnectTime", b.TotalConnectTime},
	}
	var missing []string
	for _, f := range fields {
		if f.v == nil {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &ParseError{
			Op:  "GET " + statisticsPath,
			Err: fmt.Errorf("response lacks %s", strings.Join(missing, ", ")),
		}
	}

	return &types.TrafficStatistics{
		CurrentUpload:      *b.CurrentUpload,
		CurrentDownload:    *b.CurrentDownload,
		CurrentConnectTime: *b.CurrentConnectTime,
		TotalUpload:        *b.TotalUpload,
		TotalDownload:      *b.TotalDownload,
		TotalConnectTime:   *b.TotalConnectTime,
	}, nil
}

// Gather runs one full collection: acquire a session, then fetch statistics
// with it. The session is discarded on return.
func (c *Client) Gather(ctx context.Context) (*types.TrafficStatistics, error) {
	sess, err := c.AcquireSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	slog.Debug("modem: session acquired", "endpoint", c.endpoint)

	stats, err := c.FetchStatistics(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("get traffic statistics: %w", err)
	}
	slog.Debug("modem: traffic statistics fetched",
		"endpoint", c.endpoint,
		"total_upload", stats.TotalUpload,
		"total_download", stats.TotalDownload,
	)
	return stats, nil
}
