package types

// TrafficStatistics is one snapshot of the device's traffic counters as
// returned by /api/monitoring/traffic-statistics.
//
// Current* fields cover the active connection; Total* fields accumulate
// across connections until the counters are reset on the device. Byte counts
// are in bytes, connect times in seconds. Values are reported as-is; no
// deltas are computed client-side.
type TrafficStatistics struct {
	CurrentUpload      uint64
	CurrentDownload    uint64
	CurrentConnectTime uint64
	TotalUpload        uint64
	TotalDownload      uint64
	TotalConnectTime   uint64
}
