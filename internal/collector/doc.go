// Package collector turns a types.TrafficStatistics snapshot into Prometheus
// metric families and renders them in the negotiated exposition format.
//
// Two families are produced, both prefixed with the configured namespace:
//
//	<ns>_transferred_bytes               gauge    {period, direction}  4 samples
//	<ns>_connect_duration_seconds_total  counter  {period}             2 samples
//
// Label values come from the Period and Direction enumerations; samples are
// emitted in their fixed cross-product order, so identical input always
// renders to identical bytes. Encoding uses prometheus/common/expfmt for both
// the classic text format and OpenMetrics (which also carries # UNIT).
package collector
