// Package types defines the values shared between the device client and the
// metrics encoder. TrafficStatistics is decoded from the device's XML and
// handed unchanged to the encoder, so it lives outside both packages.
package types
