// Package internaldefs exposes the stable metric name definitions shared by
// the exporter implementations, so Prometheus and OTel output stays
// identical.
package internaldefs
