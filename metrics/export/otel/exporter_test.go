package otel

import (
	"context"
	"errors"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	authcore "github.com/booklyhq/authcore"
)

type fakeSource struct {
	counters map[authcore.MetricID]uint64
	dropped  uint64
}

func (f *fakeSource) MetricsSnapshot() authcore.MetricsSnapshot {
	return authcore.MetricsSnapshot{Counters: f.counters}
}

func (f *fakeSource) MailDropped() uint64 { return f.dropped }

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	return rm
}

func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string) (int64, bool) {
	t.Helper()

	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %s is %T, want Sum[int64]", name, m.Data)
			}
			if len(sum.DataPoints) != 1 {
				t.Fatalf("metric %s has %d data points", name, len(sum.DataPoints))
			}
			return sum.DataPoints[0].Value, true
		}
	}
	return 0, false
}

func TestExporterObservesCounters(t *testing.T) {
	source := &fakeSource{
		counters: map[authcore.MetricID]uint64{
			authcore.MetricLoginSuccess: 4,
			authcore.MetricLogout:       1,
		},
		dropped: 2,
	}

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	exporter, err := NewExporterFromSource(provider.Meter("authcore-test"), source)
	if err != nil {
		t.Fatalf("NewExporterFromSource failed: %v", err)
	}
	t.Cleanup(func() { _ = exporter.Close() })

	rm := collect(t, reader)
	if got, ok := counterValue(t, rm, "authcore_login_success_total"); !ok || got != 4 {
		t.Errorf("login success = %d (found=%v), want 4", got, ok)
	}
	if got, ok := counterValue(t, rm, "authcore_logout_total"); !ok || got != 1 {
		t.Errorf("logout = %d (found=%v), want 1", got, ok)
	}
	if got, ok := counterValue(t, rm, "authcore_mail_dropped_total"); !ok || got != 2 {
		t.Errorf("mail dropped = %d (found=%v), want 2", got, ok)
	}
}

func TestExporterObservesLiveValues(t *testing.T) {
	source := &fakeSource{counters: map[authcore.MetricID]uint64{}}

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	exporter, err := NewExporterFromSource(provider.Meter("authcore-test"), source)
	if err != nil {
		t.Fatalf("NewExporterFromSource failed: %v", err)
	}
	t.Cleanup(func() { _ = exporter.Close() })

	rm := collect(t, reader)
	if got, _ := counterValue(t, rm, "authcore_login_success_total"); got != 0 {
		t.Fatalf("initial value = %d, want 0", got)
	}

	source.counters[authcore.MetricLoginSuccess] = 9

	rm = collect(t, reader)
	if got, _ := counterValue(t, rm, "authcore_login_success_total"); got != 9 {
		t.Fatalf("updated value = %d, want 9", got)
	}
}

func TestExporterNilArguments(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	if _, err := NewExporterFromSource(nil, &fakeSource{}); !errors.Is(err, ErrNilMeter) {
		t.Errorf("nil meter: err = %v, want ErrNilMeter", err)
	}
	if _, err := NewExporterFromSource(provider.Meter("t"), nil); !errors.Is(err, ErrNilSource) {
		t.Errorf("nil source: err = %v, want ErrNilSource", err)
	}
}

func TestExporterClose(t *testing.T) {
	source := &fakeSource{counters: map[authcore.MetricID]uint64{}}

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	exporter, err := NewExporterFromSource(provider.Meter("authcore-test"), source)
	if err != nil {
		t.Fatalf("NewExporterFromSource failed: %v", err)
	}

	if err := exporter.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// Closing again must be harmless.
	if err := exporter.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}

func TestExporterNilClose(t *testing.T) {
	var e *Exporter
	if err := e.Close(); err != nil {
		t.Fatalf("nil Close returned %v", err)
	}
}
