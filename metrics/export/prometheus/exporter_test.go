package prometheus

import (
	"net/http/httptest"
	"strings"
	"testing"

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

func TestRender(t *testing.T) {
	source := &fakeSource{
		counters: map[authcore.MetricID]uint64{
			authcore.MetricLoginSuccess: 7,
			authcore.MetricTokenRevoked: 2,
		},
		dropped: 3,
	}

	out := NewExporterFromSource(source).Render()

	for _, want := range []string{
		"# HELP authcore_login_success_total Successful login attempts.\n",
		"# TYPE authcore_login_success_total counter\n",
		"authcore_login_success_total 7\n",
		"authcore_token_revoked_total 2\n",
		"authcore_login_failure_total 0\n",
		"authcore_mail_dropped_total 3\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEmptySource(t *testing.T) {
	source := &fakeSource{counters: map[authcore.MetricID]uint64{}}
	if out := NewExporterFromSource(source).Render(); out != "" {
		t.Fatalf("empty source rendered %q, want empty", out)
	}
}

func TestRenderNilExporter(t *testing.T) {
	var e *Exporter
	if out := e.Render(); out != "" {
		t.Fatalf("nil exporter rendered %q", out)
	}
}

func TestHandler(t *testing.T) {
	source := &fakeSource{
		counters: map[authcore.MetricID]uint64{authcore.MetricLogout: 1},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	NewExporterFromSource(source).Handler().ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "authcore_logout_total 1\n") {
		t.Errorf("body missing logout counter:\n%s", rec.Body.String())
	}
}
