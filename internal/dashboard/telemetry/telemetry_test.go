package telemetry

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// go test -v --run TestRecorder
func TestRecorder(t *testing.T) {
	r := NewRecorder()

	at := time.Unix(1700000000, 0)
	r.RefreshCompleted("tick", 2*time.Second, at)
	r.RefreshCompleted("manual", time.Second, at)
	r.FetchFailures("currencies", StageSnapshot, 2)
	r.FetchFailures("currencies", StageSnapshot, 0)
	r.SetRows("commodities", 12)
	r.SetAlerts(3)
	r.StreamClientConnected()
	r.StreamClientConnected()
	r.StreamClientDisconnected()

	if got := testutil.ToFloat64(r.refreshTotal.WithLabelValues("tick")); got != 1 {
		t.Errorf("tick cycles: got %v", got)
	}
	if got := testutil.ToFloat64(r.lastRefresh); got != 1700000000 {
		t.Errorf("last refresh: got %v", got)
	}
	if got := testutil.ToFloat64(r.fetchFailures.WithLabelValues("currencies", StageSnapshot)); got != 2 {
		t.Errorf("failures: got %v", got)
	}
	if got := testutil.ToFloat64(r.rows.WithLabelValues("commodities")); got != 12 {
		t.Errorf("rows: got %v", got)
	}
	if got := testutil.ToFloat64(r.streamClients); got != 1 {
		t.Errorf("clients: got %v", got)
	}
	if n := testutil.CollectAndCount(r.refreshDuration); n != 1 {
		t.Errorf("expected one histogram, got %d", n)
	}
}

// go test -v --run TestHandler
func TestHandler(t *testing.T) {
	r := NewRecorder()
	r.SetAlerts(4)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "marketdash_snapshot_alerts 4") {
		t.Errorf("alerts gauge not exposed:\n%s", body)
	}
}
