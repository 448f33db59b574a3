package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAuthFailure(t *testing.T) {
	before := testutil.ToFloat64(AuthFailures.WithLabelValues("expired"))
	RecordAuthFailure("expired")
	if got := testutil.ToFloat64(AuthFailures.WithLabelValues("expired")); got != before+1 {
		t.Errorf("auth_failures_total{reason=expired}: got %v, want %v", got, before+1)
	}
}

func TestSetDirectorySize(t *testing.T) {
	SetDirectorySize(7, 3)
	if got := testutil.ToFloat64(ChannelsActive); got != 7 {
		t.Errorf("channels_active: got %v, want 7", got)
	}
	if got := testutil.ToFloat64(UsersRegistered); got != 3 {
		t.Errorf("users_registered: got %v, want 3", got)
	}
}

func TestRecordRequest(t *testing.T) {
	RecordRequest("GET", "/api/channels/{id}", 404, 0.01)
	if got := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/api/channels/{id}", "404")); got < 1 {
		t.Errorf("http_requests_total: got %v, want >= 1", got)
	}
}
