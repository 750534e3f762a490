package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordSubmission(t *testing.T) {
	m := New()
	m.RecordSubmission("saved")
	m.RecordSubmission("saved")
	m.RecordSubmission("invalid")

	if got := testutil.ToFloat64(m.Submissions.WithLabelValues("saved")); got != 2 {
		t.Errorf("saved = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Submissions.WithLabelValues("invalid")); got != 1 {
		t.Errorf("invalid = %v, want 1", got)
	}
}

func TestHandler_Exposes(t *testing.T) {
	m := New()
	m.RecordSubmission("saved")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `contact_submissions_total{outcome="saved"} 1`) {
		t.Errorf("exposition missing counter:\n%s", rec.Body.String())
	}
}

func TestNew_Independent(t *testing.T) {
	a, b := New(), New()
	a.RecordSubmission("saved")
	if got := testutil.ToFloat64(b.Submissions.WithLabelValues("saved")); got != 0 {
		t.Errorf("registries should be independent, got %v", got)
	}
}
