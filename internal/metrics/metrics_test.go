package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_CountsStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /brew", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := Middleware(mux)

	counter := httpRequestsTotal.WithLabelValues("/brew", http.MethodGet, "418")
	before := testutil.ToFloat64(counter)

	req := httptest.NewRequest(http.MethodGet, "/brew", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", w.Code)
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("counter delta = %v, want 1", got)
	}
}

func TestMiddleware_DefaultStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/implicit", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	h := Middleware(mux)

	counter := httpRequestsTotal.WithLabelValues("/implicit", http.MethodGet, "200")
	before := testutil.ToFloat64(counter)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/implicit", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("implicit 200 not counted, delta = %v", got)
	}
}

func TestMiddleware_LabelsByRoute(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /objects/{name}", func(w http.ResponseWriter, r *http.Request) {})
	h := Middleware(mux)

	routed := httpRequestsTotal.WithLabelValues("/objects/{name}", http.MethodGet, "200")
	unmatched := httpRequestsTotal.WithLabelValues(UnmatchedRoute, http.MethodGet, "404")
	routedBefore, unmatchedBefore := testutil.ToFloat64(routed), testutil.ToFloat64(unmatched)

	for _, path := range []string{"/objects/vega", "/objects/sirius", "/wp-login.php", "/x7f3a9e2"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(routed) - routedBefore; got != 2 {
		t.Errorf("routed delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(unmatched) - unmatchedBefore; got != 2 {
		t.Errorf("unmatched delta = %v, want 2", got)
	}

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	for _, raw := range []string{"/objects/vega", "wp-login", "x7f3a9e2"} {
		if strings.Contains(w.Body.String(), raw) {
			t.Errorf("metrics expose raw path %q", raw)
		}
	}
}

func TestRecordQuery(t *testing.T) {
	ok := queriesTotal.WithLabelValues("Test", OutcomeOK)
	failed := queriesTotal.WithLabelValues("Test", OutcomeError)
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordQuery("Test", OutcomeOK, 3*time.Millisecond, 4)
	RecordQuery("Test", OutcomeError, time.Millisecond, 0)

	if got := testutil.ToFloat64(ok) - okBefore; got != 1 {
		t.Errorf("ok delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(failed) - failedBefore; got != 1 {
		t.Errorf("error delta = %v, want 1", got)
	}
}

func TestHandler_Exposes(t *testing.T) {
	IncRateLimited()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(w.Body.String(), "skyscope_rate_limited_total") {
		t.Error("metrics output missing skyscope_rate_limited_total")
	}
}
