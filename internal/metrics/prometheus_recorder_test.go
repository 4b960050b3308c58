package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	ctx := context.Background()

	pr.OnParse(ctx, "github", nil)
	pr.OnParse(ctx, "", errors.New("bad"))
	pr.OnFetchStart(ctx, "github", "bar/foo")
	pr.OnFetchComplete(ctx, "github", "bar/foo", true, 120*time.Millisecond, nil)
	pr.OnFetchStart(ctx, "gitlab", "gitlab.com/a/b")
	pr.OnFetchComplete(ctx, "gitlab", "gitlab.com/a/b", false, 80*time.Millisecond, errors.New("404"))
	pr.OnFormat(ctx, "github", "bar2023foo")
	pr.OnResponse(ctx, "GET", "api.github.com", "/repos/bar/foo", 200, 50*time.Millisecond)
	pr.OnError(ctx, "GET", "gitlab.com", "/api/v4/projects/a%2Fb", errors.New("reset"))
	pr.ObserveRequest("/api/v1/citation", 200, 10*time.Millisecond)

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"parse success", testutil.ToFloat64(pr.parses.WithLabelValues("github", "success")), 1},
		{"parse failure", testutil.ToFloat64(pr.parses.WithLabelValues("unknown", "failed")), 1},
		{"fetch tagged", testutil.ToFloat64(pr.fetches.WithLabelValues("github", "success", "true")), 1},
		{"fetch failed", testutil.ToFloat64(pr.fetches.WithLabelValues("gitlab", "failed", "false")), 1},
		{"inflight", testutil.ToFloat64(pr.inflightFetches), 0},
		{"citations", testutil.ToFloat64(pr.citations.WithLabelValues("github")), 1},
		{"upstream ok", testutil.ToFloat64(pr.upstream.WithLabelValues("api.github.com", "200")), 1},
		{"upstream error", testutil.ToFloat64(pr.upstream.WithLabelValues("gitlab.com", "error")), 1},
		{"inbound", testutil.ToFloat64(pr.requests.WithLabelValues("/api/v1/citation", "200")), 1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatal("expected metrics, got none")
	}
}

func TestPrometheusRecorderNil(t *testing.T) {
	var pr *PrometheusRecorder
	pr.OnParse(context.Background(), "github", nil)
	pr.OnFetchComplete(context.Background(), "github", "a/b", false, time.Second, nil)
	pr.ObserveRequest("/health", 200, time.Millisecond)
}

func TestHTTPHandler(t *testing.T) {
	reg := NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.OnFormat(context.Background(), "gitlab", "k")

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `gitcite_citations_total{host="gitlab"} 1`) {
		t.Errorf("metrics output missing citation counter:\n%s", rec.Body.String())
	}
}
