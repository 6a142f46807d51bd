package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeTracker serves just enough of the metadata API for a full run.
func fakeTracker(t *testing.T, personBody string, roleBodies map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/person/person/":
			fmt.Fprint(w, personBody)
		case "/api/v1/doc/documentauthor/":
			fmt.Fprint(w, roleBodies["authored"])
		case "/api/v1/doc/document/":
			if r.URL.Query().Get("ad") != "" {
				fmt.Fprint(w, roleBodies["responsible_ad"])
				return
			}
			fmt.Fprint(w, roleBodies["shepherded"])
		case "/api/v1/doc/ballotpositiondocevent/":
			fmt.Fprint(w, roleBodies["balloted"])
		case "/api/v1/review/reviewassignment/":
			fmt.Fprint(w, roleBodies["acknowledged"])
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
}

func emptyEnvelope() string {
	return `{"meta":{"total_count":0},"objects":[]}`
}

func TestRunMissingName(t *testing.T) {
	var stdout, stderr strings.Builder
	if code := run(nil, &stdout, &stderr); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "-n is required") {
		t.Errorf("expected usage hint on stderr, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("expected nothing on stdout, got %q", stdout.String())
	}
}

func TestRunPrintsReport(t *testing.T) {
	srv := fakeTracker(t,
		`{"meta":{"total_count":1},"objects":[{"id":7,"name":"Jane Doe"}]}`,
		map[string]string{
			"authored":       `{"meta":{"total_count":2},"objects":[{"document":"/api/v1/doc/document/rfc9001/"},{"document":"/api/v1/doc/document/rfc9002/"}]}`,
			"shepherded":     emptyEnvelope(),
			"responsible_ad": `{"meta":{"total_count":1},"objects":[{"name":"rfc8446"}]}`,
			"balloted":       emptyEnvelope(),
			"acknowledged":   emptyEnvelope(),
		})
	defer srv.Close()
	t.Setenv("RFCSTAT_SERVICE_URL", srv.URL)

	var stdout, stderr strings.Builder
	if code := run([]string{"-n", "Jane Doe", "-v"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", code, stderr.String())
	}

	out := stdout.String()
	if !strings.Contains(out, "Authored: 2\n  rfc9001\n  rfc9002\n") {
		t.Errorf("expected verbose authored listing, got:\n%s", out)
	}
	if !strings.Contains(out, "Responsible AD: 1\n") {
		t.Errorf("expected responsible AD count, got:\n%s", out)
	}
	if !strings.Contains(out, "finished in ") {
		t.Errorf("expected elapsed line, got:\n%s", out)
	}
}

func TestRunAbortsOnServerError(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()
	t.Setenv("RFCSTAT_SERVICE_URL", srv.URL)

	var stdout, stderr strings.Builder
	if code := run([]string{"-n", "Jane Doe"}, &stdout, &stderr); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if stdout.Len() != 0 {
		t.Errorf("no report may be printed on failure, got %q", stdout.String())
	}
	if hits != 1 {
		t.Errorf("expected the run to abort after the first failure, got %d requests", hits)
	}
	if !strings.Contains(stderr.String(), "NETWORK_ERROR") {
		t.Errorf("expected error on stderr, got %q", stderr.String())
	}
}

func TestRunAbortsOnCategoryFetchError(t *testing.T) {
	var docRequests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/person/person/" {
			fmt.Fprint(w, `{"meta":{"total_count":1},"objects":[{"id":7,"name":"Jane Doe"}]}`)
			return
		}
		docRequests++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()
	t.Setenv("RFCSTAT_SERVICE_URL", srv.URL)

	var stdout, stderr strings.Builder
	if code := run([]string{"-n", "Jane Doe"}, &stdout, &stderr); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if stdout.Len() != 0 {
		t.Errorf("no partial report may be printed, got %q", stdout.String())
	}
	if docRequests != 1 {
		t.Errorf("expected remaining fetches to be skipped, got %d requests", docRequests)
	}
}

func TestRunNoPersonFound(t *testing.T) {
	srv := fakeTracker(t, emptyEnvelope(), nil)
	defer srv.Close()
	t.Setenv("RFCSTAT_SERVICE_URL", srv.URL)

	var stdout, stderr strings.Builder
	if code := run([]string{"-n", "Nobody At All"}, &stdout, &stderr); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "no person found") {
		t.Errorf("expected resolution failure on stderr, got %q", stderr.String())
	}
}
