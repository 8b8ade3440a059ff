package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

// HandlerFactory builds a fresh handler whose model client sends through rt.
type HandlerFactory func(t *testing.T, rt http.RoundTripper) http.Handler

// Run executes the scenario in path as a subtest.
func Run(t *testing.T, newHandler HandlerFactory, path string) {
	t.Helper()

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", path, err)
	}
	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, newHandler, s)
	})
}

// RunDir runs every scenario in dir as a subtest. Files that fail to parse
// are reported as failures without stopping the others.
func RunDir(t *testing.T, newHandler HandlerFactory, dir string) {
	t.Helper()

	scenarios, errs := LoadAllFromDir(dir)
	for _, err := range errs {
		t.Error(err)
	}
	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, newHandler, s)
		})
	}
}

func runScenario(t *testing.T, newHandler HandlerFactory, s *Scenario) {
	t.Helper()

	var reqBody io.Reader
	if p := s.RequestBodyPath(); p != "" {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("[%s] read request file %q: %v", s.Name, p, err)
		}
		reqBody = bytes.NewReader(data)
	}

	mt := NewMockTransport(s.GenAIMockStep...)
	handler := newHandler(t, mt)

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), s.RequestURL, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)

	if p := s.ResponseBodyPath(); p != "" {
		expected, err := os.ReadFile(p)
		if err != nil {
			t.Errorf("[%s] read response file %q: %v", s.Name, p, err)
		} else {
			AssertJSONBody(t, s, expected, rec.Body.Bytes())
		}
	}
	if s.ResponseText != "" {
		AssertTextBody(t, s, rec)
	}

	AssertMocksAllCalled(t, s, mt)
}
