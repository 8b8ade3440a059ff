package testkit

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// MockTransport implements http.RoundTripper. It answers outgoing requests
// from a scenario's mock steps and never touches the network. An outgoing
// call that matches no step fails with a transport error.
type MockTransport struct {
	mu      sync.Mutex
	entries []mockEntry
}

type mockEntry struct {
	step  MockStep
	calls int
}

// NewMockTransport builds a MockTransport from steps.
func NewMockTransport(steps ...MockStep) *MockTransport {
	mt := &MockTransport{}
	for _, step := range steps {
		mt.entries = append(mt.entries, mockEntry{step: step})
	}
	return mt
}

// RoundTrip returns the first matching step's canned response.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		_, _ = io.Copy(io.Discard, req.Body)
		_ = req.Body.Close()
	}

	mt.mu.Lock()
	defer mt.mu.Unlock()

	for i := range mt.entries {
		e := &mt.entries[i]
		if e.step.MatchURL != "" && !strings.Contains(req.URL.String(), e.step.MatchURL) {
			continue
		}
		e.calls++
		return buildHTTPResponse(req, e.step.ReturnData), nil
	}
	return nil, fmt.Errorf("testkit: unexpected outgoing call to %s", req.URL.Redacted())
}

// Calls reports how many requests in total the transport has answered.
func (mt *MockTransport) Calls() int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	n := 0
	for _, e := range mt.entries {
		n += e.calls
	}
	return n
}

// Uncalled lists the match patterns of steps that were never used.
func (mt *MockTransport) Uncalled() []string {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	var out []string
	for _, e := range mt.entries {
		if e.calls == 0 {
			out = append(out, e.step.MatchURL)
		}
	}
	return out
}

func buildHTTPResponse(req *http.Request, rd MockReturnData) *http.Response {
	code := rd.StatusCode
	if code == 0 {
		code = http.StatusOK
	}
	body := rd.Body
	if body == "" && rd.Text != "" {
		body = GenerateContentBody(rd.Text)
	}
	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

// GenerateContentBody wraps text in a generateContent response envelope with
// a single candidate.
func GenerateContentBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{
				"role":  "model",
				"parts": []any{map[string]string{"text": text}},
			},
			"finishReason": "STOP",
		}},
	})
	return string(b)
}
